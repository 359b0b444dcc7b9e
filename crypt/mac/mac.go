// Package mac computes per-record message authentication codes.
//
// Reference: https://datatracker.ietf.org/doc/html/rfc2246#section-6.2.3.1
package mac

import (
	"crypto/hmac"
	"crypto/subtle"
	"encoding/binary"
	"math"

	"legacy-tls/common"

	"github.com/pkg/errors"
)

// preimageLen is the fixed header hashed before the fragment:
// 8-byte sequence number, 1-byte content type, 2-byte version,
// 2-byte fragment length.
const preimageLen = 13

// Compute returns HMAC(macSecret, seq ‖ ctype ‖ version ‖ len ‖ fragment).
// The protocol version is the negotiated one, passed by the caller; it is
// not baked in here.
func Compute(
	alg common.HashAlgorithm,
	macSecret []byte,
	seq uint64,
	ctype common.ContentType,
	version common.Version,
	fragment []byte,
) ([]byte, error) {
	newHash, err := alg.New()
	if err != nil {
		return nil, errors.Wrap(err, "selecting mac hash")
	}

	if len(fragment) > math.MaxUint16 {
		return nil, errors.Wrapf(common.ErrInvalidLength, "fragment length %d", len(fragment))
	}

	var preimage [preimageLen]byte
	binary.BigEndian.PutUint64(preimage[0:8], seq)
	preimage[8] = byte(ctype)
	preimage[9] = version.Major()
	preimage[10] = version.Minor()
	binary.BigEndian.PutUint16(preimage[11:13], uint16(len(fragment)))

	h := hmac.New(newHash, macSecret)
	h.Write(preimage[:])
	h.Write(fragment)

	return h.Sum(nil), nil
}

// Verify recomputes the record MAC and compares it in constant time.
// A mismatch is reported as common.ErrDecryption, the same failure the
// record layer sees for bad CBC padding, so the two are
// indistinguishable to a peer.
func Verify(
	alg common.HashAlgorithm,
	macSecret []byte,
	seq uint64,
	ctype common.ContentType,
	version common.Version,
	fragment, received []byte,
) error {
	want, err := Compute(alg, macSecret, seq, ctype, version, fragment)
	if err != nil {
		return err
	}

	if subtle.ConstantTimeCompare(want, received) != 1 {
		return common.ErrDecryption
	}
	return nil
}
