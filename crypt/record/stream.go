package record

import (
	"crypto/cipher"

	"legacy-tls/common"

	"github.com/pkg/errors"
)

// Stream is one direction's keystream state. The same Transform call
// serves encryption and decryption; the keystream advances with every
// call, so records must pass through in order.
type Stream struct {
	s cipher.Stream
}

func NewStream(id common.CipherID, key []byte) (*Stream, error) {
	spec, err := get(id)
	if err != nil {
		return nil, err
	}
	if spec.kind != stream {
		return nil, errors.Wrapf(common.ErrUnsupportedAlgorithm, "cipher %d is not a stream cipher", id)
	}
	if len(key) != spec.keyLen {
		return nil, errors.Wrapf(common.ErrInvalidLength, "key is %d bytes, want %d", len(key), spec.keyLen)
	}

	s, err := spec.newStream(key)
	if err != nil {
		return nil, errors.Wrap(common.ErrInvalidLength, err.Error())
	}

	return &Stream{s: s}, nil
}

// Transform applies the keystream byte-for-byte. No padding is involved.
func (st *Stream) Transform(data []byte) []byte {
	out := make([]byte, len(data))
	st.s.XORKeyStream(out, data)
	return out
}
