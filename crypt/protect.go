// Package crypt composes the record MAC and the symmetric ciphers into
// per-record seal and open transforms (MAC-then-encrypt). The chained IV
// is explicit state: each call returns the value the next call in the
// same direction must receive.
package crypt

import (
	"legacy-tls/common"
	"legacy-tls/crypt/mac"
	"legacy-tls/crypt/record"

	"github.com/pkg/errors"
)

// Direction carries one direction's negotiated algorithms and keys. It is
// immutable; per-record state (sequence number, IV, stream keystream)
// stays with the caller.
type Direction struct {
	Version common.Version
	MACAlg  common.HashAlgorithm
	Cipher  common.CipherID

	MACKey []byte
	Key    []byte
}

// SealCBC authenticates and encrypts one record. newIV is the chaining
// value for the next record in this direction.
func SealCBC(d Direction, iv []byte, seq uint64, ctype common.ContentType, fragment []byte) (ciphertext, newIV []byte, err error) {
	digest, err := mac.Compute(d.MACAlg, d.MACKey, seq, ctype, d.Version, fragment)
	if err != nil {
		return nil, nil, errors.Wrap(err, "computing record mac")
	}

	plaintext := make([]byte, 0, len(fragment)+len(digest))
	plaintext = append(plaintext, fragment...)
	plaintext = append(plaintext, digest...)

	ciphertext, newIV, err = record.CBCEncrypt(d.Cipher, d.Key, iv, plaintext)
	if err != nil {
		return nil, nil, errors.Wrap(err, "encrypting record")
	}

	return ciphertext, newIV, nil
}

// OpenCBC decrypts and verifies one record. Padding and MAC failures are
// both reported as common.ErrDecryption; a peer learns only that the
// record was rejected.
func OpenCBC(d Direction, iv []byte, seq uint64, ctype common.ContentType, ciphertext []byte) (fragment, newIV []byte, err error) {
	plaintext, newIV, err := record.CBCDecrypt(d.Cipher, d.Key, iv, ciphertext)
	if err != nil {
		return nil, nil, err
	}

	macLen := d.MACAlg.Size()
	if macLen == 0 {
		return nil, nil, errors.Wrapf(common.ErrUnsupportedAlgorithm, "mac algorithm %d", d.MACAlg)
	}
	if len(plaintext) < macLen {
		return nil, nil, common.ErrDecryption
	}

	fragment = plaintext[:len(plaintext)-macLen]
	digest := plaintext[len(plaintext)-macLen:]

	if err := mac.Verify(d.MACAlg, d.MACKey, seq, ctype, d.Version, fragment, digest); err != nil {
		return nil, nil, err
	}

	return fragment, newIV, nil
}

// SealStream authenticates and encrypts one record under a stream cipher
// state. The keystream advances; calls must stay in record order.
func SealStream(d Direction, st *record.Stream, seq uint64, ctype common.ContentType, fragment []byte) ([]byte, error) {
	digest, err := mac.Compute(d.MACAlg, d.MACKey, seq, ctype, d.Version, fragment)
	if err != nil {
		return nil, errors.Wrap(err, "computing record mac")
	}

	plaintext := make([]byte, 0, len(fragment)+len(digest))
	plaintext = append(plaintext, fragment...)
	plaintext = append(plaintext, digest...)

	return st.Transform(plaintext), nil
}

// OpenStream decrypts and verifies one stream-cipher record.
func OpenStream(d Direction, st *record.Stream, seq uint64, ctype common.ContentType, ciphertext []byte) ([]byte, error) {
	plaintext := st.Transform(ciphertext)

	macLen := d.MACAlg.Size()
	if macLen == 0 {
		return nil, errors.Wrapf(common.ErrUnsupportedAlgorithm, "mac algorithm %d", d.MACAlg)
	}
	if len(plaintext) < macLen {
		return nil, common.ErrDecryption
	}

	fragment := plaintext[:len(plaintext)-macLen]
	digest := plaintext[len(plaintext)-macLen:]

	if err := mac.Verify(d.MACAlg, d.MACKey, seq, ctype, d.Version, fragment, digest); err != nil {
		return nil, err
	}

	return fragment, nil
}
