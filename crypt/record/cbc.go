package record

import (
	"crypto/cipher"
	"crypto/subtle"

	"legacy-tls/common"

	"github.com/pkg/errors"
)

// Pad returns the TLS CBC padding for a fragment of msgLen bytes: the
// smallest padLen >= 0 such that msgLen+1+padLen is a multiple of
// blockSize, emitted as padLen+1 bytes each valued padLen.
//
// Reference: https://datatracker.ietf.org/doc/html/rfc2246#section-6.2.3.2
func Pad(blockSize, msgLen int) []byte {
	padLen := (blockSize - (msgLen+1)%blockSize) % blockSize

	pad := make([]byte, padLen+1)
	for i := range pad {
		pad[i] = byte(padLen)
	}
	return pad
}

// CBCEncrypt pads and encrypts plaintext under key with the given IV. The
// returned newIV is the last ciphertext block: the caller threads it into
// the encryption of the next record in the same direction. The chaining
// value is explicit state between calls, never retained here.
func CBCEncrypt(id common.CipherID, key, iv, plaintext []byte) (ciphertext, newIV []byte, err error) {
	spec, err := get(id)
	if err != nil {
		return nil, nil, err
	}
	if spec.kind != block {
		return nil, nil, errors.Wrapf(common.ErrUnsupportedAlgorithm, "cipher %d is not a block cipher", id)
	}
	if len(iv) != spec.blockLen {
		return nil, nil, errors.Wrapf(common.ErrInvalidLength, "iv is %d bytes, want %d", len(iv), spec.blockLen)
	}

	b, err := spec.newBlock(key)
	if err != nil {
		return nil, nil, errors.Wrap(common.ErrInvalidLength, err.Error())
	}

	buf := make([]byte, 0, len(plaintext)+spec.blockLen)
	buf = append(buf, plaintext...)
	buf = append(buf, Pad(spec.blockLen, len(plaintext))...)

	cipher.NewCBCEncrypter(b, iv).CryptBlocks(buf, buf)

	newIV = make([]byte, spec.blockLen)
	copy(newIV, buf[len(buf)-spec.blockLen:])

	return buf, newIV, nil
}

// CBCDecrypt decrypts and validates padding. Every one of the padLen+1
// trailing bytes must equal padLen and the count must fit the plaintext;
// any violation, as well as a misaligned or empty ciphertext, fails with
// the single undifferentiated common.ErrDecryption. The returned newIV is
// the last ciphertext block of the input.
func CBCDecrypt(id common.CipherID, key, iv, ciphertext []byte) (plaintext, newIV []byte, err error) {
	spec, err := get(id)
	if err != nil {
		return nil, nil, err
	}
	if spec.kind != block {
		return nil, nil, errors.Wrapf(common.ErrUnsupportedAlgorithm, "cipher %d is not a block cipher", id)
	}
	if len(iv) != spec.blockLen {
		return nil, nil, errors.Wrapf(common.ErrInvalidLength, "iv is %d bytes, want %d", len(iv), spec.blockLen)
	}

	b, err := spec.newBlock(key)
	if err != nil {
		return nil, nil, errors.Wrap(common.ErrInvalidLength, err.Error())
	}

	if len(ciphertext) == 0 || len(ciphertext)%spec.blockLen != 0 {
		return nil, nil, common.ErrDecryption
	}

	newIV = make([]byte, spec.blockLen)
	copy(newIV, ciphertext[len(ciphertext)-spec.blockLen:])

	buf := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(b, iv).CryptBlocks(buf, ciphertext)

	padLen := int(buf[len(buf)-1])
	if padLen+1 > len(buf) {
		return nil, nil, common.ErrDecryption
	}

	good := 1
	for _, v := range buf[len(buf)-padLen-1:] {
		good &= subtle.ConstantTimeByteEq(v, byte(padLen))
	}
	if good != 1 {
		return nil, nil, common.ErrDecryption
	}

	return buf[:len(buf)-padLen-1], newIV, nil
}
