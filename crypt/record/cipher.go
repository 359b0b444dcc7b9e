// Package record implements symmetric protection for TLS 1.0 records:
// CBC block encryption with explicitly chained IVs and the stream
// transform.
package record

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/des"
	"crypto/rc4"

	"legacy-tls/common"

	"github.com/pkg/errors"
)

type cipherKind int

const (
	stream cipherKind = iota
	block
)

type cipherSpec struct {
	kind      cipherKind
	keyLen    int
	blockLen  int
	newBlock  func(key []byte) (cipher.Block, error)
	newStream func(key []byte) (cipher.Stream, error)
}

func newRC4(key []byte) (cipher.Stream, error) { return rc4.NewCipher(key) }

var ciphers = map[common.CipherID]cipherSpec{
	common.CipherRC4_128:     {stream, 16, 1, nil, newRC4},
	common.CipherDES_EDE_CBC: {block, 24, 8, des.NewTripleDESCipher, nil},
	common.CipherAES_128_CBC: {block, 16, 16, aes.NewCipher, nil},
	common.CipherAES_256_CBC: {block, 32, 16, aes.NewCipher, nil},
}

func get(id common.CipherID) (cipherSpec, error) {
	spec, ok := ciphers[id]
	if !ok {
		return cipherSpec{}, errors.Wrapf(common.ErrUnsupportedAlgorithm, "cipher %d", id)
	}
	return spec, nil
}

// Info reports the key and block sizes of a cipher, for key-block
// slicing.
func Info(id common.CipherID) (keyLen, blockLen int, err error) {
	spec, err := get(id)
	if err != nil {
		return 0, 0, err
	}
	return spec.keyLen, spec.blockLen, nil
}
