package common

import (
	"crypto/md5"
	"crypto/sha1"
	"hash"

	"github.com/pkg/errors"
)

// Reference: https://datatracker.ietf.org/doc/html/rfc2246#section-6.2.1
type ContentType uint8

const (
	TypeChangeCipherSpec ContentType = 20
	TypeAlert            ContentType = 21
	TypeHandshake        ContentType = 22
	TypeApplicationData  ContentType = 23
)

// HashAlgorithm identifies a negotiated MAC hash. Only the two digests of
// the TLS 1.0 era are representable; anything else takes the
// ErrUnsupportedAlgorithm path instead of an unchecked crash.
type HashAlgorithm uint8

const (
	HashMD5 HashAlgorithm = iota + 1
	HashSHA1
)

func (a HashAlgorithm) New() (func() hash.Hash, error) {
	switch a {
	case HashMD5:
		return md5.New, nil
	case HashSHA1:
		return sha1.New, nil
	}
	return nil, errors.Wrapf(ErrUnsupportedAlgorithm, "hash algorithm %d", a)
}

func (a HashAlgorithm) Size() int {
	switch a {
	case HashMD5:
		return md5.Size
	case HashSHA1:
		return sha1.Size
	}
	return 0
}

func (a HashAlgorithm) String() string {
	switch a {
	case HashMD5:
		return "MD5"
	case HashSHA1:
		return "SHA-1"
	}
	return "unknown"
}

// CipherID identifies a negotiated record cipher. The registry of
// implemented ciphers lives in crypt/record.
type CipherID uint8

const (
	CipherRC4_128 CipherID = iota + 1
	CipherDES_EDE_CBC
	CipherAES_128_CBC
	CipherAES_256_CBC
)

func (c CipherID) String() string {
	switch c {
	case CipherRC4_128:
		return "RC4_128"
	case CipherDES_EDE_CBC:
		return "3DES_EDE_CBC"
	case CipherAES_128_CBC:
		return "AES_128_CBC"
	case CipherAES_256_CBC:
		return "AES_256_CBC"
	}
	return "unknown"
}
