// Package pkcs1 implements the raw RSA transform and PKCS#1 v1.5
// padding as used by the TLS 1.0 handshake: block type 1 for signing
// the MD5‖SHA-1 handshake digest, block type 2 for the encrypted
// pre-master secret.
package pkcs1

import (
	"crypto/md5"
	"crypto/rsa"
	"crypto/sha1"
	"crypto/subtle"
	"io"
	"math/big"

	"legacy-tls/common"

	"github.com/pkg/errors"
)

// DigestLength is the size of the MD5‖SHA-1 concatenation signed by TLS
// 1.0 servers and clients.
const DigestLength = md5.Size + sha1.Size

// SigningDigest concatenates MD5 and SHA-1 over parts, in order. The
// result is always DigestLength bytes.
func SigningDigest(parts ...[]byte) []byte {
	h5 := md5.New()
	h1 := sha1.New()
	for _, p := range parts {
		h5.Write(p)
		h1.Write(p)
	}

	out := make([]byte, 0, DigestLength)
	out = h5.Sum(out)
	out = h1.Sum(out)
	return out
}

// RawEncrypt applies the unpadded public transform b^e mod n. The output
// is always the modulus length.
func RawEncrypt(pub *rsa.PublicKey, b []byte) ([]byte, error) {
	k := pub.Size()
	if len(b) > k {
		return nil, errors.Wrapf(common.ErrInvalidLength, "input %d bytes exceeds modulus %d", len(b), k)
	}

	m := new(big.Int).SetBytes(b)
	if m.Cmp(pub.N) >= 0 {
		return nil, errors.Wrap(common.ErrInvalidLength, "input not reduced modulo n")
	}

	c := new(big.Int).Exp(m, big.NewInt(int64(pub.E)), pub.N)
	return c.FillBytes(make([]byte, k)), nil
}

// RawDecrypt applies the unpadded private transform b^d mod n. The output
// is always the modulus length.
func RawDecrypt(priv *rsa.PrivateKey, b []byte) ([]byte, error) {
	k := priv.Size()
	if len(b) > k {
		return nil, errors.Wrapf(common.ErrInvalidLength, "input %d bytes exceeds modulus %d", len(b), k)
	}

	c := new(big.Int).SetBytes(b)
	if c.Cmp(priv.N) >= 0 {
		return nil, errors.Wrap(common.ErrInvalidLength, "input not reduced modulo n")
	}

	m := new(big.Int).Exp(c, priv.D, priv.N)
	return m.FillBytes(make([]byte, k)), nil
}

// Sign pads digest as a type 1 block (00 01 FF.. 00 digest) filling the
// whole modulus and applies the private transform. The digest must be the
// 36-byte MD5‖SHA-1 concatenation, and the modulus must leave room for the
// two leading bytes, at least one FF and the zero separator. Both checks
// run before any modular arithmetic.
func Sign(priv *rsa.PrivateKey, digest []byte) ([]byte, error) {
	if len(digest) != DigestLength {
		return nil, errors.Wrapf(common.ErrInvalidLength, "digest is %d bytes, want %d", len(digest), DigestLength)
	}

	k := priv.Size()
	if k-DigestLength <= 3 {
		return nil, errors.Wrapf(common.ErrInvalidLength, "modulus %d bytes too short for padded digest", k)
	}

	block := make([]byte, k)
	block[0] = 0x00
	block[1] = 0x01
	for i := 2; i < k-DigestLength-1; i++ {
		block[i] = 0xff
	}
	block[k-DigestLength-1] = 0x00
	copy(block[k-DigestLength:], digest)

	return RawDecrypt(priv, block)
}

// Verify applies the public transform to signature and checks it against
// the type 1 padding of digest. Mismatches fail with common.ErrPadding.
func Verify(pub *rsa.PublicKey, digest, signature []byte) error {
	if len(digest) != DigestLength {
		return errors.Wrapf(common.ErrInvalidLength, "digest is %d bytes, want %d", len(digest), DigestLength)
	}

	block, err := RawEncrypt(pub, signature)
	if err != nil {
		return errors.Wrap(err, "recovering signature block")
	}

	k := pub.Size()
	ok := k-DigestLength > 3 && block[0] == 0x00 && block[1] == 0x01
	if ok {
		for i := 2; i < k-DigestLength-1; i++ {
			ok = ok && block[i] == 0xff
		}
		ok = ok && block[k-DigestLength-1] == 0x00
	}
	if !ok || subtle.ConstantTimeCompare(block[k-DigestLength:], digest) != 1 {
		return errors.Wrap(common.ErrPadding, "signature block malformed")
	}
	return nil
}

// Encrypt pads msg as a type 2 block (00 02 <random nonzero> 00 msg) and
// applies the public transform. Used for the pre-master secret.
func Encrypt(rand io.Reader, pub *rsa.PublicKey, msg []byte) ([]byte, error) {
	k := pub.Size()
	if len(msg) > k-11 {
		return nil, errors.Wrapf(common.ErrInvalidLength, "message %d bytes exceeds %d", len(msg), k-11)
	}

	block := make([]byte, k)
	block[0] = 0x00
	block[1] = 0x02
	ps := block[2 : k-len(msg)-1]
	if err := fillNonZero(rand, ps); err != nil {
		return nil, errors.Wrap(err, "generating padding")
	}
	block[k-len(msg)-1] = 0x00
	copy(block[k-len(msg):], msg)

	return RawEncrypt(pub, block)
}

// Decrypt applies the private transform and strips type 2 padding,
// returning the trailing expectedLen bytes. Every violated structural
// check fails with common.ErrPadding; malformed input never yields
// shifted or truncated data.
func Decrypt(expectedLen int, priv *rsa.PrivateKey, ciphertext []byte) ([]byte, error) {
	block, err := RawDecrypt(priv, ciphertext)
	if err != nil {
		return nil, errors.Wrap(err, "raw decrypt")
	}

	k := len(block)
	if expectedLen < 0 || k-expectedLen-1 < 2 {
		return nil, errors.Wrap(common.ErrPadding, "expected length out of range")
	}

	if block[0] != 0x00 || block[1] != 0x02 || block[k-expectedLen-1] != 0x00 {
		return nil, errors.Wrap(common.ErrPadding, "encryption block malformed")
	}

	return block[k-expectedLen:], nil
}

func fillNonZero(rand io.Reader, b []byte) error {
	if _, err := io.ReadFull(rand, b); err != nil {
		return err
	}
	for i := range b {
		for b[i] == 0 {
			var one [1]byte
			if _, err := io.ReadFull(rand, one[:]); err != nil {
				return err
			}
			b[i] = one[0]
		}
	}
	return nil
}
