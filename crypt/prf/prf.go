// Package prf implements the TLS 1.0 pseudo-random function and the key
// derivations built on it.
//
// Reference: https://datatracker.ietf.org/doc/html/rfc2246#section-5
package prf

import (
	"crypto/hmac"
	"crypto/md5"
	"crypto/sha1"
	"hash"

	"legacy-tls/common"
	"legacy-tls/lib/secret"

	"github.com/pkg/errors"
)

const (
	LabelMasterSecret   = "master secret"
	LabelKeyExpansion   = "key expansion"
	LabelClientFinished = "client finished"
	LabelServerFinished = "server finished"
)

const (
	// MasterSecretLength is protocol-mandated.
	MasterSecretLength = 48
	// VerifyDataLength is the size of Finished verify_data.
	VerifyDataLength = 12
)

// pHash implements P_hash: A(0) = seed, A(i) = HMAC(secret, A(i-1)),
// output = HMAC(secret, A(1)‖seed) ‖ HMAC(secret, A(2)‖seed) ‖ ...
// truncated to length. Any length is valid, including zero.
func pHash(newHash func() hash.Hash, secret, seed []byte, length int) []byte {
	out := make([]byte, 0, length)

	h := hmac.New(newHash, secret)
	h.Write(seed)
	a := h.Sum(nil)

	for len(out) < length {
		h.Reset()
		h.Write(a)
		h.Write(seed)
		out = append(out, h.Sum(nil)...)

		h.Reset()
		h.Write(a)
		a = h.Sum(nil)
	}

	return out[:length]
}

// splitSecret halves the secret for the dual-hash construction. If the
// length is odd the halves share their middle byte: each half is
// ceil(len/2) bytes, taken from opposite ends.
func splitSecret(s []byte) (s1, s2 []byte) {
	s1 = s[0 : (len(s)+1)/2]
	s2 = s[len(s)/2:]
	return s1, s2
}

// PRF computes P_MD5(secret[first half], label‖seed) XOR
// P_SHA1(secret[second half], label‖seed), each expanded to exactly
// length bytes. A length mismatch between the two expansions is reported,
// never silently tolerated.
func PRF(length int, key []byte, label string, seed []byte) ([]byte, error) {
	if length < 0 {
		return nil, errors.Wrapf(common.ErrInvalidLength, "prf output length %d", length)
	}

	labelAndSeed := make([]byte, 0, len(label)+len(seed))
	labelAndSeed = append(labelAndSeed, label...)
	labelAndSeed = append(labelAndSeed, seed...)

	s1, s2 := splitSecret(key)
	p1 := pHash(md5.New, s1, labelAndSeed, length)
	p2 := pHash(sha1.New, s2, labelAndSeed, length)
	defer secret.Zeroize(p1)
	defer secret.Zeroize(p2)

	out := make([]byte, length)
	if err := secret.XOR(out, p1, p2); err != nil {
		return nil, errors.Wrap(err, "combining prf halves")
	}

	return out, nil
}

// MasterSecret derives the 48-byte master secret from the pre-master
// secret and the handshake randoms.
func MasterSecret(preMaster, clientRandom, serverRandom []byte) ([]byte, error) {
	seed := make([]byte, 0, len(clientRandom)+len(serverRandom))
	seed = append(seed, clientRandom...)
	seed = append(seed, serverRandom...)

	out, err := PRF(MasterSecretLength, preMaster, LabelMasterSecret, seed)
	if err != nil {
		return nil, errors.Wrap(err, "deriving master secret")
	}
	return out, nil
}

// KeyBlock expands the master secret into n bytes of keying material. The
// record layer slices it into per-direction MAC keys, cipher keys and
// initial IVs. Note the seed order: server random first.
func KeyBlock(n int, masterSecret, clientRandom, serverRandom []byte) ([]byte, error) {
	seed := make([]byte, 0, len(serverRandom)+len(clientRandom))
	seed = append(seed, serverRandom...)
	seed = append(seed, clientRandom...)

	out, err := PRF(n, masterSecret, LabelKeyExpansion, seed)
	if err != nil {
		return nil, errors.Wrap(err, "deriving key block")
	}
	return out, nil
}

// Finished computes the 12-byte verify_data of a Finished message over the
// handshake transcript. label is LabelClientFinished or
// LabelServerFinished.
func Finished(masterSecret []byte, label string, transcript []byte) ([]byte, error) {
	md5Sum := md5.Sum(transcript)
	sha1Sum := sha1.Sum(transcript)

	seed := make([]byte, 0, md5.Size+sha1.Size)
	seed = append(seed, md5Sum[:]...)
	seed = append(seed, sha1Sum[:]...)

	out, err := PRF(VerifyDataLength, masterSecret, label, seed)
	if err != nil {
		return nil, errors.Wrap(err, "deriving verify data")
	}
	return out, nil
}
