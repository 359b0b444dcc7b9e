// Package dh implements ephemeral finite-field Diffie-Hellman key
// agreement over well-known groups.
package dh

import (
	"io"
	"math/big"

	"legacy-tls/common"

	"github.com/pkg/errors"
)

// Params describes a DH group: prime modulus, generator, and, when the
// group defines one, the order of the subgroup generated by G.
type Params struct {
	P *big.Int
	G *big.Int

	// Q bounds the private exponent when known; groups without a
	// published subgroup order leave it nil and fall back to a
	// bit-length derived from the group's security estimate.
	Q *big.Int
}

// KeyPair is one party's ephemeral keys within a group.
type KeyPair struct {
	Params

	Priv *big.Int
	Pub  *big.Int
}

var (
	// 1024-bit MODP group. Reference: RFC 2409, section 6.2.
	modp1024 = mustParams(
		"FFFFFFFFFFFFFFFFC90FDAA22168C234C4C6628B80DC1CD129024E088A67CC74"+
			"020BBEA63B139B22514A08798E3404DDEF9519B3CD3A431B302B0A6DF25F1437"+
			"4FE1356D6D51C245E485B576625E7EC6F44C42E9A637ED6B0BFF5CB6F406B7ED"+
			"EE386BFB5A899FA5AE9F24117C4B1FE649286651ECE65381FFFFFFFFFFFFFFFF",
		"2", "")

	// 1536-bit MODP group. Reference: RFC 3526, section 2.
	modp1536 = mustParams(
		"FFFFFFFFFFFFFFFFC90FDAA22168C234C4C6628B80DC1CD129024E088A67CC74"+
			"020BBEA63B139B22514A08798E3404DDEF9519B3CD3A431B302B0A6DF25F1437"+
			"4FE1356D6D51C245E485B576625E7EC6F44C42E9A637ED6B0BFF5CB6F406B7ED"+
			"EE386BFB5A899FA5AE9F24117C4B1FE649286651ECE45B3DC2007CB8A163BF05"+
			"98DA48361C55D39A69163FA8FD24CF5F83655D23DCA3AD961C62F356208552BB"+
			"9ED529077096966D670C354E4ABC9804F1746C08CA237327FFFFFFFFFFFFFFFF",
		"2", "")

	// 2048-bit MODP group with 256-bit prime order subgroup.
	// Reference: RFC 5114, section 2.3.
	modp2048 = mustParams(
		"87A8E61DB4B6663CFFBBD19C651959998CEEF608660DD0F25D2CEED4435E3B00"+
			"E00DF8F1D61957D4FAF7DF4561B2AA3016C3D91134096FAA3BF4296D830E9A7C"+
			"209E0C6497517ABD5A8A9D306BCF67ED91F9E6725B4758C022E0B1EF4275BF7B"+
			"6C5BFC11D45F9088B941F54EB1E59BB8BC39A0BF12307F5C4FDB70C581B23F76"+
			"B63ACAE1CAA6B7902D52526735488A0EF13C6D9A51BFA4AB3AD8347796524D8E"+
			"F6A167B5A41825D967E144E5140564251CCACB83E6B486F6B3CA3F7971506026"+
			"C0B857F689962856DED4010ABD0BE621C3A3960A54E710C375F26375D7014103"+
			"A4B54330C198AF126116D2276E11715F693877FAD7EF09CADB094AE91E1A1597",
		"3FB32C9B73134D0B2E77506660EDBD484CA7B18F21EF205407F4793A1A0BA125"+
			"10DBC15077BE463FFF4FED4AAC0BB555BE3A6C1B0C6B47B1BC3773BF7E8C6F62"+
			"901228F8C28CBB18A55AE31341000A650196F931C77A57F2DDF463E5E9EC144B"+
			"777DE62AAAB8A8628AC376D282D6ED3864E67982428EBC831D14348F6F2F9193"+
			"B5045AF2767164E1DFC967C1FB3F2E55A4BD1BFFE83B9C80D052B985D182EA0A"+
			"DB2A3B7313D3FE14C8484B1E052588B9B7D2BBD2DF016199ECD06E1557CD0915"+
			"B3353BBB64E0EC377FD028370DF92B52C7891428CDC67EB6184B523D1DB246C3"+
			"2F63078490F00EF8D647D148D47954515E2327CFEF98C582664B4C0F6CC41659",
		"8CF83642A709A097B447997640129DA299B1A47D1EB3750BA308B0FE64F5FBD3")
)

var groups = map[int]Params{
	1024: modp1024,
	1536: modp1536,
	2048: modp2048,
}

// exponentBits is roughly twice the symmetric-security estimate of the
// modulus size, never a fixed value.
var exponentBits = map[int]int{
	1024: 160,
	1536: 192,
	2048: 224,
}

func mustParams(p, g, q string) Params {
	pInt, ok := new(big.Int).SetString(p, 16)
	if !ok {
		panic("dh: bad prime constant")
	}
	gInt, ok := new(big.Int).SetString(g, 16)
	if !ok {
		panic("dh: bad generator constant")
	}
	out := Params{P: pInt, G: gInt}
	if q != "" {
		qInt, ok := new(big.Int).SetString(q, 16)
		if !ok {
			panic("dh: bad subgroup order constant")
		}
		out.Q = qInt
	}
	return out
}

// GroupForSize returns the well-known group for the given modulus bit
// size. Sizes without a registered group are refused rather than met with
// ad-hoc prime generation.
func GroupForSize(bits int) (Params, error) {
	params, ok := groups[bits]
	if !ok {
		return Params{}, errors.Wrapf(common.ErrUnsupportedAlgorithm, "no %d-bit dh group", bits)
	}
	return params, nil
}

// Generate picks the group for bits and produces an ephemeral key pair.
func Generate(rand io.Reader, bits int) (*KeyPair, error) {
	params, err := GroupForSize(bits)
	if err != nil {
		return nil, err
	}
	return GenerateFrom(rand, params)
}

// GenerateFrom produces an ephemeral key pair under params. The private
// exponent is bounded by the subgroup order when the group publishes one,
// otherwise its bit length is derived from the modulus size.
func GenerateFrom(rand io.Reader, params Params) (*KeyPair, error) {
	priv, err := randomExponent(rand, params)
	if err != nil {
		return nil, errors.Wrap(err, "generating private exponent")
	}

	pub := new(big.Int).Exp(params.G, priv, params.P)

	return &KeyPair{Params: params, Priv: priv, Pub: pub}, nil
}

func randomExponent(rand io.Reader, params Params) (*big.Int, error) {
	if params.Q != nil {
		// Uniform in [1, q-1].
		qMinus1 := new(big.Int).Sub(params.Q, big.NewInt(1))
		x, err := randInt(rand, qMinus1)
		if err != nil {
			return nil, err
		}
		return x.Add(x, big.NewInt(1)), nil
	}

	bits, ok := exponentBits[params.P.BitLen()]
	if !ok {
		// Unknown group sizes get an exponent as long as the modulus.
		bits = params.P.BitLen()
	}

	b := make([]byte, (bits+7)/8)
	if _, err := io.ReadFull(rand, b); err != nil {
		return nil, err
	}
	// Force the top bit so the exponent has its full length.
	b[0] |= 0x80
	return new(big.Int).SetBytes(b), nil
}

// randInt returns a uniform value in [0, max).
func randInt(rand io.Reader, max *big.Int) (*big.Int, error) {
	b := make([]byte, (max.BitLen()+7)/8+8)
	if _, err := io.ReadFull(rand, b); err != nil {
		return nil, err
	}
	return new(big.Int).Mod(new(big.Int).SetBytes(b), max), nil
}

// Shared computes the raw shared secret peerPub^priv mod p. The peer's
// public value must lie strictly between 1 and p-1; anything else is a
// malformed or malicious key exchange.
func Shared(params Params, priv, peerPub *big.Int) ([]byte, error) {
	if peerPub == nil || peerPub.Cmp(big.NewInt(1)) <= 0 {
		return nil, errors.Wrap(common.ErrInvalidLength, "peer public value too small")
	}
	pMinus1 := new(big.Int).Sub(params.P, big.NewInt(1))
	if peerPub.Cmp(pMinus1) >= 0 {
		return nil, errors.Wrap(common.ErrInvalidLength, "peer public value not reduced")
	}

	return new(big.Int).Exp(peerPub, priv, params.P).Bytes(), nil
}
