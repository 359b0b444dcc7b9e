package dh

import (
	"crypto/rand"
	"math/big"
	"testing"

	"legacy-tls/common"

	"github.com/stretchr/testify/suite"
)

type DHTestSuite struct {
	suite.Suite

	params Params
}

func TestDHTestSuite(t *testing.T) {
	suite.Run(t, new(DHTestSuite))
}

func (s *DHTestSuite) SetupTest() {
	params, err := GroupForSize(1024)
	s.Require().NoError(err)
	s.params = params
}

func (s *DHTestSuite) TestGroupForSize() {
	for _, bits := range []int{1024, 1536, 2048} {
		params, err := GroupForSize(bits)
		s.Require().NoError(err)
		s.Equal(bits, params.P.BitLen())
		s.True(params.P.Bit(0) == 1, "modulus must be odd")
	}

	_, err := GroupForSize(512)
	s.ErrorIs(err, common.ErrUnsupportedAlgorithm)
}

func (s *DHTestSuite) TestGenerate() {
	kp, err := Generate(rand.Reader, 1024)
	s.Require().NoError(err)

	s.Equal(s.params.P, kp.P)
	s.Positive(kp.Priv.Sign())
	s.Negative(kp.Pub.Cmp(kp.P))
	s.Positive(kp.Pub.Cmp(big.NewInt(1)))

	// g^priv mod p really is the public value.
	s.Zero(kp.Pub.Cmp(new(big.Int).Exp(kp.G, kp.Priv, kp.P)))
}

func (s *DHTestSuite) TestExponentLengthScalesWithGroup() {
	kp1024, err := Generate(rand.Reader, 1024)
	s.Require().NoError(err)
	s.Equal(160, kp1024.Priv.BitLen())

	kp1536, err := Generate(rand.Reader, 1536)
	s.Require().NoError(err)
	s.Equal(192, kp1536.Priv.BitLen())

	// The RFC 5114 group publishes a 256-bit subgroup order; the
	// exponent must stay below it.
	kp2048, err := Generate(rand.Reader, 2048)
	s.Require().NoError(err)
	s.Negative(kp2048.Priv.Cmp(kp2048.Q))
	s.Positive(kp2048.Priv.Sign())
}

func (s *DHTestSuite) TestSharedIsSymmetric() {
	for _, bits := range []int{1024, 2048} {
		a, err := Generate(rand.Reader, bits)
		s.Require().NoError(err)
		b, err := Generate(rand.Reader, bits)
		s.Require().NoError(err)

		sharedA, err := Shared(a.Params, a.Priv, b.Pub)
		s.Require().NoError(err)
		sharedB, err := Shared(b.Params, b.Priv, a.Pub)
		s.Require().NoError(err)

		s.Equal(sharedA, sharedB)
		s.NotEmpty(sharedA)
	}
}

func (s *DHTestSuite) TestSharedRejectsDegeneratePublicValues() {
	kp, err := GenerateFrom(rand.Reader, s.params)
	s.Require().NoError(err)

	pMinus1 := new(big.Int).Sub(s.params.P, big.NewInt(1))

	for _, peerPub := range []*big.Int{
		nil,
		big.NewInt(0),
		big.NewInt(1),
		pMinus1,
		s.params.P,
		new(big.Int).Add(s.params.P, big.NewInt(5)),
	} {
		_, err := Shared(s.params, kp.Priv, peerPub)
		s.ErrorIs(err, common.ErrInvalidLength)
	}
}

func (s *DHTestSuite) TestServerParamsRoundTrip() {
	kp, err := GenerateFrom(rand.Reader, s.params)
	s.Require().NoError(err)

	trailer := []byte{0xde, 0xad}
	b, err := MarshalServerParams(kp.Params, kp.Pub)
	s.Require().NoError(err)
	b = append(b, trailer...)

	params, pub, rest, err := ParseServerParams(b)
	s.Require().NoError(err)
	s.Zero(params.P.Cmp(kp.P))
	s.Zero(params.G.Cmp(kp.G))
	s.Zero(pub.Cmp(kp.Pub))
	s.Equal(trailer, rest)
}

func (s *DHTestSuite) TestParseServerParamsTruncated() {
	kp, err := GenerateFrom(rand.Reader, s.params)
	s.Require().NoError(err)

	b, err := MarshalServerParams(kp.Params, kp.Pub)
	s.Require().NoError(err)

	for _, cut := range []int{1, 2, len(b) / 2, len(b) - 1} {
		_, _, _, err := ParseServerParams(b[:cut])
		s.ErrorIs(err, common.ErrInvalidLength)
	}
}
