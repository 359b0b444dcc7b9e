package dh

import (
	"math/big"

	"legacy-tls/common"

	"github.com/pkg/errors"
	"golang.org/x/crypto/cryptobyte"
)

// MarshalServerParams encodes p, g and the server public value as the
// ServerDHParams triple: each value big-endian with a 2-byte length
// prefix.
//
// Reference: https://datatracker.ietf.org/doc/html/rfc2246#section-7.4.3
func MarshalServerParams(params Params, pub *big.Int) ([]byte, error) {
	var b cryptobyte.Builder
	for _, v := range []*big.Int{params.P, params.G, pub} {
		vBytes := v.Bytes()
		b.AddUint16LengthPrefixed(func(b *cryptobyte.Builder) {
			b.AddBytes(vBytes)
		})
	}

	out, err := b.Bytes()
	if err != nil {
		return nil, errors.Wrap(err, "building server dh params")
	}
	return out, nil
}

// ParseServerParams decodes a ServerDHParams triple, returning the group,
// the server public value, and any trailing bytes (the signature over the
// params follows in the same message).
func ParseServerParams(b []byte) (params Params, pub *big.Int, rest []byte, err error) {
	s := cryptobyte.String(b)

	values := make([]*big.Int, 3)
	for i := range values {
		var v cryptobyte.String
		if !s.ReadUint16LengthPrefixed(&v) || v.Empty() {
			return Params{}, nil, nil, errors.Wrap(common.ErrInvalidLength, "truncated server dh params")
		}
		values[i] = new(big.Int).SetBytes(v)
	}

	return Params{P: values[0], G: values[1]}, values[2], []byte(s), nil
}
