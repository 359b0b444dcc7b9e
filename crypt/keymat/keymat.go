// Package keymat slices the derived key block into per-direction keys
// and scopes their lifetime.
package keymat

import (
	"github.com/pkg/errors"

	"legacy-tls/common"
)

// Keys is the key block split into its six protocol positions.
//
// Reference: https://datatracker.ietf.org/doc/html/rfc2246#section-6.3
type Keys struct {
	ClientMAC []byte
	ServerMAC []byte
	ClientKey []byte
	ServerKey []byte
	ClientIV  []byte
	ServerIV  []byte
}

// Slice splits keyBlock in protocol order: client MAC, server MAC, client
// key, server key, client IV, server IV. The block must be exactly
// 2*(macLen+keyLen+ivLen) bytes.
func Slice(keyBlock []byte, macLen, keyLen, ivLen int) (Keys, error) {
	if macLen < 0 || keyLen < 0 || ivLen < 0 {
		return Keys{}, errors.Wrap(common.ErrInvalidLength, "negative key length")
	}

	need := 2 * (macLen + keyLen + ivLen)
	if len(keyBlock) != need {
		return Keys{}, errors.Wrapf(common.ErrInvalidLength, "key block is %d bytes, want %d", len(keyBlock), need)
	}

	next := func(n int) []byte {
		out := keyBlock[:n:n]
		keyBlock = keyBlock[n:]
		return out
	}

	return Keys{
		ClientMAC: next(macLen),
		ServerMAC: next(macLen),
		ClientKey: next(keyLen),
		ServerKey: next(keyLen),
		ClientIV:  next(ivLen),
		ServerIV:  next(ivLen),
	}, nil
}
