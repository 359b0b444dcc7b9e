package secret

import (
	"testing"

	"legacy-tls/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZeroize(t *testing.T) {
	b := []byte{0xde, 0xad, 0xbe, 0xef}
	Zeroize(b)
	assert.Equal(t, []byte{0, 0, 0, 0}, b)
}

func TestXOR(t *testing.T) {
	t.Run("equal lengths", func(t *testing.T) {
		dst := make([]byte, 3)
		err := XOR(dst, []byte{0xff, 0x0f, 0x00}, []byte{0x0f, 0x0f, 0xab})
		require.NoError(t, err)
		assert.Equal(t, []byte{0xf0, 0x00, 0xab}, dst)
	})

	t.Run("mismatched lengths", func(t *testing.T) {
		err := XOR(make([]byte, 2), []byte{1, 2}, []byte{1, 2, 3})
		assert.ErrorIs(t, err, common.ErrLengthMismatch)

		err = XOR(make([]byte, 3), []byte{1, 2}, []byte{1, 2})
		assert.ErrorIs(t, err, common.ErrLengthMismatch)
	})
}

func TestBuffer(t *testing.T) {
	orig := []byte{1, 2, 3}
	buf := NewBuffer(orig)

	// Owned copy, not an alias.
	orig[0] = 9
	assert.Equal(t, []byte{1, 2, 3}, buf.Bytes())
	assert.Equal(t, 3, buf.Len())

	held := buf.Bytes()
	buf.Wipe()
	assert.Equal(t, []byte{0, 0, 0}, held)
	assert.Nil(t, buf.Bytes())
}
