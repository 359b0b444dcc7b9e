package record

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"testing"

	"legacy-tls/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPad(t *testing.T) {
	for _, blockSize := range []int{8, 16} {
		for msgLen := 0; msgLen <= 3*blockSize+1; msgLen++ {
			pad := Pad(blockSize, msgLen)

			assert.Zero(t, (msgLen+len(pad))%blockSize)
			assert.GreaterOrEqual(t, len(pad), 1)
			assert.LessOrEqual(t, len(pad), blockSize)
			for _, b := range pad {
				assert.Equal(t, byte(len(pad)-1), b)
			}
		}
	}
}

var cbcCiphers = map[common.CipherID]struct{ keyLen, blockLen int }{
	common.CipherDES_EDE_CBC: {24, 8},
	common.CipherAES_128_CBC: {16, 16},
	common.CipherAES_256_CBC: {32, 16},
}

func testKeyIV(keyLen, blockLen int) (key, iv []byte) {
	key = make([]byte, keyLen)
	for i := range key {
		key[i] = byte(i + 1)
	}
	iv = make([]byte, blockLen)
	for i := range iv {
		iv[i] = byte(0xa0 + i)
	}
	return key, iv
}

func TestCBCRoundTrip(t *testing.T) {
	for id, sizes := range cbcCiphers {
		t.Run(id.String(), func(t *testing.T) {
			key, iv := testKeyIV(sizes.keyLen, sizes.blockLen)

			for _, msgLen := range []int{0, 1, sizes.blockLen - 1, sizes.blockLen, 3*sizes.blockLen + 1} {
				msg := bytes.Repeat([]byte{0x5a}, msgLen)

				ct, encIV, err := CBCEncrypt(id, key, iv, msg)
				require.NoError(t, err)
				assert.Zero(t, len(ct)%sizes.blockLen)
				assert.Equal(t, ct[len(ct)-sizes.blockLen:], encIV)

				pt, decIV, err := CBCDecrypt(id, key, iv, ct)
				require.NoError(t, err)
				assert.Equal(t, msg, pt)
				assert.Equal(t, encIV, decIV)
			}
		})
	}
}

func TestCBCIVChaining(t *testing.T) {
	key, iv0 := testKeyIV(16, 16)
	r1 := []byte("first record payload")
	r2 := []byte("second record payload")

	ct1, iv1, err := CBCEncrypt(common.CipherAES_128_CBC, key, iv0, r1)
	require.NoError(t, err)
	ct2, _, err := CBCEncrypt(common.CipherAES_128_CBC, key, iv1, r2)
	require.NoError(t, err)

	// The decrypting side recovers the same chaining value and uses it
	// for the next record.
	pt1, decIV1, err := CBCDecrypt(common.CipherAES_128_CBC, key, iv0, ct1)
	require.NoError(t, err)
	assert.Equal(t, r1, pt1)
	assert.Equal(t, iv1, decIV1)

	pt2, _, err := CBCDecrypt(common.CipherAES_128_CBC, key, decIV1, ct2)
	require.NoError(t, err)
	assert.Equal(t, r2, pt2)

	// Breaking the chain corrupts the first plaintext block.
	broken, _, err := CBCDecrypt(common.CipherAES_128_CBC, key, iv0, ct2)
	if err == nil {
		assert.NotEqual(t, r2, broken)
	}

	// Chained records are byte-identical to one CBC pass over the
	// concatenated padded plaintexts.
	assert.Equal(t, ct2, func() []byte {
		b, err := aes.NewCipher(key)
		require.NoError(t, err)
		buf := append(append([]byte{}, r2...), Pad(16, len(r2))...)
		cipher.NewCBCEncrypter(b, iv1).CryptBlocks(buf, buf)
		return buf
	}())
}

func TestCBCDecryptRejectsBadPadding(t *testing.T) {
	key, iv := testKeyIV(16, 16)

	encryptRaw := func(padded []byte) []byte {
		b, err := aes.NewCipher(key)
		require.NoError(t, err)
		out := make([]byte, len(padded))
		cipher.NewCBCEncrypter(b, iv).CryptBlocks(out, padded)
		return out
	}

	t.Run("one padding byte differs", func(t *testing.T) {
		padded := append(bytes.Repeat([]byte{0x5a}, 13), 0x02, 0x01, 0x02)
		_, _, err := CBCDecrypt(common.CipherAES_128_CBC, key, iv, encryptRaw(padded))
		assert.ErrorIs(t, err, common.ErrDecryption)
	})

	t.Run("declared padding exceeds plaintext", func(t *testing.T) {
		padded := bytes.Repeat([]byte{0xff}, 16)
		_, _, err := CBCDecrypt(common.CipherAES_128_CBC, key, iv, encryptRaw(padded))
		assert.ErrorIs(t, err, common.ErrDecryption)
	})

	t.Run("misaligned ciphertext", func(t *testing.T) {
		_, _, err := CBCDecrypt(common.CipherAES_128_CBC, key, iv, make([]byte, 17))
		assert.ErrorIs(t, err, common.ErrDecryption)
	})

	t.Run("empty ciphertext", func(t *testing.T) {
		_, _, err := CBCDecrypt(common.CipherAES_128_CBC, key, iv, nil)
		assert.ErrorIs(t, err, common.ErrDecryption)
	})
}

func TestCBCUnsupportedCipher(t *testing.T) {
	key, iv := testKeyIV(16, 16)

	_, _, err := CBCEncrypt(common.CipherID(99), key, iv, []byte("x"))
	assert.ErrorIs(t, err, common.ErrUnsupportedAlgorithm)

	// A stream identifier is not a CBC cipher.
	_, _, err = CBCEncrypt(common.CipherRC4_128, key, iv, []byte("x"))
	assert.ErrorIs(t, err, common.ErrUnsupportedAlgorithm)

	_, _, err = CBCDecrypt(common.CipherID(99), key, iv, make([]byte, 16))
	assert.ErrorIs(t, err, common.ErrUnsupportedAlgorithm)
}

func TestCBCWrongIVLength(t *testing.T) {
	key, _ := testKeyIV(16, 16)

	_, _, err := CBCEncrypt(common.CipherAES_128_CBC, key, make([]byte, 8), []byte("x"))
	assert.ErrorIs(t, err, common.ErrInvalidLength)
}

func TestInfo(t *testing.T) {
	keyLen, blockLen, err := Info(common.CipherAES_256_CBC)
	require.NoError(t, err)
	assert.Equal(t, 32, keyLen)
	assert.Equal(t, 16, blockLen)

	_, _, err = Info(common.CipherID(42))
	assert.ErrorIs(t, err, common.ErrUnsupportedAlgorithm)
}
