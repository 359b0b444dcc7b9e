// Package secret holds byte-buffer hygiene helpers for key material.
package secret

import "legacy-tls/common"

// Zeroize wipes b in place. Callers wipe every secret buffer on each exit
// path; the protocol-mandated lifetime of derived keys ends with the
// session.
func Zeroize(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// XOR sets dst[i] = a[i] ^ b[i]. All three must have the same length,
// otherwise common.ErrLengthMismatch.
func XOR(dst, a, b []byte) error {
	if len(a) != len(b) || len(dst) != len(a) {
		return common.ErrLengthMismatch
	}
	for i := range a {
		dst[i] = a[i] ^ b[i]
	}
	return nil
}

// Buffer is an owned secret buffer. It exists so that ownership of key
// material is explicit: whoever holds the Buffer wipes it.
type Buffer struct {
	b []byte
}

func NewBuffer(b []byte) *Buffer {
	owned := make([]byte, len(b))
	copy(owned, b)
	return &Buffer{b: owned}
}

func (s *Buffer) Bytes() []byte { return s.b }

func (s *Buffer) Len() int { return len(s.b) }

// Wipe zeroizes the buffer. The Buffer is unusable afterwards.
func (s *Buffer) Wipe() {
	Zeroize(s.b)
	s.b = nil
}
