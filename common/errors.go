package common

import "errors"

var (
	// ErrInvalidLength reports a violated length precondition (digest,
	// output or key size) before any cryptographic work is done.
	ErrInvalidLength = errors.New("invalid length")

	// ErrUnsupportedAlgorithm reports a hash or cipher identifier this
	// layer does not implement.
	ErrUnsupportedAlgorithm = errors.New("unsupported algorithm")

	// ErrPadding reports a malformed PKCS#1 block.
	ErrPadding = errors.New("bad padding")

	// ErrDecryption is the single undifferentiated failure for record
	// decryption: CBC padding and MAC verification both return it, so a
	// peer cannot tell which check failed.
	ErrDecryption = errors.New("decryption failed")

	// ErrLengthMismatch reports a fixed-size operation fed buffers of
	// different lengths.
	ErrLengthMismatch = errors.New("length mismatch")
)
