package chain

import "github.com/cockroachdb/errors"

// Every decode failure wraps exactly one of these. Use errors.Is to tell them apart.
var (
	ErrNonHexInput    = errors.New("input is not an even-length hex string")
	ErrTruncatedInput = errors.New("declared field exceeds remaining bytes")
	ErrInvalidVarInt  = errors.New("compact size prefix exceeds remaining bytes")
	ErrLengthMismatch = errors.New("transaction length does not match buffer length")
)
