package record

import (
	"errors"
	"fmt"
)

var (
	ErrUnregisteredKind   = errors.New("record: unregistered kind")
	ErrUnknownKind        = errors.New("record: unknown kind")
	ErrKindMismatch       = errors.New("record: kind mismatch")
	ErrTruncated          = errors.New("record: truncated input")
	ErrTrailingBytes      = errors.New("record: trailing bytes")
	ErrPayloadTooLarge    = errors.New("record: payload too large")
	ErrFieldTypeMismatch  = errors.New("record: field type mismatch")
	ErrMissingField       = errors.New("record: missing field value")
	ErrInvalidOpcodeTable = errors.New("record: invalid opcode table")
	ErrInvalidPubkey      = errors.New("record: invalid pubkey")
)

// ErrMalformedLength reports a length prefix that points past the end of the
// input. It matches ErrTruncated under errors.Is.
var ErrMalformedLength = fmt.Errorf("%w: length prefix exceeds input", ErrTruncated)

// DecodeError describes where decoding stopped.
type DecodeError struct {
	Kind   Kind
	Field  string
	Offset int
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("record: decode %s offset=%d: %v", e.Kind, e.Offset, e.Err)
	}
	return fmt.Sprintf("record: decode %s field=%s offset=%d: %v", e.Kind, e.Field, e.Offset, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
