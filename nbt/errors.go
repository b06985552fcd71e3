package nbt

import (
	"fmt"

	"golang.org/x/xerrors"
)

// ErrorKind is the exhaustive NBT-layer error taxonomy. Region and
// block packages define their own kinds for container- and decode-layer
// failures, wrapping these where a parse happens underneath them.
type ErrorKind int

const (
	_ ErrorKind = iota
	ErrIoFailure
	ErrUnexpectedEnd
	ErrInvalidKind
	ErrInvalidUtf8
	ErrNegativeLength
	ErrStructuralError
	ErrWrongKind
	ErrInvalidRoot
)

func (k ErrorKind) String() string {
	switch k {
	case ErrIoFailure:
		return "IoFailure"
	case ErrUnexpectedEnd:
		return "UnexpectedEnd"
	case ErrInvalidKind:
		return "InvalidKind"
	case ErrInvalidUtf8:
		return "InvalidUtf8"
	case ErrNegativeLength:
		return "NegativeLength"
	case ErrStructuralError:
		return "StructuralError"
	case ErrWrongKind:
		return "WrongKind"
	case ErrInvalidRoot:
		return "InvalidRoot"
	default:
		return "Unknown"
	}
}

// ParseError is returned by the streaming parser and by Document.Load. Offset
// is the byte position (relative to the start of the decompressed tag
// stream) at which the failure was detected.
type ParseError struct {
	Kind   ErrorKind
	Offset int64
	Cause  error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("nbt: %s at offset %d: %v", e.Kind, e.Offset, e.Cause)
	}
	return fmt.Sprintf("nbt: %s at offset %d", e.Kind, e.Offset)
}

func (e *ParseError) Unwrap() error { return e.Cause }

func newParseError(kind ErrorKind, offset int64, cause error) *ParseError {
	return &ParseError{Kind: kind, Offset: offset, Cause: cause}
}

func wrapParseError(kind ErrorKind, offset int64, format string, args ...interface{}) *ParseError {
	return &ParseError{Kind: kind, Offset: offset, Cause: xerrors.Errorf(format, args...)}
}

// StructuralError is returned by the streaming Writer and by tree mutators
// when an operation would violate an NBT grammar invariant.
type StructuralError struct {
	Reason string
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("nbt: structural error: %s", e.Reason)
}

func newStructuralError(format string, args ...interface{}) *StructuralError {
	return &StructuralError{Reason: fmt.Sprintf(format, args...)}
}

// WrongKindError is returned by typed tree accessors when the node's actual
// kind differs from the kind requested.
type WrongKindError struct {
	Want Kind
	Got  Kind
}

func (e *WrongKindError) Error() string {
	return fmt.Sprintf("nbt: wrong kind: want %s, got %s", e.Want, e.Got)
}

func newWrongKind(want, got Kind) *WrongKindError {
	return &WrongKindError{Want: want, Got: got}
}
