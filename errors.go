package evmabi

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure conditions.
var (
	// ErrInvalidHex indicates a hex string could not be parsed.
	ErrInvalidHex = errors.New("evmabi: invalid hex string")

	// ErrShortBuffer indicates a read past the end of the input.
	ErrShortBuffer = errors.New("evmabi: buffer too short")

	// ErrOffsetOutOfRange indicates an offset or length word does not fit the input.
	ErrOffsetOutOfRange = errors.New("evmabi: offset out of range")

	// ErrMaxDepth indicates nested batch decoding exceeded the configured depth.
	ErrMaxDepth = errors.New("evmabi: maximum batch nesting depth exceeded")

	// ErrUnknownEntryType indicates an ABI entry record has an unsupported type.
	ErrUnknownEntryType = errors.New("evmabi: unknown entry type")

	// ErrMissingTopic indicates a log carries fewer topics than its event indexes.
	ErrMissingTopic = errors.New("evmabi: not enough log topics")

	// ErrSelectorMismatch indicates data that starts with another entry's selector.
	ErrSelectorMismatch = errors.New("evmabi: selector mismatch")
)

// TypeParseError indicates a type name that matches no type variant.
type TypeParseError struct {
	Name   string
	Reason string
}

func (e *TypeParseError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("evmabi: unknown type %q", e.Name)
	}
	return fmt.Sprintf("evmabi: invalid type %q: %s", e.Name, e.Reason)
}

// EncodingError indicates a value that does not satisfy the target type.
type EncodingError struct {
	Type  string
	Value any
	Err   error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("evmabi: cannot encode %T as %s: %v", e.Value, e.Type, e.Err)
}

func (e *EncodingError) Unwrap() error {
	return e.Err
}

// DecodingError indicates malformed or truncated input for a type.
type DecodingError struct {
	Type   string
	Offset int
	Err    error
}

func (e *DecodingError) Error() string {
	return fmt.Sprintf("evmabi: cannot decode %s at offset %d: %v", e.Type, e.Offset, e.Err)
}

func (e *DecodingError) Unwrap() error {
	return e.Err
}

// ArgumentCountError indicates a call was given the wrong number of arguments.
// It is always returned wrapped in an EncodingError.
type ArgumentCountError struct {
	Method string
	Got    int
	Want   int
}

func (e *ArgumentCountError) Error() string {
	if e.Got > e.Want {
		return fmt.Sprintf("evmabi: too many arguments for %s: %d > %d", e.Method, e.Got, e.Want)
	}
	return fmt.Sprintf("evmabi: too few arguments for %s: %d < %d", e.Method, e.Got, e.Want)
}

// LogError identifies the log that failed in a strict batch decode.
type LogError struct {
	Index   int
	Address string
	Err     error
}

func (e *LogError) Error() string {
	if e.Address == "" {
		return fmt.Sprintf("evmabi: log %d: %v", e.Index, e.Err)
	}
	return fmt.Sprintf("evmabi: log %d (%s): %v", e.Index, e.Address, e.Err)
}

func (e *LogError) Unwrap() error {
	return e.Err
}

func encodingErr(t *Type, v any, err error) error {
	return &EncodingError{Type: t.String(), Value: v, Err: err}
}

func decodingErr(t *Type, offset int, err error) error {
	return &DecodingError{Type: t.String(), Offset: offset, Err: err}
}
