package evmabi

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Encoding constants.
const (
	// SelectorSize is the length of a function or error selector.
	SelectorSize = 4

	// AddressSize is the length of an address.
	AddressSize = 20

	// FunctionSize is the length of a function type value: address plus selector.
	FunctionSize = AddressSize + SelectorSize
)

// Encode converts v into the ABI encoding of t. Static types produce their
// full head encoding; dynamic types produce the tail payload that the
// enclosing tuple places after its head.
func (t *Type) Encode(v any) ([]byte, error) {
	switch t.kind {
	case BoolKind:
		b, ok := v.(bool)
		if !ok {
			return nil, encodingErr(t, v, errors.New("bool value expected"))
		}
		word := make([]byte, WordSize)
		if b {
			word[WordSize-1] = 1
		}
		return word, nil

	case IntKind, UintKind:
		x, err := toBigInt(v)
		if err != nil {
			return nil, encodingErr(t, v, err)
		}
		var word []byte
		if t.kind == IntKind {
			word, err = encodeSigned(x, t.size)
		} else {
			word, err = encodeUnsigned(x, t.size)
		}
		if err != nil {
			return nil, encodingErr(t, v, err)
		}
		return word, nil

	case AddressKind:
		return t.encodeAddress(v)

	case FixedBytesKind:
		return t.encodeFixedBytes(v)

	case FunctionKind:
		b, ok := toBytes(v)
		if !ok || len(b) != FunctionSize {
			return nil, encodingErr(t, v, fmt.Errorf("%w: function value must be %d bytes", errWrongLength, FunctionSize))
		}
		return common.RightPadBytes(b, WordSize), nil

	case BytesKind:
		switch b := v.(type) {
		case []byte:
			return packBytes(b), nil
		case string:
			return packBytes([]byte(b)), nil
		}
		return nil, encodingErr(t, v, errors.New("byte slice or string expected"))

	case StringKind:
		s, ok := v.(string)
		if !ok {
			return nil, encodingErr(t, v, errors.New("string value expected"))
		}
		return packBytes([]byte(s)), nil

	case ArrayKind:
		elems, err := toList(v)
		if err != nil {
			return nil, encodingErr(t, v, err)
		}
		if len(elems) != t.size {
			return nil, encodingErr(t, v, fmt.Errorf("%w: want %d elements, got %d", errWrongLength, t.size, len(elems)))
		}
		return encodeTuple(repeatType(t.elem, t.size), elems)

	case SliceKind:
		elems, err := toList(v)
		if err != nil {
			return nil, encodingErr(t, v, err)
		}
		body, err := encodeTuple(repeatType(t.elem, len(elems)), elems)
		if err != nil {
			return nil, err
		}
		return append(encodeLength(len(elems)), body...), nil

	case TupleKind:
		values, err := toTupleValues(t, v)
		if err != nil {
			return nil, encodingErr(t, v, err)
		}
		return encodeTuple(t.components, values)
	}

	return nil, encodingErr(t, v, fmt.Errorf("unsupported kind %s", t.kind))
}

func (t *Type) encodeAddress(v any) ([]byte, error) {
	var x *big.Int
	switch a := v.(type) {
	case common.Address:
		return common.LeftPadBytes(a[:], WordSize), nil
	case *common.Address:
		if a == nil {
			return nil, encodingErr(t, v, errNilValue)
		}
		return common.LeftPadBytes(a[:], WordSize), nil
	case string:
		// Addresses are always hex, with or without the prefix.
		b, err := DecodeHex(a)
		if err != nil {
			return nil, encodingErr(t, v, err)
		}
		x = new(big.Int).SetBytes(b)
	default:
		if b, ok := toBytes(v); ok {
			x = new(big.Int).SetBytes(b)
			break
		}
		n, err := toBigInt(v)
		if err != nil {
			return nil, encodingErr(t, v, err)
		}
		x = n
	}

	word, err := encodeUnsigned(x, AddressSize*8)
	if err != nil {
		return nil, encodingErr(t, v, fmt.Errorf("address wider than %d bytes: %w", AddressSize, err))
	}
	return word, nil
}

// encodeFixedBytes writes text and byte values at the start of the word,
// zero padded on the right. Numeric values are written big-endian at the
// end of the word, which only round-trips for bytes32 or zero.
func (t *Type) encodeFixedBytes(v any) ([]byte, error) {
	var data []byte
	switch b := v.(type) {
	case string:
		data = []byte(b)
	default:
		if isNumeric(v) {
			x, err := toBigInt(v)
			if err != nil {
				return nil, encodingErr(t, v, err)
			}
			// Only the leading size bytes are read back, so a nonzero number
			// stored at the end of the word must fill the whole word.
			if t.size < WordSize && x.Sign() != 0 {
				return nil, encodingErr(t, v, fmt.Errorf("%w: numeric value for %s must be zero", errOutOfRange, t.CanonicalName()))
			}
			word, err := encodeUnsigned(x, t.size*8)
			if err != nil {
				return nil, encodingErr(t, v, err)
			}
			return word, nil
		}
		raw, ok := toBytes(v)
		if !ok {
			return nil, encodingErr(t, v, errors.New("byte value expected"))
		}
		data = raw
	}

	if len(data) > t.size {
		return nil, encodingErr(t, v, fmt.Errorf("%w: %d bytes exceed %s", errWrongLength, len(data), t.CanonicalName()))
	}
	return common.RightPadBytes(data, WordSize), nil
}

// encodeTuple lays out values with the head/tail scheme. Static values are
// written in place; dynamic values get an offset word, measured from the
// start of this tuple, and their payload is appended after the head.
func encodeTuple(types []*Type, values []any) ([]byte, error) {
	headSize := 0
	for _, t := range types {
		headSize = addSize(headSize, t.FixedSize())
	}

	var head, tail []byte
	for i, t := range types {
		enc, err := t.Encode(values[i])
		if err != nil {
			return nil, err
		}
		if t.IsDynamic() {
			head = append(head, encodeLength(headSize+len(tail))...)
			tail = append(tail, enc...)
		} else {
			head = append(head, enc...)
		}
	}
	return append(head, tail...), nil
}

// packBytes writes the length word followed by the payload padded to a
// word boundary. An empty payload is the length word alone.
func packBytes(b []byte) []byte {
	out := make([]byte, 0, WordSize+paddedLen(len(b)))
	out = append(out, encodeLength(len(b))...)
	out = append(out, b...)
	return append(out, make([]byte, paddedLen(len(b))-len(b))...)
}

func paddedLen(n int) int {
	return (n + WordSize - 1) / WordSize * WordSize
}

func repeatType(t *Type, n int) []*Type {
	types := make([]*Type, n)
	for i := range types {
		types[i] = t
	}
	return types
}
