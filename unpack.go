package evmabi

import (
	"errors"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// Decode reads a value of type t from buf. For static types offset is the
// position of the value itself; for dynamic types it is the position of
// the payload, already resolved from the enclosing tuple's offset word.
func (t *Type) Decode(buf []byte, offset int) (any, error) {
	switch t.kind {
	case BoolKind:
		word, err := readWord(buf, offset)
		if err != nil {
			return nil, decodingErr(t, offset, err)
		}
		return !new(uint256.Int).SetBytes32(word).IsZero(), nil

	case IntKind:
		word, err := readWord(buf, offset)
		if err != nil {
			return nil, decodingErr(t, offset, err)
		}
		return decodeSigned(word), nil

	case UintKind:
		word, err := readWord(buf, offset)
		if err != nil {
			return nil, decodingErr(t, offset, err)
		}
		return decodeUnsigned(word), nil

	case AddressKind:
		word, err := readWord(buf, offset)
		if err != nil {
			return nil, decodingErr(t, offset, err)
		}
		return common.BytesToAddress(word[WordSize-AddressSize:]), nil

	case FixedBytesKind, FunctionKind:
		word, err := readWord(buf, offset)
		if err != nil {
			return nil, decodingErr(t, offset, err)
		}
		out := make([]byte, t.size)
		copy(out, word[:t.size])
		return out, nil

	case BytesKind:
		b, err := readBytes(buf, offset)
		if err != nil {
			return nil, decodingErr(t, offset, err)
		}
		return b, nil

	case StringKind:
		b, err := readBytes(buf, offset)
		if err != nil {
			return nil, decodingErr(t, offset, err)
		}
		return string(b), nil

	case ArrayKind:
		// A static array needs its full footprint; a dynamic one needs at
		// least one head slot per element.
		avail := len(buf) - offset
		if (!t.IsDynamic() && t.FixedSize() > avail) || (t.IsDynamic() && t.size > avail/WordSize) {
			return nil, decodingErr(t, offset, ErrShortBuffer)
		}
		return decodeTuple(repeatType(t.elem, t.size), buf, offset)

	case SliceKind:
		n, err := readLength(buf, offset)
		if err != nil {
			return nil, decodingErr(t, offset, err)
		}
		start := offset + WordSize
		// Every element occupies at least one head slot, so a count that
		// cannot fit the remaining input is rejected before allocating.
		if n > 0 && n > (len(buf)-start)/WordSize {
			return nil, decodingErr(t, offset, ErrOffsetOutOfRange)
		}
		return decodeTuple(repeatType(t.elem, n), buf, start)

	case TupleKind:
		return decodeTuple(t.components, buf, offset)
	}

	return nil, decodingErr(t, offset, errors.New("unsupported kind "+t.kind.String()))
}

// decodeTuple reads len(types) values laid out head/tail from origin. The
// cursor advances by each type's FixedSize; dynamic slots hold offsets
// relative to origin.
func decodeTuple(types []*Type, buf []byte, origin int) ([]any, error) {
	out := make([]any, len(types))
	cursor := origin
	for i, t := range types {
		var (
			v   any
			err error
		)
		if t.IsDynamic() {
			rel, lerr := readLength(buf, cursor)
			if lerr != nil {
				return nil, decodingErr(t, cursor, lerr)
			}
			v, err = t.Decode(buf, origin+rel)
		} else {
			v, err = t.Decode(buf, cursor)
		}
		if err != nil {
			return nil, err
		}
		out[i] = v
		cursor += t.FixedSize()
	}
	return out, nil
}

func readWord(buf []byte, offset int) ([]byte, error) {
	if offset < 0 || offset > len(buf)-WordSize {
		return nil, ErrShortBuffer
	}
	return buf[offset : offset+WordSize], nil
}

// readLength reads a word used as a length or offset. Values larger than
// the buffer can never be valid and are rejected.
func readLength(buf []byte, offset int) (int, error) {
	word, err := readWord(buf, offset)
	if err != nil {
		return 0, err
	}
	u := new(uint256.Int).SetBytes32(word)
	if !u.IsUint64() || u.Uint64() > uint64(len(buf)) {
		return 0, ErrOffsetOutOfRange
	}
	return int(u.Uint64()), nil
}

// readBytes reads a length-prefixed payload. Padding after the payload is
// not required to be present.
func readBytes(buf []byte, offset int) ([]byte, error) {
	n, err := readLength(buf, offset)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return []byte{}, nil
	}
	start := offset + WordSize
	if start+n > len(buf) {
		return nil, ErrShortBuffer
	}
	out := make([]byte, n)
	copy(out, buf[start:start+n])
	return out, nil
}
