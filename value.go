package evmabi

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"reflect"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"
)

var (
	errNotNumeric  = errors.New("numeric value expected")
	errNotList     = errors.New("slice or array value expected")
	errNilValue    = errors.New("nil value")
	errBadNumber   = errors.New("malformed numeric string")
	errOutOfRange  = errors.New("value out of range")
	errNegative    = errors.New("negative value for unsigned type")
	errWrongLength = errors.New("wrong length")
)

// toBigInt converts the numeric Go values accepted by integer, address and
// fixed-bytes types. Strings are hex when prefixed with 0x or when they
// contain hex letters, decimal otherwise.
func toBigInt(v any) (*big.Int, error) {
	switch n := v.(type) {
	case nil:
		return nil, errNilValue
	case *big.Int:
		if n == nil {
			return nil, errNilValue
		}
		return new(big.Int).Set(n), nil
	case big.Int:
		return new(big.Int).Set(&n), nil
	case *uint256.Int:
		if n == nil {
			return nil, errNilValue
		}
		return n.ToBig(), nil
	case uint256.Int:
		return n.ToBig(), nil
	case int:
		return big.NewInt(int64(n)), nil
	case int8:
		return big.NewInt(int64(n)), nil
	case int16:
		return big.NewInt(int64(n)), nil
	case int32:
		return big.NewInt(int64(n)), nil
	case int64:
		return big.NewInt(n), nil
	case uint:
		return new(big.Int).SetUint64(uint64(n)), nil
	case uint8:
		return new(big.Int).SetUint64(uint64(n)), nil
	case uint16:
		return new(big.Int).SetUint64(uint64(n)), nil
	case uint32:
		return new(big.Int).SetUint64(uint64(n)), nil
	case uint64:
		return new(big.Int).SetUint64(n), nil
	case []byte:
		return new(big.Int).SetBytes(n), nil
	case common.Hash:
		return new(big.Int).SetBytes(n[:]), nil
	case json.Number:
		return parseNumber(n.String())
	case string:
		return parseNumber(n)
	}
	return nil, errNotNumeric
}

func parseNumber(s string) (*big.Int, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	base := 10
	if strings.HasPrefix(s, "0x") {
		s = s[2:]
		base = 16
	} else if strings.ContainsAny(s, "abcdef") {
		base = 16
	}

	x, ok := new(big.Int).SetString(s, base)
	if !ok {
		return nil, errBadNumber
	}
	if neg {
		x.Neg(x)
	}
	return x, nil
}

// isNumeric reports whether v is a Go number rather than text or bytes.
func isNumeric(v any) bool {
	switch v.(type) {
	case *big.Int, big.Int, *uint256.Int, uint256.Int, json.Number,
		int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return true
	}
	return false
}

// encodeSigned writes x as a 32-byte two's complement word. x must fit bits.
func encodeSigned(x *big.Int, bits int) ([]byte, error) {
	limit := new(big.Int).Lsh(big.NewInt(1), uint(bits-1))
	if x.Cmp(limit) >= 0 || x.Cmp(new(big.Int).Neg(limit)) < 0 {
		return nil, errOutOfRange
	}
	u, _ := uint256.FromBig(x)
	word := u.Bytes32()
	return word[:], nil
}

// encodeUnsigned writes x as a 32-byte big-endian word. x must be
// non-negative and fit bits.
func encodeUnsigned(x *big.Int, bits int) ([]byte, error) {
	if x.Sign() < 0 {
		return nil, errNegative
	}
	if x.BitLen() > bits {
		return nil, errOutOfRange
	}
	u, _ := uint256.FromBig(x)
	word := u.Bytes32()
	return word[:], nil
}

func decodeSigned(word []byte) *big.Int {
	u := new(uint256.Int).SetBytes32(word)
	if u.Sign() >= 0 {
		return u.ToBig()
	}
	return new(big.Int).Neg(new(uint256.Int).Neg(u).ToBig())
}

func decodeUnsigned(word []byte) *big.Int {
	return new(uint256.Int).SetBytes32(word).ToBig()
}

// encodeLength writes a non-negative length or offset as one word.
func encodeLength(n int) []byte {
	word := uint256.NewInt(uint64(n)).Bytes32()
	return word[:]
}

// toBytes returns the raw bytes of byte-like values: []byte and any
// fixed-size byte array such as common.Hash or [24]byte.
func toBytes(v any) ([]byte, bool) {
	switch b := v.(type) {
	case []byte:
		return b, true
	case common.Hash:
		return b[:], true
	case common.Address:
		return b[:], true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Array && rv.Type().Elem().Kind() == reflect.Uint8 {
		out := make([]byte, rv.Len())
		reflect.Copy(reflect.ValueOf(out), rv)
		return out, true
	}
	return nil, false
}

// toList flattens any Go slice or array into []any.
func toList(v any) ([]any, error) {
	if l, ok := v.([]any); ok {
		return l, nil
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, errNotList
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, nil
}

// toTupleValues orders a tuple value by component: []any and other lists are
// taken positionally, map[string]any by component name.
func toTupleValues(t *Type, v any) ([]any, error) {
	if m, ok := v.(map[string]any); ok {
		out := make([]any, len(t.components))
		for i, name := range t.names {
			val, found := m[name]
			if !found {
				return nil, fmt.Errorf("missing tuple component %q", name)
			}
			out[i] = val
		}
		return out, nil
	}

	values, err := toList(v)
	if err != nil {
		return nil, err
	}
	if len(values) != len(t.components) {
		return nil, fmt.Errorf("%w: tuple has %d components, got %d values", errWrongLength, len(t.components), len(values))
	}
	return values, nil
}

// displayValue converts a decoded value for presentation: byte sequences
// and addresses become 0x-prefixed lowercase hex, lists convert
// element-wise. Everything else is returned unchanged.
func displayValue(v any) any {
	switch x := v.(type) {
	case []byte:
		return hexutil.Encode(x)
	case common.Address:
		return hexutil.Encode(x[:])
	case []any:
		out := make([]any, len(x))
		for i, elem := range x {
			out[i] = displayValue(elem)
		}
		return out
	}
	return v
}
