package evmabi

import (
	"math"
	"strconv"
	"strings"
)

// WordSize is the size in bytes of every ABI head slot.
const WordSize = 32

// MaxArrayLength is the largest length accepted for a fixed-size array
// dimension.
const MaxArrayLength = 1 << 20

// Kind enumerates the closed set of ABI type variants.
type Kind uint8

const (
	BoolKind Kind = iota
	IntKind
	UintKind
	AddressKind
	FixedBytesKind
	BytesKind
	StringKind
	FunctionKind
	ArrayKind
	SliceKind
	TupleKind
)

var kindNames = [...]string{
	BoolKind:       "bool",
	IntKind:        "int",
	UintKind:       "uint",
	AddressKind:    "address",
	FixedBytesKind: "fixed bytes",
	BytesKind:      "bytes",
	StringKind:     "string",
	FunctionKind:   "function",
	ArrayKind:      "array",
	SliceKind:      "slice",
	TupleKind:      "tuple",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Type is one ABI type variant. A Type is immutable once its parameter has
// been finalized; tuple components are attached during that step.
type Type struct {
	kind Kind

	// size is the bit width for integers, the byte length for fixed bytes
	// and the element count for fixed-length arrays.
	size int

	elem *Type

	components []*Type
	names      []string

	name string
}

// NewType parses an ABI type name such as "uint256", "bytes32[]" or "tuple".
// Tuple components are attached later by NewParameter.
func NewType(name string) (*Type, error) {
	return parseType(strings.TrimSpace(name))
}

// MustNewType is like NewType but panics on error.
func MustNewType(name string) *Type {
	t, err := NewType(name)
	if err != nil {
		panic(err)
	}
	return t
}

// parseType matches the name against the variants in order. The array
// suffix is checked first so "uint256[]" is not taken as an integer; the
// remaining order keeps "bytes" away from bytesN and "int" away from "uint".
func parseType(name string) (*Type, error) {
	switch {
	case name == "":
		return nil, &TypeParseError{Name: name, Reason: "empty type name"}

	case strings.HasSuffix(name, "]"):
		return parseArray(name)

	case strings.EqualFold(name, "tuple"):
		return &Type{kind: TupleKind, name: name}, nil

	case name == "bool":
		return &Type{kind: BoolKind, name: name}, nil

	case strings.HasPrefix(name, "int"):
		bits, err := parseBits(name, "int")
		if err != nil {
			return nil, err
		}
		return &Type{kind: IntKind, size: bits, name: name}, nil

	case name == "string":
		return &Type{kind: StringKind, name: name}, nil

	case name != "bytes" && strings.HasPrefix(name, "bytes"):
		n, err := strconv.Atoi(name[len("bytes"):])
		if err != nil || n < 1 || n > WordSize {
			return nil, &TypeParseError{Name: name, Reason: "fixed bytes length must be 1..32"}
		}
		return &Type{kind: FixedBytesKind, size: n, name: name}, nil

	case name == "bytes":
		return &Type{kind: BytesKind, name: name}, nil

	case name == "function":
		return &Type{kind: FunctionKind, size: 24, name: name}, nil

	case name == "address":
		return &Type{kind: AddressKind, name: name}, nil

	case strings.HasPrefix(name, "uint"):
		bits, err := parseBits(name, "uint")
		if err != nil {
			return nil, err
		}
		return &Type{kind: UintKind, size: bits, name: name}, nil

	case name == "wad", name == "ray":
		// DSMath fixed-point aliases, stored as uint256.
		return &Type{kind: UintKind, size: 256, name: name}, nil
	}

	return nil, &TypeParseError{Name: name}
}

func parseBits(name, prefix string) (int, error) {
	rest := name[len(prefix):]
	if rest == "" {
		return 256, nil
	}
	bits, err := strconv.Atoi(rest)
	if err != nil || bits < 8 || bits > 256 || bits%8 != 0 {
		return 0, &TypeParseError{Name: name, Reason: "bit size must be a multiple of 8 in 8..256"}
	}
	return bits, nil
}

func parseArray(name string) (*Type, error) {
	open := strings.LastIndex(name, "[")
	if open <= 0 {
		return nil, &TypeParseError{Name: name, Reason: "malformed array brackets"}
	}

	elem, err := parseType(name[:open])
	if err != nil {
		return nil, err
	}

	dim := name[open+1 : len(name)-1]
	if dim == "" {
		return &Type{kind: SliceKind, elem: elem, name: name}, nil
	}

	n, err := strconv.Atoi(dim)
	if err != nil || n < 0 {
		return nil, &TypeParseError{Name: name, Reason: "invalid array length " + strconv.Quote(dim)}
	}
	if n > MaxArrayLength {
		return nil, &TypeParseError{Name: name, Reason: "array length exceeds " + strconv.Itoa(MaxArrayLength)}
	}
	return &Type{kind: ArrayKind, elem: elem, size: n, name: name}, nil
}

// Kind returns the type variant.
func (t *Type) Kind() Kind { return t.kind }

// Size returns the bit width for integers, the byte length for fixed bytes
// and function types, and the element count for fixed-length arrays.
func (t *Type) Size() int { return t.size }

// Elem returns the element type of an array or slice, or nil.
func (t *Type) Elem() *Type { return t.elem }

// Components returns the tuple component types in declared order.
func (t *Type) Components() []*Type { return t.components }

// ComponentNames returns the tuple component names in declared order.
func (t *Type) ComponentNames() []string { return t.names }

// String returns the type name as it was declared.
func (t *Type) String() string { return t.name }

// CanonicalName returns the name used in signatures: "uint" becomes
// "uint256" and tuples render as their parenthesized component list.
func (t *Type) CanonicalName() string {
	switch t.kind {
	case BoolKind:
		return "bool"
	case IntKind:
		return "int" + strconv.Itoa(t.size)
	case UintKind:
		return "uint" + strconv.Itoa(t.size)
	case AddressKind:
		return "address"
	case FixedBytesKind:
		return "bytes" + strconv.Itoa(t.size)
	case BytesKind:
		return "bytes"
	case StringKind:
		return "string"
	case FunctionKind:
		return "function"
	case ArrayKind:
		return t.elem.CanonicalName() + "[" + strconv.Itoa(t.size) + "]"
	case SliceKind:
		return t.elem.CanonicalName() + "[]"
	case TupleKind:
		parts := make([]string, len(t.components))
		for i, c := range t.components {
			parts[i] = c.CanonicalName()
		}
		return "(" + strings.Join(parts, ",") + ")"
	}
	return t.name
}

// IsDynamic reports whether the encoded length depends on the value.
// It is derived on every call.
func (t *Type) IsDynamic() bool {
	switch t.kind {
	case BytesKind, StringKind, SliceKind:
		return true
	case ArrayKind:
		return t.size > 0 && t.elem.IsDynamic()
	case TupleKind:
		for _, c := range t.components {
			if c.IsDynamic() {
				return true
			}
		}
	}
	return false
}

// FixedSize returns the head footprint in bytes: the full encoded size for
// static types, or one word (the offset slot) for dynamic types. Sizes that
// do not fit an int saturate at math.MaxInt.
func (t *Type) FixedSize() int {
	if t.IsDynamic() {
		return WordSize
	}
	switch t.kind {
	case ArrayKind:
		return mulSize(t.size, t.elem.FixedSize())
	case TupleKind:
		total := 0
		for _, c := range t.components {
			total = addSize(total, c.FixedSize())
		}
		return total
	}
	return WordSize
}

func addSize(a, b int) int {
	if a > math.MaxInt-b {
		return math.MaxInt
	}
	return a + b
}

func mulSize(n, size int) int {
	if n != 0 && size > math.MaxInt/n {
		return math.MaxInt
	}
	return n * size
}

// innermostTuple follows array element types down to a tuple, if any.
func (t *Type) innermostTuple() *Type {
	cur := t
	for cur.kind == ArrayKind || cur.kind == SliceKind {
		cur = cur.elem
	}
	if cur.kind != TupleKind {
		return nil
	}
	return cur
}

// isReference reports whether an indexed event parameter of this type is
// stored as the hash of its value rather than the value itself.
func (t *Type) isReference() bool {
	switch t.kind {
	case BytesKind, StringKind, ArrayKind, SliceKind, TupleKind:
		return true
	}
	return false
}
