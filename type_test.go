package evmabi

import (
	"errors"
	"math"
	"testing"
)

func TestNewType(t *testing.T) {
	tests := []struct {
		name      string
		kind      Kind
		size      int
		canonical string
	}{
		{"bool", BoolKind, 0, "bool"},
		{"int", IntKind, 256, "int256"},
		{"int8", IntKind, 8, "int8"},
		{"int128", IntKind, 128, "int128"},
		{"uint", UintKind, 256, "uint256"},
		{"uint24", UintKind, 24, "uint24"},
		{"uint256", UintKind, 256, "uint256"},
		{"wad", UintKind, 256, "uint256"},
		{"ray", UintKind, 256, "uint256"},
		{"address", AddressKind, 0, "address"},
		{"bytes1", FixedBytesKind, 1, "bytes1"},
		{"bytes32", FixedBytesKind, 32, "bytes32"},
		{"bytes", BytesKind, 0, "bytes"},
		{"string", StringKind, 0, "string"},
		{"function", FunctionKind, 24, "function"},
		{"uint256[]", SliceKind, 0, "uint256[]"},
		{"uint[3]", ArrayKind, 3, "uint256[3]"},
		{"bytes32[2][]", SliceKind, 0, "bytes32[2][]"},
		{"address[][4]", ArrayKind, 4, "address[][4]"},
		{"bytes[]", SliceKind, 0, "bytes[]"},
		{"tuple", TupleKind, 0, "()"},
		{"Tuple", TupleKind, 0, "()"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			typ, err := NewType(tt.name)
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if typ.Kind() != tt.kind {
				t.Errorf("Expected kind %s, got %s", tt.kind, typ.Kind())
			}
			if typ.Size() != tt.size {
				t.Errorf("Expected size %d, got %d", tt.size, typ.Size())
			}
			if typ.CanonicalName() != tt.canonical {
				t.Errorf("Expected canonical name %q, got %q", tt.canonical, typ.CanonicalName())
			}
			if typ.String() != tt.name {
				t.Errorf("Expected declared name %q, got %q", tt.name, typ.String())
			}
		})
	}
}

func TestNewTypeErrors(t *testing.T) {
	names := []string{
		"",
		"uint7",
		"uint264",
		"int0",
		"bytes0",
		"bytes33",
		"fixed128x18",
		"string[",
		"[]",
		"uint256[x]",
		"uint256[-1]",
		"uint256[1048577]",
		"uint256[4611686018427387904]",
		"addr",
	}

	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			_, err := NewType(name)
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			var parseErr *TypeParseError
			if !errors.As(err, &parseErr) {
				t.Errorf("Expected TypeParseError, got %T", err)
			}
		})
	}
}

func TestMustNewTypePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected panic for invalid type")
		}
	}()
	MustNewType("uint7")
}

func TestTypeElem(t *testing.T) {
	typ := MustNewType("uint8[2][]")

	if typ.Elem().Kind() != ArrayKind {
		t.Fatalf("Expected array element, got %s", typ.Elem().Kind())
	}
	if typ.Elem().Size() != 2 {
		t.Errorf("Expected inner length 2, got %d", typ.Elem().Size())
	}
	if typ.Elem().Elem().Size() != 8 {
		t.Errorf("Expected uint8 element, got %d bits", typ.Elem().Elem().Size())
	}
}

func TestIsDynamic(t *testing.T) {
	tests := []struct {
		name    string
		param   Parameter
		dynamic bool
	}{
		{"uint256", MustParameter("", "uint256", false), false},
		{"bytes32", MustParameter("", "bytes32", false), false},
		{"bytes", MustParameter("", "bytes", false), true},
		{"string", MustParameter("", "string", false), true},
		{"uint256[]", MustParameter("", "uint256[]", false), true},
		{"uint256[3]", MustParameter("", "uint256[3]", false), false},
		{"string[2]", MustParameter("", "string[2]", false), true},
		{"string[0]", MustParameter("", "string[0]", false), false},
		{"static tuple", MustParameter("", "tuple", false,
			MustParameter("a", "uint256", false),
			MustParameter("b", "address", false),
		), false},
		{"dynamic tuple", MustParameter("", "tuple", false,
			MustParameter("a", "uint256", false),
			MustParameter("b", "string", false),
		), true},
		{"static tuple array", MustParameter("", "tuple[2]", false,
			MustParameter("a", "uint256", false),
		), false},
		{"dynamic tuple array", MustParameter("", "tuple[2]", false,
			MustParameter("a", "bytes", false),
		), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.param.Type.IsDynamic() != tt.dynamic {
				t.Errorf("Expected IsDynamic %v, got %v", tt.dynamic, tt.param.Type.IsDynamic())
			}
		})
	}
}

func TestFixedSize(t *testing.T) {
	tests := []struct {
		name  string
		param Parameter
		size  int
	}{
		{"uint8", MustParameter("", "uint8", false), 32},
		{"bytes", MustParameter("", "bytes", false), 32},
		{"uint256[]", MustParameter("", "uint256[]", false), 32},
		{"uint256[3]", MustParameter("", "uint256[3]", false), 96},
		{"uint256[2][3]", MustParameter("", "uint256[2][3]", false), 192},
		{"string[2]", MustParameter("", "string[2]", false), 32},
		{"uint256[0]", MustParameter("", "uint256[0]", false), 0},
		{"tuple(uint256,address)", MustParameter("", "tuple", false,
			MustParameter("a", "uint256", false),
			MustParameter("b", "address", false),
		), 64},
		{"tuple(uint256,address)[2]", MustParameter("", "tuple[2]", false,
			MustParameter("a", "uint256", false),
			MustParameter("b", "address", false),
		), 128},
		{"tuple(string)", MustParameter("", "tuple", false,
			MustParameter("s", "string", false),
		), 32},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.param.Type.FixedSize(); got != tt.size {
				t.Errorf("Expected FixedSize %d, got %d", tt.size, got)
			}
		})
	}
}

func TestTupleCanonicalName(t *testing.T) {
	inner := MustParameter("pair", "tuple", false,
		MustParameter("x", "uint", false),
		MustParameter("y", "int", false),
	)
	p := MustParameter("items", "tuple[]", false,
		MustParameter("id", "uint256", false),
		inner,
		MustParameter("tags", "string[]", false),
	)

	expected := "(uint256,(uint256,int256),string[])[]"
	if got := p.Type.CanonicalName(); got != expected {
		t.Errorf("Expected %q, got %q", expected, got)
	}
	if got := p.Type.String(); got != "tuple[]" {
		t.Errorf("Expected declared name tuple[], got %q", got)
	}

	names := p.Type.Elem().ComponentNames()
	if len(names) != 3 || names[0] != "id" || names[1] != "pair" || names[2] != "tags" {
		t.Errorf("Expected component names [id pair tags], got %v", names)
	}
}

func TestKindString(t *testing.T) {
	if UintKind.String() != "uint" {
		t.Errorf("Expected uint, got %q", UintKind.String())
	}
	if Kind(200).String() != "kind(200)" {
		t.Errorf("Expected kind(200), got %q", Kind(200).String())
	}
}

func TestFixedSizeSaturates(t *testing.T) {
	typ := MustNewType("uint256[1048576][1048576][1048576]")
	if typ.IsDynamic() {
		t.Fatal("Expected static type")
	}
	if got := typ.FixedSize(); got != math.MaxInt {
		t.Errorf("Expected saturated size %d, got %d", math.MaxInt, got)
	}

	tuple := MustParameter("t", "tuple", false,
		MustParameter("a", "uint256[1048576][1048576][1048576]", false),
		MustParameter("b", "uint256[1048576][1048576][1048576]", false),
	).Type
	if got := tuple.FixedSize(); got != math.MaxInt {
		t.Errorf("Expected saturated tuple size, got %d", got)
	}
}
