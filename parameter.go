package evmabi

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// Parameter is a named, typed input or output of an entry.
type Parameter struct {
	Name    string
	Type    *Type
	Indexed bool

	// Components holds the tuple fields when Type is a tuple or an array of
	// tuples. They are folded into Type when the parameter is built.
	Components []Parameter
}

// NewParameter parses typeName and attaches components to the innermost
// tuple of the resulting type. Components must already be built, so nested
// tuples are constructed leaves first.
func NewParameter(name, typeName string, indexed bool, components ...Parameter) (Parameter, error) {
	t, err := NewType(typeName)
	if err != nil {
		return Parameter{}, err
	}
	p := Parameter{Name: name, Type: t, Indexed: indexed, Components: components}
	if err := p.finalize(); err != nil {
		return Parameter{}, err
	}
	return p, nil
}

// MustParameter is like NewParameter but panics on error.
func MustParameter(name, typeName string, indexed bool, components ...Parameter) Parameter {
	p, err := NewParameter(name, typeName, indexed, components...)
	if err != nil {
		panic(err)
	}
	return p
}

// finalize folds the component types into the innermost tuple. A tuple
// without components has no encoding and is rejected.
func (p *Parameter) finalize() error {
	tuple := p.Type.innermostTuple()
	if tuple == nil {
		return nil
	}
	if len(p.Components) == 0 {
		return &TypeParseError{Name: p.Type.String(), Reason: "tuple has no components"}
	}

	tuple.components = make([]*Type, len(p.Components))
	tuple.names = make([]string, len(p.Components))
	for i, c := range p.Components {
		tuple.components[i] = c.Type
		tuple.names[i] = c.Name
	}
	return nil
}

// parameterFromRecord builds a parameter from a JSON definition record,
// components first.
func parameterFromRecord(rec abi.ArgumentMarshaling) (Parameter, error) {
	components := make([]Parameter, 0, len(rec.Components))
	for _, c := range rec.Components {
		cp, err := parameterFromRecord(c)
		if err != nil {
			return Parameter{}, err
		}
		components = append(components, cp)
	}
	return NewParameter(rec.Name, rec.Type, rec.Indexed, components...)
}

// String renders the parameter as "type name", with "indexed" for event
// topics.
func (p Parameter) String() string {
	parts := []string{p.Type.CanonicalName()}
	if p.Indexed {
		parts = append(parts, "indexed")
	}
	if p.Name != "" {
		parts = append(parts, p.Name)
	}
	return strings.Join(parts, " ")
}

// Arguments is an ordered parameter list.
type Arguments []Parameter

// Types returns the parameter types in order.
func (a Arguments) Types() []*Type {
	types := make([]*Type, len(a))
	for i, p := range a {
		types[i] = p.Type
	}
	return types
}

// Names returns the parameter names in order.
func (a Arguments) Names() []string {
	names := make([]string, len(a))
	for i, p := range a {
		names[i] = p.Name
	}
	return names
}

// Indexed returns the parameters stored as log topics.
func (a Arguments) Indexed() Arguments {
	var out Arguments
	for _, p := range a {
		if p.Indexed {
			out = append(out, p)
		}
	}
	return out
}

// NonIndexed returns the parameters stored in log data.
func (a Arguments) NonIndexed() Arguments {
	var out Arguments
	for _, p := range a {
		if !p.Indexed {
			out = append(out, p)
		}
	}
	return out
}

// Pack encodes values as a tuple of the argument types.
func (a Arguments) Pack(values ...any) ([]byte, error) {
	return a.pack("("+a.canonical()+")", values)
}

// Unpack decodes data as a tuple of the argument types.
func (a Arguments) Unpack(data []byte) ([]any, error) {
	return decodeTuple(a.Types(), data, 0)
}

func (a Arguments) pack(method string, values []any) ([]byte, error) {
	if len(values) != len(a) {
		return nil, &EncodingError{
			Type:  method,
			Value: values,
			Err:   &ArgumentCountError{Method: method, Got: len(values), Want: len(a)},
		}
	}
	return encodeTuple(a.Types(), values)
}

// canonical joins the canonical type names with commas.
func (a Arguments) canonical() string {
	names := make([]string, len(a))
	for i, p := range a {
		names[i] = p.Type.CanonicalName()
	}
	return strings.Join(names, ",")
}

func (a Arguments) String() string {
	parts := make([]string, len(a))
	for i, p := range a {
		parts[i] = p.String()
	}
	return strings.Join(parts, ", ")
}
