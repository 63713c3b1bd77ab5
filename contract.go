package evmabi

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// Contract is an ordered list of definition entries, as loaded from one
// JSON ABI document.
type Contract struct {
	entries []Entry
}

// NewContract creates a Contract from entries in declaration order.
func NewContract(entries ...Entry) *Contract {
	return &Contract{entries: entries}
}

// entryRecord is one element of a JSON ABI document. Parameter records use
// go-ethereum's field layout. Unknown fields are ignored.
type entryRecord struct {
	Type            string                   `json:"type"`
	Name            string                   `json:"name"`
	Inputs          []abi.ArgumentMarshaling `json:"inputs"`
	Outputs         []abi.ArgumentMarshaling `json:"outputs"`
	Anonymous       bool                     `json:"anonymous"`
	Constant        bool                     `json:"constant"`
	Payable         bool                     `json:"payable"`
	StateMutability string                   `json:"stateMutability"`
}

// ParseABI parses a JSON ABI document. A record without a type is a
// function; an unrecognized type fails with ErrUnknownEntryType.
func ParseABI(data []byte) (*Contract, error) {
	var records []entryRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("evmabi: parse abi: %w", err)
	}

	c := &Contract{entries: make([]Entry, 0, len(records))}
	for i, rec := range records {
		e, err := rec.entry()
		if err != nil {
			return nil, fmt.Errorf("evmabi: abi entry %d (%s): %w", i, rec.Name, err)
		}
		c.entries = append(c.entries, e)
	}
	return c, nil
}

// MustParseABI is like ParseABI but panics on error.
func MustParseABI(abiJSON string) *Contract {
	c, err := ParseABI([]byte(abiJSON))
	if err != nil {
		panic(err)
	}
	return c
}

func (rec entryRecord) entry() (Entry, error) {
	kind, err := parseEntryKind(rec.Type)
	if err != nil {
		return nil, err
	}
	inputs, err := argumentsFromRecords(rec.Inputs)
	if err != nil {
		return nil, err
	}

	switch kind {
	case EventEntry:
		return NewEvent(rec.Name, rec.Anonymous, inputs), nil

	case ErrorEntry:
		return NewError(rec.Name, inputs), nil

	case ConstructorEntry:
		c := NewConstructor(inputs)
		c.payable = rec.Payable
		c.stateMutability = rec.StateMutability
		return c, nil
	}

	outputs, err := argumentsFromRecords(rec.Outputs)
	if err != nil {
		return nil, err
	}
	f := NewFunction(rec.Name, inputs, outputs)
	f.kind = kind
	f.constant = rec.Constant
	f.payable = rec.Payable
	f.stateMutability = rec.StateMutability
	return f, nil
}

func argumentsFromRecords(recs []abi.ArgumentMarshaling) (Arguments, error) {
	args := make(Arguments, 0, len(recs))
	for _, rec := range recs {
		p, err := parameterFromRecord(rec)
		if err != nil {
			return nil, err
		}
		args = append(args, p)
	}
	return args, nil
}

// Entries returns all entries in declaration order.
func (c *Contract) Entries() []Entry {
	return c.entries
}

// Functions returns the function entries, including fallback and receive.
func (c *Contract) Functions() []*Function {
	var out []*Function
	for _, e := range c.entries {
		if f, ok := e.(*Function); ok {
			out = append(out, f)
		}
	}
	return out
}

// Events returns the event entries.
func (c *Contract) Events() []*Event {
	var out []*Event
	for _, e := range c.entries {
		if ev, ok := e.(*Event); ok {
			out = append(out, ev)
		}
	}
	return out
}

// Errors returns the custom error entries.
func (c *Contract) Errors() []*Error {
	var out []*Error
	for _, e := range c.entries {
		if er, ok := e.(*Error); ok {
			out = append(out, er)
		}
	}
	return out
}

// Function returns the first function with the given name. Overloads are
// reachable through FindFunction.
func (c *Contract) Function(name string) (*Function, bool) {
	return c.FindFunction(func(f *Function) bool { return f.name == name })
}

// MustFunction is like Function but panics when the name is missing.
func (c *Contract) MustFunction(name string) *Function {
	f, ok := c.Function(name)
	if !ok {
		panic("evmabi: no function " + name)
	}
	return f
}

// Event returns the first event with the given name.
func (c *Contract) Event(name string) (*Event, bool) {
	return c.FindEvent(func(e *Event) bool { return e.name == name })
}

// CustomError returns the first custom error with the given name.
func (c *Contract) CustomError(name string) (*Error, bool) {
	for _, e := range c.Errors() {
		if e.name == name {
			return e, true
		}
	}
	return nil, false
}

// Constructor returns the constructor entry, if declared.
func (c *Contract) Constructor() (*Constructor, bool) {
	for _, e := range c.entries {
		if ctor, ok := e.(*Constructor); ok {
			return ctor, true
		}
	}
	return nil, false
}

// FindFunction returns the first function matching pred.
func (c *Contract) FindFunction(pred func(*Function) bool) (*Function, bool) {
	for _, f := range c.Functions() {
		if pred(f) {
			return f, true
		}
	}
	return nil, false
}

// FindEvent returns the first event matching pred.
func (c *Contract) FindEvent(pred func(*Event) bool) (*Event, bool) {
	for _, e := range c.Events() {
		if pred(e) {
			return e, true
		}
	}
	return nil, false
}

// FunctionNames returns the names of all named functions.
func (c *Contract) FunctionNames() []string {
	var names []string
	for _, f := range c.Functions() {
		if f.name != "" {
			names = append(names, f.name)
		}
	}
	return names
}

func (c *Contract) String() string {
	lines := make([]string, len(c.entries))
	for i, e := range c.entries {
		lines[i] = fmt.Sprint(e)
	}
	return strings.Join(lines, "\n")
}
