package evmabi

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// EntryKind identifies the variant of a contract definition entry.
type EntryKind uint8

const (
	// ConstructorEntry is the deployment entry.
	ConstructorEntry EntryKind = iota

	// FunctionEntry is a callable function.
	FunctionEntry

	// EventEntry is a log-emitting event.
	EventEntry

	// ErrorEntry is a custom revert error.
	ErrorEntry

	// FallbackEntry is the fallback function.
	FallbackEntry

	// ReceiveEntry is the plain ether receive function.
	ReceiveEntry
)

var entryKindNames = [...]string{
	ConstructorEntry: "constructor",
	FunctionEntry:    "function",
	EventEntry:       "event",
	ErrorEntry:       "error",
	FallbackEntry:    "fallback",
	ReceiveEntry:     "receive",
}

func (k EntryKind) String() string {
	if int(k) < len(entryKindNames) {
		return entryKindNames[k]
	}
	return fmt.Sprintf("entrykind(%d)", uint8(k))
}

// parseEntryKind maps a definition record's "type" field. An absent type
// means function.
func parseEntryKind(s string) (EntryKind, error) {
	if s == "" {
		return FunctionEntry, nil
	}
	for k, name := range entryKindNames {
		if name == s {
			return EntryKind(k), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownEntryType, s)
}

// Entry is one element of a contract definition.
type Entry interface {
	// Kind returns the entry variant.
	Kind() EntryKind

	// Name returns the declared name, empty for constructors and most
	// fallback and receive entries.
	Name() string

	// Inputs returns the entry's input parameters.
	Inputs() Arguments

	// Signature returns name(t1,t2,...) with canonical type names.
	Signature() string

	// ID returns the registry key bytes: the 4-byte selector for functions,
	// errors and constructors, the 32-byte topic hash for events.
	ID() []byte
}

type entry struct {
	kind   EntryKind
	name   string
	inputs Arguments
}

func (e *entry) Kind() EntryKind   { return e.kind }
func (e *entry) Name() string      { return e.name }
func (e *entry) Inputs() Arguments { return e.inputs }

func (e *entry) Signature() string {
	return e.name + "(" + e.inputs.canonical() + ")"
}

func (e *entry) hash() []byte {
	return crypto.Keccak256([]byte(e.Signature()))
}

// Selector returns the first four bytes of the Keccak-256 hash of a
// signature such as "transfer(address,uint256)".
func Selector(signature string) [4]byte {
	var sel [4]byte
	copy(sel[:], crypto.Keccak256([]byte(signature)))
	return sel
}

// Topic returns the Keccak-256 hash of an event signature.
func Topic(signature string) common.Hash {
	return crypto.Keccak256Hash([]byte(signature))
}

// Function is a callable contract function.
type Function struct {
	entry
	outputs         Arguments
	constant        bool
	payable         bool
	stateMutability string
}

// NewFunction creates a function entry.
func NewFunction(name string, inputs, outputs Arguments) *Function {
	return &Function{
		entry:   entry{kind: FunctionEntry, name: name, inputs: inputs},
		outputs: outputs,
	}
}

// ID returns the 4-byte selector.
func (f *Function) ID() []byte {
	return f.hash()[:SelectorSize]
}

// Selector returns the 4-byte selector as an array.
func (f *Function) Selector() [4]byte {
	var sel [4]byte
	copy(sel[:], f.ID())
	return sel
}

// Outputs returns the function's return parameters.
func (f *Function) Outputs() Arguments { return f.outputs }

// Constant reports whether the function does not modify state.
func (f *Function) Constant() bool {
	return f.constant || f.stateMutability == "view" || f.stateMutability == "pure"
}

// Payable reports whether the function accepts ether.
func (f *Function) Payable() bool {
	return f.payable || f.stateMutability == "payable"
}

// StateMutability returns the declared mutability, or one derived from the
// legacy constant and payable flags.
func (f *Function) StateMutability() string {
	switch {
	case f.stateMutability != "":
		return f.stateMutability
	case f.payable:
		return "payable"
	case f.constant:
		return "view"
	}
	return "nonpayable"
}

// EncodeCall returns the selector followed by the encoded arguments.
func (f *Function) EncodeCall(args ...any) ([]byte, error) {
	packed, err := f.inputs.pack(f.Signature(), args)
	if err != nil {
		return nil, err
	}
	return append(f.ID(), packed...), nil
}

// EncodeCallHex is like EncodeCall but returns 0x-prefixed hex.
func (f *Function) EncodeCallHex(args ...any) (string, error) {
	data, err := f.EncodeCall(args...)
	if err != nil {
		return "", err
	}
	return hexutil.Encode(data), nil
}

// DecodeCall decodes the arguments of a call payload. The leading selector
// is skipped without being compared.
func (f *Function) DecodeCall(data []byte) ([]any, error) {
	if len(data) < SelectorSize {
		return nil, &DecodingError{Type: f.Signature(), Offset: 0, Err: ErrShortBuffer}
	}
	return f.inputs.Unpack(data[SelectorSize:])
}

// DecodeReturn decodes return data. Empty data yields an empty list.
func (f *Function) DecodeReturn(data []byte) ([]any, error) {
	if len(data) == 0 {
		return []any{}, nil
	}
	return f.outputs.Unpack(data)
}

// DecodeReturnHex is like DecodeReturn for hex input.
func (f *Function) DecodeReturnHex(s string) ([]any, error) {
	data, err := DecodeHex(s)
	if err != nil {
		return nil, err
	}
	return f.DecodeReturn(data)
}

func (f *Function) String() string {
	var sb strings.Builder
	sb.WriteString(f.kind.String())
	if f.name != "" {
		sb.WriteString(" " + f.name)
	}
	sb.WriteString("(" + f.inputs.String() + ")")
	if m := f.StateMutability(); m != "nonpayable" {
		sb.WriteString(" " + m)
	}
	if len(f.outputs) > 0 {
		sb.WriteString(" returns (" + f.outputs.String() + ")")
	}
	return sb.String()
}

// Event is a log-emitting event.
type Event struct {
	entry
	anonymous bool
}

// NewEvent creates an event entry.
func NewEvent(name string, anonymous bool, inputs Arguments) *Event {
	return &Event{
		entry:     entry{kind: EventEntry, name: name, inputs: inputs},
		anonymous: anonymous,
	}
}

// ID returns the 32-byte topic hash.
func (e *Event) ID() []byte { return e.hash() }

// Topic returns the topic hash as a common.Hash.
func (e *Event) Topic() common.Hash { return common.BytesToHash(e.hash()) }

// Anonymous reports whether the event omits the signature topic.
func (e *Event) Anonymous() bool { return e.anonymous }

// DecodeLog decodes a log's parameters in declared order. Indexed values are
// read from topics, skipping the signature topic unless the event is
// anonymous; indexed reference types yield the raw 32-byte topic since only
// their hash is stored. The remaining parameters are decoded from data.
func (e *Event) DecodeLog(data []byte, topics [][]byte) ([]any, error) {
	argTopics := topics
	if !e.anonymous {
		if len(topics) == 0 {
			return nil, &DecodingError{Type: e.Signature(), Err: ErrMissingTopic}
		}
		argTopics = topics[1:]
	}

	if want := len(e.inputs.Indexed()); len(argTopics) < want {
		return nil, &DecodingError{
			Type: e.Signature(),
			Err:  fmt.Errorf("%w: have %d, want %d", ErrMissingTopic, len(argTopics), want),
		}
	}

	plain, err := e.inputs.NonIndexed().Unpack(data)
	if err != nil {
		return nil, err
	}

	out := make([]any, 0, len(e.inputs))
	ti, di := 0, 0
	for _, p := range e.inputs {
		if !p.Indexed {
			out = append(out, plain[di])
			di++
			continue
		}
		v, err := decodeTopic(p.Type, argTopics[ti])
		if err != nil {
			return nil, err
		}
		out = append(out, v)
		ti++
	}
	return out, nil
}

func decodeTopic(t *Type, topic []byte) (any, error) {
	if len(topic) != WordSize {
		return nil, decodingErr(t, 0, fmt.Errorf("%w: topic is %d bytes", ErrShortBuffer, len(topic)))
	}
	if t.isReference() {
		return bytes.Clone(topic), nil
	}
	return t.Decode(topic, 0)
}

func (e *Event) String() string {
	s := "event " + e.name + "(" + e.inputs.String() + ")"
	if e.anonymous {
		s += " anonymous"
	}
	return s
}

// Error is a custom revert error.
type Error struct {
	entry
}

// NewError creates an error entry.
func NewError(name string, inputs Arguments) *Error {
	return &Error{entry: entry{kind: ErrorEntry, name: name, inputs: inputs}}
}

// ID returns the 4-byte selector.
func (e *Error) ID() []byte { return e.hash()[:SelectorSize] }

// Selector returns the 4-byte selector as an array.
func (e *Error) Selector() [4]byte {
	var sel [4]byte
	copy(sel[:], e.ID())
	return sel
}

// DecodeRevert decodes the arguments of revert data produced by this error.
func (e *Error) DecodeRevert(data []byte) ([]any, error) {
	if len(data) < SelectorSize {
		return nil, &DecodingError{Type: e.Signature(), Err: ErrShortBuffer}
	}
	if !bytes.Equal(data[:SelectorSize], e.ID()) {
		return nil, &DecodingError{Type: e.Signature(), Err: ErrSelectorMismatch}
	}
	return e.inputs.Unpack(data[SelectorSize:])
}

func (e *Error) String() string {
	return "error " + e.name + "(" + e.inputs.String() + ")"
}

// Constructor is the deployment entry.
type Constructor struct {
	entry
	payable         bool
	stateMutability string
}

// NewConstructor creates a constructor entry.
func NewConstructor(inputs Arguments) *Constructor {
	return &Constructor{entry: entry{kind: ConstructorEntry, inputs: inputs}}
}

// ID returns the first four bytes of the hash of the unnamed signature.
func (c *Constructor) ID() []byte { return c.hash()[:SelectorSize] }

// Payable reports whether deployment accepts ether.
func (c *Constructor) Payable() bool {
	return c.payable || c.stateMutability == "payable"
}

// EncodeArgs encodes constructor arguments, to be appended to creation code.
func (c *Constructor) EncodeArgs(args ...any) ([]byte, error) {
	return c.inputs.pack("constructor("+c.inputs.canonical()+")", args)
}

// DecodeArgs decodes constructor arguments stripped from creation input.
func (c *Constructor) DecodeArgs(data []byte) ([]any, error) {
	return c.inputs.Unpack(data)
}

func (c *Constructor) String() string {
	return "constructor(" + c.inputs.String() + ")"
}
