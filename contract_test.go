package evmabi

import (
	"errors"
	"strings"
	"testing"
)

const testABIJSON = `[
	{
		"type": "constructor",
		"stateMutability": "payable",
		"payable": true,
		"inputs": [{"name": "owner", "type": "address"}]
	},
	{
		"name": "balanceOf",
		"constant": true,
		"stateMutability": "view",
		"inputs": [{"name": "who", "type": "address"}],
		"outputs": [{"name": "", "type": "uint256"}]
	},
	{
		"name": "transfer",
		"type": "function",
		"stateMutability": "nonpayable",
		"inputs": [
			{"name": "to", "type": "address"},
			{"name": "amount", "type": "uint256"}
		],
		"outputs": [{"name": "", "type": "bool"}]
	},
	{
		"name": "transfer",
		"type": "function",
		"inputs": [
			{"name": "to", "type": "address"},
			{"name": "amount", "type": "uint256"},
			{"name": "memo", "type": "bytes"}
		]
	},
	{
		"name": "submit",
		"type": "function",
		"stateMutability": "payable",
		"inputs": [{
			"name": "order",
			"type": "tuple",
			"components": [
				{"name": "maker", "type": "address"},
				{"name": "legs", "type": "tuple[]", "components": [
					{"name": "amount", "type": "uint256"},
					{"name": "data", "type": "bytes"}
				]}
			]
		}]
	},
	{
		"name": "Transfer",
		"type": "event",
		"anonymous": false,
		"inputs": [
			{"name": "from", "type": "address", "indexed": true},
			{"name": "to", "type": "address", "indexed": true},
			{"name": "value", "type": "uint256", "indexed": false}
		]
	},
	{
		"name": "InsufficientBalance",
		"type": "error",
		"inputs": [
			{"name": "available", "type": "uint256"},
			{"name": "required", "type": "uint256"}
		]
	},
	{"type": "fallback", "stateMutability": "payable"},
	{"type": "receive", "stateMutability": "payable"}
]`

func TestParseABI(t *testing.T) {
	c, err := ParseABI([]byte(testABIJSON))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(c.Entries()) != 9 {
		t.Fatalf("Expected 9 entries, got %d", len(c.Entries()))
	}
	if len(c.Functions()) != 6 {
		t.Errorf("Expected 6 functions, got %d", len(c.Functions()))
	}
	if len(c.Events()) != 1 {
		t.Errorf("Expected 1 event, got %d", len(c.Events()))
	}
	if len(c.Errors()) != 1 {
		t.Errorf("Expected 1 error, got %d", len(c.Errors()))
	}

	expected := []string{"balanceOf", "transfer", "transfer", "submit"}
	if got := c.FunctionNames(); strings.Join(got, ",") != strings.Join(expected, ",") {
		t.Errorf("Expected %v, got %v", expected, got)
	}
}

func TestParseABIEntries(t *testing.T) {
	c := MustParseABI(testABIJSON)

	t.Run("missing type is a function", func(t *testing.T) {
		fn, ok := c.Function("balanceOf")
		if !ok {
			t.Fatal("Expected balanceOf")
		}
		if fn.Kind() != FunctionEntry {
			t.Errorf("Expected function kind, got %s", fn.Kind())
		}
		if !fn.Constant() {
			t.Error("Expected balanceOf to be constant")
		}
		if fn.StateMutability() != "view" {
			t.Errorf("Expected view, got %s", fn.StateMutability())
		}
	})

	t.Run("first overload wins by name", func(t *testing.T) {
		fn := c.MustFunction("transfer")
		if fn.Signature() != "transfer(address,uint256)" {
			t.Errorf("Expected two-argument transfer, got %s", fn.Signature())
		}
		overload, ok := c.FindFunction(func(f *Function) bool {
			return f.Name() == "transfer" && len(f.Inputs()) == 3
		})
		if !ok {
			t.Fatal("Expected memo overload")
		}
		if overload.Signature() != "transfer(address,uint256,bytes)" {
			t.Errorf("Unexpected overload %s", overload.Signature())
		}
	})

	t.Run("nested tuple components", func(t *testing.T) {
		fn := c.MustFunction("submit")
		if fn.Signature() != "submit((address,(uint256,bytes)[]))" {
			t.Errorf("Unexpected signature %s", fn.Signature())
		}
		if !fn.Payable() {
			t.Error("Expected submit to be payable")
		}
		names := fn.Inputs()[0].Type.ComponentNames()
		if len(names) != 2 || names[0] != "maker" || names[1] != "legs" {
			t.Errorf("Expected [maker legs], got %v", names)
		}
	})

	t.Run("event", func(t *testing.T) {
		ev, ok := c.Event("Transfer")
		if !ok {
			t.Fatal("Expected Transfer event")
		}
		if ev.Anonymous() {
			t.Error("Expected non-anonymous event")
		}
		if len(ev.Inputs().Indexed()) != 2 {
			t.Errorf("Expected 2 indexed inputs, got %d", len(ev.Inputs().Indexed()))
		}
	})

	t.Run("custom error", func(t *testing.T) {
		er, ok := c.CustomError("InsufficientBalance")
		if !ok {
			t.Fatal("Expected InsufficientBalance")
		}
		if er.Signature() != "InsufficientBalance(uint256,uint256)" {
			t.Errorf("Unexpected signature %s", er.Signature())
		}
		if _, ok := c.CustomError("Missing"); ok {
			t.Error("Expected missing error lookup to fail")
		}
	})

	t.Run("constructor", func(t *testing.T) {
		ctor, ok := c.Constructor()
		if !ok {
			t.Fatal("Expected constructor")
		}
		if !ctor.Payable() {
			t.Error("Expected payable constructor")
		}
		if len(ctor.Inputs()) != 1 {
			t.Errorf("Expected 1 input, got %d", len(ctor.Inputs()))
		}
	})

	t.Run("fallback and receive", func(t *testing.T) {
		var kinds []EntryKind
		for _, fn := range c.Functions() {
			if fn.Name() == "" {
				kinds = append(kinds, fn.Kind())
			}
		}
		if len(kinds) != 2 || kinds[0] != FallbackEntry || kinds[1] != ReceiveEntry {
			t.Errorf("Expected [fallback receive], got %v", kinds)
		}
	})
}

func TestParseABIErrors(t *testing.T) {
	t.Run("unknown entry type", func(t *testing.T) {
		_, err := ParseABI([]byte(`[{"type": "modifier", "name": "onlyOwner"}]`))
		if !errors.Is(err, ErrUnknownEntryType) {
			t.Errorf("Expected ErrUnknownEntryType, got %v", err)
		}
	})

	t.Run("invalid parameter type", func(t *testing.T) {
		_, err := ParseABI([]byte(`[{"type": "function", "name": "f", "inputs": [{"name": "x", "type": "uint7"}]}]`))
		var parseErr *TypeParseError
		if !errors.As(err, &parseErr) {
			t.Errorf("Expected TypeParseError, got %v", err)
		}
	})

	t.Run("tuple without components", func(t *testing.T) {
		_, err := ParseABI([]byte(`[{"type": "event", "name": "E", "inputs": [{"name": "t", "type": "tuple"}]}]`))
		if err == nil {
			t.Error("Expected error, got nil")
		}
	})

	t.Run("malformed json", func(t *testing.T) {
		if _, err := ParseABI([]byte(`{"type":`)); err == nil {
			t.Error("Expected error, got nil")
		}
	})
}

func TestMustParseABIPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected panic")
		}
	}()
	MustParseABI(`not json`)
}

func TestContractLookupsMissing(t *testing.T) {
	c := NewContract()
	if _, ok := c.Function("x"); ok {
		t.Error("Expected no function")
	}
	if _, ok := c.Event("x"); ok {
		t.Error("Expected no event")
	}
	if _, ok := c.Constructor(); ok {
		t.Error("Expected no constructor")
	}
	if c.String() != "" {
		t.Errorf("Expected empty string, got %q", c.String())
	}
}
