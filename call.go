package evmabi

// DecodedParam is one decoded argument.
type DecodedParam struct {
	// Name is the declared parameter name.
	Name string `json:"name"`

	// Type is the declared type name, such as "uint256" or "tuple[]".
	Type string `json:"type"`

	// RawValue is the value as decoded: *big.Int, bool, string, []byte,
	// common.Address or []any for arrays and tuples.
	RawValue any `json:"-"`

	// Value is RawValue with byte sequences and addresses rendered as
	// lowercase 0x-prefixed hex, element-wise inside lists.
	Value any `json:"value"`
}

// DecodedCall is a call payload resolved to a function.
type DecodedCall struct {
	Name      string         `json:"name"`
	Signature string         `json:"signature"`
	Params    []DecodedParam `json:"params"`

	// Nested holds the decoded sub-calls of a batch call, in payload order.
	Nested []*DecodedCall `json:"nested,omitempty"`
}

func newDecodedCall(fn *Function, values []any) *DecodedCall {
	return &DecodedCall{
		Name:      fn.Name(),
		Signature: fn.Signature(),
		Params:    newDecodedParams(fn.Inputs(), values),
	}
}

func newDecodedParams(args Arguments, values []any) []DecodedParam {
	params := make([]DecodedParam, len(args))
	for i, p := range args {
		params[i] = DecodedParam{
			Name:     p.Name,
			Type:     p.Type.String(),
			RawValue: values[i],
			Value:    displayValue(values[i]),
		}
	}
	return params
}

// Param returns the parameter with the given name, or nil.
func (c *DecodedCall) Param(name string) *DecodedParam {
	return findParam(c.Params, name)
}

// IsBatch reports whether the call carried decoded sub-calls.
func (c *DecodedCall) IsBatch() bool {
	return len(c.Nested) > 0
}

// Walk calls fn for c and every nested call, depth first.
func (c *DecodedCall) Walk(fn func(call *DecodedCall, depth int)) {
	c.walk(fn, 0)
}

func (c *DecodedCall) walk(fn func(*DecodedCall, int), depth int) {
	fn(c, depth)
	for _, n := range c.Nested {
		n.walk(fn, depth+1)
	}
}

func findParam(params []DecodedParam, name string) *DecodedParam {
	for i := range params {
		if params[i].Name == name {
			return &params[i]
		}
	}
	return nil
}
