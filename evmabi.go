// Package evmabi encodes and decodes the Ethereum contract ABI wire format
// and resolves raw call payloads and event logs against loaded contract
// definitions.
//
// The library covers the full pipeline from a JSON ABI document to
// human-readable values:
//   - Parse type names such as "uint256", "bytes32[]" or "tuple[2]"
//   - Encode call arguments with the head/tail layout and a 4-byte selector
//   - Decode call payloads, return data, revert data and event logs
//   - Unwrap multicall batches into a tree of decoded sub-calls
//
// # Basic Usage
//
// Parse a definition and encode a call:
//
//	erc20 := evmabi.MustParseABI(erc20ABIJSON)
//	transfer := erc20.MustFunction("transfer")
//
//	payload, err := transfer.EncodeCall(recipient, big.NewInt(1e18))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Resolve unknown payloads through a registry:
//
//	reg := evmabi.NewRegistry()
//	if err := reg.AddJSON("0xdac17f958d2ee523a2206206994597c13d831ec7", usdtABI); err != nil {
//	    log.Fatal(err)
//	}
//
//	dec := evmabi.NewDecoder(reg)
//	call, err := dec.DecodeCallHex(txInput)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if call == nil {
//	    // selector not registered
//	}
//
// # Value Types
//
// Decoded values use these Go types:
//
//   - bool for bool
//   - *big.Int for every intN and uintN
//   - common.Address for address
//   - []byte for bytes, bytesN and function
//   - string for string
//   - []any for fixed and dynamic arrays and for tuples
//
// Encoding accepts the same types plus common conveniences: Go integers,
// *uint256.Int and numeric strings for integers, hex strings for addresses,
// any slice or array for array types and map[string]any for tuples.
//
// # Batches
//
// A function named "multicall" (any case) whose "data" parameter carries
// call payloads is unwrapped recursively; sub-calls appear in
// DecodedCall.Nested in payload order. The name, parameter and depth limit
// are configurable with WithBatchFunction and WithMaxDepth.
//
// # References
//
// For the wire format, see:
//   - https://docs.soliditylang.org/en/latest/abi-spec.html
package evmabi
