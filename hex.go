package evmabi

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// DecodeHex parses hex with an optional 0x or 0X prefix, in any case.
// The empty string decodes to an empty slice.
func DecodeHex(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if has0xPrefix(s) {
		s = s[2:]
	}
	b, err := hexutil.Decode("0x" + s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidHex, err)
	}
	return b, nil
}

// EncodeHex returns lowercase hex with a 0x prefix.
func EncodeHex(b []byte) string {
	return hexutil.Encode(b)
}

// PadAddress left-pads the hex after the first two characters with zeros
// to the 40 characters of an address and returns it with a 0x prefix.
// Longer input is returned unchanged apart from the prefix.
func PadAddress(address string) string {
	payload := address
	if len(payload) >= 2 {
		payload = payload[2:]
	}
	if n := AddressSize*2 - len(payload); n > 0 {
		payload = strings.Repeat("0", n) + payload
	}
	return "0x" + payload
}

func has0xPrefix(s string) bool {
	return len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}

// selectorKey is the registry key form of an ID: lowercase hex, no prefix.
func selectorKey(id []byte) string {
	return common.Bytes2Hex(id)
}

// normalizeKey turns a user-supplied key into registry key form.
func normalizeKey(key string) string {
	key = strings.TrimSpace(key)
	if has0xPrefix(key) {
		key = key[2:]
	}
	return strings.ToLower(key)
}
