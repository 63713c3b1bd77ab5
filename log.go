package evmabi

import (
	"encoding/json"
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
)

// Log is a raw event log in hex form, as returned by JSON-RPC.
type Log struct {
	Data    string   `json:"data"`
	Topics  []string `json:"topics"`
	Address string   `json:"address"`
}

// LogFromTypes converts a go-ethereum log. The address is rendered in
// lowercase hex.
func LogFromTypes(l *types.Log) Log {
	topics := make([]string, len(l.Topics))
	for i, t := range l.Topics {
		topics[i] = t.Hex()
	}
	return Log{
		Data:    hexutil.Encode(l.Data),
		Topics:  topics,
		Address: hexutil.Encode(l.Address[:]),
	}
}

// ParseLogsJSON parses a JSON array of log records. Fields other than data,
// topics and address are ignored.
func ParseLogsJSON(data []byte) ([]Log, error) {
	var logs []Log
	if err := json.Unmarshal(data, &logs); err != nil {
		return nil, fmt.Errorf("evmabi: parse logs: %w", err)
	}
	return logs, nil
}

// DecodedLog is a log resolved to an event.
type DecodedLog struct {
	Name    string         `json:"name"`
	Address string         `json:"address"`
	Params  []DecodedParam `json:"params"`
}

func newDecodedLog(ev *Event, address string, values []any) *DecodedLog {
	return &DecodedLog{
		Name:    ev.Name(),
		Address: address,
		Params:  newDecodedParams(ev.Inputs(), values),
	}
}

// Param returns the parameter with the given name, or nil.
func (l *DecodedLog) Param(name string) *DecodedParam {
	return findParam(l.Params, name)
}

// ParamMap returns the display values keyed by parameter name. Unnamed
// parameters are omitted.
func (l *DecodedLog) ParamMap() map[string]any {
	m := make(map[string]any, len(l.Params))
	for _, p := range l.Params {
		if p.Name != "" {
			m[p.Name] = p.Value
		}
	}
	return m
}
