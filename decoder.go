package evmabi

import (
	"strings"

	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"
)

// Decoder resolves call payloads and logs against a Registry.
type Decoder struct {
	registry *Registry
	cfg      *decoderConfig
}

// NewDecoder creates a Decoder over registry.
func NewDecoder(registry *Registry, opts ...DecoderOption) *Decoder {
	cfg := defaultDecoderConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return &Decoder{registry: registry, cfg: cfg}
}

// Registry returns the registry the decoder resolves against.
func (d *Decoder) Registry() *Registry {
	return d.registry
}

// DecodeCall resolves payload by its selector and decodes the arguments.
// Batch calls have their sub-calls decoded into Nested. It returns nil
// without error when the payload is shorter than a selector or the selector
// does not name a registered function.
func (d *Decoder) DecodeCall(payload []byte) (*DecodedCall, error) {
	return d.decodeCall(payload, 0)
}

// DecodeCallHex is like DecodeCall for hex input.
func (d *Decoder) DecodeCallHex(payload string) (*DecodedCall, error) {
	data, err := DecodeHex(payload)
	if err != nil {
		return nil, err
	}
	return d.DecodeCall(data)
}

func (d *Decoder) decodeCall(payload []byte, depth int) (*DecodedCall, error) {
	if d.cfg.maxDepth > 0 && depth > d.cfg.maxDepth {
		return nil, ErrMaxDepth
	}

	fn, ok := d.resolveFunction(payload)
	if !ok {
		return nil, nil
	}

	values, err := fn.DecodeCall(payload)
	if err != nil {
		return nil, err
	}
	call := newDecodedCall(fn, values)

	if strings.EqualFold(fn.Name(), d.cfg.batchName) {
		if err := d.unwrapBatch(call, depth); err != nil {
			return nil, err
		}
	}
	return call, nil
}

func (d *Decoder) resolveFunction(payload []byte) (*Function, bool) {
	if len(payload) < SelectorSize {
		d.cfg.logger.Debug("payload shorter than selector", zap.Int("length", len(payload)))
		return nil, false
	}
	e, ok := d.registry.lookupID(payload[:SelectorSize])
	if !ok {
		d.cfg.logger.Debug("unresolved selector", zap.String("selector", EncodeHex(payload[:SelectorSize])))
		return nil, false
	}
	fn, ok := e.(*Function)
	if !ok {
		d.cfg.logger.Debug("selector is not a function",
			zap.String("selector", EncodeHex(payload[:SelectorSize])),
			zap.Stringer("kind", e.Kind()),
		)
		return nil, false
	}
	return fn, true
}

// unwrapBatch decodes the batch parameter's payloads in order. A payload
// whose selector is unknown is left out.
func (d *Decoder) unwrapBatch(call *DecodedCall, depth int) error {
	param := call.Param(d.cfg.batchParam)
	if param == nil {
		return nil
	}

	var payloads []any
	switch v := param.RawValue.(type) {
	case []any:
		payloads = v
	default:
		payloads = []any{v}
	}

	for _, p := range payloads {
		var data []byte
		switch b := p.(type) {
		case []byte:
			data = b
		case string:
			decoded, err := DecodeHex(b)
			if err != nil {
				return err
			}
			data = decoded
		default:
			continue
		}

		nested, err := d.decodeCall(data, depth+1)
		if err != nil {
			return err
		}
		if nested == nil {
			continue
		}
		call.Nested = append(call.Nested, nested)
	}
	return nil
}

// DecodeLog resolves a log by its first topic and decodes its parameters.
// It returns nil without error when the log has no topics or the topic does
// not name a registered event.
func (d *Decoder) DecodeLog(l Log) (*DecodedLog, error) {
	if len(l.Topics) == 0 {
		return nil, nil
	}
	sig, err := DecodeHex(l.Topics[0])
	if err != nil {
		return nil, err
	}
	e, ok := d.registry.lookupID(sig)
	if !ok {
		d.cfg.logger.Debug("unresolved log topic", zap.String("topic", l.Topics[0]))
		return nil, nil
	}
	ev, ok := e.(*Event)
	if !ok {
		return nil, nil
	}

	topics := make([][]byte, len(l.Topics))
	topics[0] = sig
	for i := 1; i < len(l.Topics); i++ {
		if topics[i], err = DecodeHex(l.Topics[i]); err != nil {
			return nil, err
		}
	}
	data, err := DecodeHex(l.Data)
	if err != nil {
		return nil, err
	}

	values, err := ev.DecodeLog(data, topics)
	if err != nil {
		return nil, err
	}
	return newDecodedLog(ev, l.Address, values), nil
}

// DecodeLogs decodes the logs that resolve to registered events, in input
// order. Malformed logs are skipped with a warning, or abort the batch with
// a *LogError when WithStrictLogs is set.
func (d *Decoder) DecodeLogs(logs []Log) ([]*DecodedLog, error) {
	out := make([]*DecodedLog, 0, len(logs))
	for i, l := range logs {
		decoded, err := d.DecodeLog(l)
		if err != nil {
			if d.cfg.strictLogs {
				return nil, &LogError{Index: i, Address: l.Address, Err: err}
			}
			d.cfg.logger.Warn("skipping malformed log",
				zap.Int("index", i),
				zap.String("address", l.Address),
				zap.Error(err),
			)
			continue
		}
		if decoded != nil {
			out = append(out, decoded)
		}
	}
	return out, nil
}

// DecodeLogsJSON decodes a JSON array of {data, topics, address} records.
func (d *Decoder) DecodeLogsJSON(data []byte) ([]*DecodedLog, error) {
	logs, err := ParseLogsJSON(data)
	if err != nil {
		return nil, err
	}
	return d.DecodeLogs(logs)
}

// DecodeReceiptLogs decodes logs taken from a go-ethereum receipt.
func (d *Decoder) DecodeReceiptLogs(logs []*types.Log) ([]*DecodedLog, error) {
	converted := make([]Log, 0, len(logs))
	for _, l := range logs {
		if l != nil {
			converted = append(converted, LogFromTypes(l))
		}
	}
	return d.DecodeLogs(converted)
}
