package evmabi

import "go.uber.org/zap"

// DefaultMaxDepth is the default limit on nested batch decoding.
const DefaultMaxDepth = 32

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// DecoderOption configures a Decoder.
type DecoderOption func(*decoderConfig)

// decoderConfig holds configuration for a Decoder.
type decoderConfig struct {
	logger     *zap.Logger
	maxDepth   int
	batchName  string
	batchParam string
	strictLogs bool
}

// defaultDecoderConfig returns the default decoder configuration.
func defaultDecoderConfig() *decoderConfig {
	return &decoderConfig{
		logger:     zap.NewNop(),
		maxDepth:   DefaultMaxDepth,
		batchName:  "multicall",
		batchParam: "data",
	}
}

// WithRegistryLogger sets the logger used for registration and collision
// warnings. A nil logger is ignored.
func WithRegistryLogger(l *zap.Logger) RegistryOption {
	return func(r *Registry) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithLogger sets the decoder's logger. A nil logger is ignored.
func WithLogger(l *zap.Logger) DecoderOption {
	return func(c *decoderConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMaxDepth limits how deep batch calls are unwrapped.
// Default is 32. Zero or a negative value removes the limit.
func WithMaxDepth(max int) DecoderOption {
	return func(c *decoderConfig) {
		if max < 0 {
			max = 0
		}
		c.maxDepth = max
	}
}

// WithBatchFunction sets the function name (matched case-insensitively) and
// the bytes parameter that identify a batch call.
// Default is multicall with parameter data.
func WithBatchFunction(name, param string) DecoderOption {
	return func(c *decoderConfig) {
		c.batchName = name
		c.batchParam = param
	}
}

// WithStrictLogs makes log batch decoding fail on the first malformed log
// instead of skipping it.
func WithStrictLogs() DecoderOption {
	return func(c *decoderConfig) {
		c.strictLogs = true
	}
}
