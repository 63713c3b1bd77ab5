package evmabi

import (
	"testing"

	"go.uber.org/zap"
)

func TestDefaultDecoderConfig(t *testing.T) {
	config := defaultDecoderConfig()

	t.Run("max depth is DefaultMaxDepth by default", func(t *testing.T) {
		if config.maxDepth != DefaultMaxDepth {
			t.Errorf("Expected maxDepth to be %d, got %d", DefaultMaxDepth, config.maxDepth)
		}
	})

	t.Run("batch function is multicall(data) by default", func(t *testing.T) {
		if config.batchName != "multicall" {
			t.Errorf("Expected batchName multicall, got %q", config.batchName)
		}
		if config.batchParam != "data" {
			t.Errorf("Expected batchParam data, got %q", config.batchParam)
		}
	})

	t.Run("strict logs disabled by default", func(t *testing.T) {
		if config.strictLogs {
			t.Error("Expected strictLogs to be false by default")
		}
	})

	t.Run("logger is set", func(t *testing.T) {
		if config.logger == nil {
			t.Error("Expected a non-nil default logger")
		}
	})
}

func TestWithMaxDepth(t *testing.T) {
	t.Run("sets custom depth", func(t *testing.T) {
		config := defaultDecoderConfig()
		WithMaxDepth(4)(config)

		if config.maxDepth != 4 {
			t.Errorf("Expected maxDepth to be 4, got %d", config.maxDepth)
		}
	})

	t.Run("negative means unlimited", func(t *testing.T) {
		config := defaultDecoderConfig()
		WithMaxDepth(-1)(config)

		if config.maxDepth != 0 {
			t.Errorf("Expected maxDepth to be 0, got %d", config.maxDepth)
		}
	})
}

func TestWithBatchFunction(t *testing.T) {
	config := defaultDecoderConfig()
	WithBatchFunction("aggregate", "calls")(config)

	if config.batchName != "aggregate" {
		t.Errorf("Expected batchName aggregate, got %q", config.batchName)
	}
	if config.batchParam != "calls" {
		t.Errorf("Expected batchParam calls, got %q", config.batchParam)
	}
}

func TestWithStrictLogs(t *testing.T) {
	config := defaultDecoderConfig()
	WithStrictLogs()(config)

	if !config.strictLogs {
		t.Error("Expected strictLogs to be true")
	}
}

func TestWithLogger(t *testing.T) {
	t.Run("sets logger", func(t *testing.T) {
		config := defaultDecoderConfig()
		l := zap.NewExample()
		WithLogger(l)(config)

		if config.logger != l {
			t.Error("Expected logger to be replaced")
		}
	})

	t.Run("ignores nil", func(t *testing.T) {
		config := defaultDecoderConfig()
		WithLogger(nil)(config)

		if config.logger == nil {
			t.Error("Expected nil logger to be ignored")
		}
	})
}

func TestWithRegistryLogger(t *testing.T) {
	l := zap.NewExample()
	r := NewRegistry(WithRegistryLogger(l))

	if r.logger != l {
		t.Error("Expected registry logger to be replaced")
	}

	r = NewRegistry(WithRegistryLogger(nil))
	if r.logger == nil {
		t.Error("Expected nil registry logger to be ignored")
	}
}

func TestMultipleDecoderOptions(t *testing.T) {
	d := NewDecoder(NewRegistry(),
		WithMaxDepth(2),
		WithStrictLogs(),
		WithBatchFunction("batch", "calls"),
	)

	if d.cfg.maxDepth != 2 {
		t.Errorf("Expected maxDepth 2, got %d", d.cfg.maxDepth)
	}
	if !d.cfg.strictLogs {
		t.Error("Expected strictLogs true")
	}
	if d.cfg.batchName != "batch" || d.cfg.batchParam != "calls" {
		t.Errorf("Expected batch(calls), got %s(%s)", d.cfg.batchName, d.cfg.batchParam)
	}
}
