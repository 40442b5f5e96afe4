package logging_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Coding-Krakken/MaintAInPro-sub003/internal/infrastructure/monitoring/logging"
)

func TestNewLogger_Defaults(t *testing.T) {
	t.Parallel()

	log, err := logging.NewLogger(logging.LogConfig{})
	require.NoError(t, err)
	require.NotNil(t, log)

	// Must not panic on any level or derived logger.
	log.Debug("debug", logging.String("k", "v"))
	log.Info("info", logging.Int("count", 3))
	log.Warn("warn", logging.Duration("elapsed", time.Second))
	log.Error("error", logging.Err(errors.New("boom")))
	log.With(logging.Bool("child", true)).Info("child entry")
	log.Named("scheduler").Info("named entry")
}

func TestNewLogger_ConsoleFormat(t *testing.T) {
	t.Parallel()

	log, err := logging.NewLogger(logging.LogConfig{Level: "debug", Format: "console"})
	require.NoError(t, err)
	log.Debug("visible in console format")
}

func TestSetLevel_AdjustsThresholdAtRuntime(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "engine.log")
	log, err := logging.NewLogger(logging.LogConfig{Level: "info", OutputPaths: []string{path}})
	require.NoError(t, err)

	log.Debug("suppressed at info")
	require.True(t, logging.SetLevel(log, "debug"))
	log.Debug("emitted at debug")
	// Named derivatives share the same threshold.
	log.Named("scheduler").Debug("named emitted at debug")

	out, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "suppressed at info")
	assert.Contains(t, string(out), "emitted at debug")
	assert.Contains(t, string(out), "named emitted at debug")
}

func TestSetLevel_NopLoggerReportsUnsupported(t *testing.T) {
	t.Parallel()

	assert.False(t, logging.SetLevel(logging.NewNop(), "debug"))
}

func TestErrField_NilError(t *testing.T) {
	t.Parallel()

	f := logging.Err(nil)
	assert.Equal(t, "error", f.Key)
	assert.Equal(t, "<nil>", f.Value)
}

func TestNewNop_Discards(t *testing.T) {
	t.Parallel()

	log := logging.NewNop()
	log.Info("goes nowhere")
	log.Error("also nowhere", logging.Any("payload", map[string]int{"a": 1}))
}
