package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/theirongolddev/ratio/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("warning")
	require.NoError(t, err)
	assert.Equal(t, zapcore.WarnLevel, lvl)

	_, err = ParseLevel("loud")
	assert.Error(t, err)
}

func TestNew_OverrideWins(t *testing.T) {
	logger, err := New(config.LoggingConfig{Level: "error", Format: "console"}, "debug")
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))
}

func TestNew_RejectsBadFormat(t *testing.T) {
	_, err := New(config.LoggingConfig{Level: "info", Format: "xml"}, "")
	assert.Error(t, err)
}

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "ratio.log")
	logger, err := New(config.LoggingConfig{Level: "info", Format: "json", OutputFile: path}, "")
	require.NoError(t, err)

	logger.Info("ledger saved")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"ledger saved"`)
	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
}
