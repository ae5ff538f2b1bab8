package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xiebiao/storefront/internal/infrastructure/config"
)

func TestNew_JSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")

	lg, err := New(config.LogConfig{Level: "info", Format: "json", Output: path})
	require.NoError(t, err)
	t.Cleanup(func() { zap.ReplaceGlobals(zap.NewNop()) })

	lg.Debug("debug should be filtered")
	lg.Info("order created", zap.String("order_id", "o-1"))
	_ = lg.Sync()

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), `"msg":"order created"`)
	assert.Contains(t, string(content), `"order_id":"o-1"`)
	assert.NotContains(t, string(content), "debug should be filtered")

	assert.Same(t, lg, zap.L(), "New应替换全局logger")
}

func TestNew_InvalidConfig(t *testing.T) {
	_, err := New(config.LogConfig{Level: "verbose", Format: "json"})
	assert.Error(t, err)

	_, err = New(config.LogConfig{Level: "info", Format: "xml"})
	assert.Error(t, err)
}
