package iologger_test

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/ifcdb/internal/iologger"
	"github.com/gnames/ifcdb/pkg/config"
	"github.com/gnames/ifcdb/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitFile(t *testing.T) {
	assert := assert.New(t)
	dir := t.TempDir()
	old := slog.Default()
	defer slog.SetDefault(old)

	cfg := config.LogConfig{Format: "json", Level: "warn", Destination: "file"}
	require.NoError(t, iologger.Init(dir, cfg))

	slog.Info("hidden")
	slog.Warn("visible", "path", "model.ifc")

	data, err := os.ReadFile(filepath.Join(dir, iologger.LogFile))
	require.NoError(t, err)
	assert.NotContains(string(data), "hidden")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(data, &rec))
	assert.Equal("visible", rec["msg"])
	assert.Equal("WARN", rec["level"])
	assert.Equal("model.ifc", rec["path"])
}

func TestInitBadDir(t *testing.T) {
	old := slog.Default()
	defer slog.SetDefault(old)

	dir := filepath.Join(t.TempDir(), "missing")
	cfg := config.LogConfig{Format: "text", Level: "info", Destination: "file"}
	err := iologger.Init(dir, cfg)

	var gnErr *gn.Error
	require.ErrorAs(t, err, &gnErr)
	assert.Equal(t, errcode.CreateLogFileError, gnErr.Code)
}
