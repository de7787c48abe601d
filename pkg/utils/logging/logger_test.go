package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/furnace-rank/internal/config"
)

func TestInitLogger_WritesJSONFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")

	logger, path, err := InitLogger("test", config.LoggingConfig{Dir: dir})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(filepath.Base(path), "test_"))
	assert.Equal(t, dir, filepath.Dir(path))

	logger.Debug("scored trials")
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"scored trials"`)
	assert.Contains(t, string(data), `"timestamp"`)
}

func TestInitLogger_DefaultEnvName(t *testing.T) {
	_, path, err := InitLogger("", config.LoggingConfig{Dir: t.TempDir()})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(filepath.Base(path), "default_"))
}

func TestInitLogger_BadDir(t *testing.T) {
	file := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(file, nil, 0644))

	_, _, err := InitLogger("test", config.LoggingConfig{Dir: file})
	assert.ErrorContains(t, err, "failed to create logs directory")
}
