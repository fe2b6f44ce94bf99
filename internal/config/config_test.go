package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.True(t, cfg.Typecheck)
	assert.Equal(t, "error", cfg.LogLevel)
	assert.Equal(t, DefaultPrompt, cfg.Prompt)
	assert.Empty(t, cfg.HistoryFile)
	assert.True(t, cfg.Color)
	assert.Empty(t, cfg.FileUsed)
}

func TestLoadPicksUpDefaultFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultFile), []byte("prompt: \"> \"\ncolor: false\n"), 0600))
	t.Chdir(dir)

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "> ", cfg.Prompt)
	assert.False(t, cfg.Color)
	assert.Equal(t, DefaultFile, cfg.FileUsed)
}

func TestLoadPrecedence(t *testing.T) {
	t.Chdir(t.TempDir())
	cfgPath := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("log_level: info\ntypecheck: true\nhistory_file: from_file\n"), 0600))

	t.Setenv("TYL_LOG_LEVEL", "warn")
	t.Setenv("TYL_HISTORY_FILE", "from_env")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("log-level", "", "")
	flags.Bool("no-check", false, "")
	flags.String("prompt", "unused> ", "")
	require.NoError(t, flags.Set("log-level", "debug"))
	require.NoError(t, flags.Set("no-check", "true"))

	cfg, err := Load(cfgPath, flags)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "from_env", cfg.HistoryFile)
	assert.False(t, cfg.Typecheck)
	// unchanged flags keep the lower layers
	assert.Equal(t, DefaultPrompt, cfg.Prompt)
	assert.Equal(t, cfgPath, cfg.FileUsed)
}

func TestLoadErrors(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")

	t.Setenv("TYL_LOG_LEVEL", "loud")
	_, err = Load("", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log_level")
}
