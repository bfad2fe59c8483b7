package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir switches the working directory for the duration of the test,
// standing in for testing.T.Chdir which needs Go 1.24.
func chdir(t *testing.T, dir string) {
	t.Helper()

	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func TestLoadConfig_Defaults(t *testing.T) {
	// Run from an empty directory so no stray .esa.yaml is picked up.
	chdir(t, t.TempDir())

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, DefaultRuleSets, cfg.RuleSets)
	assert.Equal(t, "text", cfg.Output.Format)
	assert.True(t, cfg.Output.Color)
	assert.False(t, cfg.Output.Strict)
	assert.Empty(t, cfg.Metrics.Listen)
}

func TestLoadConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "esa.yaml")
	content := `rule_sets:
  - structure
output:
  format: json
  strict: true
metrics:
  listen: "127.0.0.1:9464"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"structure"}, cfg.RuleSets)
	assert.Equal(t, "json", cfg.Output.Format)
	assert.True(t, cfg.Output.Strict)
	assert.Equal(t, "127.0.0.1:9464", cfg.Metrics.Listen)
}

func TestLoadConfig_Env(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("ESA_OUTPUT_FORMAT", "yaml")

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "yaml", cfg.Output.Format)
}

func TestLoadConfig_InvalidFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "esa.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output:\n  format: csv\n"), 0o600))

	_, err := LoadConfig(path)
	require.ErrorIs(t, err, ErrInvalidFormat)
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	valid := Config{RuleSets: []string{"structure"}, Output: OutputConfig{Format: "text"}}
	require.NoError(t, valid.Validate())

	empty := Config{Output: OutputConfig{Format: "text"}}
	require.ErrorIs(t, empty.Validate(), ErrNoRuleSets)
}
