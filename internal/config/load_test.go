package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	Load("")
	s := Current()

	assert.Equal(t, 3, s.Warmup)
	assert.Equal(t, 100*time.Millisecond, s.TargetWindow)
	assert.Equal(t, 100_000, s.MaxOuterIterations)
	assert.Equal(t, "results", s.ResultsDir)
	assert.Equal(t, "rexbench.db", s.HistoryPath)
	assert.False(t, s.Verbose)
}

func TestLoadEnvOverride(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	t.Setenv("REXBENCH_WARMUP", "7")
	t.Setenv("REXBENCH_TARGET_WINDOW_MS", "250")
	t.Setenv("REXBENCH_RESULTS_DIR", "/tmp/out")

	Load("")
	s := Current()

	assert.Equal(t, 7, s.Warmup)
	assert.Equal(t, 250*time.Millisecond, s.TargetWindow)
	assert.Equal(t, "/tmp/out", s.ResultsDir)
}

func TestLoadConfigFile(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	path := filepath.Join(t.TempDir(), "rexbench.yaml")
	require.NoError(t, os.WriteFile(path, []byte("warmup: 1\nmax_outer_iterations: 42\n"), 0644))

	Load(path)
	s := Current()

	assert.Equal(t, 1, s.Warmup)
	assert.Equal(t, 42, s.MaxOuterIterations)
	// Untouched keys keep their defaults.
	assert.Equal(t, 100*time.Millisecond, s.TargetWindow)
}
