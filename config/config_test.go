// SPDX-License-Identifier: MIT

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/multiplicity/config"
	"github.com/katalvlaran/multiplicity/epsilon"
)

func writeYAML(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pmx.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv(config.PathEnv, t.TempDir()) // no pmx.yaml there
	c, err := config.Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, epsilon.DefaultOptions().Epsilon, c.Epsilon)
	assert.Equal(t, 3, c.TargetCount)
	assert.Equal(t, 100, c.MaxAttempts)
	assert.Equal(t, 100, c.Samples)
	assert.Equal(t, config.SamplingMesh, c.Sampling)
	assert.Equal(t, "png", c.Format)
	assert.Equal(t, "info", c.Log.Level)
	assert.False(t, c.Glyph.Ring)
	assert.Equal(t, 1.0, c.Glyph.Size)
	assert.Equal(t, 3, c.KG.K)
}

func TestLoad_FileEnvFlags(t *testing.T) {
	path := writeYAML(t, `
epsilon: 0.2
target_count: 5
sampling: uniform
log:
  level: debug
glyph:
  ring: true
svm:
  epochs: 50
`)
	t.Setenv("PMX_TARGET_COUNT", "4")
	t.Setenv("PMX_SVM_LAMBDA", "0.5")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.Int64("seed", 1, "")
	fs.String("format", "png", "")
	require.NoError(t, fs.Parse([]string{"--seed", "42"}))

	c, err := config.Load(path, fs)
	require.NoError(t, err)
	assert.Equal(t, 0.2, c.Epsilon)
	assert.Equal(t, 4, c.TargetCount) // env beats file
	assert.Equal(t, config.SamplingUniform, c.Sampling)
	assert.Equal(t, "debug", c.Log.Level)
	assert.True(t, c.Glyph.Ring)
	assert.Equal(t, 50, c.SVM.Epochs)
	assert.Equal(t, 0.5, c.SVM.Lambda)
	assert.Equal(t, int64(42), c.Seed)
	assert.Equal(t, "png", c.Format) // unchanged flag keeps the default

	opts := c.EpsilonOptions()
	assert.Equal(t, 4, opts.TargetCount)
	assert.Equal(t, "debug", c.Logging().Level)
}

func TestLoad_Errors(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	assert.Error(t, err)

	for name, body := range map[string]string{
		"epsilon":  "epsilon: 0\n",
		"sampling": "sampling: spiral\n",
		"format":   "format: gif\n",
		"level":    "log:\n  level: loud\n",
		"k":        "kg:\n  k: 0\n",
		"resample": "resample: jackknife\n",
	} {
		_, err := config.Load(writeYAML(t, body), nil)
		assert.Error(t, err, name)
	}

	_, err = config.Load(writeYAML(t, "epsilon: 0\n"), nil)
	assert.ErrorIs(t, err, epsilon.ErrBadOptions)
}
