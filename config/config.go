// SPDX-License-Identifier: MIT

// Package config loads experiment settings from pmx.yaml, PMX_ environment
// variables and command-line flags, in increasing order of precedence.
package config

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/katalvlaran/multiplicity/epsilon"
	"github.com/katalvlaran/multiplicity/logging"
	"github.com/katalvlaran/multiplicity/svm"
)

const (
	// EnvPrefix prefixes every environment override, e.g. PMX_LOG_LEVEL.
	EnvPrefix = "pmx"
	// PathEnv names a directory searched for pmx.yaml when no file is given.
	PathEnv = "PMX_CFG_PATH"
	// FileName is the config file base name.
	FileName = "pmx"
)

// Sampling strategies for the generated datasets.
const (
	SamplingMesh    = "mesh"
	SamplingUniform = "uniform"
	SamplingDiag    = "diag"
)

// Sampling strategies for fitted epsilon members.
const (
	ResampleNone      = "none"
	ResampleBootstrap = "bootstrap"
)

// Config is the resolved experiment configuration.
type Config struct {
	Epsilon     float64 `mapstructure:"epsilon"`
	TargetCount int     `mapstructure:"target_count"`
	MaxAttempts int     `mapstructure:"max_attempts"`
	Seed        int64   `mapstructure:"seed"`
	Samples     int     `mapstructure:"samples"`
	Sampling    string  `mapstructure:"sampling"`
	Resample    string  `mapstructure:"resample"`
	OutputDir   string  `mapstructure:"output_dir"`
	Format      string  `mapstructure:"format"`

	Log   LogConfig   `mapstructure:"log"`
	Glyph GlyphConfig `mapstructure:"glyph"`
	SVM   SVMConfig   `mapstructure:"svm"`
	KG    KGConfig    `mapstructure:"kg"`
}

// LogConfig configures the logger.
type LogConfig struct {
	Level   string `mapstructure:"level"`
	Path    string `mapstructure:"path"`
	Console bool   `mapstructure:"console"`
}

// GlyphConfig configures glyph drawing.
type GlyphConfig struct {
	Ring bool    `mapstructure:"ring"`
	Size float64 `mapstructure:"size"` // multiplier of the default geometry
}

// SVMConfig configures the Pegasos fitter.
type SVMConfig struct {
	Lambda float64 `mapstructure:"lambda"`
	Epochs int     `mapstructure:"epochs"`
	Exact  bool    `mapstructure:"exact"` // refit the baseline bias on its support vectors
}

// KGConfig configures link prediction.
type KGConfig struct {
	K int `mapstructure:"k"`
}

// SetDefaults registers every key with its default on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("epsilon", epsilon.DefaultEpsilon)
	v.SetDefault("target_count", epsilon.DefaultTargetCount)
	v.SetDefault("max_attempts", epsilon.DefaultMaxAttempts)
	v.SetDefault("seed", 1)
	v.SetDefault("samples", 100)
	v.SetDefault("sampling", SamplingMesh)
	v.SetDefault("resample", ResampleBootstrap)
	v.SetDefault("output_dir", ".")
	v.SetDefault("format", "png")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.path", "")
	v.SetDefault("log.console", true)
	v.SetDefault("glyph.ring", false)
	v.SetDefault("glyph.size", 1.0)
	v.SetDefault("svm.lambda", svm.DefaultLambda)
	v.SetDefault("svm.epochs", svm.DefaultEpochs)
	v.SetDefault("svm.exact", false)
	v.SetDefault("kg.k", 3)
}

// New returns a viper instance with defaults and PMX_ environment binding.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	SetDefaults(v)

	return v
}

// Load resolves the configuration. path names an explicit file; when it is
// empty, pmx.yaml is looked up in $PMX_CFG_PATH (or the working directory)
// and its absence is not an error. Changed flags in fs override everything;
// a flag binds to the key of the same name.
func Load(path string, fs *pflag.FlagSet) (*Config, error) {
	v := New()
	if fs != nil {
		if err := v.BindPFlags(fs); err != nil {
			return nil, errors.Wrap(err, "config: bind flags")
		}
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		alt := os.Getenv(PathEnv)
		if alt == "" {
			alt = "."
		}
		v.AddConfigPath(alt)
		v.SetConfigName(FileName)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, errors.Wrapf(err, "config: read %q", path)
		}
	}

	c := &Config{}
	if err := v.Unmarshal(c); err != nil {
		return nil, errors.Wrap(err, "config: decode")
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

// Default returns the configuration with every key at its default.
func Default() *Config {
	c := &Config{}
	if err := New().Unmarshal(c); err != nil {
		panic(errors.Wrap(err, "config: decode defaults"))
	}

	return c
}

// Validate rejects settings no experiment can run with.
func (c *Config) Validate() error {
	if err := c.EpsilonOptions().Validate(); err != nil {
		return errors.Wrap(err, "config")
	}
	switch {
	case c.Samples < 2:
		return errors.Errorf("config: samples %d < 2", c.Samples)
	case c.SVM.Lambda <= 0:
		return errors.Errorf("config: svm.lambda %v must be positive", c.SVM.Lambda)
	case c.SVM.Epochs < 1:
		return errors.Errorf("config: svm.epochs %d < 1", c.SVM.Epochs)
	case c.Glyph.Size <= 0:
		return errors.Errorf("config: glyph.size %v must be positive", c.Glyph.Size)
	case c.KG.K < 1:
		return errors.Errorf("config: kg.k %d < 1", c.KG.K)
	}
	switch c.Sampling {
	case SamplingMesh, SamplingUniform, SamplingDiag:
	default:
		return errors.Errorf("config: unknown sampling %q", c.Sampling)
	}
	switch c.Resample {
	case ResampleNone, ResampleBootstrap:
	default:
		return errors.Errorf("config: unknown resample %q", c.Resample)
	}
	switch c.Format {
	case "png", "pdf", "svg", "eps":
	default:
		return errors.Errorf("config: unknown format %q", c.Format)
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return errors.Wrap(err, "config")
	}

	return nil
}

// EpsilonOptions projects the epsilon-set keys. The logger stays unset.
func (c *Config) EpsilonOptions() epsilon.Options {
	return epsilon.Options{
		Epsilon:     c.Epsilon,
		TargetCount: c.TargetCount,
		MaxAttempts: c.MaxAttempts,
	}
}

// Logging projects the log keys onto a logging.Config.
func (c *Config) Logging() logging.Config {
	lc := logging.DefaultConfig()
	lc.Level = c.Log.Level
	lc.Path = c.Log.Path
	lc.Console = c.Log.Console

	return lc
}
