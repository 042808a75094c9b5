// SPDX-License-Identifier: MIT

// Package logging builds the zap loggers used by the experiment runner and
// the pmx command.
//
// Output is a console encoding with bracketed upper-case levels and
// millisecond timestamps, written to stdout, to an hourly rotated file, or
// to both.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// TimeLayout is the timestamp format of every log line.
const TimeLayout = "2006-01-02 15:04:05.000"

// Config controls one logger.
type Config struct {
	Level     string // debug, info, warn or error; empty means info
	Path      string // rotated file prefix; empty disables the file sink
	Console   bool   // also write to stdout
	ShowLine  bool   // annotate entries with the caller
	MaxAgeDay int    // retention of rotated files
	RotateHr  int    // rotation interval
	RotateMB  int    // rotation size
}

// DefaultConfig logs info and above to the console only.
func DefaultConfig() Config {
	return Config{
		Level:     "info",
		Console:   true,
		ShowLine:  true,
		MaxAgeDay: 7,
		RotateHr:  24,
		RotateMB:  30,
	}
}

// ParseLevel maps a case-insensitive level name to a zap level.
func ParseLevel(s string) (zapcore.Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return zap.DebugLevel, nil
	case "", "INFO":
		return zap.InfoLevel, nil
	case "WARN", "WARNING":
		return zap.WarnLevel, nil
	case "ERROR":
		return zap.ErrorLevel, nil
	default:
		return zap.InfoLevel, errors.Errorf("logging: unknown level %q", s)
	}
}

// New builds a named logger from c. With neither a path nor the console
// enabled, a no-op logger is returned.
func New(name string, c Config) (*zap.Logger, error) {
	var sinks []zapcore.WriteSyncer
	if c.Console {
		sinks = append(sinks, zapcore.AddSync(os.Stdout))
	}
	if c.Path != "" {
		w, err := rotating(c)
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, zapcore.AddSync(w))
	}
	if len(sinks) == 0 {
		return zap.NewNop(), nil
	}

	return NewWithSyncer(name, c, zapcore.NewMultiWriteSyncer(sinks...))
}

// NewWithSyncer builds a logger writing to ws, ignoring c.Path and
// c.Console.
func NewWithSyncer(name string, c Config, ws zapcore.WriteSyncer) (*zap.Logger, error) {
	lvl, err := ParseLevel(c.Level)
	if err != nil {
		return nil, err
	}
	enabled := zap.LevelEnablerFunc(func(l zapcore.Level) bool { return l >= lvl })

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig()), ws, enabled)
	logger := zap.New(core).Named(name)
	if c.ShowLine {
		logger = logger.WithOptions(zap.AddCaller())
	}

	return logger, nil
}

func rotating(c Config) (io.Writer, error) {
	hr, mb, age := c.RotateHr, c.RotateMB, c.MaxAgeDay
	if hr <= 0 {
		hr = 24
	}
	if mb <= 0 {
		mb = 30
	}
	if age <= 0 {
		age = 7
	}
	w, err := rotatelogs.New(
		c.Path+".%Y%m%d%H",
		rotatelogs.WithRotationTime(time.Duration(hr)*time.Hour),
		rotatelogs.WithRotationSize(int64(mb)*1024*1024),
		rotatelogs.WithMaxAge(time.Duration(age)*24*time.Hour),
	)
	if err != nil {
		return nil, errors.Wrap(err, "logging: open rotated log")
	}

	return w, nil
}

func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:       "time",
		LevelKey:      "level",
		NameKey:       "logger",
		CallerKey:     "line",
		MessageKey:    "msg",
		StacktraceKey: "stacktrace",
		LineEnding:    zapcore.DefaultLineEnding,
		EncodeLevel: func(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
			enc.AppendString("[" + l.CapitalString() + "]")
		},
		EncodeTime: func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
			enc.AppendString(t.Format(TimeLayout))
		},
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
		EncodeName:     zapcore.FullNameEncoder,
	}
}
