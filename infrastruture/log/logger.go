// Package logger builds the named, colour tagged loggers used across the service.
package logger

import (
	"errors"
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var ErrNoWriter = errors.New("logger needs a writer")

// FileOptions configures the rotating log file shared by every logger.
type FileOptions struct {
	Path       string // Empty disables file output
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

var rotating *lumberjack.Logger

// SetFile routes every logger created afterwards to a rotating file as well as its writer.
func SetFile(opts FileOptions) {
	if opts.Path == "" {
		rotating = nil
		return
	}
	rotating = &lumberjack.Logger{
		Filename:   opts.Path,
		MaxSize:    max(opts.MaxSizeMB, 1),
		MaxBackups: opts.MaxBackups,
		MaxAge:     opts.MaxAgeDays,
	}
}

// CloseFile flushes and closes the rotating file, if any.
func CloseFile() error {
	if rotating == nil {
		return nil
	}
	return rotating.Close()
}

// New creates a logger whose name is printed in color on w.
func New(name, color string, w io.Writer) (*zap.SugaredLogger, error) {
	if w == nil {
		return nil, ErrNoWriter
	}

	console := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig(color, zapcore.CapitalColorLevelEncoder)),
		zapcore.AddSync(w),
		zapcore.DebugLevel,
	)

	core := console
	if rotating != nil {
		file := zapcore.NewCore(
			zapcore.NewConsoleEncoder(encoderConfig("", zapcore.CapitalLevelEncoder)),
			zapcore.AddSync(rotating),
			zapcore.DebugLevel,
		)
		core = zapcore.NewTee(console, file)
	}

	return zap.New(core, zap.AddCaller()).Named(name).Sugar(), nil
}

// Nop returns a logger that discards everything, for tests.
func Nop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

func encoderConfig(color string, level zapcore.LevelEncoder) zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:       "ts",
		LevelKey:      "level",
		NameKey:       "logger",
		CallerKey:     "caller",
		MessageKey:    "msg",
		StacktraceKey: "stack",
		LineEnding:    zapcore.DefaultLineEnding,
		EncodeLevel:   level,
		EncodeTime:    zapcore.ISO8601TimeEncoder,
		EncodeCaller:  zapcore.ShortCallerEncoder,
		EncodeName: func(name string, enc zapcore.PrimitiveArrayEncoder) {
			if color == "" {
				enc.AppendString("[" + name + "]")
				return
			}
			enc.AppendString(color + "[" + name + "]" + "\033[0m")
		},
	}
}
