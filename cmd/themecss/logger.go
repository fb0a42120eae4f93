package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// newLogger returns the console logger for the program. Log output goes to
// stderr so that stdout carries only command results.
func newLogger(level string, colors bool) (*zap.Logger, error) {
	var lowest zapcore.Level
	switch level {
	case "none":
		return zap.NewNop(), nil
	case "normal", "":
		lowest = zapcore.InfoLevel
	case "debug":
		lowest = zapcore.DebugLevel
	default:
		return nil, fmt.Errorf("unknown log level %q (want none|normal|debug)", level)
	}

	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeCaller = nil
	if colors || enableColorOutput(os.Stderr) {
		ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
		ec.TimeKey = zapcore.OmitKey
	} else {
		ec.EncodeLevel = zapcore.CapitalLevelEncoder
	}

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(ec), zapcore.Lock(os.Stderr),
		zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
			return lvl >= lowest
		}))
	return zap.New(core), nil
}

// enableColorOutput reports whether f is a terminal and NO_COLOR is unset.
func enableColorOutput(f *os.File) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	info, err := f.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}
