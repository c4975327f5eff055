package utils

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// logLevelEnvironmentVariable selects the logger level, for example "debug".
const logLevelEnvironmentVariable = "FLATTEN_LOG_LEVEL"

// NewApplicationLogger constructs a zap logger configured for human-readable console output.
// Output goes to stderr so that stdout carries only the flattened text.
func NewApplicationLogger() (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	config.Encoding = "console"
	config.DisableCaller = true
	config.DisableStacktrace = true
	config.OutputPaths = []string{"stderr"}
	config.ErrorOutputPaths = []string{"stderr"}
	config.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	config.EncoderConfig.TimeKey = ""
	config.EncoderConfig.LevelKey = ""
	config.EncoderConfig.NameKey = ""
	config.EncoderConfig.CallerKey = ""
	config.EncoderConfig.MessageKey = "message"
	config.EncoderConfig.StacktraceKey = ""
	if requestedLevel := strings.TrimSpace(os.Getenv(logLevelEnvironmentVariable)); requestedLevel != "" {
		level, parseError := zapcore.ParseLevel(requestedLevel)
		if parseError != nil {
			return nil, parseError
		}
		config.Level = zap.NewAtomicLevelAt(level)
	}
	return config.Build()
}
