package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger creates a zap logger. Development mode gets colored console
// output; production mode writes JSON. When logFile is non-empty the
// production config also appends to it, so the status endpoint can tail it.
func NewLogger(development bool, logFile string) (*zap.Logger, error) {
	var cfg zap.Config
	if development {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		cfg = zap.NewProductionConfig()
	}
	if logFile != "" {
		cfg.OutputPaths = append(cfg.OutputPaths, logFile)
	}
	return cfg.Build()
}

// MustNewLogger creates a logger and panics if it fails.
func MustNewLogger(development bool, logFile string) *zap.Logger {
	logger, err := NewLogger(development, logFile)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	return logger
}
