package config

import (
	"fmt"

	"go.uber.org/zap"
)

// Logger builds the zap logger described by the log section.
// Level values: "debug", "info", "warn", "error".
func (l LogConfig) Logger() (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(l.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", l.Level, err)
	}

	zapConfig := zap.NewProductionConfig()
	if l.Development {
		zapConfig = zap.NewDevelopmentConfig()
	}
	zapConfig.Level = level
	zapConfig.OutputPaths = []string{"stderr"}

	return zapConfig.Build()
}

// SetupLogger installs the configured logger as the global zap logger and
// returns a function restoring the previous one.
func (l LogConfig) SetupLogger() (func(), error) {
	logger, err := l.Logger()
	if err != nil {
		return nil, err
	}
	restore := zap.ReplaceGlobals(logger)
	return func() {
		_ = logger.Sync()
		restore()
	}, nil
}
