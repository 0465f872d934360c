package logger

import (
	"strings"

	"go.uber.org/zap"
)

// Log is the process wide sugared logger. It is a no-op until Init is called.
var Log = zap.NewNop().Sugar()

// Init builds the global logger for the given mode ("production" or anything else for development)
func Init(mode string) error {
	var cfg zap.Config
	switch strings.ToLower(mode) {
	case "prod", "production":
		cfg = zap.NewProductionConfig()
	default:
		cfg = zap.NewDevelopmentConfig()
	}

	zapLogger, err := cfg.Build()
	if err != nil {
		return err
	}
	Log = zapLogger.Sugar()
	return nil
}

// Named returns a child logger tagged with a component name
func Named(component string) *zap.SugaredLogger {
	return Log.With("component", component)
}

// Sync flushes buffered entries
func Sync() {
	_ = Log.Sync()
}
