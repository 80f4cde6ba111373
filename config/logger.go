package config

import (
	"strings"

	"go.uber.org/zap"
)

var Log *zap.SugaredLogger

// InitLogger builds the process-wide sugared logger. GIN_MODE=release
// switches to JSON production output.
func InitLogger() {
	var cfg zap.Config
	switch strings.ToLower(strings.TrimSpace(mode())) {
	case "release", "prod", "production":
		cfg = zap.NewProductionConfig()
	default:
		cfg = zap.NewDevelopmentConfig()
	}
	zapLogger, err := cfg.Build()
	if err != nil {
		panic(err)
	}
	Log = zapLogger.Sugar()
}

func mode() string {
	return envOr("GIN_MODE", "debug")
}
