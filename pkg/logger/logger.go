package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Log struct {
	LogLevel zapcore.Level `yaml:"level" envconfig:"LOG_LEVEL" default:"info"`
	Sink     string        `yaml:"sink" envconfig:"LOG_SINK"`
}

// NewLogger builds a named zap logger from the Log config.
func NewLogger(cfg Log, name string) *zap.Logger {
	c := zap.NewProductionConfig()
	c.Level = zap.NewAtomicLevelAt(cfg.LogLevel)
	c.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if cfg.Sink != "" {
		c.OutputPaths = []string{cfg.Sink}
	}
	log, err := c.Build()
	if err != nil {
		panic(err)
	}
	return log.Named(name)
}
