package main

import (
	stdLog "log"
	"time"

	"github.com/bookclub/library-service/app"
	"github.com/bookclub/library-service/config"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := godotenv.Load(); err != nil {
		stdLog.Fatal("load envs from .env ", zap.Error(err))
	}
	cfg := config.NewConfig(
		config.WithLogLevel(zapcore.DebugLevel),
		config.WithWriteTimeout(time.Minute),
	)

	if err := app.Run(cfg); err != nil {
		stdLog.Fatal("app run ", zap.Error(err))
	}
}
