package main

import (
	"context"
	stdlog "log"
	"os"
	"os/signal"
	"syscall"

	"booktrackr/internal/config"
	"booktrackr/internal/logger"
	"booktrackr/internal/server"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

func main() {
	configFile := pflag.StringP("config", "c", "config.yml", "path to config file")
	envFile := pflag.String("env", ".env", "path to .env file (optional)")
	pflag.Parse()

	if err := config.LoadEnv(*envFile); err != nil {
		stdlog.Fatalf("load env: %v", err)
	}

	appConfig, err := config.InitConfig[config.Config](*configFile)
	if err != nil {
		stdlog.Fatalf("init config: %v", err)
	}

	logCfg := logger.Log{}
	if appConfig.Logger != nil {
		logCfg.Level = appConfig.Logger.Level
		logCfg.Format = appConfig.Logger.Format
	}
	log, err := logger.NewLogger(logCfg, "booktrackr")
	if err != nil {
		stdlog.Fatalf("init logger: %v", err)
	}
	defer func() { _ = log.Sync() }()

	srv, err := server.NewServer(appConfig, log)
	if err != nil {
		log.Fatal("create server", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Initialize(ctx); err != nil {
		log.Fatal("initialize server", zap.Error(err))
	}

	if err := srv.Run(ctx); err != nil {
		log.Error("server stopped with error", zap.Error(err))
		os.Exit(1)
	}
	log.Info("BookTrackr stopped")
}
