package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caseflow/intake_service/internal/app"
	"github.com/caseflow/intake_service/internal/config"
	"github.com/caseflow/intake_service/pkg/logger"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the configuration file")
	flag.Parse()

	log := logger.NewDefault("main")
	cfg := config.LoadOrDefault(*configPath)

	service, err := app.New(cfg)
	if err != nil {
		log.WithError(err).Error("startup failed")
		os.Exit(1)
	}

	errCh := make(chan error, 1)
	go func() { errCh <- service.Run() }()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			log.WithError(err).Error("server failed")
			os.Exit(1)
		}
	case sig := <-sigCh:
		log.Infof("received %s, shutting down", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := service.Shutdown(ctx); err != nil {
			log.WithError(err).Error("shutdown failed")
			os.Exit(1)
		}
	}
}
