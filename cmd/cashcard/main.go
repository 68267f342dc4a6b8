package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"

	"github.com/cashvault/cashcard/internal/app"
	"github.com/cashvault/cashcard/internal/config"
)

func main() {
	configPath := flag.String("config", config.DefaultConfigPath, "path to the YAML configuration file")
	flag.Parse()

	cfg, errLoad := config.Load(*configPath)
	if errLoad != nil {
		log.WithError(errLoad).Fatal("load configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if flag.Arg(0) == "migrate" {
		if errMigrate := app.Migrate(ctx, cfg); errMigrate != nil {
			log.WithError(errMigrate).Fatal("migrate database")
		}
		log.Info("migrations applied")
		os.Exit(0)
	}

	if errRun := app.RunServer(ctx, cfg); errRun != nil {
		log.WithError(errRun).Fatal("server exited")
	}
}
