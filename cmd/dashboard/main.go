package main

import (
	"context"
	"flag"
	"os"

	"github.com/Temutjin2k/taxi-fare-dashboard/config"
	"github.com/Temutjin2k/taxi-fare-dashboard/internal/app"
	"github.com/Temutjin2k/taxi-fare-dashboard/pkg/logger"
)

var (
	helpFlag   = flag.Bool("help", false, "Show help message")
	configPath = flag.String("config-path", "config.yaml", "Path to the config yaml file")
	envPath    = flag.String("env-path", ".env", "Path to the optional .env file")
)

func main() {
	flag.Parse()
	if *helpFlag {
		config.PrintHelp()
		return
	}

	ctx := context.Background()
	log := logger.InitLogger("taxi-fare-dashboard", logger.LevelDebug)

	cfg, err := config.NewConfig(*configPath, *envPath)
	if err != nil {
		log.Error(ctx, "failed to configure application", err)
		config.PrintHelp()
		os.Exit(1)
	}

	// Printing configuration
	config.PrintConfig(cfg)

	log = logger.InitLogger(cfg.Log.Service, cfg.Log.Level)

	// Creating application
	application, err := app.NewApplication(ctx, *cfg, log)
	if err != nil {
		log.Error(ctx, "failed to init application", err)
		os.Exit(1)
	}

	// Running the application
	if err = application.Run(ctx); err != nil {
		log.Error(ctx, "failed to run application", err)
		os.Exit(1)
	}
}
