package main

import (
	"context"
	"flag"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"cryptoquery/config"
	"cryptoquery/internal/server"
	"cryptoquery/logger"
)

func main() {
	log := logger.GetLogger()

	// Load environment variables from .env if present
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.WithError(err).Warn("Error loading .env file")
	}

	configPath := flag.String("config", "config/config.yml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.WithError(err).Error("Failed to load configuration")
		os.Exit(1)
	}

	if err := log.Configure(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output, cfg.Logging.MaxAge); err != nil {
		log.WithError(err).Error("Failed to configure logger")
		os.Exit(1)
	}

	log.WithFields(logger.Fields{
		"service": cfg.Cryptoquery.Name,
		"version": cfg.Cryptoquery.Version,
	}).Info("starting cryptoquery")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Metrics.CloudWatch.Enabled {
		namespace := cfg.Metrics.CloudWatch.Namespace
		if namespace == "" {
			namespace = "CryptoQuery"
		}
		logger.InitCloudWatch(cfg.Metrics.CloudWatch.Region, namespace, cfg.Logging.DashboardName)
	}

	if strings.ToLower(cfg.Logging.Level) == "report" {
		logger.StartReport(ctx, log, 30*time.Second)
	}

	s := server.New(cfg)

	// ServeStdio blocks until the client closes the session.
	if err := server.ServeStdio(s); err != nil {
		log.WithError(err).Error("server terminated")
		os.Exit(1)
	}

	log.WithComponent("main").Info("cryptoquery stopped")
}
