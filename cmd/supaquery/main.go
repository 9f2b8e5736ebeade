package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/NeuralTrust/supaquery/pkg/config"
	"github.com/NeuralTrust/supaquery/pkg/dependency_container"
	infraLogger "github.com/NeuralTrust/supaquery/pkg/infra/logger"
	"github.com/NeuralTrust/supaquery/pkg/version"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	if err := run(context.Background(), os.Stdout, os.Stderr); err != nil {
		os.Exit(1)
	}
}

// run loads the environment, then builds the client and prints the rows.
// Nothing touches the network before the env file has been applied.
func run(ctx context.Context, stdout, stderr io.Writer) error {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		log.Println("no .env file found, using system environment variables")
	}

	if err := config.Load("./config"); err != nil {
		_, _ = fmt.Fprintf(stderr, "failed to load config: %v\n", err)
		return err
	}
	cfg := config.GetConfig()

	logger, closeLogs, err := infraLogger.NewLogger(infraLogger.Options{
		Level:  cfg.Log.Level,
		File:   cfg.Log.File,
		Output: stderr,
	})
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "failed to initialize logger: %v\n", err)
		return err
	}
	defer closeLogs()

	info := version.GetInfo()
	logger.WithFields(logrus.Fields{
		"app":        info.AppName,
		"version":    info.Version,
		"build_date": info.BuildDate,
		"go_version": info.GoVersion,
		"platform":   info.Platform,
		"backend":    cfg.Supabase.Backend,
		"schema":     cfg.Supabase.Schema,
	}).Debug("starting")

	container, err := dependency_container.NewContainer(dependency_container.ContainerDI{
		Cfg:    cfg,
		Logger: logger,
		Out:    stdout,
	})
	if err != nil {
		logger.WithError(err).Error("failed to initialize")
		return err
	}
	defer func() {
		if err := container.Close(); err != nil {
			logger.WithError(err).Warn("failed to release resources")
		}
	}()

	if cfg.HTTP.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.HTTP.Timeout)
		defer cancel()
	}

	if err := container.Runner.Run(ctx); err != nil {
		logger.WithError(err).Error("query failed")
		return err
	}
	return nil
}
