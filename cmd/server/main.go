// Package main is the entry point for the resource API server.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/vyrodovalexey/textstore/internal/config"
	"github.com/vyrodovalexey/textstore/internal/seed"
	"github.com/vyrodovalexey/textstore/internal/server"
	"github.com/vyrodovalexey/textstore/internal/store"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Load .env if present. Deployed environments set variables directly,
	// so a missing file is not an error.
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		// Use a basic logger for startup errors
		basicLogger, _ := zap.NewProduction()
		basicLogger.Fatal("failed to load configuration", zap.Error(err))
	}

	// Initialize logger
	logger, err := initLogger(cfg.LogLevel)
	if err != nil {
		basicLogger, _ := zap.NewProduction()
		basicLogger.Fatal("failed to initialize logger", zap.Error(err))
	}
	defer func() {
		_ = logger.Sync()
	}()

	logger.Info("configuration loaded",
		zap.Int("server_port", cfg.ServerPort),
		zap.String("log_level", cfg.LogLevel),
		zap.Duration("shutdown_timeout", cfg.ShutdownTimeout),
		zap.Bool("metrics_enabled", cfg.MetricsEnabled),
		zap.String("seed_file", cfg.SeedFile),
		zap.String("static_dir", cfg.StaticDir),
	)

	// Create memory store and load the bootstrap data. The store cannot
	// operate without its initial data, so a configured seed file that
	// fails to load aborts startup.
	resourceStore := store.NewMemoryStore()
	if cfg.SeedFile != "" {
		resources, err := seed.LoadFile(cfg.SeedFile)
		if err != nil {
			logger.Fatal("failed to load seed file",
				zap.String("path", cfg.SeedFile),
				zap.Error(err),
			)
		}

		if err := resourceStore.Seed(context.Background(), resources); err != nil {
			logger.Fatal("failed to seed store",
				zap.String("path", cfg.SeedFile),
				zap.Error(err),
			)
		}

		logger.Info("store seeded",
			zap.String("path", cfg.SeedFile),
			zap.Int("resources", resourceStore.Len()),
		)
	} else {
		logger.Info("no seed file configured, starting with an empty store")
	}

	// Create and start server
	srv := server.New(cfg, logger, resourceStore)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- srv.Start()
	}()

	// Wait for shutdown signal
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		logger.Error("server error", zap.Error(err))
		return 1
	case sig := <-shutdown:
		logger.Info("shutdown signal received", zap.String("signal", sig.String()))

		// Create shutdown context with timeout
		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		// Graceful shutdown
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("graceful shutdown failed", zap.Error(err))
			return 1
		}
	}

	logger.Info("server stopped")
	return 0
}

// initLogger initializes a zap logger with the specified log level.
func initLogger(level string) (*zap.Logger, error) {
	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		zapLevel = zapcore.InfoLevel
	}

	zapConfig := zap.Config{
		Level:       zap.NewAtomicLevelAt(zapLevel),
		Development: false,
		Sampling: &zap.SamplingConfig{
			Initial:    100,
			Thereafter: 100,
		},
		Encoding: "json",
		EncoderConfig: zapcore.EncoderConfig{
			TimeKey:        "timestamp",
			LevelKey:       "level",
			NameKey:        "logger",
			CallerKey:      "caller",
			FunctionKey:    zapcore.OmitKey,
			MessageKey:     "message",
			StacktraceKey:  "stacktrace",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.LowercaseLevelEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.SecondsDurationEncoder,
			EncodeCaller:   zapcore.ShortCallerEncoder,
		},
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	return zapConfig.Build()
}
