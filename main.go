package main

import (
	"time"

	"go.uber.org/zap"

	"diascreen/internal/classifier"
	"diascreen/internal/config"
	"diascreen/internal/repository"
	"diascreen/internal/server"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	// Load configuration
	cfgPath := "configs/config.yml"
	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	// Database connection
	db, err := repository.NewPostgresDB(
		cfg.Database.URL,
		cfg.Database.MaxOpenConns,
		time.Duration(cfg.Database.ConnMaxLifetime)*time.Second,
		logger,
	)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Run migrations
	repository.MigrateDB(db, logger)

	// Load classifier and scaler artifacts. The service keeps running
	// without them; scoring requests fail with a clear condition until
	// the artifacts are fixed and the process restarted.
	adapter, err := classifier.Load(cfg.Model.Dir)
	if err != nil {
		logger.Warn("Model artifacts failed to load, predictions disabled", zap.Error(err))
		adapter = classifier.Disabled()
	} else {
		logger.Info("Model artifacts loaded", zap.Int("features", adapter.Arity()))
	}

	// Initialize and run the server
	srv := server.NewServer(db, cfg, adapter, logger)
	srv.Run(cfg.Server.Port)
}
