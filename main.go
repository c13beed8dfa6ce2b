// main.go
package main

import (
	"context"
	"log"

	"movie-reservation/cmd"
	"movie-reservation/internal/data/repository"
	"movie-reservation/internal/wire"
	"movie-reservation/migrations"
	"movie-reservation/pkg/database"
	"movie-reservation/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	// Apply pending schema migrations
	if err := migrations.Apply(context.Background(), db); err != nil {
		logger.Fatal("Failed to apply migrations", zap.Error(err))
	}

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// Wire all dependencies
	app := wire.Wiring(repos, config, logger)

	// Make sure the configured admin account exists before serving traffic
	if err := app.Service.Auth.SeedAdmin(context.Background()); err != nil {
		logger.Fatal("Failed to seed admin account", zap.Error(err))
	}

	// Background reconciler keeps persisted reservation statuses in line
	// with showtimes that have already started
	reconcilerCtx, stopReconciler := context.WithCancel(context.Background())
	defer stopReconciler()
	if config.Reconciler.Enabled {
		go app.Service.Reservation.RunReconciler(reconcilerCtx, config.Reconciler.Interval)
	}

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port)
}
