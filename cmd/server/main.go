package main

import (
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"homesight/server/config"
	"homesight/server/internal/analysis"
	"homesight/server/internal/api"
	"homesight/server/internal/database"
	"homesight/server/internal/geocoding"
	"homesight/server/internal/storage"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	db, err := database.NewDatabase(cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize database")
	}
	defer db.Close()

	logger.Info("Running database migrations...")
	if err := db.RunMigrations(); err != nil {
		logger.WithError(err).Fatal("Failed to run database migrations")
	}

	store, err := storage.NewStore(cfg.Storage.BaseDir, cfg.Storage.PublicPrefix, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize image store")
	}

	client := analysis.NewClient(cfg.Analysis.WebhookURL, cfg.Analysis.TimeoutSeconds, logger)

	var geocoder *geocoding.Geocoder
	if cfg.GeocodeCacheDir != "" {
		geocoder = geocoding.NewGeocoder(logger, cfg.GeocodeCacheDir)
	}

	handler := api.NewHandler(db, client, store, geocoder, logger)

	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.Server.AllowedOrigins,
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "X-User-ID"},
		ExposeHeaders: []string{"Content-Disposition"},
	}))
	router.Static(cfg.Storage.PublicPrefix, cfg.Storage.BaseDir)

	api.SetupRoutes(router, handler)

	logger.Infof("Starting server on port %s", cfg.Server.Port)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		logger.WithError(err).Fatal("Server failed to start")
	}
}
