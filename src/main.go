package main

import (
	"net/http"

	"go.uber.org/zap"

	"smartfinance-server/src/api"
	"smartfinance-server/src/config"
	"smartfinance-server/src/db"
	"smartfinance-server/src/logger"
)

func main() {
	cfg := config.Load()

	// Connect to database
	pool, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}
	defer pool.Close()

	if err := db.RunMigrations(cfg.DatabaseURL); err != nil {
		logger.Fatal("migrations failed", zap.Error(err))
	}

	db.InitCache()

	// Router
	router := api.NewRouter(pool)

	logger.Info("API server running", zap.String("port", cfg.Port))
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
