package main

import (
	"context"
	"net/http"

	"gigbook/shared/go/logging"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		logging.New(logging.Config{}).Fatal("load config", err)
	}

	logger := logging.New(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	logging.SetGlobalLogger(logger)

	db, err := openDatabase(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("open database", err)
	}
	defer db.Close()

	handler := newHTTPHandler(cfg, db)

	startupLogger := logger.With().Str("addr", cfg.Addr).Logger()
	startupLogger.Info().Msg("booking directory listening")
	if err := http.ListenAndServe(cfg.Addr, handler); err != nil {
		logger.Fatal("server error", err)
	}
}
