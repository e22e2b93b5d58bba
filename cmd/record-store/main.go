package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/LangApex/alumni-platform/internal/config"
	"github.com/LangApex/alumni-platform/internal/logger"
	"github.com/LangApex/alumni-platform/internal/store/database"
	"github.com/LangApex/alumni-platform/internal/store/server"
	"github.com/LangApex/alumni-platform/internal/telemetry"
)

func main() {
	cfg, err := config.LoadStore()
	if err != nil {
		config.Exitf("record-store: %v", err)
	}

	log := logger.NewZerolog(os.Stdout, cfg.LogLevel)
	zerolog.DefaultContextLogger = &log

	shutdownTracing, err := telemetry.Setup(context.Background(), "record-store", cfg.OTLPEndpoint)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to set up tracing")
	}
	defer shutdownTracing(context.Background())

	db, err := database.New(context.Background(), database.Config{
		Driver: cfg.Database.Driver,
		DSN:    cfg.Database.DSN,
	})
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Database.Driver).Msg("Failed to initialize database")
	}
	defer db.Close()

	srv := server.New(server.Options{
		Addr:           cfg.Server.Addr(),
		APIKey:         cfg.APIKey,
		AllowedOrigins: cfg.CORSAllowedOrigins,
	}, db.DB(), &log)
	srv.Server.ReadTimeout = cfg.Server.ReadTimeout
	srv.Server.WriteTimeout = cfg.Server.WriteTimeout
	srv.Server.IdleTimeout = cfg.Server.IdleTimeout

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("Shutting down server...")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Stop(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
