package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/LangApex/alumni-platform/internal/admin"
	"github.com/LangApex/alumni-platform/internal/changes"
	"github.com/LangApex/alumni-platform/internal/clients"
	"github.com/LangApex/alumni-platform/internal/config"
	"github.com/LangApex/alumni-platform/internal/guard"
	"github.com/LangApex/alumni-platform/internal/handlers"
	"github.com/LangApex/alumni-platform/internal/logger"
	"github.com/LangApex/alumni-platform/internal/preview"
	"github.com/LangApex/alumni-platform/internal/records"
	"github.com/LangApex/alumni-platform/internal/session"
	"github.com/LangApex/alumni-platform/internal/telemetry"
)

func main() {
	cfg, err := config.LoadGateway()
	if err != nil {
		config.Exitf("admin-gateway: %v", err)
	}

	log, err := logger.NewZap(cfg.LogLevel)
	if err != nil {
		config.Exitf("admin-gateway: %v", err)
	}
	defer log.Sync()

	loc, _ := cfg.Location()

	shutdownTracing, err := telemetry.Setup(context.Background(), "admin-gateway", cfg.OTLPEndpoint)
	if err != nil {
		log.Fatal("Failed to set up tracing", zap.Error(err))
	}
	defer shutdownTracing(context.Background())

	auth, err := session.NewAuthenticator(cfg.Session.Accounts)
	if err != nil {
		log.Fatal("Invalid ADMIN_ACCOUNTS", zap.Error(err))
	}

	// Redis is optional: without it sessions, submission keys and change
	// notices live in this process only.
	var (
		revocations session.RevocationStore = session.NewMemoryRevocations()
		submissions guard.Guard             = guard.NewMemoryGuard(cfg.SubmissionTTL)
		publisher   changes.Publisher       = changes.NopPublisher{}
	)
	if cfg.Redis.URL != "" {
		redisClient, err := clients.NewRedisClient(context.Background(), cfg.Redis.URL)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer redisClient.Close()
		log.Info("Connected to Redis")

		revocations = session.NewRedisRevocations(redisClient)
		submissions = guard.NewRedisGuard(redisClient, cfg.SubmissionTTL)
		publisher = changes.NewRedisPublisher(redisClient, cfg.ChangesChannel, log)
	} else {
		log.Warn("REDIS_URL not set, using in-memory sessions and submission guard")
	}

	sessions := session.NewManager(auth, session.NewIssuer(cfg.Session.Secret, cfg.Session.TTL), revocations, log)

	store := clients.NewStoreClient(cfg.Store.URL, cfg.Store.APIKey, cfg.Store.Timeout, log)
	service := admin.NewService(records.NewEvents(store), records.NewGallery(store), submissions, publisher, log)

	if cfg.LogLevel == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router, err := handlers.NewRouter(handlers.Deps{
		Service:      service,
		Sessions:     sessions,
		Preview:      preview.NewChecker(cfg.PreviewTimeout, log),
		Location:     loc,
		CookieSecure: cfg.Session.CookieSecure,
		Logger:       log,
	})
	if err != nil {
		log.Fatal("Failed to build router", zap.Error(err))
	}

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      otelhttp.NewHandler(router, "admin-gateway"),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("Starting admin gateway", zap.String("address", srv.Addr), zap.String("store_url", cfg.Store.URL))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited")
}
