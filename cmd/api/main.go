package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/smartstay/navigator/internal/adapters/assist"
	"github.com/smartstay/navigator/internal/adapters/http"
	natsadapter "github.com/smartstay/navigator/internal/adapters/nats"
	"github.com/smartstay/navigator/internal/adapters/postgres"
	"github.com/smartstay/navigator/internal/adapters/valkey"
	"github.com/smartstay/navigator/internal/core/domain"
	"github.com/smartstay/navigator/internal/core/ports"
	"github.com/smartstay/navigator/internal/core/usecases"
	"github.com/smartstay/navigator/internal/pkg/config"
	"github.com/smartstay/navigator/internal/pkg/logging"
	"github.com/smartstay/navigator/internal/pkg/telemetry"
)

func main() {
	cfg, err := config.Load("smartstay-api")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logging.Setup("smartstay-api", cfg.Logging.Level, cfg.Logging.Format)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Telemetry
	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.InitTracer(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.TempoAddr)
		if err != nil {
			slog.Warn("telemetry init failed", "error", err)
		} else {
			defer shutdown(context.Background())
		}
	}

	// Database
	db, err := postgres.New(ctx, cfg.Database.DSN(), cfg.Database.MaxConns)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Cache. The API degrades to uncached reads when Valkey is down.
	var cacheSvc ports.CacheService
	cache, err := valkey.New(cfg.Valkey.Addr)
	if err != nil {
		slog.Warn("valkey unavailable", "error", err)
	} else {
		defer cache.Close()
		cacheSvc = cache
	}

	// NATS publisher for event activity, plus a raw connection for the
	// WebSocket relay.
	var publisher ports.EventPublisher
	pub, err := natsadapter.NewPublisher(cfg.NATS.URL)
	if err != nil {
		slog.Warn("nats unavailable", "error", err)
	} else {
		defer pub.Close()
		publisher = pub
	}

	natsConn, err := natsadapter.RawConn(cfg.NATS.URL)
	if err != nil {
		slog.Warn("nats ws conn unavailable", "error", err)
	}

	// Repos
	stayRepo := postgres.NewStayRepo(db)
	spotRepo := postgres.NewSpotRepo(db)
	eventRepo := postgres.NewEventRepo(db)

	// Assistance chain: primary, then secondary, then the offline responder
	// inside the service.
	providers := []ports.AssistProvider{
		assist.NewChatProvider(assist.ChatConfig{
			Name:    "openai",
			Class:   domain.ProviderPrimary,
			APIKey:  cfg.Assist.Primary.APIKey,
			BaseURL: cfg.Assist.Primary.BaseURL,
			Model:   cfg.Assist.Primary.Model,
		}),
		assist.NewChatProvider(assist.ChatConfig{
			Name:    "openrouter",
			Class:   domain.ProviderSecondary,
			APIKey:  cfg.Assist.Secondary.APIKey,
			BaseURL: cfg.Assist.Secondary.BaseURL,
			Model:   cfg.Assist.Secondary.Model,
		}),
	}

	var lookupOpts []func(*assist.NominatimLookup)
	if cfg.Assist.NominatimURL != "" {
		lookupOpts = append(lookupOpts, assist.WithBaseURL(cfg.Assist.NominatimURL))
	}
	lookup := assist.NewNominatimLookup(cfg.Assist.NominatimUserAgent, lookupOpts...)

	// Use cases
	staySvc := usecases.NewStayService(stayRepo, cacheSvc)
	spotSvc := usecases.NewSpotService(spotRepo, cacheSvc)
	eventSvc := usecases.NewEventService(eventRepo, publisher)
	assistSvc := usecases.NewAssistService(providers, lookup)
	translateSvc := usecases.NewTranslateService(
		assist.NewLibreTranslate(cfg.Translate.LibreTranslateURL, cfg.Translate.LibreTranslateKey),
		assist.NewMyMemory(cfg.Translate.MyMemoryURL),
	)
	cultureSvc := usecases.NewCultureService()

	deps := &http.Dependencies{
		Stays:     staySvc,
		Spots:     spotSvc,
		Events:    eventSvc,
		Assist:    assistSvc,
		Translate: translateSvc,
		Culture:   cultureSvc,
		NATS:      natsConn,
		DB:        db,
		Cache:     cache,
	}

	// Fiber
	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		BodyLimit:    1024 * 1024, // 1 MB max request body
		AppName:      "SmartStay Navigator API",
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "http://localhost:3000, http://localhost:5173",
		AllowMethods:     "GET,POST,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: false,
		MaxAge:           3600,
	}))

	http.SetupRoutes(app, deps)

	// Graceful shutdown
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		slog.Info("API server starting", "addr", addr)
		if err := app.Listen(addr); err != nil {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	slog.Info("shutdown signal received, draining connections...", "signal", sig.String())

	// Give in-flight requests up to 10s to complete
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("forced shutdown", "error", err)
	}

	slog.Info("server stopped")
}
