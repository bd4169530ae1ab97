// Package main is the entry point for the API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/cartline-ai/shop-assistant/internal/catalog"
	"github.com/cartline-ai/shop-assistant/internal/config"
	"github.com/cartline-ai/shop-assistant/internal/dialogue"
	"github.com/cartline-ai/shop-assistant/internal/events"
	"github.com/cartline-ai/shop-assistant/internal/handler"
	"github.com/cartline-ai/shop-assistant/internal/llm"
	"github.com/cartline-ai/shop-assistant/internal/middleware"
	"github.com/cartline-ai/shop-assistant/internal/model"
	"github.com/cartline-ai/shop-assistant/internal/service"
	"github.com/cartline-ai/shop-assistant/internal/session"
	"github.com/cartline-ai/shop-assistant/pkg/logger"
	"github.com/cartline-ai/shop-assistant/pkg/tracing"
)

func main() {
	cfg := config.Load()

	var log *logger.Logger
	var err error
	if cfg.LogPretty {
		log, err = logger.NewDevelopment()
	} else {
		log, err = logger.New(cfg.LogLevel)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("starting API server")

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	if cfg.TracingEnabled {
		tp, err := tracing.InitTracer(ctx, "shop-assistant", cfg.TracingEndpoint)
		if err != nil {
			log.Warn("failed to initialize tracing", zap.Error(err))
		} else {
			defer tracing.Shutdown(ctx, tp)
		}
	}

	// Catalog store: SQLite when configured, sample catalog otherwise.
	var catalogStore catalog.Store
	if cfg.CatalogDBPath != "" {
		sqliteStore, err := catalog.NewSQLite(cfg.CatalogDBPath)
		if err != nil {
			log.Error("failed to open catalog database", zap.Error(err))
			os.Exit(1)
		}
		catalogStore = sqliteStore
	} else {
		log.Info("no catalog database configured, serving sample catalog")
		catalogStore = catalog.NewMemoryStore(catalog.SampleProducts())
	}
	defer catalogStore.Close()

	// Optional turn analytics via NATS.
	var publisher *events.Publisher
	if cfg.NATSURL != "" {
		publisher, err = events.Connect(ctx, events.Config{
			URL:   cfg.NATSURL,
			Token: cfg.NATSToken,
		}, log)
		if err != nil {
			log.Warn("failed to connect to NATS, turn events disabled", zap.Error(err))
			publisher = nil
		} else {
			log.Info("turn event publishing enabled", zap.Bool("connected", publisher.IsConnected()))
		}
	}
	defer publisher.Close()

	// Completion client, if a provider key is configured.
	var llmClient llm.Client
	var llmErr error
	switch {
	case cfg.DefaultLLM == "anthropic" && cfg.AnthropicAPIKey != "":
		llmClient, llmErr = llm.NewClient(llm.ProviderAnthropic, cfg.AnthropicAPIKey)
	case cfg.OpenAIAPIKey != "":
		llmClient, llmErr = llm.NewClient(llm.ProviderOpenAI, cfg.OpenAIAPIKey)
	case cfg.AnthropicAPIKey != "":
		llmClient, llmErr = llm.NewClient(llm.ProviderAnthropic, cfg.AnthropicAPIKey)
	}
	if llmErr != nil {
		log.Warn("failed to create LLM client, completions disabled", zap.Error(llmErr))
		llmClient = nil
	}
	if llmClient == nil {
		log.Info("no completion client configured, deterministic fallbacks only")
	}

	// Session store with background sweep.
	sessionStore := session.NewStore(cfg.SessionTTL, cfg.SessionStaleAfter, log,
		session.WithEvictionCallback(func(id, reason string) {
			publisher.PublishTurn(ctx, &model.TurnEvent{
				ID:        id,
				SessionID: id,
				Type:      model.EventTypeSessionEvicted,
				Reason:    reason,
				CreatedAt: time.Now(),
			})
		}),
	)
	go sessionStore.Run(ctx, cfg.SessionSweepEvery)

	resolver := dialogue.NewResolver(catalogStore, llmClient, dialogue.Config{
		StoreBaseURL:   cfg.StoreBaseURL,
		CatalogTimeout: cfg.CatalogTimeout,
		LLMTimeout:     cfg.LLMTimeout,
	}, log)

	chatSvc := service.NewChatService(resolver, sessionStore, publisher, log)

	healthHandler := handler.NewHealthHandler(catalogStore)
	chatHandler := handler.NewChatHandler(chatSvc, log)
	sessionHandler := handler.NewSessionHandler(chatSvc, log)
	adminHandler := handler.NewAdminHandler(chatSvc, log)

	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging(log))
	r.Use(middleware.SecurityHeaders)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		ExposedHeaders:   []string{"X-Correlation-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health endpoints (no auth required)
	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)

	// Metrics endpoint
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimit(cfg.RateLimitRequests, cfg.RateLimitWindow))

			r.Post("/chat", chatHandler.Chat)
			r.Post("/session/refresh", sessionHandler.Refresh)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWTSecret))

			r.Get("/sessions", adminHandler.Sessions)
			r.Delete("/sessions/{id}", adminHandler.EvictSession)
		})
	})

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      r,
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info("server listening", zap.String("port", cfg.ServerPort))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", zap.Error(err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}

	log.Info("server stopped")
}
