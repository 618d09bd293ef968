package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/lumiere-stone/atelier/internal/admin"
	"github.com/lumiere-stone/atelier/internal/api"
	"github.com/lumiere-stone/atelier/internal/api/middleware"
	"github.com/lumiere-stone/atelier/internal/auth"
	"github.com/lumiere-stone/atelier/internal/cache"
	"github.com/lumiere-stone/atelier/internal/config"
	"github.com/lumiere-stone/atelier/internal/health"
	"github.com/lumiere-stone/atelier/internal/llm"
	"github.com/lumiere-stone/atelier/internal/metrics"
	"github.com/lumiere-stone/atelier/internal/narrative"
	"github.com/lumiere-stone/atelier/internal/notify"
	"github.com/lumiere-stone/atelier/internal/ratelimit"
	"github.com/lumiere-stone/atelier/internal/session"
	"github.com/lumiere-stone/atelier/internal/telemetry"
	"github.com/lumiere-stone/atelier/pkg/sendgrid"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const version = "1.0.0"

type textService interface {
	llm.Generator
	llm.ConversationStarter
}

func main() {
	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("⚠️ Could not read .env file", slog.String("error", err.Error()))
	}

	// Load config
	cfg := config.MustLoad()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, cfg.Otel, cfg.Env)
	if err != nil {
		slog.Error("❌ Error setting up tracing", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Text service; without credentials every call takes its fallback path.
	var text textService = llm.Unavailable{}
	if client, err := llm.NewClient(ctx, llm.Config{APIKey: cfg.Gemini.APIKey, BaseURL: cfg.Gemini.BaseURL, Model: cfg.Gemini.Model}); err != nil {
		slog.Warn("⚠️ Text service disabled, serving fallbacks", slog.String("error", err.Error()))
	} else {
		text = client
	}

	// Redis setup, optional
	var (
		redisClient    *redis.Client
		narrativeCache cache.Cache            = cache.Noop{}
		loginLimiter   ratelimit.LoginLimiter = ratelimit.Disabled{}
	)
	if cfg.RedisConnect.Enabled() {
		opt, err := redis.ParseURL(cfg.RedisConnect.GetDSN())
		if err != nil {
			slog.Error("❌ Invalid redis configuration", slog.String("error", err.Error()))
			os.Exit(1)
		}
		client := redis.NewClient(opt)

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		if err := client.Ping(pingCtx).Err(); err != nil {
			slog.Warn("⚠️ Redis unreachable, continuing without cache and login limits", slog.String("error", err.Error()))
			_ = client.Close()
		} else {
			redisClient = client
			narrativeCache = cache.NewRedisCache(redisClient, cfg.Cache.DefaultTTL)
			loginLimiter = ratelimit.NewRedisLimiter(redisClient, cfg.RateConfig.MaxAttempts, cfg.RateConfig.WindowSize)
			slog.Info("✅ Redis connected", slog.String("host", cfg.RedisConnect.Host))
		}
		cancel()
	}

	defer func() {
		if redisClient == nil {
			return
		}
		if err := redisClient.Close(); err != nil {
			slog.Error("⚠️ Error closing redis connection", slog.String("error", err.Error()))
		} else {
			slog.Info("✅ Redis connection closed")
		}
	}()

	// Order confirmations
	var notifier notify.Notifier = notify.LogNotifier{Logger: logger}
	if cfg.SendGrid.APIKey != "" {
		var opts []sendgrid.Option
		if cfg.SendGrid.Host != "" {
			opts = append(opts, sendgrid.WithHost(cfg.SendGrid.Host))
		}
		emails := sendgrid.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName, opts...)
		notifier = notify.NewEmailNotifier(emails, cfg.SendGrid.BCC...)
	}

	registry := session.NewRegistry(session.Dependencies{
		Narratives:          narrative.NewGenerator(text, narrative.WithCache(narrativeCache, cfg.Cache.DefaultTTL), narrative.WithLogger(logger)),
		Chat:                text,
		Notifier:            notifier,
		Logger:              logger,
		CollaboratorTimeout: cfg.Gemini.Timeout,
	}, cfg.Session.IdleTTL)
	go registry.Run(ctx, cfg.Session.SweepInterval)

	tokens := auth.NewTokenIssuer([]byte(cfg.Security.JWTKey), cfg.Security.JWTExpiry())
	gate := auth.NewGate(auth.NewVerifier(cfg.Admin.Identity, cfg.Admin.Passkey, cfg.Admin.PasskeyHash))

	healthChecker, err := health.NewHealthHandler(cfg, registry, version)
	if err != nil {
		slog.Error("❌ Error creating health checks", slog.String("error", err.Error()))
		os.Exit(1)
	}

	routerMux := api.NewRouter(api.Deps{
		Registry: registry,
		Login:    admin.NewLoginService(gate, loginLimiter, tokens),
		Tokens:   tokens,
		Health:   healthChecker.Handler(),
	})

	// Middleware chaining; metrics wraps the mux directly so it sees the route pattern
	var handler http.Handler = routerMux
	handler = metrics.Middleware(handler)
	handler = middleware.Logging(handler)
	handler = otelhttp.NewHandler(handler, "atelier")

	// Setup http server
	server := http.Server{
		Addr:         cfg.HTTPServer.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.HTTPServer.ReadTimeout,
		WriteTimeout: cfg.HTTPServer.WriteTimeout,
	}

	slog.Info("🚀 Server is starting...", slog.String("address", cfg.HTTPServer.Addr), slog.String("env", cfg.Env), slog.String("version", version))

	go func() {
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			slog.Error("❌ Failed to start server", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()

	slog.Warn("🛑 Shutdown signal received. Preparing to stop the server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPServer.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("⚠️ Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("✅ Server shut down gracefully. All connections closed.")
	}

	if err := registry.Drain(shutdownCtx); err != nil {
		slog.Warn("⚠️ Background narratives still running at shutdown", slog.String("error", err.Error()))
	}

	if err := shutdownTracing(shutdownCtx); err != nil {
		slog.Error("⚠️ Tracer shutdown encountered an issue", slog.String("error", err.Error()))
	}
}
