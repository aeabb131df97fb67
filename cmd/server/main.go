package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/unrolled/secure"

	"github.com/stockroom/backend/internal/config"
	"github.com/stockroom/backend/internal/handlers"
	"github.com/stockroom/backend/internal/logger"
	appMiddleware "github.com/stockroom/backend/internal/middleware"
	"github.com/stockroom/backend/internal/services"
	"github.com/stockroom/backend/internal/telemetry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if err := config.ValidateForProduction(cfg); err != nil {
		slog.Error("production config validation failed", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel)

	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	ctx := context.Background()

	itemService, cleanup, err := newItemService(ctx, cfg, log)
	if err != nil {
		log.Error("failed to initialize item store", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	itemHandler := handlers.NewItemHandler(itemService, log)

	r := newRouter(cfg, log)

	r.Get("/health", handlers.Health(itemService))
	r.Get("/metrics", telemetry.MetricsHandler().ServeHTTP)

	r.Route("/api", func(r chi.Router) {
		r.Route("/items", func(r chi.Router) {
			// Reads are always public.
			r.Get("/", itemHandler.ListItems)
			r.Get("/{itemId}", itemHandler.GetItem)

			// Mutations go through the bearer gate when a secret is set.
			r.Group(func(r chi.Router) {
				if cfg.AuthJWTSecret != "" {
					r.Use(appMiddleware.RequireAuth(cfg.AuthJWTSecret))
				}
				r.Post("/", itemHandler.CreateItem)
				r.Put("/{itemId}", itemHandler.UpdateItem)
				r.Delete("/{itemId}", itemHandler.DeleteItem)
			})
		})
	})

	srv := &http.Server{
		Addr:           cfg.ServerAddress,
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   30 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		log.Info("server listening",
			"addr", srv.Addr,
			"env", cfg.Environment,
			"store", cfg.StoreDriver,
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("forced shutdown", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}

// newItemService selects the store driver from config. The returned cleanup
// disconnects the mongo client; for the memory driver it is a no-op.
func newItemService(ctx context.Context, cfg *config.Config, log logger.Logger) (services.ItemService, func(), error) {
	switch cfg.StoreDriver {
	case config.DriverMemory:
		if cfg.DataDir != "" {
			svc, err := services.NewPersistentMemoryService(cfg.DataDir)
			if err != nil {
				return nil, nil, err
			}
			log.Info("using memory store with snapshot", "data_dir", cfg.DataDir)
			return svc, func() {}, nil
		}
		log.Info("using memory store")
		return services.NewMemoryItemService(), func() {}, nil
	default:
		connectCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
		defer cancel()

		svc, err := services.NewMongoItemService(connectCtx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, nil, err
		}
		log.Info("mongodb connected", "db", cfg.MongoDatabase)
		cleanup := func() {
			disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := svc.Close(disconnectCtx); err != nil {
				log.Warn("mongo disconnect", "error", err)
			}
		}
		return svc, cleanup, nil
	}
}

// newRouter wires the standard middleware stack, outermost first: recovery,
// sentry (repanics), request id, metrics, request log, real ip, rate limit,
// CORS, body cap, handler timeout, security headers.
func newRouter(cfg *config.Config, log logger.Logger) *chi.Mux {
	sec := secure.New(secure.Options{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		ReferrerPolicy:     "strict-origin-when-cross-origin",
		IsDevelopment:      cfg.Environment == config.EnvDevelopment,
	})

	r := chi.NewRouter()
	r.Use(
		logger.Recovery(log),
		telemetry.SentryMiddleware(),
		chimiddleware.RequestID,
		telemetry.Middleware,
		logger.Middleware(log),
		chimiddleware.RealIP,
		httprate.LimitByIP(cfg.RateLimitPerMin, time.Minute),
		corsMiddleware(cfg.CORSAllowedOrigins),
		bodyLimit(1<<20), // 1 MB; item payloads are tiny
		chimiddleware.Timeout(30*time.Second),
		sec.Handler,
	)
	return r
}

func corsMiddleware(allowedOrigins string) func(http.Handler) http.Handler {
	origins := splitOrigins(allowedOrigins)
	return cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"Link", "X-Request-Id"},
		AllowCredentials: false,
		MaxAge:           300,
	})
}

func splitOrigins(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

func bodyLimit(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}
