// Command qrserve runs the QR code image server.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/qrserve/qrserve/internal/config"
	"github.com/qrserve/qrserve/pkg/cache"
	"github.com/qrserve/qrserve/pkg/imageserver"
	"github.com/qrserve/qrserve/pkg/logging"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func run() error {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	logger := logging.Setup(logging.Config{
		Level:  logging.LogLevel(cfg.Log.Level),
		Pretty: cfg.Log.Pretty,
		Output: os.Stderr,
	})

	// Cache store
	var store cache.Store
	switch cfg.Cache.Backend {
	case "redis":
		redisClient := redis.NewClient(&redis.Options{
			Addr: cfg.Cache.RedisAddr,
			DB:   cfg.Cache.RedisDB,
		})
		// Fail fast if Redis is misconfigured. Later outages degrade
		// to direct rendering.
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			return fmt.Errorf("redis connection failed: %w", err)
		}
		defer redisClient.Close()
		logger.Info().Str("addr", cfg.Cache.RedisAddr).Msg("redis connection established")
		store = cache.NewRedisStore(redisClient, cfg.Cache.Prefix)
	default:
		memStore := cache.NewMemoryStore(0)
		defer memStore.Close()
		store = memStore
	}
	logger.Info().
		Str("backend", store.Backend()).
		Dur("ttl", cfg.Cache.TTL.Std()).
		Msg("image cache configured")

	renderer := imageserver.NewRenderer(cache.NewManager(store), cfg.Cache.TTL.Std())
	urlSigner := imageserver.NewURLSigner(cfg.Protection.SigningKey, imageserver.DefaultImagePath)
	handler := imageserver.NewHandler(renderer, urlSigner.Signer(), cfg.Protection.AllowExternal)

	// Router
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(requestLogger(logger))
	r.Use(chimw.Recoverer)

	r.Mount(imageserver.DefaultImagePath, handler.Routes())
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       cfg.Server.ReadTimeout.Std(),
		WriteTimeout:      cfg.Server.WriteTimeout.Std(),
		IdleTimeout:       60 * time.Second,
	}

	logger.Info().
		Str("addr", srv.Addr).
		Bool("allow_external", cfg.Protection.AllowExternal).
		Msg("starting qr image server")

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("server error")
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	logger.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout.Std())
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info().Msg("server shutdown complete")
	return nil
}

// requestLogger logs one line per request with status and duration.
func requestLogger(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Debug().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Dur("duration", time.Since(start)).
				Msg("request")
		})
	}
}
