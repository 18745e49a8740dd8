package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"github.com/rs/zerolog"

	"github.com/studydeck/studydeck-api/actions"
	"github.com/studydeck/studydeck-api/config"
	"github.com/studydeck/studydeck-api/generate"
	"github.com/studydeck/studydeck-api/handlers"
	"github.com/studydeck/studydeck-api/middleware"
	"github.com/studydeck/studydeck-api/store"
	"github.com/studydeck/studydeck-api/viewcache"
)

func main() {
	// Load .env if present; deployed environments set real variables.
	_ = godotenv.Load()

	log := newLogger(os.Getenv("LOG_LEVEL"))

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	db, err := config.OpenDatabase(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	st := store.New(db)

	var cache viewcache.Cache
	if cfg.RedisAddr != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		redisCache, err := viewcache.NewRedis(ctx, cfg.RedisAddr, log)
		cancel()
		if err != nil {
			log.Fatal().Err(err).Str("addr", cfg.RedisAddr).Msg("failed to connect to redis")
		}
		cache = redisCache
	} else {
		cache = viewcache.NewMemory()
	}

	acts := actions.New(st, cache, generate.TemplateGenerator{Delay: time.Second}, log)
	api := handlers.New(st, acts, cache, log, cfg)

	ensureValidToken, err := middleware.EnsureValidToken(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build auth middleware")
	}

	handler := api.Handler(ensureValidToken)
	handler = middleware.RequestLogger(log)(handler)
	handler = cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Requested-With", "Accept", "Origin"},
		AllowCredentials: true,
		MaxAge:           86400,
	}).Handler(handler)

	addr := "0.0.0.0:" + cfg.Port
	log.Info().Str("addr", addr).Str("authMode", cfg.AuthMode).Msg("starting server")
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(os.Stdout).Level(lvl).With().
		Str("service", "studydeck-api").
		Timestamp().
		Logger()
}
