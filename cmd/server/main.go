package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/tendant/chi-demo/app"
	"github.com/tendant/simple-upload/internal/api"
	"github.com/tendant/simple-upload/pkg/simpleupload/config"
)

// AuthConfig holds the HTTP-surface knobs that live outside the resolver
// configuration. With no JWT secret the API runs open, which is only
// suitable for development.
type AuthConfig struct {
	JwtSecret string `env:"UPLOAD_JWT_SECRET" env-default:""`
}

func main() {
	// Load configuration
	var auth AuthConfig
	if err := cleanenv.ReadEnv(&auth); err != nil {
		slog.Error("Failed to read configuration", "err", err)
		os.Exit(1)
	}

	cfg, err := config.Load(config.WithEnv("UPLOAD_"))
	if err != nil {
		slog.Error("Failed to load server configuration", "err", err)
		os.Exit(1)
	}

	ctx := context.Background()

	// Fail fast when the audit store is unreachable
	if cfg.DatabaseType == "postgres" {
		if err := config.PingPostgres(cfg.DatabaseURL, cfg.DBSchema); err != nil {
			slog.Error("Failed to ping database", "err", err)
			os.Exit(1)
		}
	}

	resolver, err := cfg.BuildResolver(ctx)
	if err != nil {
		slog.Error("Failed to build resolver", "err", err)
		os.Exit(1)
	}

	recorder, err := cfg.BuildRecorder(ctx)
	if err != nil {
		slog.Error("Failed to build audit recorder", "err", err)
		os.Exit(1)
	}

	resolveHandler := api.NewResolveHandler(resolver, recorder, cfg.BlockLocalAddrs)

	var tokenHandler *api.TokenHandler
	if cfg.TokenSecret != "" {
		codec, err := cfg.BuildCodec()
		if err != nil {
			slog.Error("Failed to build token codec", "err", err)
			os.Exit(1)
		}
		tokenHandler = api.NewTokenHandler(codec)
	} else {
		slog.Info("Token secret not configured, token endpoints disabled")
	}

	server := app.DefaultApp()

	app.RoutesHealthz(server.R)
	app.RoutesHealthzReady(server.R)

	server.R.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			if auth.JwtSecret != "" {
				tokenAuth := jwtauth.New("HS256", []byte(auth.JwtSecret), nil)
				r.Use(jwtauth.Verifier(tokenAuth))
				r.Use(jwtauth.Authenticator)
			}
			r.Mount("/resolve", resolveHandler.Routes())
			if tokenHandler != nil {
				r.Mount("/tokens", tokenHandler.Routes())
			}
		})
	})

	slog.Info("Starting simple-upload server",
		"environment", cfg.Environment,
		"database", cfg.DatabaseType,
		"block_local_addrs", cfg.BlockLocalAddrs,
		"auth", auth.JwtSecret != "")

	// Start server
	server.Run()
}
