package main

import (
	"fmt"
	"log/slog"
	"os"

	sentrygo "github.com/getsentry/sentry-go"
	_ "github.com/lib/pq"

	"github.com/danrneal/fs-casting-agency/actor"
	"github.com/danrneal/fs-casting-agency/auth"
	"github.com/danrneal/fs-casting-agency/httpserver"
	"github.com/danrneal/fs-casting-agency/movie"
	"github.com/danrneal/fs-casting-agency/pkg/config"
	"github.com/danrneal/fs-casting-agency/pkg/jwks"
	"github.com/danrneal/fs-casting-agency/pkg/sentry"
	"github.com/danrneal/fs-casting-agency/postgres"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Cannot load config", "error", err)
		os.Exit(1)
	}

	err = sentrygo.Init(sentrygo.ClientOptions{
		Dsn:              cfg.SentryDSN,
		Environment:      cfg.AppEnv,
		AttachStacktrace: true,
	})
	if err != nil {
		slog.Error("Cannot init sentry", "error", err)
		os.Exit(1)
	}
	defer sentrygo.Flush(sentry.FlushTime)

	db, err := postgres.NewConnection(postgres.Options{
		DBName:   cfg.DB.Name,
		DBUser:   cfg.DB.User,
		Password: cfg.DB.Pass,
		Host:     cfg.DB.Host,
		Port:     fmt.Sprintf("%d", cfg.DB.Port),
		SSLMode:  cfg.DB.EnableSSL,
	})
	if err != nil {
		slog.Error("Cannot open postgres connection", "error", err)
		os.Exit(1)
	}

	movieRepo := postgres.NewMovieRepository(db)
	actorRepo := postgres.NewActorRepository(db)
	keys := jwks.NewCache(cfg.JWKSURL(), nil, cfg.JWKSTTL())

	server := httpserver.Default(cfg)
	server.Addr = fmt.Sprintf(":%d", cfg.Port)
	server.MovieService = movie.NewUsecase(movieRepo, actorRepo)
	server.ActorService = actor.NewUsecase(actorRepo, movieRepo)
	server.AuthService = auth.NewUsecase(keys, cfg.Issuer(), cfg.Auth.Audience)

	slog.Info("server started!")
	if err := server.Start(); err != nil {
		slog.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}
