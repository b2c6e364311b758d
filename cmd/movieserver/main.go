package main

import (
	"context"
	"errors"
	"fmt"
	"movieshelf/dynamodb"
	"movieshelf/flatfile"
	"movieshelf/httpserver"
	"movieshelf/movie"
	"movieshelf/pkg/config"
	"movieshelf/pkg/logger"
	"movieshelf/pkg/sentry"
	"movieshelf/postgres"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	sentrygo "github.com/getsentry/sentry-go"
	_ "github.com/lib/pq"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cannot load config:", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.AppEnv, cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, "cannot init logger:", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	err = sentrygo.Init(sentrygo.ClientOptions{
		Dsn:              cfg.SentryDSN,
		Environment:      cfg.AppEnv,
		AttachStacktrace: true,
	})
	if err != nil {
		log.Fatalw("cannot init sentry", "error", err)
	}
	defer sentrygo.Flush(sentry.FlushTime)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	src, err := catalogSource(ctx, cfg)
	if err != nil {
		log.Fatalw("cannot open catalog source", "source", cfg.Catalog.Source, "error", err)
	}

	uc := movie.NewUsecase(movie.NewWishlist(), movie.WithFeatured(movie.Identity{
		Title: cfg.Featured.Title,
		Genre: cfg.Featured.Genre,
		Year:  cfg.Featured.Year,
	}))
	if err := uc.LoadCatalog(ctx, src); err != nil {
		// keep serving with an empty catalog, the failure is exposed on /api/catalog/status
		log.Warnw("catalog load failed", "source", cfg.Catalog.Source, "error", err)
		sentry.WithTags(map[string]string{"catalog_source": cfg.Catalog.Source}).Error(err)
	} else {
		log.Infow("catalog loaded", "source", cfg.Catalog.Source, "count", uc.CatalogStatus().Count)
	}

	server, err := httpserver.New(
		httpserver.WithConfig(cfg),
		httpserver.WithLogger(log),
		httpserver.WithMovieService(uc),
	)
	if err != nil {
		log.Fatalw("cannot create http server", "error", err)
	}

	go func() {
		log.Infow("server started", "addr", server.Addr)
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorw("server stopped with error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorw("graceful shutdown failed", "error", err)
	}
	log.Info("server stopped")
}

func catalogSource(ctx context.Context, cfg *config.Config) (movie.Source, error) {
	switch cfg.Catalog.Source {
	case config.CatalogSourcePostgres:
		db, err := postgres.NewConnection(postgres.Options{
			DBName:   cfg.DB.Name,
			DBUser:   cfg.DB.User,
			Password: cfg.DB.Pass,
			Host:     cfg.DB.Host,
			Port:     fmt.Sprintf("%d", cfg.DB.Port),
			SSLMode:  cfg.DB.EnableSSL,
		})
		if err != nil {
			return nil, err
		}
		return postgres.NewMovieRepository(db), nil
	case config.CatalogSourceDynamoDB:
		client, err := dynamodb.NewClient(ctx, dynamodb.Options{
			Region:       cfg.DynamoDB.Region,
			Endpoint:     cfg.DynamoDB.Endpoint,
			AccessKey:    cfg.DynamoDB.AccessKey,
			SecretKey:    cfg.DynamoDB.SecretKey,
			SessionToken: cfg.DynamoDB.SessionToken,
		})
		if err != nil {
			return nil, err
		}
		return dynamodb.NewMovieRepository(client, cfg.DynamoDB.MoviesTable), nil
	default:
		return flatfile.NewSource(cfg.Catalog.Path), nil
	}
}
