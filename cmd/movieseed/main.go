package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"movieshelf/dynamodb"
	"movieshelf/flatfile"
	"movieshelf/movie"
	"movieshelf/pkg/config"
	"movieshelf/postgres"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"
)

const (
	targetPostgres = "postgres"
	targetDynamoDB = "dynamodb"
)

func main() {
	var (
		catalogPath string
		target      string
		limit       int
	)

	flag.StringVar(&catalogPath, "catalog", "", "Path to the catalog text file (defaults to CATALOG_PATH)")
	flag.StringVar(&target, "target", targetPostgres, "Where to copy the catalog: postgres or dynamodb")
	flag.IntVar(&limit, "limit", 0, "Limit number of movies to import (0 = all)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("load config failed", "error", err)
		os.Exit(1)
	}
	if catalogPath == "" {
		catalogPath = cfg.Catalog.Path
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	movies, err := flatfile.NewSource(catalogPath).LoadMovies(ctx)
	if err != nil {
		slog.Error("cannot read catalog", "path", catalogPath, "error", err)
		os.Exit(1)
	}
	if limit > 0 && limit < len(movies) {
		movies = movies[:limit]
	}

	if err := seed(ctx, cfg, target, movies); err != nil {
		slog.Error("import failed", "target", target, "error", err)
		os.Exit(1)
	}

	slog.Info("import completed", "target", target, "rows", len(movies))
}

func seed(ctx context.Context, cfg *config.Config, target string, movies []movie.Movie) error {
	switch target {
	case targetPostgres:
		db, err := postgres.NewConnection(postgres.Options{
			DBName:   cfg.DB.Name,
			DBUser:   cfg.DB.User,
			Password: cfg.DB.Pass,
			Host:     cfg.DB.Host,
			Port:     fmt.Sprintf("%d", cfg.DB.Port),
			SSLMode:  cfg.DB.EnableSSL,
		})
		if err != nil {
			return fmt.Errorf("cannot open postgres connection: %w", err)
		}
		return postgres.NewMovieRepository(db).ReplaceMovies(ctx, movies)
	case targetDynamoDB:
		client, err := dynamodb.NewClient(ctx, dynamodb.Options{
			Region:       cfg.DynamoDB.Region,
			Endpoint:     cfg.DynamoDB.Endpoint,
			AccessKey:    cfg.DynamoDB.AccessKey,
			SecretKey:    cfg.DynamoDB.SecretKey,
			SessionToken: cfg.DynamoDB.SessionToken,
		})
		if err != nil {
			return fmt.Errorf("cannot create dynamodb client: %w", err)
		}
		if err := dynamodb.EnsureMoviesTable(ctx, client, cfg.DynamoDB.MoviesTable); err != nil {
			return err
		}
		return dynamodb.NewMovieRepository(client, cfg.DynamoDB.MoviesTable).PutMovies(ctx, movies)
	default:
		return errors.New("unknown target " + target)
	}
}
