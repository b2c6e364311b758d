// Package postgrestest starts throwaway PostgreSQL containers for tests.
package postgrestest

import (
	"context"
	"movieshelf/postgres"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	_ "github.com/lib/pq"
	migrate "github.com/rubenv/sql-migrate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	pgcontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

const image = "docker.io/postgres:15.2-alpine"

// Credentials of the database created inside the container.
type Credentials struct {
	DBName   string
	User     string
	Password string
}

var defaultCredentials = Credentials{DBName: "movieshelf_test", User: "test", Password: "testpass"}

// NewDB starts a container, connects to it and applies the migrations.
// The container is terminated when the test ends. Skipped with -short.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()
	db := Connect(t, defaultCredentials)
	Migrate(t, db)
	return db
}

// Connect starts a container for creds and returns a connection to it
// without applying migrations.
func Connect(t testing.TB, creds Credentials) *gorm.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	ctx := context.Background()
	container, err := pgcontainer.RunContainer(ctx,
		testcontainers.WithImage(image),
		pgcontainer.WithDatabase(creds.DBName),
		pgcontainer.WithUsername(creds.User),
		pgcontainer.WithPassword(creds.Password),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	require.NoError(t, err, "failed to start postgres container")
	t.Cleanup(func() {
		assert.NoError(t, container.Terminate(ctx), "failed to terminate postgres container")
	})

	host, port := hostAndPort(ctx, t, container)
	db, err := postgres.NewConnection(postgres.Options{
		DBName:   creds.DBName,
		DBUser:   creds.User,
		Password: creds.Password,
		Host:     host,
		Port:     port.Port(),
	})
	require.NoError(t, err, "failed to connect to postgres container")

	return db
}

// Migrate applies every migration of the repository's migrations directory.
func Migrate(t testing.TB, db *gorm.DB) {
	t.Helper()

	sqlDB, err := db.DB()
	require.NoError(t, err)

	_, err = migrate.Exec(sqlDB, "postgres", &migrate.FileMigrationSource{Dir: migrationsDir()}, migrate.Up)
	require.NoError(t, err, "failed to run migrations")
}

func hostAndPort(ctx context.Context, t testing.TB, container *pgcontainer.PostgresContainer) (string, nat.Port) {
	t.Helper()
	host, err := container.Host(ctx)
	require.NoError(t, err)

	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)
	return host, port
}

func migrationsDir() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "..", "migrations")
}
