// Package integration_test поднимает общее подключение к тестовой базе
// для интеграционных тестов репозиториев (build tag integration).
package integration_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/TheRebzu/ecodeli-sub009/internal/pkg/config"
	"github.com/TheRebzu/ecodeli-sub009/internal/pkg/postgres"
	"github.com/TheRebzu/ecodeli-sub009/pkg/logger"
	"github.com/TheRebzu/ecodeli-sub009/pkg/querier"
	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/require"
)

const statementTimeout = 2 * time.Second

// Таблицы в порядке, удобном для TRUNCATE ... CASCADE.
const truncateSql = `
	TRUNCATE TABLE
		partial_delivery_segments, partial_delivery_plans, relay_points,
		booked_slots, availability_exceptions, availability_rules,
		route_matches, courier_routes, announcements
	RESTART IDENTITY CASCADE;
`

var (
	querierInstance *querier.Querier
	querierErr      error
	querierOnce     sync.Once
)

// databaseFromEnv читает параметры подключения напрямую: переменные
// окружения для тестов выставляет Makefile.
func databaseFromEnv() *config.Database {
	return &config.Database{
		Host:     os.Getenv("POSTGRES_HOST"),
		Port:     os.Getenv("POSTGRES_PORT"),
		User:     os.Getenv("POSTGRES_USER"),
		Password: os.Getenv("POSTGRES_PASSWORD"),
		DBName:   os.Getenv("POSTGRES_DB"),
		SSLMode:  os.Getenv("POSTGRES_SSLMODE"),
		MaxConns: 4,
		MinConns: 1,
	}
}

func migrationsDir() string {
	_, file, _, _ := runtime.Caller(0)

	return filepath.Join(filepath.Dir(file), "..", "..", "..", "migrations")
}

func connect(ctx context.Context) (*querier.Querier, error) {
	connPool, err := postgres.NewConnPool(ctx, logger.Nop{}, databaseFromEnv())
	if err != nil {
		return nil, fmt.Errorf("connect to test database: %w", err)
	}

	db := stdlib.OpenDBFromPool(connPool)
	defer db.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		return nil, fmt.Errorf("set goose dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db, migrationsDir()); err != nil {
		return nil, fmt.Errorf("apply migrations: %w", err)
	}

	return querier.New(connPool, pgxv5.DefaultCtxGetter), nil
}

// GetQuerier один раз на процесс подключается к базе и накатывает миграции.
func GetQuerier(t *testing.T) *querier.Querier {
	t.Helper()

	if os.Getenv("POSTGRES_HOST") == "" {
		t.Skip("POSTGRES_HOST не задан")
	}

	querierOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		querierInstance, querierErr = connect(ctx)
	})
	require.NoError(t, querierErr)

	return querierInstance
}

func exec(t *testing.T, sql string) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), statementTimeout)
	defer cancel()

	_, err := GetQuerier(t).Exec(ctx, sql)
	require.NoError(t, err)
}

func SetupDB(t *testing.T, setupSql string) {
	t.Helper()
	exec(t, setupSql)
}

func TeardownDB(t *testing.T) {
	t.Helper()
	exec(t, truncateSql)
}
