package tx

import (
	"context"
	"errors"
	"time"

	"github.com/TheRebzu/ecodeli-sub009/pkg/retrier"
	"github.com/TheRebzu/ecodeli-sub009/pkg/retrier/backoff_adapter"
	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/avito-tech/go-transaction-manager/trm/manager"
	"github.com/avito-tech/go-transaction-manager/trm/settings"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
)

const (
	conflictRetries         = 3
	conflictInitialInterval = 10 * time.Millisecond
	conflictMaxInterval     = 100 * time.Millisecond
)

// Manager выполняет функции в транзакциях.
type Manager struct {
	internal *manager.Manager
	retrier  retrier.Retrier
}

func New(db pgxv5.Transactional) *Manager {
	return &Manager{
		internal: manager.Must(pgxv5.NewDefaultFactory(db)),
		retrier: backoff_adapter.New(retrier.Config{
			InitialInterval: conflictInitialInterval,
			MaxInterval:     conflictMaxInterval,
			MaxRetries:      conflictRetries,
			Randomization:   0.5,
			Multiplier:      2,
			ShouldRetry:     IsConflict,
		}),
	}
}

// Do выполняет fn в serializable транзакции. При конфликте сериализации
// или дедлоке транзакция повторяется целиком, поэтому fn не должна иметь
// побочных эффектов вне базы.
func (m *Manager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.retrier.ExecuteWithContext(ctx, func(ctx context.Context) error {
		return m.execWithIsoLevel(ctx, pgx.Serializable, fn)
	})
}

func (m *Manager) execWithIsoLevel(
	ctx context.Context,
	level pgx.TxIsoLevel,
	fn func(ctx context.Context) error,
) error {
	txSettings := pgxv5.MustSettings(
		settings.Must(),
		pgxv5.WithTxOptions(pgx.TxOptions{IsoLevel: level}),
	)
	return m.internal.DoWithSettings(ctx, txSettings, fn)
}

// IsConflict сообщает, что транзакцию можно безопасно повторить.
func IsConflict(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == pgSerializationFailure || pgErr.Code == pgDeadlockDetected
}
