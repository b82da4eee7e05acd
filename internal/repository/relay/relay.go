package relay

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/TheRebzu/ecodeli-sub009/internal/entities"
	"github.com/TheRebzu/ecodeli-sub009/internal/pkg/geo"
	"github.com/TheRebzu/ecodeli-sub009/internal/service/partial"
	"github.com/jackc/pgx/v5"
)

var qb sq.StatementBuilderType = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

// FindRelays возвращает все точки передачи внутри box, включая неактивные
// и заполненные: отбор по типу и вместимости делает планировщик.
func (r *Repository) FindRelays(ctx context.Context, box geo.BoundingBox) ([]entities.RelayPoint, error) {
	query, args, err := qb.
		Select("id", "name", "type", "lat", "lng", "address", "is_active", "available_capacity").
		From("relay_points").
		Where(sq.GtOrEq{"lat": box.MinLatitude}).
		Where(sq.LtOrEq{"lat": box.MaxLatitude}).
		Where(sq.GtOrEq{"lng": box.MinLongitude}).
		Where(sq.LtOrEq{"lng": box.MaxLongitude}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected relay repository find error: %w", err)
	}

	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("unexpected relay repository find error: %w", err)
	}
	defer rows.Close()

	relays := make([]entities.RelayPoint, 0, 8)
	for rows.Next() {
		var m RelayPointDB
		err := rows.Scan(
			&m.ID,
			&m.Name,
			&m.Type,
			&m.Lat,
			&m.Lng,
			&m.Address,
			&m.IsActive,
			&m.AvailableCapacity,
		)
		if err != nil {
			return nil, fmt.Errorf("unexpected relay repository find error: %w", err)
		}
		relays = append(relays, *ToDomain(&m))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unexpected relay repository find error: %w", err)
	}

	return relays, nil
}

// DecrementCapacity занимает одно место в точке передачи.
// Условие available_capacity > 0 не дает уйти в минус при конкурентных назначениях.
func (r *Repository) DecrementCapacity(ctx context.Context, relayID string) error {
	query, args, err := qb.
		Update("relay_points").
		Set("available_capacity", sq.Expr("available_capacity - 1")).
		Where(sq.Eq{"id": relayID}).
		Where(sq.Gt{"available_capacity": 0}).
		Suffix("RETURNING available_capacity").
		ToSql()
	if err != nil {
		return fmt.Errorf("unexpected relay repository decrement error: %w", err)
	}

	var left int
	err = r.querier.QueryRow(ctx, query, args...).Scan(&left)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return partial.ErrRelayFull
		}
		return fmt.Errorf("unexpected relay repository decrement error: %w", err)
	}

	return nil
}
