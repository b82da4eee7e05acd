package match

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/TheRebzu/ecodeli-sub009/internal/entities"
)

var qb sq.StatementBuilderType = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var columns = []string{
	"announcement_id", "route_id", "courier_id", "rank", "score", "reasons",
	"match_type", "distance_km", "detour_percent", "estimated_price",
	"duration_seconds", "duration_label",
	"pickup_lat", "pickup_lng", "delivery_lat", "delivery_lng",
}

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

// ReplaceMatches заменяет сохраненный результат подбора целиком.
// Атомарность обеспечивает внешняя транзакция.
func (r *Repository) ReplaceMatches(ctx context.Context, announcementID string, results []entities.MatchResult) error {
	query, args, err := qb.
		Delete("route_matches").
		Where(sq.Eq{"announcement_id": announcementID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("unexpected match repository replace error: %w", err)
	}

	if _, err := r.querier.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("unexpected match repository replace error: %w", err)
	}

	if len(results) == 0 {
		return nil
	}

	builder := qb.Insert("route_matches").Columns(columns...)
	for i, result := range results {
		m := FromDomain(i+1, result)
		m.AnnouncementID = announcementID
		builder = builder.Values(
			m.AnnouncementID,
			m.RouteID,
			m.CourierID,
			m.Rank,
			m.Score,
			m.Reasons,
			m.MatchType,
			m.DistanceKm,
			m.DetourPercent,
			m.EstimatedPrice,
			m.DurationSeconds,
			m.DurationLabel,
			m.PickupLat,
			m.PickupLng,
			m.DeliveryLat,
			m.DeliveryLng,
		)
	}

	query, args, err = builder.ToSql()
	if err != nil {
		return fmt.Errorf("unexpected match repository replace error: %w", err)
	}

	if _, err := r.querier.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("unexpected match repository replace error: %w", err)
	}

	return nil
}

// ListMatches возвращает сохраненные совпадения в порядке ранжирования.
func (r *Repository) ListMatches(ctx context.Context, announcementID string) ([]entities.MatchResult, error) {
	query, args, err := qb.
		Select(columns...).
		From("route_matches").
		Where(sq.Eq{"announcement_id": announcementID}).
		OrderBy("rank ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected match repository list error: %w", err)
	}

	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("unexpected match repository list error: %w", err)
	}
	defer rows.Close()

	results := make([]entities.MatchResult, 0, 8)
	for rows.Next() {
		var m MatchDB
		err := rows.Scan(
			&m.AnnouncementID,
			&m.RouteID,
			&m.CourierID,
			&m.Rank,
			&m.Score,
			&m.Reasons,
			&m.MatchType,
			&m.DistanceKm,
			&m.DetourPercent,
			&m.EstimatedPrice,
			&m.DurationSeconds,
			&m.DurationLabel,
			&m.PickupLat,
			&m.PickupLng,
			&m.DeliveryLat,
			&m.DeliveryLng,
		)
		if err != nil {
			return nil, fmt.Errorf("unexpected match repository list error: %w", err)
		}
		results = append(results, *ToDomain(&m))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unexpected match repository list error: %w", err)
	}

	return results, nil
}
