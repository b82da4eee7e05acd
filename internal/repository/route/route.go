package route

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/TheRebzu/ecodeli-sub009/internal/entities"
	"github.com/TheRebzu/ecodeli-sub009/internal/pkg/geo"
)

var qb sq.StatementBuilderType = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// dateTolerance совпадает с допуском по дате в проверке совместимости.
const dateTolerance = 24 * time.Hour

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

// FindCandidates выбирает активные маршруты, у которых отправление, прибытие
// или хотя бы одна промежуточная точка попадает в box. Если pickupDate задан,
// разовые маршруты с датой дальше допуска отбрасываются сразу.
func (r *Repository) FindCandidates(ctx context.Context, box geo.BoundingBox, pickupDate *time.Time) ([]entities.CourierRoute, error) {
	builder := qb.
		Select(
			"id", "courier_id",
			"departure_lat", "departure_lng", "departure_address",
			"arrival_lat", "arrival_lng", "arrival_address",
			"departure_date", "is_recurring", "recurring_days", "waypoints",
			"max_weight_kg", "max_volume_m3", "available_seats",
			"accepts_fragile", "accepts_cooling", "accepts_live_animals", "accepts_oversized",
			"price_per_km", "fixed_price", "is_negotiable",
			"min_match_distance_km", "max_detour_percent", "is_active",
		).
		From("courier_routes").
		Where(sq.Eq{"is_active": true}).
		Where(sq.Or{
			inBox("departure_lat", "departure_lng", box),
			inBox("arrival_lat", "arrival_lng", box),
			sq.Expr(`EXISTS (
				SELECT 1 FROM jsonb_array_elements(waypoints) w
				WHERE (w->>'lat')::float8 BETWEEN ? AND ?
				AND (w->>'lng')::float8 BETWEEN ? AND ?
			)`, box.MinLatitude, box.MaxLatitude, box.MinLongitude, box.MaxLongitude),
		}).
		OrderBy("id")

	if pickupDate != nil {
		builder = builder.Where(sq.Or{
			sq.Eq{"is_recurring": true},
			sq.Eq{"departure_date": nil},
			sq.And{
				sq.GtOrEq{"departure_date": pickupDate.Add(-dateTolerance)},
				sq.LtOrEq{"departure_date": pickupDate.Add(dateTolerance)},
			},
		})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected route repository find candidates error: %w", err)
	}

	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("unexpected route repository find candidates error: %w", err)
	}
	defer rows.Close()

	models := make([]CourierRouteDB, 0, 16)
	for rows.Next() {
		var m CourierRouteDB
		err := rows.Scan(
			&m.ID,
			&m.CourierID,
			&m.DepartureLat,
			&m.DepartureLng,
			&m.DepartureAddress,
			&m.ArrivalLat,
			&m.ArrivalLng,
			&m.ArrivalAddress,
			&m.DepartureDate,
			&m.IsRecurring,
			&m.RecurringDays,
			&m.Waypoints,
			&m.MaxWeightKg,
			&m.MaxVolumeM3,
			&m.AvailableSeats,
			&m.AcceptsFragile,
			&m.AcceptsCooling,
			&m.AcceptsLiveAnimals,
			&m.AcceptsOversized,
			&m.PricePerKm,
			&m.FixedPrice,
			&m.IsNegotiable,
			&m.MinMatchDistanceKm,
			&m.MaxDetourPercent,
			&m.IsActive,
		)
		if err != nil {
			return nil, fmt.Errorf("unexpected route repository find candidates error: %w", err)
		}
		models = append(models, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unexpected route repository find candidates error: %w", err)
	}

	routes, err := ToDomainList(models)
	if err != nil {
		return nil, fmt.Errorf("unexpected route repository find candidates error: %w", err)
	}
	return routes, nil
}

// MaxReachKm возвращает наибольшее расстояние, на котором активный маршрут еще
// может совпасть с заявкой: радиус совпадения или радиус промежуточной точки.
func (r *Repository) MaxReachKm(ctx context.Context) (float64, error) {
	query, args, err := qb.
		Select().
		Column(sq.Expr(`COALESCE(MAX(GREATEST(
			CASE WHEN min_match_distance_km > 0 THEN min_match_distance_km ELSE ? END,
			COALESCE((SELECT MAX((w->>'radius_km')::float8) FROM jsonb_array_elements(waypoints) w), 0)
		)), 0)`, entities.DefaultMinMatchDistanceKm)).
		From("courier_routes").
		Where(sq.Eq{"is_active": true}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("unexpected route repository max reach error: %w", err)
	}

	var reach float64
	if err := r.querier.QueryRow(ctx, query, args...).Scan(&reach); err != nil {
		return 0, fmt.Errorf("unexpected route repository max reach error: %w", err)
	}
	return reach, nil
}

func inBox(latColumn, lngColumn string, box geo.BoundingBox) sq.And {
	return sq.And{
		sq.GtOrEq{latColumn: box.MinLatitude},
		sq.LtOrEq{latColumn: box.MaxLatitude},
		sq.GtOrEq{lngColumn: box.MinLongitude},
		sq.LtOrEq{lngColumn: box.MaxLongitude},
	}
}
