package announcement

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/TheRebzu/ecodeli-sub009/internal/entities"
	"github.com/TheRebzu/ecodeli-sub009/internal/service/matching"
	"github.com/jackc/pgx/v5"
)

var qb sq.StatementBuilderType = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var columns = []string{
	"id", "client_id", "type", "status",
	"pickup_lat", "pickup_lng", "pickup_address",
	"delivery_lat", "delivery_lng", "delivery_address",
	"pickup_date", "delivery_date",
	"weight_kg", "width_cm", "height_cm", "length_cm",
	"fragile", "needs_cooling",
	"suggested_price", "is_negotiable", "priority", "is_flexible", "created_at",
}

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

func (r *Repository) GetAnnouncement(ctx context.Context, announcementID string) (*entities.Announcement, error) {
	query, args, err := qb.
		Select(columns...).
		From("announcements").
		Where(sq.Eq{"id": announcementID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected announcement repository get error: %w", err)
	}

	model, err := scanAnnouncement(r.querier.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, matching.ErrAnnouncementNotFound
		}
		return nil, fmt.Errorf("unexpected announcement repository get error: %w", err)
	}

	return ToDomain(model), nil
}

// ListUnmatched возвращает активные заявки без сохраненных совпадений, старые первыми.
func (r *Repository) ListUnmatched(ctx context.Context, limit uint64) ([]entities.Announcement, error) {
	builder := qb.
		Select(columns...).
		From("announcements a").
		Where(sq.Eq{"a.status": entities.AnnouncementActive.String()}).
		Where("NOT EXISTS (SELECT 1 FROM route_matches m WHERE m.announcement_id = a.id)").
		OrderBy("a.created_at ASC", "a.id ASC")
	if limit > 0 {
		builder = builder.Limit(limit)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected announcement repository list unmatched error: %w", err)
	}

	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("unexpected announcement repository list unmatched error: %w", err)
	}
	defer rows.Close()

	models := make([]AnnouncementDB, 0, 8)
	for rows.Next() {
		model, err := scanAnnouncement(rows)
		if err != nil {
			return nil, fmt.Errorf("unexpected announcement repository list unmatched error: %w", err)
		}
		models = append(models, *model)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unexpected announcement repository list unmatched error: %w", err)
	}

	return ToDomainList(models), nil
}

func scanAnnouncement(row pgx.Row) (*AnnouncementDB, error) {
	var m AnnouncementDB
	err := row.Scan(
		&m.ID,
		&m.ClientID,
		&m.Type,
		&m.Status,
		&m.PickupLat,
		&m.PickupLng,
		&m.PickupAddress,
		&m.DeliveryLat,
		&m.DeliveryLng,
		&m.DeliveryAddress,
		&m.PickupDate,
		&m.DeliveryDate,
		&m.WeightKg,
		&m.WidthCm,
		&m.HeightCm,
		&m.LengthCm,
		&m.Fragile,
		&m.NeedsCooling,
		&m.SuggestedPrice,
		&m.IsNegotiable,
		&m.Priority,
		&m.IsFlexible,
		&m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
