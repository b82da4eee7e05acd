package plan

import (
	"time"

	"github.com/TheRebzu/ecodeli-sub009/internal/entities"
)

func PlanFromDomain(p entities.PartialDeliveryPlan) PlanDB {
	return PlanDB{
		ID:                    p.ID,
		AnnouncementID:        p.AnnouncementID,
		TotalDistanceKm:       p.TotalDistanceKm,
		TotalDurationSeconds:  int64(p.TotalDuration / time.Second),
		TotalPrice:            p.TotalPrice,
		EstimatedDeliveryTime: p.EstimatedDeliveryTime,
		IsFallback:            p.IsFallback,
		MaxSegmentDistanceKm:  p.MaxSegmentDistanceKm,
		CreatedAt:             p.CreatedAt,
	}
}

func PlanToDomain(p *PlanDB, segments []entities.Segment) *entities.PartialDeliveryPlan {
	if p == nil {
		return nil
	}
	return &entities.PartialDeliveryPlan{
		ID:                    p.ID,
		AnnouncementID:        p.AnnouncementID,
		Segments:              segments,
		TotalDistanceKm:       p.TotalDistanceKm,
		TotalDuration:         time.Duration(p.TotalDurationSeconds) * time.Second,
		TotalPrice:            p.TotalPrice,
		EstimatedDeliveryTime: p.EstimatedDeliveryTime,
		IsFallback:            p.IsFallback,
		MaxSegmentDistanceKm:  p.MaxSegmentDistanceKm,
		CreatedAt:             p.CreatedAt,
	}
}

func SegmentFromDomain(s entities.Segment) SegmentDB {
	return SegmentDB{
		ID:              s.ID,
		PlanID:          s.PlanID,
		Index:           s.Index,
		FromLat:         s.From.Place.Coordinate.Latitude,
		FromLng:         s.From.Place.Coordinate.Longitude,
		FromAddress:     s.From.Place.Address,
		FromRelayID:     optional(s.From.RelayPointID),
		ToLat:           s.To.Place.Coordinate.Latitude,
		ToLng:           s.To.Place.Coordinate.Longitude,
		ToAddress:       s.To.Place.Address,
		ToRelayID:       optional(s.To.RelayPointID),
		DistanceKm:      s.DistanceKm,
		DurationSeconds: int64(s.EstimatedDuration / time.Second),
		Price:           s.Price,
		Status:          s.Status.String(),
		CourierID:       optional(s.CourierID),
		UpdatedAt:       s.UpdatedAt,
	}
}

func SegmentToDomain(s *SegmentDB) *entities.Segment {
	if s == nil {
		return nil
	}
	return &entities.Segment{
		ID:     s.ID,
		PlanID: s.PlanID,
		Index:  s.Index,
		From: entities.SegmentEndpoint{
			Place: entities.Place{
				Coordinate: entities.Coordinate{Latitude: s.FromLat, Longitude: s.FromLng},
				Address:    s.FromAddress,
			},
			RelayPointID: value(s.FromRelayID),
		},
		To: entities.SegmentEndpoint{
			Place: entities.Place{
				Coordinate: entities.Coordinate{Latitude: s.ToLat, Longitude: s.ToLng},
				Address:    s.ToAddress,
			},
			RelayPointID: value(s.ToRelayID),
		},
		DistanceKm:        s.DistanceKm,
		EstimatedDuration: time.Duration(s.DurationSeconds) * time.Second,
		Price:             s.Price,
		Status:            entities.SegmentStatus(s.Status),
		CourierID:         value(s.CourierID),
		UpdatedAt:         s.UpdatedAt,
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func value(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
