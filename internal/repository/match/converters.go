package match

import (
	"time"

	"github.com/TheRebzu/ecodeli-sub009/internal/entities"
)

func FromDomain(rank int, m entities.MatchResult) MatchDB {
	reasons := m.Reasons
	if reasons == nil {
		reasons = []string{}
	}
	return MatchDB{
		AnnouncementID:  m.AnnouncementID,
		RouteID:         m.RouteID,
		CourierID:       m.CourierID,
		Rank:            rank,
		Score:           m.Score,
		Reasons:         reasons,
		MatchType:       m.MatchType.String(),
		DistanceKm:      m.DistanceKm,
		DetourPercent:   m.DetourPercent,
		EstimatedPrice:  m.EstimatedPrice,
		DurationSeconds: int64(m.EstimatedDuration / time.Second),
		DurationLabel:   m.DurationLabel,
		PickupLat:       m.PickupPoint.Latitude,
		PickupLng:       m.PickupPoint.Longitude,
		DeliveryLat:     m.DeliveryPoint.Latitude,
		DeliveryLng:     m.DeliveryPoint.Longitude,
	}
}

func ToDomain(m *MatchDB) *entities.MatchResult {
	if m == nil {
		return nil
	}
	return &entities.MatchResult{
		AnnouncementID:    m.AnnouncementID,
		RouteID:           m.RouteID,
		CourierID:         m.CourierID,
		Score:             m.Score,
		Reasons:           m.Reasons,
		MatchType:         entities.RouteMatchType(m.MatchType),
		DistanceKm:        m.DistanceKm,
		DetourPercent:     m.DetourPercent,
		EstimatedPrice:    m.EstimatedPrice,
		EstimatedDuration: time.Duration(m.DurationSeconds) * time.Second,
		DurationLabel:     m.DurationLabel,
		PickupPoint:       entities.Coordinate{Latitude: m.PickupLat, Longitude: m.PickupLng},
		DeliveryPoint:     entities.Coordinate{Latitude: m.DeliveryLat, Longitude: m.DeliveryLng},
	}
}
