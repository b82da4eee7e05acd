package plan

import "time"

type PlanDB struct {
	ID                    string
	AnnouncementID        string
	TotalDistanceKm       float64
	TotalDurationSeconds  int64
	TotalPrice            float64
	EstimatedDeliveryTime time.Time
	IsFallback            bool
	MaxSegmentDistanceKm  float64
	CreatedAt             time.Time
}

type SegmentDB struct {
	ID              string
	PlanID          string
	Index           int
	FromLat         float64
	FromLng         float64
	FromAddress     string
	FromRelayID     *string
	ToLat           float64
	ToLng           float64
	ToAddress       string
	ToRelayID       *string
	DistanceKm      float64
	DurationSeconds int64
	Price           float64
	Status          string
	CourierID       *string
	UpdatedAt       time.Time
}
