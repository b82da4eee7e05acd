package entities

import "time"

type SegmentStatus string

const (
	SegmentPending    SegmentStatus = "PENDING"
	SegmentAssigned   SegmentStatus = "ASSIGNED"
	SegmentInProgress SegmentStatus = "IN_PROGRESS"
	SegmentCompleted  SegmentStatus = "COMPLETED"
	SegmentFailed     SegmentStatus = "FAILED"
)

func (s SegmentStatus) String() string {
	return string(s)
}

func (s SegmentStatus) Valid() bool {
	switch s {
	case SegmentPending, SegmentAssigned, SegmentInProgress, SegmentCompleted, SegmentFailed:
		return true
	default:
		return false
	}
}

func (s SegmentStatus) Terminal() bool {
	return s == SegmentCompleted || s == SegmentFailed
}

// CanTransitionTo: PENDING -> ASSIGNED -> IN_PROGRESS -> COMPLETED,
// в FAILED можно перейти из любого нетерминального статуса.
func (s SegmentStatus) CanTransitionTo(next SegmentStatus) bool {
	if s.Terminal() {
		return false
	}
	if next == SegmentFailed {
		return true
	}
	switch s {
	case SegmentPending:
		return next == SegmentAssigned
	case SegmentAssigned:
		return next == SegmentInProgress
	case SegmentInProgress:
		return next == SegmentCompleted
	default:
		return false
	}
}

type SegmentEndpoint struct {
	Place Place
	// RelayPointID пуст для точек забора и доставки клиента.
	RelayPointID string
}

type Segment struct {
	ID                string
	PlanID            string
	Index             int
	From              SegmentEndpoint
	To                SegmentEndpoint
	DistanceKm        float64
	EstimatedDuration time.Duration
	Price             float64
	Status            SegmentStatus
	CourierID         string
	UpdatedAt         time.Time
}

type PartialDeliveryPlan struct {
	ID                    string
	AnnouncementID        string
	Segments              []Segment
	TotalDistanceKm       float64
	TotalDuration         time.Duration
	TotalPrice            float64
	EstimatedDeliveryTime time.Time
	IsFallback            bool
	MaxSegmentDistanceKm  float64
	CreatedAt             time.Time
}

// Complete - все сегменты доставлены.
func (p PartialDeliveryPlan) Complete() bool {
	if len(p.Segments) == 0 {
		return false
	}
	for _, s := range p.Segments {
		if s.Status != SegmentCompleted {
			return false
		}
	}
	return true
}
