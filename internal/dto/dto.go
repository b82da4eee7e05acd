// Package dto описывает JSON-контракт HTTP API.
package dto

import "time"

type Point struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lng"`
	Address   string  `json:"address,omitempty"`
}

type MatchResult struct {
	RouteID           string   `json:"route_id"`
	CourierID         string   `json:"courier_id"`
	Score             int      `json:"score"`
	Reasons           []string `json:"reasons"`
	MatchType         string   `json:"match_type"`
	DistanceKm        float64  `json:"distance_km"`
	DetourPercent     float64  `json:"detour_percent"`
	EstimatedPrice    float64  `json:"estimated_price"`
	EstimatedDuration int64    `json:"estimated_duration_minutes"`
	DurationLabel     string   `json:"duration_label"`
	PickupPoint       Point    `json:"pickup_point"`
	DeliveryPoint     Point    `json:"delivery_point"`
}

type MatchesResponse struct {
	AnnouncementID string        `json:"announcement_id"`
	Matches        []MatchResult `json:"matches"`
}

type Slot struct {
	RuleID          string    `json:"rule_id"`
	Start           time.Time `json:"start"`
	End             time.Time `json:"end"`
	LocationHint    string    `json:"location_hint,omitempty"`
	MaxBookings     int       `json:"max_bookings"`
	CurrentBookings int       `json:"current_bookings"`
	PriceMultiplier float64   `json:"price_multiplier"`
}

type AvailabilityResponse struct {
	ProviderID string `json:"provider_id"`
	Slots      []Slot `json:"slots"`
}

type RuleWindowRequest struct {
	Start            string `json:"start"`
	End              string `json:"end"`
	ResolveConflicts bool   `json:"resolve_conflicts"`
}

type BookedSlot struct {
	ID     string    `json:"id"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
	Status string    `json:"status"`
}

type RuleChangeResponse struct {
	RuleID    string       `json:"rule_id"`
	IsActive  bool         `json:"is_active"`
	Start     string       `json:"start"`
	End       string       `json:"end"`
	Conflicts []BookedSlot `json:"conflicts"`
}

type PartialPlanRequest struct {
	MaxSegmentDistanceKm float64  `json:"max_segment_distance_km"`
	RelayTypes           []string `json:"relay_types"`
}

type Endpoint struct {
	Point
	RelayPointID string `json:"relay_point_id,omitempty"`
}

type Segment struct {
	ID                string    `json:"id"`
	PlanID            string    `json:"plan_id"`
	Index             int       `json:"index"`
	From              Endpoint  `json:"from"`
	To                Endpoint  `json:"to"`
	DistanceKm        float64   `json:"distance_km"`
	EstimatedDuration int64     `json:"estimated_duration_minutes"`
	Price             float64   `json:"price"`
	Status            string    `json:"status"`
	CourierID         string    `json:"courier_id,omitempty"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type PartialPlan struct {
	ID                    string    `json:"id"`
	AnnouncementID        string    `json:"announcement_id"`
	Segments              []Segment `json:"segments"`
	TotalDistanceKm       float64   `json:"total_distance_km"`
	TotalDuration         int64     `json:"total_duration_minutes"`
	TotalPrice            float64   `json:"total_price"`
	EstimatedDeliveryTime time.Time `json:"estimated_delivery_time"`
	IsFallback            bool      `json:"is_fallback"`
	MaxSegmentDistanceKm  float64   `json:"max_segment_distance_km"`
	Complete              bool      `json:"complete"`
}

type SegmentStatusRequest struct {
	Status    string `json:"status"`
	CourierID string `json:"courier_id"`
}

type PingResponse struct {
	Message string    `json:"message"`
	Service string    `json:"service"`
	Time    time.Time `json:"time"`
}
