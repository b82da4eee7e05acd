package notification

import "time"

const (
	EventMatchFound         = "match.found"
	EventPartialPlanCreated = "partial_plan.created"
)

type envelope struct {
	EventID    string    `json:"event_id"`
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    any       `json:"payload"`
}

type matchFoundPayload struct {
	AnnouncementID string         `json:"announcement_id"`
	ClientID       string         `json:"client_id"`
	Matches        []matchPayload `json:"matches"`
}

type matchPayload struct {
	RouteID        string   `json:"route_id"`
	CourierID      string   `json:"courier_id"`
	Score          int      `json:"score"`
	MatchType      string   `json:"match_type"`
	DetourPercent  float64  `json:"detour_percent"`
	EstimatedPrice float64  `json:"estimated_price"`
	DurationLabel  string   `json:"duration_label"`
	Reasons        []string `json:"reasons"`
}

type planCreatedPayload struct {
	PlanID                string    `json:"plan_id"`
	AnnouncementID        string    `json:"announcement_id"`
	Segments              int       `json:"segments"`
	RelayPointIDs         []string  `json:"relay_point_ids"`
	TotalDistanceKm       float64   `json:"total_distance_km"`
	TotalPrice            float64   `json:"total_price"`
	EstimatedDeliveryTime time.Time `json:"estimated_delivery_time"`
	IsFallback            bool      `json:"is_fallback"`
}
