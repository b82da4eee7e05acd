package match

type MatchDB struct {
	AnnouncementID  string
	RouteID         string
	CourierID       string
	Rank            int
	Score           int
	Reasons         []string
	MatchType       string
	DistanceKm      float64
	DetourPercent   float64
	EstimatedPrice  float64
	DurationSeconds int64
	DurationLabel   string
	PickupLat       float64
	PickupLng       float64
	DeliveryLat     float64
	DeliveryLng     float64
}
