package route

import "time"

type CourierRouteDB struct {
	ID                 string
	CourierID          string
	DepartureLat       float64
	DepartureLng       float64
	DepartureAddress   string
	ArrivalLat         float64
	ArrivalLng         float64
	ArrivalAddress     string
	DepartureDate      *time.Time
	IsRecurring        bool
	RecurringDays      []int16
	Waypoints          []byte
	MaxWeightKg        *float64
	MaxVolumeM3        *float64
	AvailableSeats     int
	AcceptsFragile     bool
	AcceptsCooling     bool
	AcceptsLiveAnimals bool
	AcceptsOversized   bool
	PricePerKm         float64
	FixedPrice         *float64
	IsNegotiable       bool
	MinMatchDistanceKm float64
	MaxDetourPercent   float64
	IsActive           bool
}

// WaypointDB - элемент jsonb-массива waypoints.
type WaypointDB struct {
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
	Address  string  `json:"address,omitempty"`
	RadiusKm float64 `json:"radius_km"`
}
