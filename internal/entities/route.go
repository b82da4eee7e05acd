package entities

import "time"

const (
	DefaultMinMatchDistanceKm = 10.0
	DefaultMaxDetourPercent   = 20.0
)

// Waypoint - промежуточная точка маршрута с радиусом, в котором курьер готов забрать груз.
type Waypoint struct {
	Place    Place
	RadiusKm float64
}

type RouteCapacity struct {
	MaxWeightKg    *float64
	MaxVolumeM3    *float64
	AvailableSeats int
}

type RouteAcceptance struct {
	Fragile     bool
	Cooling     bool
	LiveAnimals bool
	Oversized   bool
}

type RoutePricing struct {
	PricePerKm   float64
	FixedPrice   *float64
	IsNegotiable bool
}

type RouteConstraints struct {
	MinMatchDistanceKm float64
	MaxDetourPercent   float64
}

// CourierRoute - запланированная поездка курьера, входные данные для подбора.
type CourierRoute struct {
	ID            string
	CourierID     string
	Departure     Place
	Arrival       Place
	DepartureDate *time.Time
	IsRecurring   bool
	RecurringDays []time.Weekday
	Waypoints     []Waypoint
	Capacity      RouteCapacity
	Accepts       RouteAcceptance
	Pricing       RoutePricing
	Constraints   RouteConstraints
	IsActive      bool
}

// RunsOn проверяет, ездит ли курьер по маршруту в указанный день недели.
func (r CourierRoute) RunsOn(day time.Weekday) bool {
	for _, d := range r.RecurringDays {
		if d == day {
			return true
		}
	}
	return false
}

// WithDefaults подставляет значения ограничений по умолчанию вместо нулевых.
func (c RouteConstraints) WithDefaults() RouteConstraints {
	if c.MinMatchDistanceKm <= 0 {
		c.MinMatchDistanceKm = DefaultMinMatchDistanceKm
	}
	if c.MaxDetourPercent <= 0 {
		c.MaxDetourPercent = DefaultMaxDetourPercent
	}
	return c
}
