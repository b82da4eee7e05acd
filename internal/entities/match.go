package entities

import "time"

type RouteMatchType string

const (
	DirectRouteMatch   RouteMatchType = "direct"
	WaypointRouteMatch RouteMatchType = "waypoint"
)

func (t RouteMatchType) String() string {
	return string(t)
}

type GeoMatch struct {
	Type RouteMatchType
	// WaypointIndex заполняется только для WaypointRouteMatch.
	WaypointIndex         int
	DetourPercent         float64
	LegDistanceKm         float64
	RouteDistanceKm       float64
	DistanceToDepartureKm float64
	DistanceToArrivalKm   float64
	PickupPoint           Coordinate
	DeliveryPoint         Coordinate
}

type TemporalMatchType string

const (
	// RecurringDayMatch - день недели заявки входит в расписание маршрута.
	RecurringDayMatch TemporalMatchType = "recurring_day"
	// RecurringNoDate - маршрут регулярный, дата забора не указана.
	RecurringNoDate TemporalMatchType = "recurring_no_date"
	// FixedDateMatch - обе даты заданы и расходятся не больше допуска.
	FixedDateMatch TemporalMatchType = "fixed_date"
	// FlexibleTiming - ограничений по времени нет.
	FlexibleTiming TemporalMatchType = "flexible"
)

type TemporalMatch struct {
	Type            TemporalMatchType
	HoursDifference float64
}

type CapacityMatch struct {
	WeightChecked bool
	VolumeChecked bool
	VolumeM3      float64
	Fragile       bool
	Cooling       bool
}

type IncompatibleReason string

const (
	ReasonDegenerateRoute     IncompatibleReason = "degenerate_route"
	ReasonOutOfRange          IncompatibleReason = "out_of_range"
	ReasonDetourTooLarge      IncompatibleReason = "detour_too_large"
	ReasonWeekdayMismatch     IncompatibleReason = "weekday_mismatch"
	ReasonDateTooFar          IncompatibleReason = "date_too_far"
	ReasonOverweight          IncompatibleReason = "overweight"
	ReasonOversize            IncompatibleReason = "oversize"
	ReasonFragileNotAccepted  IncompatibleReason = "fragile_not_accepted"
	ReasonCoolingNotAvailable IncompatibleReason = "cooling_not_available"
)

func (r IncompatibleReason) String() string {
	return string(r)
}

// Verdict - результат проверки совместимости: Compatible или Incompatible.
type Verdict interface {
	verdict()
}

type Compatible struct {
	Geo      GeoMatch
	Temporal TemporalMatch
	Capacity CapacityMatch
}

type Incompatible struct {
	Reason IncompatibleReason
	Detail string
}

func (Compatible) verdict()   {}
func (Incompatible) verdict() {}

// MatchResult вычисляется на лету и не является сохраняемой сущностью ядра.
type MatchResult struct {
	AnnouncementID    string
	RouteID           string
	CourierID         string
	Score             int
	Reasons           []string
	MatchType         RouteMatchType
	DistanceKm        float64
	DetourPercent     float64
	EstimatedPrice    float64
	EstimatedDuration time.Duration
	DurationLabel     string
	PickupPoint       Coordinate
	DeliveryPoint     Coordinate
}
