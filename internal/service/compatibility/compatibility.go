// Package compatibility решает, может ли маршрут курьера обслужить заявку:
// география, время и вместимость проверяются по очереди до первого отказа.
package compatibility

import (
	"fmt"
	"math"
	"time"

	"github.com/TheRebzu/ecodeli-sub009/internal/entities"
	"github.com/TheRebzu/ecodeli-sub009/internal/pkg/geo"
)

// DateToleranceHours - допустимое расхождение дат для нерегулярного маршрута.
const DateToleranceHours = 24.0

type Evaluator struct {
	location *time.Location
}

// NewEvaluator: location задает часовой пояс, в котором определяется день недели забора.
func NewEvaluator(location *time.Location) *Evaluator {
	if location == nil {
		location = time.UTC
	}
	return &Evaluator{location: location}
}

// Evaluate возвращает entities.Compatible или entities.Incompatible.
// Ошибка означает некорректные входные данные, а не несовместимость.
func (e *Evaluator) Evaluate(a entities.Announcement, r entities.CourierRoute) (entities.Verdict, error) {
	if err := validateAnnouncement(a); err != nil {
		return nil, err
	}
	if err := validateRoute(r); err != nil {
		return nil, err
	}

	geoMatch, rejected := e.evaluateGeo(a, r)
	if rejected != nil {
		return *rejected, nil
	}

	temporal, rejected := e.evaluateTemporal(a, r)
	if rejected != nil {
		return *rejected, nil
	}

	capacity, rejected := evaluateCapacity(a, r)
	if rejected != nil {
		return *rejected, nil
	}

	return entities.Compatible{
		Geo:      geoMatch,
		Temporal: temporal,
		Capacity: capacity,
	}, nil
}

func (e *Evaluator) evaluateGeo(a entities.Announcement, r entities.CourierRoute) (entities.GeoMatch, *entities.Incompatible) {
	constraints := r.Constraints.WithDefaults()
	pickup, delivery := a.Pickup.Coordinate, a.Delivery.Coordinate

	original := geo.DistanceKm(r.Departure.Coordinate, r.Arrival.Coordinate)
	if original == 0 {
		return entities.GeoMatch{}, &entities.Incompatible{
			Reason: entities.ReasonDegenerateRoute,
			Detail: "departure and arrival coincide",
		}
	}

	leg := geo.DistanceKm(pickup, delivery)
	toDeparture := geo.DistanceKm(r.Departure.Coordinate, pickup)
	toArrival := geo.DistanceKm(delivery, r.Arrival.Coordinate)

	base := entities.GeoMatch{
		LegDistanceKm:         leg,
		RouteDistanceKm:       original,
		DistanceToDepartureKm: toDeparture,
		DistanceToArrivalKm:   toArrival,
		PickupPoint:           pickup,
		DeliveryPoint:         delivery,
	}

	var (
		best    *entities.GeoMatch
		inRange bool
	)

	if toDeparture <= constraints.MinMatchDistanceKm && toArrival <= constraints.MinMatchDistanceKm {
		inRange = true
		detour := DirectDetourPercent(toDeparture, leg, toArrival, original)
		if detour <= constraints.MaxDetourPercent {
			m := base
			m.Type = entities.DirectRouteMatch
			m.DetourPercent = detour
			best = &m
		}
	}

	for i, w := range r.Waypoints {
		radius := w.RadiusKm
		if radius <= 0 {
			radius = constraints.MinMatchDistanceKm
		}

		fromWaypoint := geo.DistanceKm(w.Place.Coordinate, pickup)
		if fromWaypoint > radius {
			continue
		}
		inRange = true

		detour := WaypointDetourPercent(fromWaypoint, leg, original)
		if best == nil || detour < best.DetourPercent {
			m := base
			m.Type = entities.WaypointRouteMatch
			m.WaypointIndex = i
			m.DetourPercent = detour
			best = &m
		}
	}

	switch {
	case !inRange:
		return entities.GeoMatch{}, &entities.Incompatible{
			Reason: entities.ReasonOutOfRange,
			Detail: fmt.Sprintf("pickup %.1f km from departure, delivery %.1f km from arrival", toDeparture, toArrival),
		}
	case best == nil || best.DetourPercent > constraints.MaxDetourPercent:
		return entities.GeoMatch{}, &entities.Incompatible{
			Reason: entities.ReasonDetourTooLarge,
			Detail: fmt.Sprintf("detour exceeds %.0f%%", constraints.MaxDetourPercent),
		}
	}

	return *best, nil
}

// DirectDetourPercent - доля лишнего пути, когда курьер заезжает за грузом
// и возвращается на маршрут. Не бывает отрицательной.
func DirectDetourPercent(toDeparture, leg, toArrival, original float64) float64 {
	return math.Max(0, (toDeparture+leg+toArrival-original)/original*100)
}

// WaypointDetourPercent считает объезд от промежуточной точки без вычитания
// длины маршрута, поэтому он всегда больше прямого варианта при равных плечах.
func WaypointDetourPercent(fromWaypoint, leg, original float64) float64 {
	return (fromWaypoint + leg) / original * 100
}

func (e *Evaluator) evaluateTemporal(a entities.Announcement, r entities.CourierRoute) (entities.TemporalMatch, *entities.Incompatible) {
	switch {
	case r.IsRecurring:
		if a.PickupDate == nil {
			return entities.TemporalMatch{Type: entities.RecurringNoDate}, nil
		}
		day := a.PickupDate.In(e.location).Weekday()
		if !r.RunsOn(day) {
			return entities.TemporalMatch{}, &entities.Incompatible{
				Reason: entities.ReasonWeekdayMismatch,
				Detail: fmt.Sprintf("route does not run on %s", day),
			}
		}
		return entities.TemporalMatch{Type: entities.RecurringDayMatch}, nil

	case r.DepartureDate != nil && a.PickupDate != nil:
		hours := math.Abs(r.DepartureDate.Sub(*a.PickupDate).Hours())
		if hours > DateToleranceHours {
			return entities.TemporalMatch{}, &entities.Incompatible{
				Reason: entities.ReasonDateTooFar,
				Detail: fmt.Sprintf("%.1fh between departure and pickup", hours),
			}
		}
		return entities.TemporalMatch{Type: entities.FixedDateMatch, HoursDifference: hours}, nil
	}

	return entities.TemporalMatch{Type: entities.FlexibleTiming}, nil
}

func evaluateCapacity(a entities.Announcement, r entities.CourierRoute) (entities.CapacityMatch, *entities.Incompatible) {
	match := entities.CapacityMatch{
		Fragile: a.Parcel.Fragile,
		Cooling: a.Parcel.NeedsCooling,
	}

	if w, limit := a.Parcel.WeightKg, r.Capacity.MaxWeightKg; w != nil && limit != nil {
		if *w > *limit {
			return entities.CapacityMatch{}, &entities.Incompatible{
				Reason: entities.ReasonOverweight,
				Detail: fmt.Sprintf("%.1f kg over %.1f kg limit", *w, *limit),
			}
		}
		match.WeightChecked = true
	}

	if volume, ok := a.Parcel.VolumeM3(); ok && r.Capacity.MaxVolumeM3 != nil {
		if volume > *r.Capacity.MaxVolumeM3 {
			return entities.CapacityMatch{}, &entities.Incompatible{
				Reason: entities.ReasonOversize,
				Detail: fmt.Sprintf("%.3f m3 over %.3f m3 limit", volume, *r.Capacity.MaxVolumeM3),
			}
		}
		match.VolumeChecked = true
		match.VolumeM3 = volume
	}

	if a.Parcel.Fragile && !r.Accepts.Fragile {
		return entities.CapacityMatch{}, &entities.Incompatible{Reason: entities.ReasonFragileNotAccepted}
	}
	if a.Parcel.NeedsCooling && !r.Accepts.Cooling {
		return entities.CapacityMatch{}, &entities.Incompatible{Reason: entities.ReasonCoolingNotAvailable}
	}

	return match, nil
}
