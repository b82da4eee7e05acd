package route

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/TheRebzu/ecodeli-sub009/internal/entities"
)

func ToDomain(r *CourierRouteDB) (*entities.CourierRoute, error) {
	if r == nil {
		return nil, nil
	}

	waypoints, err := waypointsToDomain(r.Waypoints)
	if err != nil {
		return nil, fmt.Errorf("route %s: %w", r.ID, err)
	}

	days := make([]time.Weekday, 0, len(r.RecurringDays))
	for _, d := range r.RecurringDays {
		days = append(days, time.Weekday(d))
	}

	return &entities.CourierRoute{
		ID:        r.ID,
		CourierID: r.CourierID,
		Departure: entities.Place{
			Coordinate: entities.Coordinate{Latitude: r.DepartureLat, Longitude: r.DepartureLng},
			Address:    r.DepartureAddress,
		},
		Arrival: entities.Place{
			Coordinate: entities.Coordinate{Latitude: r.ArrivalLat, Longitude: r.ArrivalLng},
			Address:    r.ArrivalAddress,
		},
		DepartureDate: r.DepartureDate,
		IsRecurring:   r.IsRecurring,
		RecurringDays: days,
		Waypoints:     waypoints,
		Capacity: entities.RouteCapacity{
			MaxWeightKg:    r.MaxWeightKg,
			MaxVolumeM3:    r.MaxVolumeM3,
			AvailableSeats: r.AvailableSeats,
		},
		Accepts: entities.RouteAcceptance{
			Fragile:     r.AcceptsFragile,
			Cooling:     r.AcceptsCooling,
			LiveAnimals: r.AcceptsLiveAnimals,
			Oversized:   r.AcceptsOversized,
		},
		Pricing: entities.RoutePricing{
			PricePerKm:   r.PricePerKm,
			FixedPrice:   r.FixedPrice,
			IsNegotiable: r.IsNegotiable,
		},
		Constraints: entities.RouteConstraints{
			MinMatchDistanceKm: r.MinMatchDistanceKm,
			MaxDetourPercent:   r.MaxDetourPercent,
		},
		IsActive: r.IsActive,
	}, nil
}

func ToDomainList(models []CourierRouteDB) ([]entities.CourierRoute, error) {
	result := make([]entities.CourierRoute, 0, len(models))
	for i := range models {
		route, err := ToDomain(&models[i])
		if err != nil {
			return nil, err
		}
		result = append(result, *route)
	}
	return result, nil
}

func waypointsToDomain(raw []byte) ([]entities.Waypoint, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var models []WaypointDB
	if err := json.Unmarshal(raw, &models); err != nil {
		return nil, fmt.Errorf("decode waypoints: %w", err)
	}

	waypoints := make([]entities.Waypoint, 0, len(models))
	for _, w := range models {
		waypoints = append(waypoints, entities.Waypoint{
			Place: entities.Place{
				Coordinate: entities.Coordinate{Latitude: w.Lat, Longitude: w.Lng},
				Address:    w.Address,
			},
			RadiusKm: w.RadiusKm,
		})
	}
	return waypoints, nil
}
