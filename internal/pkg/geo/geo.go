// Package geo содержит чистые геометрические функции на сфере.
package geo

import (
	"fmt"
	"math"

	"github.com/TheRebzu/ecodeli-sub009/internal/entities"
)

const EarthRadiusKm = 6371.0

// Validate проверяет диапазоны широты [-90,90] и долготы [-180,180].
func Validate(c entities.Coordinate) error {
	if math.IsNaN(c.Latitude) || math.IsNaN(c.Longitude) ||
		c.Latitude < -90 || c.Latitude > 90 ||
		c.Longitude < -180 || c.Longitude > 180 {
		return fmt.Errorf("%w: lat=%v lng=%v", ErrInvalidCoordinate, c.Latitude, c.Longitude)
	}
	return nil
}

// Distance - расстояние по большому кругу (haversine) в километрах.
func Distance(a, b entities.Coordinate) (float64, error) {
	if err := validateAll(a, b); err != nil {
		return 0, err
	}
	return DistanceKm(a, b), nil
}

// DistanceKm не проверяет координаты, вызывающий код валидирует их заранее.
func DistanceKm(a, b entities.Coordinate) float64 {
	if a == b {
		return 0
	}

	dLat := toRadians(b.Latitude - a.Latitude)
	dLng := toRadians(b.Longitude - a.Longitude)

	rLat1 := toRadians(a.Latitude)
	rLat2 := toRadians(b.Latitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rLat1)*math.Cos(rLat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusKm * c
}

// Bearing - начальный азимут из a в b, градусы в [0, 360).
func Bearing(a, b entities.Coordinate) (float64, error) {
	if err := validateAll(a, b); err != nil {
		return 0, err
	}

	rLat1 := toRadians(a.Latitude)
	rLat2 := toRadians(b.Latitude)
	dLng := toRadians(b.Longitude - a.Longitude)

	y := math.Sin(dLng) * math.Cos(rLat2)
	x := math.Cos(rLat1)*math.Sin(rLat2) - math.Sin(rLat1)*math.Cos(rLat2)*math.Cos(dLng)

	return normalizeDegrees(toDegrees(math.Atan2(y, x))), nil
}

// DestinationPoint проецирует точку на distanceKm от origin по азимуту bearingDeg.
func DestinationPoint(origin entities.Coordinate, bearingDeg, distanceKm float64) (entities.Coordinate, error) {
	if err := Validate(origin); err != nil {
		return entities.Coordinate{}, err
	}
	if math.IsNaN(bearingDeg) || math.IsNaN(distanceKm) || math.IsInf(distanceKm, 0) {
		return entities.Coordinate{}, fmt.Errorf("%w: bearing=%v distance=%v", ErrInvalidCoordinate, bearingDeg, distanceKm)
	}

	angular := distanceKm / EarthRadiusKm
	theta := toRadians(bearingDeg)
	rLat := toRadians(origin.Latitude)
	rLng := toRadians(origin.Longitude)

	lat := math.Asin(math.Sin(rLat)*math.Cos(angular) +
		math.Cos(rLat)*math.Sin(angular)*math.Cos(theta))
	lng := rLng + math.Atan2(
		math.Sin(theta)*math.Sin(angular)*math.Cos(rLat),
		math.Cos(angular)-math.Sin(rLat)*math.Sin(lat),
	)

	return entities.Coordinate{
		Latitude:  toDegrees(lat),
		Longitude: normalizeLongitude(toDegrees(lng)),
	}, nil
}

func validateAll(coords ...entities.Coordinate) error {
	for _, c := range coords {
		if err := Validate(c); err != nil {
			return err
		}
	}
	return nil
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}

func toDegrees(rad float64) float64 {
	return rad * 180.0 / math.Pi
}

func normalizeDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

func normalizeLongitude(lng float64) float64 {
	return math.Mod(lng+540, 360) - 180
}
