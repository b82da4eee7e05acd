package matching

import (
	"fmt"
	"math"

	"github.com/TheRebzu/ecodeli-sub009/internal/entities"
	"github.com/TheRebzu/ecodeli-sub009/internal/pkg/geo"
)

// DefaultSearchMarginKm - запас сверх наибольшего радиуса совпадения среди активных маршрутов.
const DefaultSearchMarginKm = 5.0

// searchRadiusKm: точка совместимого маршрута лежит не дальше reachKm от точки
// заявки, поэтому область с таким радиусом не теряет кандидатов.
func searchRadiusKm(reachKm, marginKm float64) float64 {
	if marginKm <= 0 {
		marginKm = DefaultSearchMarginKm
	}
	return math.Max(reachKm, entities.DefaultMinMatchDistanceKm) + marginKm
}

// searchBox - область, в которую должна попасть хотя бы одна точка маршрута-кандидата.
func searchBox(a entities.Announcement, reachKm, marginKm float64) (geo.BoundingBox, error) {
	box, err := geo.BoundingBoxAround(searchRadiusKm(reachKm, marginKm), a.Pickup.Coordinate, a.Delivery.Coordinate)
	if err != nil {
		return geo.BoundingBox{}, fmt.Errorf("build search box: %w", err)
	}
	return box, nil
}
