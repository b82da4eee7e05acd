package geo

import (
	"fmt"
	"math"

	"github.com/TheRebzu/ecodeli-sub009/internal/entities"
)

type BoundingBox struct {
	MinLatitude  float64
	MaxLatitude  float64
	MinLongitude float64
	MaxLongitude float64
}

// BoundingBoxAround строит прямоугольник, покрывающий все точки с запасом radiusKm.
// Используется для предварительной выборки кандидатов из хранилища.
func BoundingBoxAround(radiusKm float64, points ...entities.Coordinate) (BoundingBox, error) {
	if len(points) == 0 {
		return BoundingBox{}, fmt.Errorf("bounding box: %w: no points", ErrInvalidCoordinate)
	}

	box := BoundingBox{
		MinLatitude:  90,
		MaxLatitude:  -90,
		MinLongitude: 180,
		MaxLongitude: -180,
	}

	for _, p := range points {
		for _, bearing := range []float64{0, 90, 180, 270} {
			corner, err := DestinationPoint(p, bearing, radiusKm)
			if err != nil {
				return BoundingBox{}, fmt.Errorf("bounding box: %w", err)
			}
			box.extend(corner)
		}
		box.extend(p)
	}

	return box, nil
}

func (b *BoundingBox) extend(c entities.Coordinate) {
	b.MinLatitude = math.Min(b.MinLatitude, c.Latitude)
	b.MaxLatitude = math.Max(b.MaxLatitude, c.Latitude)
	b.MinLongitude = math.Min(b.MinLongitude, c.Longitude)
	b.MaxLongitude = math.Max(b.MaxLongitude, c.Longitude)
}

func (b BoundingBox) Contains(c entities.Coordinate) bool {
	return c.Latitude >= b.MinLatitude && c.Latitude <= b.MaxLatitude &&
		c.Longitude >= b.MinLongitude && c.Longitude <= b.MaxLongitude
}
