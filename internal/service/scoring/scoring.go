// Package scoring превращает совместимую пару заявка/маршрут в оценку 0..100,
// оценку цены и длительности и список причин для интерфейса.
package scoring

import (
	"fmt"
	"math"
	"time"

	"github.com/TheRebzu/ecodeli-sub009/internal/entities"
)

const (
	GeoWeight      = 40.0
	TemporalWeight = 25.0
	CapacityWeight = 20.0
	PriceWeight    = 10.0
	PriorityWeight = 5.0

	recurringNoDatePoints = 20.0
	mediumPriorityPoints  = 3.0

	// priceTolerance - допустимое отклонение фиксированной цены от предложенной.
	priceTolerance = 0.20
)

const (
	fragileSurcharge    = 1.20
	coolingSurcharge    = 1.15
	highPrioritySurge   = 1.10
	urgentPrioritySurge = 1.25
	// detourSurchargeFrom - объезд, после которого цена растет пропорционально.
	detourSurchargeFrom = 15.0
)

type Scorer struct{}

func NewScorer() *Scorer {
	return &Scorer{}
}

func (s *Scorer) Score(a entities.Announcement, r entities.CourierRoute, match entities.Compatible) entities.MatchResult {
	constraints := r.Constraints.WithDefaults()

	total := geoPoints(match.Geo.DetourPercent, constraints.MaxDetourPercent) +
		temporalPoints(match.Temporal) +
		CapacityWeight +
		pricePoints(a, r) +
		priorityPoints(a.Priority)

	duration := EstimateDuration(match.Geo.LegDistanceKm)

	return entities.MatchResult{
		AnnouncementID:    a.ID,
		RouteID:           r.ID,
		CourierID:         r.CourierID,
		Score:             clampScore(total),
		Reasons:           reasons(a, r, match),
		MatchType:         match.Geo.Type,
		DistanceKm:        round2(match.Geo.LegDistanceKm),
		DetourPercent:     round2(match.Geo.DetourPercent),
		EstimatedPrice:    EstimatePrice(a, r, match.Geo),
		EstimatedDuration: duration,
		DurationLabel:     FormatDuration(duration),
		PickupPoint:       match.Geo.PickupPoint,
		DeliveryPoint:     match.Geo.DeliveryPoint,
	}
}

func geoPoints(detour, maxDetour float64) float64 {
	return GeoWeight * (1 - math.Min(detour/maxDetour, 1))
}

func temporalPoints(t entities.TemporalMatch) float64 {
	switch t.Type {
	case entities.RecurringDayMatch, entities.FlexibleTiming:
		return TemporalWeight
	case entities.RecurringNoDate:
		return recurringNoDatePoints
	case entities.FixedDateMatch:
		return TemporalWeight * math.Max(0, 1-t.HoursDifference/24)
	default:
		return 0
	}
}

func pricePoints(a entities.Announcement, r entities.CourierRoute) float64 {
	if a.IsNegotiable || r.Pricing.IsNegotiable {
		return PriceWeight
	}
	if r.Pricing.FixedPrice == nil {
		return 0
	}
	if math.Abs(*r.Pricing.FixedPrice-a.SuggestedPrice) <= priceTolerance*a.SuggestedPrice {
		return PriceWeight
	}
	return 0
}

func priorityPoints(p entities.Priority) float64 {
	switch p {
	case entities.PriorityHigh, entities.PriorityUrgent:
		return PriorityWeight
	case entities.PriorityLow:
		return 0
	default:
		return mediumPriorityPoints
	}
}

// EstimatePrice: фиксированная цена маршрута или тариф за км по плечу заявки,
// затем надбавки за хрупкость, охлаждение, срочность и большой объезд.
func EstimatePrice(a entities.Announcement, r entities.CourierRoute, g entities.GeoMatch) float64 {
	price := g.LegDistanceKm * r.Pricing.PricePerKm
	if r.Pricing.FixedPrice != nil {
		price = *r.Pricing.FixedPrice
	}

	if a.Parcel.Fragile {
		price *= fragileSurcharge
	}
	if a.Parcel.NeedsCooling {
		price *= coolingSurcharge
	}

	switch a.Priority {
	case entities.PriorityHigh:
		price *= highPrioritySurge
	case entities.PriorityUrgent:
		price *= urgentPrioritySurge
	}

	if g.DetourPercent > detourSurchargeFrom {
		price *= 1 + g.DetourPercent/100
	}

	return round2(price)
}

// EstimateDuration - время в пути по средней скорости для диапазона расстояний.
func EstimateDuration(distanceKm float64) time.Duration {
	var speed float64
	switch {
	case distanceKm < 10:
		speed = 30
	case distanceKm < 50:
		speed = 50
	default:
		speed = 80
	}

	minutes := math.Round(distanceKm / speed * 60)
	return time.Duration(minutes) * time.Minute
}

// FormatDuration: "45min", "2h", "3h 05min".
func FormatDuration(d time.Duration) string {
	total := int(d.Round(time.Minute) / time.Minute)
	hours, minutes := total/60, total%60

	switch {
	case hours == 0:
		return fmt.Sprintf("%dmin", minutes)
	case minutes == 0:
		return fmt.Sprintf("%dh", hours)
	default:
		return fmt.Sprintf("%dh %02dmin", hours, minutes)
	}
}

func clampScore(total float64) int {
	return int(math.Max(0, math.Min(100, math.Round(total))))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
