package partial

import (
	"cmp"
	"errors"
	"math"
	"slices"
	"time"

	"github.com/lucsky/cuid"

	"github.com/TheRebzu/ecodeli-sub009/internal/entities"
	"github.com/TheRebzu/ecodeli-sub009/internal/pkg/geo"
)

const (
	DefaultMaxSegmentDistanceKm = 100.0
	// FallbackDistanceFactor расширяет радиус поиска для запасного плана.
	FallbackDistanceFactor = 1.5
	// MaxRelays ограничивает длину цепочки передач.
	MaxRelays = 3

	handlingTime       = 30 * time.Minute
	pricePerKm         = 0.8
	baseComplexity     = 1.1
	complexComplexity  = 1.3
	complexThreshold   = 3
	heavyParcelKg      = 30.0
	coordinationCharge = 1.15
)

// Planner разбивает длинную доставку на сегменты через точки передачи.
// Не хранит состояния: результат зависит от заявки, списка точек и Now().
type Planner struct {
	clock Clock
	newID func() string
}

func NewPlanner(clock Clock) *Planner {
	return &Planner{
		clock: clock,
		newID: cuid.New,
	}
}

type PlanOptions struct {
	MaxSegmentDistanceKm float64
	RelayTypes           []entities.RelayType
}

func (o PlanOptions) withDefaults() PlanOptions {
	if o.MaxSegmentDistanceKm <= 0 {
		o.MaxSegmentDistanceKm = DefaultMaxSegmentDistanceKm
	}
	if len(o.RelayTypes) == 0 {
		o.RelayTypes = entities.DefaultRelayTypes
	}
	return o
}

// Fallback - расширенные параметры: дистанция x1.5 и все типы точек.
func (o PlanOptions) Fallback() PlanOptions {
	o = o.withDefaults()
	return PlanOptions{
		MaxSegmentDistanceKm: o.MaxSegmentDistanceKm * FallbackDistanceFactor,
		RelayTypes:           entities.AllRelayTypes,
	}
}

// Plan возвращает ErrSplitNotRequired, если доставка помещается в один сегмент,
// и ErrNoViableRelay, если подходящих точек нет.
func (p *Planner) Plan(a entities.Announcement, relays []entities.RelayPoint, opts PlanOptions) (*entities.PartialDeliveryPlan, error) {
	opts = opts.withDefaults()
	if err := validateRelayTypes(opts.RelayTypes); err != nil {
		return nil, err
	}

	direct, err := geo.Distance(a.Pickup.Coordinate, a.Delivery.Coordinate)
	if err != nil {
		return nil, err
	}
	if direct <= opts.MaxSegmentDistanceKm {
		return nil, ErrSplitNotRequired
	}

	return p.plan(a, relays, opts, false)
}

// PlanWithFallback сначала строит план по заданным параметрам, затем по расширенным.
func (p *Planner) PlanWithFallback(a entities.Announcement, relays []entities.RelayPoint, opts PlanOptions) (*entities.PartialDeliveryPlan, error) {
	plan, err := p.Plan(a, relays, opts)
	if !errors.Is(err, ErrNoViableRelay) {
		return plan, err
	}
	return p.plan(a, relays, opts.Fallback(), true)
}

func (p *Planner) plan(
	a entities.Announcement,
	relays []entities.RelayPoint,
	opts PlanOptions,
	fallback bool,
) (*entities.PartialDeliveryPlan, error) {
	candidates := relayCandidates(a, relays, opts)
	chain, ok := buildChain(a, candidates, opts.MaxSegmentDistanceKm)
	if !ok {
		return nil, ErrNoViableRelay
	}

	now := p.clock.Now()
	plan := &entities.PartialDeliveryPlan{
		ID:                   p.newID(),
		AnnouncementID:       a.ID,
		IsFallback:           fallback,
		MaxSegmentDistanceKm: opts.MaxSegmentDistanceKm,
		CreatedAt:            now,
	}

	multiplier := complexityMultiplier(a)
	points := make([]entities.SegmentEndpoint, 0, len(chain)+2)
	points = append(points, entities.SegmentEndpoint{Place: a.Pickup})
	for _, r := range chain {
		points = append(points, entities.SegmentEndpoint{Place: r.Place, RelayPointID: r.ID})
	}
	points = append(points, entities.SegmentEndpoint{Place: a.Delivery})

	var totalPrice float64
	for i := 0; i < len(points)-1; i++ {
		distance := geo.DistanceKm(points[i].Place.Coordinate, points[i+1].Place.Coordinate)
		segment := entities.Segment{
			ID:                p.newID(),
			PlanID:            plan.ID,
			Index:             i,
			From:              points[i],
			To:                points[i+1],
			DistanceKm:        round2(distance),
			EstimatedDuration: SegmentDuration(distance),
			Price:             round2(distance * pricePerKm * multiplier),
			Status:            entities.SegmentPending,
			UpdatedAt:         now,
		}

		plan.Segments = append(plan.Segments, segment)
		plan.TotalDistanceKm += distance
		plan.TotalDuration += segment.EstimatedDuration
		totalPrice += segment.Price
	}

	plan.TotalDistanceKm = round2(plan.TotalDistanceKm)
	plan.TotalPrice = round2(totalPrice * coordinationCharge)
	plan.EstimatedDeliveryTime = now.Add(plan.TotalDuration)

	return plan, nil
}

type relayCandidate struct {
	relay      entities.RelayPoint
	toPickup   float64
	toDelivery float64
}

// relayCandidates: активные точки нужного типа со свободным местом в пределах
// максимального сегмента от забора и от доставки, по возрастанию суммарного пути.
func relayCandidates(a entities.Announcement, relays []entities.RelayPoint, opts PlanOptions) []relayCandidate {
	out := make([]relayCandidate, 0, len(relays))
	for _, r := range relays {
		if !r.IsActive || r.AvailableCapacity <= 0 || !slices.Contains(opts.RelayTypes, r.Type) {
			continue
		}
		if geo.Validate(r.Place.Coordinate) != nil {
			continue
		}

		toPickup := geo.DistanceKm(a.Pickup.Coordinate, r.Place.Coordinate)
		toDelivery := geo.DistanceKm(r.Place.Coordinate, a.Delivery.Coordinate)
		if toPickup > opts.MaxSegmentDistanceKm || toDelivery > opts.MaxSegmentDistanceKm {
			continue
		}

		out = append(out, relayCandidate{relay: r, toPickup: toPickup, toDelivery: toDelivery})
	}

	slices.SortStableFunc(out, func(x, y relayCandidate) int {
		if c := cmp.Compare(x.toPickup+x.toDelivery, y.toPickup+y.toDelivery); c != 0 {
			return c
		}
		return cmp.Compare(x.relay.ID, y.relay.ID)
	})
	return out
}

// buildChain жадно добавляет точки, пока последний сегмент не станет короче
// максимального. Каждая следующая точка должна приближать груз к получателю.
func buildChain(a entities.Announcement, candidates []relayCandidate, maxKm float64) ([]entities.RelayPoint, bool) {
	current := a.Pickup.Coordinate
	remaining := geo.DistanceKm(current, a.Delivery.Coordinate)
	used := make(map[string]bool, MaxRelays)

	var chain []entities.RelayPoint
	for remaining > maxKm {
		if len(chain) == MaxRelays {
			return nil, false
		}

		next := -1
		for i, c := range candidates {
			if used[c.relay.ID] || c.toDelivery >= remaining {
				continue
			}
			if geo.DistanceKm(current, c.relay.Place.Coordinate) <= maxKm {
				next = i
				break
			}
		}
		if next < 0 {
			return nil, false
		}

		picked := candidates[next]
		used[picked.relay.ID] = true
		chain = append(chain, picked.relay)
		current = picked.relay.Place.Coordinate
		remaining = picked.toDelivery
	}

	return chain, len(chain) > 0
}

// SegmentDuration - время в пути по скорости для длины сегмента плюс передача груза.
func SegmentDuration(distanceKm float64) time.Duration {
	var speed float64
	switch {
	case distanceKm < 10:
		speed = 25
	case distanceKm < 50:
		speed = 45
	default:
		speed = 70
	}

	minutes := math.Round(distanceKm / speed * 60)
	return time.Duration(minutes)*time.Minute + handlingTime
}

func complexityMultiplier(a entities.Announcement) float64 {
	special := 0
	if a.Parcel.Fragile {
		special++
	}
	if a.Parcel.NeedsCooling {
		special++
	}
	if a.Parcel.WeightKg != nil && *a.Parcel.WeightKg > heavyParcelKg {
		special++
	}
	if a.Priority == entities.PriorityUrgent {
		special++
	}

	if special >= complexThreshold {
		return complexComplexity
	}
	return baseComplexity
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
