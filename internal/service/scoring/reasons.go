package scoring

import (
	"fmt"

	"github.com/TheRebzu/ecodeli-sub009/internal/entities"
)

const (
	minimalDetourPercent    = 10.0
	acceptableDetourPercent = 20.0
)

// reasons собирает пояснения для интерфейса и аудита, на оценку не влияют.
func reasons(a entities.Announcement, r entities.CourierRoute, match entities.Compatible) []string {
	out := make([]string, 0, 8)

	switch match.Geo.Type {
	case entities.WaypointRouteMatch:
		out = append(out, fmt.Sprintf("pickup near waypoint #%d", match.Geo.WaypointIndex+1))
	default:
		out = append(out, "direct route match")
	}

	switch detour := match.Geo.DetourPercent; {
	case detour <= minimalDetourPercent:
		out = append(out, "minimal detour")
	case detour <= acceptableDetourPercent:
		out = append(out, "acceptable detour")
	}

	switch match.Temporal.Type {
	case entities.RecurringDayMatch:
		out = append(out, "route runs on pickup day")
	case entities.RecurringNoDate:
		out = append(out, "recurring route, flexible pickup")
	case entities.FixedDateMatch:
		out = append(out, fmt.Sprintf("departure within %.0fh of pickup", match.Temporal.HoursDifference))
	case entities.FlexibleTiming:
		out = append(out, "flexible timing")
	}
	if a.IsFlexible {
		out = append(out, "client dates are flexible")
	}

	if match.Capacity.WeightChecked {
		out = append(out, "weight within capacity")
	}
	if match.Capacity.VolumeChecked {
		out = append(out, "volume within capacity")
	}
	if match.Capacity.Fragile {
		out = append(out, "fragile handling accepted")
	}
	if match.Capacity.Cooling {
		out = append(out, "cooling available")
	}

	if a.IsNegotiable || r.Pricing.IsNegotiable {
		out = append(out, "price negotiable")
	}

	if tag, ok := typeCompatibility(a.Type, r.Accepts); ok {
		out = append(out, tag)
	}

	return out
}

func typeCompatibility(t entities.AnnouncementType, accepts entities.RouteAcceptance) (string, bool) {
	switch t {
	case entities.PetTransport:
		if accepts.LiveAnimals {
			return "live animals accepted", true
		}
		return "", false
	case entities.PersonTransport:
		return "passenger transport", true
	case "":
		return "", false
	default:
		return fmt.Sprintf("suitable for %s", t), true
	}
}
