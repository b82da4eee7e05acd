package partial

import (
	"fmt"
	"slices"

	"github.com/TheRebzu/ecodeli-sub009/internal/entities"
)

func validateRelayTypes(types []entities.RelayType) error {
	for _, t := range types {
		if !slices.Contains(entities.AllRelayTypes, t) {
			return fmt.Errorf("%w: %q", ErrInvalidRelayType, t)
		}
	}
	return nil
}

func validateMaxDistance(km float64) error {
	if km < 0 {
		return fmt.Errorf("%w: %.1f", ErrInvalidMaxDistance, km)
	}
	return nil
}
