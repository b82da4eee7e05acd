//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=availability_test
package availability

import (
	"context"
	"time"

	"github.com/TheRebzu/ecodeli-sub009/internal/entities"
)

type Repository interface {
	GetRules(ctx context.Context, providerID string) ([]entities.AvailabilityRule, error)
	GetRule(ctx context.Context, ruleID string) (*entities.AvailabilityRule, error)
	UpdateRule(ctx context.Context, rule entities.AvailabilityRule) error

	GetExceptions(ctx context.Context, providerID string, from, to time.Time) ([]entities.AvailabilityException, error)
	GetBookedSlots(ctx context.Context, providerID string, from, to time.Time) ([]entities.BookedSlot, error)
	GetFutureBookingsByRule(ctx context.Context, ruleID string, after time.Time) ([]entities.BookedSlot, error)
}

type Clock interface {
	Now() time.Time
}

type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
