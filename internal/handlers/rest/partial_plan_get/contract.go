//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=partial_plan_get_test
package partial_plan_get

import (
	"context"

	"github.com/TheRebzu/ecodeli-sub009/internal/entities"
	"github.com/TheRebzu/ecodeli-sub009/pkg/logger"
)

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Service interface {
	GetPlan(ctx context.Context, planID string) (*entities.PartialDeliveryPlan, error)
}
