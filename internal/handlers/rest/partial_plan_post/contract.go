//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=partial_plan_post_test
package partial_plan_post

import (
	"context"

	"github.com/TheRebzu/ecodeli-sub009/internal/entities"
	"github.com/TheRebzu/ecodeli-sub009/internal/service/partial"
	"github.com/TheRebzu/ecodeli-sub009/pkg/logger"
)

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Service interface {
	PlanPartialDelivery(ctx context.Context, announcementID string, opts partial.PlanOptions) (*entities.PartialDeliveryPlan, error)
}
