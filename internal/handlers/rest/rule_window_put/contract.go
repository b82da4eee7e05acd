//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=rule_window_put_test
package rule_window_put

import (
	"context"

	"github.com/TheRebzu/ecodeli-sub009/internal/entities"
	"github.com/TheRebzu/ecodeli-sub009/internal/service/availability"
	"github.com/TheRebzu/ecodeli-sub009/pkg/logger"
)

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Service interface {
	ShiftRuleWindow(ctx context.Context, ruleID string, window entities.TimeWindow, resolveConflicts bool) (*availability.RuleChange, error)
}
