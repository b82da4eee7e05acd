//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=rule_delete_test
package rule_delete

import (
	"context"

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
	DeactivateRule(ctx context.Context, ruleID string, resolveConflicts bool) (*availability.RuleChange, error)
}
