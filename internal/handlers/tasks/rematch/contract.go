//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=rematch_test
package rematch

import (
	"context"

	"github.com/TheRebzu/ecodeli-sub009/pkg/logger"
)

type taskLogger interface {
	Info(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Service interface {
	RematchUnmatched(ctx context.Context) (int, error)
}
