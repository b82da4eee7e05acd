//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=segment_status_put_test
package segment_status_put

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
	UpdateSegmentStatus(ctx context.Context, segmentID string, next entities.SegmentStatus, courierID string) (*entities.Segment, error)
}
