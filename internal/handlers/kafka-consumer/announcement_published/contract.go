//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=announcement_published_test
package announcement_published

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
	MatchAnnouncement(ctx context.Context, announcementID string) ([]entities.MatchResult, error)
}
