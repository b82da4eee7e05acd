package rematch

import (
	"context"
	"fmt"
	"time"

	"github.com/TheRebzu/ecodeli-sub009/pkg/logger"
)

// Rematch периодически повторяет подбор для активных заявок, по которым
// еще нет сохраненных совпадений: за это время могли появиться новые маршруты.
type Rematch struct {
	log      taskLogger
	service  Service
	interval time.Duration
}

func NewRematch(log taskLogger, service Service, interval time.Duration) *Rematch {
	return &Rematch{
		log:      log,
		service:  service,
		interval: interval,
	}
}

func (r *Rematch) TTL() time.Duration {
	return r.interval
}

func (r *Rematch) Do(ctx context.Context) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, r.interval)
	defer cancel()

	matched, err := r.service.RematchUnmatched(ctxWithTimeout)
	if matched > 0 {
		r.log.With(
			logger.NewField("matched_announcements", matched),
		).Info("rematch unmatched announcements")
	}
	if err != nil {
		return fmt.Errorf("rematch unmatched: %w", err)
	}
	return nil
}

func (r *Rematch) Info() string {
	return "rematch unmatched announcements"
}
