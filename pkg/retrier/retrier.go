package retrier

import (
	"context"
	"time"
)

type Retrier interface {
	ExecuteWithContext(ctx context.Context, fn func(context.Context) error) error
}

type ShouldRetryFunc func(error) bool

// Config - экспоненциальная задержка между попытками.
type Config struct {
	InitialInterval time.Duration
	MaxInterval     time.Duration
	// MaxElapsedTime == 0 не ограничивает общее время.
	MaxElapsedTime time.Duration
	// MaxRetries == 0 не ограничивает число повторов.
	MaxRetries    uint64
	Randomization float64
	Multiplier    float64

	// nil - повторяются все ошибки, иначе только те, где функция вернула true.
	ShouldRetry ShouldRetryFunc
}
