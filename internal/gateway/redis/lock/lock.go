package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/lucsky/cuid"
	"github.com/redis/go-redis/v9"
)

// releaseScript удаляет ключ, только если им все еще владеет этот экземпляр.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Locker - распределенная блокировка на SET NX с TTL.
// Истекший TTL освобождает ключ, даже если процесс упал, не сняв блокировку.
type Locker struct {
	client redis.UniversalClient
	owner  string
}

func New(client redis.UniversalClient) *Locker {
	return &Locker{
		client: client,
		owner:  cuid.New(),
	}
}

func (l *Locker) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	acquired, err := l.client.SetNX(ctx, key, l.owner, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("acquire lock %q: %w", key, err)
	}
	return acquired, nil
}

func (l *Locker) Release(ctx context.Context, key string) error {
	err := releaseScript.Run(ctx, l.client, []string{key}, l.owner).Err()
	if err != nil {
		return fmt.Errorf("release lock %q: %w", key, err)
	}
	return nil
}
