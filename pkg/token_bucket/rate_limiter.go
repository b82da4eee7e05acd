package token_bucket

import (
	"math"
	"sync"
	"time"
)

// TokenBucket пополняется непрерывно: дробные токены копятся между вызовами,
// поэтому при низком refillRate запросы не теряются на округлении.
type TokenBucket struct {
	mu         sync.Mutex
	capacity   float64
	tokens     float64
	refillRate float64 // токенов в секунду
	lastRefill time.Time
	now        func() time.Time
}

func NewTokenBucket(capacity int, refillRate float64) *TokenBucket {
	return newTokenBucket(capacity, refillRate, time.Now)
}

func newTokenBucket(capacity int, refillRate float64, now func() time.Time) *TokenBucket {
	return &TokenBucket{
		capacity:   float64(capacity),
		tokens:     float64(capacity),
		refillRate: refillRate,
		lastRefill: now(),
		now:        now,
	}
}

func (t *TokenBucket) Allow() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.refill(t.now())

	if t.tokens >= 1 {
		t.tokens--
		return true
	}
	return false
}

func (t *TokenBucket) refill(now time.Time) {
	elapsed := now.Sub(t.lastRefill).Seconds()
	if elapsed <= 0 {
		return
	}
	t.tokens = math.Min(t.capacity, t.tokens+elapsed*t.refillRate)
	t.lastRefill = now
}

func (t *TokenBucket) lastSeen() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lastRefill
}

// PerKey держит отдельный бакет на каждого клиента.
// Бакеты без обращений дольше idleTTL удаляются при очередном Allow.
type PerKey struct {
	mu         sync.Mutex
	capacity   int
	refillRate float64
	idleTTL    time.Duration
	buckets    map[string]*TokenBucket
	lastSweep  time.Time
	now        func() time.Time
}

func NewPerKey(capacity int, refillRate float64, idleTTL time.Duration) *PerKey {
	return newPerKey(capacity, refillRate, idleTTL, time.Now)
}

func newPerKey(capacity int, refillRate float64, idleTTL time.Duration, now func() time.Time) *PerKey {
	return &PerKey{
		capacity:   capacity,
		refillRate: refillRate,
		idleTTL:    idleTTL,
		buckets:    make(map[string]*TokenBucket),
		lastSweep:  now(),
		now:        now,
	}
}

func (p *PerKey) Allow(key string) bool {
	p.mu.Lock()
	now := p.now()
	if p.idleTTL > 0 && now.Sub(p.lastSweep) >= p.idleTTL {
		p.sweep(now)
	}

	bucket, ok := p.buckets[key]
	if !ok {
		bucket = newTokenBucket(p.capacity, p.refillRate, p.now)
		p.buckets[key] = bucket
	}
	p.mu.Unlock()

	return bucket.Allow()
}

// Len - число отслеживаемых клиентов.
func (p *PerKey) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.buckets)
}

func (p *PerKey) sweep(now time.Time) {
	for key, bucket := range p.buckets {
		if now.Sub(bucket.lastSeen()) >= p.idleTTL {
			delete(p.buckets, key)
		}
	}
	p.lastSweep = now
}
