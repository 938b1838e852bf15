package ratelimiter

import (
	"sync"
	"time"

	"github.com/SeakMengs/FigStudio/internal/config"
	"go.uber.org/zap"
)

type window struct {
	start time.Time
	count int
}

// FixedWindowRateLimiter counts requests per client in windows of cfg.TimeFrame.
type FixedWindowRateLimiter struct {
	sync.Mutex
	clients map[string]*window
	limit   int
	frame   time.Duration
	enabled bool
	logger  *zap.SugaredLogger
	now     func() time.Time
}

func NewFixedWindowLimiter(cfg config.RateLimiterConfig, logger *zap.SugaredLogger) *FixedWindowRateLimiter {
	return &FixedWindowRateLimiter{
		clients: make(map[string]*window),
		limit:   cfg.RequestsPerTimeFrame,
		frame:   cfg.TimeFrame,
		enabled: cfg.Enabled && cfg.RequestsPerTimeFrame > 0 && cfg.TimeFrame > 0,
		logger:  logger,
		now:     time.Now,
	}
}

func (rl *FixedWindowRateLimiter) Enabled() bool {
	return rl.enabled
}

// Allow records a request from key. When the limit is hit it reports how long
// until the current window ends.
func (rl *FixedWindowRateLimiter) Allow(key string) (bool, time.Duration) {
	if !rl.enabled {
		return true, 0
	}

	rl.Lock()
	defer rl.Unlock()

	now := rl.now()
	w, ok := rl.clients[key]
	if !ok || now.Sub(w.start) >= rl.frame {
		rl.clients[key] = &window{start: now, count: 1}
		rl.evict(now)
		return true, 0
	}

	if w.count < rl.limit {
		w.count++
		return true, 0
	}

	retryAfter := w.start.Add(rl.frame).Sub(now)
	rl.logger.Debugf("Rate limit hit for %s, retry after %v", key, retryAfter)
	return false, retryAfter
}

// evict drops windows that already ended. Caller holds the lock.
func (rl *FixedWindowRateLimiter) evict(now time.Time) {
	for key, w := range rl.clients {
		if now.Sub(w.start) >= rl.frame {
			delete(rl.clients, key)
		}
	}
}
