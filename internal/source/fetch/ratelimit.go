package fetch

import (
	"sync"
	"time"
)

// RateLimiter grants at most n permits per rolling window, matching the
// request rate the upstream site is known to tolerate.
type RateLimiter struct {
	mu     sync.Mutex
	n      int
	window time.Duration
	stamps []time.Time
}

func NewRateLimiter(n int, window time.Duration) *RateLimiter {
	return &RateLimiter{n: n, window: window}
}

// Wait blocks until a permit is available and claims it.
func (rl *RateLimiter) Wait() {
	for {
		rl.mu.Lock()
		now := time.Now()
		keep := rl.stamps[:0]
		for _, t := range rl.stamps {
			if now.Sub(t) < rl.window {
				keep = append(keep, t)
			}
		}
		rl.stamps = keep
		if len(rl.stamps) < rl.n {
			rl.stamps = append(rl.stamps, now)
			rl.mu.Unlock()
			return
		}
		sleep := rl.window - now.Sub(rl.stamps[0])
		rl.mu.Unlock()
		time.Sleep(sleep)
	}
}
