package middleware

import "time"

// SetClock replaces the rate limiter's time source.
func (rl *RateLimit) SetClock(now func() time.Time) {
	rl.now = now
}
