package cache

import (
	"fmt"
	"time"
)

// RateLimitKey returns the counter key for client in the fixed window that
// contains at.
func RateLimitKey(client string, window time.Duration, at time.Time) string {
	return fmt.Sprintf("ratelimit:%s:%d", client, at.Truncate(window).Unix())
}
