package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/kiranshivaraju/tabstats/internal/api/response"
	"github.com/kiranshivaraju/tabstats/internal/logging"
	"golang.org/x/sync/semaphore"
)

// ConcurrencyLimit bounds the number of requests running a handler at once.
type ConcurrencyLimit struct {
	sem     *semaphore.Weighted
	maxWait time.Duration
}

// NewConcurrencyLimit allows up to n concurrent requests. A request that
// cannot get a slot within maxWait, or before its context ends, is answered
// with 503. maxWait <= 0 waits for the request context only.
func NewConcurrencyLimit(n int, maxWait time.Duration) *ConcurrencyLimit {
	if n <= 0 {
		n = 1
	}
	return &ConcurrencyLimit{sem: semaphore.NewWeighted(int64(n)), maxWait: maxWait}
}

func (c *ConcurrencyLimit) Limit(next http.Handler) http.Handler {
	if c == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if c.maxWait > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, c.maxWait)
			defer cancel()
		}

		if err := c.sem.Acquire(ctx, 1); err != nil {
			logging.FromContext(r.Context()).Warn("no analysis slot available", "error", err)
			w.Header().Set("Retry-After", "1")
			response.Error(w, http.StatusServiceUnavailable, "BUSY", "Server is busy, retry later", nil)
			return
		}
		defer c.sem.Release(1)

		next.ServeHTTP(w, r)
	})
}
