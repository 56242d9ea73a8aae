package fetch

import (
	"context"
	"net/url"
	"sync"

	"golang.org/x/time/rate"
)

// hostLimiter rate-limits requests per host so repeated checks stay polite
// toward the government endpoints.
type hostLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	r        rate.Limit
	burst    int
}

func newHostLimiter(requestsPerSecond float64, burst int) *hostLimiter {
	if requestsPerSecond <= 0 {
		requestsPerSecond = 1
	}
	if burst <= 0 {
		burst = 1
	}
	return &hostLimiter{
		limiters: make(map[string]*rate.Limiter),
		r:        rate.Limit(requestsPerSecond),
		burst:    burst,
	}
}

func (l *hostLimiter) wait(ctx context.Context, rawURL string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return err
	}

	l.mu.Lock()
	limiter, ok := l.limiters[parsed.Host]
	if !ok {
		limiter = rate.NewLimiter(l.r, l.burst)
		l.limiters[parsed.Host] = limiter
	}
	l.mu.Unlock()

	return limiter.Wait(ctx)
}
