package restapi

import (
	"encoding/json"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
	"schedules.onebusaway.org/internal/models"
)

const (
	anonymousKey         = "__no_key__"
	limiterCleanupPeriod = 5 * time.Minute
)

// RateLimitMiddleware provides per-API-key rate limiting. Requests without a
// key, or with a key that knownKey rejects, share a single anonymous bucket.
type RateLimitMiddleware struct {
	limiters  map[string]*rate.Limiter
	mu        sync.RWMutex
	rateLimit rate.Limit
	burstSize int
	knownKey  func(key string) bool
	stop      chan struct{}
	stopOnce  sync.Once
}

// NewRateLimitMiddleware allows ratePerInterval requests per interval per API
// key, with bursts of the same size. A non-positive rate disables limiting.
func NewRateLimitMiddleware(ratePerInterval int, interval time.Duration) *RateLimitMiddleware {
	rl := &RateLimitMiddleware{
		limiters:  make(map[string]*rate.Limiter),
		rateLimit: rate.Inf,
		burstSize: ratePerInterval,
		stop:      make(chan struct{}),
	}
	if ratePerInterval > 0 {
		rl.rateLimit = rate.Every(interval / time.Duration(ratePerInterval))
		go rl.cleanup(limiterCleanupPeriod)
	}
	return rl
}

// Enabled reports whether requests are being limited at all.
func (rl *RateLimitMiddleware) Enabled() bool {
	return rl.rateLimit != rate.Inf
}

// getLimiter gets or creates a rate limiter for the given API key
func (rl *RateLimitMiddleware) getLimiter(apiKey string) *rate.Limiter {
	rl.mu.RLock()
	limiter, exists := rl.limiters[apiKey]
	rl.mu.RUnlock()

	if exists {
		return limiter
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	// Double-check after acquiring write lock
	if limiter, exists := rl.limiters[apiKey]; exists {
		return limiter
	}

	limiter = rate.NewLimiter(rl.rateLimit, rl.burstSize)
	rl.limiters[apiKey] = limiter

	return limiter
}

// bucketKey picks the limiter for r. Only recognised keys get their own
// bucket, so arbitrary ?key= values cannot grow the limiter map.
func (rl *RateLimitMiddleware) bucketKey(r *http.Request) string {
	apiKey := r.URL.Query().Get("key")
	if apiKey == "" || (rl.knownKey != nil && !rl.knownKey(apiKey)) {
		return anonymousKey
	}
	return apiKey
}

// Handler wraps next with the limiter.
func (rl *RateLimitMiddleware) Handler(next http.Handler) http.Handler {
	if !rl.Enabled() {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.getLimiter(rl.bucketKey(r)).Allow() {
			rl.sendRateLimitExceeded(w)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (rl *RateLimitMiddleware) retryAfterSeconds() int {
	secondsPerToken := 1 / float64(rl.rateLimit)
	return int(math.Max(1, math.Ceil(secondsPerToken-1e-9)))
}

// sendRateLimitExceeded sends a 429 Too Many Requests response
func (rl *RateLimitMiddleware) sendRateLimitExceeded(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Retry-After", strconv.Itoa(rl.retryAfterSeconds()))
	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(rl.burstSize))
	w.Header().Set("X-RateLimit-Remaining", "0")
	w.WriteHeader(http.StatusTooManyRequests)

	_ = json.NewEncoder(w).Encode(errorResponse{
		Code:        http.StatusTooManyRequests,
		CurrentTime: models.ResponseCurrentTime(),
		Text:        "Rate limit exceeded. Please try again later.",
		Version:     2,
	})
}

// cleanup periodically drops limiters that have refilled completely, so idle
// keys do not accumulate.
func (rl *RateLimitMiddleware) cleanup(period time.Duration) {
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
			rl.sweep()
		}
	}
}

func (rl *RateLimitMiddleware) sweep() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	for key, limiter := range rl.limiters {
		if limiter.Tokens() >= float64(rl.burstSize) {
			delete(rl.limiters, key)
		}
	}
}

// Stop ends the cleanup goroutine. It is safe to call more than once.
func (rl *RateLimitMiddleware) Stop() {
	rl.stopOnce.Do(func() { close(rl.stop) })
}
