package restapi

import (
	"log/slog"
	"time"

	"schedules.onebusaway.org/internal/app"
)

type RestAPI struct {
	*app.Application
	rateLimiter *RateLimitMiddleware
}

// NewRestAPI creates a new RestAPI instance with initialized rate limiter.
// Call Close when the API is no longer served.
func NewRestAPI(app *app.Application) *RestAPI {
	if app.Logger == nil {
		app.Logger = slog.Default()
	}
	limiter := NewRateLimitMiddleware(app.Config.RateLimit, time.Second)
	// Without configured keys a key carries no identity, so every request
	// shares the anonymous bucket.
	limiter.knownKey = func(key string) bool {
		return app.APIKeysRequired() && !app.IsInvalidAPIKey(key)
	}
	return &RestAPI{
		Application: app,
		rateLimiter: limiter,
	}
}

// Close stops the rate limiter's background cleanup.
func (api *RestAPI) Close() {
	if api.rateLimiter != nil {
		api.rateLimiter.Stop()
	}
}
