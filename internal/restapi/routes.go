package restapi

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"schedules.onebusaway.org/internal/appconf"
	"schedules.onebusaway.org/internal/webui"
)

type handlerFunc func(w http.ResponseWriter, r *http.Request)

func validateAPIKey(api *RestAPI, finalHandler handlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if api.RequestHasInvalidAPIKey(r) {
			api.invalidAPIKeyResponse(w, r)
			return
		}
		finalHandler(w, r)
	})
}

// SetRoutes registers every endpoint on router. The debug page is only
// mounted in the development environment.
func (api *RestAPI) SetRoutes(router *httprouter.Router) {
	router.Handler(http.MethodGet, "/schedules/:id", validateAPIKey(api, api.schedulesHandler))
	router.Handler(http.MethodGet, "/api/where/schedule-for-route/:id", validateAPIKey(api, api.scheduleForRouteHandler))
	router.Handler(http.MethodGet, "/api/where/trips-for-route/:id", validateAPIKey(api, api.tripsForRouteHandler))
	router.Handler(http.MethodGet, "/api/where/stop-times-for-trip/:id", validateAPIKey(api, api.stopTimesForTripHandler))
	router.HandlerFunc(http.MethodGet, "/healthz", api.healthHandler)

	if api.Config.Env == appconf.Development {
		webui.SetWebUIRoutes(router, &webui.WebUI{Store: api.Store, Logger: api.Logger})
	}

	router.NotFound = http.HandlerFunc(api.sendNotFound)
	router.MethodNotAllowed = http.HandlerFunc(api.methodNotAllowedResponse)
}

// Handler returns the router wrapped in the full middleware chain.
func (api *RestAPI) Handler() http.Handler {
	router := httprouter.New()
	api.SetRoutes(router)

	var handler http.Handler = router
	handler = CompressionMiddleware(handler)
	handler = api.rateLimiter.Handler(handler)
	handler = NewRequestLoggingMiddleware(api.Logger)(handler)
	return api.WithSecurityHeaders(handler)
}
