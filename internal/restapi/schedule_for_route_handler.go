package restapi

import (
	"net/http"

	"schedules.onebusaway.org/internal/models"
)

func (api *RestAPI) scheduleForRouteHandler(w http.ResponseWriter, r *http.Request) {
	routeID, ok := api.requireID(w, r)
	if !ok {
		return
	}

	api.sendResponse(w, r, models.NewListResponse(api.Store.ScheduleForRoute(routeID)))
}
