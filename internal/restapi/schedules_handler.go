package restapi

import "net/http"

// schedulesHandler serves GET /schedules/:id as a bare JSON array, the
// shape existing schedule clients consume.
func (api *RestAPI) schedulesHandler(w http.ResponseWriter, r *http.Request) {
	routeID, ok := api.requireID(w, r)
	if !ok {
		return
	}

	api.sendJSON(w, r, api.Store.ScheduleForRoute(routeID))
}
