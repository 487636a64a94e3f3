package restapi

import (
	"net/http"

	"schedules.onebusaway.org/internal/models"
)

func (api *RestAPI) stopTimesForTripHandler(w http.ResponseWriter, r *http.Request) {
	tripID, ok := api.requireID(w, r)
	if !ok {
		return
	}

	api.sendResponse(w, r, models.NewListResponse(api.Store.StopTimesForTrip(tripID)))
}
