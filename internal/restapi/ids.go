package restapi

import (
	"net/http"

	"schedules.onebusaway.org/internal/utils"
)

// requireID extracts the :id path parameter and validates it. On failure it
// has already written a 400 response and returns false.
func (api *RestAPI) requireID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := utils.ExtractIDFromParams(r, "id")
	if err := utils.ValidateID(id); err != nil {
		api.validationErrorResponse(w, r, map[string][]string{
			"id": {err.Error()},
		})
		return "", false
	}
	return id, true
}
