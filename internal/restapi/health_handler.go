package restapi

import (
	"net/http"
	"time"
)

type healthResponse struct {
	Status    string    `json:"status"`
	Trips     int       `json:"trips"`
	StopTimes int       `json:"stopTimes"`
	Routes    int       `json:"routes"`
	LoadedAt  time.Time `json:"loadedAt"`
	Dialect   string    `json:"dialect"`
	RowPolicy string    `json:"rowPolicy"`
	Skipped   int       `json:"skippedRows"`
}

func (api *RestAPI) healthHandler(w http.ResponseWriter, r *http.Request) {
	if api.Store == nil {
		api.writeError(w, http.StatusServiceUnavailable, "schedule data not loaded", 2)
		return
	}

	stats := api.Store.Statistics()
	api.sendJSON(w, r, healthResponse{
		Status:    "ok",
		Trips:     stats.Trips,
		StopTimes: stats.StopTimes,
		Routes:    stats.Routes,
		LoadedAt:  stats.LoadedAt,
		Dialect:   api.GtfsConfig.Dialect.String(),
		RowPolicy: api.GtfsConfig.RowPolicy.String(),
		Skipped:   stats.SkippedRows,
	})
}
