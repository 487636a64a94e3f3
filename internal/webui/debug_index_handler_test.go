package webui

import (
	"html/template"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"schedules.onebusaway.org/internal/gtfs"
)

func newTestRouter(store *gtfs.Store) *httprouter.Router {
	router := httprouter.New()
	SetWebUIRoutes(router, &WebUI{Store: store})
	return router
}

func TestDebugIndexHandler(t *testing.T) {
	store := gtfs.BuildStore(
		[]gtfs.Trip{
			{TripID: "T1", RouteID: "R1", ServiceID: "WKDY"},
			{TripID: "T2", RouteID: "R2", ServiceID: "SAT"},
		},
		[]gtfs.StopTime{{TripID: "T1", StopID: "STOP_A", Arrival: "08:00:00", Departure: "08:01:00"}},
	)
	router := newTestRouter(store)

	tests := []struct {
		name     string
		query    string
		title    string
		contains []string
	}{
		{name: "default", query: "", title: "Choose a data type", contains: []string{"Please use one of the following"}},
		{name: "stats", query: "?dataType=stats", title: "Load statistics", contains: []string{"Trips: (int) 2"}},
		{name: "routes", query: "?dataType=routes", title: "Routes", contains: []string{`"R1"`, `"R2"`}},
		{name: "schedule", query: "?dataType=schedule&route=R1", title: "Schedule for route R1", contains: []string{"STOP_A", "08:01:00"}},
		{name: "trips", query: "?dataType=trips&route=R2", title: "Trips for route R2", contains: []string{"SAT"}},
		{name: "stop times", query: "?dataType=stop_times&trip=T1", title: "Stop times for trip T1", contains: []string{"STOP_A"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/debug/"+tt.query, nil)
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
			body := rec.Body.String()
			assert.Contains(t, body, "<title>"+tt.title+"</title>")
			for _, want := range tt.contains {
				assert.Contains(t, body, template.HTMLEscapeString(want))
			}
		})
	}
}

func TestDebugIndexHandler_NoStore(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/debug/", nil)
	rec := httptest.NewRecorder()

	newTestRouter(nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
