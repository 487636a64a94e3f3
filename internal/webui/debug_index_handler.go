package webui

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/davecgh/go-spew/spew"
	"schedules.onebusaway.org/internal/gtfs"
)

//go:embed debug_index.html
var templateFS embed.FS

var debugTemplate = template.Must(template.ParseFS(templateFS, "debug_index.html"))

var dataTypes = []string{"stats", "routes", "schedule", "trips", "stop_times"}

// WebUI serves a development-only page that dumps the loaded store.
type WebUI struct {
	Store  *gtfs.Store
	Logger *slog.Logger
}

type debugData struct {
	Title string
	Pre   string
	Links []string
}

var dumper = spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, SortKeys: true}

func (webUI *WebUI) writeDebugData(w http.ResponseWriter, title string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	// The page needs no scripts, styles or images.
	w.Header().Set("Content-Security-Policy", "default-src 'none'")

	err := debugTemplate.Execute(w, debugData{
		Title: title,
		Pre:   dumper.Sdump(data),
		Links: dataTypes,
	})
	if err != nil && webUI.Logger != nil {
		webUI.Logger.Error("failed to render debug page", "error", err)
	}
}

func (webUI *WebUI) debugIndexHandler(w http.ResponseWriter, r *http.Request) {
	if webUI.Store == nil {
		http.Error(w, "schedule data not loaded", http.StatusServiceUnavailable)
		return
	}

	query := r.URL.Query()
	routeID := query.Get("route")
	tripID := query.Get("trip")

	var data interface{}
	var title string

	switch query.Get("dataType") {
	case "stats":
		data = webUI.Store.Statistics()
		title = "Load statistics"
	case "routes":
		data = webUI.Store.RouteIDs()
		title = "Routes"
	case "schedule":
		data = webUI.Store.ScheduleForRoute(routeID)
		title = "Schedule for route " + routeID
	case "trips":
		data = webUI.Store.TripsForRoute(routeID)
		title = "Trips for route " + routeID
	case "stop_times":
		data = webUI.Store.StopTimesForTrip(tripID)
		title = "Stop times for trip " + tripID
	default:
		data = map[string]string{
			"error": "Please use one of the following: stats, routes, schedule&route=ID, trips&route=ID, stop_times&trip=ID.",
		}
		title = "Choose a data type"
	}

	webUI.writeDebugData(w, title, data)
}
