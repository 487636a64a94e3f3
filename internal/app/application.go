package app

import (
	"log/slog"

	"schedules.onebusaway.org/internal/appconf"
	"schedules.onebusaway.org/internal/gtfs"
)

// Application holds the dependencies for our HTTP handlers, helpers,
// and middleware. Store is loaded once before the Application is built and
// is read-only from then on, so handlers share it without locking.
type Application struct {
	Config     appconf.Config
	GtfsConfig gtfs.Config
	Logger     *slog.Logger
	Store      *gtfs.Store
}
