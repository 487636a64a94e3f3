package gtfs

import (
	"io"
	"log/slog"
	"maps"
	"slices"
	"time"

	"schedules.onebusaway.org/internal/logging"
)

// Store owns every trip and stop time read from the feed plus two indices of
// positions into those slices, keyed by route and by trip. Positions are
// recorded in file order and entries are never removed, so every index entry
// stays valid.
//
// A Store is written only while LoadStore (or BuildStore) runs. Once it is
// returned it is never mutated again, and any number of goroutines may call
// its methods concurrently without locking.
type Store struct {
	trips             []Trip
	tripsIxByRoute    map[string][]int
	stopTimes         []StopTime
	stopTimesIxByTrip map[string][]int
	stats             Statistics
}

// Statistics summarizes a completed load.
type Statistics struct {
	TripsSource     string        `json:"tripsSource"`
	StopTimesSource string        `json:"stopTimesSource"`
	Trips           int           `json:"trips"`
	StopTimes       int           `json:"stopTimes"`
	Routes          int           `json:"routes"`
	SkippedRows     int           `json:"skippedRows"`
	LoadDuration    time.Duration `json:"loadDuration"`
	LoadedAt        time.Time     `json:"loadedAt"`
}

func newStore() *Store {
	return &Store{
		tripsIxByRoute:    make(map[string][]int),
		stopTimesIxByTrip: make(map[string][]int),
	}
}

func (s *Store) appendTrip(trip Trip) {
	s.tripsIxByRoute[trip.RouteID] = append(s.tripsIxByRoute[trip.RouteID], len(s.trips))
	s.trips = append(s.trips, trip)
}

func (s *Store) appendStopTime(stopTime StopTime) {
	s.stopTimesIxByTrip[stopTime.TripID] = append(s.stopTimesIxByTrip[stopTime.TripID], len(s.stopTimes))
	s.stopTimes = append(s.stopTimes, stopTime)
}

func (s *Store) seal(start time.Time) {
	s.stats.Trips = len(s.trips)
	s.stats.StopTimes = len(s.stopTimes)
	s.stats.Routes = len(s.tripsIxByRoute)
	s.stats.LoadedAt = time.Now()
	s.stats.LoadDuration = s.stats.LoadedAt.Sub(start)
}

// LoadStore reads the trips source and then the stop-times source described
// by cfg and returns the frozen store. It must run once, before the store is
// shared. Any failure returns a nil store and an error wrapping *LoadError.
func LoadStore(cfg Config, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	start := time.Now()

	f, err := openFeed(cfg)
	if err != nil {
		return nil, err
	}
	defer logging.SafeCloseWithLogging(f, logger, "close_feed")

	store := newStore()

	skipped, err := loadTable(f.trips, tripsTable, cfg, logger, store.appendTrip)
	if err != nil {
		return nil, err
	}
	store.stats.TripsSource = f.trips.name
	store.stats.SkippedRows += skipped

	skipped, err = loadTable(f.stopTimes, stopTimesTable, cfg, logger, store.appendStopTime)
	if err != nil {
		return nil, err
	}
	store.stats.StopTimesSource = f.stopTimes.name
	store.stats.SkippedRows += skipped

	store.seal(start)
	logging.LogOperation(logger, "gtfs_store_loaded",
		slog.Int("trips", store.stats.Trips),
		slog.Int("stop_times", store.stats.StopTimes),
		slog.Int("routes", store.stats.Routes),
		slog.Int("skipped_rows", store.stats.SkippedRows),
		slog.Duration("duration", store.stats.LoadDuration))

	return store, nil
}

func loadTable[T any](src tableSource, t table[T], cfg Config, logger *slog.Logger, emit func(T)) (skipped int, err error) {
	rc, err := src.open()
	if err != nil {
		return 0, &LoadError{Source: src.name, Err: err}
	}
	defer logging.HandleDeferredError(&err, closeSource(rc, src.name), logger, "close_"+t.name)

	start := time.Now()
	rows := 0
	skipped, err = readTable(rc, src.name, t, cfg, logger, func(record T) {
		rows++
		emit(record)
	})
	if err != nil {
		return skipped, err
	}

	logging.LogOperation(logger, "gtfs_table_parsed",
		slog.String("source", src.name),
		slog.Int("records", rows),
		slog.Int("skipped_rows", skipped),
		slog.Duration("duration", time.Since(start)))
	return skipped, nil
}

func closeSource(rc io.Closer, name string) func() error {
	return func() error {
		if err := rc.Close(); err != nil {
			return &LoadError{Source: name, Err: err}
		}
		return nil
	}
}

// BuildStore indexes already-parsed records in the order given. It is the
// in-memory counterpart of LoadStore.
func BuildStore(trips []Trip, stopTimes []StopTime) *Store {
	start := time.Now()
	store := newStore()
	for _, trip := range trips {
		store.appendTrip(trip)
	}
	for _, stopTime := range stopTimes {
		store.appendStopTime(stopTime)
	}
	store.seal(start)
	return store
}

// TripsForRoute returns the trips of routeID in trips-file order. An unknown
// route yields an empty slice.
func (s *Store) TripsForRoute(routeID string) []Trip {
	ixs := s.tripsIxByRoute[routeID]
	trips := make([]Trip, 0, len(ixs))
	for _, ix := range ixs {
		trips = append(trips, s.trips[ix])
	}
	return trips
}

// StopTimesForTrip returns the stop times of tripID in stop-times-file order,
// not sorted by time of day. An unknown trip yields an empty slice.
func (s *Store) StopTimesForTrip(tripID string) []StopTime {
	ixs := s.stopTimesIxByTrip[tripID]
	stopTimes := make([]StopTime, 0, len(ixs))
	for _, ix := range ixs {
		stopTimes = append(stopTimes, s.stopTimes[ix])
	}
	return stopTimes
}

// RouteIDs returns every route with at least one trip, sorted.
func (s *Store) RouteIDs() []string {
	return slices.Sorted(maps.Keys(s.tripsIxByRoute))
}

// Statistics reports what the load produced.
func (s *Store) Statistics() Statistics {
	return s.stats
}
