package gtfs

// Config locates the two sources and controls how they are parsed.
// TripsPath and StopTimesPath take precedence over FeedPath, which may name
// a GTFS directory or a .zip archive holding trips.txt and stop_times.txt.
type Config struct {
	TripsPath     string
	StopTimesPath string
	FeedPath      string
	Dialect       Dialect
	RowPolicy     RowPolicy
}
