package main

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"schedules.onebusaway.org/internal/appconf"
	"schedules.onebusaway.org/internal/gtfs"
)

// flagValues receives the raw command-line values before they are merged
// with defaults and the optional config file.
type flagValues struct {
	port       int
	env        string
	apiKeys    string
	rateLimit  int
	logLevel   string
	logFormat  string
	configPath string

	trips     string
	stopTimes string
	feed      string
	dialect   string
	rowPolicy string
}

// parseConfig resolves the service and GTFS settings. Precedence, lowest
// first: built-in defaults, the -config file, flags given on the command line.
func parseConfig(args []string, output io.Writer) (appconf.Config, gtfs.Config, error) {
	defaults := appconf.Default()
	var fv flagValues

	fs := flag.NewFlagSet("api", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.IntVar(&fv.port, "port", defaults.Port, "API server port")
	fs.StringVar(&fv.env, "env", defaults.Env.String(), "Environment (development|test|production)")
	fs.StringVar(&fv.apiKeys, "api-keys", "", "Comma separated API keys; empty leaves the API open")
	fs.IntVar(&fv.rateLimit, "rate-limit", defaults.RateLimit, "Requests per second per API key; 0 disables limiting")
	fs.StringVar(&fv.logLevel, "log-level", defaults.LogLevel, "Log level (debug|info|warn|error)")
	fs.StringVar(&fv.logFormat, "log-format", defaults.LogFormat, "Log format (json|text)")
	fs.StringVar(&fv.configPath, "config", "", "Optional YAML config file")
	fs.StringVar(&fv.trips, "trips", "", "Path to trips.txt")
	fs.StringVar(&fv.stopTimes, "stop-times", "", "Path to stop_times.txt")
	fs.StringVar(&fv.feed, "feed", "", "GTFS directory or .zip holding trips.txt and stop_times.txt")
	fs.StringVar(&fv.dialect, "dialect", "split", "Row splitting (split|quoted)")
	fs.StringVar(&fv.rowPolicy, "row-policy", "abort", "Malformed row handling (abort|skip)")

	if err := fs.Parse(args); err != nil {
		return appconf.Config{}, gtfs.Config{}, err
	}
	if fs.NArg() > 0 {
		return appconf.Config{}, gtfs.Config{}, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	cfg := defaults
	var dialect, rowPolicy string
	var gtfsCfg gtfs.Config

	if fv.configPath != "" {
		file, err := appconf.ReadFile(fv.configPath)
		if err != nil {
			return appconf.Config{}, gtfs.Config{}, err
		}
		file.Apply(&cfg)
		gtfsCfg.TripsPath = file.Gtfs.Trips
		gtfsCfg.StopTimesPath = file.Gtfs.StopTimes
		gtfsCfg.FeedPath = file.Gtfs.Feed
		dialect = file.Gtfs.Dialect
		rowPolicy = file.Gtfs.RowPolicy
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "port":
			cfg.Port = fv.port
		case "env":
			cfg.Env = appconf.EnvFlagToEnvironment(fv.env)
		case "api-keys":
			cfg.ApiKeys = splitAPIKeys(fv.apiKeys)
		case "rate-limit":
			cfg.RateLimit = fv.rateLimit
		case "log-level":
			cfg.LogLevel = fv.logLevel
		case "log-format":
			cfg.LogFormat = fv.logFormat
		case "trips":
			gtfsCfg.TripsPath = fv.trips
		case "stop-times":
			gtfsCfg.StopTimesPath = fv.stopTimes
		case "feed":
			gtfsCfg.FeedPath = fv.feed
		case "dialect":
			dialect = fv.dialect
		case "row-policy":
			rowPolicy = fv.rowPolicy
		}
	})

	var err error
	if gtfsCfg.Dialect, err = gtfs.ParseDialect(dialect); err != nil {
		return appconf.Config{}, gtfs.Config{}, err
	}
	if gtfsCfg.RowPolicy, err = gtfs.ParseRowPolicy(rowPolicy); err != nil {
		return appconf.Config{}, gtfs.Config{}, err
	}
	if gtfsCfg.TripsPath == "" && gtfsCfg.StopTimesPath == "" && gtfsCfg.FeedPath == "" {
		return appconf.Config{}, gtfs.Config{}, fmt.Errorf("no GTFS source: set -feed or -trips and -stop-times")
	}

	return cfg, gtfsCfg, nil
}

func splitAPIKeys(value string) []string {
	var keys []string
	for _, key := range strings.Split(value, ",") {
		if key = strings.TrimSpace(key); key != "" {
			keys = append(keys, key)
		}
	}
	return keys
}
