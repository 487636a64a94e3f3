package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/urfave/cli/v2"
	"schedules.onebusaway.org/internal/gtfs"
	"schedules.onebusaway.org/internal/logging"
)

var sourceFlags = []cli.Flag{
	&cli.StringFlag{Name: "trips", Usage: "path to trips.txt", EnvVars: []string{"SCHEDULES_TRIPS"}},
	&cli.StringFlag{Name: "stop-times", Usage: "path to stop_times.txt", EnvVars: []string{"SCHEDULES_STOP_TIMES"}},
	&cli.StringFlag{Name: "feed", Usage: "GTFS directory or .zip archive", EnvVars: []string{"SCHEDULES_FEED"}},
	&cli.StringFlag{Name: "dialect", Usage: "row splitting: split or quoted", Value: "split"},
	&cli.StringFlag{Name: "row-policy", Usage: "malformed rows: abort or skip", Value: "abort"},
	&cli.StringFlag{Name: "log-level", Usage: "debug, info, warn or error", Value: "warn"},
}

func newApp(stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:      "schedulectl",
		Usage:     "query route schedules from a GTFS feed without running the server",
		Writer:    stdout,
		ErrWriter: stderr,
		Flags:     sourceFlags,
		Commands: []*cli.Command{
			{
				Name:      "schedule",
				Usage:     "print the schedule of a route as JSON",
				ArgsUsage: "ROUTE_ID",
				Action: func(c *cli.Context) error {
					if c.NArg() != 1 {
						return fmt.Errorf("schedule needs exactly one ROUTE_ID, got %d arguments", c.NArg())
					}
					store, err := loadStore(c)
					if err != nil {
						return err
					}
					return writeJSON(c.App.Writer, store.ScheduleForRoute(c.Args().First()))
				},
			},
			{
				Name:  "routes",
				Usage: "list every route id that has trips",
				Action: func(c *cli.Context) error {
					store, err := loadStore(c)
					if err != nil {
						return err
					}
					for _, routeID := range store.RouteIDs() {
						if _, err := fmt.Fprintln(c.App.Writer, routeID); err != nil {
							return err
						}
					}
					return nil
				},
			},
			{
				Name:  "stats",
				Usage: "load the feed and print load statistics",
				Action: func(c *cli.Context) error {
					store, err := loadStore(c)
					if err != nil {
						return err
					}
					return writeJSON(c.App.Writer, store.Statistics())
				},
			},
		},
	}
}

func loadStore(c *cli.Context) (*gtfs.Store, error) {
	level, err := logging.ParseLevel(c.String("log-level"))
	if err != nil {
		return nil, err
	}
	logger := logging.NewTextLogger(c.App.ErrWriter, level)

	cfg := gtfs.Config{
		TripsPath:     c.String("trips"),
		StopTimesPath: c.String("stop-times"),
		FeedPath:      c.String("feed"),
	}
	if cfg.Dialect, err = gtfs.ParseDialect(c.String("dialect")); err != nil {
		return nil, err
	}
	if cfg.RowPolicy, err = gtfs.ParseRowPolicy(c.String("row-policy")); err != nil {
		return nil, err
	}

	store, err := gtfs.LoadStore(cfg, logger)
	if err != nil {
		logging.LogError(logger, "load failed", err, slog.String("command", c.Command.Name))
		return nil, err
	}
	return store, nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
