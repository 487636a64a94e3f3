package main

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"schedules.onebusaway.org/internal/appconf"
	"schedules.onebusaway.org/internal/gtfs"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "schedules.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, gtfsCfg, err := parseConfig([]string{"-feed", "/data/gtfs.zip"}, io.Discard)
		require.NoError(t, err)

		assert.Equal(t, appconf.Default(), cfg)
		assert.Equal(t, gtfs.Config{FeedPath: "/data/gtfs.zip"}, gtfsCfg)
	})

	t.Run("flags", func(t *testing.T) {
		cfg, gtfsCfg, err := parseConfig([]string{
			"-port", "8081", "-env", "production", "-api-keys", " a, b ,,", "-rate-limit", "0",
			"-trips", "t.txt", "-stop-times", "st.txt", "-dialect", "quoted", "-row-policy", "skip",
			"-log-level", "debug", "-log-format", "text",
		}, io.Discard)
		require.NoError(t, err)

		assert.Equal(t, appconf.Config{
			Port: 8081, Env: appconf.Production, ApiKeys: []string{"a", "b"}, RateLimit: 0,
			LogLevel: "debug", LogFormat: "text",
		}, cfg)
		assert.Equal(t, gtfs.Config{
			TripsPath: "t.txt", StopTimesPath: "st.txt",
			Dialect: gtfs.DialectQuoted, RowPolicy: gtfs.SkipMalformedRows,
		}, gtfsCfg)
	})

	t.Run("explicit flags override the config file", func(t *testing.T) {
		path := writeConfig(t, `
port: 9000
env: test
api_keys: [from-file]
gtfs:
  feed: /file/feed
  row_policy: skip
`)
		cfg, gtfsCfg, err := parseConfig([]string{"-config", path, "-port", "9100", "-feed", "/flag/feed"}, io.Discard)
		require.NoError(t, err)

		assert.Equal(t, 9100, cfg.Port)
		assert.Equal(t, appconf.Test, cfg.Env)
		assert.Equal(t, []string{"from-file"}, cfg.ApiKeys)
		assert.Equal(t, "/flag/feed", gtfsCfg.FeedPath)
		assert.Equal(t, gtfs.SkipMalformedRows, gtfsCfg.RowPolicy)
	})

	errorCases := []struct {
		name string
		args []string
	}{
		{name: "no source", args: nil},
		{name: "bad dialect", args: []string{"-feed", "f", "-dialect", "tsv"}},
		{name: "bad row policy", args: []string{"-feed", "f", "-row-policy", "ignore"}},
		{name: "unknown flag", args: []string{"-feed", "f", "-verbose"}},
		{name: "stray argument", args: []string{"-feed", "f", "R1"}},
		{name: "missing config file", args: []string{"-config", "/does/not/exist.yaml"}},
	}
	for _, tt := range errorCases {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := parseConfig(tt.args, io.Discard)
			assert.Error(t, err)
		})
	}

	t.Run("invalid config file", func(t *testing.T) {
		_, _, err := parseConfig([]string{"-config", writeConfig(t, "port: -1\n"), "-feed", "f"}, io.Discard)
		assert.ErrorContains(t, err, "validate config")
	})
}
