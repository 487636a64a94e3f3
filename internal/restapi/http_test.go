package restapi

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"schedules.onebusaway.org/internal/app"
	"schedules.onebusaway.org/internal/appconf"
	"schedules.onebusaway.org/internal/gtfs"
	"schedules.onebusaway.org/internal/logging"
	"schedules.onebusaway.org/internal/models"
)

func loadTestStore(t *testing.T) (*gtfs.Store, gtfs.Config) {
	t.Helper()
	gtfsConfig := gtfs.Config{
		TripsPath:     models.GetFixturePath(t, "trips.txt"),
		StopTimesPath: models.GetFixturePath(t, "stop_times.txt"),
	}
	store, err := gtfs.LoadStore(gtfsConfig, logging.NewStructuredLogger(io.Discard, slog.LevelError))
	require.NoError(t, err)
	return store, gtfsConfig
}

// createTestApiWithConfig builds a RestAPI over the fixture feed.
func createTestApiWithConfig(t *testing.T, cfg appconf.Config) *RestAPI {
	t.Helper()
	store, gtfsConfig := loadTestStore(t)

	api := NewRestAPI(&app.Application{
		Config:     cfg,
		GtfsConfig: gtfsConfig,
		Logger:     logging.NewStructuredLogger(io.Discard, slog.LevelError),
		Store:      store,
	})
	t.Cleanup(api.Close)
	return api
}

func createTestApi(t *testing.T) *RestAPI {
	return createTestApiWithConfig(t, appconf.Config{
		Env:       appconf.EnvFlagToEnvironment("test"),
		ApiKeys:   []string{"TEST"},
		RateLimit: 100,
	})
}

func serveApi(t *testing.T, api *RestAPI) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(api.Handler())
	t.Cleanup(server.Close)
	return server
}

func get(t *testing.T, server *httptest.Server, endpoint string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Get(server.URL + endpoint)
	require.NoError(t, err)
	defer logging.SafeCloseWithLogging(resp.Body,
		slog.Default().With(slog.String("component", "test")),
		"http_response_body")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

// serveApiAndRetrieveEndpoint makes a request through the full middleware
// chain and decodes the envelope.
func serveApiAndRetrieveEndpoint(t *testing.T, api *RestAPI, endpoint string) (*http.Response, models.ResponseModel) {
	t.Helper()
	resp, body := get(t, serveApi(t, api), endpoint)

	var response models.ResponseModel
	require.NoError(t, json.Unmarshal(body, &response), string(body))
	return resp, response
}

func serveAndRetrieveEndpoint(t *testing.T, endpoint string) (*RestAPI, *http.Response, models.ResponseModel) {
	api := createTestApi(t)
	resp, model := serveApiAndRetrieveEndpoint(t, api, endpoint)
	return api, resp, model
}

// listOf extracts data.list from a decoded envelope.
func listOf(t *testing.T, model models.ResponseModel) []interface{} {
	t.Helper()
	data, ok := model.Data.(map[string]interface{})
	require.True(t, ok, "data should be an object")
	list, ok := data["list"].([]interface{})
	require.True(t, ok, "data.list should be an array")
	return list
}
