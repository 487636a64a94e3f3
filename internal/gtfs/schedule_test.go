package gtfs

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduleForRoute_Scenario(t *testing.T) {
	dir := t.TempDir()
	store, err := LoadStore(Config{
		TripsPath:     writeFile(t, dir, "trips.txt", scenarioTrips),
		StopTimesPath: writeFile(t, dir, "stop_times.txt", scenarioStopTimes),
	}, discardLogger())
	require.NoError(t, err)

	assert.Equal(t, []TripSchedule{
		{
			TripID:    "T1",
			ServiceID: "S1",
			RouteID:   "R1",
			Schedules: []ScheduledStop{{StopID: "STOP_A", Arrival: "08:00:00", Departure: "08:01:00"}},
		},
		{
			TripID:    "T2",
			ServiceID: "S1",
			RouteID:   "R1",
			Schedules: []ScheduledStop{{StopID: "STOP_B", Arrival: "09:00:00", Departure: "09:01:00"}},
		},
	}, store.ScheduleForRoute("R1"))
}

func TestScheduleForRoute_MatchesTripAndStopTimeQueries(t *testing.T) {
	store := loadFixtureStore(t)

	for _, routeID := range store.RouteIDs() {
		t.Run(routeID, func(t *testing.T) {
			schedule := store.ScheduleForRoute(routeID)
			trips := store.TripsForRoute(routeID)
			require.Len(t, schedule, len(trips))

			for i, trip := range trips {
				entry := schedule[i]
				assert.Equal(t, trip.TripID, entry.TripID)
				assert.Equal(t, trip.RouteID, entry.RouteID)
				assert.Equal(t, trip.ServiceID, entry.ServiceID)

				stopTimes := store.StopTimesForTrip(trip.TripID)
				require.Len(t, entry.Schedules, len(stopTimes))
				for j, stopTime := range stopTimes {
					assert.Equal(t, ScheduledStop{
						StopID:    stopTime.StopID,
						Arrival:   stopTime.Arrival,
						Departure: stopTime.Departure,
					}, entry.Schedules[j])
				}
			}
		})
	}
}

func TestScheduleForRoute_EdgeCases(t *testing.T) {
	store := loadFixtureStore(t)

	t.Run("trip without stop times is kept", func(t *testing.T) {
		schedule := store.ScheduleForRoute("R3")
		require.Len(t, schedule, 2)
		assert.Equal(t, "T9", schedule[0].TripID)
		assert.Len(t, schedule[0].Schedules, 1)
		assert.Equal(t, "T8", schedule[1].TripID)
		assert.NotNil(t, schedule[1].Schedules)
		assert.Empty(t, schedule[1].Schedules)
	})

	t.Run("unknown route", func(t *testing.T) {
		schedule := store.ScheduleForRoute("Green-B")
		assert.NotNil(t, schedule)
		assert.Empty(t, schedule)
	})
}

func TestScheduleForRoute_JSONShape(t *testing.T) {
	store := loadFixtureStore(t)

	body, err := json.Marshal(store.ScheduleForRoute("R3"))
	require.NoError(t, err)

	assert.JSONEq(t, `[
		{"trip_id":"T9","service_id":"S1","route_id":"R3","schedules":[
			{"stop_id":"STOP_D","arrival_time":"07:00:00","departure_time":"07:00:00"}
		]},
		{"trip_id":"T8","service_id":"S2","route_id":"R3","schedules":[]}
	]`, string(body))

	body, err = json.Marshal(store.ScheduleForRoute("missing"))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(body))
}

func syntheticStore(routes, tripsPerRoute, stopsPerTrip int) *Store {
	trips := make([]Trip, 0, routes*tripsPerRoute)
	stopTimes := make([]StopTime, 0, routes*tripsPerRoute*stopsPerTrip)
	for r := 0; r < routes; r++ {
		for tr := 0; tr < tripsPerRoute; tr++ {
			tripID := fmt.Sprintf("R%d-T%d", r, tr)
			trips = append(trips, Trip{TripID: tripID, RouteID: fmt.Sprintf("R%d", r), ServiceID: "WKDY"})
			for s := 0; s < stopsPerTrip; s++ {
				stopTimes = append(stopTimes, StopTime{
					TripID:    tripID,
					StopID:    fmt.Sprintf("S%d", s),
					Arrival:   "08:00:00",
					Departure: "08:00:30",
				})
			}
		}
	}
	return BuildStore(trips, stopTimes)
}

func BenchmarkScheduleForRoute(b *testing.B) {
	store := syntheticStore(30, 200, 20)
	routeIDs := store.RouteIDs()
	b.ResetTimer()

	for n := 0; n < b.N; n++ {
		for _, routeID := range routeIDs {
			store.ScheduleForRoute(routeID)
		}
	}
}

func BenchmarkBuildStore(b *testing.B) {
	source := syntheticStore(30, 200, 20)
	trips := source.trips
	stopTimes := source.stopTimes
	b.ResetTimer()

	for n := 0; n < b.N; n++ {
		BuildStore(trips, stopTimes)
	}
}
