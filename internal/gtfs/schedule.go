package gtfs

// ScheduledStop is one stop of a trip as it appears in a schedule response.
type ScheduledStop struct {
	StopID    string `json:"stop_id"`
	Arrival   string `json:"arrival_time"`
	Departure string `json:"departure_time"`
}

// TripSchedule is a trip with its stop times nested underneath.
type TripSchedule struct {
	TripID    string          `json:"trip_id"`
	ServiceID string          `json:"service_id"`
	RouteID   string          `json:"route_id"`
	Schedules []ScheduledStop `json:"schedules"`
}

// ScheduleForRoute joins every trip of routeID with its stop times. Trips keep
// trips-file order and stops keep stop-times-file order. A trip with no stop
// times is kept with an empty Schedules list; an unknown route yields an
// empty result.
func (s *Store) ScheduleForRoute(routeID string) []TripSchedule {
	tripIxs := s.tripsIxByRoute[routeID]
	result := make([]TripSchedule, 0, len(tripIxs))

	for _, tripIx := range tripIxs {
		trip := s.trips[tripIx]
		stopTimeIxs := s.stopTimesIxByTrip[trip.TripID]

		entry := TripSchedule{
			TripID:    trip.TripID,
			ServiceID: trip.ServiceID,
			RouteID:   trip.RouteID,
			Schedules: make([]ScheduledStop, 0, len(stopTimeIxs)),
		}
		for _, stopTimeIx := range stopTimeIxs {
			stopTime := s.stopTimes[stopTimeIx]
			entry.Schedules = append(entry.Schedules, ScheduledStop{
				StopID:    stopTime.StopID,
				Arrival:   stopTime.Arrival,
				Departure: stopTime.Departure,
			})
		}

		result = append(result, entry)
	}

	return result
}
