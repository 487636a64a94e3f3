package gtfs

// Trip is a single scheduled run of a vehicle along a route.
type Trip struct {
	TripID    string `json:"trip_id"`
	RouteID   string `json:"route_id"`
	ServiceID string `json:"service_id"`
}

// StopTime is one scheduled visit of a trip to a stop. Arrival and Departure
// are kept as written in the feed ("HH:MM:SS", hours may exceed 23).
type StopTime struct {
	TripID    string `json:"trip_id"`
	StopID    string `json:"stop_id"`
	Arrival   string `json:"arrival_time"`
	Departure string `json:"departure_time"`
}
