// Package gtfs loads the trips and stop-times tables of a static GTFS feed
// into an immutable, indexed Store and answers schedule lookups against it.
//
// Both tables are read positionally: only the leading header columns
// returned by TripsHeader and StopTimesHeader are consumed, and they must
// appear in that order on the first line. Rows are split on plain commas
// unless DialectQuoted is chosen.
package gtfs
