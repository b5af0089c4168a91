// Package watch merges independent attention signals into the run's watch
// list: escalation volume over the trailing seven calendar days, stale open
// tickets by approximate business-day age, and steep revenue drops from the
// pace reports. Signals are never deduplicated across types — a customer in
// trouble on several fronts appears once per reason.
package watch
