// Package drivers explains big movers. For a customer whose pace change
// crossed the big-mover cut, it fetches the per-service revenue breakdown
// from the primary warehouse and reduces it to one line naming the service
// with the largest absolute month-over-month delta.
//
// There is no fallback source for breakdowns: with a degraded or absent
// primary session the extractor simply reports nothing.
package drivers
