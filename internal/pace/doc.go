// Package pace classifies a customer's month-to-date revenue against a
// prorated prior-month baseline.
//
// The baseline scales the full prior-month total down to the elapsed day of
// the current month. The percent change against that baseline is compared
// unrounded against the growth and decline thresholds (first match wins:
// growing, then declining, then normal); rounding happens once, for display.
// A zero baseline with non-zero current revenue yields the sentinel
// UnboundedGrowthPct instead of a division.
//
// Classify is a pure function: identical inputs always produce identical
// reports.
package pace
