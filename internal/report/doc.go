// Package report renders the run's results into the single text report the
// notifier delivers, and persists each report as an on-disk artifact. The
// artifact is written before any delivery attempt, so a webhook failure never
// discards a completed computation.
package report
