// Package tracker reads escalation and ticket records from the issue-tracker
// providers. Both endpoints return read-only JSON arrays; the client does no
// interpretation beyond decoding — windowing and staleness rules live in the
// watch aggregator.
package tracker
