// Package types defines the shared domain types used across the pipeline.
// These are the canonical in-memory representations of customers, resolved
// revenue, pace classifications and watch-list entries, separate from any
// upstream wire format.
package types
