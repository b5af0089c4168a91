// Package notify delivers the rendered report to the configured chat
// webhooks (slack | teams | generic http). Delivery goes through the shared
// retry client; a failed target is logged and skipped, never fatal — the
// report artifact has already been persisted by the time delivery starts.
package notify
