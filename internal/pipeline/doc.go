// Package pipeline orchestrates one reporting run: resolve each customer's
// current and prior-month revenue, classify the pace, explain big movers,
// merge the watch-list signals, persist the rendered report and hand it to
// the webhook notifier.
//
// Customers are processed sequentially so retry backoff, the shared
// warehouse session and upstream rate limits stay predictable. The session
// is established once at the start of the run and passed by reference; a
// sign-in failure degrades the whole run to fallback-only.
package pipeline
