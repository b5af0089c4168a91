// Package fetch provides the shared outbound HTTP client with bounded retry,
// exponential backoff and client-side rate limiting.
//
// Every network call in the pipeline — warehouse queries, assistant fallback,
// tracker reads and webhook delivery — goes through one Client so that retry
// behaviour and request rate stay predictable against the upstream APIs.
//
// Retry policy: up to MaxAttempts attempts. The first fires immediately; after
// a transport failure or a retryable status (408, 429, 5xx) the client waits
// BaseDelay, then doubles the wait for each further attempt. Other non-2xx
// statuses are caller errors and are returned immediately without retry.
// A false result means "no data", never a crash: callers degrade and move on.
package fetch
