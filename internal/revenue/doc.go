// Package revenue resolves a customer's revenue for a month from the primary
// warehouse API, falling back to the natural-language assistant source.
//
// The warehouse requires a sign-in that yields a run-scoped Session (token +
// site id). The orchestrator signs in once per run and passes the session by
// reference into the Resolver; a failed sign-in degrades the whole run to
// fallback-only and is never retried per customer.
//
// Resolution order per (customer, month) query:
//  1. primary monthly-revenue query, selecting the response row whose month
//     label matches the requested month
//  2. assistant free-text query, taking the first currency-like figure
//  3. unresolved: amount zero, distinguishable downstream from a genuine
//     zero-revenue customer
package revenue
