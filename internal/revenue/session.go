package revenue

// Session is the run-scoped authentication state for the primary warehouse.
// Created once per run by the orchestrator and read-only afterwards; every
// resolver call shares the same instance. A nil Session means the run is
// degraded to fallback-only.
type Session struct {
	Token  string
	SiteID string
}
