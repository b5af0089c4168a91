package types

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// CustomerRef identifies one customer under watch. Loaded once per run from
// config and immutable afterwards; identity is Name.
type CustomerRef struct {
	// Name is the internal identifier used in logs and watch entries.
	Name string

	// QueryKey is the external key the revenue sources filter by.
	QueryKey string

	// DisplayName is the human-readable name used in the rendered report.
	DisplayName string
}

// Display returns DisplayName, falling back to Name when unset.
func (c CustomerRef) Display() string {
	if c.DisplayName != "" {
		return c.DisplayName
	}
	return c.Name
}

// Source tags which revenue source produced a result.
type Source string

const (
	SourcePrimary  Source = "primary"
	SourceFallback Source = "fallback"
)

// RevenueResult is the outcome of resolving one customer's revenue for one
// month. Resolved=false means neither source yielded a figure; Amount is zero
// and downstream treats it as such, but the customer is reported separately
// from genuine zero-revenue customers.
type RevenueResult struct {
	Amount   decimal.Decimal
	Source   Source
	Resolved bool
}

// Classification labels the month-over-month revenue pace.
type Classification string

const (
	PaceGrowing   Classification = "growing"
	PaceDeclining Classification = "declining"
	PaceNormal    Classification = "normal"
)

// Display sub-labels attached to a PaceReport.
const (
	SubSurging     = "surging"
	SubOnPace      = "on pace"
	SubCliff       = "cliff"
	SubSignificant = "significant decline"
	SubNormal      = "tracking normally"
)

// PaceReport is the derived month-over-month comparison for one customer.
// Recomputed every run, never persisted.
type PaceReport struct {
	Customer CustomerRef

	// Current is month-to-date revenue for the month under report.
	Current decimal.Decimal

	// Prior is the full prior-month revenue.
	Prior decimal.Decimal

	// Baseline is Prior prorated to the elapsed day of month.
	Baseline decimal.Decimal

	// ChangePct is the unrounded percent change of Current against Baseline.
	// Holds UnboundedGrowthPct when Baseline is zero but Current is not.
	ChangePct float64

	Classification Classification
	SubLabel       string

	// Unresolved marks that one or both amounts came back unresolved and were
	// substituted with zero.
	Unresolved bool
}

// RoundedPct is ChangePct rounded to the nearest whole percent. Used for
// display and for the big-mover cutoff; threshold classification always uses
// the unrounded value.
func (p PaceReport) RoundedPct() int {
	return int(math.Round(p.ChangePct))
}

// DriverLine is a one-line explanation of what moved a big mover's revenue.
type DriverLine struct {
	Customer    string
	Description string
}

// WatchEntry flags one customer/reason pair for human attention. A customer
// may appear under several reasons; no ordering is guaranteed.
type WatchEntry struct {
	CustomerName string
	Reason       string
	Detail       string
}

// Watch entry reasons.
const (
	ReasonEscalations = "escalation volume"
	ReasonStaleTicket = "stale ticket"
	ReasonSteepDrop   = "needs attention"
)

// Report is the full output of one pipeline run. Paces preserve customer-list
// order; Drivers and Watch are unordered.
type Report struct {
	RunID       string
	Month       YearMonth
	DayOfMonth  int
	GeneratedAt time.Time

	Paces   []PaceReport
	Drivers []DriverLine
	Watch   []WatchEntry

	// Unresolved lists customers whose revenue could not be resolved from
	// either source this run.
	Unresolved []string
}
