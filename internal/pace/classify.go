package pace

import (
	"github.com/shopspring/decimal"

	"github.com/pacewatch/pacewatch/pkg/types"
)

// UnboundedGrowthPct is the sentinel percent change reported when the
// baseline is zero but current revenue is not: growth from nothing has no
// meaningful percentage.
const UnboundedGrowthPct = 999.0

// BigMoverPct is the absolute rounded percent change beyond which a customer
// counts as a big mover: the surging/cliff sub-labels apply and a driver
// breakdown is fetched.
const BigMoverPct = 50

// Thresholds holds the classification cutoffs.
type Thresholds struct {
	// GrowthPct classifies as growing at or above this change percent.
	GrowthPct float64

	// DeclinePct is a positive magnitude; at or below its negation the
	// customer is declining.
	DeclinePct float64
}

// Baseline prorates the full prior-month revenue to the elapsed day of the
// current month. Zero when prior or the day counts are non-positive.
// For fixed prior and daysInPriorMonth it is monotonic in dayOfMonth.
func Baseline(prior decimal.Decimal, dayOfMonth, daysInPriorMonth int) decimal.Decimal {
	if prior.Sign() <= 0 || dayOfMonth <= 0 || daysInPriorMonth <= 0 {
		return decimal.Zero
	}
	return prior.
		Mul(decimal.NewFromInt(int64(dayOfMonth))).
		Div(decimal.NewFromInt(int64(daysInPriorMonth)))
}

// Classify compares current month-to-date revenue against the prorated
// prior-month baseline and labels the change.
func Classify(customer types.CustomerRef, current, prior decimal.Decimal, dayOfMonth, daysInPriorMonth int, th Thresholds) types.PaceReport {
	baseline := Baseline(prior, dayOfMonth, daysInPriorMonth)

	var changePct float64
	switch {
	case baseline.Sign() > 0:
		changePct, _ = current.Sub(baseline).
			Div(baseline).
			Mul(decimal.NewFromInt(100)).
			Float64()
	case current.Sign() > 0:
		changePct = UnboundedGrowthPct
	default:
		changePct = 0
	}

	// First match wins; thresholds compare against the unrounded value.
	var class types.Classification
	var sub string
	switch {
	case changePct >= th.GrowthPct:
		class = types.PaceGrowing
		if changePct >= BigMoverPct {
			sub = types.SubSurging
		} else {
			sub = types.SubOnPace
		}
	case changePct <= -th.DeclinePct:
		class = types.PaceDeclining
		if changePct <= -BigMoverPct {
			// The cliff label carries the absolute prior-month figure for
			// context; the report renderer reads it from Prior.
			sub = types.SubCliff
		} else {
			sub = types.SubSignificant
		}
	default:
		class = types.PaceNormal
		sub = types.SubNormal
	}

	return types.PaceReport{
		Customer:       customer,
		Current:        current,
		Prior:          prior,
		Baseline:       baseline,
		ChangePct:      changePct,
		Classification: class,
		SubLabel:       sub,
	}
}
