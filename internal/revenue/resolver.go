package revenue

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/pacewatch/pacewatch/internal/money"
	"github.com/pacewatch/pacewatch/pkg/types"
)

// Resolver resolves one customer's revenue for one month, trying the primary
// warehouse first and degrading to the assistant fallback.
type Resolver struct {
	primary  *PrimaryClient // nil when no credential is configured
	fallback *FallbackClient
	session  *Session // nil when sign-in failed; shared, read-only
}

// NewResolver wires the resolver for one run. session may be nil (degraded
// run); primary may be nil (no credential configured). Either way the
// resolver quietly becomes fallback-only.
func NewResolver(primary *PrimaryClient, fallback *FallbackClient, session *Session) *Resolver {
	return &Resolver{primary: primary, fallback: fallback, session: session}
}

// Resolve returns the customer's revenue for month. It never fails hard: when
// neither source yields a figure the result carries Resolved=false and a zero
// amount, which downstream treats as zero while reporting the customer as
// unresolved.
func (r *Resolver) Resolve(ctx context.Context, customer types.CustomerRef, month types.YearMonth) types.RevenueResult {
	if r.primary != nil && r.session != nil {
		if amt, ok := r.primary.MonthlyRevenue(ctx, r.session, customer.QueryKey, month); ok {
			return types.RevenueResult{
				Amount:   clampNonNegative(customer.Name, amt),
				Source:   types.SourcePrimary,
				Resolved: true,
			}
		}
		slog.Debug("resolver: primary yielded no figure — trying fallback",
			"customer", customer.Name, "month", month.String())
	}

	if text, ok := r.fallback.Ask(ctx, revenuePrompt(customer, month)); ok {
		if amt, found := money.Extract(text); found {
			return types.RevenueResult{
				Amount:   clampNonNegative(customer.Name, amt),
				Source:   types.SourceFallback,
				Resolved: true,
			}
		}
		slog.Warn("resolver: fallback answer carried no figure",
			"customer", customer.Name, "month", month.String())
	}

	return types.RevenueResult{
		Amount:   decimal.Zero,
		Source:   types.SourceFallback,
		Resolved: false,
	}
}

// clampNonNegative enforces the non-negative amount invariant. Credits can
// push a source figure below zero; those months count as zero revenue.
func clampNonNegative(customer string, amt decimal.Decimal) decimal.Decimal {
	if amt.Sign() < 0 {
		slog.Warn("resolver: negative revenue clamped to zero",
			"customer", customer, "amount", amt.String())
		return decimal.Zero
	}
	return amt
}
