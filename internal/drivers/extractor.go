package drivers

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/pacewatch/pacewatch/internal/revenue"
	"github.com/pacewatch/pacewatch/pkg/types"
)

// Extractor reduces a service-level revenue breakdown to a single
// explanatory line.
type Extractor struct {
	primary *revenue.PrimaryClient
	session *revenue.Session
}

// New wires the extractor for one run. Either argument may be nil, in which
// case Explain always reports nothing.
func New(primary *revenue.PrimaryClient, session *revenue.Session) *Extractor {
	return &Extractor{primary: primary, session: session}
}

// Explain fetches the customer's service breakdown for month and returns a
// line for the service with the largest absolute revenue delta.
func (e *Extractor) Explain(ctx context.Context, customer types.CustomerRef, month types.YearMonth) (types.DriverLine, bool) {
	if e.primary == nil || e.session == nil {
		return types.DriverLine{}, false
	}

	rows, ok := e.primary.ServiceBreakdown(ctx, e.session, customer.QueryKey, month)
	if !ok {
		return types.DriverLine{}, false
	}

	var top revenue.ServiceRow
	topDelta := decimal.Zero
	found := false
	for _, row := range rows {
		delta := row.Current.Sub(row.Prior).Abs()
		if !found || delta.GreaterThan(topDelta) {
			top, topDelta, found = row, delta, true
		}
	}
	if !found {
		return types.DriverLine{}, false
	}

	return types.DriverLine{
		Customer:    customer.Name,
		Description: describe(top),
	}, true
}

func describe(row revenue.ServiceRow) string {
	delta := row.Current.Sub(row.Prior)
	direction := "up"
	if delta.Sign() < 0 {
		direction = "down"
	} else if delta.Sign() == 0 {
		direction = "flat"
	}
	return fmt.Sprintf("%s %s $%s month over month ($%s → $%s)",
		row.Service, direction, delta.Abs().StringFixed(0),
		row.Prior.StringFixed(0), row.Current.StringFixed(0))
}
