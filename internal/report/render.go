package report

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/pacewatch/pacewatch/internal/pace"
	"github.com/pacewatch/pacewatch/pkg/types"
)

// Render formats the report as plain text. Pace lines keep customer-list
// order; big movers and watch entries follow in their own sections.
func Render(r *types.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Revenue pace report for %s (through day %d)\n", r.Month.Label(), r.DayOfMonth)
	fmt.Fprintf(&b, "run %s\n", r.RunID)

	b.WriteString("\nPACE\n")
	if len(r.Paces) == 0 {
		b.WriteString("  no customers resolved\n")
	}
	for _, p := range r.Paces {
		b.WriteString("  " + paceLine(p) + "\n")
	}

	if len(r.Drivers) > 0 {
		b.WriteString("\nBIG MOVERS\n")
		for _, d := range r.Drivers {
			fmt.Fprintf(&b, "  %s: %s\n", d.Customer, d.Description)
		}
	}

	if len(r.Watch) > 0 {
		b.WriteString("\nWATCH LIST\n")
		for _, w := range r.Watch {
			fmt.Fprintf(&b, "  %s [%s] %s\n", w.CustomerName, w.Reason, w.Detail)
		}
	}

	if len(r.Unresolved) > 0 {
		b.WriteString("\nUNRESOLVED\n")
		for _, name := range r.Unresolved {
			fmt.Fprintf(&b, "  %s: no revenue figure from either source, treated as zero\n", name)
		}
	}

	return b.String()
}

func paceLine(p types.PaceReport) string {
	detail := fmt.Sprintf("%s, %s", pctLabel(p), p.SubLabel)
	if p.SubLabel == types.SubCliff {
		// The cliff label carries the absolute prior-month figure for context.
		detail += fmt.Sprintf(", prior month %s", Amount(p.Prior))
	}
	return fmt.Sprintf("%s: %s MTD vs %s baseline (%s)",
		p.Customer.Display(), Amount(p.Current), Amount(p.Baseline), detail)
}

func pctLabel(p types.PaceReport) string {
	if p.ChangePct == pace.UnboundedGrowthPct {
		return "new revenue, no prior baseline"
	}
	return fmt.Sprintf("%+d%%", p.RoundedPct())
}

// Amount renders a dollar figure with thousands separators, rounded to whole
// dollars.
func Amount(d decimal.Decimal) string {
	s := d.StringFixed(0)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)

	out := "$" + strings.Join(parts, ",")
	if neg {
		out = "-" + out
	}
	return out
}
