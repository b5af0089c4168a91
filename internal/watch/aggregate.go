package watch

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/pacewatch/pacewatch/internal/tracker"
	"github.com/pacewatch/pacewatch/pkg/types"
)

// escalationWindowDays is the trailing calendar window counted for the
// escalation-volume signal.
const escalationWindowDays = 7

// maxExampleSummaries caps how many escalation summaries an entry carries.
const maxExampleSummaries = 3

// Aggregator merges escalation, ticket and steep-drop signals into watch
// entries.
type Aggregator struct {
	// EscalationThreshold is the trailing-window event count at which a
	// customer is flagged.
	EscalationThreshold int

	// StaleTicketDays is the minimum business-day age of an open ticket.
	StaleTicketDays int

	// SteepDropPct flags pace reports at or below this change percent.
	// Distinct from, and typically well below, the decline threshold.
	SteepDropPct float64

	// Now is injectable for deterministic tests. Defaults to time.Now.
	Now func() time.Time
}

// Aggregate builds the watch list from the three signal sources.
// Entry order is customers-as-seen per signal type; callers treat the
// collection as unordered.
func (a *Aggregator) Aggregate(escs []tracker.Escalation, tickets []tracker.Ticket, paces []types.PaceReport) []types.WatchEntry {
	now := time.Now()
	if a.Now != nil {
		now = a.Now()
	}

	var entries []types.WatchEntry
	entries = append(entries, a.escalationEntries(escs, now)...)
	entries = append(entries, a.ticketEntries(tickets, now)...)
	entries = append(entries, a.steepDropEntries(paces)...)
	return entries
}

func (a *Aggregator) escalationEntries(escs []tracker.Escalation, now time.Time) []types.WatchEntry {
	cutoff := now.AddDate(0, 0, -escalationWindowDays)

	counts := make(map[string]int)
	summaries := make(map[string][]string)
	for _, e := range escs {
		if e.Date.Before(cutoff) {
			continue
		}
		counts[e.Customer]++
		if len(summaries[e.Customer]) < maxExampleSummaries && e.Summary != "" {
			summaries[e.Customer] = append(summaries[e.Customer], e.Summary)
		}
	}

	customers := make([]string, 0, len(counts))
	for c := range counts {
		customers = append(customers, c)
	}
	sort.Strings(customers) // deterministic output for a map-derived signal

	var entries []types.WatchEntry
	for _, c := range customers {
		if counts[c] < a.EscalationThreshold {
			continue
		}
		detail := fmt.Sprintf("%d escalations in the last %d days", counts[c], escalationWindowDays)
		if ex := summaries[c]; len(ex) > 0 {
			detail += ": " + strings.Join(ex, "; ")
		}
		entries = append(entries, types.WatchEntry{
			CustomerName: c,
			Reason:       types.ReasonEscalations,
			Detail:       detail,
		})
	}
	return entries
}

func (a *Aggregator) ticketEntries(tickets []tracker.Ticket, now time.Time) []types.WatchEntry {
	var entries []types.WatchEntry
	for _, t := range tickets {
		if !t.Open() {
			continue
		}
		age := BusinessDayAge(t.Created.Time, now)
		if age < a.StaleTicketDays {
			continue
		}
		entries = append(entries, types.WatchEntry{
			CustomerName: t.Customer,
			Reason:       types.ReasonStaleTicket,
			Detail:       fmt.Sprintf("ticket %s open ~%d business days (status: %s)", t.ID, age, t.Status),
		})
	}
	return entries
}

func (a *Aggregator) steepDropEntries(paces []types.PaceReport) []types.WatchEntry {
	var entries []types.WatchEntry
	for _, p := range paces {
		if p.ChangePct > a.SteepDropPct {
			continue
		}
		entries = append(entries, types.WatchEntry{
			CustomerName: p.Customer.Name,
			Reason:       types.ReasonSteepDrop,
			Detail:       fmt.Sprintf("revenue pace %d%% vs prorated baseline", p.RoundedPct()),
		})
	}
	return entries
}

// BusinessDayAge approximates the business-day age of created as of now:
// floor(calendar_days * 5 / 7). Non-positive spans yield 0.
func BusinessDayAge(created, now time.Time) int {
	days := int(now.Sub(created).Hours() / 24)
	if days <= 0 {
		return 0
	}
	return days * 5 / 7
}
