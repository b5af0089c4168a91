package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/pacewatch/pacewatch/internal/config"
	"github.com/pacewatch/pacewatch/internal/drivers"
	"github.com/pacewatch/pacewatch/internal/fetch"
	"github.com/pacewatch/pacewatch/internal/notify"
	"github.com/pacewatch/pacewatch/internal/pace"
	"github.com/pacewatch/pacewatch/internal/report"
	"github.com/pacewatch/pacewatch/internal/revenue"
	"github.com/pacewatch/pacewatch/internal/tracker"
	"github.com/pacewatch/pacewatch/internal/watch"
	"github.com/pacewatch/pacewatch/pkg/types"
)

// Pipeline runs the revenue pace workflow against a validated config.
type Pipeline struct {
	cfg   *config.Config
	fetch *fetch.Client

	// now is injectable for deterministic tests. Defaults to time.Now.
	now func() time.Time
}

// New builds a Pipeline and its shared retry client from cfg.
func New(cfg *config.Config) *Pipeline {
	return &Pipeline{
		cfg: cfg,
		fetch: fetch.New(fetch.Options{
			ConnectTimeout: cfg.HTTP.ConnectTimeout,
			RequestTimeout: cfg.HTTP.RequestTimeout,
			BaseDelay:      cfg.HTTP.RetryBaseDelay,
			MaxAttempts:    cfg.HTTP.MaxAttempts,
			RatePerSec:     cfg.HTTP.RatePerSec,
		}),
		now: time.Now,
	}
}

// Run executes one full reporting cycle and returns the assembled report.
// Upstream failures degrade individual sections; only a cancelled context
// aborts the run.
func (p *Pipeline) Run(ctx context.Context) (*types.Report, error) {
	start := p.now()
	runID := uuid.NewString()

	month := types.YearMonthOf(start)
	day := start.Day()
	prior := month.Prev()
	daysInPrior := prior.Days()

	slog.Info("pipeline: run starting",
		"run", runID, "month", month.String(), "day", day,
		"customers", len(p.cfg.Customers))

	// Run-scoped warehouse session: one sign-in, shared read-only. A failure
	// here is logged once and never retried per customer.
	primary := revenue.NewPrimary(p.cfg.Primary, p.fetch)
	var session *revenue.Session
	if primary == nil {
		slog.Info("pipeline: no primary credential — resolving fallback-only")
	} else {
		sess, err := primary.SignIn(ctx)
		if err != nil {
			slog.Warn("pipeline: primary sign-in failed — degrading run to fallback-only", "err", err)
		} else {
			session = sess
		}
	}

	resolver := revenue.NewResolver(primary, revenue.NewFallback(p.cfg.Fallback, p.fetch), session)
	extractor := drivers.New(primary, session)
	thresholds := pace.Thresholds{
		GrowthPct:  p.cfg.Run.GrowthThresholdPct,
		DeclinePct: p.cfg.Run.DeclineThresholdPct,
	}

	rep := &types.Report{
		RunID:       runID,
		Month:       month,
		DayOfMonth:  day,
		GeneratedAt: start,
	}

	for _, customer := range p.cfg.Refs() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		current := resolver.Resolve(ctx, customer, month)
		previous := resolver.Resolve(ctx, customer, prior)

		pr := pace.Classify(customer, current.Amount, previous.Amount, day, daysInPrior, thresholds)
		pr.Unresolved = !current.Resolved || !previous.Resolved
		if pr.Unresolved {
			rep.Unresolved = append(rep.Unresolved, customer.Name)
		}
		rep.Paces = append(rep.Paces, pr)

		slog.Info("pipeline: customer classified",
			"run", runID, "customer", customer.Name,
			"classification", string(pr.Classification), "sub", pr.SubLabel,
			"change_pct", pr.RoundedPct(),
			"current_source", string(current.Source), "prior_source", string(previous.Source),
			"unresolved", pr.Unresolved)

		// Big movers get a breakdown line. Unresolved customers are skipped:
		// their swing is a data gap, not a revenue move.
		if !pr.Unresolved && abs(pr.RoundedPct()) > pace.BigMoverPct {
			if line, ok := extractor.Explain(ctx, customer, month); ok {
				rep.Drivers = append(rep.Drivers, line)
			}
		}
	}

	trk := tracker.New(p.cfg.Tracker, p.fetch)
	escs, ok := trk.Escalations(ctx)
	if !ok {
		slog.Warn("pipeline: escalation provider unavailable — watch list lacks escalation signals", "run", runID)
	}
	tickets, ok := trk.Tickets(ctx)
	if !ok {
		slog.Warn("pipeline: ticket provider unavailable — watch list lacks ticket signals", "run", runID)
	}

	agg := &watch.Aggregator{
		EscalationThreshold: p.cfg.Run.EscalationThreshold,
		StaleTicketDays:     p.cfg.Run.StaleTicketDays,
		SteepDropPct:        p.cfg.Run.SteepDropPct,
		Now:                 p.now,
	}
	rep.Watch = agg.Aggregate(escs, tickets, rep.Paces)

	text := report.Render(rep)

	// Persist before delivery: a webhook outage must not discard the run.
	archive := &report.Archive{Dir: p.cfg.Run.ArtifactDir}
	if path, err := archive.Write(runID, start, text); err != nil {
		slog.Error("pipeline: artifact write failed", "run", runID, "err", err)
	} else {
		slog.Info("pipeline: artifact written", "run", runID, "path", path)
	}

	delivered := notify.New(p.cfg.Notify, p.fetch).Deliver(ctx, text)
	if delivered == 0 && len(p.cfg.Notify.Webhooks) > 0 {
		slog.Error("pipeline: no webhook delivery succeeded — report available in artifact dir", "run", runID)
	}

	slog.Info("pipeline: run complete",
		"run", runID,
		"duration", time.Since(start).String(),
		"customers", len(rep.Paces),
		"big_movers", len(rep.Drivers),
		"watch_entries", len(rep.Watch),
		"unresolved", len(rep.Unresolved),
		"delivered", delivered)

	return rep, nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
