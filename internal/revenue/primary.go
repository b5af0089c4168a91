package revenue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/pacewatch/pacewatch/internal/config"
	"github.com/pacewatch/pacewatch/internal/fetch"
	"github.com/pacewatch/pacewatch/internal/money"
	"github.com/pacewatch/pacewatch/pkg/types"
)

const sessionHeader = "X-Session-Token"

// PrimaryClient talks to the revenue warehouse API.
type PrimaryClient struct {
	cfg   config.PrimaryConfig
	fetch *fetch.Client
}

// NewPrimary builds a warehouse client. Returns nil when no usable credential
// is configured, which callers treat as "primary source absent".
func NewPrimary(cfg config.PrimaryConfig, fc *fetch.Client) *PrimaryClient {
	if !cfg.Credentialed() {
		return nil
	}
	return &PrimaryClient{cfg: cfg, fetch: fc}
}

// SignIn authenticates against the warehouse and returns the run-scoped
// session. Called once per run; a failure here degrades the run to
// fallback-only and must not be retried per customer.
func (p *PrimaryClient) SignIn(ctx context.Context) (*Session, error) {
	body, ok := p.fetch.PostJSON(ctx, p.cfg.Endpoint+"/api/session", nil, map[string]string{
		"name":   p.cfg.Username,
		"secret": p.cfg.Secret(),
		"site":   p.cfg.Site,
	})
	if !ok {
		return nil, fmt.Errorf("primary: sign-in rejected or unreachable")
	}

	var resp struct {
		Token  string `json:"token"`
		SiteID string `json:"site_id"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("primary: decode sign-in response: %w", err)
	}
	if resp.Token == "" {
		return nil, fmt.Errorf("primary: sign-in response carried no token")
	}
	return &Session{Token: resp.Token, SiteID: resp.SiteID}, nil
}

// cell accepts a JSON string or number and preserves it as text for the
// money parser.
type cell string

func (c *cell) UnmarshalJSON(b []byte) error {
	*c = cell(strings.Trim(strings.TrimSpace(string(b)), `"`))
	return nil
}

// MonthlyRevenue queries the warehouse for the customer's revenue in month.
// The response is tabular and may span several months; the row is selected by
// month label, never by position. Returns ok=false when the query failed or
// no row for the month parsed to a number.
func (p *PrimaryClient) MonthlyRevenue(ctx context.Context, sess *Session, queryKey string, month types.YearMonth) (decimal.Decimal, bool) {
	body, ok := p.query(ctx, sess, map[string]string{
		"metric":    "monthly_revenue",
		"query_key": queryKey,
	})
	if !ok {
		return decimal.Zero, false
	}

	var resp struct {
		Rows []struct {
			Month   string `json:"month"`
			Revenue cell   `json:"revenue"`
		} `json:"rows"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		slog.Warn("primary: decode revenue rows", "query_key", queryKey, "err", err)
		return decimal.Zero, false
	}

	for _, row := range resp.Rows {
		if !month.Matches(row.Month) {
			continue
		}
		if amt, ok := money.Parse(string(row.Revenue)); ok {
			return amt, true
		}
		slog.Warn("primary: unparseable revenue cell",
			"query_key", queryKey, "month", row.Month, "cell", string(row.Revenue))
	}
	return decimal.Zero, false
}

// ServiceRow is one service's revenue for the current and prior month, as
// returned by the breakdown query.
type ServiceRow struct {
	Service string
	Current decimal.Decimal
	Prior   decimal.Decimal
}

// ServiceBreakdown queries the per-service revenue split for the customer in
// month. Rows whose amounts do not parse are dropped.
func (p *PrimaryClient) ServiceBreakdown(ctx context.Context, sess *Session, queryKey string, month types.YearMonth) ([]ServiceRow, bool) {
	body, ok := p.query(ctx, sess, map[string]string{
		"metric":    "service_revenue",
		"query_key": queryKey,
		"month":     month.String(),
	})
	if !ok {
		return nil, false
	}

	var resp struct {
		Rows []struct {
			Service string `json:"service"`
			Current cell   `json:"current"`
			Prior   cell   `json:"prior"`
		} `json:"rows"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		slog.Warn("primary: decode breakdown rows", "query_key", queryKey, "err", err)
		return nil, false
	}

	rows := make([]ServiceRow, 0, len(resp.Rows))
	for _, r := range resp.Rows {
		cur, okCur := money.Parse(string(r.Current))
		pri, okPri := money.Parse(string(r.Prior))
		if !okCur || !okPri {
			continue
		}
		rows = append(rows, ServiceRow{Service: r.Service, Current: cur, Prior: pri})
	}
	return rows, len(rows) > 0
}

func (p *PrimaryClient) query(ctx context.Context, sess *Session, params map[string]string) ([]byte, bool) {
	payload := map[string]string{"site_id": sess.SiteID}
	for k, v := range params {
		payload[k] = v
	}
	header := http.Header{}
	header.Set(sessionHeader, sess.Token)
	return p.fetch.PostJSON(ctx, p.cfg.Endpoint+"/api/query", header, payload)
}
