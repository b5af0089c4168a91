package tracker

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/pacewatch/pacewatch/internal/config"
	"github.com/pacewatch/pacewatch/internal/fetch"
)

// Date is a calendar date as the providers serialize it ("2026-08-20",
// with RFC 3339 timestamps accepted as well).
type Date struct {
	time.Time
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	if t, err := time.Parse("2006-01-02", s); err == nil {
		d.Time = t
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// Escalation is one recorded escalation event for a customer.
type Escalation struct {
	Customer string `json:"customer"`
	Date     Date   `json:"date"`
	Summary  string `json:"summary"`
}

// Ticket is one support/engineering ticket.
type Ticket struct {
	ID       string `json:"ticket_id"`
	Customer string `json:"customer"`
	Created  Date   `json:"created_date"`
	Status   string `json:"status"`
}

// Open reports whether the ticket still needs work: anything not resolved
// and not closed.
func (t Ticket) Open() bool {
	switch strings.ToLower(strings.TrimSpace(t.Status)) {
	case "resolved", "closed":
		return false
	}
	return true
}

// Client reads from the escalation and ticket providers.
type Client struct {
	cfg   config.TrackerConfig
	fetch *fetch.Client
}

// New builds a tracker client.
func New(cfg config.TrackerConfig, fc *fetch.Client) *Client {
	return &Client{cfg: cfg, fetch: fc}
}

// Escalations returns recent escalation records. An unconfigured endpoint
// yields an empty, successful result; a fetch or decode failure yields
// ok=false and the watch list simply lacks that signal for the run.
func (c *Client) Escalations(ctx context.Context) ([]Escalation, bool) {
	if c.cfg.EscalationsEndpoint == "" {
		return nil, true
	}
	body, ok := c.fetch.Get(ctx, c.cfg.EscalationsEndpoint, c.header())
	if !ok {
		return nil, false
	}
	var out []Escalation
	if err := json.Unmarshal(body, &out); err != nil {
		slog.Warn("tracker: decode escalations", "err", err)
		return nil, false
	}
	return out, true
}

// Tickets returns ticket records, open and otherwise.
func (c *Client) Tickets(ctx context.Context) ([]Ticket, bool) {
	if c.cfg.TicketsEndpoint == "" {
		return nil, true
	}
	body, ok := c.fetch.Get(ctx, c.cfg.TicketsEndpoint, c.header())
	if !ok {
		return nil, false
	}
	var out []Ticket
	if err := json.Unmarshal(body, &out); err != nil {
		slog.Warn("tracker: decode tickets", "err", err)
		return nil, false
	}
	return out, true
}

func (c *Client) header() http.Header {
	h := http.Header{}
	if tok := c.cfg.Token(); tok != "" {
		h.Set("Authorization", "Bearer "+tok)
	}
	return h
}
