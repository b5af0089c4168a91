package revenue

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pacewatch/pacewatch/internal/config"
	"github.com/pacewatch/pacewatch/internal/fetch"
	"github.com/pacewatch/pacewatch/pkg/types"
)

var acme = types.CustomerRef{Name: "acme", QueryKey: "ACME-001", DisplayName: "Acme Corp"}

func testFetch() *fetch.Client {
	return fetch.New(fetch.Options{MaxAttempts: 1, RatePerSec: 1000})
}

func primaryFor(t *testing.T, url string) *PrimaryClient {
	t.Helper()
	t.Setenv("REV_TEST_SECRET", "hunter2")
	p := NewPrimary(config.PrimaryConfig{
		Endpoint:  url,
		Site:      "main",
		Username:  "svc",
		SecretEnv: "REV_TEST_SECRET",
	}, testFetch())
	if p == nil {
		t.Fatal("NewPrimary returned nil for credentialed config")
	}
	return p
}

func fallbackFor(url string) *FallbackClient {
	return NewFallback(config.FallbackConfig{Endpoint: url}, testFetch())
}

func TestSignIn(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/session" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		var req map[string]string
		json.NewDecoder(r.Body).Decode(&req)
		if req["name"] != "svc" || req["secret"] != "hunter2" || req["site"] != "main" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"token": "tok-1", "site_id": "site-9"})
	}))
	defer srv.Close()

	sess, err := primaryFor(t, srv.URL).SignIn(context.Background())
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	if sess.Token != "tok-1" || sess.SiteID != "site-9" {
		t.Errorf("session = %+v", sess)
	}
}

func TestSignIn_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	if _, err := primaryFor(t, srv.URL).SignIn(context.Background()); err == nil {
		t.Fatal("expected error on rejected credentials")
	}
}

func TestMonthlyRevenue_SelectsRowByMonthLabel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-Session-Token"); got != "tok-1" {
			t.Errorf("session token: got %q", got)
		}
		// July first: position must not decide row selection.
		w.Write([]byte(`{"rows":[
			{"month":"2026-07","revenue":"$393,000"},
			{"month":"2026-08","revenue":"$425,000"},
			{"month":"2026-06","revenue":510000}
		]}`))
	}))
	defer srv.Close()

	p := primaryFor(t, srv.URL)
	sess := &Session{Token: "tok-1", SiteID: "site-9"}

	amt, ok := p.MonthlyRevenue(context.Background(), sess, "ACME-001", types.YearMonth{Year: 2026, Month: time.August})
	if !ok {
		t.Fatal("expected resolved amount")
	}
	if amt.String() != "425000" {
		t.Errorf("amount = %s, want 425000 (row for 2026-08, not first row)", amt)
	}

	// Numeric JSON cells parse too.
	amt, ok = p.MonthlyRevenue(context.Background(), sess, "ACME-001", types.YearMonth{Year: 2026, Month: time.June})
	if !ok || amt.String() != "510000" {
		t.Errorf("june amount = %s ok=%v, want 510000", amt, ok)
	}

	// Month absent from the table → not resolved.
	if _, ok := p.MonthlyRevenue(context.Background(), sess, "ACME-001", types.YearMonth{Year: 2026, Month: time.January}); ok {
		t.Error("expected ok=false for month missing from table")
	}
}

func TestServiceBreakdown_DropsUnparseableRows(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"rows":[
			{"service":"Compute","current":"100,000","prior":"160,000"},
			{"service":"Storage","current":"n/a","prior":"5,000"},
			{"service":"Network","current":"42,000","prior":"40,000"}
		]}`))
	}))
	defer srv.Close()

	p := primaryFor(t, srv.URL)
	rows, ok := p.ServiceBreakdown(context.Background(), &Session{Token: "t"}, "ACME-001", types.YearMonth{Year: 2026, Month: time.August})
	if !ok {
		t.Fatal("expected breakdown rows")
	}
	if len(rows) != 2 {
		t.Fatalf("rows: got %d, want 2 (unparseable row dropped)", len(rows))
	}
	if rows[0].Service != "Compute" || rows[1].Service != "Network" {
		t.Errorf("rows = %+v", rows)
	}
}

func TestResolver_DegradedSessionNeverQueriesPrimary(t *testing.T) {
	var primaryQueries int
	primarySrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		primaryQueries++
		w.Write([]byte(`{"rows":[]}`))
	}))
	defer primarySrv.Close()

	fallbackSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{
			"answer": "Acme Corp booked $61,000 in August 2026.",
		})
	}))
	defer fallbackSrv.Close()

	// Sign-in failed: session is nil even though a primary client exists.
	r := NewResolver(primaryFor(t, primarySrv.URL), fallbackFor(fallbackSrv.URL), nil)
	res := r.Resolve(context.Background(), acme, types.YearMonth{Year: 2026, Month: time.August})

	if primaryQueries != 0 {
		t.Errorf("primary queried %d times, want 0 on degraded session", primaryQueries)
	}
	if res.Source != types.SourceFallback {
		t.Errorf("source = %s, want fallback", res.Source)
	}
	if !res.Resolved || res.Amount.String() != "61000" {
		t.Errorf("result = %+v", res)
	}
}

func TestResolver_PrimaryWins(t *testing.T) {
	primarySrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"rows":[{"month":"2026-08","revenue":"425,000"}]}`))
	}))
	defer primarySrv.Close()

	fallbackSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("fallback must not be consulted when primary resolves")
	}))
	defer fallbackSrv.Close()

	r := NewResolver(primaryFor(t, primarySrv.URL), fallbackFor(fallbackSrv.URL), &Session{Token: "t"})
	res := r.Resolve(context.Background(), acme, types.YearMonth{Year: 2026, Month: time.August})

	if res.Source != types.SourcePrimary || !res.Resolved {
		t.Fatalf("result = %+v", res)
	}
	if res.Amount.String() != "425000" {
		t.Errorf("amount = %s", res.Amount)
	}
}

func TestResolver_Unresolved(t *testing.T) {
	fallbackSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{
			"answer": "I could not find revenue data for that customer.",
		})
	}))
	defer fallbackSrv.Close()

	r := NewResolver(nil, fallbackFor(fallbackSrv.URL), nil)
	res := r.Resolve(context.Background(), acme, types.YearMonth{Year: 2026, Month: time.August})

	if res.Resolved {
		t.Fatal("expected unresolved result")
	}
	if !res.Amount.IsZero() {
		t.Errorf("amount = %s, want 0", res.Amount)
	}
	if res.Source != types.SourceFallback {
		t.Errorf("source = %s", res.Source)
	}
}
