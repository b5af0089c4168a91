package report

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pacewatch/pacewatch/internal/pace"
	"github.com/pacewatch/pacewatch/pkg/types"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestAmount(t *testing.T) {
	tests := []struct {
		in   decimal.Decimal
		want string
	}{
		{d(0), "$0"},
		{d(425), "$425"},
		{d(3700), "$3,700"},
		{d(425000), "$425,000"},
		{d(1250000), "$1,250,000"},
		{d(-61000), "-$61,000"},
		{decimal.NewFromFloat(364285.71), "$364,286"},
	}
	for _, tt := range tests {
		if got := Amount(tt.in); got != tt.want {
			t.Errorf("Amount(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func sampleReport() *types.Report {
	return &types.Report{
		RunID:       "0f9d8c7b-1234-5678-9abc-def012345678",
		Month:       types.YearMonth{Year: 2026, Month: time.August},
		DayOfMonth:  25,
		GeneratedAt: time.Date(2026, 8, 25, 9, 0, 0, 0, time.UTC),
		Paces: []types.PaceReport{
			{
				Customer: types.CustomerRef{Name: "acme", DisplayName: "Acme Corp"},
				Current:  d(425000), Prior: d(680000), Baseline: d(364286),
				ChangePct: 16.67, Classification: types.PaceGrowing, SubLabel: types.SubOnPace,
			},
			{
				Customer: types.CustomerRef{Name: "globex"},
				Current:  d(3700), Prior: d(61000), Baseline: d(29516),
				ChangePct: -87.47, Classification: types.PaceDeclining, SubLabel: types.SubCliff,
			},
			{
				Customer: types.CustomerRef{Name: "newco"},
				Current:  d(100000), Prior: d(0), Baseline: d(0),
				ChangePct: pace.UnboundedGrowthPct, Classification: types.PaceGrowing, SubLabel: types.SubSurging,
			},
		},
		Drivers: []types.DriverLine{
			{Customer: "globex", Description: "Compute down $25000 month over month ($29000 → $4000)"},
		},
		Watch: []types.WatchEntry{
			{CustomerName: "globex", Reason: types.ReasonSteepDrop, Detail: "revenue pace -87% vs prorated baseline"},
		},
		Unresolved: []string{"hooli"},
	}
}

func TestRender(t *testing.T) {
	text := Render(sampleReport())

	for _, want := range []string{
		"Revenue pace report for August 2026 (through day 25)",
		"Acme Corp: $425,000 MTD vs $364,286 baseline (+17%, on pace)",
		"globex: $3,700 MTD vs $29,516 baseline (-87%, cliff, prior month $61,000)",
		"newco: $100,000 MTD vs $0 baseline (new revenue, no prior baseline, surging)",
		"BIG MOVERS",
		"globex: Compute down $25000",
		"WATCH LIST",
		"globex [needs attention] revenue pace -87%",
		"UNRESOLVED",
		"hooli: no revenue figure",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("report missing %q\n---\n%s", want, text)
		}
	}

	// Pace section preserves customer-list order.
	if strings.Index(text, "Acme Corp") > strings.Index(text, "globex:") {
		t.Error("pace lines out of customer order")
	}
}

func TestRender_EmptySections(t *testing.T) {
	r := &types.Report{
		RunID:      "run-1",
		Month:      types.YearMonth{Year: 2026, Month: time.August},
		DayOfMonth: 25,
	}
	text := Render(r)
	if strings.Contains(text, "BIG MOVERS") || strings.Contains(text, "WATCH LIST") || strings.Contains(text, "UNRESOLVED") {
		t.Errorf("empty sections must be omitted:\n%s", text)
	}
	if !strings.Contains(text, "no customers resolved") {
		t.Errorf("empty pace placeholder missing:\n%s", text)
	}
}

func TestArchive_Write(t *testing.T) {
	dir := t.TempDir()
	a := &Archive{Dir: dir + "/nested/reports"}

	path, err := a.Write("0f9d8c7b-1234", time.Date(2026, 8, 25, 9, 30, 0, 0, time.UTC), "report body")
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read artifact: %v", err)
	}
	if string(data) != "report body" {
		t.Errorf("artifact = %q", data)
	}
	if !strings.Contains(path, "pace-20260825-093000-0f9d8c7b.txt") {
		t.Errorf("artifact name = %q", path)
	}
}
