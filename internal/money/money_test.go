package money

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"425000", "425000", true},
		{"425,000", "425000", true},
		{"$425,000", "425000", true},
		{"$ 425,000.75", "425000.75", true},
		{"  £61,000  ", "61000", true},
		{"€3700", "3700", true},
		{"-1,250.50", "-1250.5", true},
		{"$-12.50", "-12.5", true},
		{"-$7", "-7", true},
		{"0", "0", true},
		{"", "", false},
		{"n/a", "", false},
		{"$", "", false},
		{"revenue", "", false},
	}
	for _, tt := range tests {
		got, ok := Parse(tt.in)
		if ok != tt.wantOK {
			t.Errorf("Parse(%q) ok = %v, want %v", tt.in, ok, tt.wantOK)
			continue
		}
		if ok && got.String() != tt.want {
			t.Errorf("Parse(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestExtract(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		want   string
		wantOK bool
	}{
		{
			name: "symbol beats year in prose",
			in:   "Acme's revenue for August 2026 was $425,000 across all services.",
			want: "425000", wantOK: true,
		},
		{
			name: "thousands separator without symbol",
			in:   "MTD total: 393,000 (prior month 510,000)",
			want: "393000", wantOK: true,
		},
		{
			name: "fractional token without separator",
			in:   "billed 61000.25 this period",
			want: "61000.25", wantOK: true,
		},
		{
			name: "bare integer as last resort",
			in:   "total 3700",
			want: "3700", wantOK: true,
		},
		{
			name: "negative figure",
			in:   "net change was -$12,400 month over month",
			want: "-12400", wantOK: true,
		},
		{
			name:   "no figure at all",
			in:     "no revenue data is available for this customer",
			wantOK: false,
		},
		{
			name:   "empty",
			in:     "",
			wantOK: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Extract(tt.in)
			if ok != tt.wantOK {
				t.Fatalf("Extract ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got.String() != tt.want {
				t.Errorf("Extract = %s, want %s", got, tt.want)
			}
		})
	}
}
