package types

import (
	"fmt"
	"strings"
	"time"
)

// YearMonth is a calendar month in a specific year.
type YearMonth struct {
	Year  int
	Month time.Month
}

// YearMonthOf returns the YearMonth containing t.
func YearMonthOf(t time.Time) YearMonth {
	return YearMonth{Year: t.Year(), Month: t.Month()}
}

// Prev returns the month before ym, crossing year boundaries as needed.
func (ym YearMonth) Prev() YearMonth {
	if ym.Month == time.January {
		return YearMonth{Year: ym.Year - 1, Month: time.December}
	}
	return YearMonth{Year: ym.Year, Month: ym.Month - 1}
}

// Days returns the number of calendar days in the month.
func (ym YearMonth) Days() int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(ym.Year, ym.Month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// String renders the month as "2026-08".
func (ym YearMonth) String() string {
	return fmt.Sprintf("%04d-%02d", ym.Year, int(ym.Month))
}

// Label renders the month as "August 2026".
func (ym YearMonth) Label() string {
	return fmt.Sprintf("%s %d", ym.Month.String(), ym.Year)
}

// monthLabelLayouts are the label formats accepted by Matches, in the order
// they are tried. Covers the shapes seen in warehouse query responses.
var monthLabelLayouts = []string{
	"2006-01",
	"2006-01-02",
	"2006/01",
	"Jan 2006",
	"January 2006",
	"Jan-2006",
	"01/2006",
}

// Matches reports whether a free-form month label from a tabular response
// refers to this YearMonth. Matching is by parsed year+month, not by string
// equality, so "Aug 2026", "2026-08" and "2026-08-01" all match August 2026.
func (ym YearMonth) Matches(label string) bool {
	s := strings.TrimSpace(label)
	if s == "" {
		return false
	}
	for _, layout := range monthLabelLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		if t.Year() == ym.Year && t.Month() == ym.Month {
			return true
		}
	}
	return false
}
