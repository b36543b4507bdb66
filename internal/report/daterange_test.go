package report

import (
	"testing"
	"time"
)

func TestFilterResolve(t *testing.T) {
	// Wednesday
	now := time.Date(2026, 10, 14, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		name   string
		filter Filter
		label  string
	}{
		{"default today", Filter{}, "2026-10-14"},
		{"single date", Filter{Date: "2026-09-01"}, "2026-09-01"},
		{"from and to", Filter{From: "2026-10-01", To: "2026-10-05"}, "2026-10-01 to 2026-10-05"},
		{"from only", Filter{From: "2026-10-01"}, "From 2026-10-01"},
		{"to only", Filter{To: "2026-10-05"}, "Until 2026-10-05"},
		{"weekly", Filter{Weekly: true}, "2026-10-12 to 2026-10-18"},
		{"monthly", Filter{Monthly: true}, "2026-10-01 to 2026-10-31"},
		{"all", Filter{All: true, Date: "2026-09-01"}, "All dates"},
		{"date beats weekly", Filter{Date: "2026-09-01", Weekly: true}, "2026-09-01"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := tt.filter.Resolve(now)
			if err != nil {
				t.Fatalf("Resolve: %v", err)
			}
			if got := r.Label(); got != tt.label {
				t.Errorf("Label() = %q, want %q", got, tt.label)
			}
		})
	}
}

func TestFilterResolve_WeeklyOnSunday(t *testing.T) {
	sunday := time.Date(2026, 10, 18, 23, 0, 0, 0, time.UTC)
	r, err := Filter{Weekly: true}.Resolve(sunday)
	if err != nil {
		t.Fatal(err)
	}
	if got := r.Label(); got != "2026-10-12 to 2026-10-18" {
		t.Errorf("Label() = %q", got)
	}
}

func TestFilterResolve_Errors(t *testing.T) {
	now := time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC)
	for _, f := range []Filter{
		{Date: "14/10/2026"},
		{From: "yesterday"},
		{To: "2026-13-01"},
		{From: "2026-10-05", To: "2026-10-01"},
	} {
		if _, err := f.Resolve(now); err == nil {
			t.Errorf("Resolve(%+v): expected error", f)
		}
	}
}

func TestDateRangeContains(t *testing.T) {
	r, err := Filter{From: "2026-10-01", To: "2026-10-05"}.Resolve(time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		at   time.Time
		want bool
	}{
		{time.Date(2026, 9, 30, 23, 59, 59, 0, time.UTC), false},
		{time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC), true},
		{time.Date(2026, 10, 5, 23, 59, 59, 0, time.UTC), true},
		{time.Date(2026, 10, 6, 0, 0, 0, 0, time.UTC), false},
		// 2026-10-06 01:00 in UTC+2 is still 2026-10-05 in UTC
		{time.Date(2026, 10, 6, 1, 0, 0, 0, time.FixedZone("CEST", 2*3600)), true},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.at); got != tt.want {
			t.Errorf("Contains(%s) = %v, want %v", tt.at, got, tt.want)
		}
	}

	if !(DateRange{}).Contains(time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Error("open range should contain everything")
	}
}
