package report

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// DateRange is an inclusive range of calendar days. A zero bound is open.
type DateRange struct {
	From time.Time
	To   time.Time
}

// Filter is the user's date selection before it is resolved against the
// current time. The first set field wins: All, Date, From/To, Weekly,
// Monthly. With nothing set the range is today.
type Filter struct {
	All     bool
	Date    string
	From    string
	To      string
	Weekly  bool
	Monthly bool
}

// Resolve turns f into a concrete range relative to now. Dates are
// interpreted in now's location.
func (f Filter) Resolve(now time.Time) (DateRange, error) {
	loc := now.Location()
	today := day(now)

	switch {
	case f.All:
		return DateRange{}, nil

	case f.Date != "":
		d, err := time.ParseInLocation(dateLayout, f.Date, loc)
		if err != nil {
			return DateRange{}, fmt.Errorf("parse date %q: %w", f.Date, err)
		}
		return DateRange{From: d, To: d}, nil

	case f.From != "" || f.To != "":
		var r DateRange
		var err error
		if f.From != "" {
			if r.From, err = time.ParseInLocation(dateLayout, f.From, loc); err != nil {
				return DateRange{}, fmt.Errorf("parse from date %q: %w", f.From, err)
			}
		}
		if f.To != "" {
			if r.To, err = time.ParseInLocation(dateLayout, f.To, loc); err != nil {
				return DateRange{}, fmt.Errorf("parse to date %q: %w", f.To, err)
			}
		}
		if !r.From.IsZero() && !r.To.IsZero() && r.From.After(r.To) {
			return DateRange{}, fmt.Errorf("from date %s is after to date %s", f.From, f.To)
		}
		return r, nil

	case f.Weekly:
		// Monday through Sunday of the current week.
		offset := (int(today.Weekday()) + 6) % 7
		monday := today.AddDate(0, 0, -offset)
		return DateRange{From: monday, To: monday.AddDate(0, 0, 6)}, nil

	case f.Monthly:
		first := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, loc)
		return DateRange{From: first, To: first.AddDate(0, 1, -1)}, nil

	default:
		return DateRange{From: today, To: today}, nil
	}
}

// Contains reports whether t falls on a day inside the range.
func (r DateRange) Contains(t time.Time) bool {
	loc := time.Local
	if !r.From.IsZero() {
		loc = r.From.Location()
	} else if !r.To.IsZero() {
		loc = r.To.Location()
	}
	d := day(t.In(loc))
	if !r.From.IsZero() && d.Before(r.From) {
		return false
	}
	if !r.To.IsZero() && d.After(r.To) {
		return false
	}
	return true
}

// Label renders the range for report headers.
func (r DateRange) Label() string {
	switch {
	case !r.From.IsZero() && !r.To.IsZero() && r.From.Equal(r.To):
		return r.From.Format(dateLayout)
	case !r.From.IsZero() && !r.To.IsZero():
		return r.From.Format(dateLayout) + " to " + r.To.Format(dateLayout)
	case !r.From.IsZero():
		return "From " + r.From.Format(dateLayout)
	case !r.To.IsZero():
		return "Until " + r.To.Format(dateLayout)
	default:
		return "All dates"
	}
}

func day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
