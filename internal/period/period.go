// Package period handles the reporting time windows used by ledger queries,
// cost aggregation, and the report engine.
package period

import (
	"fmt"
	"strings"
	"time"
)

const (
	dayFormat   = "2006-01-02"
	monthFormat = "2006-01"
	rangeSep    = ".."
)

// Period is a closed date window [Start, End]. Both bounds are dates at
// midnight UTC; End's whole day is included.
type Period struct {
	Start time.Time
	End   time.Time
}

// Month returns the period covering one calendar month.
func Month(year int, month time.Month) Period {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return Period{Start: start, End: start.AddDate(0, 1, -1)}
}

// Year returns the period covering one calendar year.
func Year(year int) Period {
	return Period{
		Start: time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC),
	}
}

// Parse accepts "2006-01" (one month) or "2006-01-02..2006-03-04" (explicit
// range, both days included).
func Parse(s string) (Period, error) {
	if strings.Contains(s, rangeSep) {
		parts := strings.SplitN(s, rangeSep, 2)
		start, err := time.Parse(dayFormat, parts[0])
		if err != nil {
			return Period{}, fmt.Errorf("parsing period start %q: %w", parts[0], err)
		}
		end, err := time.Parse(dayFormat, parts[1])
		if err != nil {
			return Period{}, fmt.Errorf("parsing period end %q: %w", parts[1], err)
		}
		if end.Before(start) {
			return Period{}, fmt.Errorf("period end %s before start %s", parts[1], parts[0])
		}
		return Period{Start: start, End: end}, nil
	}

	month, err := time.Parse(monthFormat, s)
	if err != nil {
		return Period{}, fmt.Errorf("parsing period %q: %w", s, err)
	}
	return Month(month.Year(), month.Month()), nil
}

// Contains reports whether t falls inside the period (End day inclusive).
func (p Period) Contains(t time.Time) bool {
	if t.Before(p.Start) {
		return false
	}
	return t.Before(p.End.AddDate(0, 0, 1))
}

// Months counts the calendar months the period touches.
func (p Period) Months() int {
	current := time.Date(p.Start.Year(), p.Start.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(p.End.Year(), p.End.Month(), 1, 0, 0, 0, 0, time.UTC)
	n := 0
	for !current.After(end) {
		n++
		current = current.AddDate(0, 1, 0)
	}
	return n
}

// String renders the period as "2006-01-02..2006-03-04".
func (p Period) String() string {
	return p.Start.Format(dayFormat) + rangeSep + p.End.Format(dayFormat)
}
