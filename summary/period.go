package summary

import (
	"fmt"
	"time"
)

// WindowPolicy decides the period used when the caller leaves out "from".
type WindowPolicy string

const (
	// WindowTrailing ends at "to" (default today) and spans TrailingDays before it.
	WindowTrailing WindowPolicy = "trailing"
	// WindowAllTime starts at the Unix epoch.
	WindowAllTime WindowPolicy = "all"
)

// DefaultTrailingDays is the trailing window length when none is configured.
const DefaultTrailingDays = 30

// MaxPeriodDays bounds the length of a resolved period. It leaves room for
// the all-time window, which starts at the Unix epoch.
const MaxPeriodDays = 100 * 366

const secondsPerDay = 24 * 60 * 60

// Period is an inclusive range of calendar days, both ends at UTC midnight.
type Period struct {
	Start time.Time
	End   time.Time
}

// Days is the number of calendar days in the period, counting both ends.
func (p Period) Days() int {
	return int((p.End.Unix()-p.Start.Unix())/secondsPerDay) + 1
}

// Prior is the equally long period ending the day before Start.
func (p Period) Prior() Period {
	n := p.Days()
	return Period{
		Start: p.Start.AddDate(0, 0, -n),
		End:   p.End.AddDate(0, 0, -n),
	}
}

// Contains reports whether day falls inside the period.
func (p Period) Contains(day time.Time) bool {
	d := truncateDay(day)
	return !d.Before(p.Start) && !d.After(p.End)
}

func (p Period) String() string {
	return p.Start.Format(DateLayout) + ".." + p.End.Format(DateLayout)
}

// ResolvePeriod turns the optional from/to strings into a Period.
func ResolvePeriod(from, to string, policy WindowPolicy, trailingDays int, now time.Time) (Period, error) {
	end := truncateDay(now)
	if to != "" {
		d, err := parseDay(to)
		if err != nil {
			return Period{}, err
		}
		end = d
	}

	var start time.Time
	if from != "" {
		d, err := parseDay(from)
		if err != nil {
			return Period{}, err
		}
		start = d
	} else {
		switch policy {
		case WindowAllTime:
			start = time.Unix(0, 0).UTC()
		default:
			if trailingDays <= 0 {
				trailingDays = DefaultTrailingDays
			}
			start = end.AddDate(0, 0, -trailingDays)
		}
	}

	if end.Before(start) {
		return Period{}, fmt.Errorf("%w: from %s is after to %s", ErrInvalidPeriod, start.Format(DateLayout), end.Format(DateLayout))
	}
	p := Period{Start: start, End: end}
	if p.Days() > MaxPeriodDays {
		return Period{}, fmt.Errorf("%w: %s spans more than %d days", ErrInvalidPeriod, p, MaxPeriodDays)
	}
	return p, nil
}

func parseDay(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q is not a YYYY-MM-DD date", ErrInvalidPeriod, s)
	}
	return d, nil
}

func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
