package report

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

const monthLayout = "2006-01"

// Type selects how a reference date expands into a report range.
type Type string

const (
	Daily   Type = "daily"
	Weekly  Type = "weekly"
	Monthly Type = "monthly"
	Custom  Type = "custom"
)

// ParseType converts a wire tag into a Type.
func ParseType(tag string) (Type, error) {
	switch t := Type(strings.ToLower(strings.TrimSpace(tag))); t {
	case Daily, Weekly, Monthly, Custom:
		return t, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidReportType, tag)
	}
}

func (t Type) String() string {
	return string(t)
}

// Range is an inclusive span of calendar dates. Both ends are midnight UTC and
// carry no time-of-day meaning.
type Range struct {
	Start time.Time
	End   time.Time
}

// Days returns the number of calendar days covered by r.
func (r Range) Days() int {
	return int(r.End.Sub(r.Start).Hours()/24) + 1
}

// Contains reports whether the calendar date of d falls within r.
func (r Range) Contains(d time.Time) bool {
	day := dateOnly(d)
	return !day.Before(r.Start) && !day.After(r.End)
}

func (r Range) String() string {
	if r.Start.Equal(r.End) {
		return r.Start.Format(DateLayout)
	}
	return r.Start.Format(DateLayout) + " to " + r.End.Format(DateLayout)
}

// Resolve maps a reference date and report type to the inclusive range to
// query. customEnd is only consulted for Custom; when nil the range collapses
// to the reference date.
func Resolve(ref time.Time, t Type, customEnd *time.Time) (Range, error) {
	day := dateOnly(ref)

	switch t {
	case Daily:
		return Range{Start: day, End: day}, nil
	case Weekly:
		// ISO weekday: Monday=1 .. Sunday=7
		iso := int(day.Weekday())
		if iso == 0 {
			iso = 7
		}
		monday := day.AddDate(0, 0, -(iso - 1))
		return Range{Start: monday, End: monday.AddDate(0, 0, 6)}, nil
	case Monthly:
		first := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)
		last := time.Date(day.Year(), day.Month()+1, 0, 0, 0, 0, 0, time.UTC)
		return Range{Start: first, End: last}, nil
	case Custom:
		if customEnd == nil {
			return Range{Start: day, End: day}, nil
		}
		end := dateOnly(*customEnd)
		if end.Before(day) {
			return Range{}, fmt.Errorf("%w: end date %s is before start date %s",
				ErrInvalidDate, end.Format(DateLayout), day.Format(DateLayout))
		}
		return Range{Start: day, End: end}, nil
	default:
		return Range{}, fmt.Errorf("%w: %q", ErrInvalidReportType, string(t))
	}
}

// ResolveStrings parses the wire form of a report request and resolves it.
// Monthly reports also accept a bare "YYYY-MM" reference.
func ResolveStrings(date, reportType, endDate string) (Type, Range, error) {
	t, err := ParseType(reportType)
	if err != nil {
		return "", Range{}, err
	}

	ref, err := parseReference(date, t)
	if err != nil {
		return "", Range{}, err
	}

	var customEnd *time.Time
	if t == Custom && strings.TrimSpace(endDate) != "" {
		end, err := ParseDate(endDate)
		if err != nil {
			return "", Range{}, err
		}
		customEnd = &end
	}

	r, err := Resolve(ref, t, customEnd)
	if err != nil {
		return "", Range{}, err
	}
	return t, r, nil
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return d, nil
}

func parseReference(s string, t Type) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t == Monthly && len(s) == len(monthLayout) {
		d, err := time.Parse(monthLayout, s)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
		}
		return d, nil
	}
	return ParseDate(s)
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
