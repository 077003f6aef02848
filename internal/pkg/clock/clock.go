package clock

import (
	"fmt"
	"time"
)

// Clock returns wall-clock time anchored to a fixed UTC offset.
type Clock interface {
	Now() time.Time
	Location() *time.Location
}

type fixedClock struct {
	loc *time.Location
}

// NewFixed returns a Clock in UTC+offsetHours, regardless of the host timezone.
func NewFixed(offsetHours int) Clock {
	return &fixedClock{loc: FixedZone(offsetHours)}
}

// FixedZone builds the named fixed-offset location used for every date derivation.
func FixedZone(offsetHours int) *time.Location {
	name := fmt.Sprintf("UTC%+03d:00", offsetHours)
	return time.FixedZone(name, offsetHours*60*60)
}

func (c *fixedClock) Now() time.Time {
	return time.Now().In(c.loc)
}

func (c *fixedClock) Location() *time.Location {
	return c.loc
}

// Frozen is a Clock stuck at a single instant. Used in tests.
type Frozen struct {
	At  time.Time
	Loc *time.Location
}

func (f *Frozen) Now() time.Time {
	return f.At.In(f.Location())
}

func (f *Frozen) Location() *time.Location {
	if f.Loc == nil {
		return time.UTC
	}
	return f.Loc
}

// Advance moves the frozen clock forward by d.
func (f *Frozen) Advance(d time.Duration) {
	f.At = f.At.Add(d)
}

// DateOf truncates t to its calendar date in loc, returned at midnight UTC so
// it compares and formats as a pure date.
func DateOf(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}
