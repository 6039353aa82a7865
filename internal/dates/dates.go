// Package dates builds the ordered date sequences a playback session walks
// through, and formats dates the way dataset file names expect them.
package dates

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	// Layout is the display form of a frame date.
	Layout = "2006-01-02"

	smashedLayout = "20060102"
	secondsPerDay = 24 * 60 * 60
)

// ErrInvertedRange is returned for a range whose start falls after its end.
var ErrInvertedRange = errors.New("dates: start is after end")

// Mode selects the step between consecutive dates of a sequence.
type Mode int

const (
	Daily Mode = iota
	Weekly
)

func (m Mode) String() string {
	if m == Weekly {
		return "weekly"
	}
	return "daily"
}

// Step returns the number of days between consecutive dates.
func (m Mode) Step() int {
	if m == Weekly {
		return 7
	}
	return 1
}

func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "daily", "day":
		return Daily, nil
	case "weekly", "week":
		return Weekly, nil
	}
	return Daily, fmt.Errorf("unknown date mode: %s (available: daily, weekly)", s)
}

// Range is a pair of calendar dates. Start must not be after End.
type Range struct {
	Start time.Time
	End   time.Time
}

// NewRange truncates both ends to calendar days and validates the order.
func NewRange(start, end time.Time) (Range, error) {
	r := Range{Start: Day(start), End: Day(end)}
	if err := r.Validate(); err != nil {
		return Range{}, err
	}
	return r, nil
}

func (r Range) Validate() error {
	if Day(r.Start).After(Day(r.End)) {
		return fmt.Errorf("%w: %s > %s", ErrInvertedRange, r.Start.Format(Layout), r.End.Format(Layout))
	}
	return nil
}

// Days returns the whole number of calendar days from Start to End. It
// works on Unix seconds so spans longer than a time.Duration still count.
func (r Range) Days() int {
	return int((Day(r.End).Unix() - Day(r.Start).Unix()) / secondsPerDay)
}

// Day drops the time of day and pins the date to UTC.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Parse accepts 2006-01-02 or the smashed 20060102 form.
func Parse(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	layout := Layout
	if len(s) == len(smashedLayout) && !strings.Contains(s, "-") {
		layout = smashedLayout
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// Smash returns the 8-character YYYYMMDD token used in dataset file names.
func Smash(t time.Time) string {
	return t.Format(smashedLayout)
}

// Generate lists the dates of r stepped by mode. The end date is never
// included, and a weekly sequence only counts whole weeks.
func Generate(r Range, mode Mode) []time.Time {
	n := r.Days() / mode.Step()
	if n <= 0 {
		return []time.Time{}
	}
	start := Day(r.Start)
	out := make([]time.Time, n)
	for i := range out {
		out[i] = start.AddDate(0, 0, i*mode.Step())
	}
	return out
}
