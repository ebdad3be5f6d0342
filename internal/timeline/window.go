// Package timeline contains the event-timeline reasoning engine: pure,
// synchronous functions that derive absolute coverage windows from an
// event's date and time-range encoding, classify events relative to a
// reference instant, and lay out a day's events into non-colliding
// blocks for the schedule grid.  Nothing in this package performs I/O
// or mutates its inputs.
package timeline

import (
    "fmt"
    "strconv"
    "strings"
    "time"
)

// Window is the absolute coverage window of an event, derived from its
// calendar date and "HH:MM - HH:MM" range string.  End is always after
// Start; a range whose end is numerically earlier than its start is an
// overnight window and End lands on the following calendar day.
type Window struct {
    Start time.Time
    End   time.Time
}

// Duration returns the length of the window.
func (w Window) Duration() time.Duration {
    return w.End.Sub(w.Start)
}

// Overlaps reports whether two windows intersect under open-interval
// semantics: touching endpoints do not count as an overlap.
func (w Window) Overlaps(o Window) bool {
    return o.Start.Before(w.End) && o.End.After(w.Start)
}

const (
    dateLayout     = "2006-01-02"
    rangeSeparator = " - "
)

// ParseWindow converts a calendar date ("YYYY-MM-DD") plus a time-range
// string ("HH:MM - HH:MM", 24-hour) into a Window in the given
// location.  A nil location defaults to time.Local.  Any malformed
// component (a range that does not split into exactly two parts on
// " - ", non-numeric hour or minute, out-of-range values, a bad date)
// yields an error; callers must treat the failure as "cannot classify
// or lay out this event" rather than abort the whole batch.
func ParseWindow(date, timeRange string, loc *time.Location) (Window, error) {
    if loc == nil {
        loc = time.Local
    }

    day, err := time.ParseInLocation(dateLayout, date, loc)
    if err != nil {
        return Window{}, fmt.Errorf("parse window: invalid date %q: %w", date, err)
    }

    parts := strings.Split(timeRange, rangeSeparator)
    if len(parts) != 2 {
        return Window{}, fmt.Errorf("parse window: range %q must have two %q separated endpoints", timeRange, rangeSeparator)
    }

    startH, startM, err := parseClock(parts[0])
    if err != nil {
        return Window{}, fmt.Errorf("parse window: start of %q: %w", timeRange, err)
    }
    endH, endM, err := parseClock(parts[1])
    if err != nil {
        return Window{}, fmt.Errorf("parse window: end of %q: %w", timeRange, err)
    }

    start := time.Date(day.Year(), day.Month(), day.Day(), startH, startM, 0, 0, loc)
    end := time.Date(day.Year(), day.Month(), day.Day(), endH, endM, 0, 0, loc)
    if !end.After(start) {
        // The range wraps past midnight; the window ends on the next day.
        end = end.AddDate(0, 0, 1)
    }
    return Window{Start: start, End: end}, nil
}

// parseClock parses a single "HH:MM" endpoint into hour and minute.
func parseClock(s string) (hour, minute int, err error) {
    fields := strings.Split(strings.TrimSpace(s), ":")
    if len(fields) != 2 {
        return 0, 0, fmt.Errorf("clock %q must be HH:MM", s)
    }
    hour, err = parseClockField(fields[0])
    if err != nil {
        return 0, 0, err
    }
    minute, err = parseClockField(fields[1])
    if err != nil {
        return 0, 0, err
    }
    if hour < 0 || hour > 23 {
        return 0, 0, fmt.Errorf("hour %d out of range", hour)
    }
    if minute < 0 || minute > 59 {
        return 0, 0, fmt.Errorf("minute %d out of range", minute)
    }
    return hour, minute, nil
}

// parseClockField converts one clock component, rejecting anything that
// is not plain digits (strconv.Atoi alone would accept a leading sign).
func parseClockField(s string) (int, error) {
    if s == "" {
        return 0, fmt.Errorf("empty clock component")
    }
    for _, r := range s {
        if r < '0' || r > '9' {
            return 0, fmt.Errorf("clock component %q is not numeric", s)
        }
    }
    n, err := strconv.Atoi(s)
    if err != nil {
        return 0, fmt.Errorf("clock component %q is not numeric", s)
    }
    return n, nil
}
