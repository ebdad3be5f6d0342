package timeline

import (
    "testing"
    "time"
)

func TestParseWindowSameDay(t *testing.T) {
    w, err := ParseWindow("2025-03-10", "09:00 - 17:30", time.UTC)
    if err != nil {
        t.Fatalf("parse window: %v", err)
    }
    wantStart := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
    wantEnd := time.Date(2025, 3, 10, 17, 30, 0, 0, time.UTC)
    if !w.Start.Equal(wantStart) || !w.End.Equal(wantEnd) {
        t.Fatalf("got window %v - %v, want %v - %v", w.Start, w.End, wantStart, wantEnd)
    }
}

func TestParseWindowOvernight(t *testing.T) {
    w, err := ParseWindow("2025-03-10", "22:00 - 02:00", time.UTC)
    if err != nil {
        t.Fatalf("parse window: %v", err)
    }
    if !w.Start.Equal(time.Date(2025, 3, 10, 22, 0, 0, 0, time.UTC)) {
        t.Fatalf("start should stay on the event date, got %v", w.Start)
    }
    if !w.End.Equal(time.Date(2025, 3, 11, 2, 0, 0, 0, time.UTC)) {
        t.Fatalf("end should advance one day, got %v", w.End)
    }
    if !w.End.After(w.Start) {
        t.Fatalf("overnight window must still end after it starts")
    }
}

func TestParseWindowEqualEndpointsWrap(t *testing.T) {
    // An end equal to the start also counts as crossing midnight.
    w, err := ParseWindow("2025-03-10", "10:00 - 10:00", time.UTC)
    if err != nil {
        t.Fatalf("parse window: %v", err)
    }
    if got := w.Duration(); got != 24*time.Hour {
        t.Fatalf("equal endpoints should produce a 24h window, got %v", got)
    }
}

func TestParseWindowMalformed(t *testing.T) {
    cases := []struct {
        name      string
        date      string
        timeRange string
    }{
        {"no spaces around dash", "2025-03-10", "9:00-17:00"},
        {"hour out of range", "2025-03-10", "25:00 - 26:00"},
        {"minute out of range", "2025-03-10", "10:75 - 11:00"},
        {"non numeric hour", "2025-03-10", "ab:00 - 11:00"},
        {"signed component", "2025-03-10", "-1:00 - 11:00"},
        {"missing endpoint", "2025-03-10", "10:00"},
        {"three endpoints", "2025-03-10", "08:00 - 09:00 - 10:00"},
        {"no minutes", "2025-03-10", "10 - 11"},
        {"bad date", "2025-13-40", "10:00 - 11:00"},
        {"empty range", "2025-03-10", ""},
    }
    for _, tc := range cases {
        if _, err := ParseWindow(tc.date, tc.timeRange, time.UTC); err == nil {
            t.Fatalf("%s: expected parse failure for %q %q", tc.name, tc.date, tc.timeRange)
        }
    }
}

func TestParseWindowNilLocationDefaultsLocal(t *testing.T) {
    w, err := ParseWindow("2025-03-10", "08:00 - 09:00", nil)
    if err != nil {
        t.Fatalf("parse window: %v", err)
    }
    if w.Start.Location() != time.Local {
        t.Fatalf("nil location should default to time.Local, got %v", w.Start.Location())
    }
}
