package timeline

import (
    "testing"
    "time"

    "github.com/mkarimov/production-coverage/internal/model"
)

func eventOn(id, date, timeRange string) model.Event {
    return model.Event{ID: id, Date: date, Time: timeRange}
}

func TestClassifySameDay(t *testing.T) {
    now := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)

    cases := []struct {
        name string
        ev   model.Event
        want Status
    }{
        {"window contains now", eventOn("e1", "2025-03-10", "09:00 - 12:00"), StatusInProgress},
        {"window ahead of now", eventOn("e2", "2025-03-10", "13:00 - 14:00"), StatusUpcoming},
        {"window behind now", eventOn("e3", "2025-03-10", "07:00 - 08:00"), StatusPast},
        {"now exactly at start", eventOn("e4", "2025-03-10", "10:00 - 11:00"), StatusInProgress},
        {"now exactly at end", eventOn("e5", "2025-03-10", "09:00 - 10:00"), StatusPast},
    }
    for _, tc := range cases {
        if got := Classify(now, tc.ev).Status; got != tc.want {
            t.Fatalf("%s: got %s, want %s", tc.name, got, tc.want)
        }
    }
}

func TestClassifyOtherDaysIgnoreWindow(t *testing.T) {
    now := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)

    // The window on another day would read as in_progress if it were
    // consulted; date comparison must win.
    tomorrow := eventOn("e1", "2025-03-11", "09:00 - 12:00")
    if got := Classify(now, tomorrow).Status; got != StatusUpcoming {
        t.Fatalf("tomorrow's event: got %s, want %s", got, StatusUpcoming)
    }
    yesterday := eventOn("e2", "2025-03-09", "09:00 - 12:00")
    if got := Classify(now, yesterday).Status; got != StatusPast {
        t.Fatalf("yesterday's event: got %s, want %s", got, StatusPast)
    }
}

func TestClassifyUnparsableFailsOpen(t *testing.T) {
    now := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)

    c := Classify(now, eventOn("e1", "2025-03-10", "9:00-17:00"))
    if c.Status != StatusUpcoming {
        t.Fatalf("unparsable window should classify upcoming, got %s", c.Status)
    }
    if c.SortKey != 0 {
        t.Fatalf("unparsable window should carry a zero sort key, got %d", c.SortKey)
    }

    if got := Classify(now, eventOn("e2", "not-a-date", "09:00 - 10:00")).Status; got != StatusUpcoming {
        t.Fatalf("unparsable date should classify upcoming, got %s", got)
    }
}

func TestClassifyOvernightStillInProgress(t *testing.T) {
    // 22:00 - 02:00 is live at 01:00 only on the event's own date plus
    // one; at 23:00 on the event date it is live.
    now := time.Date(2025, 3, 10, 23, 0, 0, 0, time.UTC)
    if got := Classify(now, eventOn("e1", "2025-03-10", "22:00 - 02:00")).Status; got != StatusInProgress {
        t.Fatalf("overnight event at 23:00: got %s, want %s", got, StatusInProgress)
    }
}

func TestClassifyAllOrdering(t *testing.T) {
    now := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)

    events := []model.Event{
        eventOn("past-late", "2025-03-10", "08:00 - 09:00"),
        eventOn("upcoming-late", "2025-03-10", "15:00 - 16:00"),
        eventOn("live-b", "2025-03-10", "09:30 - 11:00"),
        eventOn("upcoming-broken", "2025-03-10", "bogus"),
        eventOn("live-a", "2025-03-10", "09:00 - 12:00"),
        eventOn("upcoming-early", "2025-03-10", "13:00 - 14:00"),
        eventOn("past-early", "2025-03-10", "06:00 - 07:00"),
    }

    got := ClassifyAll(now, events)
    wantOrder := []string{
        "live-a", "live-b", // in_progress, earliest start first
        "upcoming-broken",  // zero sort key surfaces first in its group
        "upcoming-early", "upcoming-late",
        "past-early", "past-late",
    }
    if len(got) != len(wantOrder) {
        t.Fatalf("got %d classified events, want %d", len(got), len(wantOrder))
    }
    for i, want := range wantOrder {
        if got[i].Event.ID != want {
            t.Fatalf("position %d: got %s, want %s", i, got[i].Event.ID, want)
        }
    }
}

func TestClassifyAllDeterministic(t *testing.T) {
    now := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
    events := []model.Event{
        eventOn("b", "2025-03-10", "13:00 - 14:00"),
        eventOn("a", "2025-03-10", "13:00 - 14:00"),
    }
    reversed := []model.Event{events[1], events[0]}

    first := ClassifyAll(now, events)
    second := ClassifyAll(now, reversed)
    for i := range first {
        if first[i].Event.ID != second[i].Event.ID {
            t.Fatalf("ordering depends on input order: %s vs %s at %d", first[i].Event.ID, second[i].Event.ID, i)
        }
    }
}
