package timeline

import (
    "math"
    "testing"
    "time"

    "github.com/mkarimov/production-coverage/internal/model"
)

// dayEvents builds events on a fixed date from id/time-range pairs.
func dayEvents(pairs ...string) []model.Event {
    out := make([]model.Event, 0, len(pairs)/2)
    for i := 0; i+1 < len(pairs); i += 2 {
        out = append(out, model.Event{ID: pairs[i], Date: "2025-03-10", Time: pairs[i+1]})
    }
    return out
}

func layoutByID(blocks []EventBlock) map[string]EventBlock {
    m := make(map[string]EventBlock, len(blocks))
    for _, b := range blocks {
        m[b.EventID] = b
    }
    return m
}

func TestLayoutDayDisjointEventsFullWidth(t *testing.T) {
    events := dayEvents(
        "a", "09:00 - 10:00",
        "b", "10:00 - 11:00", // touching endpoints do not overlap
        "c", "15:00 - 16:00",
    )
    blocks := LayoutDay(events, time.UTC, DefaultLayoutConfig())
    if len(blocks) != 3 {
        t.Fatalf("got %d blocks, want 3", len(blocks))
    }
    for _, b := range blocks {
        if b.WidthPercent != 100 || b.LeftPercent != 0 {
            t.Fatalf("disjoint event %s should be full width at left 0, got left=%v width=%v",
                b.EventID, b.LeftPercent, b.WidthPercent)
        }
    }
}

func TestLayoutDayOverlapColumns(t *testing.T) {
    events := dayEvents(
        "a", "09:00 - 11:00",
        "b", "10:00 - 12:00",
    )
    byID := layoutByID(LayoutDay(events, time.UTC, DefaultLayoutConfig()))

    a, b := byID["a"], byID["b"]
    if a.WidthPercent != 50 || b.WidthPercent != 50 {
        t.Fatalf("overlapping pair should split width evenly, got %v and %v", a.WidthPercent, b.WidthPercent)
    }
    if a.LeftPercent == b.LeftPercent {
        t.Fatalf("overlapping events must land in different columns, both at %v", a.LeftPercent)
    }
    if a.LeftPercent != 0 || b.LeftPercent != 50 {
        t.Fatalf("column assignment should follow id order, got a=%v b=%v", a.LeftPercent, b.LeftPercent)
    }
}

func TestLayoutDayThreeWayOverlap(t *testing.T) {
    events := dayEvents(
        "a", "09:00 - 12:00",
        "b", "09:30 - 10:30",
        "c", "10:00 - 11:00",
    )
    byID := layoutByID(LayoutDay(events, time.UTC, DefaultLayoutConfig()))

    total := 0.0
    for id, b := range byID {
        if math.Abs(b.WidthPercent-100.0/3.0) > 1e-9 {
            t.Fatalf("event %s should take a third of the width, got %v", id, b.WidthPercent)
        }
        total += b.WidthPercent
    }
    if total > 100+1e-9 {
        t.Fatalf("mutually overlapping widths should sum to at most 100, got %v", total)
    }
    if byID["a"].LeftPercent >= byID["b"].LeftPercent || byID["b"].LeftPercent >= byID["c"].LeftPercent {
        t.Fatalf("columns should ascend with id order: a=%v b=%v c=%v",
            byID["a"].LeftPercent, byID["b"].LeftPercent, byID["c"].LeftPercent)
    }
}

func TestLayoutDayGeometry(t *testing.T) {
    events := dayEvents("a", "01:30 - 02:30")
    cfg := LayoutConfig{PixelsPerMinute: 2, MinVisibleMinutes: 15}
    blocks := LayoutDay(events, time.UTC, cfg)
    if len(blocks) != 1 {
        t.Fatalf("got %d blocks, want 1", len(blocks))
    }
    if blocks[0].Top != 90*2 {
        t.Fatalf("top should be minutes-from-midnight times scale, got %v", blocks[0].Top)
    }
    if blocks[0].Height != 60*2 {
        t.Fatalf("height should be duration times scale, got %v", blocks[0].Height)
    }
}

func TestLayoutDayMinimumHeight(t *testing.T) {
    events := dayEvents("a", "09:00 - 09:05")
    blocks := LayoutDay(events, time.UTC, DefaultLayoutConfig())
    if blocks[0].Height != 15 {
        t.Fatalf("5-minute event should be floored to 15px, got %v", blocks[0].Height)
    }
}

func TestLayoutDayExcludesUnparsable(t *testing.T) {
    events := dayEvents(
        "a", "09:00 - 10:00",
        "broken", "9:00-10:00",
    )
    blocks := LayoutDay(events, time.UTC, DefaultLayoutConfig())
    if len(blocks) != 1 || blocks[0].EventID != "a" {
        t.Fatalf("unparsable event must be excluded from layout, got %v", blocks)
    }
}

func TestLayoutDayDeterministic(t *testing.T) {
    events := dayEvents(
        "c", "09:00 - 11:00",
        "a", "09:30 - 10:30",
        "b", "10:00 - 12:00",
    )
    reversed := dayEvents(
        "b", "10:00 - 12:00",
        "a", "09:30 - 10:30",
        "c", "09:00 - 11:00",
    )
    first := LayoutDay(events, time.UTC, DefaultLayoutConfig())
    second := LayoutDay(reversed, time.UTC, DefaultLayoutConfig())
    if len(first) != len(second) {
        t.Fatalf("block counts differ: %d vs %d", len(first), len(second))
    }
    for i := range first {
        if first[i] != second[i] {
            t.Fatalf("geometry depends on input order at %d: %+v vs %+v", i, first[i], second[i])
        }
    }
}
