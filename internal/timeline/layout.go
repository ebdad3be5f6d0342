package timeline

import (
    "sort"
    "time"

    "github.com/mkarimov/production-coverage/internal/model"
)

// LayoutConfig controls the vertical scale of the day-schedule grid.
type LayoutConfig struct {
    // PixelsPerMinute converts window minutes into vertical pixels.
    // A 60px hour row corresponds to 1.0.
    PixelsPerMinute float64
    // MinVisibleMinutes is the floor applied to an event's rendered
    // duration so very short events remain clickable.
    MinVisibleMinutes float64
}

// DefaultLayoutConfig renders 60px hour rows with a 15-minute floor.
func DefaultLayoutConfig() LayoutConfig {
    return LayoutConfig{PixelsPerMinute: 1, MinVisibleMinutes: 15}
}

// EventBlock is the geometry computed for one event on the day grid.
// Top and Height are absolute pixels; LeftPercent and WidthPercent
// position the block horizontally among its overlap group.
type EventBlock struct {
    EventID      string
    Window       Window
    Top          float64
    Height       float64
    LeftPercent  float64
    WidthPercent float64
}

// LayoutDay lays out one day's events into non-colliding blocks.
//
// Vertical geometry: Top is minutes-from-midnight of the window start
// times PixelsPerMinute; Height is the window duration, floored at
// MinVisibleMinutes, times PixelsPerMinute.
//
// Horizontal geometry: two events overlap when their windows intersect
// under open-interval semantics.  Each event's column index is the
// number of overlapping events with a strictly smaller ID, its width is
// an equal share of its overlap-group size, and its left offset is
// column times width.  This is a greedy layout, deterministic and
// cheap; it is not a minimum-width interval-graph coloring and two
// events in large uneven groups can render narrower than strictly
// necessary.  That trade-off is deliberate.
//
// Events whose window cannot be parsed are excluded from the result
// entirely rather than rendered at a default position.  The returned
// slice is ordered by event ID, so identical input always produces
// identical geometry.
func LayoutDay(events []model.Event, loc *time.Location, cfg LayoutConfig) []EventBlock {
    if cfg.PixelsPerMinute <= 0 {
        cfg.PixelsPerMinute = 1
    }
    if cfg.MinVisibleMinutes < 0 {
        cfg.MinVisibleMinutes = 0
    }

    type placed struct {
        id string
        w  Window
    }
    laid := make([]placed, 0, len(events))
    for _, ev := range events {
        w, err := ParseWindow(ev.Date, ev.Time, loc)
        if err != nil {
            continue
        }
        laid = append(laid, placed{id: ev.ID, w: w})
    }
    sort.Slice(laid, func(i, j int) bool { return laid[i].id < laid[j].id })

    out := make([]EventBlock, 0, len(laid))
    for _, p := range laid {
        group := 1 // the event itself
        column := 0
        for _, o := range laid {
            if o.id == p.id || !p.w.Overlaps(o.w) {
                continue
            }
            group++
            if o.id < p.id {
                column++
            }
        }

        minutesFromMidnight := float64(p.w.Start.Hour()*60 + p.w.Start.Minute())
        durationMinutes := p.w.Duration().Minutes()
        if durationMinutes < cfg.MinVisibleMinutes {
            durationMinutes = cfg.MinVisibleMinutes
        }

        width := 100.0 / float64(group)
        out = append(out, EventBlock{
            EventID:      p.id,
            Window:       p.w,
            Top:          minutesFromMidnight * cfg.PixelsPerMinute,
            Height:       durationMinutes * cfg.PixelsPerMinute,
            LeftPercent:  float64(column) * width,
            WidthPercent: width,
        })
    }
    return out
}
