package timeline

import (
    "sort"
    "time"

    "github.com/mkarimov/production-coverage/internal/model"
)

// Status labels an event's position relative to a reference instant.
type Status string

const (
    StatusPast       Status = "past"
    StatusInProgress Status = "in_progress"
    StatusUpcoming   Status = "upcoming"
)

// rank orders statuses for display: live events first, then upcoming,
// then past.
func (s Status) rank() int {
    switch s {
    case StatusInProgress:
        return 2
    case StatusUpcoming:
        return 1
    }
    return 0
}

// ClassifiedEvent pairs an event with its status and the sort key used
// for display ordering.  SortKey is the Unix timestamp of the window
// start; events whose window could not be parsed carry a zero key so
// they surface first inside their status group.
type ClassifiedEvent struct {
    Event   model.Event
    Status  Status
    SortKey int64
}

// Classify assigns a status to a single event relative to now.  The
// comparison uses now's own calendar, never a shifted UTC day boundary:
//
//   - An event dated on a different calendar day than now is past or
//     upcoming purely by date; its time window is not consulted.
//   - An event on the same calendar day is in_progress when now falls
//     within [start, end), upcoming when the window is still ahead,
//     and past otherwise.
//   - An event whose window cannot be parsed defaults to upcoming, so a
//     badly-entered event stays visible instead of silently vanishing.
func Classify(now time.Time, ev model.Event) ClassifiedEvent {
    out := ClassifiedEvent{Event: ev}

    loc := now.Location()
    day, err := time.ParseInLocation(dateLayout, ev.Date, loc)
    if err != nil {
        out.Status = StatusUpcoming
        return out
    }

    today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
    if !day.Equal(today) {
        if day.Before(today) {
            out.Status = StatusPast
        } else {
            out.Status = StatusUpcoming
        }
        return out
    }

    w, err := ParseWindow(ev.Date, ev.Time, loc)
    if err != nil {
        // Fail open: an unparsable window must not hide a same-day event.
        out.Status = StatusUpcoming
        return out
    }
    out.SortKey = w.Start.Unix()

    switch {
    case !now.Before(w.Start) && now.Before(w.End):
        out.Status = StatusInProgress
    case w.Start.After(now):
        out.Status = StatusUpcoming
    default:
        out.Status = StatusPast
    }
    return out
}

// ClassifyAll classifies every event and returns them in display order:
// status rank descending (in_progress, then upcoming, then past), then
// window start ascending.  Events with unparsable windows keep a zero
// start inside their status group.  Event ID breaks any remaining ties
// so identical input always yields identical output.
func ClassifyAll(now time.Time, events []model.Event) []ClassifiedEvent {
    out := make([]ClassifiedEvent, 0, len(events))
    for _, ev := range events {
        out = append(out, Classify(now, ev))
    }
    sort.Slice(out, func(i, j int) bool {
        if out[i].Status.rank() != out[j].Status.rank() {
            return out[i].Status.rank() > out[j].Status.rank()
        }
        if out[i].SortKey != out[j].SortKey {
            return out[i].SortKey < out[j].SortKey
        }
        return out[i].Event.ID < out[j].Event.ID
    })
    return out
}
