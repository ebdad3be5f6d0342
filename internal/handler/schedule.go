package handler

import (
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/mkarimov/production-coverage/internal/timeline"
)

// scheduleBlock is the wire shape of one positioned event on the day
// grid.  Geometry is ready to consume: top/height in pixels,
// left/width in percent of the column.
type scheduleBlock struct {
    EventID      string  `json:"event_id"`
    Name         string  `json:"name"`
    Priority     string  `json:"priority"`
    StartsAt     string  `json:"starts_at"`
    EndsAt       string  `json:"ends_at"`
    Top          float64 `json:"top"`
    Height       float64 `json:"height"`
    LeftPercent  float64 `json:"leftPercent"`
    WidthPercent float64 `json:"widthPercent"`
}

// liveEvent is the wire shape of one classified event in the live view.
type liveEvent struct {
    EventID  string `json:"event_id"`
    Name     string `json:"name"`
    Priority string `json:"priority"`
    Date     string `json:"date"`
    Time     string `json:"time"`
    Status   string `json:"status"`
    SortKey  int64  `json:"sort_key"`
}

// requestedDate reads the ?date= query, defaulting to today in the
// configured production timezone.  An empty error message means the
// value was accepted.
func (h *AppHandler) requestedDate(c echo.Context) (string, string) {
    date := c.QueryParam("date")
    if date == "" {
        return h.today(), ""
    }
    if _, err := time.ParseInLocation("2006-01-02", date, h.Timezone); err != nil {
        return "", "date must be formatted YYYY-MM-DD"
    }
    return date, ""
}

// DaySchedule handles GET /v1/schedule/day.  It loads the requested
// day's events and returns positioned blocks for the day grid.  Events
// whose time window cannot be parsed are omitted from the grid; they
// still appear in the live list, so nothing is ever fully hidden.
func (h *AppHandler) DaySchedule(c echo.Context) error {
    date, msg := h.requestedDate(c)
    if msg != "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
    }

    events, err := h.EventRepo.ListByDate(c.Request().Context(), date)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load events"})
    }

    byID := make(map[string]int, len(events))
    for i, ev := range events {
        byID[ev.ID] = i
    }

    blocks := timeline.LayoutDay(events, h.Timezone, h.Layout)
    out := make([]scheduleBlock, 0, len(blocks))
    for _, b := range blocks {
        ev := events[byID[b.EventID]]
        out = append(out, scheduleBlock{
            EventID:      b.EventID,
            Name:         ev.Name,
            Priority:     ev.Priority.String(),
            StartsAt:     b.Window.Start.Format(time.RFC3339),
            EndsAt:       b.Window.End.Format(time.RFC3339),
            Top:          b.Top,
            Height:       b.Height,
            LeftPercent:  b.LeftPercent,
            WidthPercent: b.WidthPercent,
        })
    }

    return c.JSON(http.StatusOK, echo.Map{
        "date":   date,
        "blocks": out,
    })
}

// LiveEvents handles GET /v1/live/events.  Events for the requested day
// are classified against the current wall clock and returned in display
// order: in-progress first, then upcoming, then past, each group sorted
// by window start.
func (h *AppHandler) LiveEvents(c echo.Context) error {
    date, msg := h.requestedDate(c)
    if msg != "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
    }

    events, err := h.EventRepo.ListByDate(c.Request().Context(), date)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load events"})
    }

    now := time.Now().In(h.Timezone)
    classified := timeline.ClassifyAll(now, events)

    out := make([]liveEvent, 0, len(classified))
    for _, ce := range classified {
        out = append(out, liveEvent{
            EventID:  ce.Event.ID,
            Name:     ce.Event.Name,
            Priority: ce.Event.Priority.String(),
            Date:     ce.Event.Date,
            Time:     ce.Event.Time,
            Status:   string(ce.Status),
            SortKey:  ce.SortKey,
        })
    }

    return c.JSON(http.StatusOK, echo.Map{
        "date":   date,
        "as_of":  now.Format(time.RFC3339),
        "events": out,
    })
}
