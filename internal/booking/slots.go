package booking

import "fmt"

const (
    // SlotStep is the spacing between candidate start times.
    SlotStep = 15
    // SearchWindow is how far either side of the requested time the
    // planner looks for slots.
    SearchWindow = 30
    // minutesPerDay bounds every minute-of-day value.
    minutesPerDay = 24 * 60
)

// Slot is a candidate reservation start time.  Slots are derived
// fresh for every query and never persisted.
type Slot struct {
    Minute        int    `json:"-"`              // start time as minute-of-day
    Time          string `json:"time"`           // 24h rendering, "18:30"
    FormattedTime string `json:"formatted_time"` // 12h rendering, "6:30 PM"
}

// NewSlot builds a Slot for the given minute-of-day.
func NewSlot(minute int) Slot {
    return Slot{
        Minute:        minute,
        Time:          MinuteToClock(minute),
        FormattedTime: minuteTo12Hour(minute),
    }
}

// CandidateSlots enumerates candidate start times at SlotStep
// intervals inside the intersection of the requested window and the
// operating hours.  The range runs from max(windowStart, open) to
// min(windowEnd, close), inclusive of the end boundary.  When the
// window does not intersect the hours the result is empty, not an
// error.  Output is ordered and deterministic for identical inputs.
func CandidateSlots(windowStart, windowEnd, openMinute, closeMinute int) []Slot {
    if windowStart >= closeMinute || windowEnd <= openMinute {
        return nil
    }
    from := windowStart
    if openMinute > from {
        from = openMinute
    }
    to := windowEnd
    if closeMinute < to {
        to = closeMinute
    }
    slots := make([]Slot, 0, (to-from)/SlotStep+1)
    for m := from; m <= to; m += SlotStep {
        slots = append(slots, NewSlot(m))
    }
    return slots
}

// Window returns the search window around the requested minute,
// clamped to a single day.
func Window(requested int) (start, end int) {
    start = requested - SearchWindow
    if start < 0 {
        start = 0
    }
    end = requested + SearchWindow
    if end > minutesPerDay-1 {
        end = minutesPerDay - 1
    }
    return start, end
}

// MinuteToClock renders a minute-of-day as zero-padded "HH:MM".
func MinuteToClock(minute int) string {
    return fmt.Sprintf("%02d:%02d", minute/60, minute%60)
}

// minuteTo12Hour renders a minute-of-day in 12-hour clock form,
// e.g. "6:30 PM" or "12:00 AM".
func minuteTo12Hour(minute int) string {
    h := minute / 60
    m := minute % 60
    suffix := "AM"
    if h >= 12 {
        suffix = "PM"
    }
    h = h % 12
    if h == 0 {
        h = 12
    }
    return fmt.Sprintf("%d:%02d %s", h, m, suffix)
}

// ParseClock converts an "HH:MM" string to minute-of-day.  It rejects
// anything outside 00:00–23:59.
func ParseClock(s string) (int, error) {
    var h, m int
    if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil || len(s) != 5 || s[2] != ':' {
        return 0, invalid("time", "must be HH:MM")
    }
    if h < 0 || h > 23 || m < 0 || m > 59 {
        return 0, invalid("time", "must be between 00:00 and 23:59")
    }
    return h*60 + m, nil
}
