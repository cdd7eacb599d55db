package booking

import (
    "time"

    "github.com/iliyamo/restaurant-table-reservation/internal/model"
)

// DateLayout is the civil date format used throughout the engine.
const DateLayout = "2006-01-02"

// HoursFor resolves the restaurant's operating hours for a civil
// date.  The second return value is false when the restaurant has no
// entry for that weekday, meaning it is closed; a closed day is a
// normal outcome, not an error.
func HoursFor(r *model.Restaurant, date time.Time) (model.OperatingHours, bool) {
    weekday := int(date.Weekday()) // 0 = Sunday .. 6 = Saturday
    for _, h := range r.Hours {
        if h.Weekday == weekday {
            return h, true
        }
    }
    return model.OperatingHours{}, false
}

// ParseDate parses a "YYYY-MM-DD" date string in UTC.
func ParseDate(s string) (time.Time, error) {
    return time.ParseInLocation(DateLayout, s, time.UTC)
}
