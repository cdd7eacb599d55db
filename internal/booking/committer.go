package booking

import (
    "context"
    "strings"
    "time"

    "github.com/google/uuid"

    "github.com/iliyamo/restaurant-table-reservation/internal/model"
)

// Contact carries the guest details attached to a reservation.
type Contact struct {
    Name  string `json:"name"`
    Email string `json:"email"`
    Phone string `json:"phone"`
}

// CommitRequest describes one booking attempt.  Time values are raw
// strings as received from the client; Commit validates them itself
// rather than trusting any availability snapshot the client saw,
// which may be stale by the time the request arrives.
type CommitRequest struct {
    RestaurantID uint64
    Date         string // "YYYY-MM-DD"
    Clock        string // "HH:MM"
    PartySize    int
    Contact      Contact
    UserID       uint64 // 0 for guest bookings
}

// Committer performs the race-free reservation write.  It is the sole
// writer of reservation rows; all mutation goes through Commit and
// Cancel.
type Committer struct {
    Restaurants  RestaurantStore
    Reservations ReservationStore
    // Now supplies the current time for past-date validation;
    // defaults to time.Now.
    Now func() time.Time
}

// NewCommitter constructs a Committer over the given stores.
func NewCommitter(rs RestaurantStore, res ReservationStore) *Committer {
    if rs == nil || res == nil {
        panic("nil store passed to NewCommitter")
    }
    return &Committer{Restaurants: rs, Reservations: res}
}

func (c *Committer) now() time.Time {
    if c.Now != nil {
        return c.Now()
    }
    return time.Now()
}

// Commit validates the request, then re-runs the conflict check
// against the live reservation set inside a single storage
// transaction and inserts a CONFIRMED reservation on the lowest-ID
// table that is still free.  It returns ErrConflict when every
// candidate table was claimed by a concurrent booking — the normal
// outcome of losing a race — a *ValidationError for bad input, and
// ErrNotFound for an unknown restaurant.
func (c *Committer) Commit(ctx context.Context, req CommitRequest) (*model.Reservation, error) {
    if req.PartySize < 1 {
        return nil, invalid("party_size", "must be at least 1")
    }
    date, err := ParseDate(req.Date)
    if err != nil {
        return nil, invalid("date", "must be YYYY-MM-DD")
    }
    startMinute, err := ParseClock(req.Clock)
    if err != nil {
        return nil, err
    }
    if strings.TrimSpace(req.Contact.Name) == "" || strings.TrimSpace(req.Contact.Email) == "" {
        return nil, invalid("contact", "name and email are required")
    }
    today := c.now().UTC().Truncate(24 * time.Hour)
    if date.Before(today) {
        return nil, invalid("date", "must not be in the past")
    }

    restaurant, err := c.Restaurants.RestaurantByID(ctx, req.RestaurantID)
    if err != nil {
        return nil, err
    }
    // Recompute hours and candidate tables from live configuration.
    hours, open := HoursFor(restaurant, date)
    if !open {
        return nil, invalid("date", "restaurant is closed on this day")
    }
    if startMinute < hours.OpenMinute || startMinute > hours.CloseMinute {
        return nil, invalid("time", "outside operating hours")
    }
    tables := TablesFor(restaurant, req.PartySize)
    if len(tables) == 0 {
        return nil, invalid("party_size", "no table can seat this party")
    }

    res := &model.Reservation{
        ConfirmationCode: uuid.NewString(),
        RestaurantID:     restaurant.ID,
        UserID:           req.UserID,
        Date:             req.Date,
        StartMinute:      startMinute,
        PartySize:        req.PartySize,
        Status:           model.ReservationConfirmed,
        ContactName:      strings.TrimSpace(req.Contact.Name),
        ContactEmail:     strings.TrimSpace(req.Contact.Email),
        ContactPhone:     strings.TrimSpace(req.Contact.Phone),
    }
    // The store runs pick inside its transaction, after re-fetching
    // the live non-cancelled reservations for the date under a write
    // lock.  Everything the engine decided from the earlier search is
    // re-decided here against current data.
    err = c.Reservations.Reserve(ctx, res, func(live []model.Reservation) (uint64, bool) {
        return firstAvailableTable(tables, startMinute, live)
    })
    if err != nil {
        return nil, err
    }
    return res, nil
}

// Cancel transitions a reservation to CANCELLED, freeing its table
// and interval for later bookings.  The record is retained; its
// identity is never reused.
func (c *Committer) Cancel(ctx context.Context, reservationID uint64) error {
    return c.Reservations.CancelReservation(ctx, reservationID)
}
