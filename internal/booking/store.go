package booking

import (
    "context"

    "github.com/iliyamo/restaurant-table-reservation/internal/model"
)

// RestaurantStore provides read-only access to restaurant
// configuration.  Implementations must return each restaurant with
// its Tables and Hours populated; the planner never issues follow-up
// queries per table or per weekday.
type RestaurantStore interface {
    // RestaurantByID loads a single restaurant.  It returns
    // ErrNotFound when no such restaurant exists.
    RestaurantByID(ctx context.Context, id uint64) (*model.Restaurant, error)

    // ListRestaurants returns all restaurants ordered by ascending
    // ID.  Location filtering happens in the planner, not here, so
    // that the matching rules live in one place.
    ListRestaurants(ctx context.Context) ([]model.Restaurant, error)
}

// ReservationStore provides access to committed reservations.  The
// engine never mutates a reservation's time or table; writes are
// limited to Reserve and CancelReservation.
type ReservationStore interface {
    // ReservationsForDate returns all non-cancelled reservations for
    // the restaurant on the given civil date ("YYYY-MM-DD").  This is
    // the single batch fetch the planner performs per restaurant.
    ReservationsForDate(ctx context.Context, restaurantID uint64, date string) ([]model.Reservation, error)

    // ConfirmedCountForDate returns the number of non-cancelled
    // reservations for the restaurant on the date.  Informational
    // only; attached to availability results for display.
    ConfirmedCountForDate(ctx context.Context, restaurantID uint64, date string) (int, error)

    // Reserve atomically inserts res after re-validating it against
    // the live reservation set.  The implementation must open an
    // isolated transaction, load the restaurant's non-cancelled
    // reservations for res.Date under a write lock, and invoke pick
    // with that live set.  pick returns the table to assign; when it
    // reports ok=false the implementation must abort and return
    // ErrConflict.  On success the implementation fills res.ID,
    // res.TableID and timestamps.  Two concurrent Reserve calls whose
    // pick would claim overlapping intervals on the same table must
    // not both succeed.
    Reserve(ctx context.Context, res *model.Reservation, pick func(live []model.Reservation) (tableID uint64, ok bool)) error

    // CancelReservation transitions the reservation to CANCELLED.  It
    // returns ErrNotFound for an unknown ID and ErrConflict when the
    // reservation is already cancelled.  The row is never deleted.
    CancelReservation(ctx context.Context, id uint64) error
}
