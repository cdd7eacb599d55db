package model

import "time"

// Reservation status values.  A reservation is created CONFIRMED by
// the committer; PENDING exists for flows where payment or review
// happens after the table is claimed.  Both occupy their table;
// CANCELLED never blocks and is kept as an audit record.
const (
    ReservationPending   = "PENDING"
    ReservationConfirmed = "CONFIRMED"
    ReservationCancelled = "CANCELLED"
)

// ReservationDuration is how long a reservation occupies its table,
// measured in minutes from the start minute.  Fixed at two hours as a
// business rule; the overlap test in the booking package depends on it.
const ReservationDuration = 120

// Reservation records a committed booking of one table at one
// restaurant for a fixed 120-minute interval.  A reservation is never
// moved in place: a change of time or table is a cancel plus a new
// booking, and cancelling only flips the status so the row survives
// as an audit trail.
//
// Fields:
//  ID               – primary key identifier.
//  ConfirmationCode – opaque unique code returned to the guest.
//  RestaurantID     – restaurant being booked.
//  TableID          – table assigned at commit time.
//  UserID           – account that made the booking (0 for guests).
//  Date             – civil date of the booking, "YYYY-MM-DD".
//  StartMinute      – start time as minute-of-day.
//  PartySize        – number of guests.
//  Status           – PENDING, CONFIRMED or CANCELLED.
//  ContactName      – guest contact name.
//  ContactEmail     – guest contact email.
//  ContactPhone     – guest contact phone.
//  CreatedAt        – creation timestamp.
//  UpdatedAt        – last update timestamp.
type Reservation struct {
    ID               uint64    // reservations.id
    ConfirmationCode string    // reservations.confirmation_code
    RestaurantID     uint64    // reservations.restaurant_id
    TableID          uint64    // reservations.table_id
    UserID           uint64    // reservations.user_id (0 when booked without an account)
    Date             string    // reservations.date
    StartMinute      int       // reservations.start_minute
    PartySize        int       // reservations.party_size
    Status           string    // reservations.status
    ContactName      string    // reservations.contact_name
    ContactEmail     string    // reservations.contact_email
    ContactPhone     string    // reservations.contact_phone
    CreatedAt        time.Time // reservations.created_at
    UpdatedAt        time.Time // reservations.updated_at
}

// Occupies reports whether the reservation counts against its table's
// availability.  Cancelled reservations never block.
func (r *Reservation) Occupies() bool {
    return r.Status == ReservationPending || r.Status == ReservationConfirmed
}
