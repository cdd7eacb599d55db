// Package queue defines message payloads exchanged over the message broker.
package queue

// ReservationConfirmedEvent is published when a table booking is
// successfully committed.  It carries enough information for
// downstream consumers to log, notify, or trigger analytics without
// querying the primary database.
type ReservationConfirmedEvent struct {
    ReservationID    uint64 `json:"reservation_id"`
    ConfirmationCode string `json:"confirmation_code"`
    UserID           uint64 `json:"user_id"`
    RestaurantID     uint64 `json:"restaurant_id"`
    TableID          uint64 `json:"table_id"`
    Date             string `json:"date"`
    Time             string `json:"time"`
    PartySize        int    `json:"party_size"`
    ContactName      string `json:"contact_name"`
    ContactEmail     string `json:"contact_email"`
    ConfirmedAt      string `json:"confirmed_at"`
}
