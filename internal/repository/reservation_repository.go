package repository

import (
    "context"
    "database/sql"
    "errors"
    "time"

    "github.com/iliyamo/restaurant-table-reservation/internal/booking"
    "github.com/iliyamo/restaurant-table-reservation/internal/model"
)

// ReservationRepo provides CRUD operations for reservations and is
// the MySQL implementation of booking.ReservationStore.  Reservations
// are never deleted and never moved between tables or times; the only
// mutation after insert is the CONFIRMED→CANCELLED status transition.
// All timestamp fields are stored in UTC and dates as DATE columns
// rendered back out as "YYYY-MM-DD" strings.
type ReservationRepo struct {
    db *sql.DB
}

// NewReservationRepo returns a new ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

var _ booking.ReservationStore = (*ReservationRepo)(nil)

const reservationColumns = `id, confirmation_code, restaurant_id, table_id, user_id,
        DATE_FORMAT(date, '%Y-%m-%d'), start_minute, party_size, status,
        contact_name, contact_email, contact_phone, created_at, updated_at`

// scanReservation reads one row produced with reservationColumns.
func scanReservation(row interface{ Scan(...interface{}) error }) (model.Reservation, error) {
    var res model.Reservation
    var userID sql.NullInt64
    err := row.Scan(
        &res.ID, &res.ConfirmationCode, &res.RestaurantID, &res.TableID, &userID,
        &res.Date, &res.StartMinute, &res.PartySize, &res.Status,
        &res.ContactName, &res.ContactEmail, &res.ContactPhone, &res.CreatedAt, &res.UpdatedAt,
    )
    if err != nil {
        return model.Reservation{}, err
    }
    if userID.Valid {
        res.UserID = uint64(userID.Int64)
    }
    return res, nil
}

// ReservationsForDate returns all non-cancelled reservations for the
// restaurant on the given date.  This is the one batch fetch the
// planner performs per restaurant; ordering by table and start keeps
// the output deterministic.
func (r *ReservationRepo) ReservationsForDate(ctx context.Context, restaurantID uint64, date string) ([]model.Reservation, error) {
    const q = `SELECT ` + reservationColumns + `
               FROM reservations
               WHERE restaurant_id = ? AND date = ? AND status <> 'CANCELLED'
               ORDER BY table_id, start_minute`
    rows, err := r.db.QueryContext(ctx, q, restaurantID, date)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.Reservation, 0)
    for rows.Next() {
        res, err := scanReservation(rows)
        if err != nil {
            return nil, err
        }
        out = append(out, res)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}

// ConfirmedCountForDate returns how many non-cancelled reservations
// the restaurant holds on the date.  Informational only.
func (r *ReservationRepo) ConfirmedCountForDate(ctx context.Context, restaurantID uint64, date string) (int, error) {
    const q = `SELECT COUNT(*) FROM reservations
               WHERE restaurant_id = ? AND date = ? AND status <> 'CANCELLED'`
    var n int
    if err := r.db.QueryRowContext(ctx, q, restaurantID, date).Scan(&n); err != nil {
        return 0, err
    }
    return n, nil
}

// Reserve inserts res inside a single transaction after re-validating
// it against the live reservation set.  The restaurant/date's
// non-cancelled rows are read under SELECT ... FOR UPDATE so that two
// concurrent commits targeting the same restaurant-day serialize: the
// second reader blocks until the first transaction finishes, then
// sees its insert and picks a different table or loses.  The unique
// key on (table_id, date, start_minute) backstops the row locks; a
// duplicate-key failure is mapped to booking.ErrConflict like any
// other lost race.  When the day has no rows yet the FOR UPDATE read
// takes only a gap lock, which is compatible with the other racer's,
// so InnoDB resolves the race by rolling one insert back with a
// deadlock error instead; retryOnContention re-runs the read-pick-
// insert so that loser either books a free table or gets ErrConflict.
func (r *ReservationRepo) Reserve(ctx context.Context, res *model.Reservation, pick func(live []model.Reservation) (uint64, bool)) error {
    return retryOnContention(func() error {
        return r.reserveOnce(ctx, res, pick)
    })
}

func (r *ReservationRepo) reserveOnce(ctx context.Context, res *model.Reservation, pick func(live []model.Reservation) (uint64, bool)) error {
    tx, err := r.db.BeginTx(ctx, nil)
    if err != nil {
        return err
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    const liveQ = `SELECT ` + reservationColumns + `
                   FROM reservations
                   WHERE restaurant_id = ? AND date = ? AND status <> 'CANCELLED'
                   ORDER BY table_id, start_minute
                   FOR UPDATE`
    rows, err := tx.QueryContext(ctx, liveQ, res.RestaurantID, res.Date)
    if err != nil {
        return err
    }
    live := make([]model.Reservation, 0)
    for rows.Next() {
        lr, scanErr := scanReservation(rows)
        if scanErr != nil {
            rows.Close()
            return scanErr
        }
        live = append(live, lr)
    }
    if err := rows.Err(); err != nil {
        rows.Close()
        return err
    }
    // Close before the insert; the transaction supports one active
    // statement at a time.
    if err := rows.Close(); err != nil {
        return err
    }

    tableID, ok := pick(live)
    if !ok {
        return booking.ErrConflict
    }
    res.TableID = tableID

    const ins = `INSERT INTO reservations
                 (confirmation_code, restaurant_id, table_id, user_id, date, start_minute,
                  party_size, status, contact_name, contact_email, contact_phone)
                 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
    var userID interface{}
    if res.UserID != 0 {
        userID = res.UserID
    }
    result, err := tx.ExecContext(ctx, ins,
        res.ConfirmationCode, res.RestaurantID, res.TableID, userID, res.Date, res.StartMinute,
        res.PartySize, res.Status, res.ContactName, res.ContactEmail, res.ContactPhone,
    )
    if err != nil {
        if isDuplicateKey(err) {
            return booking.ErrConflict
        }
        return err
    }
    id, err := result.LastInsertId()
    if err != nil {
        return err
    }
    res.ID = uint64(id)

    // Query back defaults so the caller gets a fully populated record.
    const sel = `SELECT created_at, updated_at FROM reservations WHERE id = ?`
    if err := tx.QueryRowContext(ctx, sel, res.ID).Scan(&res.CreatedAt, &res.UpdatedAt); err != nil {
        return err
    }

    if err := tx.Commit(); err != nil {
        return err
    }
    committed = true
    return nil
}

// CancelReservation flips the reservation to CANCELLED.  The row is
// kept as an audit trail and its identity is never reused.  It
// returns booking.ErrNotFound for an unknown ID and
// booking.ErrConflict when the reservation is already cancelled.
func (r *ReservationRepo) CancelReservation(ctx context.Context, id uint64) error {
    const upd = `UPDATE reservations SET status = 'CANCELLED'
                 WHERE id = ? AND status <> 'CANCELLED'`
    result, err := r.db.ExecContext(ctx, upd, id)
    if err != nil {
        return err
    }
    affected, err := result.RowsAffected()
    if err != nil {
        return err
    }
    if affected == 1 {
        return nil
    }
    // Nothing changed: either the row is missing or already cancelled.
    var status string
    err = r.db.QueryRowContext(ctx, `SELECT status FROM reservations WHERE id = ?`, id).Scan(&status)
    if errors.Is(err, sql.ErrNoRows) {
        return booking.ErrNotFound
    }
    if err != nil {
        return err
    }
    return booking.ErrConflict
}

// GetByID returns a single reservation.  It returns booking.ErrNotFound
// when the ID does not exist.
func (r *ReservationRepo) GetByID(ctx context.Context, id uint64) (*model.Reservation, error) {
    const q = `SELECT ` + reservationColumns + ` FROM reservations WHERE id = ?`
    res, err := scanReservation(r.db.QueryRowContext(ctx, q, id))
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, booking.ErrNotFound
        }
        return nil, err
    }
    return &res, nil
}

// ReservationDetail is a reservation joined with its restaurant and
// table for display to the guest who booked it.
type ReservationDetail struct {
    ID               uint64 `json:"id"`
    ConfirmationCode string `json:"confirmation_code"`
    RestaurantID     uint64 `json:"restaurant_id"`
    RestaurantName   string `json:"restaurant_name"`
    TableLabel       string `json:"table_label"`
    Date             string `json:"date"`
    Time             string `json:"time"`
    PartySize        int    `json:"party_size"`
    Status           string `json:"status"`
    CreatedAt        string `json:"created_at"`
}

// ListByUser returns the user's reservations, newest first, joined
// with restaurant and table display fields.  An empty slice is
// returned when the user has no reservations.
func (r *ReservationRepo) ListByUser(ctx context.Context, userID uint64) ([]ReservationDetail, error) {
    const q = `SELECT rv.id, rv.confirmation_code, rv.restaurant_id, rs.name, tb.label,
                      DATE_FORMAT(rv.date, '%Y-%m-%d'), rv.start_minute, rv.party_size, rv.status,
                      rv.created_at
               FROM reservations rv
               JOIN restaurants rs ON rs.id = rv.restaurant_id
               JOIN tables tb      ON tb.id = rv.table_id
               WHERE rv.user_id = ?
               ORDER BY rv.created_at DESC, rv.id DESC`
    rows, err := r.db.QueryContext(ctx, q, userID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    details := make([]ReservationDetail, 0)
    for rows.Next() {
        var d ReservationDetail
        var startMinute int
        var createdAt time.Time
        if err := rows.Scan(
            &d.ID, &d.ConfirmationCode, &d.RestaurantID, &d.RestaurantName, &d.TableLabel,
            &d.Date, &startMinute, &d.PartySize, &d.Status, &createdAt,
        ); err != nil {
            return nil, err
        }
        d.Time = booking.MinuteToClock(startMinute)
        d.CreatedAt = createdAt.UTC().Format(time.RFC3339)
        details = append(details, d)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return details, nil
}
