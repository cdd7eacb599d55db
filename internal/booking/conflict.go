package booking

import "github.com/iliyamo/restaurant-table-reservation/internal/model"

// Overlaps reports whether two occupancy intervals collide.  Each
// reservation holds its table for [start, start+ReservationDuration);
// the intervals overlap iff a < b+d && b < a+d.
func Overlaps(a, b int) bool {
    return a < b+model.ReservationDuration && b < a+model.ReservationDuration
}

// TableAvailable reports whether the table can take a reservation
// starting at startMinute given the existing reservation set for the
// date.  Reservations on other tables and cancelled reservations are
// ignored.  This is evaluated independently per table; at the volumes
// involved (tens of reservations per restaurant-day) a linear scan
// beats any indexed structure.
func TableAvailable(tableID uint64, startMinute int, existing []model.Reservation) bool {
    for i := range existing {
        res := &existing[i]
        if res.TableID != tableID || !res.Occupies() {
            continue
        }
        if Overlaps(startMinute, res.StartMinute) {
            return false
        }
    }
    return true
}

// firstAvailableTable returns the lowest-ID table from tables that is
// free at startMinute, or ok=false when every candidate is taken.
// tables must already be sorted by ascending ID (TablesFor guarantees
// this), which makes the assignment deterministic rather than random.
func firstAvailableTable(tables []model.Table, startMinute int, existing []model.Reservation) (uint64, bool) {
    for _, t := range tables {
        if TableAvailable(t.ID, startMinute, existing) {
            return t.ID, true
        }
    }
    return 0, false
}
