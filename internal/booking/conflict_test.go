package booking

import (
    "testing"

    "github.com/iliyamo/restaurant-table-reservation/internal/model"
)

func TestOverlaps(t *testing.T) {
    tests := []struct {
        name string
        a, b int
        want bool
    }{
        {"identical start", 1200, 1200, true},
        {"one hour apart", 1260, 1200, true},
        {"exactly back to back", 1320, 1200, false},
        {"earlier but overlapping", 1140, 1200, true},
        {"earlier back to back", 1080, 1200, false},
    }
    for _, tt := range tests {
        t.Run(tt.name, func(t *testing.T) {
            if got := Overlaps(tt.a, tt.b); got != tt.want {
                t.Fatalf("Overlaps(%d, %d) = %v, want %v", tt.a, tt.b, got, tt.want)
            }
            if got := Overlaps(tt.b, tt.a); got != tt.want {
                t.Fatalf("Overlaps(%d, %d) = %v, want %v (symmetry)", tt.b, tt.a, got, tt.want)
            }
        })
    }
}

func TestTableAvailable(t *testing.T) {
    existing := []model.Reservation{
        {TableID: 1, StartMinute: 1200, Status: model.ReservationConfirmed},
        {TableID: 2, StartMinute: 1200, Status: model.ReservationCancelled},
    }

    if TableAvailable(1, 1200, existing) {
        t.Error("slot 1200 should be blocked by the 20:00 reservation")
    }
    if TableAvailable(1, 1260, existing) {
        t.Error("slot 1260 should be blocked, 1260 < 1200+120")
    }
    if !TableAvailable(1, 1320, existing) {
        t.Error("slot 1320 should be free, occupancy ends at 1320")
    }
    if !TableAvailable(2, 1200, existing) {
        t.Error("cancelled reservation must not block table 2")
    }
    if !TableAvailable(3, 1200, existing) {
        t.Error("reservations on other tables must not block table 3")
    }
}

func TestFirstAvailableTablePicksLowestID(t *testing.T) {
    tables := []model.Table{{ID: 4, Capacity: 4}, {ID: 7, Capacity: 4}, {ID: 9, Capacity: 6}}

    id, ok := firstAvailableTable(tables, 1200, nil)
    if !ok || id != 4 {
        t.Fatalf("expected table 4 on empty set, got (%d, %v)", id, ok)
    }

    taken := []model.Reservation{{TableID: 4, StartMinute: 1200, Status: model.ReservationConfirmed}}
    id, ok = firstAvailableTable(tables, 1230, taken)
    if !ok || id != 7 {
        t.Fatalf("expected table 7 when 4 is taken, got (%d, %v)", id, ok)
    }

    allTaken := []model.Reservation{
        {TableID: 4, StartMinute: 1200, Status: model.ReservationConfirmed},
        {TableID: 7, StartMinute: 1230, Status: model.ReservationPending},
        {TableID: 9, StartMinute: 1180, Status: model.ReservationConfirmed},
    }
    if _, ok := firstAvailableTable(tables, 1200, allTaken); ok {
        t.Fatal("expected no table when every candidate is occupied")
    }
}
