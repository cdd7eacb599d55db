package booking

import (
    "context"
    "reflect"
    "testing"

    "github.com/iliyamo/restaurant-table-reservation/internal/model"
)

// searchQuery builds a valid query for the shared test fixtures:
// Saturday 2026-09-05 at 18:30.
func searchQuery(t *testing.T, partySize int, location string) SearchQuery {
    t.Helper()
    q, err := ParseSearchQuery("2026-09-05", "18:30", partySize, location)
    if err != nil {
        t.Fatalf("ParseSearchQuery: %v", err)
    }
    return q
}

func TestParseSearchQueryValidation(t *testing.T) {
    tests := []struct {
        name  string
        date  string
        clock string
        party int
    }{
        {"bad date", "next friday", "18:30", 2},
        {"bad time", "2026-09-05", "6pm", 2},
        {"zero party", "2026-09-05", "18:30", 0},
        {"negative party", "2026-09-05", "18:30", -3},
    }
    for _, tt := range tests {
        t.Run(tt.name, func(t *testing.T) {
            _, err := ParseSearchQuery(tt.date, tt.clock, tt.party, "")
            if !IsValidation(err) {
                t.Fatalf("expected ValidationError, got %v", err)
            }
        })
    }
}

func TestPlanOrdersByRatingThenID(t *testing.T) {
    store := newMemStore(
        testRestaurant(3, "Trattoria", 4.2, model.Table{ID: 31, RestaurantID: 3, Capacity: 4}),
        testRestaurant(1, "Bistro", 4.8, model.Table{ID: 11, RestaurantID: 1, Capacity: 4}),
        testRestaurant(2, "Diner", 4.8, model.Table{ID: 21, RestaurantID: 2, Capacity: 4}),
    )
    p := NewPlanner(store, store)

    results, err := p.Plan(context.Background(), searchQuery(t, 2, ""))
    if err != nil {
        t.Fatalf("Plan: %v", err)
    }
    var order []uint64
    for _, r := range results {
        order = append(order, r.RestaurantID)
    }
    want := []uint64{1, 2, 3} // 4.8 before 4.2, ties broken by ascending ID
    if !reflect.DeepEqual(order, want) {
        t.Fatalf("result order = %v, want %v", order, want)
    }
}

func TestPlanDropsRestaurantsWithoutCapacity(t *testing.T) {
    store := newMemStore(
        testRestaurant(1, "Small Tables", 4.5,
            model.Table{ID: 11, RestaurantID: 1, Capacity: 2},
            model.Table{ID: 12, RestaurantID: 1, Capacity: 4},
        ),
    )
    p := NewPlanner(store, store)

    results, err := p.Plan(context.Background(), searchQuery(t, 6, ""))
    if err != nil {
        t.Fatalf("Plan: %v", err)
    }
    if len(results) != 0 {
        t.Fatalf("party of 6 against a largest table of 4 should yield nothing, got %d results", len(results))
    }
}

func TestPlanDropsClosedRestaurants(t *testing.T) {
    r := testRestaurant(1, "Weekday Only", 4.0, model.Table{ID: 11, RestaurantID: 1, Capacity: 4})
    r.Hours = []model.OperatingHours{{RestaurantID: 1, Weekday: 1, OpenMinute: 600, CloseMinute: 1320}}
    store := newMemStore(r)
    p := NewPlanner(store, store)

    // 2026-09-05 is a Saturday; the restaurant only opens Mondays.
    results, err := p.Plan(context.Background(), searchQuery(t, 2, ""))
    if err != nil {
        t.Fatalf("Plan: %v", err)
    }
    if len(results) != 0 {
        t.Fatalf("closed restaurant should be dropped, got %d results", len(results))
    }
}

func TestPlanLocationFilter(t *testing.T) {
    seattle := testRestaurant(1, "Pike Place", 4.5, model.Table{ID: 11, RestaurantID: 1, Capacity: 4})
    portland := testRestaurant(2, "Pearl District", 4.5, model.Table{ID: 21, RestaurantID: 2, Capacity: 4})
    portland.City = "Portland"
    portland.State = "OR"
    portland.ZipCode = "97209"
    store := newMemStore(seattle, portland)
    p := NewPlanner(store, store)

    tests := []struct {
        location string
        want     []uint64
    }{
        {"", []uint64{1, 2}},
        {"98101", []uint64{1}},     // exact zip
        {"port", []uint64{2}},      // substring of city, case-insensitive
        {"OR", []uint64{2}},        // state
        {"wa", []uint64{1}},        // lower-cased state
        {"12345", nil},             // unknown zip
        {"Boise", nil},             // unknown city
    }
    for _, tt := range tests {
        results, err := p.Plan(context.Background(), searchQuery(t, 2, tt.location))
        if err != nil {
            t.Fatalf("Plan(%q): %v", tt.location, err)
        }
        var got []uint64
        for _, r := range results {
            got = append(got, r.RestaurantID)
        }
        if !reflect.DeepEqual(got, tt.want) {
            t.Errorf("Plan(location=%q) = %v, want %v", tt.location, got, tt.want)
        }
    }
}

func TestPlanSkipsOccupiedSlots(t *testing.T) {
    store := newMemStore(
        testRestaurant(1, "One Table", 4.0, model.Table{ID: 11, RestaurantID: 1, Capacity: 4}),
    )
    // Occupy the single table 18:00–20:00; every slot in the 18:00 to
    // 19:00 window overlaps it.
    store.reservations = append(store.reservations, model.Reservation{
        ID: 1, RestaurantID: 1, TableID: 11, Date: "2026-09-05",
        StartMinute: 1080, PartySize: 2, Status: model.ReservationConfirmed,
    })
    p := NewPlanner(store, store)

    results, err := p.Plan(context.Background(), searchQuery(t, 2, ""))
    if err != nil {
        t.Fatalf("Plan: %v", err)
    }
    if len(results) != 0 {
        t.Fatalf("fully occupied window should drop the restaurant, got %v", results)
    }
}

func TestPlanIsIdempotent(t *testing.T) {
    store := newMemStore(
        testRestaurant(1, "Bistro", 4.8, model.Table{ID: 11, RestaurantID: 1, Capacity: 4}),
        testRestaurant(2, "Diner", 4.1, model.Table{ID: 21, RestaurantID: 2, Capacity: 6}),
    )
    store.reservations = append(store.reservations, model.Reservation{
        ID: 1, RestaurantID: 1, TableID: 11, Date: "2026-09-05",
        StartMinute: 1110, PartySize: 2, Status: model.ReservationConfirmed,
    })
    p := NewPlanner(store, store)
    q := searchQuery(t, 2, "")

    first, err := p.Plan(context.Background(), q)
    if err != nil {
        t.Fatalf("Plan: %v", err)
    }
    for i := 0; i < 5; i++ {
        again, err := p.Plan(context.Background(), q)
        if err != nil {
            t.Fatalf("Plan (repeat %d): %v", i, err)
        }
        if !reflect.DeepEqual(first, again) {
            t.Fatalf("repeat %d differs:\nfirst: %+v\nagain: %+v", i, first, again)
        }
    }
}

func TestPlanReportsBookingCount(t *testing.T) {
    store := newMemStore(
        testRestaurant(1, "Busy Place", 4.0,
            model.Table{ID: 11, RestaurantID: 1, Capacity: 4},
            model.Table{ID: 12, RestaurantID: 1, Capacity: 4},
        ),
    )
    store.reservations = append(store.reservations,
        model.Reservation{ID: 1, RestaurantID: 1, TableID: 11, Date: "2026-09-05", StartMinute: 720, Status: model.ReservationConfirmed},
        model.Reservation{ID: 2, RestaurantID: 1, TableID: 12, Date: "2026-09-05", StartMinute: 780, Status: model.ReservationConfirmed},
    )
    p := NewPlanner(store, store)

    results, err := p.Plan(context.Background(), searchQuery(t, 2, ""))
    if err != nil {
        t.Fatalf("Plan: %v", err)
    }
    if len(results) != 1 {
        t.Fatalf("expected one result, got %d", len(results))
    }
    if results[0].BookingsToday != 2 {
        t.Fatalf("BookingsToday = %d, want 2", results[0].BookingsToday)
    }
}
