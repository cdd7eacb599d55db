package booking

import (
    "context"
    "errors"
    "sync"
    "testing"
    "time"

    "github.com/iliyamo/restaurant-table-reservation/internal/model"
)

// testNow pins "now" to the Sunday before the fixture Saturday so
// 2026-09-05 is always in the future.
var testNow = time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

func commitRequest(partySize int) CommitRequest {
    return CommitRequest{
        RestaurantID: 1,
        Date:         "2026-09-05",
        Clock:        "19:00",
        PartySize:    partySize,
        Contact:      Contact{Name: "Ada Lovelace", Email: "ada@example.com", Phone: "555-0100"},
    }
}

func newTestCommitter(store *memStore) *Committer {
    c := NewCommitter(store, store)
    c.Now = fixedClock(testNow)
    return c
}

func TestCommitSuccess(t *testing.T) {
    store := newMemStore(
        testRestaurant(1, "Bistro", 4.8,
            model.Table{ID: 11, RestaurantID: 1, Capacity: 2},
            model.Table{ID: 12, RestaurantID: 1, Capacity: 4},
        ),
    )
    c := newTestCommitter(store)

    res, err := c.Commit(context.Background(), commitRequest(2))
    if err != nil {
        t.Fatalf("Commit: %v", err)
    }
    if res.ID == 0 {
        t.Error("expected reservation ID to be assigned")
    }
    if res.TableID != 11 {
        t.Errorf("TableID = %d, want 11 (lowest-ID fitting table)", res.TableID)
    }
    if res.Status != model.ReservationConfirmed {
        t.Errorf("Status = %q, want %q", res.Status, model.ReservationConfirmed)
    }
    if res.ConfirmationCode == "" {
        t.Error("expected a confirmation code")
    }
    if res.StartMinute != 1140 {
        t.Errorf("StartMinute = %d, want 1140", res.StartMinute)
    }
}

func TestCommitConfirmationCodesAreUnique(t *testing.T) {
    store := newMemStore(
        testRestaurant(1, "Bistro", 4.8,
            model.Table{ID: 11, RestaurantID: 1, Capacity: 4},
            model.Table{ID: 12, RestaurantID: 1, Capacity: 4},
        ),
    )
    c := newTestCommitter(store)

    first, err := c.Commit(context.Background(), commitRequest(2))
    if err != nil {
        t.Fatalf("first Commit: %v", err)
    }
    req := commitRequest(2)
    req.Clock = "12:00" // far from the first booking
    second, err := c.Commit(context.Background(), req)
    if err != nil {
        t.Fatalf("second Commit: %v", err)
    }
    if first.ConfirmationCode == second.ConfirmationCode {
        t.Fatal("confirmation codes must be unique per reservation")
    }
}

func TestCommitValidation(t *testing.T) {
    store := newMemStore(
        testRestaurant(1, "Bistro", 4.8, model.Table{ID: 11, RestaurantID: 1, Capacity: 4}),
    )
    c := newTestCommitter(store)

    mutate := []struct {
        name string
        fn   func(*CommitRequest)
    }{
        {"party size zero", func(r *CommitRequest) { r.PartySize = 0 }},
        {"bad date", func(r *CommitRequest) { r.Date = "Saturday" }},
        {"past date", func(r *CommitRequest) { r.Date = "2026-08-29" }},
        {"bad time", func(r *CommitRequest) { r.Clock = "late" }},
        {"before opening", func(r *CommitRequest) { r.Clock = "08:00" }},
        {"after closing", func(r *CommitRequest) { r.Clock = "23:00" }},
        {"missing contact", func(r *CommitRequest) { r.Contact = Contact{} }},
        {"party too large for any table", func(r *CommitRequest) { r.PartySize = 10 }},
    }
    for _, tt := range mutate {
        t.Run(tt.name, func(t *testing.T) {
            req := commitRequest(2)
            tt.fn(&req)
            if _, err := c.Commit(context.Background(), req); !IsValidation(err) {
                t.Fatalf("expected ValidationError, got %v", err)
            }
        })
    }

    t.Run("unknown restaurant", func(t *testing.T) {
        req := commitRequest(2)
        req.RestaurantID = 99
        if _, err := c.Commit(context.Background(), req); !errors.Is(err, ErrNotFound) {
            t.Fatalf("expected ErrNotFound, got %v", err)
        }
    })
}

func TestCommitConflictWhenTableTaken(t *testing.T) {
    store := newMemStore(
        testRestaurant(1, "One Table", 4.0, model.Table{ID: 11, RestaurantID: 1, Capacity: 4}),
    )
    c := newTestCommitter(store)

    if _, err := c.Commit(context.Background(), commitRequest(2)); err != nil {
        t.Fatalf("first Commit: %v", err)
    }
    // Same table, overlapping interval 30 minutes later.
    req := commitRequest(2)
    req.Clock = "19:30"
    if _, err := c.Commit(context.Background(), req); !errors.Is(err, ErrConflict) {
        t.Fatalf("expected ErrConflict, got %v", err)
    }
    // Two hours later the table is free again.
    req.Clock = "21:00"
    if _, err := c.Commit(context.Background(), req); err != nil {
        t.Fatalf("back-to-back Commit: %v", err)
    }
}

func TestConcurrentCommitsExactlyOneWins(t *testing.T) {
    store := newMemStore(
        testRestaurant(1, "One Table", 4.0, model.Table{ID: 11, RestaurantID: 1, Capacity: 4}),
    )
    c := newTestCommitter(store)

    const attempts = 16
    var (
        start    sync.WaitGroup
        done     sync.WaitGroup
        mu       sync.Mutex
        wins     int
        conflict int
    )
    start.Add(1)
    for i := 0; i < attempts; i++ {
        done.Add(1)
        go func() {
            defer done.Done()
            start.Wait() // release all goroutines together
            _, err := c.Commit(context.Background(), commitRequest(2))
            mu.Lock()
            defer mu.Unlock()
            switch {
            case err == nil:
                wins++
            case errors.Is(err, ErrConflict):
                conflict++
            default:
                t.Errorf("unexpected error: %v", err)
            }
        }()
    }
    start.Done()
    done.Wait()

    if wins != 1 {
        t.Fatalf("exactly one concurrent commit must win, got %d", wins)
    }
    if conflict != attempts-1 {
        t.Fatalf("expected %d conflicts, got %d", attempts-1, conflict)
    }

    // The table invariant must hold afterwards: no overlapping live
    // reservations on the same table and date.
    live, _ := store.ReservationsForDate(context.Background(), 1, "2026-09-05")
    for i := range live {
        for j := i + 1; j < len(live); j++ {
            if live[i].TableID == live[j].TableID && Overlaps(live[i].StartMinute, live[j].StartMinute) {
                t.Fatalf("overlapping reservations persisted: %+v and %+v", live[i], live[j])
            }
        }
    }
}

func TestCancelFreesCapacity(t *testing.T) {
    store := newMemStore(
        testRestaurant(1, "One Table", 4.0, model.Table{ID: 11, RestaurantID: 1, Capacity: 4}),
    )
    c := newTestCommitter(store)

    res, err := c.Commit(context.Background(), commitRequest(2))
    if err != nil {
        t.Fatalf("Commit: %v", err)
    }

    // The slot is gone from search results while the booking stands.
    p := NewPlanner(store, store)
    q, _ := ParseSearchQuery("2026-09-05", "19:00", 2, "")
    results, err := p.Plan(context.Background(), q)
    if err != nil {
        t.Fatalf("Plan: %v", err)
    }
    if len(results) != 0 {
        t.Fatalf("expected no availability while booked, got %v", results)
    }

    if err := c.Cancel(context.Background(), res.ID); err != nil {
        t.Fatalf("Cancel: %v", err)
    }

    results, err = p.Plan(context.Background(), q)
    if err != nil {
        t.Fatalf("Plan after cancel: %v", err)
    }
    if len(results) != 1 {
        t.Fatalf("cancelled reservation should free the window, got %d results", len(results))
    }

    // The same slot can now be booked again, and cancelling twice conflicts.
    if _, err := c.Commit(context.Background(), commitRequest(2)); err != nil {
        t.Fatalf("rebook after cancel: %v", err)
    }
    if err := c.Cancel(context.Background(), res.ID); !errors.Is(err, ErrConflict) {
        t.Fatalf("second cancel should conflict, got %v", err)
    }
    if err := c.Cancel(context.Background(), 9999); !errors.Is(err, ErrNotFound) {
        t.Fatalf("cancelling unknown reservation should be ErrNotFound, got %v", err)
    }
}
