package booking

import (
    "context"
    "sync"
    "time"

    "github.com/iliyamo/restaurant-table-reservation/internal/model"
)

// memStore is an in-memory implementation of RestaurantStore and
// ReservationStore used by the engine tests.  Reserve holds a mutex
// for the whole read-pick-insert sequence, which gives the same
// at-most-one-winner guarantee the MySQL store gets from row locks.
type memStore struct {
    mu           sync.Mutex
    restaurants  []model.Restaurant
    reservations []model.Reservation
    nextID       uint64
}

func newMemStore(restaurants ...model.Restaurant) *memStore {
    return &memStore{restaurants: restaurants}
}

func (s *memStore) RestaurantByID(_ context.Context, id uint64) (*model.Restaurant, error) {
    s.mu.Lock()
    defer s.mu.Unlock()
    for i := range s.restaurants {
        if s.restaurants[i].ID == id {
            r := s.restaurants[i]
            return &r, nil
        }
    }
    return nil, ErrNotFound
}

func (s *memStore) ListRestaurants(_ context.Context) ([]model.Restaurant, error) {
    s.mu.Lock()
    defer s.mu.Unlock()
    out := make([]model.Restaurant, len(s.restaurants))
    copy(out, s.restaurants)
    return out, nil
}

func (s *memStore) liveForDateLocked(restaurantID uint64, date string) []model.Reservation {
    var out []model.Reservation
    for i := range s.reservations {
        res := s.reservations[i]
        if res.RestaurantID == restaurantID && res.Date == date && res.Occupies() {
            out = append(out, res)
        }
    }
    return out
}

func (s *memStore) ReservationsForDate(_ context.Context, restaurantID uint64, date string) ([]model.Reservation, error) {
    s.mu.Lock()
    defer s.mu.Unlock()
    return s.liveForDateLocked(restaurantID, date), nil
}

func (s *memStore) ConfirmedCountForDate(_ context.Context, restaurantID uint64, date string) (int, error) {
    s.mu.Lock()
    defer s.mu.Unlock()
    return len(s.liveForDateLocked(restaurantID, date)), nil
}

func (s *memStore) Reserve(_ context.Context, res *model.Reservation, pick func(live []model.Reservation) (uint64, bool)) error {
    s.mu.Lock()
    defer s.mu.Unlock()
    tableID, ok := pick(s.liveForDateLocked(res.RestaurantID, res.Date))
    if !ok {
        return ErrConflict
    }
    s.nextID++
    res.ID = s.nextID
    res.TableID = tableID
    res.CreatedAt = time.Now().UTC()
    res.UpdatedAt = res.CreatedAt
    s.reservations = append(s.reservations, *res)
    return nil
}

func (s *memStore) CancelReservation(_ context.Context, id uint64) error {
    s.mu.Lock()
    defer s.mu.Unlock()
    for i := range s.reservations {
        if s.reservations[i].ID == id {
            if s.reservations[i].Status == model.ReservationCancelled {
                return ErrConflict
            }
            s.reservations[i].Status = model.ReservationCancelled
            return nil
        }
    }
    return ErrNotFound
}

// fixedClock returns a clock pinned to the given instant.
func fixedClock(t time.Time) func() time.Time {
    return func() time.Time { return t }
}

// testRestaurant builds a restaurant open 10:00-22:00 every day with
// the given tables.
func testRestaurant(id uint64, name string, rating float64, tables ...model.Table) model.Restaurant {
    hours := make([]model.OperatingHours, 0, 7)
    for wd := 0; wd < 7; wd++ {
        hours = append(hours, model.OperatingHours{RestaurantID: id, Weekday: wd, OpenMinute: 600, CloseMinute: 1320})
    }
    return model.Restaurant{
        ID:      id,
        Name:    name,
        City:    "Seattle",
        State:   "WA",
        ZipCode: "98101",
        Rating:  rating,
        Tables:  tables,
        Hours:   hours,
    }
}
