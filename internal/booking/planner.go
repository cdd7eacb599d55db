package booking

import (
    "context"
    "sort"
    "strings"
    "time"

    "golang.org/x/sync/errgroup"

    "github.com/iliyamo/restaurant-table-reservation/internal/model"
)

// planWorkers bounds how many restaurants are planned concurrently.
const planWorkers = 8

// SearchQuery carries a validated availability search.  Build one
// with ParseSearchQuery rather than by hand so the date and time
// formats are checked in one place.
type SearchQuery struct {
    Date            string // civil date "YYYY-MM-DD"
    RequestedMinute int    // requested time as minute-of-day
    PartySize       int    // number of guests, >= 1
    Location        string // optional zip / city / state filter
}

// ParseSearchQuery validates raw search input.  date must be
// "YYYY-MM-DD", clock "HH:MM" and partySize at least 1.  location may
// be empty.
func ParseSearchQuery(date, clock string, partySize int, location string) (SearchQuery, error) {
    if _, err := ParseDate(date); err != nil {
        return SearchQuery{}, invalid("date", "must be YYYY-MM-DD")
    }
    minute, err := ParseClock(clock)
    if err != nil {
        return SearchQuery{}, err
    }
    if partySize < 1 {
        return SearchQuery{}, invalid("party_size", "must be at least 1")
    }
    return SearchQuery{
        Date:            date,
        RequestedMinute: minute,
        PartySize:       partySize,
        Location:        strings.TrimSpace(location),
    }, nil
}

// AvailabilityResult is one restaurant's slice of the search answer:
// a summary of the restaurant plus the ordered slots at which the
// party can be seated.  Results are derived per query and never
// persisted.
type AvailabilityResult struct {
    RestaurantID  uint64  `json:"id"`
    Name          string  `json:"name"`
    Cuisine       string  `json:"cuisine"`
    City          string  `json:"city"`
    State         string  `json:"state"`
    ZipCode       string  `json:"zip_code"`
    CostRating    uint8   `json:"cost_rating"`
    Rating        float64 `json:"rating"`
    BookingsToday int     `json:"bookings_today"`
    Slots         []Slot  `json:"available_slots"`
}

// Planner computes availability across restaurants.  It is read-only
// and side-effect-free: every per-restaurant computation depends only
// on data fetched for that restaurant, so they run in parallel.
type Planner struct {
    Restaurants  RestaurantStore
    Reservations ReservationStore
}

// NewPlanner constructs a Planner over the given stores.
func NewPlanner(rs RestaurantStore, res ReservationStore) *Planner {
    if rs == nil || res == nil {
        panic("nil store passed to NewPlanner")
    }
    return &Planner{Restaurants: rs, Reservations: res}
}

// Plan returns, for every restaurant that passes the location filter,
// is open, has a big-enough table and has at least one free slot in
// the ±30 minute window, an AvailabilityResult.  Output is ordered by
// descending rating with ascending restaurant ID as the tie-break, so
// repeated identical queries return identical results.  An empty
// slice is a valid answer, not an error.
func (p *Planner) Plan(ctx context.Context, q SearchQuery) ([]AvailabilityResult, error) {
    restaurants, err := p.Restaurants.ListRestaurants(ctx)
    if err != nil {
        return nil, err
    }

    date, err := ParseDate(q.Date)
    if err != nil {
        return nil, invalid("date", "must be YYYY-MM-DD")
    }
    windowStart, windowEnd := Window(q.RequestedMinute)

    // One result cell per restaurant; workers write only their own
    // index so no locking is needed.  Nil cells are dropped after.
    cells := make([]*AvailabilityResult, len(restaurants))
    g, gctx := errgroup.WithContext(ctx)
    g.SetLimit(planWorkers)
    for i := range restaurants {
        g.Go(func() error {
            r := &restaurants[i]
            if !matchesLocation(r, q.Location) {
                return nil
            }
            result, err := p.planRestaurant(gctx, r, q, date, windowStart, windowEnd)
            if err != nil {
                return err
            }
            cells[i] = result
            return nil
        })
    }
    if err := g.Wait(); err != nil {
        return nil, err
    }

    results := make([]AvailabilityResult, 0, len(cells))
    for _, c := range cells {
        if c != nil {
            results = append(results, *c)
        }
    }
    sort.SliceStable(results, func(i, j int) bool {
        if results[i].Rating != results[j].Rating {
            return results[i].Rating > results[j].Rating
        }
        return results[i].RestaurantID < results[j].RestaurantID
    })
    return results, nil
}

// planRestaurant runs the per-restaurant pipeline: hours, tables,
// candidate slots, one batch reservation fetch, then a first-fit
// check per slot.  A nil result means the restaurant contributes no
// availability.
func (p *Planner) planRestaurant(ctx context.Context, r *model.Restaurant, q SearchQuery, date time.Time, windowStart, windowEnd int) (*AvailabilityResult, error) {
    hours, open := HoursFor(r, date)
    if !open {
        return nil, nil
    }
    tables := TablesFor(r, q.PartySize)
    if len(tables) == 0 {
        return nil, nil
    }
    candidates := CandidateSlots(windowStart, windowEnd, hours.OpenMinute, hours.CloseMinute)
    if len(candidates) == 0 {
        return nil, nil
    }
    existing, err := p.Reservations.ReservationsForDate(ctx, r.ID, q.Date)
    if err != nil {
        return nil, err
    }
    // A slot is available when at least one matched table is free.
    // Which table is not decided here; the committer re-resolves it
    // against the live set under a transaction.
    available := make([]Slot, 0, len(candidates))
    for _, slot := range candidates {
        if _, ok := firstAvailableTable(tables, slot.Minute, existing); ok {
            available = append(available, slot)
        }
    }
    if len(available) == 0 {
        return nil, nil
    }
    count, err := p.Reservations.ConfirmedCountForDate(ctx, r.ID, q.Date)
    if err != nil {
        return nil, err
    }
    return &AvailabilityResult{
        RestaurantID:  r.ID,
        Name:          r.Name,
        Cuisine:       r.Cuisine,
        City:          r.City,
        State:         r.State,
        ZipCode:       r.ZipCode,
        CostRating:    r.CostRating,
        Rating:        r.Rating,
        BookingsToday: count,
        Slots:         available,
    }, nil
}

// matchesLocation applies the optional location filter: a five digit
// value is an exact zip match, anything else is a case-insensitive
// substring match against city or state.
func matchesLocation(r *model.Restaurant, location string) bool {
    if location == "" {
        return true
    }
    if isZipCode(location) {
        return r.ZipCode == location
    }
    needle := strings.ToLower(location)
    return strings.Contains(strings.ToLower(r.City), needle) ||
        strings.Contains(strings.ToLower(r.State), needle)
}

func isZipCode(s string) bool {
    if len(s) != 5 {
        return false
    }
    for i := 0; i < len(s); i++ {
        if s[i] < '0' || s[i] > '9' {
            return false
        }
    }
    return true
}
