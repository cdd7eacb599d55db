package repository

import (
    "context"
    "database/sql"
    "errors"

    "github.com/iliyamo/restaurant-table-reservation/internal/booking"
    "github.com/iliyamo/restaurant-table-reservation/internal/model"
)

// RestaurantRepo provides read-only access to restaurants, their
// tables and their operating hours.  Restaurant configuration is
// owned by restaurant management; the booking engine only ever reads
// it, so no write methods exist here.  Every returned restaurant is
// fully populated with its Tables and Hours so the planner never
// issues follow-up queries.
type RestaurantRepo struct {
    db *sql.DB
}

// NewRestaurantRepo constructs a RestaurantRepo bound to the given database.
func NewRestaurantRepo(db *sql.DB) *RestaurantRepo { return &RestaurantRepo{db: db} }

var _ booking.RestaurantStore = (*RestaurantRepo)(nil)

// RestaurantByID loads one restaurant with its tables and hours.  It
// returns booking.ErrNotFound when no such restaurant exists.
func (r *RestaurantRepo) RestaurantByID(ctx context.Context, id uint64) (*model.Restaurant, error) {
    const q = `SELECT id, name, cuisine, city, state, zip_code, cost_rating, rating, created_at, updated_at
               FROM restaurants WHERE id = ?`
    var rest model.Restaurant
    err := r.db.QueryRowContext(ctx, q, id).Scan(
        &rest.ID, &rest.Name, &rest.Cuisine, &rest.City, &rest.State, &rest.ZipCode,
        &rest.CostRating, &rest.Rating, &rest.CreatedAt, &rest.UpdatedAt,
    )
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, booking.ErrNotFound
        }
        return nil, err
    }
    if err := r.loadChildren(ctx, []*model.Restaurant{&rest}); err != nil {
        return nil, err
    }
    return &rest, nil
}

// ListRestaurants returns every restaurant ordered by ascending ID.
// Tables and hours are loaded with one bulk query each rather than
// per restaurant.
func (r *RestaurantRepo) ListRestaurants(ctx context.Context) ([]model.Restaurant, error) {
    const q = `SELECT id, name, cuisine, city, state, zip_code, cost_rating, rating, created_at, updated_at
               FROM restaurants ORDER BY id`
    rows, err := r.db.QueryContext(ctx, q)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    restaurants := make([]model.Restaurant, 0)
    for rows.Next() {
        var rest model.Restaurant
        if err := rows.Scan(
            &rest.ID, &rest.Name, &rest.Cuisine, &rest.City, &rest.State, &rest.ZipCode,
            &rest.CostRating, &rest.Rating, &rest.CreatedAt, &rest.UpdatedAt,
        ); err != nil {
            return nil, err
        }
        restaurants = append(restaurants, rest)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    if len(restaurants) == 0 {
        return restaurants, nil
    }
    refs := make([]*model.Restaurant, len(restaurants))
    for i := range restaurants {
        refs[i] = &restaurants[i]
    }
    if err := r.loadChildren(ctx, refs); err != nil {
        return nil, err
    }
    return restaurants, nil
}

// loadChildren populates Tables and Hours for the given restaurants
// in two bulk queries.  Tables come back ordered by ID, which is the
// order the engine's tie-break relies on.
func (r *RestaurantRepo) loadChildren(ctx context.Context, restaurants []*model.Restaurant) error {
    index := make(map[uint64]*model.Restaurant, len(restaurants))
    ids := make([]interface{}, 0, len(restaurants))
    placeholders := ""
    for i, rest := range restaurants {
        index[rest.ID] = rest
        ids = append(ids, rest.ID)
        if i > 0 {
            placeholders += ","
        }
        placeholders += "?"
    }

    tableQ := `SELECT id, restaurant_id, label, capacity
               FROM tables
               WHERE restaurant_id IN (` + placeholders + `)
               ORDER BY restaurant_id, id`
    trows, err := r.db.QueryContext(ctx, tableQ, ids...)
    if err != nil {
        return err
    }
    defer trows.Close()
    for trows.Next() {
        var t model.Table
        if err := trows.Scan(&t.ID, &t.RestaurantID, &t.Label, &t.Capacity); err != nil {
            return err
        }
        if rest, ok := index[t.RestaurantID]; ok {
            rest.Tables = append(rest.Tables, t)
        }
    }
    if err := trows.Err(); err != nil {
        return err
    }

    hoursQ := `SELECT restaurant_id, weekday, open_minute, close_minute
               FROM operating_hours
               WHERE restaurant_id IN (` + placeholders + `)
               ORDER BY restaurant_id, weekday`
    hrows, err := r.db.QueryContext(ctx, hoursQ, ids...)
    if err != nil {
        return err
    }
    defer hrows.Close()
    for hrows.Next() {
        var h model.OperatingHours
        if err := hrows.Scan(&h.RestaurantID, &h.Weekday, &h.OpenMinute, &h.CloseMinute); err != nil {
            return err
        }
        if rest, ok := index[h.RestaurantID]; ok {
            rest.Hours = append(rest.Hours, h)
        }
    }
    return hrows.Err()
}
