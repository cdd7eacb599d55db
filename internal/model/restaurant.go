package model

import "time"

// Restaurant represents a bookable venue together with its physical
// tables and weekly operating hours.  The engine treats restaurants
// as read-only input: rows are owned by restaurant management and
// only ever loaded here.  This struct corresponds to a row in the
// `restaurants` table plus its child `tables` and `operating_hours`
// rows.
//
// Fields:
//  ID         – primary key identifier.
//  Name       – display name of the restaurant.
//  Cuisine    – cuisine type (e.g. "Italian").
//  City       – address city, used by the location filter.
//  State      – address state, used by the location filter.
//  ZipCode    – five digit postal code, used by the location filter.
//  CostRating – relative cost bucket (1–4).
//  Rating     – aggregate review rating; availability results are
//               ordered by this value, descending.
//  Tables     – physical tables, ordered by ascending ID.
//  Hours      – weekly operating hours, at most one entry per weekday.
//  CreatedAt  – timestamp when the row was created.
//  UpdatedAt  – timestamp of last update.
type Restaurant struct {
    ID         uint64           // restaurants.id
    Name       string           // restaurants.name
    Cuisine    string           // restaurants.cuisine
    City       string           // restaurants.city
    State      string           // restaurants.state
    ZipCode    string           // restaurants.zip_code
    CostRating uint8            // restaurants.cost_rating
    Rating     float64          // restaurants.rating
    Tables     []Table          // child rows of `tables`
    Hours      []OperatingHours // child rows of `operating_hours`
    CreatedAt  time.Time        // restaurants.created_at
    UpdatedAt  time.Time        // restaurants.updated_at
}

// Table describes a single physical table inside a restaurant.  A
// table is immutable for the duration of an availability computation;
// its capacity is the only attribute the engine matches on.
//
// Fields:
//  ID           – primary key identifier, unique across restaurants.
//  RestaurantID – restaurant the table belongs to.
//  Label        – human-friendly table name (e.g. "T4", "Patio 2").
//  Capacity     – maximum party size the table seats; always positive.
type Table struct {
    ID           uint64 // tables.id
    RestaurantID uint64 // tables.restaurant_id
    Label        string // tables.label
    Capacity     uint32 // tables.capacity
}

// OperatingHours records when a restaurant is open on one weekday.
// Open and close are expressed as minute-of-day (0–1439) with
// CloseMinute strictly greater than OpenMinute; the model has no
// overnight wraparound.  A weekday without an entry means the
// restaurant is closed that day.
//
// Fields:
//  RestaurantID – owning restaurant.
//  Weekday      – day of week, 0 = Sunday through 6 = Saturday.
//  OpenMinute   – first minute of day the restaurant is open.
//  CloseMinute  – minute of day the restaurant closes.
type OperatingHours struct {
    RestaurantID uint64 // operating_hours.restaurant_id
    Weekday      int    // operating_hours.weekday
    OpenMinute   int    // operating_hours.open_minute
    CloseMinute  int    // operating_hours.close_minute
}
