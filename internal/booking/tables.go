package booking

import (
    "sort"

    "github.com/iliyamo/restaurant-table-reservation/internal/model"
)

// TablesFor returns the restaurant's tables whose capacity can seat
// the party, ordered by ascending table ID.  The ordering matters: it
// is the deterministic tie-break the committer uses when several
// tables are free.  An empty result means the restaurant can never
// seat this party size and is excluded upstream; it is not an error.
func TablesFor(r *model.Restaurant, partySize int) []model.Table {
    matched := make([]model.Table, 0, len(r.Tables))
    for _, t := range r.Tables {
        if int(t.Capacity) >= partySize {
            matched = append(matched, t)
        }
    }
    sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
    return matched
}
