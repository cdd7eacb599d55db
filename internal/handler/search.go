package handler

import (
    "net/http" // HTTP status codes
    "strconv"  // parsing the party_size query parameter
    "strings"  // trimming query parameters

    "github.com/labstack/echo/v4" // Echo web framework

    "github.com/iliyamo/restaurant-table-reservation/internal/booking" // allocation engine
)

// SearchHandler exposes restaurant availability search.  The endpoint
// is public: no authentication is required to browse availability.
type SearchHandler struct {
    Planner *booking.Planner // computes per-restaurant availability fan-out
}

// NewSearchHandler constructs a SearchHandler.  The planner must be
// non-nil.
func NewSearchHandler(planner *booking.Planner) *SearchHandler {
    if planner == nil {
        panic("nil planner passed to NewSearchHandler")
    }
    return &SearchHandler{Planner: planner}
}

// Search handles GET /v1/restaurants/search.  Query parameters:
//
//  date       - calendar date, YYYY-MM-DD (required)
//  time       - requested time, 24h HH:MM (required)
//  party_size - number of diners, positive integer (required)
//  location   - optional city, state or 5-digit zip filter
//
// It returns every restaurant that can seat the party within 30
// minutes of the requested time, ordered by rating descending, along
// with the bookable slots per restaurant.  An empty result list is a
// normal 200 response.
func (h *SearchHandler) Search(c echo.Context) error {
    date := strings.TrimSpace(c.QueryParam("date"))
    clock := strings.TrimSpace(c.QueryParam("time"))
    location := strings.TrimSpace(c.QueryParam("location"))

    partySize, err := strconv.Atoi(strings.TrimSpace(c.QueryParam("party_size")))
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "party_size must be an integer"})
    }

    q, err := booking.ParseSearchQuery(date, clock, partySize, location)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
    }

    results, err := h.Planner.Plan(c.Request().Context(), q)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "availability search failed"})
    }

    return c.JSON(http.StatusOK, echo.Map{
        "count":       len(results),
        "restaurants": results,
    })
}
