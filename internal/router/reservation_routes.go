package router

import (
    "github.com/labstack/echo/v4"

    "github.com/iliyamo/restaurant-table-reservation/internal/handler"
    "github.com/iliyamo/restaurant-table-reservation/internal/middleware"
)

// RegisterReservations registers diner-scoped booking endpoints under
// /v1.  All routes require a valid JWT.  Diners can book a table,
// list their own reservations, inspect a single reservation and
// cancel one.  Ownership is validated within the handlers.
func RegisterReservations(e *echo.Echo, h *handler.ReservationHandler, jwtSecret string) {
    g := e.Group("/v1", middleware.JWTAuth(jwtSecret))

    g.POST("/reservations", h.Create)
    g.GET("/my-reservations", h.ListMine)
    g.GET("/reservations/:id", h.Get)
    g.DELETE("/reservations/:id", h.Cancel)
}
