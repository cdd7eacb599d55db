package handler

import (
    "errors"   // for errors.Is comparisons against booking sentinels
    "log"      // best-effort event publish failures are logged, not fatal
    "net/http" // HTTP status codes
    "strconv"  // parsing path parameters

    "github.com/labstack/echo/v4" // Echo web framework

    "github.com/iliyamo/restaurant-table-reservation/internal/booking"    // allocation engine
    "github.com/iliyamo/restaurant-table-reservation/internal/model"      // domain types
    "github.com/iliyamo/restaurant-table-reservation/internal/repository" // repository layer
    "github.com/iliyamo/restaurant-table-reservation/internal/service"    // queue publisher
)

// ReservationHandler serves booking creation, listing, lookup and
// cancellation on behalf of authenticated diners.  All methods assume
// JWT authentication has already been performed by middleware and may
// return 401 Unauthorized when the user ID cannot be extracted from
// the context.  Booking itself is delegated to the allocation engine,
// which re-validates table availability inside a transaction so two
// racing requests can never double-book the same table.
type ReservationHandler struct {
    Committer    *booking.Committer          // allocation engine commit path
    Reservations *repository.ReservationRepo // reservation persistence for listing and lookup
    Publisher    *service.Publisher          // optional queue publisher, may be nil
}

// NewReservationHandler constructs a ReservationHandler.  The
// committer and reservation repository must be non-nil; the publisher
// is optional and may be nil when the queue is unavailable.
func NewReservationHandler(committer *booking.Committer, reservations *repository.ReservationRepo, publisher *service.Publisher) *ReservationHandler {
    if committer == nil || reservations == nil {
        panic("nil dependency passed to NewReservationHandler")
    }
    return &ReservationHandler{Committer: committer, Reservations: reservations, Publisher: publisher}
}

// createReservationReq is the request body for POST /v1/reservations.
type createReservationReq struct {
    RestaurantID uint64          `json:"restaurant_id"`
    Date         string          `json:"date"`
    Time         string          `json:"time"`
    PartySize    int             `json:"party_size"`
    Contact      booking.Contact `json:"contact"`
}

// reservationResp is the JSON shape returned for a single reservation.
type reservationResp struct {
    ID               uint64          `json:"id"`
    ConfirmationCode string          `json:"confirmation_code"`
    RestaurantID     uint64          `json:"restaurant_id"`
    TableID          uint64          `json:"table_id"`
    Date             string          `json:"date"`
    Time             string          `json:"time"`
    PartySize        int             `json:"party_size"`
    Status           string          `json:"status"`
    Contact          booking.Contact `json:"contact"`
}

func toReservationResp(res *model.Reservation) reservationResp {
    return reservationResp{
        ID:               res.ID,
        ConfirmationCode: res.ConfirmationCode,
        RestaurantID:     res.RestaurantID,
        TableID:          res.TableID,
        Date:             res.Date,
        Time:             booking.MinuteToClock(res.StartMinute),
        PartySize:        res.PartySize,
        Status:           res.Status,
        Contact: booking.Contact{
            Name:  res.ContactName,
            Email: res.ContactEmail,
            Phone: res.ContactPhone,
        },
    }
}

// Create handles POST /v1/reservations.  It books a table for the
// requested restaurant, date and time.  The engine assigns the
// smallest fitting table; clients never pick tables themselves.
// Responses: 201 with the reservation on success, 400 for validation
// failures, 404 for an unknown restaurant, 409 when every fitting
// table is already taken for the requested time.
func (h *ReservationHandler) Create(c echo.Context) error {
    userID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    var req createReservationReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }

    res, err := h.Committer.Commit(c.Request().Context(), booking.CommitRequest{
        RestaurantID: req.RestaurantID,
        Date:         req.Date,
        Clock:        req.Time,
        PartySize:    req.PartySize,
        Contact:      req.Contact,
        UserID:       userID,
    })
    if err != nil {
        if booking.IsValidation(err) {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
        }
        if errors.Is(err, booking.ErrNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "restaurant not found"})
        }
        if errors.Is(err, booking.ErrConflict) {
            return c.JSON(http.StatusConflict, echo.Map{"error": "no table available for the requested time"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create reservation"})
    }

    // Publishing is best effort; the booking is already durable.
    if h.Publisher != nil {
        if err := h.Publisher.PublishReservationConfirmed(res); err != nil {
            log.Printf("publish reservation.confirmed failed: %v", err)
        }
    }

    return c.JSON(http.StatusCreated, echo.Map{"reservation": toReservationResp(res)})
}

// ListMine handles GET /v1/my-reservations.  It returns all
// reservations created by the current user, newest first, with
// restaurant and table details joined in.  An empty list is a normal
// response, not an error.
func (h *ReservationHandler) ListMine(c echo.Context) error {
    userID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    details, err := h.Reservations.ListByUser(c.Request().Context(), userID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load reservations"})
    }
    return c.JSON(http.StatusOK, echo.Map{
        "count": len(details),
        "items": details,
    })
}

// Get handles GET /v1/reservations/:id.  It returns a single
// reservation for the authenticated user.  A reservation owned by a
// different user yields 403, an unknown ID yields 404.
func (h *ReservationHandler) Get(c echo.Context) error {
    userID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    resID, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || resID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
    }
    res, err := h.Reservations.GetByID(c.Request().Context(), resID)
    if err != nil {
        if errors.Is(err, booking.ErrNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch reservation"})
    }
    if res.UserID != userID {
        return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
    }
    return c.JSON(http.StatusOK, echo.Map{"reservation": toReservationResp(res)})
}

// Cancel handles DELETE /v1/reservations/:id.  It cancels a
// reservation belonging to the current user, which frees its table
// for the occupied window again.  Responses: 204 on success, 404 for
// an unknown ID, 403 for another user's reservation, 409 when the
// reservation was already cancelled.
func (h *ReservationHandler) Cancel(c echo.Context) error {
    userID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    resID, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || resID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
    }
    ctx := c.Request().Context()
    res, err := h.Reservations.GetByID(ctx, resID)
    if err != nil {
        if errors.Is(err, booking.ErrNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch reservation"})
    }
    if res.UserID != userID {
        return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
    }
    if err := h.Committer.Cancel(ctx, resID); err != nil {
        if errors.Is(err, booking.ErrConflict) {
            return c.JSON(http.StatusConflict, echo.Map{"error": "reservation already cancelled"})
        }
        if errors.Is(err, booking.ErrNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to cancel reservation"})
    }
    return c.NoContent(http.StatusNoContent)
}
