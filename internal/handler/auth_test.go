package handler

import (
    "net/http"
    "net/http/httptest"
    "strings"
    "testing"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/restaurant-table-reservation/internal/config"
    "github.com/iliyamo/restaurant-table-reservation/internal/repository"
)

// newAuthContext builds an echo context for a JSON request.  The
// returned handler has nil database handles; tests only exercise
// paths that reject the request before any query runs.
func newAuthContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder, *AuthHandler) {
    e := echo.New()
    req := httptest.NewRequest(method, target, strings.NewReader(body))
    req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
    rec := httptest.NewRecorder()
    c := e.NewContext(req, rec)
    h := NewAuthHandler(config.Config{}, repository.NewUserRepo(nil), repository.NewTokenRepo(nil))
    return c, rec, h
}

func TestUpdateProfileRejectsUnauthenticated(t *testing.T) {
    c, rec, h := newAuthContext(http.MethodPut, "/v1/profile", `{"name":"Ada"}`)

    if err := h.UpdateProfile(c); err != nil {
        t.Fatalf("UpdateProfile: %v", err)
    }
    if rec.Code != http.StatusUnauthorized {
        t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
    }
}

func TestUpdateProfileRequiresName(t *testing.T) {
    c, rec, h := newAuthContext(http.MethodPut, "/v1/profile", `{"name":"   ","phone":"555-0100"}`)
    c.Set("user_id", uint64(7))

    if err := h.UpdateProfile(c); err != nil {
        t.Fatalf("UpdateProfile: %v", err)
    }
    if rec.Code != http.StatusBadRequest {
        t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
    }
}

func TestChangePasswordRejectsUnauthenticated(t *testing.T) {
    c, rec, h := newAuthContext(http.MethodPut, "/v1/change-password",
        `{"current_password":"old","new_password":"new"}`)

    if err := h.ChangePassword(c); err != nil {
        t.Fatalf("ChangePassword: %v", err)
    }
    if rec.Code != http.StatusUnauthorized {
        t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
    }
}

func TestChangePasswordRequiresBothPasswords(t *testing.T) {
    tests := []struct {
        name string
        body string
    }{
        {"missing current", `{"new_password":"new"}`},
        {"missing new", `{"current_password":"old"}`},
        {"empty body", `{}`},
    }
    for _, tc := range tests {
        t.Run(tc.name, func(t *testing.T) {
            c, rec, h := newAuthContext(http.MethodPut, "/v1/change-password", tc.body)
            c.Set("user_id", uint64(7))

            if err := h.ChangePassword(c); err != nil {
                t.Fatalf("ChangePassword: %v", err)
            }
            if rec.Code != http.StatusBadRequest {
                t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
            }
        })
    }
}
