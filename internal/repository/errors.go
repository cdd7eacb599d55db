// Package repository contains the MySQL data access layer.  Where a
// repository implements one of the booking store interfaces it
// surfaces the engine's sentinel errors (booking.ErrNotFound,
// booking.ErrConflict) so handlers can branch with errors.Is without
// caring which layer produced the value.
package repository

import (
    "strings"

    "github.com/iliyamo/restaurant-table-reservation/internal/booking"
)

// isDuplicateKey reports whether err is a MySQL duplicate-key error
// (code 1062).  The reservations table carries a unique key on
// (table_id, date, start_minute) as a backstop against double
// booking; a violation is a lost race, not a fault.
func isDuplicateKey(err error) bool {
    return err != nil && strings.Contains(err.Error(), "1062")
}

// isLockContention reports whether err is a MySQL lock-contention
// rollback: 1213 (deadlock victim) or 1205 (lock wait timeout).  Two
// commits racing on a restaurant-day with no existing rows both lock
// only the gap; their inserts then conflict and InnoDB rolls one
// transaction back with 1213 even though no unique key fired.
func isLockContention(err error) bool {
    if err == nil {
        return false
    }
    msg := err.Error()
    return strings.Contains(msg, "1213") || strings.Contains(msg, "1205")
}

// retryOnContention runs fn, re-running the whole read-then-check once
// when the storage layer rolls the transaction back for lock
// contention.  The loser of a deadlock may still book cleanly on a
// second read of the live set; contention that persists across the
// retry is reported as a lost race, never as a storage fault.
func retryOnContention(fn func() error) error {
    err := fn()
    if err == nil || !isLockContention(err) {
        return err
    }
    if err = fn(); err == nil || !isLockContention(err) {
        return err
    }
    return booking.ErrConflict
}
