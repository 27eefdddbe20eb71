package service

import (
	"time"

	"rentpay_backend/internals/helpers/dbtime"
)

const (
	MinDueDay = 1
	MaxDueDay = 28
)

// FirstDueDate returns the due date of a lease's seed charge: start's month at
// dueDay, or the following month when start is already past dueDay. dueDay is
// capped at 28 so moving one month never overflows.
func FirstDueDate(start time.Time, dueDay int) time.Time {
	start = dbtime.DateOnly(start)
	y, m, d := start.Date()

	due := time.Date(y, m, dueDay, 0, 0, 0, 0, time.UTC)
	if d > dueDay {
		due = due.AddDate(0, 1, 0)
	}
	return due
}
