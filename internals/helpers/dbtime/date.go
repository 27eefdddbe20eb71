// file: internals/helpers/dbtime/date.go
package dbtime

import (
	"strings"
	"time"
)

// DateLayout is the wire format for calendar dates (start_date, due_date, ...).
const DateLayout = "2006-01-02"

// ParseDate membaca "YYYY-MM-DD" sebagai tanggal UTC tengah malam.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, strings.TrimSpace(s), time.UTC)
}

// ParseDatePtr: string kosong/nil → nil.
func ParseDatePtr(s *string) (*time.Time, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	t, err := ParseDate(*s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// DateOnly memotong jam dan menormalkan ke UTC.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(DateLayout)
}

func FormatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := FormatDate(*t)
	return &s
}

// NowUTC dipakai supaya semua timestamp yang ditulis service seragam.
func NowUTC() time.Time { return time.Now().UTC() }
