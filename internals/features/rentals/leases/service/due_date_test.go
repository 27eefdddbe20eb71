package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestFirstDueDate(t *testing.T) {
	cases := []struct {
		name   string
		start  time.Time
		dueDay int
		want   time.Time
	}{
		{"same day", date(2024, 3, 1), 1, date(2024, 3, 1)},
		{"before due day", date(2024, 3, 10), 15, date(2024, 3, 15)},
		{"after due day rolls over", date(2024, 3, 15), 1, date(2024, 4, 1)},
		{"december rolls into next year", date(2024, 12, 20), 5, date(2025, 1, 5)},
		{"end of january into february", date(2024, 1, 31), 28, date(2024, 2, 28)},
		{"non leap february", date(2023, 1, 29), 28, date(2023, 2, 28)},
		{"time of day ignored", time.Date(2024, 3, 15, 23, 59, 0, 0, time.UTC), 15, date(2024, 3, 15)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, FirstDueDate(tc.start, tc.dueDay))
		})
	}
}
