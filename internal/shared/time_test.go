package shared

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMonthStart(t *testing.T) {
	in := time.Date(2026, 3, 18, 13, 45, 12, 999, time.UTC)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), MonthStart(in))
}

func TestMonthsBack(t *testing.T) {
	in := time.Date(2026, 3, 18, 13, 45, 12, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC), MonthsBack(in, 6))
	// Crossing a year boundary keeps the month arithmetic exact.
	assert.Equal(t, time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC), MonthsBack(in, 3))
	assert.Equal(t, MonthStart(in), MonthsBack(in, 0))
}
