package daterange

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNewTruncatesToDay(t *testing.T) {
	in := time.Date(2026, time.June, 10, 15, 30, 0, 0, time.FixedZone("CET", 3600))
	out := time.Date(2026, time.June, 14, 9, 0, 0, 0, time.UTC)

	dr, err := New(in, out)
	assert.NoError(t, err)
	assert.Equal(t, date(2026, time.June, 10), dr.CheckIn)
	assert.Equal(t, date(2026, time.June, 14), dr.CheckOut)
	assert.Equal(t, 4, dr.Nights())
}

func TestNewRejectsInvertedRange(t *testing.T) {
	_, err := New(date(2026, time.June, 14), date(2026, time.June, 10))
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = New(date(2026, time.June, 10), date(2026, time.June, 10))
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestOverlapsHalfOpen(t *testing.T) {
	a, _ := New(date(2026, time.June, 10), date(2026, time.June, 15))

	overlapping, _ := New(date(2026, time.June, 14), date(2026, time.June, 18))
	assert.True(t, a.Overlaps(overlapping))

	// Back-to-back stays share the turnover day without conflict.
	backToBack, _ := New(date(2026, time.June, 15), date(2026, time.June, 18))
	assert.False(t, a.Overlaps(backToBack))

	before, _ := New(date(2026, time.June, 5), date(2026, time.June, 10))
	assert.False(t, a.Overlaps(before))
}

func TestContainsDate(t *testing.T) {
	dr, _ := New(date(2026, time.June, 10), date(2026, time.June, 15))

	assert.True(t, dr.ContainsDate(date(2026, time.June, 10)))
	assert.True(t, dr.ContainsDate(date(2026, time.June, 14)))
	assert.False(t, dr.ContainsDate(date(2026, time.June, 15)))
	assert.False(t, dr.ContainsDate(date(2026, time.June, 9)))
}

func TestDatesListsStayNights(t *testing.T) {
	dr, _ := New(date(2026, time.June, 10), date(2026, time.June, 13))
	dates := dr.Dates()

	assert.Len(t, dates, 3)
	assert.Equal(t, date(2026, time.June, 10), dates[0])
	assert.Equal(t, date(2026, time.June, 12), dates[2])
}
