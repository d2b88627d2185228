package availability

import (
	"context"
	"errors"
	"time"

	"villastay/internal/domain/shared/daterange"
)

var ErrBlockedPeriodNotFound = errors.New("availability: blocked period not found")

// BlockedPeriod is an administrator-defined unavailable range, independent of
// bookings. Bounds are inclusive calendar days.
type BlockedPeriod struct {
	ID         string
	PropertyID string
	StartDate  time.Time
	EndDate    time.Time
	Reason     string
	Notes      string
	CreatedAt  time.Time
}

// OverlapsStay tests the inclusive bounds against a half-open stay range:
// start <= reqEnd AND end >= reqStart.
func (b BlockedPeriod) OverlapsStay(dr daterange.DateRange) bool {
	start := daterange.Day(b.StartDate)
	end := daterange.Day(b.EndDate)
	return !start.After(dr.CheckOut) && !end.Before(dr.CheckIn)
}

// CoversDay reports whether the inclusive block contains the calendar day.
func (b BlockedPeriod) CoversDay(day time.Time) bool {
	day = daterange.Day(day)
	return !day.Before(daterange.Day(b.StartDate)) && !day.After(daterange.Day(b.EndDate))
}

type BlockedPeriodRepository interface {
	ByID(ctx context.Context, id string) (*BlockedPeriod, error)
	// OverlappingStay returns blocks whose inclusive bounds touch the stay.
	OverlappingStay(ctx context.Context, propertyID string, dr daterange.DateRange) ([]BlockedPeriod, error)
	ByProperty(ctx context.Context, propertyID string) ([]BlockedPeriod, error)
	Save(ctx context.Context, b *BlockedPeriod) error
	Delete(ctx context.Context, id string) error
}

// DayStatus explains why a calendar day is unavailable.
type DayStatus string

const (
	DayPast    DayStatus = "past"
	DayBooked  DayStatus = "booked"
	DayBlocked DayStatus = "blocked"
)

// Day is one entry of the availability calendar.
type Day struct {
	Date      time.Time `json:"date"`
	Available bool      `json:"available"`
	Price     *float64  `json:"price,omitempty"`
	MinNights *int      `json:"minNights,omitempty"`
	Reason    DayStatus `json:"reason,omitempty"`
}
