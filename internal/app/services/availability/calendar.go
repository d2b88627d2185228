package availability

import (
	"context"
	"errors"
	"time"

	domainavailability "villastay/internal/domain/availability"
	domainbooking "villastay/internal/domain/booking"
	domainpricing "villastay/internal/domain/pricing"
	domainproperty "villastay/internal/domain/property"
	"villastay/internal/domain/shared/apperr"
	"villastay/internal/domain/shared/daterange"
)

// maxCalendarDays bounds calendar construction so it never iterates an
// unbounded window.
const maxCalendarDays = 365

type CalendarInput struct {
	TenantID   string
	PropertyID string
	StartDate  time.Time
	EndDate    time.Time
}

type Calendar struct {
	PropertyID string                   `json:"propertyId"`
	StartDate  time.Time                `json:"startDate"`
	EndDate    time.Time                `json:"endDate"`
	Days       []domainavailability.Day `json:"days"`
}

// BuildCalendar walks the inclusive window day by day and composes booking
// cover, blocked cover and the resolved nightly rate into UI calendar
// entries.
func (s *Service) BuildCalendar(ctx context.Context, input CalendarInput) (*Calendar, error) {
	start := daterange.Day(input.StartDate)
	end := daterange.Day(input.EndDate)
	if start.IsZero() || end.IsZero() || end.Before(start) {
		return nil, apperr.Validation("end date must not be before start date")
	}
	if days := int(end.Sub(start).Hours()/24) + 1; days > maxCalendarDays {
		return nil, apperr.Validation("calendar window exceeds 365 days")
	}

	prop, err := s.Properties.ByID(ctx, input.TenantID, input.PropertyID)
	if err != nil {
		if errors.Is(err, domainproperty.ErrNotFound) {
			return nil, apperr.NotFound("property not found")
		}
		return nil, err
	}

	// The half-open fetch range covers every night up to and including the
	// window's last day.
	window := daterange.DateRange{CheckIn: start, CheckOut: end.AddDate(0, 0, 1)}
	bookings, err := s.Bookings.Overlapping(ctx, input.TenantID, input.PropertyID, window, "")
	if err != nil {
		return nil, err
	}
	blocks, err := s.Blocked.OverlappingStay(ctx, input.PropertyID, window)
	if err != nil {
		return nil, err
	}
	periods, err := s.Periods.Intersecting(ctx, input.TenantID, input.PropertyID, window)
	if err != nil {
		return nil, err
	}

	defaults := domainpricing.Defaults{
		BasePrice:      prop.BasePrice,
		WeekendPremium: prop.WeekendPremium,
		MinNights:      prop.MinNights,
	}
	today := daterange.Day(s.now())

	cal := &Calendar{PropertyID: input.PropertyID, StartDate: start, EndDate: end}
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		entry := domainavailability.Day{Date: day, Available: true}
		switch {
		case day.Before(today):
			entry.Available = false
			entry.Reason = domainavailability.DayPast
		case coveredByBooking(day, bookings):
			entry.Available = false
			entry.Reason = domainavailability.DayBooked
		case coveredByBlock(day, blocks):
			entry.Available = false
			entry.Reason = domainavailability.DayBlocked
		default:
			rate := domainpricing.ResolveDay(day, periods, defaults)
			price := rate.NightPrice(day)
			minNights := rate.MinNights
			entry.Price = &price
			entry.MinNights = &minNights
		}
		cal.Days = append(cal.Days, entry)
	}
	return cal, nil
}

func coveredByBooking(day time.Time, bookings []*domainbooking.Booking) bool {
	for _, b := range bookings {
		if b.Range.ContainsDate(day) {
			return true
		}
	}
	return false
}

func coveredByBlock(day time.Time, blocks []domainavailability.BlockedPeriod) bool {
	for _, b := range blocks {
		if b.CoversDay(day) {
			return true
		}
	}
	return false
}
