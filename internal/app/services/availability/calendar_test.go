package availability_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	availabilitysvc "villastay/internal/app/services/availability"
	domainavailability "villastay/internal/domain/availability"
	domainbooking "villastay/internal/domain/booking"
	domainpricing "villastay/internal/domain/pricing"
	"villastay/internal/domain/shared/apperr"
)

func TestBuildCalendarComposesDayStatuses(t *testing.T) {
	svc, _ := newService(t)
	seedBooking(t, svc, "b1", domainbooking.StatusConfirmed, date(2026, time.June, 10), date(2026, time.June, 12))
	err := svc.Blocked.Save(context.Background(), &domainavailability.BlockedPeriod{
		ID:         "blk-1",
		PropertyID: "villa-1",
		StartDate:  date(2026, time.June, 15),
		EndDate:    date(2026, time.June, 16),
	})
	assert.NoError(t, err)

	cal, err := svc.BuildCalendar(context.Background(), availabilitysvc.CalendarInput{
		TenantID:   tenant,
		PropertyID: "villa-1",
		StartDate:  date(2026, time.May, 30),
		EndDate:    date(2026, time.June, 17),
	})
	assert.NoError(t, err)
	assert.Len(t, cal.Days, 19)

	byDate := make(map[string]domainavailability.Day, len(cal.Days))
	for _, day := range cal.Days {
		byDate[day.Date.Format("2006-01-02")] = day
	}

	// Now is fixed at June 1, so May days are past.
	assert.Equal(t, domainavailability.DayPast, byDate["2026-05-31"].Reason)
	assert.False(t, byDate["2026-05-31"].Available)

	assert.Equal(t, domainavailability.DayBooked, byDate["2026-06-10"].Reason)
	assert.Equal(t, domainavailability.DayBooked, byDate["2026-06-11"].Reason)
	// Check-out day is free for the next guest.
	assert.True(t, byDate["2026-06-12"].Available)

	assert.Equal(t, domainavailability.DayBlocked, byDate["2026-06-15"].Reason)
	assert.Equal(t, domainavailability.DayBlocked, byDate["2026-06-16"].Reason)
	assert.True(t, byDate["2026-06-17"].Available)
}

func TestBuildCalendarPricesAvailableDays(t *testing.T) {
	svc, _ := newService(t)

	cal, err := svc.BuildCalendar(context.Background(), availabilitysvc.CalendarInput{
		TenantID:   tenant,
		PropertyID: "villa-1",
		StartDate:  date(2026, time.June, 11), // Thursday
		EndDate:    date(2026, time.June, 13), // Saturday
	})
	assert.NoError(t, err)
	assert.Len(t, cal.Days, 3)

	assert.Equal(t, 100.0, *cal.Days[0].Price)
	assert.Equal(t, 120.0, *cal.Days[1].Price) // Friday carries the premium
	assert.Equal(t, 120.0, *cal.Days[2].Price)
	assert.Equal(t, 1, *cal.Days[0].MinNights)
}

func TestBuildCalendarPeriodPremiumNotStacked(t *testing.T) {
	svc, _ := newService(t)
	err := svc.Periods.Save(context.Background(), &domainpricing.RatePeriod{
		ID:             "summer",
		TenantID:       tenant,
		PropertyID:     "villa-1",
		Name:           "Summer",
		StartDate:      date(2026, time.June, 1),
		EndDate:        date(2026, time.June, 30),
		Priority:       10,
		BasePrice:      150,
		WeekendPremium: 0,
		IsActive:       true,
	})
	assert.NoError(t, err)

	cal, err := svc.BuildCalendar(context.Background(), availabilitysvc.CalendarInput{
		TenantID:   tenant,
		PropertyID: "villa-1",
		StartDate:  date(2026, time.June, 12), // Friday
		EndDate:    date(2026, time.June, 12),
	})
	assert.NoError(t, err)
	// The period wins and carries no premium; the property premium must not
	// leak in on top of the period price.
	assert.Equal(t, 150.0, *cal.Days[0].Price)
}

func TestBuildCalendarWindowLimits(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.BuildCalendar(context.Background(), availabilitysvc.CalendarInput{
		TenantID:   tenant,
		PropertyID: "villa-1",
		StartDate:  date(2026, time.January, 1),
		EndDate:    date(2027, time.June, 1),
	})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	_, err = svc.BuildCalendar(context.Background(), availabilitysvc.CalendarInput{
		TenantID:   tenant,
		PropertyID: "villa-1",
		StartDate:  date(2026, time.June, 10),
		EndDate:    date(2026, time.June, 5),
	})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestBlockRefusedOverExistingBooking(t *testing.T) {
	svc, _ := newService(t)
	seedBooking(t, svc, "b1", domainbooking.StatusConfirmed, date(2026, time.June, 10), date(2026, time.June, 15))

	_, err := svc.Block(context.Background(), availabilitysvc.BlockInput{
		TenantID:   tenant,
		PropertyID: "villa-1",
		StartDate:  date(2026, time.June, 12),
		EndDate:    date(2026, time.June, 20),
		Reason:     "maintenance",
	})
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))

	var e *apperr.Error
	assert.ErrorAs(t, err, &e)
	assert.Equal(t, []string{"b1"}, e.Detail["conflictIds"])
}

func TestBlockLifecycle(t *testing.T) {
	svc, _ := newService(t)

	block, err := svc.Block(context.Background(), availabilitysvc.BlockInput{
		TenantID:   tenant,
		PropertyID: "villa-1",
		StartDate:  date(2026, time.July, 1),
		EndDate:    date(2026, time.July, 5),
		Reason:     "owner stay",
	})
	assert.NoError(t, err)
	assert.NotEmpty(t, block.ID)

	newEnd := date(2026, time.July, 8)
	updated, err := svc.UpdateBlock(context.Background(), tenant, block.ID, availabilitysvc.BlockUpdate{EndDate: &newEnd})
	assert.NoError(t, err)
	assert.Equal(t, newEnd, updated.EndDate)

	blocks, err := svc.ListBlocks(context.Background(), tenant, "villa-1")
	assert.NoError(t, err)
	assert.Len(t, blocks, 1)

	assert.NoError(t, svc.Unblock(context.Background(), tenant, block.ID))
	blocks, err = svc.ListBlocks(context.Background(), tenant, "villa-1")
	assert.NoError(t, err)
	assert.Empty(t, blocks)
}

func TestBlockForeignTenantCannotTouch(t *testing.T) {
	svc, _ := newService(t)
	block, err := svc.Block(context.Background(), availabilitysvc.BlockInput{
		TenantID:   tenant,
		PropertyID: "villa-1",
		StartDate:  date(2026, time.July, 1),
		EndDate:    date(2026, time.July, 5),
	})
	assert.NoError(t, err)

	err = svc.Unblock(context.Background(), "other-tenant", block.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}
