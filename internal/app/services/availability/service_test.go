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
	domainproperty "villastay/internal/domain/property"
	"villastay/internal/domain/shared/apperr"
	"villastay/internal/domain/shared/daterange"
	"villastay/internal/infra/storage/memory"
)

const tenant = "tenant-1"

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func fixedNow() time.Time {
	return date(2026, time.June, 1)
}

func newService(t *testing.T) (*availabilitysvc.Service, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	svc := &availabilitysvc.Service{
		Properties: memory.NewPropertyRepository(store),
		Periods:    memory.NewPeriodRepository(store),
		Bookings:   memory.NewBookingRepository(store),
		Blocked:    memory.NewBlockedPeriodRepository(store),
		Now:        fixedNow,
	}
	err := svc.Properties.Save(context.Background(), &domainproperty.Property{
		ID:             "villa-1",
		TenantID:       tenant,
		BasePrice:      100,
		WeekendPremium: 20,
		MinNights:      1,
		MaxGuests:      6,
	})
	assert.NoError(t, err)
	return svc, store
}

func seedBooking(t *testing.T, svc *availabilitysvc.Service, id string, status domainbooking.Status, checkIn, checkOut time.Time) {
	t.Helper()
	dr, err := daterange.New(checkIn, checkOut)
	assert.NoError(t, err)
	err = svc.Bookings.Create(context.Background(), &domainbooking.Booking{
		ID:         id,
		TenantID:   tenant,
		PropertyID: "villa-1",
		Reference:  "VS2606" + id,
		Range:      dr,
		Status:     status,
		Guest:      domainbooking.Guest{Email: "guest@example.com"},
	})
	assert.NoError(t, err)
}

func TestCheckBookingConflict(t *testing.T) {
	svc, _ := newService(t)
	seedBooking(t, svc, "b1", domainbooking.StatusConfirmed, date(2026, time.June, 10), date(2026, time.June, 15))

	result, err := svc.Check(context.Background(), availabilitysvc.CheckInput{
		TenantID:   tenant,
		PropertyID: "villa-1",
		CheckIn:    date(2026, time.June, 14),
		CheckOut:   date(2026, time.June, 18),
	})
	assert.NoError(t, err)
	assert.False(t, result.Available)
	assert.Equal(t, availabilitysvc.ReasonBookingConflict, result.Reason)
	assert.Equal(t, []string{"b1"}, result.ConflictIDs)
}

func TestCheckBackToBackStaysDoNotConflict(t *testing.T) {
	svc, _ := newService(t)
	seedBooking(t, svc, "b1", domainbooking.StatusConfirmed, date(2026, time.June, 10), date(2026, time.June, 15))

	result, err := svc.Check(context.Background(), availabilitysvc.CheckInput{
		TenantID:   tenant,
		PropertyID: "villa-1",
		CheckIn:    date(2026, time.June, 15),
		CheckOut:   date(2026, time.June, 18),
	})
	assert.NoError(t, err)
	assert.True(t, result.Available)
}

func TestCheckCancelledBookingsDoNotBlock(t *testing.T) {
	svc, _ := newService(t)
	seedBooking(t, svc, "b1", domainbooking.StatusCancelled, date(2026, time.June, 10), date(2026, time.June, 15))

	result, err := svc.Check(context.Background(), availabilitysvc.CheckInput{
		TenantID:   tenant,
		PropertyID: "villa-1",
		CheckIn:    date(2026, time.June, 12),
		CheckOut:   date(2026, time.June, 14),
	})
	assert.NoError(t, err)
	assert.True(t, result.Available)
}

func TestCheckExcludesGivenBooking(t *testing.T) {
	svc, _ := newService(t)
	seedBooking(t, svc, "b1", domainbooking.StatusConfirmed, date(2026, time.June, 10), date(2026, time.June, 15))

	result, err := svc.Check(context.Background(), availabilitysvc.CheckInput{
		TenantID:         tenant,
		PropertyID:       "villa-1",
		CheckIn:          date(2026, time.June, 11),
		CheckOut:         date(2026, time.June, 14),
		ExcludeBookingID: "b1",
	})
	assert.NoError(t, err)
	assert.True(t, result.Available)
}

func TestCheckBlockedPeriod(t *testing.T) {
	svc, _ := newService(t)
	err := svc.Blocked.Save(context.Background(), &domainavailability.BlockedPeriod{
		ID:         "blk-1",
		PropertyID: "villa-1",
		StartDate:  date(2026, time.June, 20),
		EndDate:    date(2026, time.June, 25),
		Reason:     "maintenance",
	})
	assert.NoError(t, err)

	result, err := svc.Check(context.Background(), availabilitysvc.CheckInput{
		TenantID:   tenant,
		PropertyID: "villa-1",
		CheckIn:    date(2026, time.June, 24),
		CheckOut:   date(2026, time.June, 28),
	})
	assert.NoError(t, err)
	assert.False(t, result.Available)
	assert.Equal(t, availabilitysvc.ReasonBlocked, result.Reason)
	assert.Equal(t, "maintenance", result.Message)
}

func TestCheckMinimumStayFromPeriod(t *testing.T) {
	svc, _ := newService(t)
	min := 7
	err := svc.Periods.Save(context.Background(), &domainpricing.RatePeriod{
		ID:         "peak",
		TenantID:   tenant,
		PropertyID: "villa-1",
		StartDate:  date(2026, time.July, 1),
		EndDate:    date(2026, time.July, 31),
		Priority:   10,
		BasePrice:  200,
		MinNights:  &min,
		IsActive:   true,
	})
	assert.NoError(t, err)

	result, err := svc.Check(context.Background(), availabilitysvc.CheckInput{
		TenantID:   tenant,
		PropertyID: "villa-1",
		CheckIn:    date(2026, time.July, 10),
		CheckOut:   date(2026, time.July, 13),
	})
	assert.NoError(t, err)
	assert.False(t, result.Available)
	assert.Equal(t, availabilitysvc.ReasonMinimumStay, result.Reason)
	assert.Equal(t, 7, result.MinNights)

	result, err = svc.Check(context.Background(), availabilitysvc.CheckInput{
		TenantID:   tenant,
		PropertyID: "villa-1",
		CheckIn:    date(2026, time.July, 10),
		CheckOut:   date(2026, time.July, 17),
	})
	assert.NoError(t, err)
	assert.True(t, result.Available)
}

func TestCheckUnknownProperty(t *testing.T) {
	svc, _ := newService(t)
	_, err := svc.Check(context.Background(), availabilitysvc.CheckInput{
		TenantID:   tenant,
		PropertyID: "nope",
		CheckIn:    date(2026, time.June, 10),
		CheckOut:   date(2026, time.June, 12),
	})
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}
