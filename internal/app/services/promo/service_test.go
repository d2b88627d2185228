package promo_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	promosvc "villastay/internal/app/services/promo"
	domainbooking "villastay/internal/domain/booking"
	domainpromo "villastay/internal/domain/promo"
	"villastay/internal/domain/shared/daterange"
	"villastay/internal/infra/storage/memory"
)

const tenant = "tenant-1"

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newService(t *testing.T) (*promosvc.Service, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	svc := &promosvc.Service{
		Promos:   memory.NewPromoRepository(store),
		Bookings: memory.NewBookingRepository(store),
		Now:      func() time.Time { return date(2026, time.June, 1) },
	}
	return svc, store
}

func seedPromo(t *testing.T, svc *promosvc.Service, pc domainpromo.PromoCode) {
	t.Helper()
	if pc.ValidFrom.IsZero() {
		pc.ValidFrom = date(2026, time.January, 1)
	}
	if pc.ValidUntil.IsZero() {
		pc.ValidUntil = date(2026, time.December, 31)
	}
	pc.TenantID = tenant
	pc.IsActive = true
	assert.NoError(t, svc.Promos.Save(context.Background(), &pc))
}

func validate(t *testing.T, svc *promosvc.Service, input promosvc.ValidateInput) *promosvc.Validation {
	t.Helper()
	input.TenantID = tenant
	result, err := svc.Validate(context.Background(), input)
	assert.NoError(t, err)
	return result
}

func TestValidateFixedDiscountCappedAtTotal(t *testing.T) {
	svc, _ := newService(t)
	seedPromo(t, svc, domainpromo.PromoCode{
		ID: "p1", Code: "BIGSAVE", DiscountType: domainpromo.DiscountFixed, DiscountValue: 500,
	})

	result := validate(t, svc, promosvc.ValidateInput{Code: "BIGSAVE", TotalAmount: 300, Nights: 3})
	assert.True(t, result.Valid)
	assert.Equal(t, 300.0, result.DiscountAmount)
	assert.Equal(t, 0.0, result.FinalAmount)
}

func TestValidatePercentageRoundsToWholeUnits(t *testing.T) {
	svc, _ := newService(t)
	seedPromo(t, svc, domainpromo.PromoCode{
		ID: "p1", Code: "TEN", DiscountType: domainpromo.DiscountPercentage, DiscountValue: 10,
	})

	result := validate(t, svc, promosvc.ValidateInput{Code: "TEN", TotalAmount: 754, Nights: 3})
	assert.True(t, result.Valid)
	assert.Equal(t, 75.0, result.DiscountAmount)
	assert.Equal(t, 679.0, result.FinalAmount)
}

func TestValidateNormalizesCode(t *testing.T) {
	svc, _ := newService(t)
	seedPromo(t, svc, domainpromo.PromoCode{
		ID: "p1", Code: "SUMMER26", DiscountType: domainpromo.DiscountPercentage, DiscountValue: 5,
	})

	result := validate(t, svc, promosvc.ValidateInput{Code: "  summer26 ", TotalAmount: 100, Nights: 2})
	assert.True(t, result.Valid)
	assert.Equal(t, "SUMMER26", result.Code)
}

func TestValidateUnknownOrInactive(t *testing.T) {
	svc, _ := newService(t)

	result := validate(t, svc, promosvc.ValidateInput{Code: "NOPE", TotalAmount: 100})
	assert.False(t, result.Valid)
	assert.Equal(t, "invalid promo code", result.Error)

	pc := domainpromo.PromoCode{
		ID: "p1", TenantID: tenant, Code: "OFF", DiscountType: domainpromo.DiscountFixed, DiscountValue: 10,
		ValidFrom: date(2026, time.January, 1), ValidUntil: date(2026, time.December, 31), IsActive: false,
	}
	assert.NoError(t, svc.Promos.Save(context.Background(), &pc))
	result = validate(t, svc, promosvc.ValidateInput{Code: "OFF", TotalAmount: 100})
	assert.False(t, result.Valid)
	assert.Equal(t, "invalid promo code", result.Error)
}

func TestValidateDateWindow(t *testing.T) {
	svc, _ := newService(t)
	seedPromo(t, svc, domainpromo.PromoCode{
		ID: "p1", Code: "LATE", DiscountType: domainpromo.DiscountFixed, DiscountValue: 10,
		ValidFrom: date(2026, time.July, 1), ValidUntil: date(2026, time.July, 31),
	})

	result := validate(t, svc, promosvc.ValidateInput{Code: "LATE", TotalAmount: 100})
	assert.False(t, result.Valid)
	assert.Equal(t, "promo code expired", result.Error)
}

func TestValidateConstraintOrder(t *testing.T) {
	svc, _ := newService(t)
	seedPromo(t, svc, domainpromo.PromoCode{
		ID: "p1", Code: "STRICT", DiscountType: domainpromo.DiscountFixed, DiscountValue: 50,
		MinAmount: 500, MinNights: 7, PropertyIDs: []string{"villa-1"},
	})

	result := validate(t, svc, promosvc.ValidateInput{Code: "STRICT", PropertyID: "villa-1", TotalAmount: 300, Nights: 3})
	assert.False(t, result.Valid)
	assert.Contains(t, result.Error, "minimum amount")

	result = validate(t, svc, promosvc.ValidateInput{Code: "STRICT", PropertyID: "villa-1", TotalAmount: 600, Nights: 3})
	assert.False(t, result.Valid)
	assert.Contains(t, result.Error, "minimum stay")

	result = validate(t, svc, promosvc.ValidateInput{Code: "STRICT", PropertyID: "villa-9", TotalAmount: 600, Nights: 8})
	assert.False(t, result.Valid)
	assert.Contains(t, result.Error, "not valid for this property")

	result = validate(t, svc, promosvc.ValidateInput{Code: "STRICT", PropertyID: "villa-1", TotalAmount: 600, Nights: 8})
	assert.True(t, result.Valid)
}

func TestValidateGlobalCap(t *testing.T) {
	svc, _ := newService(t)
	seedPromo(t, svc, domainpromo.PromoCode{
		ID: "p1", Code: "CAPPED", DiscountType: domainpromo.DiscountFixed, DiscountValue: 10,
		MaxUses: 5, CurrentUses: 5,
	})

	result := validate(t, svc, promosvc.ValidateInput{Code: "CAPPED", TotalAmount: 100})
	assert.False(t, result.Valid)
	assert.Equal(t, "promo code exhausted", result.Error)
}

func TestValidatePerUserCap(t *testing.T) {
	svc, _ := newService(t)
	seedPromo(t, svc, domainpromo.PromoCode{
		ID: "p1", Code: "ONCE", DiscountType: domainpromo.DiscountFixed, DiscountValue: 10,
		MaxUsesPerUser: 1,
	})
	dr, _ := daterange.New(date(2026, time.May, 1), date(2026, time.May, 5))
	assert.NoError(t, svc.Bookings.Create(context.Background(), &domainbooking.Booking{
		ID: "b1", TenantID: tenant, PropertyID: "villa-1", Reference: "VS26050001",
		Range: dr, Status: domainbooking.StatusCompleted, PromoCodeID: "p1",
		Guest: domainbooking.Guest{Email: "repeat@example.com"},
	}))

	result := validate(t, svc, promosvc.ValidateInput{Code: "ONCE", TotalAmount: 100, GuestEmail: "repeat@example.com"})
	assert.False(t, result.Valid)
	assert.Contains(t, result.Error, "already used")

	// A different guest still qualifies.
	result = validate(t, svc, promosvc.ValidateInput{Code: "ONCE", TotalAmount: 100, GuestEmail: "new@example.com"})
	assert.True(t, result.Valid)
}

func TestIncrementUsesGuardsCap(t *testing.T) {
	svc, _ := newService(t)
	seedPromo(t, svc, domainpromo.PromoCode{
		ID: "p1", Code: "CAP2", DiscountType: domainpromo.DiscountFixed, DiscountValue: 10, MaxUses: 2,
	})

	ctx := context.Background()
	assert.NoError(t, svc.Promos.IncrementUses(ctx, tenant, "p1"))
	assert.NoError(t, svc.Promos.IncrementUses(ctx, tenant, "p1"))
	assert.ErrorIs(t, svc.Promos.IncrementUses(ctx, tenant, "p1"), domainpromo.ErrExhausted)
}
