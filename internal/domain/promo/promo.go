package promo

import (
	"context"
	"errors"
	"slices"
	"time"

	"villastay/internal/domain/shared/money"
)

var (
	ErrNotFound  = errors.New("promo: code not found")
	ErrExhausted = errors.New("promo: usage cap reached")
)

type DiscountType string

const (
	DiscountPercentage DiscountType = "PERCENTAGE"
	DiscountFixed      DiscountType = "FIXED_AMOUNT"
)

// PromoCode is tenant-scoped; Code is stored upper-case and unique within
// the tenant.
type PromoCode struct {
	ID             string
	TenantID       string
	Code           string
	Description    string
	DiscountType   DiscountType
	DiscountValue  float64
	MinAmount      float64
	MinNights      int
	PropertyIDs    []string
	ValidFrom      time.Time
	ValidUntil     time.Time
	MaxUses        int
	MaxUsesPerUser int
	CurrentUses    int
	IsActive       bool
}

// DiscountFor computes the discount against a total: percentages round to
// whole units, fixed amounts cap at the total so it never goes negative.
func (p *PromoCode) DiscountFor(total float64) float64 {
	if p.DiscountType == DiscountPercentage {
		return money.RoundUnit(total * p.DiscountValue / 100)
	}
	return money.Min(p.DiscountValue, total)
}

// AppliesToProperty honors the allow-list; an empty list means all
// properties.
func (p *PromoCode) AppliesToProperty(propertyID string) bool {
	if len(p.PropertyIDs) == 0 {
		return true
	}
	return slices.Contains(p.PropertyIDs, propertyID)
}

// Exhausted reports whether the global usage cap is spent. MaxUses of zero
// means unlimited.
func (p *PromoCode) Exhausted() bool {
	return p.MaxUses > 0 && p.CurrentUses >= p.MaxUses
}

type Repository interface {
	// ByCode returns the active-or-not promo for the normalized code within
	// the tenant, or ErrNotFound.
	ByCode(ctx context.Context, tenantID, code string) (*PromoCode, error)
	ByID(ctx context.Context, tenantID, id string) (*PromoCode, error)
	Save(ctx context.Context, p *PromoCode) error
	// IncrementUses bumps currentUses guarding the maxUses cap; it fails with
	// ErrExhausted when the cap is already spent. Called only at booking
	// confirmation so abandoned checkouts never consume uses.
	IncrementUses(ctx context.Context, tenantID, id string) error
}
