package promo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	domainbooking "villastay/internal/domain/booking"
	domainpromo "villastay/internal/domain/promo"
	"villastay/internal/domain/shared/apperr"
	"villastay/internal/domain/shared/money"
)

type ValidateInput struct {
	Code        string
	TenantID    string
	PropertyID  string
	CheckIn     time.Time
	CheckOut    time.Time
	TotalAmount float64
	Nights      int
	GuestEmail  string
}

// Validation is the outcome of a promo check. An unmet constraint is data
// (Valid=false plus the reason), not a Go error.
type Validation struct {
	Valid          bool                    `json:"valid"`
	Error          string                  `json:"error,omitempty"`
	PromoCodeID    string                  `json:"promoCodeId,omitempty"`
	Code           string                  `json:"code,omitempty"`
	Description    string                  `json:"description,omitempty"`
	DiscountType   domainpromo.DiscountType `json:"discountType,omitempty"`
	DiscountValue  float64                 `json:"discountValue,omitempty"`
	DiscountAmount float64                 `json:"discountAmount,omitempty"`
	FinalAmount    float64                 `json:"finalAmount,omitempty"`
}

func invalid(reason string) *Validation {
	return &Validation{Valid: false, Error: reason}
}

// Service validates promo codes. Incrementing usage is a separate concern
// performed at booking confirmation.
type Service struct {
	Promos   domainpromo.Repository
	Bookings domainbooking.Repository
	Now      func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

// Validate runs the ordered, short-circuiting constraint checks and computes
// the discount for the first code that passes them all.
func (s *Service) Validate(ctx context.Context, input ValidateInput) (*Validation, error) {
	code := strings.ToUpper(strings.TrimSpace(input.Code))
	if code == "" {
		return nil, apperr.Validation("promo code required")
	}

	pc, err := s.Promos.ByCode(ctx, input.TenantID, code)
	if err != nil {
		if errors.Is(err, domainpromo.ErrNotFound) {
			return invalid("invalid promo code"), nil
		}
		return nil, err
	}
	if !pc.IsActive {
		return invalid("invalid promo code"), nil
	}

	now := s.now()
	if now.Before(pc.ValidFrom) || now.After(pc.ValidUntil) {
		return invalid("promo code expired"), nil
	}
	if pc.MinAmount > 0 && input.TotalAmount < pc.MinAmount {
		return invalid(fmt.Sprintf("minimum amount of %.2f required", pc.MinAmount)), nil
	}
	if pc.MinNights > 0 && input.Nights < pc.MinNights {
		return invalid(fmt.Sprintf("minimum stay of %d nights required", pc.MinNights)), nil
	}
	if !pc.AppliesToProperty(input.PropertyID) {
		return invalid("promo code not valid for this property"), nil
	}
	if pc.Exhausted() {
		return invalid("promo code exhausted"), nil
	}
	if pc.MaxUsesPerUser > 0 && input.GuestEmail != "" {
		used, err := s.Bookings.CountPromoUses(ctx, input.TenantID, pc.ID, input.GuestEmail)
		if err != nil {
			return nil, err
		}
		if used >= pc.MaxUsesPerUser {
			return invalid(fmt.Sprintf("promo code already used %d times", used)), nil
		}
	}

	discount := pc.DiscountFor(input.TotalAmount)
	return &Validation{
		Valid:          true,
		PromoCodeID:    pc.ID,
		Code:           pc.Code,
		Description:    pc.Description,
		DiscountType:   pc.DiscountType,
		DiscountValue:  pc.DiscountValue,
		DiscountAmount: discount,
		FinalAmount:    money.Round2(input.TotalAmount - discount),
	}, nil
}
