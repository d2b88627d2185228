package booking

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	availabilitysvc "villastay/internal/app/services/availability"
	pricingsvc "villastay/internal/app/services/pricing"
	promosvc "villastay/internal/app/services/promo"
	"villastay/internal/app/uow"
	domainbooking "villastay/internal/domain/booking"
	domainpromo "villastay/internal/domain/promo"
	"villastay/internal/domain/shared/apperr"
	"villastay/internal/domain/shared/daterange"
	"villastay/internal/domain/shared/money"
)

// referenceAttempts bounds retries when two creations race for the same
// monthly sequence number.
const referenceAttempts = 3

type CreateInput struct {
	TenantID   string
	PropertyID string
	CheckIn    time.Time
	CheckOut   time.Time
	Guests     pricingsvc.GuestCounts
	Extras     []pricingsvc.SelectedExtra
	Guest      domainbooking.Guest
	PromoCode  string
}

// Service composes pricing, availability and promo validation into the
// booking lifecycle. Creation is all-or-nothing: the storage layer enforces
// the no-overlap invariant inside the unit of work.
type Service struct {
	UoW            uow.Factory
	Pricing        *pricingsvc.Service
	Availability   *availabilitysvc.Service
	Promo          *promosvc.Service
	Events         EventPublisher
	Logger         *slog.Logger
	CommissionRate float64
	Now            func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

func (s *Service) log() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

// Create checks availability, prices the stay, applies an optional promo
// code and persists the booking. The advisory availability check produces
// friendly conflicts; the decisive one is the storage-level exclusion on
// insert, so two racing requests can never both confirm.
func (s *Service) Create(ctx context.Context, input CreateInput) (*domainbooking.Booking, error) {
	if strings.TrimSpace(input.Guest.Email) == "" {
		return nil, apperr.Validation("guest email required")
	}
	if strings.TrimSpace(input.Guest.FirstName) == "" || strings.TrimSpace(input.Guest.LastName) == "" {
		return nil, apperr.Validation("guest name required")
	}

	check, err := s.Availability.Check(ctx, availabilitysvc.CheckInput{
		TenantID:   input.TenantID,
		PropertyID: input.PropertyID,
		CheckIn:    input.CheckIn,
		CheckOut:   input.CheckOut,
	})
	if err != nil {
		return nil, err
	}
	if !check.Available {
		switch check.Reason {
		case availabilitysvc.ReasonMinimumStay:
			return nil, apperr.BusinessRule(check.Message)
		default:
			conflict := apperr.Conflict(check.Message, nil)
			if len(check.ConflictIDs) > 0 {
				conflict.WithDetail("conflictIds", check.ConflictIDs)
			}
			return nil, conflict
		}
	}

	quote, err := s.Pricing.Calculate(ctx, pricingsvc.CalculateInput{
		TenantID:   input.TenantID,
		PropertyID: input.PropertyID,
		CheckIn:    input.CheckIn,
		CheckOut:   input.CheckOut,
		Guests:     input.Guests,
		Extras:     input.Extras,
	})
	if err != nil {
		return nil, err
	}

	total := quote.Total
	discount := quote.DiscountAmount
	promoCodeID := ""
	if strings.TrimSpace(input.PromoCode) != "" {
		validation, err := s.Promo.Validate(ctx, promosvc.ValidateInput{
			Code:        input.PromoCode,
			TenantID:    input.TenantID,
			PropertyID:  input.PropertyID,
			CheckIn:     input.CheckIn,
			CheckOut:    input.CheckOut,
			TotalAmount: quote.Total,
			Nights:      quote.Nights,
			GuestEmail:  input.Guest.Email,
		})
		if err != nil {
			return nil, err
		}
		if !validation.Valid {
			return nil, apperr.BusinessRule(validation.Error)
		}
		total = validation.FinalAmount
		discount = money.Round2(discount + validation.DiscountAmount)
		promoCodeID = validation.PromoCodeID
	}

	now := s.now()
	commission := money.Round2(total * s.CommissionRate)
	b := &domainbooking.Booking{
		ID:                 uuid.NewString(),
		TenantID:           input.TenantID,
		PropertyID:         input.PropertyID,
		Adults:             input.Guests.Adults,
		Children:           input.Guests.Children,
		Infants:            input.Guests.Infants,
		Pets:               input.Guests.Pets,
		Guest:              input.Guest,
		AccommodationTotal: quote.AccommodationTotal,
		CleaningFee:        quote.CleaningFee,
		TouristTax:         quote.TouristTax,
		ExtraFeesTotal:     quote.ExtraFeesTotal(),
		DiscountAmount:     discount,
		Subtotal:           quote.Subtotal,
		Total:              total,
		CommissionAmount:   commission,
		PayoutAmount:       money.Round2(total - commission),
		PromoCodeID:        promoCodeID,
		Status:             domainbooking.StatusPending,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if b.Range, err = daterange.New(input.CheckIn, input.CheckOut); err != nil {
		return nil, apperr.Validation("check-out must be after check-in")
	}

	prefix := domainbooking.ReferencePrefix(now)
	var lastErr error
	for attempt := 0; attempt < referenceAttempts; attempt++ {
		lastErr = uow.Run(ctx, s.UoW, uow.TxOptions{}, func(ctx context.Context, unit uow.UnitOfWork) error {
			last, err := unit.Bookings().LastReference(ctx, input.TenantID, prefix)
			if err != nil {
				return err
			}
			b.Reference = domainbooking.NextReference(prefix, last)
			return unit.Bookings().Create(ctx, b)
		})
		if lastErr == nil {
			break
		}
		if errors.Is(lastErr, domainbooking.ErrReferenceTaken) {
			continue
		}
		if errors.Is(lastErr, domainbooking.ErrDateConflict) {
			return nil, apperr.Conflict("booking conflict", nil)
		}
		return nil, lastErr
	}
	if lastErr != nil {
		return nil, apperr.Conflict("could not allocate a booking reference", nil)
	}

	s.publish(ctx, EventCreated, b)
	s.log().Info("booking created",
		"booking_id", b.ID,
		"reference", b.Reference,
		"tenant_id", b.TenantID,
		"property_id", b.PropertyID,
		"total", b.Total,
	)
	return b, nil
}

// Confirm moves a pending booking to CONFIRMED and consumes one promo use,
// guarding the global cap inside the same unit of work.
func (s *Service) Confirm(ctx context.Context, tenantID, id string) (*domainbooking.Booking, error) {
	var confirmed *domainbooking.Booking
	err := uow.Run(ctx, s.UoW, uow.TxOptions{}, func(ctx context.Context, unit uow.UnitOfWork) error {
		b, err := unit.Bookings().ByID(ctx, tenantID, id)
		if err != nil {
			if errors.Is(err, domainbooking.ErrNotFound) {
				return apperr.NotFound("booking not found")
			}
			return err
		}
		if err := b.Confirm(s.now()); err != nil {
			return apperr.BusinessRule("booking cannot be confirmed")
		}
		if b.PromoCodeID != "" {
			if err := unit.Promos().IncrementUses(ctx, tenantID, b.PromoCodeID); err != nil {
				if errors.Is(err, domainpromo.ErrExhausted) {
					return apperr.Conflict("promo code exhausted", nil)
				}
				return err
			}
		}
		if err := unit.Bookings().Update(ctx, b); err != nil {
			return err
		}
		confirmed = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.publish(ctx, EventConfirmed, confirmed)
	return confirmed, nil
}

// Cancel releases the dates while retaining the record for audit and promo
// usage accounting.
func (s *Service) Cancel(ctx context.Context, tenantID, id, reason string) (*domainbooking.Booking, error) {
	b, err := s.transition(ctx, tenantID, id, func(b *domainbooking.Booking) error {
		return b.Cancel(s.now())
	}, "booking cannot be cancelled")
	if err != nil {
		return nil, err
	}
	s.publish(ctx, EventCancelled, b)
	s.log().Info("booking cancelled", "booking_id", b.ID, "reference", b.Reference, "reason", reason)
	return b, nil
}

func (s *Service) Complete(ctx context.Context, tenantID, id string) (*domainbooking.Booking, error) {
	return s.transition(ctx, tenantID, id, func(b *domainbooking.Booking) error {
		return b.Complete(s.now())
	}, "booking cannot be completed")
}

func (s *Service) MarkNoShow(ctx context.Context, tenantID, id string) (*domainbooking.Booking, error) {
	return s.transition(ctx, tenantID, id, func(b *domainbooking.Booking) error {
		return b.MarkNoShow(s.now())
	}, "booking cannot be marked as no-show")
}

func (s *Service) transition(ctx context.Context, tenantID, id string, apply func(*domainbooking.Booking) error, ruleMsg string) (*domainbooking.Booking, error) {
	var updated *domainbooking.Booking
	err := uow.Run(ctx, s.UoW, uow.TxOptions{}, func(ctx context.Context, unit uow.UnitOfWork) error {
		b, err := unit.Bookings().ByID(ctx, tenantID, id)
		if err != nil {
			if errors.Is(err, domainbooking.ErrNotFound) {
				return apperr.NotFound("booking not found")
			}
			return err
		}
		if err := apply(b); err != nil {
			return apperr.BusinessRule(ruleMsg)
		}
		if err := unit.Bookings().Update(ctx, b); err != nil {
			return err
		}
		updated = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Get returns a booking scoped to the tenant.
func (s *Service) Get(ctx context.Context, tenantID, id string) (*domainbooking.Booking, error) {
	var found *domainbooking.Booking
	err := uow.Run(ctx, s.UoW, uow.TxOptions{ReadOnly: true}, func(ctx context.Context, unit uow.UnitOfWork) error {
		b, err := unit.Bookings().ByID(ctx, tenantID, id)
		if err != nil {
			if errors.Is(err, domainbooking.ErrNotFound) {
				return apperr.NotFound("booking not found")
			}
			return err
		}
		found = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

// Lookup resolves a booking by its public reference and guest email.
func (s *Service) Lookup(ctx context.Context, tenantID, reference, guestEmail string) (*domainbooking.Booking, error) {
	reference = strings.ToUpper(strings.TrimSpace(reference))
	guestEmail = strings.ToLower(strings.TrimSpace(guestEmail))
	if reference == "" || guestEmail == "" {
		return nil, apperr.Validation("reference and guest email required")
	}
	var found *domainbooking.Booking
	err := uow.Run(ctx, s.UoW, uow.TxOptions{ReadOnly: true}, func(ctx context.Context, unit uow.UnitOfWork) error {
		b, err := unit.Bookings().ByReference(ctx, tenantID, reference, guestEmail)
		if err != nil {
			if errors.Is(err, domainbooking.ErrNotFound) {
				return apperr.NotFound("booking not found")
			}
			return err
		}
		found = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

// GenerateReference previews the next reference for the tenant's current
// month without reserving it.
func (s *Service) GenerateReference(ctx context.Context, tenantID string) (string, error) {
	prefix := domainbooking.ReferencePrefix(s.now())
	var ref string
	err := uow.Run(ctx, s.UoW, uow.TxOptions{ReadOnly: true}, func(ctx context.Context, unit uow.UnitOfWork) error {
		last, err := unit.Bookings().LastReference(ctx, tenantID, prefix)
		if err != nil {
			return err
		}
		ref = domainbooking.NextReference(prefix, last)
		return nil
	})
	if err != nil {
		return "", err
	}
	return ref, nil
}

// ExpireStalePending cancels pending bookings older than ttl so abandoned
// checkouts release their dates. Returns the number of bookings expired.
func (s *Service) ExpireStalePending(ctx context.Context, ttl time.Duration) (int, error) {
	cutoff := s.now().Add(-ttl)
	var expired []*domainbooking.Booking
	err := uow.Run(ctx, s.UoW, uow.TxOptions{}, func(ctx context.Context, unit uow.UnitOfWork) error {
		stale, err := unit.Bookings().StalePending(ctx, cutoff)
		if err != nil {
			return err
		}
		for _, b := range stale {
			if err := b.Cancel(s.now()); err != nil {
				continue
			}
			if err := unit.Bookings().Update(ctx, b); err != nil {
				return err
			}
			expired = append(expired, b)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	for _, b := range expired {
		s.publish(ctx, EventCancelled, b)
	}
	if len(expired) > 0 {
		s.log().Info("stale pending bookings expired", "count", len(expired))
	}
	return len(expired), nil
}
