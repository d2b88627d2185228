package booking

import (
	"context"
	"errors"
	"time"

	"villastay/internal/domain/shared/daterange"
)

var (
	ErrNotFound       = errors.New("booking: not found")
	ErrInvalidState   = errors.New("booking: invalid state transition")
	ErrInvalidGuests  = errors.New("booking: at least one adult required")
	ErrReferenceTaken = errors.New("booking: reference already taken")
	ErrDateConflict   = errors.New("booking: dates conflict with an existing booking")
)

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusCancelled Status = "CANCELLED"
	StatusCompleted Status = "COMPLETED"
	StatusNoShow    Status = "NO_SHOW"
)

// Blocking reports whether a booking in this status holds its dates. Only
// PENDING and CONFIRMED bookings participate in the exclusion invariant.
func (s Status) Blocking() bool {
	return s == StatusPending || s == StatusConfirmed
}

// Guest identifies the booker; authentication lives with an external
// collaborator, so the email doubles as the per-user promo usage key.
type Guest struct {
	FirstName string
	LastName  string
	Email     string
}

type Booking struct {
	ID        string
	TenantID  string
	PropertyID string
	Reference string
	Range     daterange.DateRange
	Adults    int
	Children  int
	Infants   int
	Pets      int
	Guest     Guest

	AccommodationTotal float64
	CleaningFee        float64
	TouristTax         float64
	ExtraFeesTotal     float64
	DiscountAmount     float64
	Subtotal           float64
	Total              float64
	CommissionAmount   float64
	PayoutAmount       float64
	PromoCodeID        string

	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (b *Booking) Nights() int { return b.Range.Nights() }

// Confirm moves a pending booking to confirmed.
func (b *Booking) Confirm(now time.Time) error {
	if b.Status != StatusPending {
		return ErrInvalidState
	}
	b.Status = StatusConfirmed
	b.UpdatedAt = now.UTC()
	return nil
}

// Cancel keeps the record for audit and promo accounting; it only releases
// the dates.
func (b *Booking) Cancel(now time.Time) error {
	if b.Status != StatusPending && b.Status != StatusConfirmed {
		return ErrInvalidState
	}
	b.Status = StatusCancelled
	b.UpdatedAt = now.UTC()
	return nil
}

func (b *Booking) Complete(now time.Time) error {
	if b.Status != StatusConfirmed {
		return ErrInvalidState
	}
	b.Status = StatusCompleted
	b.UpdatedAt = now.UTC()
	return nil
}

func (b *Booking) MarkNoShow(now time.Time) error {
	if b.Status != StatusConfirmed {
		return ErrInvalidState
	}
	b.Status = StatusNoShow
	b.UpdatedAt = now.UTC()
	return nil
}

type Repository interface {
	ByID(ctx context.Context, tenantID, id string) (*Booking, error)
	// ByReference looks a booking up by its human-readable reference and the
	// guest email, the public lookup contract.
	ByReference(ctx context.Context, tenantID, reference, guestEmail string) (*Booking, error)
	// Create persists a new booking and enforces the exclusion invariant at
	// the storage layer: it fails with a conflict error when a blocking
	// booking overlaps the half-open range, and with ErrReferenceTaken when
	// the reference is already used within the tenant.
	Create(ctx context.Context, b *Booking) error
	Update(ctx context.Context, b *Booking) error
	// Overlapping returns blocking bookings whose half-open range overlaps
	// dr, optionally excluding one booking id.
	Overlapping(ctx context.Context, tenantID, propertyID string, dr daterange.DateRange, excludeID string) ([]*Booking, error)
	// LastReference returns the lexicographically greatest reference with the
	// prefix inside the tenant, or empty when none exists.
	LastReference(ctx context.Context, tenantID, prefix string) (string, error)
	// CountPromoUses counts non-cancelled bookings by the guest that used the
	// promo code.
	CountPromoUses(ctx context.Context, tenantID, promoCodeID, guestEmail string) (int, error)
	// StalePending lists pending bookings created before the cutoff.
	StalePending(ctx context.Context, before time.Time) ([]*Booking, error)
}
