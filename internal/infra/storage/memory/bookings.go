package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	domainbooking "villastay/internal/domain/booking"
	"villastay/internal/domain/shared/daterange"
)

type BookingRepository struct {
	store *Store
}

func NewBookingRepository(store *Store) *BookingRepository {
	return &BookingRepository{store: store}
}

func (r *BookingRepository) ByID(ctx context.Context, tenantID, id string) (*domainbooking.Booking, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	b, ok := r.store.bookings[id]
	if !ok || b.TenantID != tenantID {
		return nil, domainbooking.ErrNotFound
	}
	cp := b
	return &cp, nil
}

func (r *BookingRepository) ByReference(ctx context.Context, tenantID, reference, guestEmail string) (*domainbooking.Booking, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for _, b := range r.store.bookings {
		if b.TenantID == tenantID &&
			strings.EqualFold(b.Reference, reference) &&
			strings.EqualFold(b.Guest.Email, guestEmail) {
			cp := b
			return &cp, nil
		}
	}
	return nil, domainbooking.ErrNotFound
}

// Create checks the reference and the exclusion invariant under the write
// lock, so two concurrent creates for overlapping dates cannot both land.
func (r *BookingRepository) Create(ctx context.Context, b *domainbooking.Booking) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, existing := range r.store.bookings {
		if existing.TenantID != b.TenantID {
			continue
		}
		if existing.Reference == b.Reference {
			return domainbooking.ErrReferenceTaken
		}
		if existing.PropertyID == b.PropertyID &&
			existing.Status.Blocking() &&
			existing.Range.Overlaps(b.Range) {
			return domainbooking.ErrDateConflict
		}
	}
	r.store.bookings[b.ID] = *b
	return nil
}

func (r *BookingRepository) Update(ctx context.Context, b *domainbooking.Booking) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	existing, ok := r.store.bookings[b.ID]
	if !ok || existing.TenantID != b.TenantID {
		return domainbooking.ErrNotFound
	}
	r.store.bookings[b.ID] = *b
	return nil
}

func (r *BookingRepository) Overlapping(ctx context.Context, tenantID, propertyID string, dr daterange.DateRange, excludeID string) ([]*domainbooking.Booking, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var out []*domainbooking.Booking
	for _, b := range r.store.bookings {
		if b.TenantID != tenantID || b.PropertyID != propertyID || b.ID == excludeID {
			continue
		}
		if b.Status.Blocking() && b.Range.Overlaps(dr) {
			cp := b
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Range.CheckIn.Before(out[j].Range.CheckIn) })
	return out, nil
}

func (r *BookingRepository) LastReference(ctx context.Context, tenantID, prefix string) (string, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var last string
	for _, b := range r.store.bookings {
		if b.TenantID != tenantID || !strings.HasPrefix(b.Reference, prefix) {
			continue
		}
		if b.Reference > last {
			last = b.Reference
		}
	}
	return last, nil
}

func (r *BookingRepository) CountPromoUses(ctx context.Context, tenantID, promoCodeID, guestEmail string) (int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	count := 0
	for _, b := range r.store.bookings {
		if b.TenantID == tenantID &&
			b.PromoCodeID == promoCodeID &&
			b.Status != domainbooking.StatusCancelled &&
			strings.EqualFold(b.Guest.Email, guestEmail) {
			count++
		}
	}
	return count, nil
}

func (r *BookingRepository) StalePending(ctx context.Context, before time.Time) ([]*domainbooking.Booking, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var out []*domainbooking.Booking
	for _, b := range r.store.bookings {
		if b.Status == domainbooking.StatusPending && b.CreatedAt.Before(before) {
			cp := b
			out = append(out, &cp)
		}
	}
	return out, nil
}
