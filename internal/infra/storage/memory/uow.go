package memory

import (
	"context"

	"villastay/internal/app/uow"
	domainavailability "villastay/internal/domain/availability"
	domainbooking "villastay/internal/domain/booking"
	domainpricing "villastay/internal/domain/pricing"
	domainpromo "villastay/internal/domain/promo"
	domainproperty "villastay/internal/domain/property"
)

// Factory hands out units over the shared store. Repositories are already
// atomic per operation, so commit and rollback are no-ops here; the unit
// exists to satisfy the same boundary the mongo backend enforces.
type Factory struct {
	store *Store
}

func NewFactory(store *Store) *Factory {
	return &Factory{store: store}
}

func (f *Factory) Begin(ctx context.Context, opts uow.TxOptions) (uow.UnitOfWork, error) {
	return &Unit{store: f.store}, nil
}

type Unit struct {
	store *Store
}

func (u *Unit) Properties() domainproperty.Repository { return NewPropertyRepository(u.store) }
func (u *Unit) Periods() domainpricing.PeriodRepository {
	return NewPeriodRepository(u.store)
}
func (u *Unit) Bookings() domainbooking.Repository { return NewBookingRepository(u.store) }
func (u *Unit) BlockedPeriods() domainavailability.BlockedPeriodRepository {
	return NewBlockedPeriodRepository(u.store)
}
func (u *Unit) Promos() domainpromo.Repository { return NewPromoRepository(u.store) }

func (u *Unit) Commit(ctx context.Context) error   { return nil }
func (u *Unit) Rollback(ctx context.Context) error { return nil }
