package uow

import (
	"context"

	domainavailability "villastay/internal/domain/availability"
	domainbooking "villastay/internal/domain/booking"
	domainpricing "villastay/internal/domain/pricing"
	domainpromo "villastay/internal/domain/promo"
	domainproperty "villastay/internal/domain/property"
)

// UnitOfWork coordinates repositories inside a transaction boundary.
type UnitOfWork interface {
	Properties() domainproperty.Repository
	Periods() domainpricing.PeriodRepository
	Bookings() domainbooking.Repository
	BlockedPeriods() domainavailability.BlockedPeriodRepository
	Promos() domainpromo.Repository

	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Factory starts unit of work instances.
type Factory interface {
	Begin(ctx context.Context, opts TxOptions) (UnitOfWork, error)
}

// TxOptions configure transaction boundaries.
type TxOptions struct {
	ReadOnly bool
}

// ContextInjector is implemented by units that carry a storage session in
// context for downstream repositories.
type ContextInjector interface {
	InjectContext(ctx context.Context) context.Context
}

// Run begins a unit, injects its session into the context, executes fn and
// commits, rolling back on any error.
func Run(ctx context.Context, factory Factory, opts TxOptions, fn func(ctx context.Context, unit UnitOfWork) error) error {
	unit, err := factory.Begin(ctx, opts)
	if err != nil {
		return err
	}
	if injector, ok := unit.(ContextInjector); ok {
		ctx = injector.InjectContext(ctx)
	}
	committed := false
	defer func() {
		if !committed {
			_ = unit.Rollback(ctx)
		}
	}()
	if err := fn(ctx, unit); err != nil {
		return err
	}
	if err := unit.Commit(ctx); err != nil {
		return err
	}
	committed = true
	return nil
}
