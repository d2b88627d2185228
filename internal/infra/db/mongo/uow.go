package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"villastay/internal/app/uow"
	domainavailability "villastay/internal/domain/availability"
	domainbooking "villastay/internal/domain/booking"
	domainpricing "villastay/internal/domain/pricing"
	domainpromo "villastay/internal/domain/promo"
	domainproperty "villastay/internal/domain/property"
)

var ErrUnitOfWorkNotConfigured = errors.New("mongo: unit of work factory missing database")

// Factory wires Mongo transactions into the generic UnitOfWork interface.
type Factory struct {
	DB *mongo.Database

	PropertiesRepo domainproperty.Repository
	PeriodsRepo    domainpricing.PeriodRepository
	BookingsRepo   domainbooking.Repository
	BlockedRepo    domainavailability.BlockedPeriodRepository
	PromosRepo     domainpromo.Repository
}

// Begin starts a MongoDB session/transaction.
func (f Factory) Begin(ctx context.Context, opts uow.TxOptions) (uow.UnitOfWork, error) {
	if f.DB == nil {
		return nil, ErrUnitOfWorkNotConfigured
	}
	session, err := f.DB.Client().StartSession()
	if err != nil {
		return nil, err
	}
	txnOpts := options.Transaction().SetReadConcern(f.DB.ReadConcern()).SetWriteConcern(f.DB.WriteConcern())
	if err := session.StartTransaction(txnOpts); err != nil {
		session.EndSession(ctx)
		return nil, err
	}
	return &Unit{
		db:         f.DB,
		session:    session,
		properties: f.PropertiesRepo,
		periods:    f.PeriodsRepo,
		bookings:   f.BookingsRepo,
		blocked:    f.BlockedRepo,
		promos:     f.PromosRepo,
	}, nil
}

type Unit struct {
	db      *mongo.Database
	session mongo.Session

	properties domainproperty.Repository
	periods    domainpricing.PeriodRepository
	bookings   domainbooking.Repository
	blocked    domainavailability.BlockedPeriodRepository
	promos     domainpromo.Repository
}

func (u *Unit) Properties() domainproperty.Repository { return u.properties }

func (u *Unit) Periods() domainpricing.PeriodRepository { return u.periods }

func (u *Unit) Bookings() domainbooking.Repository { return u.bookings }

func (u *Unit) BlockedPeriods() domainavailability.BlockedPeriodRepository { return u.blocked }

func (u *Unit) Promos() domainpromo.Repository { return u.promos }

func (u *Unit) Commit(ctx context.Context) error {
	defer u.session.EndSession(ctx)
	return u.session.CommitTransaction(ctx)
}

func (u *Unit) Rollback(ctx context.Context) error {
	defer u.session.EndSession(ctx)
	return u.session.AbortTransaction(ctx)
}

// InjectContext ensures the Mongo session is available in context for
// downstream repositories.
func (u *Unit) InjectContext(ctx context.Context) context.Context {
	return mongo.NewSessionContext(ctx, u.session)
}
