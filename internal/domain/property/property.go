package property

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("property: not found")

// Property carries the pricing defaults and guest limits the engine reads;
// everything else about a listing lives with the catalog collaborator.
type Property struct {
	ID             string
	TenantID       string
	Name           string
	BasePrice      float64
	WeekendPremium float64
	CleaningFee    float64
	MinNights      int
	MaxGuests      int
	PetsAllowed    bool
}

type Repository interface {
	// ByID returns the property scoped to the tenant or ErrNotFound.
	ByID(ctx context.Context, tenantID, id string) (*Property, error)
	Save(ctx context.Context, p *Property) error
}
