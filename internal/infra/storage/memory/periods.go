package memory

import (
	"context"

	domainpricing "villastay/internal/domain/pricing"
	"villastay/internal/domain/shared/daterange"
)

type PeriodRepository struct {
	store *Store
}

func NewPeriodRepository(store *Store) *PeriodRepository {
	return &PeriodRepository{store: store}
}

func (r *PeriodRepository) Intersecting(ctx context.Context, tenantID, propertyID string, dr daterange.DateRange) ([]domainpricing.RatePeriod, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var out []domainpricing.RatePeriod
	lastNight := dr.CheckOut.AddDate(0, 0, -1)
	for _, p := range r.store.periods {
		if p.TenantID != tenantID || !p.IsActive {
			continue
		}
		if !p.IsGlobal && p.PropertyID != propertyID {
			continue
		}
		// Inclusive period span touching any billed night of the stay.
		if daterange.Day(p.StartDate).After(daterange.Day(lastNight)) || daterange.Day(p.EndDate).Before(dr.CheckIn) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *PeriodRepository) ByID(ctx context.Context, tenantID, id string) (*domainpricing.RatePeriod, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	p, ok := r.store.periods[id]
	if !ok || p.TenantID != tenantID {
		return nil, domainpricing.ErrPeriodNotFound
	}
	cp := p
	return &cp, nil
}

func (r *PeriodRepository) Save(ctx context.Context, p *domainpricing.RatePeriod) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.periods[p.ID] = *p
	return nil
}

func (r *PeriodRepository) Delete(ctx context.Context, tenantID, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	p, ok := r.store.periods[id]
	if !ok || p.TenantID != tenantID {
		return domainpricing.ErrPeriodNotFound
	}
	delete(r.store.periods, id)
	return nil
}
