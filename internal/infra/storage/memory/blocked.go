package memory

import (
	"context"
	"sort"

	domainavailability "villastay/internal/domain/availability"
	"villastay/internal/domain/shared/daterange"
)

type BlockedPeriodRepository struct {
	store *Store
}

func NewBlockedPeriodRepository(store *Store) *BlockedPeriodRepository {
	return &BlockedPeriodRepository{store: store}
}

func (r *BlockedPeriodRepository) ByID(ctx context.Context, id string) (*domainavailability.BlockedPeriod, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	b, ok := r.store.blocked[id]
	if !ok {
		return nil, domainavailability.ErrBlockedPeriodNotFound
	}
	cp := b
	return &cp, nil
}

func (r *BlockedPeriodRepository) OverlappingStay(ctx context.Context, propertyID string, dr daterange.DateRange) ([]domainavailability.BlockedPeriod, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var out []domainavailability.BlockedPeriod
	for _, b := range r.store.blocked {
		if b.PropertyID == propertyID && b.OverlapsStay(dr) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *BlockedPeriodRepository) ByProperty(ctx context.Context, propertyID string) ([]domainavailability.BlockedPeriod, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var out []domainavailability.BlockedPeriod
	for _, b := range r.store.blocked {
		if b.PropertyID == propertyID {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.Before(out[j].StartDate) })
	return out, nil
}

func (r *BlockedPeriodRepository) Save(ctx context.Context, b *domainavailability.BlockedPeriod) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.blocked[b.ID] = *b
	return nil
}

func (r *BlockedPeriodRepository) Delete(ctx context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.blocked[id]; !ok {
		return domainavailability.ErrBlockedPeriodNotFound
	}
	delete(r.store.blocked, id)
	return nil
}
