package memory

import (
	"context"
	"strings"

	domainpromo "villastay/internal/domain/promo"
)

type PromoRepository struct {
	store *Store
}

func NewPromoRepository(store *Store) *PromoRepository {
	return &PromoRepository{store: store}
}

func (r *PromoRepository) ByCode(ctx context.Context, tenantID, code string) (*domainpromo.PromoCode, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	normalized := strings.ToUpper(strings.TrimSpace(code))
	for _, p := range r.store.promos {
		if p.TenantID == tenantID && p.Code == normalized {
			cp := p
			return &cp, nil
		}
	}
	return nil, domainpromo.ErrNotFound
}

func (r *PromoRepository) ByID(ctx context.Context, tenantID, id string) (*domainpromo.PromoCode, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	p, ok := r.store.promos[id]
	if !ok || p.TenantID != tenantID {
		return nil, domainpromo.ErrNotFound
	}
	cp := p
	return &cp, nil
}

func (r *PromoRepository) Save(ctx context.Context, p *domainpromo.PromoCode) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	cp := *p
	cp.Code = strings.ToUpper(strings.TrimSpace(cp.Code))
	r.store.promos[cp.ID] = cp
	return nil
}

// IncrementUses bumps the counter under the write lock so the cap check and
// the increment are one atomic step.
func (r *PromoRepository) IncrementUses(ctx context.Context, tenantID, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	p, ok := r.store.promos[id]
	if !ok || p.TenantID != tenantID {
		return domainpromo.ErrNotFound
	}
	if p.MaxUses > 0 && p.CurrentUses >= p.MaxUses {
		return domainpromo.ErrExhausted
	}
	p.CurrentUses++
	r.store.promos[id] = p
	return nil
}
