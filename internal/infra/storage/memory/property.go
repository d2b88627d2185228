package memory

import (
	"context"

	domainproperty "villastay/internal/domain/property"
)

type PropertyRepository struct {
	store *Store
}

func NewPropertyRepository(store *Store) *PropertyRepository {
	return &PropertyRepository{store: store}
}

func (r *PropertyRepository) ByID(ctx context.Context, tenantID, id string) (*domainproperty.Property, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	p, ok := r.store.properties[id]
	if !ok || p.TenantID != tenantID {
		return nil, domainproperty.ErrNotFound
	}
	cp := p
	return &cp, nil
}

func (r *PropertyRepository) Save(ctx context.Context, p *domainproperty.Property) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.properties[p.ID] = *p
	return nil
}
