package memory

import (
	"context"

	pricingsvc "villastay/internal/app/services/pricing"
)

// ExtrasCatalog serves extra options seeded into the store.
type ExtrasCatalog struct {
	store *Store
}

func NewExtrasCatalog(store *Store) *ExtrasCatalog {
	return &ExtrasCatalog{store: store}
}

func (c *ExtrasCatalog) Option(ctx context.Context, tenantID, optionID string) (*pricingsvc.ExtraOption, error) {
	c.store.mu.RLock()
	defer c.store.mu.RUnlock()
	opt, ok := c.store.extras[extraKey(tenantID, optionID)]
	if !ok {
		return nil, pricingsvc.ErrOptionNotFound
	}
	cp := opt
	return &cp, nil
}
