package memory

import (
	"sync"

	pricingsvc "villastay/internal/app/services/pricing"
	domainavailability "villastay/internal/domain/availability"
	domainbooking "villastay/internal/domain/booking"
	domainpricing "villastay/internal/domain/pricing"
	domainpromo "villastay/internal/domain/promo"
	domainproperty "villastay/internal/domain/property"
)

// Store is the shared in-memory backing used for local runs and tests. One
// mutex covers every collection so cross-entity operations stay atomic.
type Store struct {
	mu sync.RWMutex

	properties map[string]domainproperty.Property
	periods    map[string]domainpricing.RatePeriod
	bookings   map[string]domainbooking.Booking
	blocked    map[string]domainavailability.BlockedPeriod
	promos     map[string]domainpromo.PromoCode
	extras     map[string]pricingsvc.ExtraOption
}

func NewStore() *Store {
	return &Store{
		properties: make(map[string]domainproperty.Property),
		periods:    make(map[string]domainpricing.RatePeriod),
		bookings:   make(map[string]domainbooking.Booking),
		blocked:    make(map[string]domainavailability.BlockedPeriod),
		promos:     make(map[string]domainpromo.PromoCode),
		extras:     make(map[string]pricingsvc.ExtraOption),
	}
}

func extraKey(tenantID, optionID string) string { return tenantID + "/" + optionID }

// SeedExtra registers an extra option for the tenant.
func (s *Store) SeedExtra(tenantID string, opt pricingsvc.ExtraOption) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.extras[extraKey(tenantID, opt.ID)] = opt
}
