package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	domainavailability "villastay/internal/domain/availability"
	domainbooking "villastay/internal/domain/booking"
	domainpricing "villastay/internal/domain/pricing"
	domainproperty "villastay/internal/domain/property"
	"villastay/internal/domain/shared/apperr"
	"villastay/internal/domain/shared/daterange"
)

// Reason codes for an unavailable range.
type Reason string

const (
	ReasonBookingConflict Reason = "booking_conflict"
	ReasonBlocked         Reason = "blocked"
	ReasonMinimumStay     Reason = "minimum_stay"
)

type CheckInput struct {
	TenantID         string
	PropertyID       string
	CheckIn          time.Time
	CheckOut         time.Time
	ExcludeBookingID string
}

type CheckResult struct {
	Available   bool     `json:"available"`
	Reason      Reason   `json:"reason,omitempty"`
	Message     string   `json:"message,omitempty"`
	ConflictIDs []string `json:"conflictIds,omitempty"`
	MinNights   int      `json:"minNights,omitempty"`
}

// Service answers availability questions. The result is advisory: booking
// insertion re-enforces the exclusion invariant at the storage layer.
type Service struct {
	Properties domainproperty.Repository
	Periods    domainpricing.PeriodRepository
	Bookings   domainbooking.Repository
	Blocked    domainavailability.BlockedPeriodRepository
	Now        func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

// Check runs the three availability predicates in order: blocking-booking
// overlap, blocked-period overlap, then minimum stay at check-in.
func (s *Service) Check(ctx context.Context, input CheckInput) (*CheckResult, error) {
	dr, err := daterange.New(input.CheckIn, input.CheckOut)
	if err != nil {
		return nil, apperr.Validation("check-out must be after check-in")
	}
	prop, err := s.Properties.ByID(ctx, input.TenantID, input.PropertyID)
	if err != nil {
		if errors.Is(err, domainproperty.ErrNotFound) {
			return nil, apperr.NotFound("property not found")
		}
		return nil, err
	}

	conflicts, err := s.Bookings.Overlapping(ctx, input.TenantID, input.PropertyID, dr, input.ExcludeBookingID)
	if err != nil {
		return nil, err
	}
	if len(conflicts) > 0 {
		ids := make([]string, 0, len(conflicts))
		for _, b := range conflicts {
			ids = append(ids, b.ID)
		}
		return &CheckResult{
			Available:   false,
			Reason:      ReasonBookingConflict,
			Message:     "booking conflict",
			ConflictIDs: ids,
		}, nil
	}

	blocks, err := s.Blocked.OverlappingStay(ctx, input.PropertyID, dr)
	if err != nil {
		return nil, err
	}
	if len(blocks) > 0 {
		msg := blocks[0].Reason
		if msg == "" {
			msg = "dates blocked"
		}
		return &CheckResult{Available: false, Reason: ReasonBlocked, Message: msg}, nil
	}

	minNights, err := s.minNightsAt(ctx, input.TenantID, input.PropertyID, prop, dr)
	if err != nil {
		return nil, err
	}
	if nights := dr.Nights(); minNights > 0 && nights < minNights {
		return &CheckResult{
			Available: false,
			Reason:    ReasonMinimumStay,
			Message:   fmt.Sprintf("minimum stay of %d nights required", minNights),
			MinNights: minNights,
		}, nil
	}

	return &CheckResult{Available: true}, nil
}

// minNightsAt resolves the minimum stay applicable at check-in: the winning
// rate period's value when set, else the property default.
func (s *Service) minNightsAt(ctx context.Context, tenantID, propertyID string, prop *domainproperty.Property, dr daterange.DateRange) (int, error) {
	periods, err := s.Periods.Intersecting(ctx, tenantID, propertyID, dr)
	if err != nil {
		return 0, err
	}
	rate := domainpricing.ResolveDay(dr.CheckIn, periods, domainpricing.Defaults{
		BasePrice:      prop.BasePrice,
		WeekendPremium: prop.WeekendPremium,
		MinNights:      prop.MinNights,
	})
	return rate.MinNights, nil
}
