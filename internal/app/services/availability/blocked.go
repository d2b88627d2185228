package availability

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	domainavailability "villastay/internal/domain/availability"
	domainproperty "villastay/internal/domain/property"
	"villastay/internal/domain/shared/apperr"
	"villastay/internal/domain/shared/daterange"
)

type BlockInput struct {
	TenantID   string
	PropertyID string
	StartDate  time.Time
	EndDate    time.Time
	Reason     string
	Notes      string
}

// Block creates an administrator block. A range holding blocking bookings
// cannot be blocked; the conflicting booking ids are reported instead.
func (s *Service) Block(ctx context.Context, input BlockInput) (*domainavailability.BlockedPeriod, error) {
	start := daterange.Day(input.StartDate)
	end := daterange.Day(input.EndDate)
	if start.IsZero() || end.IsZero() || end.Before(start) {
		return nil, apperr.Validation("end date must not be before start date")
	}
	if _, err := s.Properties.ByID(ctx, input.TenantID, input.PropertyID); err != nil {
		if errors.Is(err, domainproperty.ErrNotFound) {
			return nil, apperr.NotFound("property not found")
		}
		return nil, err
	}

	// The inclusive block spans every night up to and including its end day.
	span := daterange.DateRange{CheckIn: start, CheckOut: end.AddDate(0, 0, 1)}
	bookings, err := s.Bookings.Overlapping(ctx, input.TenantID, input.PropertyID, span, "")
	if err != nil {
		return nil, err
	}
	if len(bookings) > 0 {
		ids := make([]string, 0, len(bookings))
		for _, b := range bookings {
			ids = append(ids, b.ID)
		}
		return nil, apperr.Conflict("cannot block a period with existing bookings", map[string]any{"conflictIds": ids})
	}

	block := &domainavailability.BlockedPeriod{
		ID:         uuid.NewString(),
		PropertyID: input.PropertyID,
		StartDate:  start,
		EndDate:    end,
		Reason:     input.Reason,
		Notes:      input.Notes,
		CreatedAt:  s.now(),
	}
	if err := s.Blocked.Save(ctx, block); err != nil {
		return nil, err
	}
	return block, nil
}

type BlockUpdate struct {
	StartDate *time.Time
	EndDate   *time.Time
	Reason    *string
	Notes     *string
}

// UpdateBlock adjusts an existing block, revalidating the date order.
func (s *Service) UpdateBlock(ctx context.Context, tenantID, id string, update BlockUpdate) (*domainavailability.BlockedPeriod, error) {
	block, err := s.ownedBlock(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if update.StartDate != nil {
		block.StartDate = daterange.Day(*update.StartDate)
	}
	if update.EndDate != nil {
		block.EndDate = daterange.Day(*update.EndDate)
	}
	if block.EndDate.Before(block.StartDate) {
		return nil, apperr.Validation("end date must not be before start date")
	}
	if update.Reason != nil {
		block.Reason = *update.Reason
	}
	if update.Notes != nil {
		block.Notes = *update.Notes
	}
	if err := s.Blocked.Save(ctx, block); err != nil {
		return nil, err
	}
	return block, nil
}

// Unblock removes a block.
func (s *Service) Unblock(ctx context.Context, tenantID, id string) error {
	if _, err := s.ownedBlock(ctx, tenantID, id); err != nil {
		return err
	}
	return s.Blocked.Delete(ctx, id)
}

// ListBlocks returns the property's blocks ordered by start date.
func (s *Service) ListBlocks(ctx context.Context, tenantID, propertyID string) ([]domainavailability.BlockedPeriod, error) {
	if _, err := s.Properties.ByID(ctx, tenantID, propertyID); err != nil {
		if errors.Is(err, domainproperty.ErrNotFound) {
			return nil, apperr.NotFound("property not found")
		}
		return nil, err
	}
	return s.Blocked.ByProperty(ctx, propertyID)
}

// ownedBlock resolves a block and verifies its property belongs to the
// tenant.
func (s *Service) ownedBlock(ctx context.Context, tenantID, id string) (*domainavailability.BlockedPeriod, error) {
	block, err := s.Blocked.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainavailability.ErrBlockedPeriodNotFound) {
			return nil, apperr.NotFound("blocked period not found")
		}
		return nil, err
	}
	if _, err := s.Properties.ByID(ctx, tenantID, block.PropertyID); err != nil {
		if errors.Is(err, domainproperty.ErrNotFound) {
			return nil, apperr.NotFound("blocked period not found")
		}
		return nil, err
	}
	return block, nil
}
