package pricing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	domainpricing "villastay/internal/domain/pricing"
	domainproperty "villastay/internal/domain/property"
	"villastay/internal/domain/shared/apperr"
	"villastay/internal/domain/shared/daterange"
	"villastay/internal/domain/shared/money"
)

// ExtraOption is an optional add-on whose unit price the extras catalog
// collaborator supplies.
type ExtraOption struct {
	ID        string
	Name      string
	UnitPrice float64
}

type ExtrasCatalog interface {
	Option(ctx context.Context, tenantID, optionID string) (*ExtraOption, error)
}

var ErrOptionNotFound = errors.New("pricing: extra option not found")

// Config carries the documented default fee policies. The flat tourist tax
// is an extension point, not a tax engine.
type Config struct {
	TouristTaxPerAdultNight float64
	PetFeePerPet            float64
}

func DefaultConfig() Config {
	return Config{
		TouristTaxPerAdultNight: 1,
		PetFeePerPet:            20,
	}
}

type GuestCounts struct {
	Adults   int
	Children int
	Infants  int
	Pets     int
}

type SelectedExtra struct {
	OptionID string
	Quantity int
}

type CalculateInput struct {
	TenantID   string
	PropertyID string
	CheckIn    time.Time
	CheckOut   time.Time
	Guests     GuestCounts
	Extras     []SelectedExtra
}

// Service computes price breakdowns for stays. It is stateless; every call
// is a request-scoped read over the rate data.
type Service struct {
	Properties domainproperty.Repository
	Periods    domainpricing.PeriodRepository
	Extras     ExtrasCatalog
	Config     Config
	Logger     *slog.Logger
}

// Calculate resolves every night of the stay and assembles the breakdown.
// Identical inputs over unchanged rate data yield identical quotes.
func (s *Service) Calculate(ctx context.Context, input CalculateInput) (*domainpricing.Quote, error) {
	dr, err := daterange.New(input.CheckIn, input.CheckOut)
	if err != nil {
		return nil, apperr.Validation("check-out must be after check-in")
	}
	if input.Guests.Adults < 1 {
		return nil, apperr.Validation("at least one adult required")
	}

	prop, err := s.Properties.ByID(ctx, input.TenantID, input.PropertyID)
	if err != nil {
		if errors.Is(err, domainproperty.ErrNotFound) {
			return nil, apperr.NotFound("property not found")
		}
		return nil, err
	}
	if input.Guests.Adults+input.Guests.Children > prop.MaxGuests {
		return nil, apperr.BusinessRule(fmt.Sprintf("maximum %d guests allowed", prop.MaxGuests))
	}

	periods, err := s.Periods.Intersecting(ctx, input.TenantID, input.PropertyID, dr)
	if err != nil {
		return nil, err
	}

	defaults := domainpricing.Defaults{
		BasePrice:      prop.BasePrice,
		WeekendPremium: prop.WeekendPremium,
		MinNights:      prop.MinNights,
	}

	quote := &domainpricing.Quote{Nights: dr.Nights()}
	for _, day := range dr.Dates() {
		rate := domainpricing.ResolveDay(day, periods, defaults)
		final := rate.NightPrice(day)
		quote.AccommodationTotal += final
		quote.Breakdown = append(quote.Breakdown, domainpricing.DayPrice{
			Date:           day,
			BasePrice:      rate.BasePrice,
			WeekendApplied: domainpricing.IsWeekendNight(day) && rate.WeekendPremium > 0,
			FinalPrice:     final,
			PeriodName:     rate.PeriodName,
		})
	}

	// Long-stay tiers apply to accommodation only and never combine.
	switch {
	case quote.Nights >= 28:
		quote.DiscountAmount = money.Round2(quote.AccommodationTotal * 0.10)
	case quote.Nights >= 7:
		quote.DiscountAmount = money.Round2(quote.AccommodationTotal * 0.05)
	}

	quote.CleaningFee = prop.CleaningFee
	quote.TouristTax = money.Round2(float64(input.Guests.Adults) * float64(quote.Nights) * s.Config.TouristTaxPerAdultNight)

	if input.Guests.Pets > 0 && prop.PetsAllowed {
		quote.ExtraFees = append(quote.ExtraFees, domainpricing.ExtraFee{
			Name:     "Pet fee",
			Quantity: input.Guests.Pets,
			Amount:   money.Round2(float64(input.Guests.Pets) * s.Config.PetFeePerPet),
		})
	}
	for _, sel := range input.Extras {
		if sel.Quantity <= 0 {
			return nil, apperr.Validation("extra quantity must be positive")
		}
		if s.Extras == nil {
			return nil, apperr.Validation("extras are not available")
		}
		opt, err := s.Extras.Option(ctx, input.TenantID, sel.OptionID)
		if err != nil {
			if errors.Is(err, ErrOptionNotFound) {
				return nil, apperr.NotFound("extra option not found")
			}
			return nil, err
		}
		quote.ExtraFees = append(quote.ExtraFees, domainpricing.ExtraFee{
			Name:     opt.Name,
			Quantity: sel.Quantity,
			Amount:   money.Round2(float64(sel.Quantity) * opt.UnitPrice),
		})
	}

	quote.Subtotal = money.Round2(quote.AccommodationTotal + quote.CleaningFee + quote.TouristTax + quote.ExtraFeesTotal())
	quote.Total = money.Round2(quote.Subtotal - quote.DiscountAmount)
	quote.AveragePerNight = money.Round2(quote.Total / float64(quote.Nights))

	if s.Logger != nil {
		s.Logger.Debug("price calculated",
			"tenant_id", input.TenantID,
			"property_id", input.PropertyID,
			"nights", quote.Nights,
			"total", quote.Total,
		)
	}
	return quote, nil
}
