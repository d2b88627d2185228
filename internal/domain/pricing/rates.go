package pricing

import (
	"context"
	"errors"
	"sort"
	"time"

	"villastay/internal/domain/shared/daterange"
)

var ErrPeriodNotFound = errors.New("pricing: rate period not found")

// RatePeriod is a tenant- or property-scoped seasonal rate. PropertyID is
// empty for tenant-wide periods (IsGlobal set). Start and end dates are
// inclusive calendar days.
type RatePeriod struct {
	ID             string
	TenantID       string
	PropertyID     string
	Name           string
	StartDate      time.Time
	EndDate        time.Time
	Priority       int
	BasePrice      float64
	WeekendPremium float64
	MinNights      *int
	IsGlobal       bool
	IsActive       bool
}

// ContainsDay reports whether the inclusive period covers the calendar day.
func (p RatePeriod) ContainsDay(day time.Time) bool {
	day = daterange.Day(day)
	return !day.Before(daterange.Day(p.StartDate)) && !day.After(daterange.Day(p.EndDate))
}

type PeriodRepository interface {
	// Intersecting returns active periods for the property (or tenant-global)
	// whose inclusive span touches the given range.
	Intersecting(ctx context.Context, tenantID, propertyID string, dr daterange.DateRange) ([]RatePeriod, error)
	ByID(ctx context.Context, tenantID, id string) (*RatePeriod, error)
	Save(ctx context.Context, p *RatePeriod) error
	Delete(ctx context.Context, tenantID, id string) error
}

// Defaults are the property-level values used when no period covers a date.
type Defaults struct {
	BasePrice      float64
	WeekendPremium float64
	MinNights      int
}

// DayRate is the resolved nightly rate for one calendar date.
type DayRate struct {
	BasePrice      float64
	WeekendPremium float64
	MinNights      int
	PeriodName     string
	FromPeriod     bool
}

// IsWeekendNight marks Friday and Saturday nights, the ones carrying the
// weekend premium.
func IsWeekendNight(day time.Time) bool {
	wd := day.Weekday()
	return wd == time.Friday || wd == time.Saturday
}

// SortPeriods orders candidates so the winner is always first: priority
// descending, then start date ascending for deterministic ties.
func SortPeriods(periods []RatePeriod) {
	sort.SliceStable(periods, func(i, j int) bool {
		if periods[i].Priority != periods[j].Priority {
			return periods[i].Priority > periods[j].Priority
		}
		return periods[i].StartDate.Before(periods[j].StartDate)
	})
}

// ResolveDay picks the rate for one date from pre-fetched active periods,
// falling back to the property defaults when none covers it. Pure and
// deterministic across repeated calls.
func ResolveDay(day time.Time, periods []RatePeriod, def Defaults) DayRate {
	day = daterange.Day(day)
	candidates := make([]RatePeriod, 0, len(periods))
	for _, p := range periods {
		if p.IsActive && p.ContainsDay(day) {
			candidates = append(candidates, p)
		}
	}
	if len(candidates) == 0 {
		return DayRate{
			BasePrice:      def.BasePrice,
			WeekendPremium: def.WeekendPremium,
			MinNights:      def.MinNights,
		}
	}
	SortPeriods(candidates)
	winner := candidates[0]

	rate := DayRate{
		BasePrice:      winner.BasePrice,
		WeekendPremium: winner.WeekendPremium,
		PeriodName:     winner.Name,
		FromPeriod:     true,
		MinNights:      def.MinNights,
	}
	if winner.MinNights != nil {
		rate.MinNights = *winner.MinNights
	}
	return rate
}

// NightPrice applies the weekend premium when the date is a premium night.
func (r DayRate) NightPrice(day time.Time) float64 {
	if IsWeekendNight(day) {
		return r.BasePrice + r.WeekendPremium
	}
	return r.BasePrice
}
