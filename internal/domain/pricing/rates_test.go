package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func intPtr(n int) *int { return &n }

func TestResolveDayFallsBackToDefaults(t *testing.T) {
	def := Defaults{BasePrice: 100, WeekendPremium: 20, MinNights: 2}

	rate := ResolveDay(date(2026, time.June, 10), nil, def)
	assert.False(t, rate.FromPeriod)
	assert.Equal(t, 100.0, rate.BasePrice)
	assert.Equal(t, 20.0, rate.WeekendPremium)
	assert.Equal(t, 2, rate.MinNights)
}

func TestResolveDayHighestPriorityWins(t *testing.T) {
	periods := []RatePeriod{
		{ID: "low", Name: "Season", Priority: 1, BasePrice: 120, StartDate: date(2026, time.June, 1), EndDate: date(2026, time.June, 30), IsActive: true},
		{ID: "high", Name: "Festival", Priority: 10, BasePrice: 150, StartDate: date(2026, time.June, 5), EndDate: date(2026, time.June, 20), IsActive: true},
	}

	rate := ResolveDay(date(2026, time.June, 10), periods, Defaults{BasePrice: 100})
	assert.True(t, rate.FromPeriod)
	assert.Equal(t, "Festival", rate.PeriodName)
	assert.Equal(t, 150.0, rate.BasePrice)
}

func TestResolveDayPriorityTieBreaksOnEarliestStart(t *testing.T) {
	periods := []RatePeriod{
		{ID: "later", Name: "Later", Priority: 5, BasePrice: 200, StartDate: date(2026, time.June, 8), EndDate: date(2026, time.June, 20), IsActive: true},
		{ID: "earlier", Name: "Earlier", Priority: 5, BasePrice: 130, StartDate: date(2026, time.June, 1), EndDate: date(2026, time.June, 20), IsActive: true},
	}

	rate := ResolveDay(date(2026, time.June, 10), periods, Defaults{BasePrice: 100})
	assert.Equal(t, "Earlier", rate.PeriodName)
	assert.Equal(t, 130.0, rate.BasePrice)
}

func TestResolveDayIgnoresInactiveAndNonCovering(t *testing.T) {
	periods := []RatePeriod{
		{ID: "inactive", Priority: 10, BasePrice: 150, StartDate: date(2026, time.June, 1), EndDate: date(2026, time.June, 30), IsActive: false},
		{ID: "elsewhere", Priority: 10, BasePrice: 180, StartDate: date(2026, time.July, 1), EndDate: date(2026, time.July, 31), IsActive: true},
	}

	rate := ResolveDay(date(2026, time.June, 10), periods, Defaults{BasePrice: 100})
	assert.False(t, rate.FromPeriod)
	assert.Equal(t, 100.0, rate.BasePrice)
}

func TestResolveDayPeriodPremiumReplacesPropertyPremium(t *testing.T) {
	// A winning period carries its own weekend premium; the property premium
	// never stacks on top of it.
	periods := []RatePeriod{
		{ID: "p", Name: "Summer", Priority: 1, BasePrice: 150, WeekendPremium: 30, StartDate: date(2026, time.June, 1), EndDate: date(2026, time.June, 30), IsActive: true},
	}
	def := Defaults{BasePrice: 100, WeekendPremium: 20}

	friday := date(2026, time.June, 12)
	rate := ResolveDay(friday, periods, def)
	assert.Equal(t, 180.0, rate.NightPrice(friday))
}

func TestResolveDayPeriodMinNights(t *testing.T) {
	periods := []RatePeriod{
		{ID: "with", Priority: 10, BasePrice: 150, MinNights: intPtr(7), StartDate: date(2026, time.June, 1), EndDate: date(2026, time.June, 30), IsActive: true},
	}
	rate := ResolveDay(date(2026, time.June, 10), periods, Defaults{MinNights: 2})
	assert.Equal(t, 7, rate.MinNights)

	// A period without its own minimum inherits the property default.
	periods[0].MinNights = nil
	rate = ResolveDay(date(2026, time.June, 10), periods, Defaults{MinNights: 2})
	assert.Equal(t, 2, rate.MinNights)
}

func TestIsWeekendNight(t *testing.T) {
	assert.True(t, IsWeekendNight(date(2026, time.June, 12)))  // Friday
	assert.True(t, IsWeekendNight(date(2026, time.June, 13)))  // Saturday
	assert.False(t, IsWeekendNight(date(2026, time.June, 14))) // Sunday
	assert.False(t, IsWeekendNight(date(2026, time.June, 11))) // Thursday
}

func TestNightPriceAppliesWeekendPremium(t *testing.T) {
	rate := DayRate{BasePrice: 100, WeekendPremium: 20}
	assert.Equal(t, 120.0, rate.NightPrice(date(2026, time.June, 12)))
	assert.Equal(t, 100.0, rate.NightPrice(date(2026, time.June, 10)))
}
