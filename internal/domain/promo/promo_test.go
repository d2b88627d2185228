package promo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiscountForPercentageRoundsToWholeUnits(t *testing.T) {
	pc := &PromoCode{DiscountType: DiscountPercentage, DiscountValue: 10}
	assert.Equal(t, 75.0, pc.DiscountFor(754))
	assert.Equal(t, 75.0, pc.DiscountFor(746))
}

func TestDiscountForFixedCapsAtTotal(t *testing.T) {
	pc := &PromoCode{DiscountType: DiscountFixed, DiscountValue: 500}
	assert.Equal(t, 300.0, pc.DiscountFor(300))
	assert.Equal(t, 500.0, pc.DiscountFor(800))
}

func TestAppliesToProperty(t *testing.T) {
	open := &PromoCode{}
	assert.True(t, open.AppliesToProperty("prop-1"))

	scoped := &PromoCode{PropertyIDs: []string{"prop-1", "prop-2"}}
	assert.True(t, scoped.AppliesToProperty("prop-2"))
	assert.False(t, scoped.AppliesToProperty("prop-3"))
}

func TestExhausted(t *testing.T) {
	unlimited := &PromoCode{MaxUses: 0, CurrentUses: 9999}
	assert.False(t, unlimited.Exhausted())

	capped := &PromoCode{MaxUses: 10, CurrentUses: 10}
	assert.True(t, capped.Exhausted())

	remaining := &PromoCode{MaxUses: 10, CurrentUses: 9}
	assert.False(t, remaining.Exhausted())
}
