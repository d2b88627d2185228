package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRound2(t *testing.T) {
	assert.Equal(t, 109.57, Round2(767.0/7))
	assert.Equal(t, 0.1, Round2(0.1))
	assert.Equal(t, 2.68, Round2(2.675000001))
}

func TestRoundUnit(t *testing.T) {
	assert.Equal(t, 75.0, RoundUnit(74.5))
	assert.Equal(t, 74.0, RoundUnit(74.4))
}

func TestMin(t *testing.T) {
	assert.Equal(t, 300.0, Min(500, 300))
	assert.Equal(t, 300.0, Min(300, 500))
}
