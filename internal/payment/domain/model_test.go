package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaymentTransitions(t *testing.T) {
	assert.True(t, StatusPending.CanTransition(StatusSucceeded))
	assert.True(t, StatusPending.CanTransition(StatusFailed))
	assert.True(t, StatusSucceeded.CanTransition(StatusRefunded))

	assert.False(t, StatusSucceeded.CanTransition(StatusPending))
	assert.False(t, StatusFailed.CanTransition(StatusSucceeded))
	assert.False(t, StatusRefunded.CanTransition(StatusSucceeded))
	assert.False(t, StatusPending.CanTransition(StatusRefunded))
}

func TestNormalizeCurrency(t *testing.T) {
	for _, code := range []string{"usd", "USD", " Usd "} {
		normalized, ok := NormalizeCurrency(code)
		assert.True(t, ok, code)
		assert.Equal(t, "usd", normalized)
	}

	for _, code := range []string{"", "us", "usdd", "zzz", "dollars"} {
		_, ok := NormalizeCurrency(code)
		assert.False(t, ok, code)
	}
}
