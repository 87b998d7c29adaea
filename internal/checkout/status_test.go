package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionTo(t *testing.T) {
	tests := []struct {
		from    Status
		to      Status
		allowed bool
	}{
		{StatusIdle, StatusSubmitting, true},
		{StatusSubmitting, StatusSuccess, true},
		{StatusSubmitting, StatusFailed, true},
		{StatusFailed, StatusIdle, true},

		{StatusIdle, StatusSuccess, false},
		{StatusIdle, StatusFailed, false},
		{StatusSubmitting, StatusIdle, false},
		{StatusSubmitting, StatusSubmitting, false},
		{StatusSuccess, StatusIdle, false},
		{StatusSuccess, StatusSubmitting, false},
		{StatusSuccess, StatusFailed, false},
		{StatusFailed, StatusSubmitting, false},
		{StatusFailed, StatusSuccess, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.allowed, CanTransitionTo(tt.from, tt.to),
			"transition %s -> %s", tt.from, tt.to)
	}
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, StatusSuccess.IsTerminal())
	assert.False(t, StatusIdle.IsTerminal())
	assert.False(t, StatusSubmitting.IsTerminal())
	// Failed returns to Idle for a retry, so it is not terminal.
	assert.False(t, StatusFailed.IsTerminal())
}
