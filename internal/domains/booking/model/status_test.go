package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"serenity/internal/domains/booking/model"
)

func TestStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name    string
		from    model.Status
		to      model.Status
		allowed bool
	}{
		{"pending to confirmed", model.StatusPending, model.StatusConfirmed, true},
		{"pending to cancelled", model.StatusPending, model.StatusCancelled, true},
		{"pending to completed", model.StatusPending, model.StatusCompleted, false},
		{"confirmed to completed", model.StatusConfirmed, model.StatusCompleted, true},
		{"confirmed to cancelled", model.StatusConfirmed, model.StatusCancelled, true},
		{"confirmed to pending", model.StatusConfirmed, model.StatusPending, false},
		{"completed to confirmed", model.StatusCompleted, model.StatusConfirmed, false},
		{"completed to cancelled", model.StatusCompleted, model.StatusCancelled, false},
		{"cancelled to pending", model.StatusCancelled, model.StatusPending, false},
		{"cancelled to confirmed", model.StatusCancelled, model.StatusConfirmed, false},
		{"unknown status", model.Status("unknown"), model.StatusConfirmed, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.False(t, model.StatusPending.IsTerminal())
	assert.False(t, model.StatusConfirmed.IsTerminal())
	assert.True(t, model.StatusCompleted.IsTerminal())
	assert.True(t, model.StatusCancelled.IsTerminal())
}

func TestStatus_IsValid(t *testing.T) {
	assert.True(t, model.StatusPending.IsValid())
	assert.True(t, model.StatusConfirmed.IsValid())
	assert.True(t, model.StatusCompleted.IsValid())
	assert.True(t, model.StatusCancelled.IsValid())
	assert.False(t, model.Status("refunded").IsValid())
}

func TestStatus_CountsTowardCapacity(t *testing.T) {
	assert.True(t, model.StatusPending.CountsTowardCapacity())
	assert.True(t, model.StatusConfirmed.CountsTowardCapacity())
	assert.True(t, model.StatusCompleted.CountsTowardCapacity())
	assert.False(t, model.StatusCancelled.CountsTowardCapacity())
}
