package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition_LegalEdges(t *testing.T) {
	t.Parallel()

	legal := [][2]BookingStatus{
		{BookingStatusPending, BookingStatusConfirmed},
		{BookingStatusPending, BookingStatusCancelled},
		{BookingStatusConfirmed, BookingStatusInProgress},
		{BookingStatusConfirmed, BookingStatusCancelled},
		{BookingStatusInProgress, BookingStatusCompleted},
	}
	for _, edge := range legal {
		assert.True(t, CanTransition(edge[0], edge[1]), "%s -> %s", edge[0], edge[1])
	}
}

func TestCanTransition_IllegalEdges(t *testing.T) {
	t.Parallel()

	illegal := [][2]BookingStatus{
		{BookingStatusPending, BookingStatusInProgress},
		{BookingStatusPending, BookingStatusCompleted},
		{BookingStatusConfirmed, BookingStatusCompleted},
		{BookingStatusInProgress, BookingStatusCancelled},
		{BookingStatusInProgress, BookingStatusPending},
		{BookingStatusCompleted, BookingStatusCancelled},
		{BookingStatusCancelled, BookingStatusPending},
	}
	for _, edge := range illegal {
		assert.False(t, CanTransition(edge[0], edge[1]), "%s -> %s", edge[0], edge[1])
	}
}

func TestTerminalStatuses_AreFixedPoints(t *testing.T) {
	t.Parallel()

	all := []BookingStatus{
		BookingStatusPending, BookingStatusConfirmed, BookingStatusInProgress,
		BookingStatusCompleted, BookingStatusCancelled,
	}
	for _, terminal := range []BookingStatus{BookingStatusCompleted, BookingStatusCancelled} {
		assert.True(t, terminal.IsTerminal())
		for _, to := range all {
			assert.False(t, CanTransition(terminal, to), "%s -> %s", terminal, to)
		}
	}
}

func TestBookingStatus_Valid(t *testing.T) {
	t.Parallel()

	assert.True(t, BookingStatusPending.Valid())
	assert.True(t, BookingStatusCancelled.Valid())
	assert.False(t, BookingStatus("DONE").Valid())
	assert.False(t, BookingStatus("").Valid())
}

func TestPayoutMethod_Valid(t *testing.T) {
	t.Parallel()

	assert.True(t, PayoutMethodMomo.Valid())
	assert.True(t, PayoutMethodBank.Valid())
	assert.False(t, PayoutMethod("cash").Valid())
}
