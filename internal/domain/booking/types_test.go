//go:build unit

package booking_test

import (
	"testing"

	"stayflow/internal/domain/booking"

	"github.com/stretchr/testify/assert"
)

func TestStatusTransitions(t *testing.T) {
	allowed := map[booking.Status][]booking.Status{
		booking.StatusPending:   {booking.StatusConfirmed, booking.StatusPaid, booking.StatusCanceled},
		booking.StatusConfirmed: {booking.StatusPaid, booking.StatusCanceled},
		booking.StatusPaid:      {},
		booking.StatusCanceled:  {},
	}

	all := []booking.Status{
		booking.StatusPending, booking.StatusConfirmed,
		booking.StatusPaid, booking.StatusCanceled,
	}

	for from, targets := range allowed {
		allowedSet := make(map[booking.Status]bool, len(targets))
		for _, s := range targets {
			allowedSet[s] = true
		}
		for _, to := range all {
			got := from.CanTransitionTo(to)
			assert.Equal(t, allowedSet[to], got, "%s -> %s", from, to)
		}
	}
}

func TestStatusSelfTransitionRejected(t *testing.T) {
	for _, s := range []booking.Status{
		booking.StatusPending, booking.StatusConfirmed,
		booking.StatusPaid, booking.StatusCanceled,
	} {
		assert.False(t, s.CanTransitionTo(s), "%s -> %s must be rejected", s, s)
	}
}

func TestStatusIsTerminal(t *testing.T) {
	assert.False(t, booking.StatusPending.IsTerminal())
	assert.False(t, booking.StatusConfirmed.IsTerminal())
	assert.True(t, booking.StatusPaid.IsTerminal())
	assert.True(t, booking.StatusCanceled.IsTerminal())
}

func TestNewStatus(t *testing.T) {
	s, err := booking.NewStatus("confirmed")
	assert.NoError(t, err)
	assert.Equal(t, booking.StatusConfirmed, s)

	_, err = booking.NewStatus("shipped")
	assert.ErrorIs(t, err, booking.ErrInvalidStatus)

	_, err = booking.NewStatus("")
	assert.ErrorIs(t, err, booking.ErrInvalidStatus)
}
