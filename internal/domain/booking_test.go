package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransition(t *testing.T) {
	allowed := [][2]BookingStatus{
		{StatusPending, StatusUpcoming},
		{StatusPending, StatusCancelled},
		{StatusUpcoming, StatusCheckedIn},
		{StatusUpcoming, StatusCancelled},
		{StatusUpcoming, StatusNoShow},
		{StatusCheckedIn, StatusCompleted},
		{StatusBlocked, StatusCancelled},
	}
	for _, tr := range allowed {
		assert.True(t, CanTransition(tr[0], tr[1]), "%s -> %s", tr[0], tr[1])
	}

	denied := [][2]BookingStatus{
		{StatusPending, StatusCheckedIn},
		{StatusUpcoming, StatusCompleted},
		{StatusCheckedIn, StatusCancelled},
		{StatusCompleted, StatusCancelled},
		{StatusCancelled, StatusUpcoming},
		{StatusNoShow, StatusUpcoming},
		{StatusBlocked, StatusUpcoming},
	}
	for _, tr := range denied {
		assert.False(t, CanTransition(tr[0], tr[1]), "%s -> %s", tr[0], tr[1])
	}
}

func TestInitialStatus(t *testing.T) {
	assert.Equal(t, StatusBlocked, InitialStatus(TypeBlocked, false))
	assert.Equal(t, StatusPending, InitialStatus(TypeOnline, false))
	assert.Equal(t, StatusUpcoming, InitialStatus(TypeOnline, true))
	assert.Equal(t, StatusUpcoming, InitialStatus(TypeWalkIn, false))
}

func TestParseEnums(t *testing.T) {
	st, err := ParseBookingStatus("checked-in")
	require.NoError(t, err)
	assert.Equal(t, StatusCheckedIn, st)

	_, err = ParseBookingStatus("confirmed")
	assert.ErrorIs(t, err, ErrUnknownBookingStatus)

	_, err = ParseBookingType("phone")
	assert.ErrorIs(t, err, ErrUnknownBookingType)

	pm, err := ParsePaymentMethod("upi")
	require.NoError(t, err)
	assert.Equal(t, PaymentUPI, pm)
}

func TestReasonError(t *testing.T) {
	errTooLate := fmt.Errorf("%w: create_booking: too late to book", ErrValidation)
	err := WithReason(errTooLate, "Must book at least 60 minutes in advance")

	assert.True(t, errors.Is(err, errTooLate))
	assert.True(t, errors.Is(err, ErrValidation))
	assert.False(t, errors.Is(err, ErrConflict))

	reason, ok := ReasonOf(fmt.Errorf("wrapped: %w", err))
	assert.True(t, ok)
	assert.Equal(t, "Must book at least 60 minutes in advance", reason)

	_, ok = ReasonOf(errTooLate)
	assert.False(t, ok)
}

func TestDates(t *testing.T) {
	first, last := MonthRange(date("2026-02-14"))
	assert.Equal(t, date("2026-02-01"), first)
	assert.Equal(t, date("2026-02-28"), last)

	assert.Equal(t, 1, DaysBetween(date("2026-02-28"), date("2026-03-01")))
	assert.Equal(t, -1, DaysBetween(date("2026-03-01"), date("2026-02-28")))
}
