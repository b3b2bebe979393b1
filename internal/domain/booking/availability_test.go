package booking_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
)

// 2024-08-26 is a Monday.
const monday = "2024-08-26"

func mondayRequest(start string, durationMin int) booking.BookingRequest {
	s, err := booking.ParseTimeOfDay(start)
	if err != nil {
		panic(err)
	}
	return booking.BookingRequest{
		PatientID:   7,
		DoctorID:    1,
		Date:        mustDate(monday),
		Start:       s,
		DurationMin: durationMin,
	}
}

func TestIsBookable(t *testing.T) {
	ctx := context.Background()

	t.Run("free interval inside working hours is bookable", func(t *testing.T) {
		repo := newStubRepo()
		repo.addSlot(1, time.Monday, "09:00", "17:00")

		engine := booking.NewEngine(repo, nil, 0)

		ok, err := engine.IsBookable(ctx, mondayRequest("10:00", 60))
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("doctor does not work that day", func(t *testing.T) {
		repo := newStubRepo()
		repo.addSlot(1, time.Tuesday, "09:00", "17:00")

		engine := booking.NewEngine(repo, nil, 0)

		ok, err := engine.IsBookable(ctx, mondayRequest("10:00", 60))
		require.NoError(t, err)
		assert.False(t, ok)
		// Short-circuits before looking at appointments.
		assert.Empty(t, repo.appointmentsQueried)
	})

	t.Run("outside working hours", func(t *testing.T) {
		repo := newStubRepo()
		repo.addSlot(1, time.Monday, "09:00", "17:00")

		engine := booking.NewEngine(repo, nil, 0)

		ok, err := engine.IsBookable(ctx, mondayRequest("08:00", 30))
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("request may not span two adjacent windows", func(t *testing.T) {
		repo := newStubRepo()
		repo.addSlot(1, time.Monday, "09:00", "12:00")
		repo.addSlot(1, time.Monday, "12:00", "17:00")

		engine := booking.NewEngine(repo, nil, 0)

		ok, err := engine.IsBookable(ctx, mondayRequest("11:30", 60))
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("overlap with existing appointment", func(t *testing.T) {
		repo := newStubRepo()
		repo.addSlot(1, time.Monday, "09:00", "17:00")
		repo.addAppointment(1, monday, "10:00", 60)

		engine := booking.NewEngine(repo, nil, 0)

		// 09:30-10:30 overlaps the 10:00-11:00 booking.
		ok, err := engine.IsBookable(ctx, mondayRequest("09:30", 60))
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("touching endpoints do not conflict", func(t *testing.T) {
		repo := newStubRepo()
		repo.addSlot(1, time.Monday, "09:00", "17:00")
		repo.addAppointment(1, monday, "10:00", 60)

		engine := booking.NewEngine(repo, nil, 0)

		before, err := engine.IsBookable(ctx, mondayRequest("09:00", 60))
		require.NoError(t, err)
		assert.True(t, before)

		after, err := engine.IsBookable(ctx, mondayRequest("11:00", 60))
		require.NoError(t, err)
		assert.True(t, after)
	})

	t.Run("non-positive duration fails fast", func(t *testing.T) {
		repo := newStubRepo()
		engine := booking.NewEngine(repo, nil, 0)

		_, err := engine.IsBookable(ctx, mondayRequest("10:00", 0))
		assert.True(t, httperr.IsBusiness(err, "invalid_duration"))
	})

	t.Run("cross-midnight request is rejected", func(t *testing.T) {
		repo := newStubRepo()
		engine := booking.NewEngine(repo, nil, 0)

		_, err := engine.IsBookable(ctx, mondayRequest("23:30", 60))
		assert.True(t, httperr.IsBusiness(err, "invalid_booking_request"))
	})

	t.Run("store failure propagates unchanged", func(t *testing.T) {
		repo := newStubRepo()
		storeErr := errors.New("connection reset")
		repo.slotsErr = storeErr

		engine := booking.NewEngine(repo, nil, 0)

		_, err := engine.IsBookable(ctx, mondayRequest("10:00", 60))
		assert.ErrorIs(t, err, storeErr)
	})

	t.Run("malformed stored time surfaces as error", func(t *testing.T) {
		repo := newStubRepo()
		repo.addSlot(1, time.Monday, "nine", "17:00")

		engine := booking.NewEngine(repo, nil, 0)

		_, err := engine.IsBookable(ctx, mondayRequest("10:00", 60))
		assert.Error(t, err)
	})
}
