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

// fixedNow pins the clock: 2024-08-18 is a Sunday.
func fixedNow() time.Time {
	return time.Date(2024, 8, 18, 15, 30, 0, 0, time.UTC)
}

func TestFindNearestAvailable(t *testing.T) {
	ctx := context.Background()

	t.Run("skips fully booked days and never considers today", func(t *testing.T) {
		repo := newStubRepo()
		// The only cardiologist works Mondays. Day 1 of the scan
		// (2024-08-19) is fully booked; day 8 (2024-08-26) is free.
		repo.addCandidate(time.Monday, 1, "Dr. Smith", "09:00", "17:00")
		repo.addSlot(1, time.Monday, "09:00", "17:00")
		repo.addAppointment(1, "2024-08-19", "09:00", 8*60)

		engine := booking.NewEngine(repo, fixedNow, 30)

		res, err := engine.FindNearestAvailable(ctx, "Cardiology")
		require.NoError(t, err)

		assert.Equal(t, uint(1), res.DoctorID)
		assert.Equal(t, "Dr. Smith", res.DoctorName)
		assert.Equal(t, "2024-08-26", res.Date.Format("2006-01-02"))
		assert.Equal(t, intervals("09:00", "17:00"), res.TimeSlots)

		assert.NotContains(t, repo.appointmentsQueried, "2024-08-18")
	})

	t.Run("earliest window start wins the day", func(t *testing.T) {
		repo := newStubRepo()
		repo.addCandidate(time.Monday, 1, "Dr. Late", "10:00", "18:00")
		repo.addCandidate(time.Monday, 2, "Dr. Early", "08:00", "16:00")
		repo.addSlot(1, time.Monday, "10:00", "18:00")
		repo.addSlot(2, time.Monday, "08:00", "16:00")

		engine := booking.NewEngine(repo, fixedNow, 30)

		res, err := engine.FindNearestAvailable(ctx, "Cardiology")
		require.NoError(t, err)
		assert.Equal(t, uint(2), res.DoctorID)
	})

	t.Run("equal starts break the tie on lowest doctor id", func(t *testing.T) {
		repo := newStubRepo()
		repo.addCandidate(time.Monday, 4, "Dr. Higher", "09:00", "17:00")
		repo.addCandidate(time.Monday, 2, "Dr. Lower", "09:00", "17:00")
		repo.addSlot(4, time.Monday, "09:00", "17:00")
		repo.addSlot(2, time.Monday, "09:00", "17:00")

		engine := booking.NewEngine(repo, fixedNow, 30)

		res, err := engine.FindNearestAvailable(ctx, "Cardiology")
		require.NoError(t, err)
		assert.Equal(t, uint(2), res.DoctorID)
	})

	t.Run("falls through to the next doctor when the first is booked solid", func(t *testing.T) {
		repo := newStubRepo()
		repo.addCandidate(time.Monday, 1, "Dr. Busy", "08:00", "12:00")
		repo.addCandidate(time.Monday, 2, "Dr. Free", "09:00", "17:00")
		repo.addSlot(1, time.Monday, "08:00", "12:00")
		repo.addSlot(2, time.Monday, "09:00", "17:00")
		repo.addAppointment(1, "2024-08-19", "08:00", 4*60)

		engine := booking.NewEngine(repo, fixedNow, 30)

		res, err := engine.FindNearestAvailable(ctx, "Cardiology")
		require.NoError(t, err)
		assert.Equal(t, uint(2), res.DoctorID)
		assert.Equal(t, "2024-08-19", res.Date.Format("2006-01-02"))
	})

	t.Run("exhausted horizon reports no doctor available", func(t *testing.T) {
		repo := newStubRepo()

		engine := booking.NewEngine(repo, fixedNow, 14)

		_, err := engine.FindNearestAvailable(ctx, "Dermatology")
		assert.True(t, httperr.IsBusiness(err, "no_doctor_available"))
	})

	t.Run("cancelled context aborts the scan", func(t *testing.T) {
		repo := newStubRepo()
		cancelled, cancel := context.WithCancel(context.Background())
		cancel()

		engine := booking.NewEngine(repo, fixedNow, 365)

		_, err := engine.FindNearestAvailable(cancelled, "Cardiology")
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("store failure aborts the scan", func(t *testing.T) {
		repo := newStubRepo()
		storeErr := errors.New("connection reset")
		repo.candsErr = storeErr

		engine := booking.NewEngine(repo, fixedNow, 30)

		_, err := engine.FindNearestAvailable(ctx, "Cardiology")
		assert.ErrorIs(t, err, storeErr)
	})
}
