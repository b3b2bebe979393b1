package booking_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/booking"
)

func TestParseTimeOfDay(t *testing.T) {
	cases := []struct {
		in      string
		want    booking.TimeOfDay
		wantErr bool
	}{
		{in: "00:00", want: 0},
		{in: "09:00", want: 9 * 60},
		{in: "15:04", want: 15*60 + 4},
		{in: "23:59", want: 23*60 + 59},
		{in: "09:00:00", want: 9 * 60},
		{in: "14:30:59", want: 14*60 + 30},
		{in: "24:00", wantErr: true},
		{in: "9am", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := booking.ParseTimeOfDay(tc.in)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestTimeOfDayString(t *testing.T) {
	assert.Equal(t, "09:00", booking.TimeOfDay(9*60).String())
	assert.Equal(t, "00:05", booking.TimeOfDay(5).String())
	assert.Equal(t, "23:59", booking.TimeOfDay(23*60+59).String())
}

func TestTimeOfDayJSONRoundTrip(t *testing.T) {
	iv := booking.OpenInterval{Start: 9 * 60, End: 10 * 60}

	raw, err := json.Marshal(iv)
	require.NoError(t, err)
	assert.JSONEq(t, `{"start_time":"09:00","end_time":"10:00"}`, string(raw))

	var back booking.OpenInterval
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, iv, back)
}

func TestOverlapsHalfOpen(t *testing.T) {
	nine, ten, eleven := booking.TimeOfDay(9*60), booking.TimeOfDay(10*60), booking.TimeOfDay(11*60)

	t.Run("partial overlap", func(t *testing.T) {
		assert.True(t, booking.Overlaps(nine, ten+30, ten, eleven))
	})
	t.Run("containment", func(t *testing.T) {
		assert.True(t, booking.Overlaps(nine, eleven, ten, ten+30))
	})
	t.Run("touching endpoints do not overlap", func(t *testing.T) {
		assert.False(t, booking.Overlaps(nine, ten, ten, eleven))
		assert.False(t, booking.Overlaps(ten, eleven, nine, ten))
	})
	t.Run("disjoint", func(t *testing.T) {
		assert.False(t, booking.Overlaps(nine, ten, eleven, eleven+60))
	})
}

func TestWeekdayNamesTable(t *testing.T) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		assert.NotEmpty(t, booking.WeekdayNames[d])
	}
	assert.Equal(t, "Monday", booking.WeekdayNames[time.Monday])
}

func TestDateOnly(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	// 2024-08-26 was a Monday regardless of where the clock lives.
	local := time.Date(2024, 8, 26, 23, 45, 0, 0, loc)
	day := booking.DateOnly(local)

	assert.Equal(t, time.Monday, day.Weekday())
	assert.Equal(t, "2024-08-26", day.Format("2006-01-02"))
}
