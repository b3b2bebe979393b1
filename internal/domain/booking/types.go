package booking

import (
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// BookingRequest is the transient candidate consumed by IsBookable.
type BookingRequest struct {
	PatientID   uint
	DoctorID    uint
	Date        time.Time
	Start       TimeOfDay
	DurationMin int
}

func (r BookingRequest) End() TimeOfDay {
	return r.Start.Add(r.DurationMin)
}

// Validate fails fast on contract violations instead of letting them
// produce wrong availability answers downstream.
func (r BookingRequest) Validate() error {
	if r.PatientID == 0 || r.DoctorID == 0 {
		return httperr.ErrBusiness("invalid_booking_request")
	}
	if r.Date.IsZero() {
		return httperr.ErrBusiness("invalid_booking_request")
	}
	if r.DurationMin <= 0 {
		return httperr.ErrBusiness("invalid_duration")
	}
	if r.Start < 0 || r.End() > MinutesPerDay {
		// Appointments may not cross midnight.
		return httperr.ErrBusiness("invalid_booking_request")
	}
	return nil
}

// OpenInterval is a maximal free sub-range of one working window on one
// date. Start < End always holds for emitted intervals.
type OpenInterval struct {
	Start TimeOfDay `json:"start_time"`
	End   TimeOfDay `json:"end_time"`
}

// NearestSlotResult is the outcome of the forward search for a specialty.
type NearestSlotResult struct {
	DoctorID   uint           `json:"doctor_id"`
	DoctorName string         `json:"doctor_name"`
	Date       time.Time      `json:"date"`
	TimeSlots  []OpenInterval `json:"time_slots"`
}

// DoctorDay is one (doctor, working window) candidate row for a weekday,
// as returned by the store's specialty join.
type DoctorDay struct {
	DoctorID   uint
	DoctorName string
	StartTime  string
	EndTime    string
}

// window is a parsed working-hours interval.
type window struct {
	start TimeOfDay
	end   TimeOfDay
}

func parseWindow(slot models.ScheduleSlot) (window, error) {
	start, err := ParseTimeOfDay(slot.StartTime)
	if err != nil {
		return window{}, err
	}
	end, err := ParseTimeOfDay(slot.EndTime)
	if err != nil {
		return window{}, err
	}
	return window{start: start, end: end}, nil
}

// interval is a parsed booked range.
type interval struct {
	start TimeOfDay
	end   TimeOfDay
}

func parseAppointment(ap models.Appointment) (interval, error) {
	start, err := ParseTimeOfDay(ap.StartTime)
	if err != nil {
		return interval{}, err
	}
	return interval{start: start, end: start.Add(ap.DurationMin)}, nil
}
