package booking

import (
	"context"
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
)

// ComputeFreeSlots returns the ordered open sub-intervals of the doctor's
// working windows on a date, given the day's booked appointments. Windows
// are processed in their fetched order; within a window the result is
// ascending by start time. No windows yields an empty (non-nil) list.
func (e *Engine) ComputeFreeSlots(
	ctx context.Context,
	doctorID uint,
	date time.Time,
) ([]OpenInterval, error) {

	day := DateOnly(date)

	slots, err := e.repo.ScheduleSlotsFor(ctx, doctorID, day.Weekday())
	if err != nil {
		return nil, err
	}

	free := []OpenInterval{}
	if len(slots) == 0 {
		return free, nil
	}

	appointments, err := e.repo.AppointmentsFor(ctx, doctorID, day)
	if err != nil {
		return nil, err
	}

	booked := make([]interval, 0, len(appointments))
	for _, ap := range appointments {
		iv, err := parseAppointment(ap)
		if err != nil {
			return nil, err
		}
		booked = append(booked, iv)
	}

	// The sweep below assumes ascending start times; reject unsorted
	// input instead of silently producing wrong intervals.
	for i := 1; i < len(booked); i++ {
		if booked[i].start < booked[i-1].start {
			return nil, httperr.ErrBusiness("unsorted_appointments")
		}
	}

	for _, slot := range slots {
		w, err := parseWindow(slot)
		if err != nil {
			return nil, err
		}

		cursor := w.start
		for _, iv := range booked {
			if cursor >= w.end {
				break
			}
			if !Overlaps(cursor, w.end, iv.start, iv.end) {
				continue
			}
			if iv.start > cursor {
				free = append(free, OpenInterval{Start: cursor, End: iv.start})
			}
			if iv.end > cursor {
				cursor = iv.end
			}
		}

		if cursor < w.end {
			free = append(free, OpenInterval{Start: cursor, End: w.end})
		}
	}

	return free, nil
}
