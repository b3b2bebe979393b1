package booking

import "context"

// IsBookable decides whether the requested time can be booked: the doctor
// must work that weekday, the request must fit inside a single working
// window, and it must not overlap an existing appointment. A negative
// answer is a normal result, not an error; store failures propagate.
func (e *Engine) IsBookable(ctx context.Context, req BookingRequest) (bool, error) {
	if err := req.Validate(); err != nil {
		return false, err
	}

	weekday := DateOnly(req.Date).Weekday()

	slots, err := e.repo.ScheduleSlotsFor(ctx, req.DoctorID, weekday)
	if err != nil {
		return false, err
	}
	if len(slots) == 0 {
		// Doctor does not work that day; no further queries needed.
		return false, nil
	}

	start := req.Start
	end := req.End()

	// The request must fit one contiguous window; spanning two adjacent
	// windows is not bookable.
	fits := false
	for _, slot := range slots {
		w, err := parseWindow(slot)
		if err != nil {
			return false, err
		}
		if w.start <= start && end <= w.end {
			fits = true
			break
		}
	}
	if !fits {
		return false, nil
	}

	appointments, err := e.repo.AppointmentsFor(ctx, req.DoctorID, DateOnly(req.Date))
	if err != nil {
		return false, err
	}

	for _, ap := range appointments {
		booked, err := parseAppointment(ap)
		if err != nil {
			return false, err
		}
		if Overlaps(start, end, booked.start, booked.end) {
			return false, nil
		}
	}

	return true, nil
}
