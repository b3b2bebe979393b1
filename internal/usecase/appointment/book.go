package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type BookAppointmentInput struct {
	PatientID uint
	DoctorID  uint

	Date        string // "2006-01-02"
	Time        string // "15:04"
	DurationMin int
}

// SlotCache invalidates cached free-slot lists after a write. A nil cache
// is valid and means no caching.
type SlotCache interface {
	Invalidate(ctx context.Context, doctorID uint, date time.Time)
}

// ======================================================
// USE CASE
// ======================================================

type BookAppointment struct {
	repo   domain.Repository
	engine *domain.Engine
	cache  SlotCache
	audit  *audit.Dispatcher
}

func NewBookAppointment(
	repo domain.Repository,
	engine *domain.Engine,
	cache SlotCache,
	auditd *audit.Dispatcher,
) *BookAppointment {
	return &BookAppointment{
		repo:   repo,
		engine: engine,
		cache:  cache,
		audit:  auditd,
	}
}

func (uc *BookAppointment) Execute(
	ctx context.Context,
	in BookAppointmentInput,
) (*models.Appointment, error) {

	date, err := time.Parse("2006-01-02", in.Date)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	start, err := domain.ParseTimeOfDay(in.Time)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_time")
	}

	req := domain.BookingRequest{
		PatientID:   in.PatientID,
		DoctorID:    in.DoctorID,
		Date:        date,
		Start:       start,
		DurationMin: in.DurationMin,
	}

	ok, err := uc.engine.IsBookable(ctx, req)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, httperr.ErrBusiness("doctor_not_available")
	}

	ap := &models.Appointment{
		PatientID:   in.PatientID,
		DoctorID:    in.DoctorID,
		Date:        domain.DateOnly(date),
		StartTime:   start.String(),
		DurationMin: in.DurationMin,
	}

	// The insert re-checks the overlap under a lock; a concurrent booking
	// that won the race surfaces here as time_conflict.
	if err := uc.repo.InsertAppointment(ctx, ap); err != nil {
		return nil, err
	}

	if uc.cache != nil {
		uc.cache.Invalidate(ctx, ap.DoctorID, ap.Date)
	}

	if uc.audit != nil {
		uc.audit.Dispatch(audit.Event{
			ActorID:  &in.PatientID,
			Action:   "appointment_booked",
			Entity:   "appointment",
			EntityID: &ap.ID,
		})
	}

	return ap, nil
}
