package appointment

import (
	"context"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
)

type CancelAppointment struct {
	repo  domain.Repository
	cache SlotCache
	audit *audit.Dispatcher
}

func NewCancelAppointment(
	repo domain.Repository,
	cache SlotCache,
	auditd *audit.Dispatcher,
) *CancelAppointment {
	return &CancelAppointment{
		repo:  repo,
		cache: cache,
		audit: auditd,
	}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	patientID uint,
	appointmentID uint,
) error {

	// Fetch first: invalidation needs the doctor and date of the row
	// being removed. The store reports a missing row as the not-found
	// business error; any other failure propagates unchanged.
	ap, err := uc.repo.GetAppointmentForPatient(ctx, appointmentID, patientID)
	if err != nil {
		return err
	}

	deleted, err := uc.repo.DeleteAppointment(ctx, appointmentID, patientID)
	if err != nil {
		return err
	}
	if !deleted {
		return httperr.ErrBusiness("appointment_not_found")
	}

	if uc.cache != nil {
		uc.cache.Invalidate(ctx, ap.DoctorID, ap.Date)
	}

	if uc.audit != nil {
		uc.audit.Dispatch(audit.Event{
			ActorID:  &patientID,
			Action:   "appointment_cancelled",
			Entity:   "appointment",
			EntityID: &appointmentID,
		})
	}

	return nil
}
