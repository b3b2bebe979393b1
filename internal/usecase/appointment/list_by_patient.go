package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/booking"
)

type AppointmentListItem struct {
	ID          uint      `json:"id"`
	DoctorID    uint      `json:"doctor_id"`
	DoctorName  string    `json:"doctor_name"`
	Specialty   string    `json:"specialty"`
	Date        time.Time `json:"date"`
	StartTime   string    `json:"start_time"`
	DurationMin int       `json:"duration_min"`
}

type ListAppointmentsByPatient struct {
	repo domain.Repository
}

func NewListAppointmentsByPatient(repo domain.Repository) *ListAppointmentsByPatient {
	return &ListAppointmentsByPatient{repo: repo}
}

func (uc *ListAppointmentsByPatient) Execute(
	ctx context.Context,
	patientID uint,
) ([]AppointmentListItem, error) {

	appointments, err := uc.repo.ListAppointmentsForPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}

	out := make([]AppointmentListItem, 0, len(appointments))
	for _, ap := range appointments {
		out = append(out, AppointmentListItem{
			ID:          ap.ID,
			DoctorID:    ap.DoctorID,
			DoctorName:  ap.Doctor.Name,
			Specialty:   ap.Doctor.Specialty,
			Date:        ap.Date,
			StartTime:   ap.StartTime,
			DurationMin: ap.DurationMin,
		})
	}

	return out, nil
}
