package booking

import (
	"context"
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type Repository interface {
	// -------- Availability reads --------
	ScheduleSlotsFor(
		ctx context.Context,
		doctorID uint,
		weekday time.Weekday,
	) ([]models.ScheduleSlot, error)

	// AppointmentsFor returns the doctor's appointments on a calendar
	// date, ordered ascending by start time.
	AppointmentsFor(
		ctx context.Context,
		doctorID uint,
		date time.Time,
	) ([]models.Appointment, error)

	// DoctorsBySpecialtyAndDay joins doctors of a specialty with their
	// working windows on a weekday, ordered by window start then doctor id.
	DoctorsBySpecialtyAndDay(
		ctx context.Context,
		specialty string,
		weekday time.Weekday,
	) ([]DoctorDay, error)

	// -------- Appointment writes --------

	// InsertAppointment persists the appointment only if the slot is
	// still free, re-checking the overlap under a lock so that two
	// concurrent bookings cannot both succeed. Returns the time_conflict
	// business error when the slot was taken.
	InsertAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// GetAppointmentForPatient returns the appointment_not_found
	// business error when no row matches; other failures propagate
	// unchanged.
	GetAppointmentForPatient(
		ctx context.Context,
		appointmentID uint,
		patientID uint,
	) (*models.Appointment, error)

	// DeleteAppointment removes the appointment if it belongs to the
	// patient; reports whether a row was deleted.
	DeleteAppointment(
		ctx context.Context,
		appointmentID uint,
		patientID uint,
	) (bool, error)

	ListAppointmentsForPatient(
		ctx context.Context,
		patientID uint,
	) ([]models.Appointment, error)
}
