package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Availability reads
// --------------------------------------------------

func (r *BookingGormRepository) ScheduleSlotsFor(
	ctx context.Context,
	doctorID uint,
	weekday time.Weekday,
) ([]models.ScheduleSlot, error) {

	var slots []models.ScheduleSlot
	if err := r.db.WithContext(ctx).
		Where("doctor_id = ? AND weekday = ?", doctorID, int(weekday)).
		Order("start_time ASC").
		Find(&slots).Error; err != nil {
		return nil, err
	}

	return slots, nil
}

func (r *BookingGormRepository) AppointmentsFor(
	ctx context.Context,
	doctorID uint,
	date time.Time,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Select("id", "doctor_id", "patient_id", "date", "start_time", "duration_min").
		Where("doctor_id = ? AND date = ?", doctorID, domain.DateOnly(date)).
		Order("start_time ASC").
		Find(&aps).Error; err != nil {
		return nil, err
	}

	return aps, nil
}

func (r *BookingGormRepository) DoctorsBySpecialtyAndDay(
	ctx context.Context,
	specialty string,
	weekday time.Weekday,
) ([]domain.DoctorDay, error) {

	var rows []domain.DoctorDay
	if err := r.db.WithContext(ctx).
		Table("schedule_slots").
		Select(
			"schedule_slots.doctor_id AS doctor_id",
			"doctors.name AS doctor_name",
			"schedule_slots.start_time AS start_time",
			"schedule_slots.end_time AS end_time",
		).
		Joins("JOIN doctors ON doctors.id = schedule_slots.doctor_id").
		Where("doctors.specialty = ? AND schedule_slots.weekday = ?", specialty, int(weekday)).
		Order("schedule_slots.start_time ASC, schedule_slots.doctor_id ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	return rows, nil
}

// --------------------------------------------------
// Appointment writes
// --------------------------------------------------

// InsertAppointment re-checks the overlap inside a transaction while
// holding a lock on the doctor row, so a concurrent booking that passed
// its availability check cannot slip in between check and insert. The
// exclusion constraint on appointments backs the re-check at commit time.
func (r *BookingGormRepository) InsertAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {

	start, err := domain.ParseTimeOfDay(ap.StartTime)
	if err != nil {
		return err
	}
	end := start.Add(ap.DurationMin)

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		// Row locks on existing appointments cannot cover an empty day;
		// locking the doctor row serializes concurrent bookings for the
		// same doctor, so the re-check below always sees a committed set.
		var doctor models.Doctor
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&doctor, ap.DoctorID).Error; err != nil {
			return err
		}

		var sameDay []models.Appointment
		if err := tx.
			Where("doctor_id = ? AND date = ?", ap.DoctorID, domain.DateOnly(ap.Date)).
			Find(&sameDay).Error; err != nil {
			return err
		}

		for _, existing := range sameDay {
			bookedStart, err := domain.ParseTimeOfDay(existing.StartTime)
			if err != nil {
				return err
			}
			bookedEnd := bookedStart.Add(existing.DurationMin)

			if domain.Overlaps(start, end, bookedStart, bookedEnd) {
				return httperr.ErrBusiness("time_conflict")
			}
		}

		return tx.Create(ap).Error
	})

	if err != nil && httperr.IsExclusionConflict(err) {
		return httperr.ErrBusiness("time_conflict")
	}
	return err
}

func (r *BookingGormRepository) GetAppointmentForPatient(
	ctx context.Context,
	appointmentID uint,
	patientID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Where("id = ? AND patient_id = ?", appointmentID, patientID).
		First(&ap).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("appointment_not_found")
		}
		return nil, err
	}

	return &ap, nil
}

func (r *BookingGormRepository) DeleteAppointment(
	ctx context.Context,
	appointmentID uint,
	patientID uint,
) (bool, error) {

	res := r.db.WithContext(ctx).
		Where("id = ? AND patient_id = ?", appointmentID, patientID).
		Delete(&models.Appointment{})

	if res.Error != nil {
		return false, res.Error
	}

	return res.RowsAffected > 0, nil
}

func (r *BookingGormRepository) ListAppointmentsForPatient(
	ctx context.Context,
	patientID uint,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Doctor").
		Where("patient_id = ?", patientID).
		Order("date ASC, start_time ASC").
		Find(&aps).Error; err != nil {
		return nil, err
	}

	return aps, nil
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
