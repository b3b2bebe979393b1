package booking_test

import (
	"context"
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// stubRepo is an in-memory calendar store for engine tests. Schedule slots
// are keyed by doctor and weekday, appointments by doctor and date.
type stubRepo struct {
	slots map[uint]map[time.Weekday][]models.ScheduleSlot
	apps  map[uint]map[string][]models.Appointment
	cands map[time.Weekday][]booking.DoctorDay

	slotsErr error
	appsErr  error
	candsErr error

	appointmentsQueried []string // dates passed to AppointmentsFor
}

func newStubRepo() *stubRepo {
	return &stubRepo{
		slots: map[uint]map[time.Weekday][]models.ScheduleSlot{},
		apps:  map[uint]map[string][]models.Appointment{},
		cands: map[time.Weekday][]booking.DoctorDay{},
	}
}

func (s *stubRepo) addSlot(doctorID uint, weekday time.Weekday, start, end string) {
	if s.slots[doctorID] == nil {
		s.slots[doctorID] = map[time.Weekday][]models.ScheduleSlot{}
	}
	s.slots[doctorID][weekday] = append(s.slots[doctorID][weekday], models.ScheduleSlot{
		DoctorID:  doctorID,
		Weekday:   int(weekday),
		StartTime: start,
		EndTime:   end,
	})
}

func (s *stubRepo) addAppointment(doctorID uint, date string, start string, durationMin int) {
	if s.apps[doctorID] == nil {
		s.apps[doctorID] = map[string][]models.Appointment{}
	}
	s.apps[doctorID][date] = append(s.apps[doctorID][date], models.Appointment{
		DoctorID:    doctorID,
		StartTime:   start,
		DurationMin: durationMin,
	})
}

func (s *stubRepo) addCandidate(weekday time.Weekday, doctorID uint, name, start, end string) {
	s.cands[weekday] = append(s.cands[weekday], booking.DoctorDay{
		DoctorID:   doctorID,
		DoctorName: name,
		StartTime:  start,
		EndTime:    end,
	})
}

func (s *stubRepo) ScheduleSlotsFor(_ context.Context, doctorID uint, weekday time.Weekday) ([]models.ScheduleSlot, error) {
	if s.slotsErr != nil {
		return nil, s.slotsErr
	}
	return s.slots[doctorID][weekday], nil
}

func (s *stubRepo) AppointmentsFor(_ context.Context, doctorID uint, date time.Time) ([]models.Appointment, error) {
	if s.appsErr != nil {
		return nil, s.appsErr
	}
	key := date.Format("2006-01-02")
	s.appointmentsQueried = append(s.appointmentsQueried, key)
	return s.apps[doctorID][key], nil
}

func (s *stubRepo) DoctorsBySpecialtyAndDay(_ context.Context, _ string, weekday time.Weekday) ([]booking.DoctorDay, error) {
	if s.candsErr != nil {
		return nil, s.candsErr
	}
	return s.cands[weekday], nil
}

func (s *stubRepo) InsertAppointment(_ context.Context, _ *models.Appointment) error {
	panic("not used by engine tests")
}

func (s *stubRepo) GetAppointmentForPatient(_ context.Context, _, _ uint) (*models.Appointment, error) {
	panic("not used by engine tests")
}

func (s *stubRepo) DeleteAppointment(_ context.Context, _, _ uint) (bool, error) {
	panic("not used by engine tests")
}

func (s *stubRepo) ListAppointmentsForPatient(_ context.Context, _ uint) ([]models.Appointment, error) {
	panic("not used by engine tests")
}

var _ booking.Repository = (*stubRepo)(nil)

func mustDate(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}
