package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/clock"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type ScheduleHandler struct {
	db    *gorm.DB
	clk   *clock.Clock
	audit *audit.Dispatcher
}

func NewScheduleHandler(db *gorm.DB, clk *clock.Clock, auditd *audit.Dispatcher) *ScheduleHandler {
	return &ScheduleHandler{db: db, clk: clk, audit: auditd}
}

// ======================================================
// LIST
// ======================================================

type ScheduleRow struct {
	ID         uint   `json:"id"`
	DoctorID   uint   `json:"doctor_id"`
	DoctorName string `json:"doctor_name"`
	Weekday    int    `json:"weekday"`
	DayName    string `json:"day_name"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
}

func (h *ScheduleHandler) listRows(c *gin.Context, where string, args ...any) ([]ScheduleRow, bool) {
	q := h.db.
		Table("schedule_slots").
		Select(
			"schedule_slots.id AS id",
			"schedule_slots.doctor_id AS doctor_id",
			"doctors.name AS doctor_name",
			"schedule_slots.weekday AS weekday",
			"schedule_slots.start_time AS start_time",
			"schedule_slots.end_time AS end_time",
		).
		Joins("JOIN doctors ON doctors.id = schedule_slots.doctor_id").
		Order("schedule_slots.doctor_id ASC, schedule_slots.weekday ASC, schedule_slots.start_time ASC")

	if where != "" {
		q = q.Where(where, args...)
	}

	var rows []ScheduleRow
	if err := q.Scan(&rows).Error; err != nil {
		httperr.Internal(c, "failed_to_list_schedules", "Could not list schedules.")
		return nil, false
	}

	for i := range rows {
		rows[i].DayName = booking.WeekdayNames[time.Weekday(rows[i].Weekday)]
	}
	return rows, true
}

func (h *ScheduleHandler) List(c *gin.Context) {
	rows, ok := h.listRows(c, "")
	if !ok {
		return
	}
	httpresp.List(c, rows)
}

func (h *ScheduleHandler) ListByDoctor(c *gin.Context) {
	rows, ok := h.listRows(c, "schedule_slots.doctor_id = ?", c.Param("id"))
	if !ok {
		return
	}
	if len(rows) == 0 {
		httperr.NotFound(c, "no_schedules_for_doctor", "No schedules found for this doctor.")
		return
	}
	httpresp.List(c, rows)
}

// ======================================================
// CREATE
// ======================================================

type CreateScheduleRequest struct {
	DoctorID  uint   `json:"doctor_id" binding:"required"`
	Weekday   *int   `json:"weekday" binding:"required,min=0,max=6"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
}

func (h *ScheduleHandler) Create(c *gin.Context) {
	var req CreateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid schedule data.")
		return
	}

	start, err := booking.ParseTimeOfDay(req.StartTime)
	if err != nil {
		httperr.BadRequest(c, "invalid_time", "Invalid start time.")
		return
	}
	end, err := booking.ParseTimeOfDay(req.EndTime)
	if err != nil {
		httperr.BadRequest(c, "invalid_time", "Invalid end time.")
		return
	}
	if start >= end {
		httperr.BadRequest(c, "invalid_window", "Start must be before end.")
		return
	}

	var doctor models.Doctor
	if err := h.db.First(&doctor, req.DoctorID).Error; err != nil {
		httperr.BadRequest(c, "doctor_not_found", "Doctor not found.")
		return
	}

	slot := models.ScheduleSlot{
		DoctorID:  req.DoctorID,
		Weekday:   *req.Weekday,
		StartTime: start.String(),
		EndTime:   end.String(),
	}

	if err := h.db.Create(&slot).Error; err != nil {
		httperr.Internal(c, "failed_to_create_schedule", "Could not create schedule.")
		return
	}

	actorID := c.MustGet(middleware.ContextPatientID).(uint)
	h.audit.Dispatch(audit.Event{
		ActorID:  &actorID,
		Action:   "schedule_created",
		Entity:   "schedule_slot",
		EntityID: &slot.ID,
	})

	httpresp.Created(c, slot)
}

// ======================================================
// DELETE (cascade)
// ======================================================

// Delete removes a working window and, in the same transaction, the
// doctor's future appointments that fall inside it. Rolls back as a unit.
func (h *ScheduleHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	today := booking.DateOnly(h.clk.Now())

	err := h.db.Transaction(func(tx *gorm.DB) error {

		var slot models.ScheduleSlot
		if err := tx.First(&slot, "id = ?", id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return httperr.ErrBusiness("schedule_not_found")
			}
			return err
		}

		wStart, err := booking.ParseTimeOfDay(slot.StartTime)
		if err != nil {
			return err
		}
		wEnd, err := booking.ParseTimeOfDay(slot.EndTime)
		if err != nil {
			return err
		}

		var future []models.Appointment
		if err := tx.
			Where("doctor_id = ? AND date >= ?", slot.DoctorID, today).
			Find(&future).Error; err != nil {
			return err
		}

		var orphaned []uint
		for _, ap := range future {
			if int(ap.Date.Weekday()) != slot.Weekday {
				continue
			}
			apStart, err := booking.ParseTimeOfDay(ap.StartTime)
			if err != nil {
				return err
			}
			if apStart >= wStart && apStart.Add(ap.DurationMin) <= wEnd {
				orphaned = append(orphaned, ap.ID)
			}
		}

		if len(orphaned) > 0 {
			if err := tx.Delete(&models.Appointment{}, orphaned).Error; err != nil {
				return err
			}
		}

		return tx.Delete(&slot).Error
	})

	if err != nil {
		if httperr.IsBusiness(err, "schedule_not_found") {
			httperr.NotFound(c, "schedule_not_found", "Schedule not found.")
			return
		}
		httperr.Internal(c, "failed_to_delete_schedule", "Could not delete schedule.")
		return
	}

	c.Status(http.StatusNoContent)
}
