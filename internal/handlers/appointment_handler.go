package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	bookUC    *ucAppointment.BookAppointment
	cancelUC  *ucAppointment.CancelAppointment
	listUC    *ucAppointment.ListAppointmentsByPatient
	slotsUC   *ucAppointment.GetFreeSlots
	nearestUC *ucAppointment.FindNearestSlot
}

func NewAppointmentHandler(
	bookUC *ucAppointment.BookAppointment,
	cancelUC *ucAppointment.CancelAppointment,
	listUC *ucAppointment.ListAppointmentsByPatient,
	slotsUC *ucAppointment.GetFreeSlots,
	nearestUC *ucAppointment.FindNearestSlot,
) *AppointmentHandler {
	return &AppointmentHandler{
		bookUC:    bookUC,
		cancelUC:  cancelUC,
		listUC:    listUC,
		slotsUC:   slotsUC,
		nearestUC: nearestUC,
	}
}

// ======================================================
// BOOK
// ======================================================

type BookAppointmentRequest struct {
	DoctorID    uint   `json:"doctor_id" binding:"required"`
	Date        string `json:"date" binding:"required"`
	Time        string `json:"time" binding:"required"`
	DurationMin int    `json:"duration_min" binding:"required,min=1"`
}

func (h *AppointmentHandler) Book(c *gin.Context) {
	patientID := c.MustGet(middleware.ContextPatientID).(uint)

	var req BookAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid booking data.")
		return
	}

	ap, err := h.bookUC.Execute(c.Request.Context(), ucAppointment.BookAppointmentInput{
		PatientID:   patientID,
		DoctorID:    req.DoctorID,
		Date:        req.Date,
		Time:        req.Time,
		DurationMin: req.DurationMin,
	})

	if err != nil {
		switch {
		case httperr.IsBusiness(err, "time_conflict"):
			httperr.Conflict(c, "time_conflict", "The slot was just taken.")
		case httperr.IsBusiness(err, "doctor_not_available"):
			httperr.BadRequest(c, "doctor_not_available", "The doctor is not available on the specified date and time.")
		default:
			if code, ok := httperr.IsAnyBusiness(err); ok {
				httperr.BadRequest(c, code, "Invalid booking request.")
				return
			}
			httperr.Internal(c, "failed_to_book", "Error when scheduling the appointment. Please try again later.")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Appointment successfully scheduled.",
		"appointment": ap,
	})
}

// ======================================================
// LIST MINE
// ======================================================

func (h *AppointmentHandler) ListMine(c *gin.Context) {
	patientID := c.MustGet(middleware.ContextPatientID).(uint)

	items, err := h.listUC.Execute(c.Request.Context(), patientID)
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Could not list appointments.")
		return
	}

	httpresp.List(c, items)
}

// ======================================================
// CANCEL
// ======================================================

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	patientID := c.MustGet(middleware.ContextPatientID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid appointment id.")
		return
	}

	if err := h.cancelUC.Execute(c.Request.Context(), patientID, uint(id)); err != nil {
		if httperr.IsBusiness(err, "appointment_not_found") {
			httperr.NotFound(c, "appointment_not_found", "Appointment not found.")
			return
		}
		httperr.Internal(c, "failed_to_cancel", "Could not cancel the appointment.")
		return
	}

	c.Status(http.StatusNoContent)
}

// ======================================================
// FREE SLOTS
// ======================================================

func (h *AppointmentHandler) FreeSlots(c *gin.Context) {
	doctorID, err := strconv.ParseUint(c.Query("doctor_id"), 10, 64)
	if err != nil || doctorID == 0 {
		httperr.BadRequest(c, "invalid_doctor_id", "A doctor_id is required.")
		return
	}

	date, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "A date in YYYY-MM-DD form is required.")
		return
	}

	slots, err := h.slotsUC.Execute(c.Request.Context(), uint(doctorID), date)
	if err != nil {
		if code, ok := httperr.IsAnyBusiness(err); ok {
			httperr.BadRequest(c, code, "Could not compute free slots.")
			return
		}
		httperr.Internal(c, "failed_to_compute_slots", "Could not compute free slots.")
		return
	}

	httpresp.List(c, slots)
}

// ======================================================
// NEAREST BY SPECIALTY
// ======================================================

func (h *AppointmentHandler) Nearest(c *gin.Context) {
	specialty := c.Param("specialty")

	result, err := h.nearestUC.Execute(c.Request.Context(), specialty)
	if err != nil {
		switch {
		case httperr.IsBusiness(err, "no_doctor_available"):
			httperr.NotFound(c, "no_doctor_available", "No available dates found for this specialty.")
		case httperr.IsBusiness(err, "missing_specialty"):
			httperr.BadRequest(c, "missing_specialty", "A specialty is required.")
		default:
			httperr.Internal(c, "failed_to_find_slot", "Could not search for available dates.")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"doctor_id":   result.DoctorID,
		"doctor_name": result.DoctorName,
		"date":        result.Date.Format("2006-01-02"),
		"time_slots":  result.TimeSlots,
	})
}
