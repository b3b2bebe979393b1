package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type PatientHandler struct {
	db *gorm.DB
}

func NewPatientHandler(db *gorm.DB) *PatientHandler {
	return &PatientHandler{db: db}
}

func (h *PatientHandler) GetMe(c *gin.Context) {
	patientID := c.MustGet(middleware.ContextPatientID).(uint)

	var patient models.Patient
	if err := h.db.First(&patient, patientID).Error; err != nil {
		httperr.NotFound(c, "patient_not_found", "Patient not found.")
		return
	}

	httpresp.OK(c, patient)
}

type UpdatePatientRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email" binding:"omitempty,email"`
	Phone     string `json:"phone"`
	Birthdate string `json:"birthdate"`
}

func (h *PatientHandler) UpdateMe(c *gin.Context) {
	patientID := c.MustGet(middleware.ContextPatientID).(uint)

	var req UpdatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid patient data.")
		return
	}

	var patient models.Patient
	if err := h.db.First(&patient, patientID).Error; err != nil {
		httperr.NotFound(c, "patient_not_found", "Patient not found.")
		return
	}

	if req.FirstName != "" {
		patient.FirstName = req.FirstName
	}
	if req.LastName != "" {
		patient.LastName = req.LastName
	}
	if req.Email != "" {
		patient.Email = req.Email
	}
	if req.Phone != "" {
		patient.Phone = req.Phone
	}
	if req.Birthdate != "" {
		patient.Birthdate = req.Birthdate
	}

	if err := h.db.Save(&patient).Error; err != nil {
		httperr.Internal(c, "failed_to_update_patient", "Could not update patient.")
		return
	}

	httpresp.OK(c, patient)
}

// List is admin-only; the role gate runs in middleware.
func (h *PatientHandler) List(c *gin.Context) {
	var patients []models.Patient
	if err := h.db.Order("id ASC").Find(&patients).Error; err != nil {
		httperr.Internal(c, "failed_to_list_patients", "Could not list patients.")
		return
	}

	httpresp.List(c, patients)
}

func (h *PatientHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	// Appointments go first so the patient row never becomes an orphan
	// parent of dangling bookings.
	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("patient_id = ?", id).Delete(&models.Appointment{}).Error; err != nil {
			return err
		}

		res := tx.Delete(&models.Patient{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return httperr.ErrBusiness("patient_not_found")
		}
		return nil
	})

	if err != nil {
		if httperr.IsBusiness(err, "patient_not_found") {
			httperr.NotFound(c, "patient_not_found", "Patient not found.")
			return
		}
		httperr.Internal(c, "failed_to_delete_patient", "Could not delete patient.")
		return
	}

	c.Status(http.StatusNoContent)
}
