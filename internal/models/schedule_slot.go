package models

import "time"

// ScheduleSlot is a recurring weekly availability window for a doctor.
// Times are wall-clock "15:04" strings; Weekday is 0 (Sunday) to 6 (Saturday).
type ScheduleSlot struct {
	ID uint `gorm:"primaryKey" json:"id"`

	DoctorID uint   `gorm:"index" json:"doctor_id"`
	Doctor   Doctor `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Weekday int `gorm:"not null" json:"weekday"`

	StartTime string `gorm:"size:5;not null" json:"start_time"`
	EndTime   string `gorm:"size:5;not null" json:"end_time"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
