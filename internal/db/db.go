package db

import (
	"log"
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/config"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.Doctor{},
		&models.Patient{},
		&models.ScheduleSlot{},
		&models.Appointment{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	if err := ensureNoDoubleBooking(db); err != nil {
		log.Fatalf("failed to create booking constraint: %v", err)
	}

	return db
}

// ensureNoDoubleBooking installs an exclusion constraint that rejects two
// appointments for the same doctor and date whose minute ranges overlap.
// An overlapping commit raises 23P01, which the repository maps to the
// time_conflict business error.
func ensureNoDoubleBooking(db *gorm.DB) error {
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS btree_gist").Error; err != nil {
		return err
	}

	var count int64
	if err := db.Raw(
		"SELECT count(*) FROM pg_constraint WHERE conname = ?",
		"appointments_no_double_booking",
	).Scan(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	return db.Exec(`
		ALTER TABLE appointments
		ADD CONSTRAINT appointments_no_double_booking
		EXCLUDE USING gist (
			doctor_id WITH =,
			date WITH =,
			int4range(
				split_part(start_time, ':', 1)::int * 60 + split_part(start_time, ':', 2)::int,
				split_part(start_time, ':', 1)::int * 60 + split_part(start_time, ':', 2)::int + duration_min
			) WITH &&
		)`).Error
}
