package utils

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"lms/backend/config"
	"lms/backend/models"
)

func InitDB(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(
		&models.Employee{},
		&models.LoginHistory{},
		&models.Course{},
		&models.Module{},
		&models.ModuleProgress{},
		&models.AssessmentTemplate{},
		&models.AssessmentResult{},
		&models.Enrollment{},
		&models.TrainingSession{},
		&models.SessionAttendance{},
		&models.ProjectAssignment{},
		&models.Notification{},
	); err != nil {
		return nil, err
	}

	return db, nil
}
