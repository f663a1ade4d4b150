package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	AttendanceRegistered = "registered"
	AttendanceAttended   = "attended"
	AttendanceNoShow     = "no_show"
)

type TrainingSession struct {
	gorm.Model
	CourseID     uint // optional link to a course
	Title        string
	Description  string
	Location     string
	StartsAt     time.Time
	EndsAt       time.Time
	Capacity     int `gorm:"default:0"` // 0 means unlimited
	InstructorID uint
}

type SessionAttendance struct {
	gorm.Model
	SessionID  uint   `gorm:"uniqueIndex:idx_session_employee"`
	EmployeeID uint   `gorm:"uniqueIndex:idx_session_employee"`
	Status     string `gorm:"default:registered"`
}
