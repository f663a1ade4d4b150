package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	NotificationWelcome         = "welcome"
	NotificationCourseCompleted = "course_completed"
	NotificationSessionReminder = "session_reminder"
	NotificationProjectReviewed = "project_reviewed"
)

// Notification is the audit row for every outbound email.
type Notification struct {
	gorm.Model
	EmployeeID uint `gorm:"index"`
	Kind       string
	Subject    string
	Body       string
	SentAt     time.Time
	Delivered  bool
}
