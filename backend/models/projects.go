package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	ProjectAssigned  = "assigned"
	ProjectSubmitted = "submitted"
	ProjectReviewed  = "reviewed"
)

type ProjectAssignment struct {
	gorm.Model
	EmployeeID    uint `gorm:"index"`
	CourseID      uint // optional link to a course
	Title         string
	Brief         string
	DueDate       time.Time
	Status        string `gorm:"default:assigned"`
	SubmissionURL string
	SubmittedAt   *time.Time
	ReviewerID    uint
	Grade         float64
	ReviewNotes   string
}
