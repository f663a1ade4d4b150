package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	RulePassAllAssessments    = "pass_all_assessments"
	RulePassMinimumPercentage = "pass_minimum_percentage"
	RulePassMandatoryOnly     = "pass_mandatory_only"
)

type Course struct {
	gorm.Model
	Title       string
	ShortDesc   string
	Description string
	Department  string
	Difficulty  string // beginner, intermediate, advanced
	AuthorID    uint
	Published   bool `gorm:"default:false"`
	// CompletionRule selects the completion policy shown to the employee.
	// Gating currently requires all assessments passed regardless of rule;
	// the percentage/mandatory variants only drive display text.
	CompletionRule string  `gorm:"default:pass_all_assessments"`
	MinimumScore   float64 `gorm:"default:70"`
	Modules        []Module
	Assessments    []AssessmentTemplate
}

type Module struct {
	gorm.Model
	CourseID      uint
	Title         string
	Description   string
	Content       string
	SequenceOrder int
}

type ModuleProgress struct {
	gorm.Model
	EmployeeID uint `gorm:"uniqueIndex:idx_employee_module"`
	ModuleID   uint `gorm:"uniqueIndex:idx_employee_module"`
	CourseID   uint `gorm:"index"`
	Completed  bool `gorm:"default:false"`
}

const (
	EnrollmentNotStarted = "not_started"
	EnrollmentInProgress = "in_progress"
	EnrollmentCompleted  = "completed"
)

type Enrollment struct {
	gorm.Model
	EmployeeID     uint   `gorm:"uniqueIndex:idx_employee_course"`
	CourseID       uint   `gorm:"uniqueIndex:idx_employee_course"`
	Status         string `gorm:"default:not_started"`
	EnrolledDate   time.Time
	CompletionDate *time.Time
}
