package models

import "gorm.io/gorm"

const (
	AssessmentQuiz       = "quiz"
	AssessmentAssignment = "assignment"
	AssessmentProject    = "project"
)

const (
	ResultPassed = "passed"
	ResultFailed = "failed"
)

type AssessmentTemplate struct {
	gorm.Model
	CourseID     uint `gorm:"index"`
	Title        string
	Description  string
	Kind         string  `gorm:"default:quiz"` // quiz, assignment, project
	PassingScore float64 `gorm:"default:70"`
	Mandatory    bool    `gorm:"default:true"`
}

// AssessmentResult is one attempt against a template. Completion counts
// distinct passed templates, never attempts.
type AssessmentResult struct {
	gorm.Model
	EmployeeID           uint `gorm:"index"`
	CourseID             uint `gorm:"index"`
	AssessmentTemplateID uint `gorm:"index"`
	Percentage           float64
	PassingScore         float64 // copied from the template at submission; 0 on legacy rows
	Status               string  // passed, failed ("completed" accepted on legacy rows)
	Attempt              int
}
