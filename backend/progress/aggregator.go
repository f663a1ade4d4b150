// Package progress computes course completion from already-fetched rows.
// Every function is pure: no database access, no errors, 0% on empty input.
package progress

import (
	"math"

	"lms/backend/models"
)

// DefaultPassingScore applies when a result row carries no threshold.
const DefaultPassingScore = 70

type Category struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
	Percent   int `json:"percentage"`
}

// Modules counts completed modules against the course's module set.
// A module contributes 0 or 1; progress records for modules outside the
// set (stale rows after a module was removed) are ignored.
func Modules(modules []models.Module, records []models.ModuleProgress) Category {
	known := make(map[uint]bool, len(modules))
	for _, m := range modules {
		known[m.ID] = true
	}

	done := make(map[uint]bool)
	for _, r := range records {
		if r.Completed && known[r.ModuleID] {
			done[r.ModuleID] = true
		}
	}

	return Category{
		Completed: len(done),
		Total:     len(modules),
		Percent:   percent(len(done), len(modules)),
	}
}

// Assessments counts distinct templates with at least one passing result.
// A result passes when its status is passed (or legacy "completed") and its
// percentage meets the threshold recorded on the result, defaulting to
// DefaultPassingScore when the row has none. Attempts never accumulate:
// two failures and one pass on the same template contribute exactly 1.
func Assessments(templates []models.AssessmentTemplate, results []models.AssessmentResult) Category {
	known := make(map[uint]bool, len(templates))
	for _, t := range templates {
		known[t.ID] = true
	}

	passed := make(map[uint]bool)
	for _, r := range results {
		if known[r.AssessmentTemplateID] && Passed(r) {
			passed[r.AssessmentTemplateID] = true
		}
	}

	return Category{
		Completed: len(passed),
		Total:     len(templates),
		Percent:   percent(len(passed), len(templates)),
	}
}

// Passed reports whether a single result meets its own threshold.
func Passed(r models.AssessmentResult) bool {
	if r.Status != models.ResultPassed && r.Status != "completed" {
		return false
	}
	threshold := r.PassingScore
	if threshold == 0 {
		threshold = DefaultPassingScore
	}
	return r.Percentage >= threshold
}

// Overall combines both categories by summing item counts, so a category
// with more items weighs proportionally more.
func Overall(m, a Category) int {
	return percent(m.Completed+a.Completed, m.Total+a.Total)
}

// CanComplete gates the mark-complete action. With assessment templates
// present, every template must be passed; the course's completion rule does
// not change the gate. Without templates the gate falls back to the modules.
func CanComplete(m, a Category) bool {
	if a.Total > 0 {
		return a.Completed == a.Total
	}
	return m.Total == 0 || m.Completed == m.Total
}

// OnActivity advances an enrollment on the first recorded module or
// assessment activity. Completed never transitions away.
func OnActivity(status string) string {
	if status == models.EnrollmentNotStarted || status == "" {
		return models.EnrollmentInProgress
	}
	return status
}

func percent(completed, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}
