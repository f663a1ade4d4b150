package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"lms/backend/models"
)

func module(id uint) models.Module {
	return models.Module{Model: gorm.Model{ID: id}, CourseID: 1}
}

func moduleDone(moduleID uint, done bool) models.ModuleProgress {
	return models.ModuleProgress{EmployeeID: 7, ModuleID: moduleID, CourseID: 1, Completed: done}
}

func template(id uint) models.AssessmentTemplate {
	return models.AssessmentTemplate{Model: gorm.Model{ID: id}, CourseID: 1, PassingScore: 70}
}

func result(templateID uint, pct, threshold float64, status string) models.AssessmentResult {
	return models.AssessmentResult{
		EmployeeID:           7,
		CourseID:             1,
		AssessmentTemplateID: templateID,
		Percentage:           pct,
		PassingScore:         threshold,
		Status:               status,
	}
}

func TestEmptyCourseIsZeroPercent(t *testing.T) {
	m := Modules(nil, nil)
	a := Assessments(nil, nil)

	assert.Equal(t, Category{}, m)
	assert.Equal(t, Category{}, a)
	assert.Equal(t, 0, Overall(m, a))
}

func TestModuleProgressCounts(t *testing.T) {
	modules := []models.Module{module(1), module(2), module(3), module(4)}
	records := []models.ModuleProgress{
		moduleDone(1, true),
		moduleDone(2, true),
		moduleDone(3, true),
		moduleDone(4, false),
	}

	got := Modules(modules, records)
	assert.Equal(t, Category{Completed: 3, Total: 4, Percent: 75}, got)
}

func TestModuleProgressIgnoresStaleRecords(t *testing.T) {
	modules := []models.Module{module(1)}
	records := []models.ModuleProgress{
		moduleDone(1, true),
		moduleDone(99, true), // module no longer in the course
	}

	got := Modules(modules, records)
	assert.Equal(t, Category{Completed: 1, Total: 1, Percent: 100}, got)
}

func TestAssessmentCountsDistinctTemplatesNotAttempts(t *testing.T) {
	templates := []models.AssessmentTemplate{template(1), template(2)}
	results := []models.AssessmentResult{
		result(1, 40, 70, models.ResultFailed),
		result(1, 55, 70, models.ResultFailed),
		result(1, 85, 70, models.ResultPassed),
		result(1, 90, 70, models.ResultPassed), // second pass on same template
	}

	got := Assessments(templates, results)
	assert.Equal(t, Category{Completed: 1, Total: 2, Percent: 50}, got)
}

func TestPassedDefaultsThresholdTo70(t *testing.T) {
	assert.True(t, Passed(result(1, 70, 0, models.ResultPassed)))
	assert.False(t, Passed(result(1, 69, 0, models.ResultPassed)))

	// Missing percentage and missing threshold both default: 0 < 70 fails.
	assert.False(t, Passed(result(1, 0, 0, models.ResultPassed)))
}

func TestPassedAcceptsLegacyCompletedStatus(t *testing.T) {
	assert.True(t, Passed(result(1, 80, 70, "completed")))
	assert.False(t, Passed(result(1, 80, 70, models.ResultFailed)))
}

func TestOverallSumsCountsAcrossCategories(t *testing.T) {
	m := Category{Completed: 3, Total: 4, Percent: 75}
	a := Category{Completed: 1, Total: 2, Percent: 50}

	// (3+1)/(4+2) = 66.67 rounds to 67, not the 62.5 a percentage average would give.
	assert.Equal(t, 67, Overall(m, a))
}

func TestOverallFullCompletionIs100(t *testing.T) {
	modules := []models.Module{module(1), module(2)}
	records := []models.ModuleProgress{moduleDone(1, true), moduleDone(2, true)}
	templates := []models.AssessmentTemplate{template(1)}
	results := []models.AssessmentResult{result(1, 95, 70, models.ResultPassed)}

	m := Modules(modules, records)
	a := Assessments(templates, results)
	assert.Equal(t, 100, Overall(m, a))
}

func TestPercentagesStayInBounds(t *testing.T) {
	cases := []Category{
		Modules(nil, []models.ModuleProgress{moduleDone(1, true)}),
		Modules([]models.Module{module(1)}, nil),
		Assessments([]models.AssessmentTemplate{template(1)}, []models.AssessmentResult{
			result(1, 200, 70, models.ResultPassed),
			result(1, -5, 70, models.ResultFailed),
		}),
	}
	for _, c := range cases {
		assert.GreaterOrEqual(t, c.Percent, 0)
		assert.LessOrEqual(t, c.Percent, 100)
	}
}

func TestCanComplete(t *testing.T) {
	none := Category{}

	// Nothing to do at all: completable.
	assert.True(t, CanComplete(none, none))

	// No templates: the gate falls back to the modules.
	assert.True(t, CanComplete(Category{Completed: 2, Total: 2, Percent: 100}, none))
	assert.False(t, CanComplete(Category{Completed: 1, Total: 2, Percent: 50}, none))

	// With templates: all must be passed, modules do not gate.
	assert.False(t, CanComplete(none, Category{Completed: 1, Total: 2, Percent: 50}))
	assert.True(t, CanComplete(Category{Completed: 0, Total: 3}, Category{Completed: 2, Total: 2, Percent: 100}))
}

func TestOnActivityTransitions(t *testing.T) {
	assert.Equal(t, models.EnrollmentInProgress, OnActivity(models.EnrollmentNotStarted))
	assert.Equal(t, models.EnrollmentInProgress, OnActivity(""))
	assert.Equal(t, models.EnrollmentInProgress, OnActivity(models.EnrollmentInProgress))

	// Completed is one-way.
	assert.Equal(t, models.EnrollmentCompleted, OnActivity(models.EnrollmentCompleted))
}
