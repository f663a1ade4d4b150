package controllers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"lms/backend/config"
	"lms/backend/models"
	"lms/backend/progress"
	"lms/backend/utils"
)

type ProgressController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewProgressController(db *gorm.DB, cfg *config.Config) *ProgressController {
	return &ProgressController{DB: db, Cfg: cfg}
}

// fetchCourseProgress loads the four collections the aggregator consumes
// and returns both category summaries for one employee and course.
func fetchCourseProgress(db *gorm.DB, employeeID, courseID uint) (progress.Category, progress.Category) {
	var modules []models.Module
	db.Where("course_id = ?", courseID).Find(&modules)

	var records []models.ModuleProgress
	db.Where("employee_id = ? AND course_id = ?", employeeID, courseID).Find(&records)

	var templates []models.AssessmentTemplate
	db.Where("course_id = ?", courseID).Find(&templates)

	var results []models.AssessmentResult
	db.Where("employee_id = ? AND course_id = ?", employeeID, courseID).Find(&results)

	return progress.Modules(modules, records), progress.Assessments(templates, results)
}

// GetCourseProgress godoc
// @Summary Get the caller's progress for one course
// @Tags progress
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /courses/{id}/progress [get]
func (pc *ProgressController) GetCourseProgress(c *fiber.Ctx) error {
	employeeID, err := utils.ExtractEmployeeIDFromToken(c, pc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	var course models.Course
	if err := pc.DB.First(&course, courseID).Error; err != nil {
		return utils.NotFound(c, "Course not found")
	}

	var enrollment models.Enrollment
	pc.DB.Where("employee_id = ? AND course_id = ?", employeeID, courseID).First(&enrollment)

	moduleCat, assessCat := fetchCourseProgress(pc.DB, employeeID, uint(courseID))

	return c.JSON(fiber.Map{
		"modules":         moduleCat,
		"assessments":     assessCat,
		"overall":         progress.Overall(moduleCat, assessCat),
		"can_complete":    progress.CanComplete(moduleCat, assessCat),
		"completion_rule": course.CompletionRule,
		"minimum_score":   course.MinimumScore,
		"status":          enrollment.Status,
	})
}

// GetOverview godoc
// @Summary Get the caller's progress overview
// @Tags progress
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /progress/overview [get]
func (pc *ProgressController) GetOverview(c *fiber.Ctx) error {
	employeeID, err := utils.ExtractEmployeeIDFromToken(c, pc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var completed int64
	pc.DB.Model(&models.Enrollment{}).
		Where("employee_id = ? AND status = ?", employeeID, models.EnrollmentCompleted).
		Count(&completed)

	var inProgress int64
	pc.DB.Model(&models.Enrollment{}).
		Where("employee_id = ? AND status = ?", employeeID, models.EnrollmentInProgress).
		Count(&inProgress)

	var sessionsAttended int64
	pc.DB.Model(&models.SessionAttendance{}).
		Where("employee_id = ? AND status = ?", employeeID, models.AttendanceAttended).
		Count(&sessionsAttended)

	var openProjects int64
	pc.DB.Model(&models.ProjectAssignment{}).
		Where("employee_id = ? AND status = ?", employeeID, models.ProjectAssigned).
		Count(&openProjects)

	return c.JSON(fiber.Map{
		"courses_completed":   completed,
		"courses_in_progress": inProgress,
		"sessions_attended":   sessionsAttended,
		"open_projects":       openProjects,
	})
}

// GetCourseAnalytics returns the per-enrollee completion table for a course.
func (pc *ProgressController) GetCourseAnalytics(c *fiber.Ctx) error {
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	var course models.Course
	if err := pc.DB.First(&course, courseID).Error; err != nil {
		return utils.NotFound(c, "Course not found")
	}

	var enrollments []models.Enrollment
	if err := pc.DB.Where("course_id = ?", courseID).Find(&enrollments).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	var rows []fiber.Map
	completedCount := 0
	for _, e := range enrollments {
		var employee models.Employee
		if err := pc.DB.First(&employee, e.EmployeeID).Error; err != nil {
			continue
		}

		moduleCat, assessCat := fetchCourseProgress(pc.DB, e.EmployeeID, e.CourseID)
		if e.Status == models.EnrollmentCompleted {
			completedCount++
		}

		rows = append(rows, fiber.Map{
			"employee_id": employee.ID,
			"name":        employee.FirstName + " " + employee.LastName,
			"department":  employee.Department,
			"status":      e.Status,
			"modules":     moduleCat,
			"assessments": assessCat,
			"overall":     progress.Overall(moduleCat, assessCat),
		})
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"course_id":   course.ID,
		"title":       course.Title,
		"enrollments": len(enrollments),
		"completed":   completedCount,
		"rows":        rows,
	})
}
