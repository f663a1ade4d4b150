package controllers

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"lms/backend/config"
	"lms/backend/models"
	"lms/backend/progress"
	emailsvc "lms/backend/services/email"
	"lms/backend/utils"
)

type EnrollmentsController struct {
	DB     *gorm.DB
	Cfg    *config.Config
	Mailer emailsvc.Service
}

func NewEnrollmentsController(db *gorm.DB, cfg *config.Config, mailer emailsvc.Service) *EnrollmentsController {
	return &EnrollmentsController{DB: db, Cfg: cfg, Mailer: mailer}
}

func (ec *EnrollmentsController) Enroll(c *fiber.Ctx) error {
	employeeID, err := utils.ExtractEmployeeIDFromToken(c, ec.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	var course models.Course
	if err := ec.DB.Where("id = ? AND published = ?", courseID, true).First(&course).Error; err != nil {
		return utils.NotFound(c, "Course not found or not published")
	}

	var existing models.Enrollment
	if err := ec.DB.Where("employee_id = ? AND course_id = ?", employeeID, courseID).
		First(&existing).Error; err == nil {
		return utils.Conflict(c, "Already enrolled in this course")
	}

	enrollment := models.Enrollment{
		EmployeeID:   employeeID,
		CourseID:     uint(courseID),
		Status:       models.EnrollmentNotStarted,
		EnrolledDate: time.Now(),
	}
	if err := ec.DB.Create(&enrollment).Error; err != nil {
		return utils.InternalServerError(c, "Could not enroll in course")
	}

	return utils.Created(c, enrollment)
}

func (ec *EnrollmentsController) GetMyEnrollments(c *fiber.Ctx) error {
	employeeID, err := utils.ExtractEmployeeIDFromToken(c, ec.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var enrollments []models.Enrollment
	if err := ec.DB.Where("employee_id = ?", employeeID).Find(&enrollments).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	var result []fiber.Map
	for _, e := range enrollments {
		var course models.Course
		if err := ec.DB.First(&course, e.CourseID).Error; err != nil {
			continue
		}

		moduleCat, assessCat := fetchCourseProgress(ec.DB, employeeID, e.CourseID)
		result = append(result, fiber.Map{
			"course_id":       e.CourseID,
			"title":           course.Title,
			"status":          e.Status,
			"enrolled_date":   e.EnrolledDate,
			"completion_date": e.CompletionDate,
			"overall":         progress.Overall(moduleCat, assessCat),
		})
	}

	return c.JSON(result)
}

// UpdateModuleProgress upserts the completed flag for one module and bumps
// the enrollment to in_progress on first activity.
func (ec *EnrollmentsController) UpdateModuleProgress(c *fiber.Ctx) error {
	employeeID, err := utils.ExtractEmployeeIDFromToken(c, ec.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}
	moduleID, err := strconv.Atoi(c.Params("moduleId"))
	if err != nil {
		return utils.BadRequest(c, "Invalid module ID")
	}

	var input struct {
		Completed bool `json:"completed"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	var module models.Module
	if err := ec.DB.Where("id = ? AND course_id = ?", moduleID, courseID).First(&module).Error; err != nil {
		return utils.NotFound(c, "Module not found")
	}

	enrollment, err := ec.findEnrollment(employeeID, uint(courseID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.Forbidden(c, "Please enroll in this course first")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	var record models.ModuleProgress
	if err := ec.DB.Where("employee_id = ? AND module_id = ?", employeeID, moduleID).
		First(&record).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.InternalServerError(c, "Could not query database")
		}
		record = models.ModuleProgress{
			EmployeeID: employeeID,
			ModuleID:   uint(moduleID),
			CourseID:   uint(courseID),
		}
	}
	record.Completed = input.Completed

	if err := ec.DB.Save(&record).Error; err != nil {
		return utils.InternalServerError(c, "Could not save progress")
	}

	ec.bumpEnrollment(enrollment)

	moduleCat, assessCat := fetchCourseProgress(ec.DB, employeeID, uint(courseID))
	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"modules":     moduleCat,
		"assessments": assessCat,
		"overall":     progress.Overall(moduleCat, assessCat),
	})
}

// SubmitAssessmentResult records one attempt. The attempt's pass/fail status
// is fixed at submission from the template's current threshold.
func (ec *EnrollmentsController) SubmitAssessmentResult(c *fiber.Ctx) error {
	employeeID, err := utils.ExtractEmployeeIDFromToken(c, ec.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}
	templateID, err := strconv.Atoi(c.Params("templateId"))
	if err != nil {
		return utils.BadRequest(c, "Invalid template ID")
	}

	var input struct {
		Percentage float64 `json:"percentage"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.Percentage < 0 || input.Percentage > 100 {
		return utils.BadRequest(c, "Percentage must be between 0 and 100")
	}

	var template models.AssessmentTemplate
	if err := ec.DB.Where("id = ? AND course_id = ?", templateID, courseID).First(&template).Error; err != nil {
		return utils.NotFound(c, "Assessment template not found")
	}

	enrollment, err := ec.findEnrollment(employeeID, uint(courseID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.Forbidden(c, "Please enroll in this course first")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	threshold := template.PassingScore
	if threshold == 0 {
		threshold = progress.DefaultPassingScore
	}

	status := models.ResultFailed
	if input.Percentage >= threshold {
		status = models.ResultPassed
	}

	var attempts int64
	ec.DB.Model(&models.AssessmentResult{}).
		Where("employee_id = ? AND assessment_template_id = ?", employeeID, templateID).
		Count(&attempts)

	result := models.AssessmentResult{
		EmployeeID:           employeeID,
		CourseID:             uint(courseID),
		AssessmentTemplateID: uint(templateID),
		Percentage:           input.Percentage,
		PassingScore:         threshold,
		Status:               status,
		Attempt:              int(attempts) + 1,
	}
	if err := ec.DB.Create(&result).Error; err != nil {
		return utils.InternalServerError(c, "Could not save result")
	}

	ec.bumpEnrollment(enrollment)

	return utils.Created(c, result)
}

// CompleteCourse is the explicit mark-complete action. The gate requires all
// assessment templates passed (or, with none, all modules done); the course's
// completion rule never widens or narrows it. Completion is one-way.
func (ec *EnrollmentsController) CompleteCourse(c *fiber.Ctx) error {
	employeeID, err := utils.ExtractEmployeeIDFromToken(c, ec.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	var course models.Course
	if err := ec.DB.First(&course, courseID).Error; err != nil {
		return utils.NotFound(c, "Course not found")
	}

	enrollment, err := ec.findEnrollment(employeeID, uint(courseID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.Forbidden(c, "Please enroll in this course first")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	if enrollment.Status == models.EnrollmentCompleted {
		return utils.Success(c, fiber.StatusOK, enrollment)
	}

	moduleCat, assessCat := fetchCourseProgress(ec.DB, employeeID, uint(courseID))
	if !progress.CanComplete(moduleCat, assessCat) {
		return utils.Conflict(c, "Course requirements are not met yet")
	}

	now := time.Now()
	enrollment.Status = models.EnrollmentCompleted
	enrollment.CompletionDate = &now
	if err := ec.DB.Save(enrollment).Error; err != nil {
		return utils.InternalServerError(c, "Could not update enrollment")
	}

	var employee models.Employee
	if err := ec.DB.First(&employee, employeeID).Error; err == nil {
		notify(ec.DB, ec.Mailer, employee, models.NotificationCourseCompleted,
			fmt.Sprintf("Course completed: %s", course.Title),
			fmt.Sprintf("Congratulations %s, you have completed %q.", employee.FirstName, course.Title))
	}

	return utils.Success(c, fiber.StatusOK, enrollment)
}

func (ec *EnrollmentsController) findEnrollment(employeeID, courseID uint) (*models.Enrollment, error) {
	var enrollment models.Enrollment
	err := ec.DB.Where("employee_id = ? AND course_id = ?", employeeID, courseID).
		First(&enrollment).Error
	if err != nil {
		return nil, err
	}
	return &enrollment, nil
}

// bumpEnrollment moves not_started to in_progress; completed stays as is.
func (ec *EnrollmentsController) bumpEnrollment(enrollment *models.Enrollment) {
	next := progress.OnActivity(enrollment.Status)
	if next != enrollment.Status {
		enrollment.Status = next
		ec.DB.Save(enrollment)
	}
}
