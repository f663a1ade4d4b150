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
	emailsvc "lms/backend/services/email"
	"lms/backend/utils"
)

type ProjectsController struct {
	DB     *gorm.DB
	Cfg    *config.Config
	Mailer emailsvc.Service
}

func NewProjectsController(db *gorm.DB, cfg *config.Config, mailer emailsvc.Service) *ProjectsController {
	return &ProjectsController{DB: db, Cfg: cfg, Mailer: mailer}
}

func (pc *ProjectsController) GetMyProjects(c *fiber.Ctx) error {
	employeeID, err := utils.ExtractEmployeeIDFromToken(c, pc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var projects []models.ProjectAssignment
	if err := pc.DB.Where("employee_id = ?", employeeID).
		Order("due_date asc").Find(&projects).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	return c.JSON(projects)
}

type ProjectInput struct {
	EmployeeID uint      `json:"employee_id" validate:"required"`
	CourseID   uint      `json:"course_id"`
	Title      string    `json:"title" validate:"required"`
	Brief      string    `json:"brief"`
	DueDate    time.Time `json:"due_date" validate:"required"`
}

func (pc *ProjectsController) AssignProject(c *fiber.Ctx) error {
	var input ProjectInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if fields := utils.ValidateStruct(input); fields != nil {
		return utils.ValidationError(c, fields)
	}

	var employee models.Employee
	if err := pc.DB.First(&employee, input.EmployeeID).Error; err != nil {
		return utils.NotFound(c, "Employee not found")
	}

	project := models.ProjectAssignment{
		EmployeeID: input.EmployeeID,
		CourseID:   input.CourseID,
		Title:      input.Title,
		Brief:      input.Brief,
		DueDate:    input.DueDate,
		Status:     models.ProjectAssigned,
	}
	if err := pc.DB.Create(&project).Error; err != nil {
		return utils.InternalServerError(c, "Could not create project assignment")
	}

	return utils.Created(c, project)
}

func (pc *ProjectsController) SubmitProject(c *fiber.Ctx) error {
	employeeID, err := utils.ExtractEmployeeIDFromToken(c, pc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	projectID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid project ID")
	}

	var input struct {
		SubmissionURL string `json:"submission_url"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.SubmissionURL == "" {
		return utils.BadRequest(c, "submission_url is required")
	}

	var project models.ProjectAssignment
	if err := pc.DB.Where("id = ? AND employee_id = ?", projectID, employeeID).
		First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Project not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	if project.Status == models.ProjectReviewed {
		return utils.Conflict(c, "Project has already been reviewed")
	}

	now := time.Now()
	project.Status = models.ProjectSubmitted
	project.SubmissionURL = input.SubmissionURL
	project.SubmittedAt = &now

	if err := pc.DB.Save(&project).Error; err != nil {
		return utils.InternalServerError(c, "Could not submit project")
	}

	return utils.Success(c, fiber.StatusOK, project)
}

func (pc *ProjectsController) ReviewProject(c *fiber.Ctx) error {
	reviewerID, err := utils.ExtractEmployeeIDFromToken(c, pc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	projectID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid project ID")
	}

	var input struct {
		Grade float64 `json:"grade"`
		Notes string  `json:"notes"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.Grade < 0 || input.Grade > 100 {
		return utils.BadRequest(c, "Grade must be between 0 and 100")
	}

	var project models.ProjectAssignment
	if err := pc.DB.First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Project not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	if project.Status != models.ProjectSubmitted {
		return utils.Conflict(c, "Project has not been submitted yet")
	}

	project.Status = models.ProjectReviewed
	project.ReviewerID = reviewerID
	project.Grade = input.Grade
	project.ReviewNotes = input.Notes

	if err := pc.DB.Save(&project).Error; err != nil {
		return utils.InternalServerError(c, "Could not review project")
	}

	var employee models.Employee
	if err := pc.DB.First(&employee, project.EmployeeID).Error; err == nil {
		notify(pc.DB, pc.Mailer, employee, models.NotificationProjectReviewed,
			fmt.Sprintf("Project reviewed: %s", project.Title),
			fmt.Sprintf("Your project %q was reviewed with a grade of %.0f.", project.Title, project.Grade))
	}

	return utils.Success(c, fiber.StatusOK, project)
}
