package controllers

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"lms/backend/config"
	"lms/backend/models"
	emailsvc "lms/backend/services/email"
	"lms/backend/utils"
)

type EmployeesController struct {
	DB     *gorm.DB
	Cfg    *config.Config
	Mailer emailsvc.Service
}

func NewEmployeesController(db *gorm.DB, cfg *config.Config, mailer emailsvc.Service) *EmployeesController {
	return &EmployeesController{DB: db, Cfg: cfg, Mailer: mailer}
}

func (ec *EmployeesController) GetProfile(c *fiber.Ctx) error {
	employeeID, err := utils.ExtractEmployeeIDFromToken(c, ec.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var employee models.Employee
	if err := ec.DB.First(&employee, employeeID).Error; err != nil {
		return utils.NotFound(c, "Employee not found")
	}

	return c.JSON(fiber.Map{
		"id":         employee.ID,
		"email":      employee.Email,
		"first_name": employee.FirstName,
		"last_name":  employee.LastName,
		"department": employee.Department,
		"role":       employee.Role,
		"status":     employee.Status,
		"hire_date":  employee.HireDate,
	})
}

func (ec *EmployeesController) UpdateProfile(c *fiber.Ctx) error {
	employeeID, err := utils.ExtractEmployeeIDFromToken(c, ec.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var input struct {
		FirstName   string `json:"first_name"`
		LastName    string `json:"last_name"`
		OldPassword string `json:"old_password"`
		NewPassword string `json:"new_password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	var employee models.Employee
	if err := ec.DB.First(&employee, employeeID).Error; err != nil {
		return utils.NotFound(c, "Employee not found")
	}

	if input.FirstName != "" {
		employee.FirstName = input.FirstName
	}
	if input.LastName != "" {
		employee.LastName = input.LastName
	}

	if input.NewPassword != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(employee.PasswordHash), []byte(input.OldPassword)); err != nil {
			return utils.Unauthorized(c, "Old password is incorrect")
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return utils.InternalServerError(c, "Could not hash password")
		}
		employee.PasswordHash = string(hashed)
	}

	if err := ec.DB.Save(&employee).Error; err != nil {
		return utils.InternalServerError(c, "Could not update profile")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"id":         employee.ID,
		"first_name": employee.FirstName,
		"last_name":  employee.LastName,
	})
}

func (ec *EmployeesController) ListEmployees(c *fiber.Ctx) error {
	department := c.Query("department")
	status := c.Query("status")

	query := ec.DB.Model(&models.Employee{})
	if department != "" {
		query = query.Where("department = ?", department)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var employees []models.Employee
	if err := query.Order("last_name asc").Find(&employees).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	var result []fiber.Map
	for _, e := range employees {
		result = append(result, fiber.Map{
			"id":         e.ID,
			"email":      e.Email,
			"first_name": e.FirstName,
			"last_name":  e.LastName,
			"department": e.Department,
			"role":       e.Role,
			"status":     e.Status,
			"hire_date":  e.HireDate,
		})
	}

	return c.JSON(result)
}

func (ec *EmployeesController) GetEmployee(c *fiber.Ctx) error {
	employeeID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid employee ID")
	}

	var employee models.Employee
	if err := ec.DB.First(&employee, employeeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Employee not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	var enrollments []models.Enrollment
	ec.DB.Where("employee_id = ?", employeeID).Find(&enrollments)

	return c.JSON(fiber.Map{
		"employee": fiber.Map{
			"id":         employee.ID,
			"email":      employee.Email,
			"first_name": employee.FirstName,
			"last_name":  employee.LastName,
			"department": employee.Department,
			"role":       employee.Role,
			"status":     employee.Status,
			"hire_date":  employee.HireDate,
		},
		"enrollments": enrollments,
	})
}

// UpdateEmployeeStatus moves an employee through the lifecycle. Transitions
// are validated; offboarded is terminal.
func (ec *EmployeesController) UpdateEmployeeStatus(c *fiber.Ctx) error {
	employeeID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid employee ID")
	}

	var input struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	var employee models.Employee
	if err := ec.DB.First(&employee, employeeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Employee not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	if !models.ValidStatusTransition(employee.Status, input.Status) {
		return utils.Conflict(c, fmt.Sprintf("Cannot transition from %s to %s", employee.Status, input.Status))
	}

	employee.Status = input.Status
	if err := ec.DB.Save(&employee).Error; err != nil {
		return utils.InternalServerError(c, "Could not update status")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"id":     employee.ID,
		"status": employee.Status,
	})
}

// ImportEmployees handles the bulk CSV upload. Valid rows become onboarding
// accounts with a generated password that must be reset on first login;
// each new account gets a welcome email.
func (ec *EmployeesController) ImportEmployees(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return utils.BadRequest(c, "Missing CSV file upload (field 'file')")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return utils.BadRequest(c, "Could not open uploaded file")
	}
	defer file.Close()

	rows, rowErrs, err := utils.ParseEmployeeCSV(file)
	if err != nil {
		return utils.BadRequest(c, err.Error())
	}

	batchID := uuid.NewString()
	created := 0
	skipped := 0

	for _, row := range rows {
		var existing models.Employee
		if err := ec.DB.Where("email = ?", row.Email).First(&existing).Error; err == nil {
			skipped++
			continue
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), bcrypt.DefaultCost)
		if err != nil {
			return utils.InternalServerError(c, "Could not hash password")
		}

		role := row.Role
		if role == "" {
			role = models.RoleEmployee
		}
		hireDate := row.HireDate
		if hireDate.IsZero() {
			hireDate = time.Now()
		}

		employee := models.Employee{
			Email:         row.Email,
			PasswordHash:  string(hashed),
			FirstName:     row.FirstName,
			LastName:      row.LastName,
			Department:    row.Department,
			Role:          role,
			Status:        models.EmployeeOnboarding,
			HireDate:      hireDate,
			ImportBatchID: batchID,
		}
		if err := ec.DB.Create(&employee).Error; err != nil {
			skipped++
			continue
		}
		created++

		notify(ec.DB, ec.Mailer, employee, models.NotificationWelcome,
			"Welcome to the learning portal",
			fmt.Sprintf("Hi %s, your onboarding account has been created. "+
				"Use the password reset link to set your password.", employee.FirstName))
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"batch_id":   batchID,
		"created":    created,
		"skipped":    skipped,
		"row_errors": rowErrs,
	})
}
