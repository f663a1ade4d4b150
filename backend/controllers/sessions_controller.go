package controllers

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"lms/backend/config"
	"lms/backend/models"
	"lms/backend/utils"
)

type SessionsController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewSessionsController(db *gorm.DB, cfg *config.Config) *SessionsController {
	return &SessionsController{DB: db, Cfg: cfg}
}

func (sc *SessionsController) ListUpcoming(c *fiber.Ctx) error {
	employeeID, err := utils.ExtractEmployeeIDFromToken(c, sc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var sessions []models.TrainingSession
	if err := sc.DB.Where("starts_at > ?", time.Now()).
		Order("starts_at asc").Find(&sessions).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	var result []fiber.Map
	for _, s := range sessions {
		var registered int64
		sc.DB.Model(&models.SessionAttendance{}).Where("session_id = ?", s.ID).Count(&registered)

		var mine models.SessionAttendance
		isRegistered := sc.DB.Where("session_id = ? AND employee_id = ?", s.ID, employeeID).
			First(&mine).Error == nil

		result = append(result, fiber.Map{
			"id":            s.ID,
			"title":         s.Title,
			"location":      s.Location,
			"starts_at":     s.StartsAt,
			"ends_at":       s.EndsAt,
			"capacity":      s.Capacity,
			"registered":    registered,
			"is_registered": isRegistered,
		})
	}

	return c.JSON(result)
}

type SessionInput struct {
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	StartsAt    time.Time `json:"starts_at" validate:"required"`
	EndsAt      time.Time `json:"ends_at" validate:"required"`
	Capacity    int       `json:"capacity" validate:"gte=0"`
	CourseID    uint      `json:"course_id"`
}

func (sc *SessionsController) CreateSession(c *fiber.Ctx) error {
	employeeID, err := utils.ExtractEmployeeIDFromToken(c, sc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var input SessionInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if fields := utils.ValidateStruct(input); fields != nil {
		return utils.ValidationError(c, fields)
	}
	if !input.EndsAt.After(input.StartsAt) {
		return utils.BadRequest(c, "ends_at must be after starts_at")
	}

	session := models.TrainingSession{
		CourseID:     input.CourseID,
		Title:        input.Title,
		Description:  input.Description,
		Location:     input.Location,
		StartsAt:     input.StartsAt,
		EndsAt:       input.EndsAt,
		Capacity:     input.Capacity,
		InstructorID: employeeID,
	}
	if err := sc.DB.Create(&session).Error; err != nil {
		return utils.InternalServerError(c, "Could not create session")
	}

	return utils.Created(c, session)
}

func (sc *SessionsController) Register(c *fiber.Ctx) error {
	employeeID, err := utils.ExtractEmployeeIDFromToken(c, sc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	sessionID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid session ID")
	}

	var session models.TrainingSession
	if err := sc.DB.First(&session, sessionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Session not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	if session.StartsAt.Before(time.Now()) {
		return utils.Conflict(c, "Session has already started")
	}

	var existing models.SessionAttendance
	if err := sc.DB.Where("session_id = ? AND employee_id = ?", sessionID, employeeID).
		First(&existing).Error; err == nil {
		return utils.Conflict(c, "Already registered for this session")
	}

	if session.Capacity > 0 {
		var registered int64
		sc.DB.Model(&models.SessionAttendance{}).Where("session_id = ?", sessionID).Count(&registered)
		if registered >= int64(session.Capacity) {
			return utils.Conflict(c, "Session is full")
		}
	}

	attendance := models.SessionAttendance{
		SessionID:  uint(sessionID),
		EmployeeID: employeeID,
		Status:     models.AttendanceRegistered,
	}
	if err := sc.DB.Create(&attendance).Error; err != nil {
		return utils.InternalServerError(c, "Could not register for session")
	}

	return utils.Created(c, attendance)
}

// UpdateAttendance bulk-marks attended/no_show after a session ran.
func (sc *SessionsController) UpdateAttendance(c *fiber.Ctx) error {
	sessionID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid session ID")
	}

	var input struct {
		Attended []uint `json:"attended"`
		NoShow   []uint `json:"no_show"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	var session models.TrainingSession
	if err := sc.DB.First(&session, sessionID).Error; err != nil {
		return utils.NotFound(c, "Session not found")
	}

	if len(input.Attended) > 0 {
		sc.DB.Model(&models.SessionAttendance{}).
			Where("session_id = ? AND employee_id IN ?", sessionID, input.Attended).
			Update("status", models.AttendanceAttended)
	}
	if len(input.NoShow) > 0 {
		sc.DB.Model(&models.SessionAttendance{}).
			Where("session_id = ? AND employee_id IN ?", sessionID, input.NoShow).
			Update("status", models.AttendanceNoShow)
	}

	var attendances []models.SessionAttendance
	sc.DB.Where("session_id = ?", sessionID).Find(&attendances)

	return utils.Success(c, fiber.StatusOK, attendances)
}
