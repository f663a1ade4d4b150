package controllers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"lms/backend/config"
	"lms/backend/models"
	"lms/backend/progress"
	"lms/backend/services/aigen"
	"lms/backend/utils"
)

type CoursesController struct {
	DB  *gorm.DB
	Cfg *config.Config
	AI  *aigen.Client
}

func NewCoursesController(db *gorm.DB, cfg *config.Config, ai *aigen.Client) *CoursesController {
	return &CoursesController{DB: db, Cfg: cfg, AI: ai}
}

// GetCatalog lists published courses with optional search filters.
func (cc *CoursesController) GetCatalog(c *fiber.Ctx) error {
	search := c.Query("search")
	department := c.Query("department")
	difficulty := c.Query("difficulty")

	query := cc.DB.Model(&models.Course{}).Where("published = ?", true)

	if search != "" {
		query = query.Where("title ILIKE ? OR short_desc ILIKE ?", "%"+search+"%", "%"+search+"%")
	}
	if department != "" {
		query = query.Where("department = ?", department)
	}
	if difficulty != "" {
		query = query.Where("difficulty = ?", difficulty)
	}

	var courses []models.Course
	if err := query.Order("created_at DESC").Find(&courses).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	var result []fiber.Map
	for _, course := range courses {
		var moduleCount, templateCount int64
		cc.DB.Model(&models.Module{}).Where("course_id = ?", course.ID).Count(&moduleCount)
		cc.DB.Model(&models.AssessmentTemplate{}).Where("course_id = ?", course.ID).Count(&templateCount)

		result = append(result, fiber.Map{
			"id":              course.ID,
			"title":           course.Title,
			"short_desc":      course.ShortDesc,
			"department":      course.Department,
			"difficulty":      course.Difficulty,
			"completion_rule": course.CompletionRule,
			"modules":         moduleCount,
			"assessments":     templateCount,
		})
	}

	return c.JSON(result)
}

// GetCourseDetails returns the course with its modules, assessment templates
// and the caller's enrollment and per-category progress.
func (cc *CoursesController) GetCourseDetails(c *fiber.Ctx) error {
	employeeID, err := utils.ExtractEmployeeIDFromToken(c, cc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	var course models.Course
	if err := cc.DB.Preload("Modules", func(db *gorm.DB) *gorm.DB {
		return db.Order("sequence_order asc")
	}).Preload("Assessments").First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Course not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	var enrollment models.Enrollment
	enrolled := cc.DB.Where("employee_id = ? AND course_id = ?", employeeID, courseID).
		First(&enrollment).Error == nil

	var records []models.ModuleProgress
	cc.DB.Where("employee_id = ? AND course_id = ?", employeeID, courseID).Find(&records)

	var results []models.AssessmentResult
	cc.DB.Where("employee_id = ? AND course_id = ?", employeeID, courseID).Find(&results)

	moduleCat := progress.Modules(course.Modules, records)
	assessCat := progress.Assessments(course.Assessments, results)

	return c.JSON(fiber.Map{
		"course": fiber.Map{
			"id":              course.ID,
			"title":           course.Title,
			"short_desc":      course.ShortDesc,
			"description":     course.Description,
			"department":      course.Department,
			"difficulty":      course.Difficulty,
			"completion_rule": course.CompletionRule,
			"minimum_score":   course.MinimumScore,
			"modules":         course.Modules,
			"assessments":     course.Assessments,
		},
		"is_enrolled": enrolled,
		"enrollment":  enrollment,
		"progress": fiber.Map{
			"modules":     moduleCat,
			"assessments": assessCat,
			"overall":     progress.Overall(moduleCat, assessCat),
		},
	})
}

type CourseInput struct {
	Title          string  `json:"title" validate:"required"`
	ShortDesc      string  `json:"short_desc"`
	Description    string  `json:"description"`
	Department     string  `json:"department"`
	Difficulty     string  `json:"difficulty" validate:"omitempty,oneof=beginner intermediate advanced"`
	CompletionRule string  `json:"completion_rule" validate:"omitempty,oneof=pass_all_assessments pass_minimum_percentage pass_mandatory_only"`
	MinimumScore   float64 `json:"minimum_score" validate:"omitempty,gte=0,lte=100"`
	Published      bool    `json:"published"`
}

func (cc *CoursesController) CreateCourse(c *fiber.Ctx) error {
	employeeID, err := utils.ExtractEmployeeIDFromToken(c, cc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var input CourseInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if fields := utils.ValidateStruct(input); fields != nil {
		return utils.ValidationError(c, fields)
	}

	course := models.Course{
		Title:          input.Title,
		ShortDesc:      input.ShortDesc,
		Description:    input.Description,
		Department:     input.Department,
		Difficulty:     input.Difficulty,
		CompletionRule: input.CompletionRule,
		MinimumScore:   input.MinimumScore,
		Published:      input.Published,
		AuthorID:       employeeID,
	}
	if course.CompletionRule == "" {
		course.CompletionRule = models.RulePassAllAssessments
	}
	if course.MinimumScore == 0 {
		course.MinimumScore = progress.DefaultPassingScore
	}

	if err := cc.DB.Create(&course).Error; err != nil {
		return utils.InternalServerError(c, "Could not create course")
	}

	return utils.Created(c, course)
}

func (cc *CoursesController) UpdateCourse(c *fiber.Ctx) error {
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	var input CourseInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	var course models.Course
	if err := cc.DB.First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Course not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	if input.Title != "" {
		course.Title = input.Title
	}
	if input.ShortDesc != "" {
		course.ShortDesc = input.ShortDesc
	}
	if input.Description != "" {
		course.Description = input.Description
	}
	if input.Department != "" {
		course.Department = input.Department
	}
	if input.Difficulty != "" {
		course.Difficulty = input.Difficulty
	}
	if input.CompletionRule != "" {
		course.CompletionRule = input.CompletionRule
	}
	if input.MinimumScore != 0 {
		course.MinimumScore = input.MinimumScore
	}
	course.Published = input.Published

	if err := cc.DB.Save(&course).Error; err != nil {
		return utils.InternalServerError(c, "Could not update course")
	}

	return utils.Success(c, fiber.StatusOK, course)
}

func (cc *CoursesController) AddModule(c *fiber.Ctx) error {
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	var input struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Content     string `json:"content"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.Title == "" {
		return utils.BadRequest(c, "Module title is required")
	}

	var course models.Course
	if err := cc.DB.First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Course not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	var moduleCount int64
	cc.DB.Model(&models.Module{}).Where("course_id = ?", courseID).Count(&moduleCount)

	module := models.Module{
		CourseID:      uint(courseID),
		Title:         input.Title,
		Description:   input.Description,
		Content:       input.Content,
		SequenceOrder: int(moduleCount) + 1,
	}
	if err := cc.DB.Create(&module).Error; err != nil {
		return utils.InternalServerError(c, "Could not create module")
	}

	return utils.Created(c, module)
}

func (cc *CoursesController) UpdateModule(c *fiber.Ctx) error {
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}
	moduleID, err := strconv.Atoi(c.Params("moduleId"))
	if err != nil {
		return utils.BadRequest(c, "Invalid module ID")
	}

	var input struct {
		Title         string `json:"title"`
		Description   string `json:"description"`
		Content       string `json:"content"`
		SequenceOrder int    `json:"sequence_order"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	var module models.Module
	if err := cc.DB.Where("id = ? AND course_id = ?", moduleID, courseID).First(&module).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Module not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	if input.Title != "" {
		module.Title = input.Title
	}
	if input.Description != "" {
		module.Description = input.Description
	}
	if input.Content != "" {
		module.Content = input.Content
	}
	if input.SequenceOrder != 0 {
		module.SequenceOrder = input.SequenceOrder
	}

	if err := cc.DB.Save(&module).Error; err != nil {
		return utils.InternalServerError(c, "Could not update module")
	}

	return utils.Success(c, fiber.StatusOK, module)
}

type AssessmentTemplateInput struct {
	Title        string  `json:"title" validate:"required"`
	Description  string  `json:"description"`
	Kind         string  `json:"kind" validate:"omitempty,oneof=quiz assignment project"`
	PassingScore float64 `json:"passing_score" validate:"omitempty,gte=0,lte=100"`
	Mandatory    *bool   `json:"mandatory"`
}

func (cc *CoursesController) AddAssessmentTemplate(c *fiber.Ctx) error {
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	var input AssessmentTemplateInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if fields := utils.ValidateStruct(input); fields != nil {
		return utils.ValidationError(c, fields)
	}

	var course models.Course
	if err := cc.DB.First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Course not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	template := models.AssessmentTemplate{
		CourseID:     uint(courseID),
		Title:        input.Title,
		Description:  input.Description,
		Kind:         input.Kind,
		PassingScore: input.PassingScore,
		Mandatory:    true,
	}
	if template.Kind == "" {
		template.Kind = models.AssessmentQuiz
	}
	if template.PassingScore == 0 {
		template.PassingScore = progress.DefaultPassingScore
	}
	if input.Mandatory != nil {
		template.Mandatory = *input.Mandatory
	}

	if err := cc.DB.Create(&template).Error; err != nil {
		return utils.InternalServerError(c, "Could not create assessment template")
	}

	return utils.Created(c, template)
}

func (cc *CoursesController) UpdateAssessmentTemplate(c *fiber.Ctx) error {
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}
	templateID, err := strconv.Atoi(c.Params("templateId"))
	if err != nil {
		return utils.BadRequest(c, "Invalid template ID")
	}

	var input AssessmentTemplateInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	var template models.AssessmentTemplate
	if err := cc.DB.Where("id = ? AND course_id = ?", templateID, courseID).First(&template).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Assessment template not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	if input.Title != "" {
		template.Title = input.Title
	}
	if input.Description != "" {
		template.Description = input.Description
	}
	if input.Kind != "" {
		template.Kind = input.Kind
	}
	if input.PassingScore != 0 {
		template.PassingScore = input.PassingScore
	}
	if input.Mandatory != nil {
		template.Mandatory = *input.Mandatory
	}

	if err := cc.DB.Save(&template).Error; err != nil {
		return utils.InternalServerError(c, "Could not update assessment template")
	}

	return utils.Success(c, fiber.StatusOK, template)
}

// GenerateModules asks the AI service for draft modules and stores them on
// the course. Drafts land unpublished course content for the author to edit.
func (cc *CoursesController) GenerateModules(c *fiber.Ctx) error {
	if cc.AI == nil || !cc.AI.Enabled() {
		return utils.BadGateway(c, "AI content generation is not configured")
	}

	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	var input struct {
		Topic string `json:"topic"`
		Count int    `json:"count"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	var course models.Course
	if err := cc.DB.First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Course not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	topic := input.Topic
	if topic == "" {
		topic = course.Title
	}

	drafts, err := cc.AI.GenerateModules(c.Context(), course.Title, topic, input.Count)
	if err != nil {
		return utils.BadGateway(c, "AI content generation failed")
	}

	var moduleCount int64
	cc.DB.Model(&models.Module{}).Where("course_id = ?", courseID).Count(&moduleCount)

	var created []models.Module
	for i, draft := range drafts {
		module := models.Module{
			CourseID:      course.ID,
			Title:         draft.Title,
			Description:   draft.Description,
			Content:       draft.Content,
			SequenceOrder: int(moduleCount) + i + 1,
		}
		if err := cc.DB.Create(&module).Error; err != nil {
			return utils.InternalServerError(c, "Could not save generated module")
		}
		created = append(created, module)
	}

	return utils.Created(c, fiber.Map{
		"generated": len(created),
		"modules":   created,
	})
}
