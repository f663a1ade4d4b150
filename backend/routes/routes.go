package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"lms/backend/config"
	"lms/backend/controllers"
	"lms/backend/middleware"
	"lms/backend/services/aigen"
	emailsvc "lms/backend/services/email"
)

type Deps struct {
	DB     *gorm.DB
	Cfg    *config.Config
	Mailer emailsvc.Service
	AI     *aigen.Client
}

func SetupRoutes(app *fiber.App, deps Deps) {
	db, cfg := deps.DB, deps.Cfg

	// Auth routes
	authController := controllers.NewAuthController(db, cfg)
	app.Post("/api/auth/register", authController.Register)
	app.Post("/api/auth/login", authController.Login)

	// Middleware
	authMiddleware := middleware.AuthMiddleware(cfg)
	adminMiddleware := middleware.AdminMiddleware(db, cfg)

	// Employee routes
	employeesController := controllers.NewEmployeesController(db, cfg, deps.Mailer)
	app.Get("/api/profile", authMiddleware, employeesController.GetProfile)
	app.Put("/api/profile", authMiddleware, employeesController.UpdateProfile)

	adminEmployees := app.Group("/api/admin/employees", authMiddleware, adminMiddleware)
	adminEmployees.Get("/", employeesController.ListEmployees)
	adminEmployees.Get("/:id", employeesController.GetEmployee)
	adminEmployees.Put("/:id/status", employeesController.UpdateEmployeeStatus)
	adminEmployees.Post("/import", employeesController.ImportEmployees)

	// Course routes
	coursesController := controllers.NewCoursesController(db, cfg, deps.AI)
	courses := app.Group("/api/courses", authMiddleware)
	courses.Get("/", coursesController.GetCatalog)
	courses.Get("/:id", coursesController.GetCourseDetails)

	adminCourses := app.Group("/api/admin/courses", authMiddleware, adminMiddleware)
	adminCourses.Post("/", coursesController.CreateCourse)
	adminCourses.Put("/:id", coursesController.UpdateCourse)
	adminCourses.Post("/:id/modules", coursesController.AddModule)
	adminCourses.Put("/:id/modules/:moduleId", coursesController.UpdateModule)
	adminCourses.Post("/:id/modules/generate", coursesController.GenerateModules)
	adminCourses.Post("/:id/assessments", coursesController.AddAssessmentTemplate)
	adminCourses.Put("/:id/assessments/:templateId", coursesController.UpdateAssessmentTemplate)

	// Enrollment and progress routes
	enrollmentsController := controllers.NewEnrollmentsController(db, cfg, deps.Mailer)
	app.Get("/api/enrollments", authMiddleware, enrollmentsController.GetMyEnrollments)
	courses.Post("/:id/enroll", enrollmentsController.Enroll)
	courses.Post("/:id/modules/:moduleId/progress", enrollmentsController.UpdateModuleProgress)
	courses.Post("/:id/assessments/:templateId/results", enrollmentsController.SubmitAssessmentResult)
	courses.Post("/:id/complete", enrollmentsController.CompleteCourse)

	progressController := controllers.NewProgressController(db, cfg)
	courses.Get("/:id/progress", progressController.GetCourseProgress)
	app.Get("/api/progress/overview", authMiddleware, progressController.GetOverview)
	adminCourses.Get("/:id/analytics", progressController.GetCourseAnalytics)

	// Training session routes
	sessionsController := controllers.NewSessionsController(db, cfg)
	app.Get("/api/sessions", authMiddleware, sessionsController.ListUpcoming)
	app.Post("/api/sessions/:id/register", authMiddleware, sessionsController.Register)

	adminSessions := app.Group("/api/admin/sessions", authMiddleware, adminMiddleware)
	adminSessions.Post("/", sessionsController.CreateSession)
	adminSessions.Put("/:id/attendance", sessionsController.UpdateAttendance)

	// Project assignment routes
	projectsController := controllers.NewProjectsController(db, cfg, deps.Mailer)
	app.Get("/api/projects", authMiddleware, projectsController.GetMyProjects)
	app.Post("/api/projects/:id/submit", authMiddleware, projectsController.SubmitProject)

	adminProjects := app.Group("/api/admin/projects", authMiddleware, adminMiddleware)
	adminProjects.Post("/", projectsController.AssignProject)
	adminProjects.Put("/:id/review", projectsController.ReviewProject)
}
