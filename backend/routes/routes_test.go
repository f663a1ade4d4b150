package routes

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lms/backend/config"
)

// newTestApp wires the route table without a database; every request here is
// rejected by the auth middleware before any handler touches storage.
func newTestApp() *fiber.App {
	app := fiber.New()
	SetupRoutes(app, Deps{Cfg: &config.Config{JWTSecret: "testsecret"}})
	return app
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	app := newTestApp()

	paths := []struct {
		method string
		path   string
	}{
		{"GET", "/api/profile"},
		{"GET", "/api/courses"},
		{"GET", "/api/courses/1"},
		{"GET", "/api/courses/1/progress"},
		{"POST", "/api/courses/1/enroll"},
		{"POST", "/api/courses/1/complete"},
		{"GET", "/api/enrollments"},
		{"GET", "/api/progress/overview"},
		{"GET", "/api/sessions"},
		{"GET", "/api/projects"},
		{"GET", "/api/admin/employees"},
		{"POST", "/api/admin/employees/import"},
		{"POST", "/api/admin/courses"},
		{"GET", "/api/admin/courses/1/analytics"},
	}

	for _, p := range paths {
		req := httptest.NewRequest(p.method, p.path, nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode, "%s %s", p.method, p.path)
	}
}

func TestProtectedRoutesRejectBadToken(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest("GET", "/api/progress/overview", nil)
	req.Header.Set("Authorization", "not.a.token")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestUnknownRouteIs404(t *testing.T) {
	app := newTestApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/api/nope", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
