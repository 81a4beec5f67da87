package main

import (
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestSetupRoutesRegistersSurface(t *testing.T) {
	app := fiber.New()
	setupRoutes(app)

	registered := make(map[string]bool)
	for _, routes := range app.Stack() {
		for _, r := range routes {
			// Group roots register with a trailing slash.
			path := strings.TrimSuffix(r.Path, "/")
			if path == "" {
				path = "/"
			}
			registered[r.Method+" "+path] = true
		}
	}

	wanted := []string{
		"POST /api/auth/register",
		"POST /api/auth/login",
		"GET /api/me",
		"GET /api/submissions/my",
		"POST /api/submissions",
		"GET /api/submissions/:id",
		"GET /api/admin/submissions",
		"GET /api/admin/submissions/expiring",
		"POST /api/admin/submissions/bulk-delete",
		"GET /api/admin/submissions/:id",
		"PUT /api/admin/submissions/:id/status",
		"POST /api/admin/submissions/:id/renew",
		"PUT /api/admin/submissions/:id/profile-name",
		"DELETE /api/admin/submissions/:id",
		"GET /api/admin/resellers",
		"GET /api/admin/stats",
		"POST /api/admin/import",
		"GET /api/admin/export",
		"GET /api/admin/transactions",
		"POST /api/admin/transactions",
		"GET /api/admin/transactions/summary",
		"DELETE /api/admin/transactions/:id",
		"GET /api/admin/customers",
		"POST /api/admin/customers",
		"GET /api/admin/invoices",
		"POST /api/admin/invoices",
	}
	for _, want := range wanted {
		assert.True(t, registered[want], "route not registered: %s", want)
	}
}
