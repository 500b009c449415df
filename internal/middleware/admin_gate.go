package middleware

import (
	"tireshop/internal/models"

	"github.com/gofiber/fiber/v2"
)

// AdminRequired guards privileged endpoints. It must run after AuthRequired,
// which stores the session role in Locals. A request with no session role is
// rejected with 401 and a session with any other role with 403; the wrapped
// handler is never invoked in either case.
//
// The gate is registered per route rather than per resource, so partially
// secured resources (public reads, admin-only mutations) stay possible.
func AdminRequired(c *fiber.Ctx) error {
	role, ok := c.Locals("role").(string)
	if !ok || role == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"error":   "Unauthorized: authentication required",
		})
	}
	if role != models.RoleAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"success": false,
			"error":   "Unauthorized: admin role required",
		})
	}
	return c.Next()
}
