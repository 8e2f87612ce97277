package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/relaydesk/handover-api/internal/core/domain"
)

// RBAC enforces role-based access control. It must run after Auth, which
// injects the role into the context. A valid session with the wrong role is
// refused with 403, distinct from the 401 family.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(string)
			if _, ok := allowed[role]; !ok {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}

// RequireAdmin is the admin-only capability used by the user management
// routes.
func RequireAdmin() echo.MiddlewareFunc {
	return RBAC(domain.RoleAdmin)
}
