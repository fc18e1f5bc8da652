package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/feedbackhub/feedback-api/internal/core/domain"
	"github.com/feedbackhub/feedback-api/internal/core/policy"
)

const defaultDenial = "your role cannot access this resource"

// RBAC enforces role-based access control and must run after Auth. message is
// returned with the 403; empty falls back to a generic denial.
func RBAC(message string, allowedRoles ...domain.Role) echo.MiddlewareFunc {
	if message == "" {
		message = defaultDenial
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := CurrentUser(c)
			if user == nil {
				return unauthenticated
			}
			if err := policy.RequireRole(user, allowedRoles...); err != nil {
				return domain.Denied(message)
			}
			return next(c)
		}
	}
}
