package auth

import (
	"fmt"
	"net/http"

	"github.com/Skotchmaster/bargain_shop/internal/domain"
	"github.com/Skotchmaster/bargain_shop/pkg/logging"
	"github.com/labstack/echo/v4"
)

// Policy maps an operation name to the roles allowed to call it.
type Policy map[string][]domain.Role

// RequireRoles must run after RequireAuth. It panics at route setup when op
// has no policy entry so an unlisted route can never be served.
func RequireRoles(policy Policy, op string) echo.MiddlewareFunc {
	allowed, ok := policy[op]
	if !ok {
		panic(fmt.Sprintf("auth: no role policy for operation %q", op))
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			l := logging.FromContext(c.Request().Context()).With("middleware", "require_roles", "op", op)

			user := CurrentUser(c)
			if user == nil || !user.Role.In(allowed...) {
				l.Warn("access_denied", "status", 403, "reason", "role not allowed")
				return echo.NewHTTPError(http.StatusForbidden, "Access denied")
			}
			return next(c)
		}
	}
}
