package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/Skotchmaster/bargain_shop/internal/models"
	"github.com/Skotchmaster/bargain_shop/internal/service"
	"github.com/Skotchmaster/bargain_shop/pkg/logging"
	"github.com/labstack/echo/v4"
)

type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

// RequireAuth resolves the bearer token to a fresh account record. The token's
// role claim is never trusted on its own.
func RequireAuth(authn Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			l := logging.FromContext(ctx).With("middleware", "require_auth")

			token, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				l.Warn("auth_error", "status", 401, "reason", "no token")
				return echo.NewHTTPError(http.StatusUnauthorized, "No token, authorization denied")
			}

			user, err := authn.Authenticate(ctx, token)
			if err != nil {
				if errors.Is(err, service.ErrUnauthorized) {
					msg := service.Message(err, "Invalid token")
					l.Warn("auth_error", "status", 401, "reason", msg, "error", err)
					return echo.NewHTTPError(http.StatusUnauthorized, msg)
				}
				l.Error("auth_error", "status", 500, "reason", "cannot load user", "error", err)
				return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
			}

			setUser(c, user)
			c.SetRequest(c.Request().WithContext(logging.IntoContext(ctx,
				logging.FromContext(ctx).With("user_id", user.ID.String(), "role", string(user.Role)))))
			return next(c)
		}
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
