package auth

import (
	"github.com/Skotchmaster/bargain_shop/internal/models"
	"github.com/labstack/echo/v4"
)

const userKey = "user"

func setUser(c echo.Context, u *models.User) {
	c.Set(userKey, u)
}

// CurrentUser returns the account RequireAuth attached, or nil on public routes.
func CurrentUser(c echo.Context) *models.User {
	u, _ := c.Get(userKey).(*models.User)
	return u
}
