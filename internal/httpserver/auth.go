package httpserver

import (
	"net/http"

	"github.com/Skotchmaster/bargain_shop/internal/middleware/auth"
	"github.com/Skotchmaster/bargain_shop/internal/service"
	"github.com/Skotchmaster/bargain_shop/internal/transport"
	"github.com/Skotchmaster/bargain_shop/pkg/logging"
	"github.com/labstack/echo/v4"
)

type AuthHTTP struct {
	Svc *service.AuthService
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.register")

	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "register", "Invalid body", err)
	}

	user, err := h.Svc.Register(ctx, req)
	if err != nil {
		return fail(l, "register", err)
	}

	l.Info("register_success", "user_id", user.ID.String(), "role", string(user.Role))
	return c.JSON(http.StatusCreated, transport.RegisterResponse{
		Msg:  "Registration successful",
		User: transport.NewUserView(user, true),
	})
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "login", "Invalid body", err)
	}

	res, err := h.Svc.Login(ctx, req.Email, req.Password)
	if err != nil {
		return fail(l, "login", err)
	}

	l.Info("login_success", "user_id", res.User.ID.String())
	return c.JSON(http.StatusOK, transport.LoginResponse{
		Token: res.Token,
		Role:  string(res.User.Role),
		User:  transport.NewUserView(res.User, false),
	})
}

func (h *AuthHTTP) Me(c echo.Context) error {
	return c.JSON(http.StatusOK, auth.CurrentUser(c))
}

// Welcome answers the role probe endpoints.
func Welcome(msg string) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, transport.MsgResponse{Msg: msg})
	}
}
