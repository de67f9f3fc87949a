package httpserver

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/Skotchmaster/bargain_shop/internal/search"
	"github.com/Skotchmaster/bargain_shop/internal/service"
	"github.com/labstack/echo/v4"
)

var statusByKind = []struct {
	kind error
	code int
}{
	{service.ErrValidation, http.StatusBadRequest},
	{service.ErrUnauthorized, http.StatusUnauthorized},
	{service.ErrForbidden, http.StatusForbidden},
	{service.ErrNotFound, http.StatusNotFound},
	{service.ErrConflict, http.StatusConflict},
}

// fail logs err under op and converts it into the HTTP error the client sees.
func fail(l *slog.Logger, op string, err error) error {
	for _, s := range statusByKind {
		if errors.Is(err, s.kind) {
			msg := service.Message(err, http.StatusText(s.code))
			l.Warn(op+"_error", "status", s.code, "reason", msg, "error", err)
			return echo.NewHTTPError(s.code, msg)
		}
	}
	if errors.Is(err, search.ErrDisabled) {
		l.Warn(op+"_error", "status", 503, "reason", "search disabled", "error", err)
		return echo.NewHTTPError(http.StatusServiceUnavailable, "Search is not available")
	}

	l.Error(op+"_error", "status", 500, "reason", "unexpected", "error", err)
	return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
}

func badRequest(l *slog.Logger, op, reason string, err error) error {
	l.Warn(op+"_error", "status", 400, "reason", reason, "error", err)
	return echo.NewHTTPError(http.StatusBadRequest, reason)
}

// ErrorHandler renders every error as {"msg": "..."}.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := "Server error"

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		switch m := he.Message.(type) {
		case string:
			msg = m
		case error:
			msg = m.Error()
		default:
			msg = fmt.Sprint(m)
		}
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}
	_ = c.JSON(code, map[string]string{"msg": msg})
}
