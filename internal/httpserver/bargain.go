package httpserver

import (
	"net/http"

	"github.com/Skotchmaster/bargain_shop/internal/domain"
	"github.com/Skotchmaster/bargain_shop/internal/middleware/auth"
	"github.com/Skotchmaster/bargain_shop/internal/models"
	"github.com/Skotchmaster/bargain_shop/internal/service"
	"github.com/Skotchmaster/bargain_shop/internal/transport"
	"github.com/Skotchmaster/bargain_shop/pkg/logging"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type BargainHTTP struct {
	Svc *service.BargainService
}

func (h *BargainHTTP) Start(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "bargain.start")

	var req transport.StartBargainRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "start_bargain", "Invalid body", err)
	}

	b, err := h.Svc.Start(ctx, auth.CurrentUser(c), req)
	if err != nil {
		return fail(l, "start_bargain", err)
	}

	l.Info("start_bargain_success", "bargain_id", b.ID.String())
	return c.JSON(http.StatusOK, b)
}

func (h *BargainHTTP) Message(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "bargain.message")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(l, "bargain_message", "Invalid bargain id", err)
	}
	var req transport.BargainMessageRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "bargain_message", "Invalid body", err)
	}

	b, err := h.Svc.Message(ctx, auth.CurrentUser(c), id, req)
	if err != nil {
		return fail(l, "bargain_message", err)
	}
	return c.JSON(http.StatusOK, b)
}

func (h *BargainHTTP) Counter(c echo.Context) error {
	return h.withPrice(c, "bargain_counter", func(u *models.User, id uuid.UUID, req transport.PriceRequest) (*models.Bargain, error) {
		return h.Svc.Counter(c.Request().Context(), u, id, req.Price)
	})
}

func (h *BargainHTTP) Accept(c echo.Context) error {
	return h.withPrice(c, "bargain_accept", func(u *models.User, id uuid.UUID, req transport.PriceRequest) (*models.Bargain, error) {
		return h.Svc.Accept(c.Request().Context(), u, id, "", req.Price)
	})
}

func (h *BargainHTTP) CustomerAccept(c echo.Context) error {
	return h.withPrice(c, "bargain_customer_accept", func(u *models.User, id uuid.UUID, req transport.PriceRequest) (*models.Bargain, error) {
		return h.Svc.Accept(c.Request().Context(), u, id, domain.PartyCustomer, req.Price)
	})
}

func (h *BargainHTTP) Reject(c echo.Context) error {
	return h.withPrice(c, "bargain_reject", func(u *models.User, id uuid.UUID, _ transport.PriceRequest) (*models.Bargain, error) {
		return h.Svc.Reject(c.Request().Context(), u, id, domain.PartyVendor)
	})
}

func (h *BargainHTTP) CustomerReject(c echo.Context) error {
	return h.withPrice(c, "bargain_customer_reject", func(u *models.User, id uuid.UUID, _ transport.PriceRequest) (*models.Bargain, error) {
		return h.Svc.Reject(c.Request().Context(), u, id, domain.PartyCustomer)
	})
}

func (h *BargainHTTP) Get(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "bargain.get")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(l, "get_bargain", "Invalid bargain id", err)
	}

	b, err := h.Svc.Get(ctx, auth.CurrentUser(c), id)
	if err != nil {
		return fail(l, "get_bargain", err)
	}
	return c.JSON(http.StatusOK, b)
}

func (h *BargainHTTP) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "bargain.delete")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(l, "delete_bargain", "Invalid bargain id", err)
	}
	if err := h.Svc.Delete(ctx, auth.CurrentUser(c), id); err != nil {
		return fail(l, "delete_bargain", err)
	}

	l.Info("delete_bargain_success", "bargain_id", id.String())
	return c.JSON(http.StatusOK, transport.MsgResponse{Msg: "Bargain deleted successfully"})
}

func (h *BargainHTTP) ListCustomer(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "bargain.list_customer")

	items, err := h.Svc.ListForCustomer(ctx, auth.CurrentUser(c).ID)
	if err != nil {
		return fail(l, "list_bargains", err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *BargainHTTP) ListVendor(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "bargain.list_vendor")

	items, err := h.Svc.ListForVendor(ctx, auth.CurrentUser(c).ID)
	if err != nil {
		return fail(l, "list_bargains", err)
	}
	return c.JSON(http.StatusOK, items)
}

type priceStep func(u *models.User, id uuid.UUID, req transport.PriceRequest) (*models.Bargain, error)

// withPrice handles the thread transitions whose body is at most {"price": n}.
func (h *BargainHTTP) withPrice(c echo.Context, op string, step priceStep) error {
	l := logging.FromContext(c.Request().Context()).With("handler", op)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(l, op, "Invalid bargain id", err)
	}
	var req transport.PriceRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, op, "Invalid body", err)
	}

	b, err := step(auth.CurrentUser(c), id, req)
	if err != nil {
		return fail(l, op, err)
	}

	l.Info(op+"_success", "bargain_id", b.ID.String(), "status", string(b.Status))
	return c.JSON(http.StatusOK, b)
}
