package httpserver

import (
	"net/http"

	"github.com/Skotchmaster/bargain_shop/internal/middleware/auth"
	"github.com/Skotchmaster/bargain_shop/internal/service"
	"github.com/Skotchmaster/bargain_shop/internal/transport"
	"github.com/Skotchmaster/bargain_shop/pkg/logging"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type OrderHTTP struct {
	Svc *service.OrderService
}

func (h *OrderHTTP) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.create")

	var req transport.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "create_order", "Invalid body", err)
	}

	order, err := h.Svc.CreateOrder(ctx, auth.CurrentUser(c).ID, req)
	if err != nil {
		return fail(l, "create_order", err)
	}

	l.Info("create_order_success", "order_id", order.ID.String())
	return c.JSON(http.StatusCreated, transport.OrderResponse{Msg: "Order placed successfully", Order: order})
}

func (h *OrderHTTP) ListMine(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.list")

	orders, err := h.Svc.ListForUser(ctx, auth.CurrentUser(c).ID)
	if err != nil {
		return fail(l, "list_orders", err)
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHTTP) ListVendor(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.list_vendor")

	orders, err := h.Svc.ListForVendor(ctx, auth.CurrentUser(c).ID)
	if err != nil {
		return fail(l, "list_vendor_orders", err)
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHTTP) Cancel(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.cancel")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(l, "cancel_order", "Invalid order id", err)
	}

	order, err := h.Svc.Cancel(ctx, auth.CurrentUser(c).ID, id)
	if err != nil {
		return fail(l, "cancel_order", err)
	}

	l.Info("cancel_order_success", "order_id", order.ID.String())
	return c.JSON(http.StatusOK, transport.OrderResponse{
		Msg: "Order cancelled successfully",
		Order: transport.CancelledOrder{
			ID:          order.ID,
			Status:      string(order.Status),
			CancelledAt: order.CancelledAt,
		},
	})
}
