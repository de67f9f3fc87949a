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

type CartHTTP struct {
	Svc    *service.CartService
	Orders *service.OrderService
}

func (h *CartHTTP) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.get")

	view, err := h.Svc.GetCart(ctx, auth.CurrentUser(c).ID)
	if err != nil {
		return fail(l, "get_cart", err)
	}
	return c.JSON(http.StatusOK, view)
}

func (h *CartHTTP) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add")

	var req transport.AddToCartRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "add_to_cart", "Invalid body", err)
	}

	item, err := h.Svc.AddToCart(ctx, auth.CurrentUser(c).ID, req)
	if err != nil {
		return fail(l, "add_to_cart", err)
	}

	l.Info("add_to_cart_success", "product_id", item.ProductID.String(), "quantity", item.Quantity)
	return c.JSON(http.StatusOK, item)
}

func (h *CartHTTP) RemoveFromCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.remove")

	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		return badRequest(l, "remove_from_cart", "Invalid product id", err)
	}
	if err := h.Svc.RemoveFromCart(ctx, auth.CurrentUser(c).ID, productID); err != nil {
		return fail(l, "remove_from_cart", err)
	}
	return c.JSON(http.StatusOK, transport.MsgResponse{Msg: "Removed from cart"})
}

func (h *CartHTTP) ClearCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.clear")

	if err := h.Svc.ClearCart(ctx, auth.CurrentUser(c).ID); err != nil {
		return fail(l, "clear_cart", err)
	}
	return c.JSON(http.StatusOK, transport.MsgResponse{Msg: "Cart cleared"})
}

func (h *CartHTTP) Checkout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.checkout")

	var req transport.CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "checkout", "Invalid body", err)
	}

	order, err := h.Orders.Checkout(ctx, auth.CurrentUser(c).ID, req)
	if err != nil {
		return fail(l, "checkout", err)
	}

	l.Info("checkout_success", "order_id", order.ID.String(), "total", order.TotalAmount.String())
	return c.JSON(http.StatusCreated, transport.OrderResponse{Msg: "Order placed successfully", Order: order})
}
