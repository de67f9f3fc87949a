package httpserver

import (
	"net/http"
	"testing"

	"github.com/Skotchmaster/bargain_shop/pkg/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type orderBody struct {
	Msg   string `json:"msg"`
	Order struct {
		ID          string  `json:"id"`
		TotalAmount float64 `json:"totalAmount"`
		Status      string  `json:"status"`
		Payment     string  `json:"payment"`
		Products    []struct {
			Name     string  `json:"name"`
			Price    float64 `json:"price"`
			Quantity int     `json:"quantity"`
		} `json:"products"`
	} `json:"order"`
}

func TestCartCheckoutWithBargain(t *testing.T) {
	env := newTestEnv(t)
	vendor, _ := env.signup("v@shop.io", "vendor")
	customer, _ := env.signup("c@shop.io", "customer")
	rug := env.listProduct(vendor, "Rug", 1000)
	mat := env.listProduct(vendor, "Mat", 50)

	rec := env.do(http.MethodPost, "/api/bargains/start", customer, map[string]any{"productId": rug, "price": 750})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	bargainID := decode[bargainBody](t, rec).ID

	requireMsg(t, env.do(http.MethodPost, "/api/cart", customer, map[string]any{"productId": rug, "bargainId": bargainID}),
		http.StatusBadRequest, "Bargain is not an accepted deal for this product")

	rec = env.do(http.MethodPost, "/api/bargains/"+bargainID+"/accept", vendor, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	require.Equal(t, http.StatusOK, env.do(http.MethodPost, "/api/cart", customer, map[string]any{"productId": rug, "bargainId": bargainID}).Code)
	require.Equal(t, http.StatusOK, env.do(http.MethodPost, "/api/cart", customer, map[string]any{"productId": mat, "quantity": 2}).Code)

	rec = env.do(http.MethodGet, "/api/cart", customer, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	cart := decode[struct {
		Items []map[string]any `json:"items"`
		Total float64          `json:"total"`
	}](t, rec)
	assert.Len(t, cart.Items, 2)
	assert.Equal(t, 850.0, cart.Total)

	rec = env.do(http.MethodPost, "/api/cart/checkout", customer, map[string]any{
		"shipping": map[string]string{"name": "C", "address": "1 Main St", "city": "Pune", "pincode": "411001"},
		"payment":  "UPI",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	placed := decode[orderBody](t, rec)
	assert.Equal(t, "Order placed successfully", placed.Msg)
	assert.Equal(t, 850.0, placed.Order.TotalAmount)
	assert.Equal(t, "UPI", placed.Order.Payment)
	assert.Len(t, placed.Order.Products, 2)

	rec = env.do(http.MethodGet, "/api/cart", customer, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[struct {
		Items []map[string]any `json:"items"`
	}](t, rec).Items)

	requireMsg(t, env.do(http.MethodPost, "/api/cart/checkout", customer, map[string]any{}), http.StatusBadRequest, "Cart is empty")

	rec = env.do(http.MethodGet, "/api/orders/vendor", vendor, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]map[string]any](t, rec), 1)

	assert.NotEmpty(t, env.Events.Events(events.TopicOrders))
}

func TestCartRemoveAndClear(t *testing.T) {
	env := newTestEnv(t)
	vendor, _ := env.signup("v@shop.io", "vendor")
	customer, _ := env.signup("c@shop.io", "customer")
	mat := env.listProduct(vendor, "Mat", 50)

	requireMsg(t, env.do(http.MethodDelete, "/api/cart/"+mat, customer, nil), http.StatusNotFound, "Product not in cart")

	require.Equal(t, http.StatusOK, env.do(http.MethodPost, "/api/cart", customer, map[string]any{"productId": mat}).Code)
	requireMsg(t, env.do(http.MethodDelete, "/api/cart/"+mat, customer, nil), http.StatusOK, "Removed from cart")

	require.Equal(t, http.StatusOK, env.do(http.MethodPost, "/api/cart", customer, map[string]any{"productId": mat}).Code)
	requireMsg(t, env.do(http.MethodDelete, "/api/cart", customer, nil), http.StatusOK, "Cart cleared")

	requireMsg(t, env.do(http.MethodPost, "/api/cart", customer, map[string]any{"productId": mat, "quantity": -3}),
		http.StatusBadRequest, "Quantity must be more than zero")
}

func TestOrderCreateAndCancel(t *testing.T) {
	env := newTestEnv(t)
	customer, _ := env.signup("c@shop.io", "customer")
	other, _ := env.signup("o@shop.io", "customer")

	requireMsg(t, env.do(http.MethodPost, "/api/orders", customer, map[string]any{"products": []any{}}),
		http.StatusBadRequest, "No products in order")
	requireMsg(t, env.do(http.MethodPost, "/api/orders", customer, map[string]any{
		"products": []any{map[string]any{"name": "Pot", "price": 10, "quantity": 1}},
		"payment":  "Bitcoin",
	}), http.StatusBadRequest, "Invalid payment method")

	rec := env.do(http.MethodPost, "/api/orders", customer, map[string]any{
		"products":    []any{map[string]any{"name": "Pot", "price": 10, "quantity": 3}},
		"totalAmount": 30,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[orderBody](t, rec)
	assert.Equal(t, "Pending", created.Order.Status)
	assert.Equal(t, "COD", created.Order.Payment)

	rec = env.do(http.MethodGet, "/api/orders", customer, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]map[string]any](t, rec), 1)

	cancelPath := "/api/orders/" + created.Order.ID + "/cancel"
	requireMsg(t, env.do(http.MethodPatch, cancelPath, other, nil), http.StatusForbidden, "Not authorized to cancel this order")

	rec = env.do(http.MethodPatch, cancelPath, customer, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	cancelled := decode[struct {
		Msg   string         `json:"msg"`
		Order map[string]any `json:"order"`
	}](t, rec)
	assert.Equal(t, "Order cancelled successfully", cancelled.Msg)
	assert.Equal(t, "Cancelled", cancelled.Order["status"])
	assert.NotNil(t, cancelled.Order["cancelledAt"])

	requireMsg(t, env.do(http.MethodPatch, cancelPath, customer, nil), http.StatusBadRequest,
		"Cannot cancel order with status: Cancelled. Only pending or processing orders can be cancelled.")
	requireMsg(t, env.do(http.MethodPatch, "/api/orders/00000000-0000-0000-0000-000000000001/cancel", customer, nil),
		http.StatusNotFound, "Order not found")
}
