package service

import (
	"context"
	"testing"

	"github.com/Skotchmaster/bargain_shop/internal/domain"
	"github.com/Skotchmaster/bargain_shop/internal/models"
	"github.com/Skotchmaster/bargain_shop/internal/transport"
	"github.com/Skotchmaster/bargain_shop/pkg/events"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCart_BargainPriceAndCheckout(t *testing.T) {
	f := startBargain(t)
	ctx := context.Background()
	env := f.env
	mug := env.product(t, f.vendor, "Mug", 50)

	_, err := env.Cart.AddToCart(ctx, f.customer.ID, transport.AddToCartRequest{
		ProductID: f.product.ID.String(), BargainID: f.bargain.ID.String(),
	})
	requireKind(t, err, ErrValidation, "Bargain is not an accepted deal for this product")

	_, err = env.Bargains.Accept(ctx, f.vendor, f.bargain.ID, "", decimal.NullDecimal{})
	require.NoError(t, err)

	_, err = env.Cart.AddToCart(ctx, f.customer.ID, transport.AddToCartRequest{
		ProductID: mug.ID.String(), BargainID: f.bargain.ID.String(),
	})
	requireKind(t, err, ErrValidation, "")

	_, err = env.Cart.AddToCart(ctx, f.customer.ID, transport.AddToCartRequest{
		ProductID: f.product.ID.String(), BargainID: f.bargain.ID.String(),
	})
	require.NoError(t, err)
	item, err := env.Cart.AddToCart(ctx, f.customer.ID, transport.AddToCartRequest{ProductID: mug.ID.String(), Quantity: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, item.Quantity)

	view, err := env.Cart.GetCart(ctx, f.customer.ID)
	require.NoError(t, err)
	require.Len(t, view.Items, 2)
	assert.True(t, decimal.NewFromInt(800).Equal(view.Items[0].UnitPrice))
	assert.True(t, decimal.NewFromInt(100).Equal(view.Items[1].LineTotal))
	assert.True(t, decimal.NewFromInt(900).Equal(view.Total))

	order, err := env.Orders.Checkout(ctx, f.customer.ID, transport.CheckoutRequest{
		Shipping: models.Shipping{Name: "C", Address: "1 Road", City: "Pune", Pincode: "411001"},
		Payment:  "UPI",
	})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(900).Equal(order.TotalAmount))
	assert.Equal(t, domain.PaymentUPI, order.Payment)
	assert.Equal(t, domain.OrderPending, order.Status)
	require.Len(t, order.Items, 2)
	assert.True(t, order.Items[0].BargainID.Valid)
	assert.Equal(t, f.vendor.ID, order.Items[0].VendorID)

	view, err = env.Cart.GetCart(ctx, f.customer.ID)
	require.NoError(t, err)
	assert.Empty(t, view.Items)

	_, err = env.Orders.Checkout(ctx, f.customer.ID, transport.CheckoutRequest{})
	requireKind(t, err, ErrValidation, "Cart is empty")

	assert.Len(t, env.Events.Events(events.TopicCarts), 2)
	assert.Len(t, env.Events.Events(events.TopicOrders), 1)
}

func TestCart_AddRemoveClear(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	c := env.user(t, "c@shop.io", domain.RoleCustomer)
	v := env.user(t, "v@shop.io", domain.RoleVendor)
	p := env.product(t, v, "Tea", 5)

	_, err := env.Cart.AddToCart(ctx, c.ID, transport.AddToCartRequest{ProductID: uuid.NewString()})
	requireKind(t, err, ErrNotFound, "Product not found")
	_, err = env.Cart.AddToCart(ctx, c.ID, transport.AddToCartRequest{ProductID: p.ID.String(), Quantity: -1})
	requireKind(t, err, ErrValidation, "")

	_, err = env.Cart.AddToCart(ctx, c.ID, transport.AddToCartRequest{ProductID: p.ID.String()})
	require.NoError(t, err)
	item, err := env.Cart.AddToCart(ctx, c.ID, transport.AddToCartRequest{ProductID: p.ID.String()})
	require.NoError(t, err)
	assert.Equal(t, 2, item.Quantity)

	require.NoError(t, env.Cart.RemoveFromCart(ctx, c.ID, p.ID))
	requireKind(t, env.Cart.RemoveFromCart(ctx, c.ID, p.ID), ErrNotFound, "Product not in cart")

	_, err = env.Cart.AddToCart(ctx, c.ID, transport.AddToCartRequest{ProductID: p.ID.String()})
	require.NoError(t, err)
	require.NoError(t, env.Cart.ClearCart(ctx, c.ID))
	view, err := env.Cart.GetCart(ctx, c.ID)
	require.NoError(t, err)
	assert.Empty(t, view.Items)
	assert.True(t, view.Total.IsZero())
}
