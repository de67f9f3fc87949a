package service

import (
	"context"
	"testing"

	"github.com/Skotchmaster/bargain_shop/internal/domain"
	"github.com/Skotchmaster/bargain_shop/internal/search"
	"github.com/Skotchmaster/bargain_shop/internal/transport"
	"github.com/Skotchmaster/bargain_shop/pkg/events"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestCatalog_CreateUpdateDelete(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	v := env.user(t, "v@shop.io", domain.RoleVendor)
	v2 := env.user(t, "v2@shop.io", domain.RoleVendor)

	_, err := env.Catalog.CreateProduct(ctx, v.ID, transport.ProductInput{Name: strPtr("  ")}, nil)
	requireKind(t, err, ErrValidation, "Product name is required")

	neg := decimal.NewFromInt(-1)
	_, err = env.Catalog.CreateProduct(ctx, v.ID, transport.ProductInput{Name: strPtr("Pot"), Price: &neg}, nil)
	requireKind(t, err, ErrValidation, "")

	p := env.product(t, v, "Pot", 30)
	assert.Equal(t, 0, p.Stock)
	assert.Empty(t, p.Images)

	p.Images = []string{"/uploads/pot.png"}
	require.NoError(t, env.Repo.SaveProduct(ctx, p))

	stock := 4
	updated, err := env.Catalog.UpdateProduct(ctx, v.ID, p.ID, transport.ProductInput{Stock: &stock, Category: strPtr("Kitchen")}, nil)
	require.NoError(t, err)
	assert.Equal(t, "Pot", updated.Name)
	assert.Equal(t, 4, updated.Stock)
	assert.Equal(t, "Kitchen", updated.Category)
	assert.Equal(t, []string{"/uploads/pot.png"}, updated.Images)

	_, err = env.Catalog.UpdateProduct(ctx, v2.ID, p.ID, transport.ProductInput{Stock: &stock}, nil)
	requireKind(t, err, ErrNotFound, "Product not found")

	requireKind(t, env.Catalog.DeleteProduct(ctx, v2.ID, p.ID), ErrNotFound, "")
	require.NoError(t, env.Catalog.DeleteProduct(ctx, v.ID, p.ID))
	_, err = env.Catalog.GetProduct(ctx, p.ID)
	requireKind(t, err, ErrNotFound, "")

	types := []string{}
	for _, e := range env.Events.Events(events.TopicProducts) {
		types = append(types, e.Event["type"].(string))
	}
	assert.Equal(t, []string{"product_created", "product_updated", "product_deleted"}, types)
}

func TestCatalog_Search(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, _, err := env.Catalog.SearchProducts(ctx, "  ", 0, 20)
	requireKind(t, err, ErrValidation, "Query is required")

	_, _, err = env.Catalog.SearchProducts(ctx, "lamp", 0, 20)
	assert.ErrorIs(t, err, search.ErrDisabled)

	_, _, err = env.Catalog.SearchProducts(ctx, "lamp", search.MaxResultWindow-19, 20)
	requireKind(t, err, ErrValidation, "Page is out of range")
	_, _, err = env.Catalog.SearchProducts(ctx, "lamp", -36, 20)
	requireKind(t, err, ErrValidation, "Page is out of range")

	env.Catalog.Search = search.Disabled{}
	_, _, err = env.Catalog.SearchProducts(ctx, "lamp", 0, 20)
	assert.ErrorIs(t, err, search.ErrDisabled)
}
