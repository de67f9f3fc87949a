package service

import (
	"context"
	"testing"

	"github.com/Skotchmaster/bargain_shop/internal/domain"
	"github.com/Skotchmaster/bargain_shop/internal/transport"
	"github.com/Skotchmaster/bargain_shop/pkg/events"
	"github.com/Skotchmaster/bargain_shop/pkg/tokens"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuth_RegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	u, err := env.Auth.Register(ctx, transport.RegisterRequest{
		Name: "Asha", Email: " Asha@Shop.io ", Password: "secret", Role: "vendor", ShopName: "Asha Crafts",
	})
	require.NoError(t, err)
	assert.Equal(t, "asha@shop.io", u.Email)
	assert.Equal(t, domain.RoleVendor, u.Role)
	assert.Equal(t, "Asha Crafts", u.ShopName)
	assert.NotEqual(t, "secret", u.PasswordHash)

	_, err = env.Auth.Register(ctx, transport.RegisterRequest{Name: "B", Email: "asha@shop.io", Password: "x"})
	requireKind(t, err, ErrValidation, "User already exists")

	res, err := env.Auth.Login(ctx, "asha@shop.io", "secret")
	require.NoError(t, err)
	claims, err := tokens.AccessClaimsFromToken(res.Token, env.Auth.JWTSecret)
	require.NoError(t, err)
	assert.Equal(t, u.ID.String(), claims.Subject)
	assert.Equal(t, "vendor", claims.Role)

	_, err = env.Auth.Login(ctx, "asha@shop.io", "wrong")
	requireKind(t, err, ErrValidation, "Invalid credentials")
	_, err = env.Auth.Login(ctx, "nobody@shop.io", "secret")
	requireKind(t, err, ErrValidation, "Invalid credentials")

	require.Len(t, env.Events.Events(events.TopicUsers), 1)
}

func TestAuth_RegisterValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	u, err := env.Auth.Register(ctx, transport.RegisterRequest{Name: "C", Email: "c@shop.io", Password: "x"})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleCustomer, u.Role)
	assert.Empty(t, u.ShopName)

	_, err = env.Auth.Register(ctx, transport.RegisterRequest{Name: "D", Email: "d@shop.io", Password: "x", Role: "root"})
	requireKind(t, err, ErrValidation, "Invalid role")

	_, err = env.Auth.Register(ctx, transport.RegisterRequest{Email: "e@shop.io", Password: "x"})
	requireKind(t, err, ErrValidation, "")
}

func TestAuth_Authenticate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	u := env.user(t, "c@shop.io", domain.RoleCustomer)

	res, err := env.Auth.Login(ctx, "c@shop.io", "password")
	require.NoError(t, err)

	got, err := env.Auth.Authenticate(ctx, res.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = env.Auth.Authenticate(ctx, "garbage")
	requireKind(t, err, ErrUnauthorized, "Invalid token")

	ghost, _, err := tokens.SignAccessToken("6f1c3c43-5a43-4a55-9f55-6b2d1a0f6a11", "customer", env.Auth.TokenTTL, env.Auth.JWTSecret)
	require.NoError(t, err)
	_, err = env.Auth.Authenticate(ctx, ghost)
	requireKind(t, err, ErrUnauthorized, "User not found")
}
