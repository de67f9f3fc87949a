package service

import (
	"context"
	"testing"
	"time"

	"github.com/Skotchmaster/bargain_shop/internal/domain"
	"github.com/Skotchmaster/bargain_shop/internal/models"
	"github.com/Skotchmaster/bargain_shop/internal/repo"
	"github.com/Skotchmaster/bargain_shop/internal/testdb"
	"github.com/Skotchmaster/bargain_shop/internal/transport"
	"github.com/Skotchmaster/bargain_shop/pkg/events"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	Repo     *repo.GormRepo
	Events   *events.Recorder
	Auth     *AuthService
	Catalog  *CatalogService
	Bargains *BargainService
	Cart     *CartService
	Orders   *OrderService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	r := &repo.GormRepo{DB: testdb.New(t)}
	rec := &events.Recorder{}
	return &testEnv{
		Repo:     r,
		Events:   rec,
		Auth:     &AuthService{Repo: r, Events: rec, JWTSecret: []byte("test-secret"), TokenTTL: time.Hour},
		Catalog:  &CatalogService{Repo: r, Events: rec},
		Bargains: &BargainService{Repo: r, Events: rec},
		Cart:     &CartService{Repo: r, Events: rec},
		Orders:   &OrderService{Repo: r, Events: rec},
	}
}

func (env *testEnv) user(t *testing.T, email string, role domain.Role) *models.User {
	t.Helper()
	u, err := env.Auth.Register(context.Background(), transport.RegisterRequest{
		Name: email, Email: email, Password: "password", Role: string(role),
	})
	require.NoError(t, err)
	return u
}

func (env *testEnv) product(t *testing.T, vendor *models.User, name string, price int64) *models.Product {
	t.Helper()
	p := decimal.NewFromInt(price)
	prod, err := env.Catalog.CreateProduct(context.Background(), vendor.ID, transport.ProductInput{Name: &name, Price: &p}, nil)
	require.NoError(t, err)
	return prod
}

func offer(v int64) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.NewFromInt(v))
}

func requireKind(t *testing.T, err, kind error, msg string) {
	t.Helper()
	require.ErrorIs(t, err, kind)
	if msg != "" {
		require.Equal(t, msg, Message(err, ""))
	}
}
