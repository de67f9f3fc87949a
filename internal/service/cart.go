package service

import (
	"context"
	"errors"
	"strings"

	"github.com/Skotchmaster/bargain_shop/internal/domain"
	"github.com/Skotchmaster/bargain_shop/internal/models"
	"github.com/Skotchmaster/bargain_shop/internal/repo"
	"github.com/Skotchmaster/bargain_shop/internal/transport"
	"github.com/Skotchmaster/bargain_shop/pkg/events"
	"github.com/Skotchmaster/bargain_shop/pkg/logging"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CartService struct {
	Repo   *repo.GormRepo
	Events events.Publisher
}

func (s *CartService) GetCart(ctx context.Context, userID uuid.UUID) (*transport.CartView, error) {
	items, err := s.Repo.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	bargains, err := s.Repo.BargainsByID(ctx, bargainIDs(items))
	if err != nil {
		return nil, err
	}

	view := &transport.CartView{Items: make([]transport.CartLine, 0, len(items)), Total: decimal.Zero}
	for _, it := range items {
		line := transport.CartLine{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Product:   it.Product,
			UnitPrice: decimal.Zero,
			LineTotal: decimal.Zero,
		}
		if it.BargainID.Valid {
			id := it.BargainID.UUID
			line.BargainID = &id
		}
		if it.Product != nil {
			line.UnitPrice = unitPrice(it, *it.Product, bargains)
			line.LineTotal = line.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity)))
		}
		view.Total = view.Total.Add(line.LineTotal)
		view.Items = append(view.Items, line)
	}
	return view, nil
}

func (s *CartService) AddToCart(ctx context.Context, userID uuid.UUID, req transport.AddToCartRequest) (*models.CartItem, error) {
	l := logging.FromContext(ctx).With("svc", "cart.add")

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, fail(ErrValidation, "Invalid productId")
	}
	qty := req.Quantity
	if qty == 0 {
		qty = 1
	}
	if qty < 0 {
		return nil, fail(ErrValidation, "Quantity must be more than zero")
	}

	if _, err := s.Repo.GetProduct(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fail(ErrNotFound, "Product not found")
		}
		return nil, err
	}

	item := &models.CartItem{UserID: userID, ProductID: productID, Quantity: qty}
	if b := strings.TrimSpace(req.BargainID); b != "" {
		bargainID, err := uuid.Parse(b)
		if err != nil {
			return nil, fail(ErrValidation, "Invalid bargainId")
		}
		bargain, err := s.Repo.GetBargain(ctx, bargainID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if bargain == nil || bargain.CustomerID != userID || bargain.ProductID != productID ||
			bargain.Status != domain.BargainAccepted || !bargain.FinalPrice.Valid {
			return nil, fail(ErrValidation, "Bargain is not an accepted deal for this product")
		}
		item.BargainID = uuid.NullUUID{UUID: bargainID, Valid: true}
	}

	if err := s.Repo.AddToCart(ctx, item); err != nil {
		return nil, err
	}

	publish(ctx, l, s.Events, events.TopicCarts, userID.String(), map[string]any{
		"type":      "cart_item_added",
		"userId":    userID,
		"productId": productID,
		"quantity":  item.Quantity,
		"bargainId": item.BargainID,
	})
	return item, nil
}

func (s *CartService) RemoveFromCart(ctx context.Context, userID, productID uuid.UUID) error {
	l := logging.FromContext(ctx).With("svc", "cart.remove")

	if err := s.Repo.RemoveFromCart(ctx, userID, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fail(ErrNotFound, "Product not in cart")
		}
		return err
	}

	publish(ctx, l, s.Events, events.TopicCarts, userID.String(), map[string]any{
		"type":      "cart_item_removed",
		"userId":    userID,
		"productId": productID,
	})
	return nil
}

func (s *CartService) ClearCart(ctx context.Context, userID uuid.UUID) error {
	l := logging.FromContext(ctx).With("svc", "cart.clear")

	if err := s.Repo.ClearCart(ctx, userID); err != nil {
		return err
	}

	publish(ctx, l, s.Events, events.TopicCarts, userID.String(), map[string]any{
		"type":   "cart_cleared",
		"userId": userID,
	})
	return nil
}

// unitPrice is the accepted bargain price when the line carries a usable bargain,
// otherwise the catalog price.
func unitPrice(item models.CartItem, product models.Product, bargains map[uuid.UUID]models.Bargain) decimal.Decimal {
	if item.BargainID.Valid {
		if b, ok := bargains[item.BargainID.UUID]; ok &&
			b.Status == domain.BargainAccepted && b.FinalPrice.Valid && b.ProductID == product.ID {
			return b.FinalPrice.Decimal
		}
	}
	return product.Price
}

func bargainIDs(items []models.CartItem) []uuid.UUID {
	var ids []uuid.UUID
	for _, it := range items {
		if it.BargainID.Valid {
			ids = append(ids, it.BargainID.UUID)
		}
	}
	return ids
}
