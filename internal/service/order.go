package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

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

type OrderService struct {
	Repo   *repo.GormRepo
	Events events.Publisher
}

// CreateOrder records the order as the client describes it. Totals and prices are not recomputed.
func (s *OrderService) CreateOrder(ctx context.Context, userID uuid.UUID, req transport.CreateOrderRequest) (*models.Order, error) {
	l := logging.FromContext(ctx).With("svc", "order.create")

	if len(req.Products) == 0 {
		return nil, fail(ErrValidation, "No products in order")
	}
	payment, ok := domain.ParsePaymentMethod(req.Payment)
	if !ok {
		return nil, fail(ErrValidation, "Invalid payment method")
	}
	if req.TotalAmount.IsNegative() {
		return nil, fail(ErrValidation, "Total amount must be >= 0")
	}

	items := make([]models.OrderItem, 0, len(req.Products))
	for _, p := range req.Products {
		item, err := orderItemFromRequest(p)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	order := &models.Order{
		UserID:      userID,
		Items:       items,
		TotalAmount: req.TotalAmount,
		Shipping:    req.Shipping,
		Payment:     payment,
		Status:      domain.OrderPending,
	}
	if err := s.Repo.CreateOrder(ctx, order); err != nil {
		return nil, err
	}

	s.placed(ctx, l, order, "request")
	return order, nil
}

// Checkout prices the caller's server-side cart, stores the order and empties the cart.
func (s *OrderService) Checkout(ctx context.Context, userID uuid.UUID, req transport.CheckoutRequest) (*models.Order, error) {
	l := logging.FromContext(ctx).With("svc", "order.checkout")

	payment, ok := domain.ParsePaymentMethod(req.Payment)
	if !ok {
		return nil, fail(ErrValidation, "Invalid payment method")
	}

	order, err := s.Repo.Checkout(ctx, userID, func(tx *gorm.DB, cart []models.CartItem) (*models.Order, error) {
		if len(cart) == 0 {
			return nil, fail(ErrValidation, "Cart is empty")
		}

		txRepo := &repo.GormRepo{DB: tx}
		ids := make([]uuid.UUID, len(cart))
		for i, it := range cart {
			ids[i] = it.ProductID
		}
		products, err := txRepo.ProductsByID(ctx, ids)
		if err != nil {
			return nil, err
		}
		bargains, err := txRepo.BargainsByID(ctx, bargainIDs(cart))
		if err != nil {
			return nil, err
		}

		order := &models.Order{
			UserID:      userID,
			Items:       make([]models.OrderItem, 0, len(cart)),
			TotalAmount: decimal.Zero,
			Shipping:    req.Shipping,
			Payment:     payment,
			Status:      domain.OrderPending,
		}
		for _, it := range cart {
			p, ok := products[it.ProductID]
			if !ok {
				return nil, fail(ErrValidation, "Product %s is no longer available", it.ProductID)
			}
			price := unitPrice(it, p, bargains)
			order.Items = append(order.Items, models.OrderItem{
				ProductID:   p.ID,
				VendorID:    p.VendorID,
				BargainID:   it.BargainID,
				Name:        p.Name,
				Price:       price,
				Quantity:    it.Quantity,
				Image:       firstImage(p.Images),
				Description: p.Description,
				Category:    p.Category,
			})
			order.TotalAmount = order.TotalAmount.Add(price.Mul(decimal.NewFromInt(int64(it.Quantity))))
		}
		return order, nil
	})
	if err != nil {
		return nil, err
	}

	s.placed(ctx, l, order, "cart")
	return order, nil
}

func (s *OrderService) ListForUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	orders, err := s.Repo.ListUserOrders(ctx, userID)
	if err != nil {
		return nil, err
	}
	return orders, s.mergeLiveProducts(ctx, orders)
}

// ListForVendor returns orders containing the vendor's products, showing only the vendor's lines.
func (s *OrderService) ListForVendor(ctx context.Context, vendorID uuid.UUID) ([]models.Order, error) {
	orders, err := s.Repo.ListVendorOrders(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	return orders, s.mergeLiveProducts(ctx, orders)
}

func (s *OrderService) Cancel(ctx context.Context, userID, orderID uuid.UUID) (*models.Order, error) {
	l := logging.FromContext(ctx).With("svc", "order.cancel")

	order, err := s.Repo.UpdateOrder(ctx, orderID, func(o *models.Order) error {
		if o.UserID != userID {
			return fail(ErrForbidden, "Not authorized to cancel this order")
		}
		if !o.Status.Cancellable() {
			return fail(ErrValidation, "Cannot cancel order with status: %s. Only pending or processing orders can be cancelled.", o.Status)
		}
		now := time.Now().UTC()
		o.Status = domain.OrderCancelled
		o.CancelledAt = &now
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fail(ErrNotFound, "Order not found")
		}
		return nil, err
	}

	publish(ctx, l, s.Events, events.TopicOrders, order.ID.String(), map[string]any{
		"type":        "order_cancelled",
		"orderId":     order.ID,
		"userId":      order.UserID,
		"cancelledAt": order.CancelledAt,
	})
	return order, nil
}

// mergeLiveProducts overlays current images, description and category onto
// line items whose product still exists.
func (s *OrderService) mergeLiveProducts(ctx context.Context, orders []models.Order) error {
	seen := map[uuid.UUID]struct{}{}
	var ids []uuid.UUID
	for _, o := range orders {
		for _, it := range o.Items {
			if _, ok := seen[it.ProductID]; ok || it.ProductID == uuid.Nil {
				continue
			}
			seen[it.ProductID] = struct{}{}
			ids = append(ids, it.ProductID)
		}
	}

	products, err := s.Repo.ProductsByID(ctx, ids)
	if err != nil {
		return err
	}

	for i := range orders {
		for j := range orders[i].Items {
			it := &orders[i].Items[j]
			p, ok := products[it.ProductID]
			if !ok {
				continue
			}
			if img := firstImage(p.Images); img != "" {
				it.Image = img
			}
			it.Images = p.Images
			it.Description = p.Description
			it.Category = p.Category
		}
	}
	return nil
}

func (s *OrderService) placed(ctx context.Context, l *slog.Logger, order *models.Order, source string) {
	seen := map[uuid.UUID]struct{}{}
	vendorIDs := make([]uuid.UUID, 0, len(order.Items))
	for _, it := range order.Items {
		if _, ok := seen[it.VendorID]; ok {
			continue
		}
		seen[it.VendorID] = struct{}{}
		vendorIDs = append(vendorIDs, it.VendorID)
	}

	publish(ctx, l, s.Events, events.TopicOrders, order.ID.String(), map[string]any{
		"type":        "order_placed",
		"source":      source,
		"orderId":     order.ID,
		"userId":      order.UserID,
		"vendorIds":   vendorIDs,
		"totalAmount": order.TotalAmount,
		"payment":     order.Payment,
	})
}

func orderItemFromRequest(p transport.OrderItemRequest) (models.OrderItem, error) {
	item := models.OrderItem{
		Name:        p.Name,
		Price:       p.Price,
		Quantity:    p.Quantity,
		Image:       p.Image,
		Description: p.Description,
		Category:    p.Category,
	}
	if item.Quantity == 0 {
		item.Quantity = 1
	}
	if item.Quantity < 0 {
		return item, fail(ErrValidation, "Quantity must be more than zero")
	}
	if item.Price.IsNegative() {
		return item, fail(ErrValidation, "Price must be >= 0")
	}

	var err error
	if item.ProductID, err = optionalID(p.ProductID); err != nil {
		return item, fail(ErrValidation, "Invalid productId")
	}
	if item.VendorID, err = optionalID(p.VendorID); err != nil {
		return item, fail(ErrValidation, "Invalid vendorId")
	}
	bargainID, err := optionalID(p.BargainID)
	if err != nil {
		return item, fail(ErrValidation, "Invalid bargainId")
	}
	if bargainID != uuid.Nil {
		item.BargainID = uuid.NullUUID{UUID: bargainID, Valid: true}
	}
	return item, nil
}

func optionalID(s string) (uuid.UUID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return uuid.Nil, nil
	}
	return uuid.Parse(s)
}

func firstImage(images []string) string {
	if len(images) == 0 {
		return ""
	}
	return images[0]
}
