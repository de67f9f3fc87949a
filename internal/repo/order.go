package repo

import (
	"context"

	"github.com/Skotchmaster/bargain_shop/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func (r *GormRepo) CreateOrder(ctx context.Context, order *models.Order) error {
	return r.DB.WithContext(ctx).Create(order).Error
}

// CheckoutBuilder turns the locked cart lines into an order.
type CheckoutBuilder func(tx *gorm.DB, items []models.CartItem) (*models.Order, error)

// Checkout builds an order from the user's cart and empties the cart in one transaction.
func (r *GormRepo) Checkout(ctx context.Context, userID uuid.UUID, build CheckoutBuilder) (*models.Order, error) {
	var order *models.Order
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var items []models.CartItem
		if err := forUpdate(tx).
			Where("user_id = ?", userID).
			Order("created_at ASC").
			Find(&items).Error; err != nil {
			return err
		}

		var err error
		order, err = build(tx, items)
		if err != nil {
			return err
		}
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (r *GormRepo) GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := r.DB.WithContext(ctx).Preload("Items").Where("id = ?", id).First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormRepo) ListUserOrders(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	orders := make([]models.Order, 0)
	if err := r.DB.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// ListVendorOrders returns orders holding at least one of the vendor's lines,
// with only those lines loaded.
func (r *GormRepo) ListVendorOrders(ctx context.Context, vendorID uuid.UUID) ([]models.Order, error) {
	db := r.DB.WithContext(ctx)
	sub := db.Model(&models.OrderItem{}).Select("order_id").Where("vendor_id = ?", vendorID)

	orders := make([]models.Order, 0)
	if err := db.
		Preload("Items", "vendor_id = ?", vendorID).
		Where("id IN (?)", sub).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// OrderUpdate validates and mutates a locked order.
type OrderUpdate func(o *models.Order) error

func (r *GormRepo) UpdateOrder(ctx context.Context, id uuid.UUID, fn OrderUpdate) (*models.Order, error) {
	var order models.Order
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := forUpdate(tx).Where("id = ?", id).First(&order).Error; err != nil {
			return err
		}
		if err := fn(&order); err != nil {
			return err
		}
		return tx.Model(&order).Omit(clause.Associations).Updates(map[string]any{
			"status":       order.Status,
			"cancelled_at": order.CancelledAt,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}
