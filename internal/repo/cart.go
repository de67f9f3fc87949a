package repo

import (
	"context"
	"time"

	"github.com/Skotchmaster/bargain_shop/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func (r *GormRepo) GetCart(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error) {
	items := make([]models.CartItem, 0)
	if err := r.DB.WithContext(ctx).
		Preload("Product").
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// AddToCart increments an existing line or creates it in one upsert, so two
// first adds of the same product cannot collide on idx_cart_line. A bargain id
// on the incoming item replaces the one stored on the line.
func (r *GormRepo) AddToCart(ctx context.Context, item *models.CartItem) error {
	db := r.DB.WithContext(ctx)

	set := map[string]any{
		"quantity":   gorm.Expr("cart_items.quantity + ?", item.Quantity),
		"updated_at": time.Now().UTC(),
	}
	if item.BargainID.Valid {
		set["bargain_id"] = item.BargainID
	}

	if err := db.Omit("Product").Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
		DoUpdates: clause.Assignments(set),
	}).Create(item).Error; err != nil {
		return err
	}

	// on conflict the generated id is not the stored one
	var stored models.CartItem
	if err := db.Where("user_id = ? AND product_id = ?", item.UserID, item.ProductID).First(&stored).Error; err != nil {
		return err
	}
	*item = stored
	return nil
}

func (r *GormRepo) RemoveFromCart(ctx context.Context, userID, productID uuid.UUID) error {
	res := r.DB.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.CartItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormRepo) ClearCart(ctx context.Context, userID uuid.UUID) error {
	return r.DB.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
}
