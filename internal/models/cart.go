package models

import (
	"time"

	"github.com/google/uuid"
)

type CartItem struct {
	ID        uuid.UUID     `gorm:"type:char(36);primaryKey"                           json:"id"`
	UserID    uuid.UUID     `gorm:"type:char(36);not null;uniqueIndex:idx_cart_line"   json:"userId"`
	ProductID uuid.UUID     `gorm:"type:char(36);not null;uniqueIndex:idx_cart_line"   json:"productId"`
	Quantity  int           `gorm:"not null;default:1;check:quantity > 0"              json:"quantity"`
	BargainID uuid.NullUUID `gorm:"type:char(36)"                                      json:"bargainId"`
	Product   *Product      `gorm:"foreignKey:ProductID"                               json:"product,omitempty"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}
