package models

import (
	"time"

	"github.com/Skotchmaster/bargain_shop/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Shipping struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
	Pincode string `json:"pincode"`
}

type Order struct {
	ID          uuid.UUID            `gorm:"type:char(36);primaryKey"                 json:"id"`
	UserID      uuid.UUID            `gorm:"type:char(36);index;not null"             json:"user"`
	Items       []OrderItem          `gorm:"foreignKey:OrderID"                       json:"products"`
	TotalAmount decimal.Decimal      `gorm:"type:numeric(12,2);not null"              json:"totalAmount"`
	Shipping    Shipping             `gorm:"embedded;embeddedPrefix:shipping_"        json:"shipping"`
	Payment     domain.PaymentMethod `gorm:"size:8;not null;default:COD"              json:"payment"`
	Status      domain.OrderStatus   `gorm:"size:16;not null;default:Pending"         json:"status"`
	CancelledAt *time.Time           `json:"cancelledAt,omitempty"`
	CreatedAt   time.Time            `gorm:"index"                                    json:"createdAt"`
	UpdatedAt   time.Time            `json:"updatedAt"`
}

// OrderItem is a snapshot of a product at checkout time, not a live reference.
type OrderItem struct {
	ID          uuid.UUID       `gorm:"type:char(36);primaryKey"       json:"id"`
	OrderID     uuid.UUID       `gorm:"type:char(36);index;not null"   json:"orderId"`
	ProductID   uuid.UUID       `gorm:"type:char(36);index"            json:"productId"`
	VendorID    uuid.UUID       `gorm:"type:char(36);index"            json:"vendorId"`
	BargainID   uuid.NullUUID   `gorm:"type:char(36)"                  json:"bargainId"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `gorm:"type:numeric(12,2);not null"    json:"price"`
	Quantity    int             `gorm:"not null;default:1"             json:"quantity"`
	Image       string          `json:"image"`
	Description string          `json:"description"`
	Category    string          `json:"category"`

	// Images is filled from the live product when it still exists.
	Images []string `gorm:"-" json:"images,omitempty"`
}
