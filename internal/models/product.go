package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Product struct {
	ID          uuid.UUID       `gorm:"type:char(36);primaryKey"        json:"id"`
	Name        string          `gorm:"not null"                        json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `gorm:"type:numeric(12,2);not null"     json:"price"`
	Stock       int             `gorm:"not null;default:0"              json:"stock"`
	VendorID    uuid.UUID       `gorm:"type:char(36);index;not null"    json:"vendorId"`
	Vendor      *UserRef        `gorm:"foreignKey:VendorID"             json:"vendor,omitempty"`
	Category    string          `json:"category"`
	Images      []string        `gorm:"serializer:json"                 json:"images"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// ProductRef is the slice of a product shown inside bargain threads.
type ProductRef struct {
	ID    uuid.UUID       `gorm:"type:char(36);primaryKey" json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `gorm:"type:numeric(12,2)"       json:"price"`
}

func (ProductRef) TableName() string { return "products" }
