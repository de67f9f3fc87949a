package models

import (
	"time"

	"github.com/Skotchmaster/bargain_shop/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type User struct {
	ID           uuid.UUID   `gorm:"type:char(36);primaryKey"           json:"id"`
	Name         string      `gorm:"not null"                           json:"name"`
	Email        string      `gorm:"size:255;uniqueIndex;not null"      json:"email"`
	PasswordHash string      `gorm:"not null"                           json:"-"`
	Role         domain.Role `gorm:"size:16;not null;default:customer"  json:"role"`

	ShopName        string          `json:"shopName,omitempty"`
	ShopDescription string          `json:"shopDescription,omitempty"`
	ShopAddress     string          `json:"shopAddress,omitempty"`
	GSTNumber       string          `json:"gstNumber,omitempty"`
	Balance         decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"balance"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UserRef is the public face of an account when joined into other records.
type UserRef struct {
	ID    uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

func (UserRef) TableName() string { return "users" }
