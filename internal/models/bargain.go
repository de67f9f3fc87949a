package models

import (
	"time"

	"github.com/Skotchmaster/bargain_shop/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Bargain struct {
	ID         uuid.UUID            `gorm:"type:char(36);primaryKey"               json:"id"`
	ProductID  uuid.UUID            `gorm:"type:char(36);index;not null"           json:"productId"`
	CustomerID uuid.UUID            `gorm:"type:char(36);index;not null"           json:"customerId"`
	VendorID   uuid.UUID            `gorm:"type:char(36);index;not null"           json:"vendorId"`
	Status     domain.BargainStatus `gorm:"size:16;not null;default:pending"       json:"status"`
	FinalPrice decimal.NullDecimal  `gorm:"type:numeric(12,2)"                     json:"finalPrice"`
	Messages   []BargainMessage     `gorm:"foreignKey:BargainID"                   json:"messages"`

	Product  *ProductRef `gorm:"foreignKey:ProductID"  json:"product,omitempty"`
	Customer *UserRef    `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Vendor   *UserRef    `gorm:"foreignKey:VendorID"   json:"vendor,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type BargainMessage struct {
	ID        uuid.UUID           `gorm:"type:char(36);primaryKey"                           json:"id"`
	BargainID uuid.UUID           `gorm:"type:char(36);not null;uniqueIndex:idx_bargain_seq" json:"bargainId"`
	Seq       int                 `gorm:"not null;uniqueIndex:idx_bargain_seq"               json:"seq"`
	Sender    domain.Party        `gorm:"size:16;not null"                                   json:"sender"`
	Text      string              `json:"text"`
	Price     decimal.NullDecimal `gorm:"type:numeric(12,2)"                                 json:"price"`
	CreatedAt time.Time           `json:"createdAt"`
}

// LastOffer returns the price of the most recent message, priced or not.
func (b *Bargain) LastOffer() decimal.NullDecimal {
	if len(b.Messages) == 0 {
		return decimal.NullDecimal{}
	}
	return b.Messages[len(b.Messages)-1].Price
}

func (b *Bargain) IsParticipant(userID uuid.UUID) bool {
	return userID == b.CustomerID || userID == b.VendorID
}
