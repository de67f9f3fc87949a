package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func init() {
	// clients send and expect prices as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true
}

// All returns every persisted model in migration order.
func All() []any {
	return []any{&User{}, &Product{}, &Bargain{}, &BargainMessage{}, &CartItem{}, &Order{}, &OrderItem{}}
}

func newID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

func (u *User) BeforeCreate(*gorm.DB) error { newID(&u.ID); return nil }
func (p *Product) BeforeCreate(*gorm.DB) error { newID(&p.ID); return nil }
func (b *Bargain) BeforeCreate(*gorm.DB) error { newID(&b.ID); return nil }
func (m *BargainMessage) BeforeCreate(*gorm.DB) error { newID(&m.ID); return nil }
func (c *CartItem) BeforeCreate(*gorm.DB) error { newID(&c.ID); return nil }
func (o *Order) BeforeCreate(*gorm.DB) error { newID(&o.ID); return nil }
func (i *OrderItem) BeforeCreate(*gorm.DB) error { newID(&i.ID); return nil }
