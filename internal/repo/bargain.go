package repo

import (
	"context"

	"github.com/Skotchmaster/bargain_shop/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func orderedMessages(db *gorm.DB) *gorm.DB {
	return db.Order("seq ASC")
}

func withParties(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Messages", orderedMessages).
		Preload("Product").
		Preload("Customer").
		Preload("Vendor")
}

// CreateBargain stores the thread together with its opening messages.
func (r *GormRepo) CreateBargain(ctx context.Context, b *models.Bargain) error {
	for i := range b.Messages {
		b.Messages[i].Seq = i + 1
	}
	return r.DB.WithContext(ctx).Omit("Product", "Customer", "Vendor").Create(b).Error
}

func (r *GormRepo) GetBargain(ctx context.Context, id uuid.UUID) (*models.Bargain, error) {
	var b models.Bargain
	if err := withParties(r.DB.WithContext(ctx)).Where("id = ?", id).First(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *GormRepo) ListCustomerBargains(ctx context.Context, customerID uuid.UUID) ([]models.Bargain, error) {
	return r.listBargains(ctx, "customer_id = ?", customerID)
}

func (r *GormRepo) ListVendorBargains(ctx context.Context, vendorID uuid.UUID) ([]models.Bargain, error) {
	return r.listBargains(ctx, "vendor_id = ?", vendorID)
}

func (r *GormRepo) listBargains(ctx context.Context, where string, id uuid.UUID) ([]models.Bargain, error) {
	items := make([]models.Bargain, 0)
	if err := withParties(r.DB.WithContext(ctx)).
		Where(where, id).
		Order("updated_at DESC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// BargainUpdate decides the next state of a locked thread. It may mutate the
// thread's status and final price, and returns a message to append or nil.
type BargainUpdate func(b *models.Bargain) (*models.BargainMessage, error)

// UpdateBargain runs fn on the thread under a row lock so the guard check, the
// message sequence number and the write see the same state.
func (r *GormRepo) UpdateBargain(ctx context.Context, id uuid.UUID, fn BargainUpdate) (*models.Bargain, error) {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var b models.Bargain
		if err := forUpdate(tx).Where("id = ?", id).First(&b).Error; err != nil {
			return err
		}
		if err := tx.Scopes(orderedMessages).Where("bargain_id = ?", b.ID).Find(&b.Messages).Error; err != nil {
			return err
		}

		msg, err := fn(&b)
		if err != nil {
			return err
		}

		if msg != nil {
			msg.BargainID = b.ID
			msg.Seq = len(b.Messages) + 1
			if n := len(b.Messages); n > 0 && b.Messages[n-1].Seq >= msg.Seq {
				msg.Seq = b.Messages[n-1].Seq + 1
			}
			if err := tx.Create(msg).Error; err != nil {
				return err
			}
		}

		return tx.Model(&b).Omit(clause.Associations).Updates(map[string]any{
			"status":      b.Status,
			"final_price": b.FinalPrice,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return r.GetBargain(ctx, id)
}

func (r *GormRepo) DeleteBargain(ctx context.Context, id uuid.UUID) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("bargain_id = ?", id).Delete(&models.BargainMessage{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&models.Bargain{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// BargainsByID loads the given threads without messages, keyed by id.
func (r *GormRepo) BargainsByID(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.Bargain, error) {
	out := make(map[uuid.UUID]models.Bargain, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var items []models.Bargain
	if err := r.DB.WithContext(ctx).Where("id IN ?", ids).Find(&items).Error; err != nil {
		return nil, err
	}
	for _, b := range items {
		out[b.ID] = b
	}
	return out, nil
}
