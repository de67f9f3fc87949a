package service

import (
	"context"
	"errors"
	"strings"

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

const (
	textProposed = "Proposed a price"
	textCounter  = "Counter Offer"
)

type BargainService struct {
	Repo   *repo.GormRepo
	Events events.Publisher
}

func (s *BargainService) Start(ctx context.Context, caller *models.User, req transport.StartBargainRequest) (*models.Bargain, error) {
	l := logging.FromContext(ctx).With("svc", "bargain.start")

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, fail(ErrValidation, "Invalid productId")
	}
	if err := domain.ValidateOffer(req.Price); err != nil {
		return nil, fail(ErrValidation, "Price must be >= 0")
	}

	product, err := s.Repo.GetProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fail(ErrNotFound, "Product not found")
		}
		return nil, err
	}

	vendorID := product.VendorID
	if v := strings.TrimSpace(req.VendorID); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return nil, fail(ErrValidation, "Invalid vendorId")
		}
		if id != product.VendorID {
			return nil, fail(ErrValidation, "Vendor does not sell this product")
		}
	}

	status, err := domain.BargainStatus("").Transition(domain.EventStart)
	if err != nil {
		return nil, err
	}

	b := &models.Bargain{
		ProductID:  product.ID,
		CustomerID: caller.ID,
		VendorID:   vendorID,
		Status:     status,
		Messages: []models.BargainMessage{{
			Sender: domain.PartyCustomer,
			Text:   textProposed,
			Price:  req.Price,
		}},
	}
	if err := s.Repo.CreateBargain(ctx, b); err != nil {
		return nil, err
	}

	publish(ctx, l, s.Events, events.TopicBargains, b.ID.String(), map[string]any{
		"type":       "bargain_started",
		"bargainId":  b.ID,
		"productId":  b.ProductID,
		"customerId": b.CustomerID,
		"vendorId":   b.VendorID,
		"price":      req.Price,
	})

	return s.Repo.GetBargain(ctx, b.ID)
}

// Message appends a free-form message written by whichever side the caller is on.
func (s *BargainService) Message(ctx context.Context, caller *models.User, id uuid.UUID, req transport.BargainMessageRequest) (*models.Bargain, error) {
	text := strings.TrimSpace(req.Text)
	party := caller.Role.Party()

	return s.apply(ctx, caller, id, party, domain.EventMessage, "bargain_message", func(b *models.Bargain) (*models.BargainMessage, error) {
		if text == "" && !req.Price.Valid {
			return nil, fail(ErrValidation, "Message text or price is required")
		}
		if err := domain.ValidateOffer(req.Price); err != nil {
			return nil, fail(ErrValidation, "Price must be >= 0")
		}
		return &models.BargainMessage{Sender: party, Text: text, Price: req.Price}, nil
	})
}

func (s *BargainService) Counter(ctx context.Context, caller *models.User, id uuid.UUID, price decimal.NullDecimal) (*models.Bargain, error) {
	return s.apply(ctx, caller, id, domain.PartyCustomer, domain.EventMessage, "bargain_message", func(b *models.Bargain) (*models.BargainMessage, error) {
		if !price.Valid {
			return nil, fail(ErrValidation, "Price is required")
		}
		if err := domain.ValidateOffer(price); err != nil {
			return nil, fail(ErrValidation, "Price must be >= 0")
		}
		return &models.BargainMessage{Sender: domain.PartyCustomer, Text: textCounter, Price: price}, nil
	})
}

// Accept closes the thread at the supplied price, or at the latest offer when none is given.
// An empty party lets either participant accept.
func (s *BargainService) Accept(ctx context.Context, caller *models.User, id uuid.UUID, as domain.Party, price decimal.NullDecimal) (*models.Bargain, error) {
	if as == "" {
		as = caller.Role.Party()
	}
	return s.apply(ctx, caller, id, as, domain.EventAccept, "bargain_accepted", func(b *models.Bargain) (*models.BargainMessage, error) {
		if err := domain.ValidateOffer(price); err != nil {
			return nil, fail(ErrValidation, "Price must be >= 0")
		}
		final, err := domain.ResolveFinalPrice(price, b.LastOffer())
		if err != nil {
			return nil, fail(ErrValidation, "Final price is required")
		}
		b.FinalPrice = decimal.NewNullDecimal(final)
		return nil, nil
	})
}

func (s *BargainService) Reject(ctx context.Context, caller *models.User, id uuid.UUID, as domain.Party) (*models.Bargain, error) {
	return s.apply(ctx, caller, id, as, domain.EventReject, "bargain_rejected", func(*models.Bargain) (*models.BargainMessage, error) {
		return nil, nil
	})
}

func (s *BargainService) Get(ctx context.Context, caller *models.User, id uuid.UUID) (*models.Bargain, error) {
	b, err := s.Repo.GetBargain(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fail(ErrNotFound, "Bargain not found")
		}
		return nil, err
	}
	if !b.IsParticipant(caller.ID) {
		return nil, fail(ErrForbidden, "Not authorized to view this bargain")
	}
	return b, nil
}

func (s *BargainService) Delete(ctx context.Context, caller *models.User, id uuid.UUID) error {
	l := logging.FromContext(ctx).With("svc", "bargain.delete")

	b, err := s.Repo.GetBargain(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fail(ErrNotFound, "Bargain not found")
		}
		return err
	}
	if !b.IsParticipant(caller.ID) {
		return fail(ErrForbidden, "Not authorized to delete this bargain")
	}

	if err := s.Repo.DeleteBargain(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fail(ErrNotFound, "Bargain not found")
		}
		return err
	}

	publish(ctx, l, s.Events, events.TopicBargains, id.String(), map[string]any{
		"type":      "bargain_deleted",
		"bargainId": id,
		"deletedBy": caller.ID,
	})
	return nil
}

func (s *BargainService) ListForCustomer(ctx context.Context, customerID uuid.UUID) ([]models.Bargain, error) {
	return s.Repo.ListCustomerBargains(ctx, customerID)
}

func (s *BargainService) ListForVendor(ctx context.Context, vendorID uuid.UUID) ([]models.Bargain, error) {
	return s.Repo.ListVendorBargains(ctx, vendorID)
}

// apply runs one state-machine step on a locked thread: the caller must be the
// participant on side as, the transition must be legal, then step may append a message.
func (s *BargainService) apply(ctx context.Context, caller *models.User, id uuid.UUID, as domain.Party, ev domain.BargainEvent, kind string, step repo.BargainUpdate) (*models.Bargain, error) {
	l := logging.FromContext(ctx).With("svc", "bargain."+string(ev))

	var appended *models.BargainMessage
	b, err := s.Repo.UpdateBargain(ctx, id, func(b *models.Bargain) (*models.BargainMessage, error) {
		if !isParty(b, caller.ID, as) {
			return nil, fail(ErrForbidden, "Not authorized for this bargain")
		}

		next, err := b.Status.Transition(ev)
		if err != nil {
			if errors.Is(err, domain.ErrBargainClosed) {
				return nil, fail(ErrConflict, "Bargain is already %s", b.Status)
			}
			return nil, fail(ErrConflict, "%s", err.Error())
		}

		msg, err := step(b)
		if err != nil {
			return nil, err
		}
		b.Status = next
		appended = msg
		return msg, nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fail(ErrNotFound, "Bargain not found")
		}
		return nil, err
	}

	event := map[string]any{
		"type":      kind,
		"bargainId": b.ID,
		"status":    b.Status,
		"by":        as,
	}
	if appended != nil {
		event["seq"] = appended.Seq
		event["price"] = appended.Price
	}
	if b.FinalPrice.Valid {
		event["finalPrice"] = b.FinalPrice
	}
	publish(ctx, l, s.Events, events.TopicBargains, b.ID.String(), event)

	return b, nil
}

func isParty(b *models.Bargain, userID uuid.UUID, as domain.Party) bool {
	switch as {
	case domain.PartyCustomer:
		return b.CustomerID == userID
	case domain.PartyVendor:
		return b.VendorID == userID
	}
	return false
}
