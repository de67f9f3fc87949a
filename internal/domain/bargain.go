package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

type BargainStatus string

const (
	BargainPending  BargainStatus = "pending"
	BargainOngoing  BargainStatus = "ongoing"
	BargainAccepted BargainStatus = "accepted"
	BargainRejected BargainStatus = "rejected"
)

type BargainEvent string

const (
	EventStart   BargainEvent = "start"
	EventMessage BargainEvent = "message"
	EventAccept  BargainEvent = "accept"
	EventReject  BargainEvent = "reject"
)

// Party is the side of a negotiation a message was written by.
type Party string

const (
	PartyCustomer Party = "customer"
	PartyVendor   Party = "vendor"
)

var (
	ErrBargainClosed       = errors.New("bargain is closed")
	ErrIllegalTransition   = errors.New("illegal bargain transition")
	ErrFinalPriceRequired  = errors.New("final price is required")
	ErrNegativeOfferAmount = errors.New("price must be >= 0")
)

// transitions lists every legal (state, event) pair. Anything missing is rejected.
var transitions = map[BargainStatus]map[BargainEvent]BargainStatus{
	"": {
		EventStart: BargainOngoing,
	},
	BargainPending: {
		EventMessage: BargainPending,
		EventAccept:  BargainAccepted,
		EventReject:  BargainRejected,
	},
	BargainOngoing: {
		EventMessage: BargainOngoing,
		EventAccept:  BargainAccepted,
		EventReject:  BargainRejected,
	},
}

func (s BargainStatus) Valid() bool {
	switch s {
	case BargainPending, BargainOngoing, BargainAccepted, BargainRejected:
		return true
	}
	return false
}

func (s BargainStatus) Terminal() bool {
	return s == BargainAccepted || s == BargainRejected
}

// Transition returns the status reached by applying ev to s.
func (s BargainStatus) Transition(ev BargainEvent) (BargainStatus, error) {
	if s.Terminal() {
		return s, fmt.Errorf("%w: already %s", ErrBargainClosed, s)
	}
	next, ok := transitions[s][ev]
	if !ok {
		return s, fmt.Errorf("%w: %q on %q", ErrIllegalTransition, ev, s)
	}
	return next, nil
}

func (p Party) Valid() bool {
	return p == PartyCustomer || p == PartyVendor
}

// ResolveFinalPrice picks the accepted price: an explicit positive price wins,
// otherwise the most recent offer in the thread.
func ResolveFinalPrice(explicit, lastOffer decimal.NullDecimal) (decimal.Decimal, error) {
	if explicit.Valid && explicit.Decimal.IsPositive() {
		return explicit.Decimal, nil
	}
	if lastOffer.Valid && lastOffer.Decimal.IsPositive() {
		return lastOffer.Decimal, nil
	}
	return decimal.Zero, ErrFinalPriceRequired
}

func ValidateOffer(price decimal.NullDecimal) error {
	if price.Valid && price.Decimal.IsNegative() {
		return ErrNegativeOfferAmount
	}
	return nil
}
