package domain

import "strings"

type OrderStatus string

const (
	OrderPending   OrderStatus = "Pending"
	OrderShipped   OrderStatus = "Shipped"
	OrderDelivered OrderStatus = "Delivered"
	OrderCancelled OrderStatus = "Cancelled"
)

type PaymentMethod string

const (
	PaymentCOD  PaymentMethod = "COD"
	PaymentUPI  PaymentMethod = "UPI"
	PaymentCard PaymentMethod = "Card"
)

// Cancellable matches case-insensitively; "processing" is accepted for
// records written by older clients.
func (s OrderStatus) Cancellable() bool {
	switch strings.ToLower(string(s)) {
	case "pending", "processing":
		return true
	}
	return false
}

func ParsePaymentMethod(s string) (PaymentMethod, bool) {
	switch PaymentMethod(s) {
	case "":
		return PaymentCOD, true
	case PaymentCOD, PaymentUPI, PaymentCard:
		return PaymentMethod(s), true
	}
	return "", false
}
