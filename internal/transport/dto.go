package transport

import (
	"time"

	"github.com/Skotchmaster/bargain_shop/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type RegisterRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	Role            string `json:"role"`
	ShopName        string `json:"shopName"`
	ShopDescription string `json:"shopDescription"`
	ShopAddress     string `json:"shopAddress"`
	GSTNumber       string `json:"gstNumber"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserView struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Role  string    `json:"role,omitempty"`
}

func NewUserView(u *models.User, withRole bool) UserView {
	v := UserView{ID: u.ID, Name: u.Name, Email: u.Email}
	if withRole {
		v.Role = string(u.Role)
	}
	return v
}

type RegisterResponse struct {
	Msg  string   `json:"msg"`
	User UserView `json:"user"`
}

type LoginResponse struct {
	Token string   `json:"token"`
	Role  string   `json:"role"`
	User  UserView `json:"user"`
}

// ProductInput carries only the fields the client sent; nil means untouched.
type ProductInput struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Category    *string          `json:"category"`
	Price       *decimal.Decimal `json:"price"`
	Stock       *int             `json:"stock"`
}

type SearchResponse struct {
	Data any        `json:"data"`
	Meta SearchMeta `json:"meta"`
}

type SearchMeta struct {
	Page       int   `json:"page"`
	Size       int   `json:"size"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"total_pages"`
	HasPrev    bool  `json:"has_prev"`
	HasNext    bool  `json:"has_next"`
}

type StartBargainRequest struct {
	ProductID string              `json:"productId"`
	VendorID  string              `json:"vendorId"`
	Price     decimal.NullDecimal `json:"price"`
}

type BargainMessageRequest struct {
	Text  string              `json:"text"`
	Price decimal.NullDecimal `json:"price"`
}

// PriceRequest is the body of counter and accept calls.
type PriceRequest struct {
	Price decimal.NullDecimal `json:"price"`
}

type AddToCartRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
	BargainID string `json:"bargainId"`
}

type CartLine struct {
	ProductID uuid.UUID       `json:"productId"`
	Quantity  int             `json:"quantity"`
	BargainID *uuid.UUID      `json:"bargainId,omitempty"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	LineTotal decimal.Decimal `json:"lineTotal"`
	Product   *models.Product `json:"product,omitempty"`
}

type CartView struct {
	Items []CartLine      `json:"items"`
	Total decimal.Decimal `json:"total"`
}

type OrderItemRequest struct {
	ProductID   string          `json:"productId"`
	VendorID    string          `json:"vendorId"`
	BargainID   string          `json:"bargainId"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	Image       string          `json:"image"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
}

type CreateOrderRequest struct {
	Products    []OrderItemRequest `json:"products"`
	TotalAmount decimal.Decimal    `json:"totalAmount"`
	Shipping    models.Shipping    `json:"shipping"`
	Payment     string             `json:"payment"`
}

type CheckoutRequest struct {
	Shipping models.Shipping `json:"shipping"`
	Payment  string          `json:"payment"`
}

type OrderResponse struct {
	Msg   string `json:"msg"`
	Order any    `json:"order"`
}

type CancelledOrder struct {
	ID          uuid.UUID  `json:"id"`
	Status      string     `json:"status"`
	CancelledAt *time.Time `json:"cancelledAt"`
}

type MsgResponse struct {
	Msg string `json:"msg"`
}
