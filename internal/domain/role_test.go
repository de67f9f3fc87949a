package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in     string
		want   Role
		wantOK bool
	}{
		{in: "", want: RoleCustomer, wantOK: true},
		{in: "customer", want: RoleCustomer, wantOK: true},
		{in: " Vendor ", want: RoleVendor, wantOK: true},
		{in: "admin", want: RoleAdmin, wantOK: true},
		{in: "root", wantOK: false},
	}

	for _, tt := range tests {
		got, ok := ParseRole(tt.in)
		assert.Equal(t, tt.wantOK, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestRole_PartyAndIn(t *testing.T) {
	t.Parallel()

	assert.Equal(t, PartyVendor, RoleVendor.Party())
	assert.Equal(t, PartyCustomer, RoleCustomer.Party())
	assert.Equal(t, PartyCustomer, RoleAdmin.Party())

	assert.True(t, RoleVendor.In(RoleCustomer, RoleVendor))
	assert.False(t, RoleAdmin.In(RoleCustomer, RoleVendor))
	assert.False(t, RoleAdmin.In())
}

func TestOrderStatus_Cancellable(t *testing.T) {
	t.Parallel()

	assert.True(t, OrderPending.Cancellable())
	assert.True(t, OrderStatus("PROCESSING").Cancellable())
	assert.True(t, OrderStatus("pending").Cancellable())
	assert.False(t, OrderShipped.Cancellable())
	assert.False(t, OrderDelivered.Cancellable())
	assert.False(t, OrderCancelled.Cancellable())
}

func TestParsePaymentMethod(t *testing.T) {
	t.Parallel()

	got, ok := ParsePaymentMethod("")
	assert.True(t, ok)
	assert.Equal(t, PaymentCOD, got)

	got, ok = ParsePaymentMethod("UPI")
	assert.True(t, ok)
	assert.Equal(t, PaymentUPI, got)

	_, ok = ParsePaymentMethod("Bitcoin")
	assert.False(t, ok)
}
