package domain

import "strings"

type Role string

const (
	RoleCustomer Role = "customer"
	RoleVendor   Role = "vendor"
	RoleAdmin    Role = "admin"
)

// ParseRole maps a client-supplied role onto the closed set. Empty means customer.
func ParseRole(s string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case "", RoleCustomer:
		return RoleCustomer, true
	case RoleVendor:
		return RoleVendor, true
	case RoleAdmin:
		return RoleAdmin, true
	}
	return "", false
}

// Party reports which side of a bargain an account of this role writes as.
// Anything that is not a vendor speaks as the customer.
func (r Role) Party() Party {
	if r == RoleVendor {
		return PartyVendor
	}
	return PartyCustomer
}

func (r Role) In(roles ...Role) bool {
	for _, allowed := range roles {
		if r == allowed {
			return true
		}
	}
	return false
}
