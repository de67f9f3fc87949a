package httpserver

import (
	"github.com/Skotchmaster/bargain_shop/internal/domain"
	"github.com/Skotchmaster/bargain_shop/internal/middleware/auth"
)

const (
	OpAuthMe       = "auth.me"
	OpAuthCustomer = "auth.customer"
	OpAuthVendor   = "auth.vendor"
	OpAuthAdmin    = "auth.admin"

	OpProductListOwn = "product.list_own"
	OpProductCreate  = "product.create"
	OpProductUpdate  = "product.update"
	OpProductDelete  = "product.delete"

	OpBargainStart          = "bargain.start"
	OpBargainMessage        = "bargain.message"
	OpBargainCounter        = "bargain.counter"
	OpBargainAccept         = "bargain.accept"
	OpBargainCustomerAccept = "bargain.customer_accept"
	OpBargainReject         = "bargain.reject"
	OpBargainCustomerReject = "bargain.customer_reject"
	OpBargainDelete         = "bargain.delete"
	OpBargainGet            = "bargain.get"
	OpBargainListCustomer   = "bargain.list_customer"
	OpBargainListVendor     = "bargain.list_vendor"

	OpCartGet      = "cart.get"
	OpCartAdd      = "cart.add"
	OpCartRemove   = "cart.remove"
	OpCartClear    = "cart.clear"
	OpCartCheckout = "cart.checkout"

	OpOrderCreate     = "order.create"
	OpOrderList       = "order.list"
	OpOrderListVendor = "order.list_vendor"
	OpOrderCancel     = "order.cancel"
)

var (
	anyone    = []domain.Role{domain.RoleCustomer, domain.RoleVendor, domain.RoleAdmin}
	customers = []domain.Role{domain.RoleCustomer}
	vendors   = []domain.Role{domain.RoleVendor}
	traders   = []domain.Role{domain.RoleCustomer, domain.RoleVendor}
)

// Policy lists which roles may call each authenticated operation. Thread,
// order and product ownership is checked separately by the services.
var Policy = auth.Policy{
	OpAuthMe:       anyone,
	OpAuthCustomer: customers,
	OpAuthVendor:   vendors,
	OpAuthAdmin:    {domain.RoleAdmin},

	OpProductListOwn: vendors,
	OpProductCreate:  vendors,
	OpProductUpdate:  vendors,
	OpProductDelete:  vendors,

	OpBargainStart:          customers,
	OpBargainMessage:        traders,
	OpBargainCounter:        customers,
	OpBargainAccept:         traders,
	OpBargainCustomerAccept: customers,
	OpBargainReject:         vendors,
	OpBargainCustomerReject: customers,
	OpBargainDelete:         traders,
	OpBargainGet:            traders,
	OpBargainListCustomer:   customers,
	OpBargainListVendor:     vendors,

	OpCartGet:      customers,
	OpCartAdd:      customers,
	OpCartRemove:   customers,
	OpCartClear:    customers,
	OpCartCheckout: customers,

	OpOrderCreate:     anyone,
	OpOrderList:       anyone,
	OpOrderListVendor: vendors,
	OpOrderCancel:     anyone,
}
