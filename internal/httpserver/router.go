package httpserver

import (
	"net/http"

	"github.com/Skotchmaster/bargain_shop/internal/middleware/auth"
	"github.com/Skotchmaster/bargain_shop/pkg/db"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type Deps struct {
	DB    *gorm.DB
	Authn auth.Authenticator

	AuthHandler    *AuthHTTP
	CatalogHandler *CatalogHTTP
	BargainHandler *BargainHTTP
	CartHandler    *CartHTTP
	OrderHandler   *OrderHTTP

	// UploadDir is served under UploadURLPrefix when images live on local disk.
	UploadDir       string
	UploadURLPrefix string
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"message": "Backend is working!"})
	})
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		if err := db.Ping(c.Request().Context(), d.DB); err != nil {
			return echo.NewHTTPError(http.StatusServiceUnavailable, "database unavailable")
		}
		return c.NoContent(http.StatusOK)
	})
	if d.UploadDir != "" {
		e.Static(d.UploadURLPrefix, d.UploadDir)
	}

	authn := auth.RequireAuth(d.Authn)
	can := func(op string) echo.MiddlewareFunc { return auth.RequireRoles(Policy, op) }

	api := e.Group("/api")

	a := api.Group("/auth")
	a.POST("/register", d.AuthHandler.Register)
	a.POST("/login", d.AuthHandler.Login)
	a.GET("/me", d.AuthHandler.Me, authn, can(OpAuthMe))
	a.GET("/customer", Welcome("Welcome, Customer!"), authn, can(OpAuthCustomer))
	a.GET("/vendor", Welcome("Welcome, Vendor!"), authn, can(OpAuthVendor))
	a.GET("/admin", Welcome("Welcome, Admin!"), authn, can(OpAuthAdmin))

	p := api.Group("/products")
	p.GET("/all", d.CatalogHandler.ListAll)
	p.GET("/search", d.CatalogHandler.SearchProducts)
	p.GET("/:id", d.CatalogHandler.GetProduct)
	p.GET("", d.CatalogHandler.ListMine, authn, can(OpProductListOwn))
	p.POST("", d.CatalogHandler.CreateProduct, authn, can(OpProductCreate))
	p.PUT("/:id", d.CatalogHandler.UpdateProduct, authn, can(OpProductUpdate))
	p.DELETE("/:id", d.CatalogHandler.DeleteProduct, authn, can(OpProductDelete))

	b := api.Group("/bargains", authn)
	b.POST("/start", d.BargainHandler.Start, can(OpBargainStart))
	b.GET("/customer", d.BargainHandler.ListCustomer, can(OpBargainListCustomer))
	b.GET("/vendor", d.BargainHandler.ListVendor, can(OpBargainListVendor))
	b.GET("/:id", d.BargainHandler.Get, can(OpBargainGet))
	b.DELETE("/:id", d.BargainHandler.Delete, can(OpBargainDelete))
	b.POST("/:id/message", d.BargainHandler.Message, can(OpBargainMessage))
	b.POST("/:id/counter", d.BargainHandler.Counter, can(OpBargainCounter))
	b.POST("/:id/accept", d.BargainHandler.Accept, can(OpBargainAccept))
	b.POST("/:id/customer-accept", d.BargainHandler.CustomerAccept, can(OpBargainCustomerAccept))
	b.POST("/:id/reject", d.BargainHandler.Reject, can(OpBargainReject))
	b.POST("/:id/customer-reject", d.BargainHandler.CustomerReject, can(OpBargainCustomerReject))

	ct := api.Group("/cart", authn)
	ct.GET("", d.CartHandler.GetCart, can(OpCartGet))
	ct.POST("", d.CartHandler.AddToCart, can(OpCartAdd))
	ct.DELETE("", d.CartHandler.ClearCart, can(OpCartClear))
	ct.DELETE("/:productId", d.CartHandler.RemoveFromCart, can(OpCartRemove))
	ct.POST("/checkout", d.CartHandler.Checkout, can(OpCartCheckout))

	o := api.Group("/orders", authn)
	o.POST("", d.OrderHandler.CreateOrder, can(OpOrderCreate))
	o.GET("", d.OrderHandler.ListMine, can(OpOrderList))
	o.GET("/vendor", d.OrderHandler.ListVendor, can(OpOrderListVendor))
	o.PATCH("/:id/cancel", d.OrderHandler.Cancel, can(OpOrderCancel))
}
