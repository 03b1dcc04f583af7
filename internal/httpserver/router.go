package httpserver

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
)

type Deps struct {
	Ready     func(ctx context.Context) error
	Catalog   *CatalogHTTP
	Cart      *CartHTTP
	Checkout  *CheckoutHTTP
	Auth      *AuthHTTP
	Admin     *AdminHTTP
	AdminGate echo.MiddlewareFunc
	CSRF      echo.MiddlewareFunc
}

func passthrough(next echo.HandlerFunc) echo.HandlerFunc { return next }

func Register(e *echo.Echo, d *Deps) {
	csrf := d.CSRF
	if csrf == nil {
		csrf = passthrough
	}

	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		if d.Ready != nil {
			if err := d.Ready(c.Request().Context()); err != nil {
				return echo.NewHTTPError(http.StatusServiceUnavailable, "not ready")
			}
		}
		return c.NoContent(http.StatusOK)
	})

	products := e.Group("/catalog/products")
	products.GET("", d.Catalog.ListProducts)
	products.GET("/search", d.Catalog.Search)
	products.GET("/:id", d.Catalog.GetProduct)
	products.GET("/:id/whatsapp", d.Catalog.WhatsAppLink)

	cart := e.Group("/cart", csrf)
	cart.GET("", d.Cart.GetCart)
	cart.DELETE("", d.Cart.Clear)
	cart.POST("/items", d.Cart.AddItem)
	cart.PATCH("/items/:id", d.Cart.UpdateQuantity)
	cart.DELETE("/items/:id", d.Cart.RemoveItem)
	cart.PUT("/open", d.Cart.SetOpen)

	checkout := e.Group("/checkout", csrf)
	checkout.GET("", d.Checkout.View)
	checkout.POST("", d.Checkout.Submit)

	adminAuth := e.Group("/admin")
	adminAuth.POST("/signup", d.Auth.SignUp)
	adminAuth.POST("/signin", d.Auth.SignIn)
	adminAuth.POST("/refresh", d.Auth.Refresh)
	adminAuth.POST("/logout", d.Auth.LogOut)

	admin := e.Group("/admin", d.AdminGate)
	admin.POST("/products", d.Admin.CreateProduct)
	admin.PATCH("/products/:id", d.Admin.PatchProduct)
	admin.DELETE("/products/:id", d.Admin.DeleteProduct)
	admin.GET("/orders", d.Admin.ListOrders)
	admin.PATCH("/orders/:id/status", d.Admin.UpdateOrderStatus)
}
