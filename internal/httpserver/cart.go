package httpserver

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/aura_shop/internal/cart"
	"github.com/Skotchmaster/aura_shop/internal/catalog"
	"github.com/Skotchmaster/aura_shop/internal/transport"
	"github.com/Skotchmaster/aura_shop/pkg/logging"
)

// SessionCarts resolves the cart of the calling browser from its session cookie.
type SessionCarts struct {
	Sessions     *cart.Sessions
	TTL          time.Duration
	CookieSecure bool
}

func (s *SessionCarts) For(c echo.Context) *cart.Store {
	var current string
	if ck, err := c.Cookie(cart.CookieName); err == nil {
		current = ck.Value
	}
	id, store := s.Sessions.Get(current)
	if id != current {
		c.SetCookie(&http.Cookie{
			Name:     cart.CookieName,
			Value:    id,
			Path:     "/",
			MaxAge:   int(s.TTL.Seconds()),
			HttpOnly: true,
			Secure:   s.CookieSecure,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return store
}

func cartResponse(snap cart.Snapshot) transport.CartResponse {
	items := make([]transport.CartItemResponse, 0, len(snap.Items))
	for _, it := range snap.Items {
		items = append(items, transport.CartItemResponse{
			Product:   it.Product,
			Quantity:  it.Quantity,
			LineTotal: it.LineTotal(),
		})
	}
	return transport.CartResponse{
		Items:    items,
		Count:    snap.Count,
		Subtotal: snap.Total,
		Shipping: decimal.Zero,
		Tax:      decimal.Zero,
		Total:    snap.Total,
		Open:     snap.Open,
	}
}

type CartHTTP struct {
	Carts  *SessionCarts
	Reader *catalog.Reader
}

func (h *CartHTTP) GetCart(c echo.Context) error {
	return c.JSON(http.StatusOK, cartResponse(h.Carts.For(c).Snapshot()))
}

func (h *CartHTTP) AddItem(c echo.Context) error {
	l := logging.FromContext(c.Request().Context()).With("handler", "cart.add")

	var req transport.AddToCartRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("cart_add_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	p, ok := productByID(h.Reader, req.ProductID)
	if !ok {
		l.Warn("cart_add_error", "status", 404, "reason", "unknown product", "product_id", req.ProductID)
		return echo.NewHTTPError(http.StatusNotFound, "product not found")
	}

	store := h.Carts.For(c)
	store.AddToCart(p)
	l.Info("cart_add_success", "product_id", p.ID)
	return c.JSON(http.StatusOK, cartResponse(store.Snapshot()))
}

func (h *CartHTTP) UpdateQuantity(c echo.Context) error {
	var req transport.UpdateQuantityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	store := h.Carts.For(c)
	store.UpdateQuantity(c.Param("id"), req.Delta)
	return c.JSON(http.StatusOK, cartResponse(store.Snapshot()))
}

func (h *CartHTTP) RemoveItem(c echo.Context) error {
	store := h.Carts.For(c)
	store.RemoveFromCart(c.Param("id"))
	return c.JSON(http.StatusOK, cartResponse(store.Snapshot()))
}

func (h *CartHTTP) Clear(c echo.Context) error {
	store := h.Carts.For(c)
	store.ClearCart()
	return c.JSON(http.StatusOK, cartResponse(store.Snapshot()))
}

func (h *CartHTTP) SetOpen(c echo.Context) error {
	var req transport.SetOpenRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	store := h.Carts.For(c)
	store.SetOpen(req.Open)
	return c.JSON(http.StatusOK, cartResponse(store.Snapshot()))
}
