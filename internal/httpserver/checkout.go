package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/aura_shop/internal/order"
	"github.com/Skotchmaster/aura_shop/internal/transport"
	"github.com/Skotchmaster/aura_shop/pkg/logging"
)

type CheckoutHTTP struct {
	Carts     *SessionCarts
	Submitter *order.Submitter
}

func (h *CheckoutHTTP) View(c echo.Context) error {
	snap := h.Carts.For(c).Snapshot()
	if len(snap.Items) == 0 {
		return c.JSON(http.StatusOK, echo.Map{"empty": true})
	}
	return c.JSON(http.StatusOK, cartResponse(snap))
}

func (h *CheckoutHTTP) Submit(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "checkout.submit")

	var req transport.CheckoutRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("checkout_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	res, err := h.Submitter.Submit(ctx, h.Carts.For(c), req)
	if err != nil {
		code := statusFor(err)
		if code == http.StatusInternalServerError {
			l.Error("checkout_error", "status", code, "error", err)
			return echo.NewHTTPError(code, "Failed to place order. Please try again.")
		}
		l.Warn("checkout_error", "status", code, "error", err)
		return echo.NewHTTPError(code, err.Error())
	}

	l.Info("checkout_success", "order_id", res.Order.ID)
	return c.JSON(http.StatusCreated, transport.CheckoutResponse{
		Order:           res.Order,
		NotificationURL: res.NotificationURL,
		RedirectAfterMS: res.RedirectAfter.Milliseconds(),
	})
}
