package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/aura_shop/internal/catalog"
	"github.com/Skotchmaster/aura_shop/internal/order"
	"github.com/Skotchmaster/aura_shop/internal/transport"
	"github.com/Skotchmaster/aura_shop/internal/util"
	"github.com/Skotchmaster/aura_shop/pkg/logging"
)

type AdminHTTP struct {
	Catalog *catalog.Service
	Orders  *order.AdminService
}

func (h *AdminHTTP) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.create_product")

	var req transport.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("product_create_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	p, err := h.Catalog.CreateProduct(ctx, req)
	if err != nil {
		l.Error("product_create_error", "status", statusFor(err), "error", err)
		return httpError(err, "cannot add product to db")
	}

	l.Info("product_create_success", "product_id", p.ID)
	return c.JSON(http.StatusCreated, p)
}

func (h *AdminHTTP) PatchProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.patch_product")

	var req transport.PatchProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("product_patch_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	p, err := h.Catalog.PatchProduct(ctx, c.Param("id"), req)
	if err != nil {
		l.Warn("product_patch_error", "status", statusFor(err), "error", err)
		return httpError(err, "cannot update product")
	}

	l.Info("product_patch_success", "product_id", p.ID)
	return c.JSON(http.StatusOK, p)
}

func (h *AdminHTTP) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.delete_product")

	id := c.Param("id")
	if err := h.Catalog.DeleteProduct(ctx, id); err != nil {
		l.Warn("product_delete_error", "status", statusFor(err), "error", err)
		return httpError(err, "cannot delete product from db")
	}

	l.Info("product_delete_success", "product_id", id)
	return c.NoContent(http.StatusNoContent)
}

func (h *AdminHTTP) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.list_orders")

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total, items, err := h.Orders.ListOrders(ctx, offset, limit)
	if err != nil {
		l.Error("list_orders_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list orders")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"data": items,
		"meta": util.Meta(page, offset, limit, total),
	})
}

func (h *AdminHTTP) UpdateOrderStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.update_order_status")

	var req transport.UpdateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	o, err := h.Orders.UpdateStatus(ctx, c.Param("id"), req.Status)
	if err != nil {
		l.Warn("update_order_status_error", "status", statusFor(err), "error", err)
		return httpError(err, "cannot update order")
	}

	l.Info("update_order_status_success", "order_id", o.ID, "order_status", o.Status)
	return c.JSON(http.StatusOK, o)
}
