package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/aura_shop/internal/catalog"
	"github.com/Skotchmaster/aura_shop/internal/models"
	"github.com/Skotchmaster/aura_shop/internal/notify"
	"github.com/Skotchmaster/aura_shop/internal/search"
	"github.com/Skotchmaster/aura_shop/internal/transport"
	"github.com/Skotchmaster/aura_shop/internal/util"
	"github.com/Skotchmaster/aura_shop/pkg/logging"
)

type CatalogHTTP struct {
	Reader         *catalog.Reader
	Searcher       search.Searcher
	WhatsAppNumber string
}

func (h *CatalogHTTP) ListProducts(c echo.Context) error {
	l := logging.FromContext(c.Request().Context()).With("handler", "catalog.list")

	var featured *bool
	if raw := c.QueryParam("featured"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			l.Warn("catalog_list_error", "status", 400, "reason", "featured is not a bool")
			return echo.NewHTTPError(http.StatusBadRequest, "featured must be true or false")
		}
		featured = &v
	}

	products := catalog.Filter(h.Reader.Products(), c.QueryParam("category"), featured)

	resp := echo.Map{
		"products": products,
		"loading":  !h.Reader.Loaded(),
	}
	if msg := h.Reader.LastError(); msg != "" {
		resp["error"] = msg
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *CatalogHTTP) GetProduct(c echo.Context) error {
	p, ok := h.Reader.Product(c.Param("id"))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "product not found")
	}
	return c.JSON(http.StatusOK, p)
}

func (h *CatalogHTTP) Search(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.search")

	q := c.QueryParam("q")
	if q == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "query is required")
	}
	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	from, limit := util.Calculate(page, size)

	res, err := h.Searcher.Search(ctx, q, from, limit)
	if err != nil {
		l.Error("search_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "search failed")
	}
	return c.JSON(http.StatusOK, echo.Map{
		"products": res.Items,
		"meta":     util.Meta(page, from, limit, res.Total),
	})
}

// WhatsAppLink builds the buy-now or inquiry link for one product.
func (h *CatalogHTTP) WhatsAppLink(c echo.Context) error {
	p, ok := h.Reader.Product(c.Param("id"))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "product not found")
	}

	var msg string
	switch c.QueryParam("intent") {
	case "", "buy":
		msg = notify.BuyNowMessage(p.Name, p.Price)
	case "inquire":
		msg = notify.InquiryMessage(p.Name)
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "intent must be buy or inquire")
	}

	return c.JSON(http.StatusOK, transport.WhatsAppLinkResponse{
		URL:     notify.Link(h.WhatsAppNumber, msg),
		Message: msg,
	})
}

func productByID(r *catalog.Reader, id string) (models.Product, bool) {
	if id == "" {
		return models.Product{}, false
	}
	return r.Product(id)
}
