package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Skotchmaster/aura_shop/internal/auth"
	"github.com/Skotchmaster/aura_shop/internal/cart"
	"github.com/Skotchmaster/aura_shop/internal/catalog"
	"github.com/Skotchmaster/aura_shop/internal/middleware/csrf"
	"github.com/Skotchmaster/aura_shop/internal/models"
	"github.com/Skotchmaster/aura_shop/internal/notify"
	"github.com/Skotchmaster/aura_shop/internal/order"
	"github.com/Skotchmaster/aura_shop/internal/search"
	"github.com/Skotchmaster/aura_shop/pkg/db/dbtest"
	authmw "github.com/Skotchmaster/aura_shop/pkg/middleware/auth"
)

const testWhatsApp = "+972595230839"

type testApp struct {
	e       *echo.Echo
	db      *gorm.DB
	reader  *catalog.Reader
	sink    *captureSink
	authSvc *auth.Service
}

type captureSink struct {
	sent []notify.Notification
}

func (s *captureSink) Send(_ context.Context, n notify.Notification) error {
	s.sent = append(s.sent, n)
	return nil
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	db := dbtest.Open(t, &models.Product{}, &models.Order{}, &models.User{}, &models.RefreshToken{})
	catalogRepo := &catalog.GormRepo{DB: db}
	reader := catalog.NewReader(catalogRepo, nil)
	sink := &captureSink{}

	sessions := cart.NewSessions(time.Hour)
	carts := &SessionCarts{Sessions: sessions, TTL: time.Hour}

	authSvc := &auth.Service{
		Repo:          &auth.GormRepo{DB: db},
		AccessSecret:  []byte("access"),
		RefreshSecret: []byte("refresh"),
		AdminEmails:   []string{"owner@aura.shop"},
		BcryptCost:    bcrypt.MinCost,
	}
	gate := authmw.NewAutoRefreshMiddleware(authSvc.AccessSecret, authSvc, false)

	e := echo.New()
	Register(e, &Deps{
		Catalog: &CatalogHTTP{
			Reader:         reader,
			Searcher:       search.SnapshotSearcher{Source: reader},
			WhatsAppNumber: testWhatsApp,
		},
		Cart: &CartHTTP{Carts: carts, Reader: reader},
		Checkout: &CheckoutHTTP{
			Carts: carts,
			Submitter: &order.Submitter{
				Repo:           &order.GormRepo{DB: db},
				Sink:           sink,
				WhatsAppNumber: testWhatsApp,
			},
		},
		Auth:      &AuthHTTP{Svc: authSvc, AdminRedirectURL: "https://brand-aura-magic.lovable.app/"},
		Admin:     &AdminHTTP{Catalog: &catalog.Service{Repo: catalogRepo}, Orders: &order.AdminService{Repo: &order.GormRepo{DB: db}}},
		AdminGate: gate.RequireAdmin,
		CSRF:      csrf.Middleware(csrf.Config{}),
	})

	return &testApp{e: e, db: db, reader: reader, sink: sink, authSvc: authSvc}
}

func (a *testApp) seedProduct(t *testing.T, name, price string, createdAt time.Time) models.Product {
	t.Helper()
	p := models.Product{
		Name:      name,
		Price:     decimal.RequireFromString(price),
		Category:  "skin",
		InStock:   true,
		CreatedAt: createdAt,
	}
	require.NoError(t, a.db.Create(&p).Error)
	require.NoError(t, a.reader.Refresh(context.Background()))
	return p
}

// client is a tiny browser: it keeps cookies and echoes the CSRF token back.
type client struct {
	t       *testing.T
	app     *testApp
	cookies map[string]*http.Cookie
}

func (a *testApp) client(t *testing.T) *client {
	return &client{t: t, app: a, cookies: map[string]*http.Cookie{}}
}

func (c *client) do(method, path string, body any) *httptest.ResponseRecorder {
	c.t.Helper()

	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(c.t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	req.Header.Set("Origin", "http://example.com")
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}
	if tok, ok := c.cookies["XSRF-TOKEN"]; ok {
		req.Header.Set("X-CSRF-Token", tok.Value)
	}

	rec := httptest.NewRecorder()
	c.app.e.ServeHTTP(rec, req)

	for _, ck := range rec.Result().Cookies() {
		if ck.MaxAge < 0 {
			delete(c.cookies, ck.Name)
			continue
		}
		c.cookies[ck.Name] = ck
	}
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}
