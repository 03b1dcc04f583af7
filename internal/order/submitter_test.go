package order

import (
	"context"
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/aura_shop/internal/cart"
	"github.com/Skotchmaster/aura_shop/internal/models"
	"github.com/Skotchmaster/aura_shop/internal/notify"
	"github.com/Skotchmaster/aura_shop/internal/transport"
)

type fakeInserter struct {
	orders []models.Order
	err    error
}

func (f *fakeInserter) InsertOrder(_ context.Context, o *models.Order) error {
	if f.err != nil {
		return f.err
	}
	o.ID = "order-1"
	f.orders = append(f.orders, *o)
	return nil
}

type recordingSink struct {
	sent []notify.Notification
	err  error
}

func (r *recordingSink) Send(_ context.Context, n notify.Notification) error {
	r.sent = append(r.sent, n)
	return r.err
}

func validForm() transport.CheckoutRequest {
	return transport.CheckoutRequest{
		Email:     "ada@example.com",
		Phone:     "+15550100",
		FirstName: "Ada",
		LastName:  "Lovelace",
		Address:   "12 Analytical Row",
		City:      "London",
		State:     "LDN",
		Zip:       "N1 9GU",
	}
}

func filledCart() *cart.Store {
	s := cart.NewStore()
	serum := models.Product{ID: "p1", Name: "Serum", Price: decimal.RequireFromString("10.00"), LuxuryImageURL: "serum.jpg"}
	cream := models.Product{ID: "p2", Name: "Cream", Price: decimal.RequireFromString("25.50"), LuxuryImageURL: "cream.jpg"}
	s.AddToCart(serum)
	s.AddToCart(serum)
	s.AddToCart(cream)
	return s
}

func TestSubmit_InsertsOneOrderAndClearsCart(t *testing.T) {
	repo := &fakeInserter{}
	sink := &recordingSink{}
	sub := &Submitter{Repo: repo, Sink: sink, WhatsAppNumber: "+972595230839"}
	store := filledCart()
	wantTotal := store.Total()

	res, err := sub.Submit(context.Background(), store, validForm())
	require.NoError(t, err)

	require.Len(t, repo.orders, 1)
	o := repo.orders[0]
	assert.True(t, o.TotalAmount.Equal(wantTotal))
	assert.True(t, o.TotalAmount.Equal(decimal.RequireFromString("45.50")))
	assert.Equal(t, "Ada Lovelace", o.CustomerName)
	assert.Equal(t, models.StatusPending, o.Status)
	assert.Equal(t, models.PaymentNone, o.PaymentState)
	require.Len(t, o.OrderItems, 2)
	assert.Equal(t, models.OrderItem{ID: "p1", Name: "Serum", Price: decimal.RequireFromString("10.00"), Quantity: 2, Image: "serum.jpg"}, o.OrderItems[0])
	assert.Equal(t, "N1 9GU", o.ShippingAddress.Zip)

	assert.Zero(t, store.Count())
	assert.Equal(t, DefaultRedirectAfter, res.RedirectAfter)
	assert.Equal(t, "order-1", res.Order.ID)

	require.Len(t, sink.sent, 1)
	assert.Equal(t, "order-1", sink.sent[0].OrderID)
	assert.Equal(t, res.NotificationURL, sink.sent[0].URL)

	u, err := url.Parse(res.NotificationURL)
	require.NoError(t, err)
	assert.Equal(t, "/+972595230839", u.Path)
	assert.Equal(t, res.Message, u.Query().Get("text"))
}

func TestSubmit_InsertFailureLeavesCart(t *testing.T) {
	repo := &fakeInserter{err: errors.New("permission denied")}
	sink := &recordingSink{}
	sub := &Submitter{Repo: repo, Sink: sink}
	store := filledCart()

	_, err := sub.Submit(context.Background(), store, validForm())
	require.ErrorContains(t, err, "permission denied")

	assert.Equal(t, 3, store.Count())
	assert.Empty(t, sink.sent)
}

func TestSubmit_EmptyCartShortCircuits(t *testing.T) {
	repo := &fakeInserter{}
	sub := &Submitter{Repo: repo}

	_, err := sub.Submit(context.Background(), cart.NewStore(), validForm())
	require.ErrorIs(t, err, ErrEmptyCart)
	assert.Empty(t, repo.orders)
}

func TestSubmit_MissingFields(t *testing.T) {
	repo := &fakeInserter{}
	sub := &Submitter{Repo: repo}
	store := filledCart()

	form := validForm()
	form.City = "  "
	form.Zip = ""
	_, err := sub.Submit(context.Background(), store, form)
	require.ErrorIs(t, err, ErrValidation)
	assert.ErrorContains(t, err, "city, zip")

	form = validForm()
	form.Email = "not-an-email"
	_, err = sub.Submit(context.Background(), store, form)
	require.ErrorIs(t, err, ErrValidation)

	assert.Empty(t, repo.orders)
	assert.Equal(t, 3, store.Count())
}

func TestSubmit_SinkFailureStillClears(t *testing.T) {
	repo := &fakeInserter{}
	sink := &recordingSink{err: errors.New("queue down")}
	sub := &Submitter{Repo: repo, Sink: sink, RedirectAfter: time.Second}
	store := filledCart()

	res, err := sub.Submit(context.Background(), store, validForm())
	require.NoError(t, err)
	assert.Len(t, repo.orders, 1)
	assert.Zero(t, store.Count())
	assert.Equal(t, time.Second, res.RedirectAfter)
}

// addingInserter puts another product in the cart while the order is written.
type addingInserter struct {
	fakeInserter
	store *cart.Store
	extra models.Product
}

func (a *addingInserter) InsertOrder(ctx context.Context, o *models.Order) error {
	a.store.AddToCart(a.extra)
	a.store.AddToCart(models.Product{ID: "p1", Name: "Serum", Price: decimal.RequireFromString("10.00")})
	return a.fakeInserter.InsertOrder(ctx, o)
}

func TestSubmit_KeepsItemsAddedDuringCheckout(t *testing.T) {
	store := filledCart()
	mask := models.Product{ID: "p3", Name: "Mask", Price: decimal.RequireFromString("7.00")}
	repo := &addingInserter{store: store, extra: mask}
	sub := &Submitter{Repo: repo}

	_, err := sub.Submit(context.Background(), store, validForm())
	require.NoError(t, err)

	require.Len(t, repo.orders, 1)
	assert.Len(t, repo.orders[0].OrderItems, 2)
	assert.True(t, repo.orders[0].TotalAmount.Equal(decimal.RequireFromString("45.50")))

	items := store.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "p1", items[0].ID)
	assert.Equal(t, 1, items[0].Quantity)
	assert.Equal(t, "p3", items[1].ID)
	assert.Equal(t, 2, store.Count())
}

func TestMessageFormat(t *testing.T) {
	items := []models.OrderItem{
		{Name: "Serum", Price: decimal.RequireFromString("10"), Quantity: 2},
		{Name: "Cream", Price: decimal.RequireFromString("25.5"), Quantity: 1},
	}
	got := Message(validForm(), items, decimal.RequireFromString("45.5"))

	want := "Hello AURA, I have placed a new order!\n\n" +
		"Customer Details:\n- Name: Ada Lovelace\n- Email: ada@example.com\n- Phone: +15550100\n\n" +
		"Shipping Address:\n12 Analytical Row\nLondon, LDN N1 9GU\n\n" +
		"Order Items:\n- Serum (Qty: 2) - $20.00\n- Cream (Qty: 1) - $25.50\n\n" +
		"Total Amount: $45.50\n\nThank you!"
	assert.Equal(t, want, got)
}
