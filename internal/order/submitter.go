package order

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Skotchmaster/aura_shop/internal/cart"
	"github.com/Skotchmaster/aura_shop/internal/models"
	"github.com/Skotchmaster/aura_shop/internal/notify"
	"github.com/Skotchmaster/aura_shop/internal/transport"
	"github.com/Skotchmaster/aura_shop/pkg/logging"
	"github.com/Skotchmaster/aura_shop/pkg/telemetry"
)

const DefaultRedirectAfter = 3 * time.Second

type Inserter interface {
	InsertOrder(ctx context.Context, o *models.Order) error
}

// Submitter turns a cart and a shipping form into a stored order.
type Submitter struct {
	Repo           Inserter
	Sink           notify.Sink
	WhatsAppNumber string
	RedirectAfter  time.Duration
}

type Result struct {
	Order           models.Order
	Message         string
	NotificationURL string
	RedirectAfter   time.Duration
}

func validateForm(f transport.CheckoutRequest) error {
	required := []struct{ name, value string }{
		{"email", f.Email},
		{"phone", f.Phone},
		{"firstName", f.FirstName},
		{"lastName", f.LastName},
		{"address", f.Address},
		{"city", f.City},
		{"state", f.State},
		{"zip", f.Zip},
	}
	var missing []string
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			missing = append(missing, r.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrValidation, strings.Join(missing, ", "))
	}
	if !strings.Contains(f.Email, "@") {
		return fmt.Errorf("%w: invalid email", ErrValidation)
	}
	return nil
}

func trimForm(f transport.CheckoutRequest) transport.CheckoutRequest {
	return transport.CheckoutRequest{
		Email:     strings.TrimSpace(f.Email),
		Phone:     strings.TrimSpace(f.Phone),
		FirstName: strings.TrimSpace(f.FirstName),
		LastName:  strings.TrimSpace(f.LastName),
		Address:   strings.TrimSpace(f.Address),
		City:      strings.TrimSpace(f.City),
		State:     strings.TrimSpace(f.State),
		Zip:       strings.TrimSpace(f.Zip),
	}
}

// Submit stores exactly one order for the current cart contents. The cart is
// cleared only after the insert succeeds; a failed insert leaves it untouched.
// The notification hand-off is best effort and never fails the submission.
func (s *Submitter) Submit(ctx context.Context, store *cart.Store, form transport.CheckoutRequest) (*Result, error) {
	ctx, end := telemetry.StartSpan(ctx, "order.submit")
	defer end()
	l := logging.FromContext(ctx).With("svc", "order.submit")

	snap := store.Snapshot()
	if len(snap.Items) == 0 {
		return nil, ErrEmptyCart
	}
	form = trimForm(form)
	if err := validateForm(form); err != nil {
		return nil, err
	}

	items := make(models.OrderItems, 0, len(snap.Items))
	for _, it := range snap.Items {
		items = append(items, models.OrderItem{
			ID:       it.ID,
			Name:     it.Name,
			Price:    it.Price,
			Quantity: it.Quantity,
			Image:    it.LuxuryImageURL,
		})
	}

	o := models.Order{
		CustomerName:  form.FirstName + " " + form.LastName,
		CustomerEmail: form.Email,
		CustomerPhone: form.Phone,
		ShippingAddress: models.ShippingAddress{
			FirstName: form.FirstName,
			LastName:  form.LastName,
			Address:   form.Address,
			City:      form.City,
			State:     form.State,
			Zip:       form.Zip,
		},
		OrderItems:   items,
		TotalAmount:  snap.Total,
		Status:       models.StatusPending,
		PaymentState: models.PaymentNone,
	}

	if err := s.Repo.InsertOrder(ctx, &o); err != nil {
		l.Error("order_insert_failed", "items", len(items), "error", err)
		return nil, fmt.Errorf("insert order: %w", err)
	}
	l = l.With("order_id", o.ID)

	msg := Message(form, items, snap.Total)
	n := notify.NewNotification(o.ID, s.WhatsAppNumber, msg)
	if s.Sink != nil {
		if err := s.Sink.Send(ctx, n); err != nil {
			l.Warn("order_notification_failed", "error", err)
		}
	}

	store.Settle(snap.Items)

	redirect := s.RedirectAfter
	if redirect <= 0 {
		redirect = DefaultRedirectAfter
	}
	l.Info("order_placed", "total", snap.Total.StringFixed(2), "items", len(items))

	return &Result{
		Order:           o,
		Message:         msg,
		NotificationURL: n.URL,
		RedirectAfter:   redirect,
	}, nil
}
