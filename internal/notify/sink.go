package notify

import (
	"context"
	"time"

	"github.com/Skotchmaster/aura_shop/pkg/logging"
)

// Notification is one outbound message to the shop's WhatsApp number.
type Notification struct {
	OrderID   string    `json:"order_id,omitempty"`
	Phone     string    `json:"phone"`
	Text      string    `json:"text"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
}

func NewNotification(orderID, phone, text string) Notification {
	return Notification{
		OrderID:   orderID,
		Phone:     phone,
		Text:      text,
		URL:       Link(phone, text),
		CreatedAt: time.Now().UTC(),
	}
}

// Sink delivers notifications. Delivery is fire-and-forget for callers.
type Sink interface {
	Send(ctx context.Context, n Notification) error
}

// LogSink only records the link; the browser opens it.
type LogSink struct{}

func (LogSink) Send(ctx context.Context, n Notification) error {
	logging.FromContext(ctx).Info("notification_link_ready", "order_id", n.OrderID, "url", n.URL)
	return nil
}

type SinkFunc func(ctx context.Context, n Notification) error

func (f SinkFunc) Send(ctx context.Context, n Notification) error { return f(ctx, n) }
