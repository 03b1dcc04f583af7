package notify

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinkEncodesLikeEncodeURIComponent(t *testing.T) {
	link := Link("+972595230839", "Hello AURA, 2 items & $45.50\nThanks!")

	assert.True(t, strings.HasPrefix(link, "https://wa.me/+972595230839?text="))
	assert.NotContains(t, link[len("https://wa.me/+972595230839"):], "+")
	assert.Contains(t, link, "Hello%20AURA%2C%202%20items%20%26%20%2445.50%0AThanks%21")

	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "Hello AURA, 2 items & $45.50\nThanks!", u.Query().Get("text"))
}

func TestBuyNowMessage(t *testing.T) {
	msg := BuyNowMessage("Rose Oil", decimal.RequireFromString("49.5"))
	assert.Equal(t,
		"Hello AURA, I would like to order Rose Oil. Product Details:\n- Name: Rose Oil\n- Price: $49.5\n\nPlease provide further instructions for my order.",
		msg)
}

func TestInquiryMessage(t *testing.T) {
	assert.Equal(t, "Hello AURA, I would like to inquire about Rose Oil.", InquiryMessage("Rose Oil"))
}

func TestNewNotificationCarriesLink(t *testing.T) {
	n := NewNotification("o1", "+1555", "hi there")
	assert.Equal(t, "https://wa.me/+1555?text=hi%20there", n.URL)
	assert.False(t, n.CreatedAt.IsZero())
}

func TestSinkFuncAndLogSink(t *testing.T) {
	var got Notification
	s := SinkFunc(func(_ context.Context, n Notification) error {
		got = n
		return errors.New("relay down")
	})
	require.Error(t, s.Send(context.Background(), Notification{OrderID: "o1"}))
	assert.Equal(t, "o1", got.OrderID)

	require.NoError(t, LogSink{}.Send(context.Background(), Notification{}))
}
