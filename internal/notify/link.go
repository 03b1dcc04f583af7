// Package notify builds WhatsApp click-to-chat links and hands order
// notifications to an outbound sink.
package notify

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
)

const waBase = "https://wa.me/"

// Link returns the click-to-chat URL for phone with text percent-encoded.
// Spaces become %20 rather than '+', matching encodeURIComponent.
func Link(phone, text string) string {
	return waBase + phone + "?text=" + encodeComponent(text)
}

func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// BuyNowMessage is the one-tap order request for a single product.
func BuyNowMessage(name string, price decimal.Decimal) string {
	return fmt.Sprintf(
		"Hello AURA, I would like to order %s. Product Details:\n- Name: %s\n- Price: $%s\n\nPlease provide further instructions for my order.",
		name, name, price.String(),
	)
}

func InquiryMessage(name string) string {
	return fmt.Sprintf("Hello AURA, I would like to inquire about %s.", name)
}
