package order

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/aura_shop/internal/models"
	"github.com/Skotchmaster/aura_shop/internal/transport"
)

func money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

// Summary renders the order lines, one per item.
func Summary(items []models.OrderItem) string {
	lines := make([]string, 0, len(items))
	for _, it := range items {
		line := it.Price.Mul(decimal.NewFromInt(int64(it.Quantity)))
		lines = append(lines, fmt.Sprintf("- %s (Qty: %d) - %s", it.Name, it.Quantity, money(line)))
	}
	return strings.Join(lines, "\n")
}

// Message is the text sent to the shop once an order is stored.
func Message(form transport.CheckoutRequest, items []models.OrderItem, total decimal.Decimal) string {
	var b strings.Builder
	b.WriteString("Hello AURA, I have placed a new order!\n\n")
	b.WriteString("Customer Details:\n")
	fmt.Fprintf(&b, "- Name: %s %s\n", form.FirstName, form.LastName)
	fmt.Fprintf(&b, "- Email: %s\n", form.Email)
	fmt.Fprintf(&b, "- Phone: %s\n\n", form.Phone)
	b.WriteString("Shipping Address:\n")
	fmt.Fprintf(&b, "%s\n%s, %s %s\n\n", form.Address, form.City, form.State, form.Zip)
	b.WriteString("Order Items:\n")
	b.WriteString(Summary(items))
	fmt.Fprintf(&b, "\n\nTotal Amount: %s\n\nThank you!", money(total))
	return b.String()
}
