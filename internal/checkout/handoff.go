package checkout

import (
	"fmt"
	"strings"

	"github.com/rnitealiii/EliteMart/internal/cart"
)

const handoffTrailer = "Please provide delivery address and contact information."

// HandoffMessage formats the entire cart as the plain-text delivery-chat
// message: numbered line items, grand total, the supplied order id and the
// fixed trailer asking for delivery details.
func HandoffMessage(orderID string, snapshot cart.Snapshot) string {
	var b strings.Builder
	b.WriteString("New Order\n\n")
	fmt.Fprintf(&b, "Order ID: %s\n\n", orderID)
	b.WriteString("Items:\n")

	for i, line := range snapshot.Lines {
		fmt.Fprintf(&b, "%d. %s x%d - $%s\n", i+1, line.Name, line.Quantity, line.Subtotal().StringFixed(2))
	}

	fmt.Fprintf(&b, "\nTotal: $%s\n\n", snapshot.FormattedTotal())
	b.WriteString(handoffTrailer)
	return b.String()
}

// HandoffLink builds the wa.me deep link carrying the URL-encoded message,
// newlines delimited as %0A. The link is opened as a new context by the
// rendering boundary, never as in-place navigation.
func HandoffLink(number, message string) string {
	return fmt.Sprintf("https://wa.me/%s?text=%s", number, encodeMessage(message))
}

// encodeMessage percent-encodes the message for a URL query, keeping spaces
// as %20 (not +) so messaging apps render them correctly.
func encodeMessage(message string) string {
	var b strings.Builder
	for _, r := range []byte(message) {
		switch {
		case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z', r >= '0' && r <= '9',
			r == '-', r == '_', r == '.', r == '~':
			b.WriteByte(r)
		default:
			fmt.Fprintf(&b, "%%%02X", r)
		}
	}
	return b.String()
}
