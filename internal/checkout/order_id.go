package checkout

import (
	"math/rand"
	"strings"
)

const (
	orderIDPrefix   = "ORD-"
	orderIDLength   = 9
	orderIDAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// GenerateOrderID mints a display-only order identifier: ORD- followed by
// nine random base-36 uppercase characters. Identifiers are not collision
// checked; they are not a durable record.
func GenerateOrderID() string {
	var b strings.Builder
	b.Grow(len(orderIDPrefix) + orderIDLength)
	b.WriteString(orderIDPrefix)
	for i := 0; i < orderIDLength; i++ {
		b.WriteByte(orderIDAlphabet[rand.Intn(len(orderIDAlphabet))])
	}
	return b.String()
}
