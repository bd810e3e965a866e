package enums

import "fmt"

// PaymentMethod identifies a simulated payment trigger path.
type PaymentMethod string

const (
	PaymentGeneric   PaymentMethod = "generic"
	PaymentEasyPaisa PaymentMethod = "easypaisa"
	PaymentJazzCash  PaymentMethod = "jazzcash"
	PaymentQR        PaymentMethod = "qr"
)

var validPaymentMethods = []PaymentMethod{
	PaymentGeneric,
	PaymentEasyPaisa,
	PaymentJazzCash,
	PaymentQR,
}

// DisplayName returns the customer-facing brand name.
func (p PaymentMethod) DisplayName() string {
	switch p {
	case PaymentEasyPaisa:
		return "EasyPaisa"
	case PaymentJazzCash:
		return "JazzCash"
	case PaymentQR:
		return "QR"
	default:
		return "Card"
	}
}

// String implements fmt.Stringer.
func (p PaymentMethod) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PaymentMethod.
func (p PaymentMethod) IsValid() bool {
	for _, candidate := range validPaymentMethods {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePaymentMethod converts raw input into a PaymentMethod.
func ParsePaymentMethod(value string) (PaymentMethod, error) {
	for _, candidate := range validPaymentMethods {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid payment method %q", value)
}
