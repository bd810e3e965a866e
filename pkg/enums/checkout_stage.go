package enums

import "fmt"

// CheckoutStage names a step within the checkout flow.
type CheckoutStage string

const (
	StageClosed        CheckoutStage = "closed"
	StageOptionSelect  CheckoutStage = "option_select"
	StageFormEntry     CheckoutStage = "form_entry"
	StagePaymentSelect CheckoutStage = "payment_select"
	StageConfirmed     CheckoutStage = "confirmed"
)

var validCheckoutStages = []CheckoutStage{
	StageClosed,
	StageOptionSelect,
	StageFormEntry,
	StagePaymentSelect,
	StageConfirmed,
}

// String implements fmt.Stringer.
func (c CheckoutStage) String() string {
	return string(c)
}

// IsValid reports whether the value is a known CheckoutStage.
func (c CheckoutStage) IsValid() bool {
	for _, candidate := range validCheckoutStages {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCheckoutStage converts raw input into a CheckoutStage.
func ParseCheckoutStage(value string) (CheckoutStage, error) {
	for _, candidate := range validCheckoutStages {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid checkout stage %q", value)
}
