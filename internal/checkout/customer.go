package checkout

import (
	"context"
	"encoding/json"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	pkgerrors "github.com/rnitealiii/EliteMart/pkg/errors"
	"github.com/rnitealiii/EliteMart/pkg/storage"
)

var phonePattern = regexp.MustCompile(`^\+?[0-9]{10,15}$`)

// CustomerInfo is the delivery contact captured by the checkout form. It is
// persisted once submitted and kept until overwritten by a later order, so
// the form can be prefilled next time.
type CustomerInfo struct {
	FullName string `json:"fullName" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Phone    string `json:"phone" validate:"required,phone"`
	Address  string `json:"address" validate:"required"`
	City     string `json:"city" validate:"required"`
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	return v
}

// trimmed returns a copy with every field trimmed; validation and persistence
// both operate on the trimmed value.
func (c CustomerInfo) trimmed() CustomerInfo {
	return CustomerInfo{
		FullName: strings.TrimSpace(c.FullName),
		Email:    strings.TrimSpace(c.Email),
		Phone:    strings.TrimSpace(c.Phone),
		Address:  strings.TrimSpace(c.Address),
		City:     strings.TrimSpace(c.City),
	}
}

// validateCustomerInfo distinguishes missing required fields from an invalid
// phone number: missing fields win when both apply, matching the original
// form's check order.
func validateCustomerInfo(v *validator.Validate, info CustomerInfo) error {
	err := v.Struct(info)
	if err == nil {
		return nil
	}

	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "validate customer info")
	}

	var missing []string
	invalidPhone := false
	for _, fieldErr := range errs {
		switch fieldErr.Tag() {
		case "required":
			missing = append(missing, fieldErr.Field())
		case "phone":
			invalidPhone = true
		}
	}
	if len(missing) > 0 {
		return pkgerrors.New(pkgerrors.CodeMissingField, "required fields missing").WithDetails(map[string]any{
			"fields": missing,
		})
	}
	if invalidPhone {
		return pkgerrors.New(pkgerrors.CodeInvalidPhone, "phone number must match ^\\+?[0-9]{10,15}$")
	}
	return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "validate customer info")
}

func persistCustomerInfo(ctx context.Context, kv storage.KV, info CustomerInfo) error {
	raw, err := json.Marshal(info)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode customer info")
	}
	return kv.Set(ctx, storage.KeyCustomerInfo, string(raw))
}

// loadCustomerInfo returns the stored contact, if any. Absent or malformed
// values read back as no data.
func loadCustomerInfo(ctx context.Context, kv storage.KV) (CustomerInfo, bool) {
	raw, err := kv.Get(ctx, storage.KeyCustomerInfo)
	if err != nil {
		return CustomerInfo{}, false
	}
	var info CustomerInfo
	if err := json.Unmarshal([]byte(raw), &info); err != nil {
		return CustomerInfo{}, false
	}
	return info, true
}
