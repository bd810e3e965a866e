package errors

import (
	stdErrors "errors"
	"fmt"

	"github.com/rnitealiii/EliteMart/pkg/enums"
)

type Code string

const (
	// Catalog load failures.
	CodeNetworkFailure   Code = "NETWORK_FAILURE"
	CodeHTTPStatus       Code = "HTTP_STATUS"
	CodeMalformedPayload Code = "MALFORMED_PAYLOAD"

	// Customer form validation failures.
	CodeMissingField Code = "MISSING_FIELD"
	CodeInvalidPhone Code = "INVALID_PHONE"

	// Transition guard violations.
	CodeEmptyCart Code = "EMPTY_CART"

	CodeValidation Code = "VALIDATION_ERROR"
	CodeDependency Code = "DEPENDENCY_ERROR"
	CodeInternal   Code = "INTERNAL_ERROR"
)

// Metadata describes how an error surfaces to the customer. Every error in
// this application recovers into a transient toast; the metadata carries the
// toast wording and severity for each code.
type Metadata struct {
	Severity       enums.Severity
	PublicMessage  string
	DetailsAllowed bool
}

var metadataByCode = map[Code]Metadata{
	CodeNetworkFailure: {
		Severity:      enums.SeverityError,
		PublicMessage: "Failed to load products. Please try again later.",
	},
	CodeHTTPStatus: {
		Severity:      enums.SeverityError,
		PublicMessage: "Failed to load products. Please try again later.",
	},
	CodeMalformedPayload: {
		Severity:      enums.SeverityError,
		PublicMessage: "Failed to load products. Please try again later.",
	},
	CodeMissingField: {
		Severity:       enums.SeverityError,
		PublicMessage:  "Please fill in all required fields",
		DetailsAllowed: true,
	},
	CodeInvalidPhone: {
		Severity:      enums.SeverityError,
		PublicMessage: "Please enter a valid phone number",
	},
	CodeEmptyCart: {
		Severity:      enums.SeverityError,
		PublicMessage: "Your cart is empty!",
	},
	CodeValidation: {
		Severity:       enums.SeverityError,
		PublicMessage:  "validation failed",
		DetailsAllowed: true,
	},
	CodeDependency: {
		Severity:      enums.SeverityError,
		PublicMessage: "Something went wrong. Please try again.",
	},
	CodeInternal: {
		Severity:      enums.SeverityError,
		PublicMessage: "Something went wrong. Please try again.",
	},
}

func MetadataFor(code Code) Metadata {
	if meta, ok := metadataByCode[code]; ok {
		return meta
	}
	return metadataByCode[CodeInternal]
}

type Error struct {
	code    Code
	message string
	details any
	cause   error
}

func New(code Code, message string) *Error {
	return &Error{code: code, message: message}
}

func Wrap(code Code, err error, message string) *Error {
	if err == nil {
		return New(code, message)
	}
	return &Error{code: code, message: message, cause: err}
}

func (e *Error) Code() Code {
	if e == nil {
		return CodeInternal
	}
	return e.code
}

func (e *Error) Message() string {
	if e == nil {
		return ""
	}
	return e.message
}

func (e *Error) Details() any {
	if e == nil {
		return nil
	}
	return e.details
}

func (e *Error) WithDetails(details any) *Error {
	if e == nil {
		return nil
	}
	e.details = details
	return e
}

// PublicMessage returns the toast wording configured for the error's code.
func (e *Error) PublicMessage() string {
	return MetadataFor(e.Code()).PublicMessage
}

// Severity returns the toast severity configured for the error's code.
func (e *Error) Severity() enums.Severity {
	return MetadataFor(e.Code()).Severity
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", e.code, e.message)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

func As(err error) *Error {
	if err == nil {
		return nil
	}
	var typed *Error
	if stdErrors.As(err, &typed) {
		return typed
	}
	return nil
}
