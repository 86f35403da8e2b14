package adapter

import (
	"encoding/json"
	"strings"

	"provide-client/internal/features/commerce/domain"
)

// Fault types the provider reports, plus the ones synthesized locally.
const (
	FaultValidationFailed   = "ValidationFailed"
	FaultLoginFailed        = "LoginFailed"
	FaultNone               = "NoFaultType"
	FaultBadResponse        = "BadResponse"
	FaultUnexpectedResponse = "UnexpectedResponse"
	FaultTransport          = "TransportFailure"
)

const (
	badResponseMessage        = "Provide returned a response that could not be parsed as JSON"
	unexpectedResponseMessage = "The JSON response did not contain what we were expecting"
	validationErrorsMarker    = "ValidationErrors"
)

// Fault is the error payload of a failed provider response.
type Fault struct {
	// FaultType is the provider's error category.
	FaultType string
	// ErrorMessage is the provider's free text description.
	ErrorMessage string
	// PropertyName is the offending field, for new style validation errors.
	PropertyName string
}

// wireFault covers both the legacy and the new style fault bodies.
type wireFault struct {
	FaultType        *string               `json:"FaultType"`
	Message          *string               `json:"Message"`
	ValidationErrors []wireValidationError `json:"ValidationErrors"`
}

// wireValidationError is one entry of a new style fault.
type wireValidationError struct {
	ErrorMessage string `json:"ErrorMessage"`
	PropertyName string `json:"PropertyName"`
}

// ParseFault extracts the fault from an error response body.
func ParseFault(body []byte) Fault {
	var raw *wireFault
	if err := json.Unmarshal(body, &raw); err != nil || raw == nil {
		return Fault{FaultType: FaultBadResponse, ErrorMessage: badResponseMessage}
	}

	fault := Fault{FaultType: FaultNone}
	if raw.FaultType != nil && *raw.FaultType != "" {
		fault.FaultType = *raw.FaultType
	}
	if raw.Message != nil {
		fault.ErrorMessage = *raw.Message
	}

	// {"FaultType":"ValidationFailed","Message":"ValidationErrors","ValidationErrors":[{"ErrorMessage":"...","PropertyName":"..."}]}
	if fault.FaultType == FaultValidationFailed && fault.ErrorMessage == validationErrorsMarker && len(raw.ValidationErrors) > 0 {
		fault.ErrorMessage = raw.ValidationErrors[0].ErrorMessage
		fault.PropertyName = raw.ValidationErrors[0].PropertyName
	}

	return fault
}

// mentions reports whether the fault message contains any of needles,
// ignoring case.
func (f Fault) mentions(needles ...string) bool {
	message := strings.ToLower(f.ErrorMessage)
	for _, n := range needles {
		if strings.Contains(message, strings.ToLower(n)) {
			return true
		}
	}
	return false
}

// isValidation reports whether the provider rejected the request's content.
func (f Fault) isValidation() bool {
	return f.FaultType == FaultValidationFailed
}

// deliveryUnavailable reports whether the product cannot be delivered on
// the requested date.
func (f Fault) deliveryUnavailable() bool {
	return f.isValidation() && f.mentions(
		"ValidateDelivery_CannotDeliveryAllProductsOnDeliveryDate",
		"The products and accessories you selected cannot be fulfilled together",
	)
}

// promoCodeRejected reports whether the provider complained about a promo code.
func (f Fault) promoCodeRejected() bool {
	return f.isValidation() && f.mentions("Promo Code")
}

// Classify maps a fault to the error surfaced to callers of op.
func Classify(op string, f Fault) *domain.Error {
	newError := func(kind domain.Kind, message string) *domain.Error {
		return domain.NewError(kind, op, message, nil)
	}

	switch f.FaultType {
	case FaultValidationFailed:
		// checked in order, the first match wins
		switch {
		case f.deliveryUnavailable():
			return newError(domain.KindDeliveryUnavailable, domain.MessageDeliveryUnavailable)
		case f.mentions("ValidateDelivery_InvalidState", "Delivery is not available to the selected state"):
			return newError(domain.KindStateUnsupported, domain.MessageStateUnsupported)
		case f.mentions("Payment"):
			return newError(domain.KindPaymentFailure, domain.MessagePaymentFailure)
		case f.mentions("Customer"):
			switch strings.ToLower(strings.TrimSpace(f.ErrorMessage)) {
			case "customer phone cannot be blank.":
				return newError(domain.KindMissingPhoneNumber, domain.MessageIncompleteBillingAddress)
			case "customer address cannot be a po box.":
				return newError(domain.KindPOBoxRejected, domain.MessagePOBoxRejected)
			default:
				return newError(domain.KindIncompleteBillingAddress, domain.MessageIncompleteBillingAddress)
			}
		case f.promoCodeRejected():
			return newError(domain.KindPromoCodeInvalid, domain.MessagePromoCodeInvalid)
		}

		message := domain.MessageDefault
		if f.ErrorMessage != "" {
			message += " " + f.ErrorMessage
		}
		return newError(domain.KindProviderValidation, message)

	case FaultLoginFailed:
		return newError(domain.KindReauthenticate, domain.MessageReauthenticate)
	}

	return newError(domain.KindProvider, domain.MessageDefault)
}
