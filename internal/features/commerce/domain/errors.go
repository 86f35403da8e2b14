package domain

import "errors"

// Kind classifies an error surfaced by a commerce provider.
type Kind string

const (
	KindValidation               Kind = "validation"
	KindParse                    Kind = "parse"
	KindUnexpectedResponse       Kind = "unexpected_response"
	KindDeliveryUnavailable      Kind = "delivery_unavailable"
	KindStateUnsupported         Kind = "state_unsupported"
	KindPromoCodeInvalid         Kind = "promo_code_invalid"
	KindPaymentFailure           Kind = "payment_failure"
	KindIncompleteBillingAddress Kind = "incomplete_billing_address"
	KindPOBoxRejected            Kind = "po_box_rejected"
	KindMissingPhoneNumber       Kind = "missing_phone_number"
	KindProviderValidation       Kind = "provider_validation"
	KindReauthenticate           Kind = "reauthenticate"
	KindProvider                 Kind = "provider"
	KindTransport                Kind = "transport"
)

// Messages shown to end users.
const (
	MessageDefault                  = "We encountered an error."
	MessageDeliveryUnavailable      = "Sorry, the product you selected is no longer available for delivery on that date. Please choose another."
	MessageStateUnsupported         = "Sorry, we do not currently support delivery to that state. Please choose another recipient."
	MessagePaymentFailure           = "Sorry, we're having trouble processing the payment. Perhaps try another credit card?"
	MessageIncompleteBillingAddress = `Sorry, your billing address is incomplete. Please update it in "Settings" > "My Profile".`
	MessagePOBoxRejected            = `Sorry, your billing address cannot be a PO Box. Please update it in "Settings" > "My Profile".`
	MessageReauthenticate           = `Sorry, it looks like your password has changed. Please logout in "Settings" and then log back in.`
	MessagePromoCodeInvalid         = "Sorry, that promo code is not valid for this order."
)

// Error is a classified failure. Message is always safe to show to an end
// user; diagnostic detail goes to the log, not into the error.
type Error struct {
	// Kind classifies the failure.
	Kind Kind
	// Message is the user facing text.
	Message string
	// Op names the operation that failed.
	Op string
	// Err is the underlying cause, if any.
	Err error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same Kind, so callers can write
// errors.Is(err, &domain.Error{Kind: domain.KindTransport}).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Op == "" || t.Op == e.Op)
}

// NewError returns an *Error of the given kind.
func NewError(kind Kind, op, message string, err error) *Error {
	return &Error{Kind: kind, Op: op, Message: message, Err: err}
}

// KindOf reports the Kind of err, or "" when err is nil or unclassified.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}

	var verr *ValidationError
	if errors.As(err, &verr) {
		return KindValidation
	}

	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// UserMessage returns the text to show an end user for err.
func UserMessage(err error) string {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Message
	}

	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return MessageDefault
}
