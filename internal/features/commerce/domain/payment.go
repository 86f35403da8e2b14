package domain

// PaymentCard holds raw card details on their way to being tokenized.
// It is never stored.
type PaymentCard struct {
	// CardNumber is the primary account number.
	CardNumber string `json:"card_number"`
	// Expiry is the expiration date as MMYY.
	Expiry string `json:"expiry"`
	// SecurityCode is the CVV.
	SecurityCode string `json:"security_code"`
}

// Validate checks that Expiry is four digits.
func (c PaymentCard) Validate() error {
	if len(c.Expiry) != 4 {
		return &ValidationError{Rule: RuleCardExpiry, Message: "Please enter a valid expiration date."}
	}
	for _, r := range c.Expiry {
		if r < '0' || r > '9' {
			return &ValidationError{Rule: RuleCardExpiry, Message: "Please enter a valid expiration date."}
		}
	}
	return nil
}

// ExpirationMonth returns the MM part of Expiry.
func (c PaymentCard) ExpirationMonth() string {
	return c.Expiry[:2]
}

// ExpirationYear returns the four digit year of Expiry.
func (c PaymentCard) ExpirationYear() string {
	return "20" + c.Expiry[2:]
}

// SavedPaymentMethod is a tokenized card on file.
type SavedPaymentMethod struct {
	// PaymentID is the provider's identifier for the card.
	PaymentID string `json:"payment_id"`
	// Token is used to pay for orders with this card.
	Token string `json:"token"`
	// CardholderName is the name printed on the card.
	CardholderName string `json:"cardholder_name"`
	// CardType is the card network, e.g. "Visa".
	CardType string `json:"cc_type"`
	// Expiry is the expiration date as MMYY.
	Expiry string `json:"expiry"`
	// LastFour is the last four digits of the card number.
	LastFour string `json:"lastfour"`
}
