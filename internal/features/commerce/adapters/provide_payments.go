package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"provide-client/internal/features/commerce/domain"
	"provide-client/internal/features/commerce/normalize"
)

// CreatePaymentMethod tokenizes a card for later orders. The provider
// requires a billing address on the card; the default one is always sent.
func (a *ProvideAdapter) CreatePaymentMethod(ctx context.Context, customerID string, card domain.PaymentCard, token string) (string, error) {
	if err := card.Validate(); err != nil {
		return "", err
	}

	billing := normalize.FixCustomerAddress(domain.Customer{})

	body := createPaymentMethodRequest{
		PaymentMethod: wireNewCreditCard{
			Type:            newCreditCardType,
			CustomerID:      customerID,
			CardNumber:      card.CardNumber,
			ExpirationMonth: card.ExpirationMonth(),
			ExpirationYear:  card.ExpirationYear(),
			SecurityCode:    card.SecurityCode,
			FirstName:       billing.FirstName,
			LastName:        billing.LastName,
			Address1:        billing.Street1,
			Address2:        billing.Street2,
			City:            billing.City,
			State:           billing.State,
			Zip:             billing.PostalCode,
			CountryCode:     billing.CountryCode,
			Phone:           billing.Phone,
		},
	}

	var resp createPaymentMethodResponse
	if err := a.do(ctx, post("createPaymentMethod", pathCreatePaymentMethod, body, token), &resp); err != nil {
		return "", err
	}
	return resp.PaymentMethod.Token.String(), nil
}

// GetPaymentMethods lists a customer's saved cards. Malformed and expired
// cards are skipped.
func (a *ProvideAdapter) GetPaymentMethods(ctx context.Context, customerID, token string) ([]domain.SavedPaymentMethod, error) {
	params := url.Values{"customerId": {customerID}}

	var resp paymentMethodsResponse
	if err := a.do(ctx, get("getPaymentMethods", pathGetPaymentMethods, params, token), &resp); err != nil {
		return nil, err
	}

	now := a.now()
	methods := make([]domain.SavedPaymentMethod, 0, len(resp.PaymentMethods))

	for _, pm := range resp.PaymentMethods {
		if !pm.hasKeys(paymentMethodKeys...) {
			continue
		}

		month, errMonth := strconv.Atoi(pm.get("ExpirationMonth"))
		year, errYear := strconv.Atoi(pm.get("ExpirationYear"))
		if errMonth != nil || errYear != nil {
			continue
		}
		if expired(month, year, now) {
			continue
		}

		methods = append(methods, domain.SavedPaymentMethod{
			PaymentID:      pm.get("PaymentId"),
			Token:          pm.get("Token"),
			CardholderName: pm.get("CardHolderName"),
			CardType:       pm.get("CardType"),
			Expiry:         fmt.Sprintf("%02d%02d", month, year%100),
			LastFour:       pm.get("LastFour"),
		})
	}

	return methods, nil
}

// expired reports whether a card expiring in month/year is past its
// expiration month at now.
func expired(month, year int, now time.Time) bool {
	return year < now.Year() || (year == now.Year() && month < int(now.Month()))
}
