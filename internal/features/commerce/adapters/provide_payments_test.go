package adapter

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"provide-client/internal/features/commerce/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestProvideAdapter_CreatePaymentMethod verifies the card body and the
// default billing block.
func TestProvideAdapter_CreatePaymentMethod(t *testing.T) {
	a, transport, logs := newTestAdapter(t, ok(`{"PaymentMethod":{"Token":"2020202"}}`))

	token, err := a.CreatePaymentMethod(context.Background(), "42", domain.PaymentCard{
		CardNumber:   "4111111111111111",
		Expiry:       "0927",
		SecurityCode: "123",
	}, "tok")
	require.NoError(t, err)
	assert.Equal(t, "2020202", token)
	assert.Zero(t, logs.Len())

	var body createPaymentMethodRequest
	require.NoError(t, json.Unmarshal(transport.requests[0].Body, &body))

	card := body.PaymentMethod
	assert.Equal(t, newCreditCardType, card.Type)
	assert.Equal(t, "42", card.CustomerID)
	assert.Equal(t, "09", card.ExpirationMonth)
	assert.Equal(t, "2027", card.ExpirationYear)
	assert.Equal(t, "Sincerely", card.FirstName)
	assert.Equal(t, "Customer", card.LastName)
	assert.Equal(t, "4840 Eastgate Mall", card.Address1)
	assert.Equal(t, "San Diego", card.City)
	assert.Equal(t, "92121", card.Zip)
	assert.Equal(t, "4153602333", card.Phone)
}

// TestProvideAdapter_CreatePaymentMethodBadExpiry verifies the expiry is
// checked before anything is sent.
func TestProvideAdapter_CreatePaymentMethodBadExpiry(t *testing.T) {
	a, transport, _ := newTestAdapter(t)

	_, err := a.CreatePaymentMethod(context.Background(), "42", domain.PaymentCard{CardNumber: "4111", Expiry: "9/27"}, "tok")
	require.Error(t, err)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
	assert.Empty(t, transport.requests)
}

// TestProvideAdapter_CreatePaymentMethodRedacted verifies the card number never reaches the log.
func TestProvideAdapter_CreatePaymentMethodRedacted(t *testing.T) {
	a, _, logs := newTestAdapter(t, fault(FaultValidationFailed, "Payment declined"))

	_, err := a.CreatePaymentMethod(context.Background(), "42", domain.PaymentCard{
		CardNumber: "4111111111111111", Expiry: "0927", SecurityCode: "123",
	}, "tok")
	require.Error(t, err)
	assert.Equal(t, domain.KindPaymentFailure, domain.KindOf(err))
	assert.Equal(t, domain.MessagePaymentFailure, err.Error())

	request := logs.All()[0].ContextMap()["request"].(map[string]interface{})
	assert.Equal(t, redacted, request["body"])
}

// TestProvideAdapter_GetPaymentMethods verifies expired and malformed cards are skipped.
func TestProvideAdapter_GetPaymentMethods(t *testing.T) {
	body := `{"PaymentMethods":[
		{"PaymentId":1,"Token":"t1","CardHolderName":"Testy Tester","CardType":"Visa","ExpirationMonth":12,"ExpirationYear":2025,"LastFour":"1111"},
		{"PaymentId":2,"Token":"t2","CardHolderName":"Testy Tester","CardType":"Visa","ExpirationMonth":3,"ExpirationYear":2026,"LastFour":"2222"},
		{"PaymentId":3,"Token":"t3","CardHolderName":"Testy Tester","CardType":"Visa","ExpirationMonth":2,"ExpirationYear":2026,"LastFour":"3333"},
		{"PaymentId":4,"Token":"t4","CardHolderName":"Testy Tester","CardType":"MasterCard","ExpirationMonth":"1","ExpirationYear":"2027","LastFour":"4444"},
		{"PaymentId":5,"CardHolderName":"No Token","ExpirationMonth":1,"ExpirationYear":2030,"LastFour":"5555"},
		{"PaymentId":6,"Token":"t6","CardHolderName":"Bad Month","ExpirationMonth":"xx","ExpirationYear":2030,"LastFour":"6666"}
	]}`
	a, transport, _ := newTestAdapter(t, ok(body))
	a.now = func() time.Time { return time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC) }

	methods, err := a.GetPaymentMethods(context.Background(), "42", "tok")
	require.NoError(t, err)
	assert.Equal(t, "42", transport.requests[0].Query.Get("customerId"))

	require.Len(t, methods, 2)
	assert.Equal(t, domain.SavedPaymentMethod{
		PaymentID:      "2",
		Token:          "t2",
		CardholderName: "Testy Tester",
		CardType:       "Visa",
		Expiry:         "0326",
		LastFour:       "2222",
	}, methods[0])
	assert.Equal(t, "0127", methods[1].Expiry)
	assert.Equal(t, "MasterCard", methods[1].CardType)
}

// TestExpired verifies cards stay valid through their expiration month.
func TestExpired(t *testing.T) {
	now := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)

	assert.False(t, expired(3, 2026, now))
	assert.False(t, expired(1, 2027, now))
	assert.True(t, expired(2, 2026, now))
	assert.True(t, expired(12, 2025, now))
}
