package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"provide-client/internal/features/commerce/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestProvideAdapter_CustomerExists verifies the email is normalized and the flag mapped.
func TestProvideAdapter_CustomerExists(t *testing.T) {
	a, transport, _ := newTestAdapter(t, ok(`{"CustomerExists":false}`))

	exists, err := a.CustomerExists(context.Background(), "someone+promo@example.com")
	require.NoError(t, err)
	assert.False(t, exists)
	assert.Equal(t, "someone@example.com", transport.requests[0].Query.Get("email"))
}

// TestProvideAdapter_CreateCustomer verifies the request body and the returned account.
func TestProvideAdapter_CreateCustomer(t *testing.T) {
	a, transport, _ := newTestAdapter(t, ok(`{"CustomerId":123,"AuthenticationContext":{"AuthenticationToken":"tok"}}`))

	account, err := a.CreateCustomer(context.Background(), "someone@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "123", account.CustomerID)
	assert.Equal(t, "tok", account.AuthenticationToken)

	req := transport.requests[0]
	assert.Equal(t, http.MethodPost, req.Method)
	assert.JSONEq(t, `{"Email":"someone@example.com","Password":"secret","SendUpgradeAccountEmail":true}`, string(req.Body))
}

// TestProvideAdapter_Login verifies a successful login returns the token.
func TestProvideAdapter_Login(t *testing.T) {
	a, transport, _ := newTestAdapter(t, ok(`{"AuthenticationContext":{"AuthenticationToken":"tok"}}`))

	token, success, err := a.Login(context.Background(), "someone@example.com", "secret")
	require.NoError(t, err)
	assert.True(t, success)
	assert.Equal(t, "tok", token)
	assert.Equal(t, "secret", transport.requests[0].Query.Get("password"))
}

// TestProvideAdapter_LoginFailed verifies a rejected password is not an error and is not logged.
func TestProvideAdapter_LoginFailed(t *testing.T) {
	a, _, logs := newTestAdapter(t, fault(FaultLoginFailed, "Invalid credentials"))

	token, success, err := a.Login(context.Background(), "someone@example.com", "wrong")
	require.NoError(t, err)
	assert.False(t, success)
	assert.Empty(t, token)
	assert.Zero(t, logs.Len())
}

// TestProvideAdapter_LoginOtherFault verifies other login faults surface with a redacted log.
func TestProvideAdapter_LoginOtherFault(t *testing.T) {
	a, _, logs := newTestAdapter(t, fault("ServerError", "boom"))

	_, success, err := a.Login(context.Background(), "someone@example.com", "secret")
	require.Error(t, err)
	assert.False(t, success)
	assert.Equal(t, domain.KindProvider, domain.KindOf(err))

	request := logs.All()[0].ContextMap()["request"].(map[string]interface{})
	assert.Equal(t, redacted, request["body"])
}

// TestProvideAdapter_GetCustomerByID verifies the details mapping.
func TestProvideAdapter_GetCustomerByID(t *testing.T) {
	a, _, _ := newTestAdapter(t, ok(storedCustomer))

	customer, err := a.GetCustomerByID(context.Background(), "42", "tok")
	require.NoError(t, err)

	assert.Equal(t, domain.Customer{
		FirstName:   "Testy",
		LastName:    "Tester",
		Street1:     "800 Market St",
		City:        "San Francisco",
		State:       "CA",
		PostalCode:  "94102",
		CountryCode: "US",
		Phone:       "4155551234",
	}, *customer)
}

// TestProvideAdapter_GetCustomerGuest verifies null Details map to an empty customer.
func TestProvideAdapter_GetCustomerGuest(t *testing.T) {
	a, transport, _ := newTestAdapter(t, ok(`{"Customer":{"CustomerId":"7","Details":null}}`))

	customer, err := a.GetCustomerByEmail(context.Background(), "guest+x@example.com", "tok")
	require.NoError(t, err)
	assert.Equal(t, domain.Customer{}, *customer)

	assert.Equal(t, pathGetCustomerByEmail, transport.requests[0].Path)
	assert.Equal(t, "guest@example.com", transport.requests[0].Query.Get("email"))
}

// TestProvideAdapter_GetCustomerMissingDetailKey verifies incomplete details are unexpected.
func TestProvideAdapter_GetCustomerMissingDetailKey(t *testing.T) {
	a, _, _ := newTestAdapter(t, ok(`{"Customer":{"CustomerId":"7","Details":{"FirstName":"Testy"}}}`))

	_, err := a.GetCustomerByID(context.Background(), "7", "tok")
	require.Error(t, err)
	assert.Equal(t, domain.KindUnexpectedResponse, domain.KindOf(err))

	var shapeErr *ShapeError
	require.True(t, errors.As(err, &shapeErr))
	assert.Contains(t, shapeErr.Missing, "Customer.Details.Phone1")
	assert.NotContains(t, shapeErr.Missing, "Customer.Details.FirstName")
}

// TestProvideAdapter_UpdateCustomer verifies defaults and normalizers are applied.
func TestProvideAdapter_UpdateCustomer(t *testing.T) {
	a, transport, _ := newTestAdapter(t, ok(`{}`))

	err := a.UpdateCustomer(context.Background(), "42", domain.Customer{
		FirstName:  "José",
		LastName:   "O'Brien",
		Company:    "A Company Name That Is Far Too Long To Fit",
		Street1:    "1 Main St",
		City:       "Springfield",
		State:      "IL",
		PostalCode: "62701-1234",
		Phone:      "+1 (217) 555-0100",
	}, "tok")
	require.NoError(t, err)

	req := transport.requests[0]
	assert.Equal(t, http.MethodPut, req.Method)

	var body updateCustomerRequest
	require.NoError(t, json.Unmarshal(req.Body, &body))
	assert.Equal(t, "42", body.CustomerID)
	assert.Equal(t, "62701", body.Details.Zip)
	assert.Equal(t, "2175550100", body.Details.Phone1)
	assert.Equal(t, "1 Main St", body.Details.Address1)
	assert.Len(t, []rune(body.Details.CompanyName), 30)
}

// TestProvideAdapter_UpdateCustomerEmpty verifies an empty customer gets the default billing block.
func TestProvideAdapter_UpdateCustomerEmpty(t *testing.T) {
	a, transport, _ := newTestAdapter(t, ok(`{}`))

	require.NoError(t, a.UpdateCustomer(context.Background(), "42", domain.Customer{}, "tok"))

	var body updateCustomerRequest
	require.NoError(t, json.Unmarshal(transport.requests[0].Body, &body))
	assert.Equal(t, "Sincerely", body.Details.FirstName)
	assert.Equal(t, "4840 Eastgate Mall", body.Details.Address1)
	assert.Equal(t, "92121", body.Details.Zip)
	assert.Equal(t, "4153602333", body.Details.Phone1)
}

// TestProvideAdapter_GetCustomerRecipients verifies malformed entries are
// skipped and a null country defaults to US.
func TestProvideAdapter_GetCustomerRecipients(t *testing.T) {
	body := `{"Recipients":[
		{"RecipientId":1,"FirstName":"Ann","LastName":"Lee","CompanyName":null,"Address1":"1 A St","Address2":"",
		 "City":"Austin","State":"TX","Zip":"78701","CountryCode":null,"Phone":"5125550100"},
		{"RecipientId":2,"FirstName":"Bob"},
		{"RecipientId":3,"FirstName":"Cy","LastName":"Ng","CompanyName":"Acme","Address1":"2 B St","Address2":"Apt 4",
		 "City":"Toronto","State":"ON","Zip":"M5V","CountryCode":"CA","Phone":""}
	]}`
	a, _, _ := newTestAdapter(t, ok(body))

	recipients, err := a.GetCustomerRecipients(context.Background(), "42", "tok")
	require.NoError(t, err)
	require.Len(t, recipients, 2)

	assert.Equal(t, "1", recipients[0].RecipientID)
	assert.Equal(t, "US", recipients[0].CountryCode)
	assert.Empty(t, recipients[0].Company)
	assert.Equal(t, "5125550100", recipients[0].Phone)

	assert.Equal(t, "3", recipients[1].RecipientID)
	assert.Equal(t, "CA", recipients[1].CountryCode)
	assert.Equal(t, "Apt 4", recipients[1].Street2)
}

// TestProvideAdapter_SendForgotPasswordEmail verifies the request.
func TestProvideAdapter_SendForgotPasswordEmail(t *testing.T) {
	a, transport, _ := newTestAdapter(t, ok(`{}`))

	require.NoError(t, a.SendForgotPasswordEmail(context.Background(), "someone+x@example.com"))
	assert.Equal(t, pathForgotPassword, transport.requests[0].Path)
	assert.JSONEq(t, `{"Email":"someone@example.com"}`, string(transport.requests[0].Body))
}
