package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"net/url"

	"provide-client/internal/features/commerce/domain"
	"provide-client/internal/features/commerce/normalize"
)

// CustomerExists reports whether an account is registered for email.
func (a *ProvideAdapter) CustomerExists(ctx context.Context, email string) (bool, error) {
	var resp customerExistsResponse
	params := url.Values{"email": {normalize.FixEmail(email)}}

	if err := a.do(ctx, get("doesCustomerExist", pathCustomerExists, params, ""), &resp); err != nil {
		return false, err
	}
	return *resp.CustomerExists, nil
}

// CreateCustomer registers a new account and returns its id and a session token.
func (a *ProvideAdapter) CreateCustomer(ctx context.Context, email, password string) (*domain.CustomerAccount, error) {
	body := createCustomerRequest{
		Email:                   normalize.FixEmail(email),
		Password:                password,
		SendUpgradeAccountEmail: true,
	}

	var resp createCustomerResponse
	if err := a.do(ctx, post("createCustomer", pathCreateCustomer, body, ""), &resp); err != nil {
		return nil, err
	}

	return &domain.CustomerAccount{
		CustomerID:          resp.CustomerID.String(),
		AuthenticationToken: resp.AuthenticationContext.AuthenticationToken.String(),
	}, nil
}

// Login exchanges credentials for a session token. A wrong password is an
// expected outcome: it returns ok == false without an error and is not logged.
func (a *ProvideAdapter) Login(ctx context.Context, email, password string) (string, bool, error) {
	params := url.Values{
		"email":    {normalize.FixEmail(email)},
		"password": {password},
	}

	ex, err := a.roundTrip(ctx, get("login", pathLogin, params, ""))
	if err != nil {
		return "", false, err
	}

	if ex.response.Failed() {
		fault := ParseFault(ex.response.Body)
		if fault.FaultType == FaultLoginFailed {
			return "", false, nil
		}
		return "", false, a.fail(ex, fault)
	}

	var resp loginResponse
	if err := a.decode(ex, &resp); err != nil {
		return "", false, err
	}
	return resp.AuthenticationContext.AuthenticationToken.String(), true, nil
}

// GetCustomerByID fetches the billing details of a customer.
func (a *ProvideAdapter) GetCustomerByID(ctx context.Context, customerID, token string) (*domain.Customer, error) {
	params := url.Values{"customerId": {customerID}}
	return a.getCustomer(ctx, get("getCustomerById", pathGetCustomer, params, token))
}

// GetCustomerByEmail fetches the billing details of a customer.
func (a *ProvideAdapter) GetCustomerByEmail(ctx context.Context, email, token string) (*domain.Customer, error) {
	params := url.Values{"email": {normalize.FixEmail(email)}}
	return a.getCustomer(ctx, get("getCustomerByEmail", pathGetCustomerByEmail, params, token))
}

// getCustomer maps a Customer response. Guest accounts have null Details
// and map to an all empty Customer.
func (a *ProvideAdapter) getCustomer(ctx context.Context, c call) (*domain.Customer, error) {
	ex, err := a.roundTrip(ctx, c)
	if err != nil {
		return nil, err
	}
	if ex.response.Failed() {
		return nil, a.fail(ex, ParseFault(ex.response.Body))
	}

	var resp customerResponse
	if err := a.decode(ex, &resp); err != nil {
		return nil, err
	}

	if bytes.Equal(resp.Customer.Details, []byte("null")) {
		return &domain.Customer{}, nil
	}

	var details record
	if err := json.Unmarshal(resp.Customer.Details, &details); err != nil {
		return nil, a.unexpected(ex, err)
	}
	if missing := details.missingKeys(customerDetailKeys...); len(missing) > 0 {
		return nil, a.unexpected(ex, &ShapeError{Missing: prefixed("Customer.Details.", missing)})
	}

	return &domain.Customer{
		FirstName:   details.get("FirstName"),
		LastName:    details.get("LastName"),
		Company:     details.get("CompanyName"),
		Street1:     details.get("Address1"),
		Street2:     details.get("Address2"),
		City:        details.get("City"),
		State:       details.get("State"),
		PostalCode:  details.get("Zip"),
		CountryCode: details.get("CountryCode"),
		Phone:       details.get("Phone1"),
	}, nil
}

// UpdateCustomer replaces the billing details of a customer. Missing
// fields are backfilled with the default billing address.
func (a *ProvideAdapter) UpdateCustomer(ctx context.Context, customerID string, customer domain.Customer, token string) error {
	c := normalize.FixCustomerAddress(customer)

	body := updateCustomerRequest{
		CustomerID: customerID,
		Details: wireCustomerDetails{
			FirstName:   normalize.FixName(c.FirstName),
			LastName:    normalize.FixName(c.LastName),
			CompanyName: normalize.FixCompanyName(c.Company),
			Address1:    c.Street1,
			Address2:    c.Street2,
			City:        c.City,
			State:       c.State,
			Zip:         normalize.FixZipCode(c.PostalCode),
			CountryCode: c.CountryCode,
			Phone1:      normalize.FixPhone(c.Phone),
		},
	}

	return a.do(ctx, put("updateCustomer", pathUpdateCustomer, body, token), nil)
}

// GetCustomerRecipients lists a customer's address book. Entries missing
// any expected key are skipped.
func (a *ProvideAdapter) GetCustomerRecipients(ctx context.Context, customerID, token string) ([]domain.Recipient, error) {
	params := url.Values{"customerId": {customerID}}

	var resp recipientsResponse
	if err := a.do(ctx, get("getCustomerRecipients", pathCustomerRecipients, params, token), &resp); err != nil {
		return nil, err
	}

	recipients := make([]domain.Recipient, 0, len(resp.Recipients))
	for _, r := range resp.Recipients {
		if !r.hasKeys(recipientKeys...) {
			continue
		}

		// the provider sometimes returns a null country
		country := r.get("CountryCode")
		if country == "" {
			country = defaultCountryCode
		}

		recipients = append(recipients, domain.Recipient{
			RecipientID: r.get("RecipientId"),
			Customer: domain.Customer{
				FirstName:   r.get("FirstName"),
				LastName:    r.get("LastName"),
				Company:     r.get("CompanyName"),
				Street1:     r.get("Address1"),
				Street2:     r.get("Address2"),
				City:        r.get("City"),
				State:       r.get("State"),
				PostalCode:  r.get("Zip"),
				CountryCode: country,
				Phone:       r.get("Phone"),
			},
		})
	}

	return recipients, nil
}

// SendForgotPasswordEmail asks the provider to email a password reset link.
func (a *ProvideAdapter) SendForgotPasswordEmail(ctx context.Context, email string) error {
	body := forgotPasswordRequest{Email: normalize.FixEmail(email)}
	return a.do(ctx, post("sendForgotPasswordEmail", pathForgotPassword, body, ""), nil)
}

// customerBlock builds the Customer section of an order request from the
// stored billing details.
func (a *ProvideAdapter) customerBlock(ctx context.Context, customerID, email, token string) (wireCustomer, error) {
	stored, err := a.GetCustomerByID(ctx, customerID, token)
	if err != nil {
		return wireCustomer{}, err
	}

	c := normalize.FixCustomerAddress(*stored)

	return wireCustomer{
		CustomerID: customerID,
		Email:      normalize.FixEmail(email),
		Details: wireCustomerDetails{
			FirstName:   c.FirstName,
			LastName:    c.LastName,
			CompanyName: c.Company,
			Address1:    c.Street1,
			Address2:    c.Street2,
			City:        c.City,
			State:       c.State,
			Zip:         c.PostalCode,
			CountryCode: c.CountryCode,
			Phone1:      c.Phone,
		},
	}, nil
}

func prefixed(prefix string, keys []string) []string {
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = prefix + k
	}
	return out
}
