package ports

import (
	"context"

	"provide-client/internal/core/httpclient"
	"provide-client/internal/features/commerce/domain"
)

// CommerceProvider is the driven port for the upstream commerce API.
// Session scoped calls take the authentication token returned by Login.
type CommerceProvider interface {
	// CustomerExists reports whether an account is registered for email.
	CustomerExists(ctx context.Context, email string) (bool, error)
	// CreateCustomer registers a new account.
	CreateCustomer(ctx context.Context, email, password string) (*domain.CustomerAccount, error)
	// Login returns a session token. A rejected password returns ok == false
	// and no error.
	Login(ctx context.Context, email, password string) (token string, ok bool, err error)
	// GetCustomerByID fetches the account holder's billing details.
	GetCustomerByID(ctx context.Context, customerID, token string) (*domain.Customer, error)
	// GetCustomerByEmail fetches the account holder's billing details.
	GetCustomerByEmail(ctx context.Context, email, token string) (*domain.Customer, error)
	// UpdateCustomer replaces the account holder's billing details.
	UpdateCustomer(ctx context.Context, customerID string, customer domain.Customer, token string) error
	// GetCustomerRecipients lists the customer's saved delivery addresses.
	GetCustomerRecipients(ctx context.Context, customerID, token string) ([]domain.Recipient, error)
	// SendForgotPasswordEmail asks the provider to email a reset link.
	SendForgotPasswordEmail(ctx context.Context, email string) error
	// CreatePaymentMethod tokenizes a card and returns the token.
	CreatePaymentMethod(ctx context.Context, customerID string, card domain.PaymentCard, token string) (string, error)
	// GetPaymentMethods lists the customer's unexpired saved cards.
	GetPaymentMethods(ctx context.Context, customerID, token string) ([]domain.SavedPaymentMethod, error)
	// GetProductAvailability lists the dates a product can be delivered,
	// optionally restricted to a ZIP code.
	GetProductAvailability(ctx context.Context, productID, zipCode string) ([]string, error)
	// GetOrderDetails prices an order without placing it.
	GetOrderDetails(ctx context.Context, customerID, email string, line domain.OrderLine, recipient domain.Recipient, token string) (*domain.OrderTotals, error)
	// CreateOrder places an order paid with line.PaymentToken.
	CreateOrder(ctx context.Context, customerID, email string, line domain.OrderLine, recipient domain.Recipient, token string) (*domain.OrderConfirmation, error)
	// GetOrders returns one page of the customer's order history.
	GetOrders(ctx context.Context, customerID string, page, pageSize int, token string) ([]domain.OrderSummary, error)
}

// Transport sends a single request to the provider. An error means no
// response was obtained at all.
type Transport interface {
	Do(ctx context.Context, req httpclient.Request) (*httpclient.Response, error)
}
