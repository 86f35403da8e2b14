package service

import (
	"context"
	"fmt"

	"provide-client/internal/features/commerce/domain"
	"provide-client/internal/features/commerce/ports"
)

const (
	defaultPage     = 1
	defaultPageSize = 10
	maxPageSize     = 100
)

// OrderRequest is everything needed to price or place one order line.
type OrderRequest struct {
	// CustomerID is the paying customer.
	CustomerID string
	// Email is the paying customer's email, required by the provider for guests.
	Email string
	// Line is the product, date and message.
	Line domain.OrderLine
	// Recipient is where the order goes.
	Recipient domain.Recipient
	// Token is the customer's session token.
	Token string
}

// CheckoutService validates caller input locally before handing it to the
// commerce provider, so obvious mistakes never cost a provider round trip.
type CheckoutService struct {
	provider ports.CommerceProvider
}

// NewCheckoutService creates a new CheckoutService.
func NewCheckoutService(provider ports.CommerceProvider) *CheckoutService {
	return &CheckoutService{provider: provider}
}

// CustomerExists reports whether an account is registered for email.
func (s *CheckoutService) CustomerExists(ctx context.Context, email string) (bool, error) {
	exists, err := s.provider.CustomerExists(ctx, email)
	if err != nil {
		return false, fmt.Errorf("failed to look up customer: %w", err)
	}
	return exists, nil
}

// ValidateRecipient checks an address against the provider's acceptance rules.
func (s *CheckoutService) ValidateRecipient(recipient domain.Customer) error {
	return domain.ValidateCustomer(recipient)
}

// Availability lists the delivery dates of a product.
func (s *CheckoutService) Availability(ctx context.Context, productID, zipCode string) ([]string, error) {
	dates, err := s.provider.GetProductAvailability(ctx, productID, zipCode)
	if err != nil {
		return nil, fmt.Errorf("failed to get availability for %s: %w", productID, err)
	}
	return dates, nil
}

// QuoteOrder prices an order.
func (s *CheckoutService) QuoteOrder(ctx context.Context, req OrderRequest) (*domain.OrderTotals, error) {
	if err := validateOrder(req); err != nil {
		return nil, err
	}

	totals, err := s.provider.GetOrderDetails(ctx, req.CustomerID, req.Email, req.Line, req.Recipient, req.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to quote order: %w", err)
	}
	return totals, nil
}

// PlaceOrder places an order. A payment token is required.
func (s *CheckoutService) PlaceOrder(ctx context.Context, req OrderRequest) (*domain.OrderConfirmation, error) {
	if req.Line.PaymentToken == "" {
		return nil, &domain.ValidationError{Rule: domain.RulePaymentToken, Message: "Please choose a payment method."}
	}
	if err := validateOrder(req); err != nil {
		return nil, err
	}

	confirmation, err := s.provider.CreateOrder(ctx, req.CustomerID, req.Email, req.Line, req.Recipient, req.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to place order: %w", err)
	}
	return confirmation, nil
}

// Orders returns one page of order history. Out of range paging falls back
// to the first page of ten.
func (s *CheckoutService) Orders(ctx context.Context, customerID string, page, pageSize int, token string) ([]domain.OrderSummary, error) {
	if page < 1 {
		page = defaultPage
	}
	if pageSize < 1 || pageSize > maxPageSize {
		pageSize = defaultPageSize
	}

	orders, err := s.provider.GetOrders(ctx, customerID, page, pageSize, token)
	if err != nil {
		return nil, fmt.Errorf("failed to get orders for customer %s: %w", customerID, err)
	}
	return orders, nil
}

func validateOrder(req OrderRequest) error {
	if err := domain.ValidateCustomer(req.Recipient.Customer); err != nil {
		return err
	}
	return req.Line.Validate()
}
