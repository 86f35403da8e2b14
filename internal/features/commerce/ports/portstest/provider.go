// Package portstest provides testify mocks of the commerce ports.
package portstest

import (
	"context"

	"provide-client/internal/features/commerce/domain"
	"provide-client/internal/features/commerce/ports"

	"github.com/stretchr/testify/mock"
)

// MockCommerceProvider is a mock implementation of ports.CommerceProvider.
type MockCommerceProvider struct {
	mock.Mock
}

var _ ports.CommerceProvider = (*MockCommerceProvider)(nil)

func (m *MockCommerceProvider) CustomerExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockCommerceProvider) CreateCustomer(ctx context.Context, email, password string) (*domain.CustomerAccount, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CustomerAccount), args.Error(1)
}

func (m *MockCommerceProvider) Login(ctx context.Context, email, password string) (string, bool, error) {
	args := m.Called(ctx, email, password)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockCommerceProvider) GetCustomerByID(ctx context.Context, customerID, token string) (*domain.Customer, error) {
	args := m.Called(ctx, customerID, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCommerceProvider) GetCustomerByEmail(ctx context.Context, email, token string) (*domain.Customer, error) {
	args := m.Called(ctx, email, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCommerceProvider) UpdateCustomer(ctx context.Context, customerID string, customer domain.Customer, token string) error {
	args := m.Called(ctx, customerID, customer, token)
	return args.Error(0)
}

func (m *MockCommerceProvider) GetCustomerRecipients(ctx context.Context, customerID, token string) ([]domain.Recipient, error) {
	args := m.Called(ctx, customerID, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Recipient), args.Error(1)
}

func (m *MockCommerceProvider) SendForgotPasswordEmail(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *MockCommerceProvider) CreatePaymentMethod(ctx context.Context, customerID string, card domain.PaymentCard, token string) (string, error) {
	args := m.Called(ctx, customerID, card, token)
	return args.String(0), args.Error(1)
}

func (m *MockCommerceProvider) GetPaymentMethods(ctx context.Context, customerID, token string) ([]domain.SavedPaymentMethod, error) {
	args := m.Called(ctx, customerID, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SavedPaymentMethod), args.Error(1)
}

func (m *MockCommerceProvider) GetProductAvailability(ctx context.Context, productID, zipCode string) ([]string, error) {
	args := m.Called(ctx, productID, zipCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockCommerceProvider) GetOrderDetails(ctx context.Context, customerID, email string, line domain.OrderLine, recipient domain.Recipient, token string) (*domain.OrderTotals, error) {
	args := m.Called(ctx, customerID, email, line, recipient, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OrderTotals), args.Error(1)
}

func (m *MockCommerceProvider) CreateOrder(ctx context.Context, customerID, email string, line domain.OrderLine, recipient domain.Recipient, token string) (*domain.OrderConfirmation, error) {
	args := m.Called(ctx, customerID, email, line, recipient, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OrderConfirmation), args.Error(1)
}

func (m *MockCommerceProvider) GetOrders(ctx context.Context, customerID string, page, pageSize int, token string) ([]domain.OrderSummary, error) {
	args := m.Called(ctx, customerID, page, pageSize, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OrderSummary), args.Error(1)
}
