package adapter

import (
	"context"
	"time"

	"provide-client/internal/features/commerce/domain"
	"provide-client/internal/features/commerce/ports"
)

// MockPassword is the password MockAdapter rejects.
const MockPassword = "bad_password"

const mockToken = "abc123"

// MockAdapter is a canned CommerceProvider for demos and local development.
// It never talks to the network.
type MockAdapter struct {
	now func() time.Time
}

var _ ports.CommerceProvider = (*MockAdapter)(nil)

// NewMockAdapter creates a MockAdapter.
func NewMockAdapter() *MockAdapter {
	return &MockAdapter{now: time.Now}
}

func mockCustomer() *domain.Customer {
	return &domain.Customer{
		FirstName:   "Testy",
		LastName:    "Tester",
		Street1:     "800 Market St",
		City:        "San Francisco",
		State:       "CA",
		PostalCode:  "94102",
		CountryCode: "US",
		Phone:       "000-000-0000",
	}
}

func (m *MockAdapter) CustomerExists(ctx context.Context, email string) (bool, error) {
	return false, nil
}

func (m *MockAdapter) CreateCustomer(ctx context.Context, email, password string) (*domain.CustomerAccount, error) {
	return &domain.CustomerAccount{CustomerID: "1", AuthenticationToken: mockToken}, nil
}

func (m *MockAdapter) Login(ctx context.Context, email, password string) (string, bool, error) {
	if password == MockPassword {
		return "", false, nil
	}
	return mockToken, true, nil
}

func (m *MockAdapter) GetCustomerByID(ctx context.Context, customerID, token string) (*domain.Customer, error) {
	return mockCustomer(), nil
}

func (m *MockAdapter) GetCustomerByEmail(ctx context.Context, email, token string) (*domain.Customer, error) {
	return mockCustomer(), nil
}

func (m *MockAdapter) UpdateCustomer(ctx context.Context, customerID string, customer domain.Customer, token string) error {
	return nil
}

func (m *MockAdapter) GetCustomerRecipients(ctx context.Context, customerID, token string) ([]domain.Recipient, error) {
	return []domain.Recipient{}, nil
}

func (m *MockAdapter) SendForgotPasswordEmail(ctx context.Context, email string) error {
	return nil
}

func (m *MockAdapter) CreatePaymentMethod(ctx context.Context, customerID string, card domain.PaymentCard, token string) (string, error) {
	return "1", nil
}

func (m *MockAdapter) GetPaymentMethods(ctx context.Context, customerID, token string) ([]domain.SavedPaymentMethod, error) {
	return []domain.SavedPaymentMethod{{
		PaymentID:      "1",
		Token:          "2020202",
		CardholderName: "Testy Tester",
		CardType:       "Visa",
		Expiry:         "1230",
		LastFour:       "1234",
	}}, nil
}

// GetProductAvailability reports today as the only delivery date.
func (m *MockAdapter) GetProductAvailability(ctx context.Context, productID, zipCode string) ([]string, error) {
	return []string{m.now().Format(domain.DateLayout)}, nil
}

// GetOrderDetails returns fixed totals and accepts any promo code.
func (m *MockAdapter) GetOrderDetails(ctx context.Context, customerID, email string, line domain.OrderLine, recipient domain.Recipient, token string) (*domain.OrderTotals, error) {
	return &domain.OrderTotals{
		ItemAmount:     1999,
		ShippingAmount: 499,
		TaxAmount:      299,
		DiscountAmount: 199,
		TotalAmount:    2598,
		PromoCode:      line.PromoCode,
		DeliveryDate:   line.DeliveryDate,
	}, nil
}

func (m *MockAdapter) CreateOrder(ctx context.Context, customerID, email string, line domain.OrderLine, recipient domain.Recipient, token string) (*domain.OrderConfirmation, error) {
	return &domain.OrderConfirmation{
		OrderID:      "123456789",
		PromoCode:    line.PromoCode,
		DeliveryDate: line.DeliveryDate,
	}, nil
}

func (m *MockAdapter) GetOrders(ctx context.Context, customerID string, page, pageSize int, token string) ([]domain.OrderSummary, error) {
	return []domain.OrderSummary{}, nil
}
