package adapter

import (
	"context"
	"testing"
	"time"

	"provide-client/internal/features/commerce/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMockAdapter_Login verifies the rejected password.
func TestMockAdapter_Login(t *testing.T) {
	m := NewMockAdapter()

	token, success, err := m.Login(context.Background(), "test@example.com", "anything")
	require.NoError(t, err)
	assert.True(t, success)
	assert.Equal(t, "abc123", token)

	token, success, err = m.Login(context.Background(), "test@example.com", MockPassword)
	require.NoError(t, err)
	assert.False(t, success)
	assert.Empty(t, token)
}

// TestMockAdapter_Availability verifies today is offered.
func TestMockAdapter_Availability(t *testing.T) {
	m := NewMockAdapter()
	m.now = func() time.Time { return time.Date(2026, time.October, 14, 9, 0, 0, 0, time.UTC) }

	dates, err := m.GetProductAvailability(context.Background(), "P1", "94102")
	require.NoError(t, err)
	assert.Equal(t, []string{"2026-10-14"}, dates)
}

// TestMockAdapter_Orders verifies the canned totals and order id.
func TestMockAdapter_Orders(t *testing.T) {
	m := NewMockAdapter()
	line := domain.OrderLine{DeliveryDate: "2026-10-20", PromoCode: "SAVE"}

	totals, err := m.GetOrderDetails(context.Background(), "1", "test@example.com", line, domain.Recipient{}, "abc123")
	require.NoError(t, err)
	assert.Equal(t, domain.Cents(2598), totals.TotalAmount)
	assert.Equal(t, "SAVE", totals.PromoCode)

	confirmation, err := m.CreateOrder(context.Background(), "1", "test@example.com", line, domain.Recipient{}, "abc123")
	require.NoError(t, err)
	assert.Equal(t, "123456789", confirmation.OrderID)

	customer, err := m.GetCustomerByID(context.Background(), "1", "abc123")
	require.NoError(t, err)
	assert.Equal(t, "Testy", customer.FirstName)

	methods, err := m.GetPaymentMethods(context.Background(), "1", "abc123")
	require.NoError(t, err)
	require.Len(t, methods, 1)
	assert.Equal(t, "2020202", methods[0].Token)
}
