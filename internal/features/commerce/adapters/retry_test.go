package adapter

import (
	"testing"

	"provide-client/internal/features/commerce/domain"

	"github.com/stretchr/testify/assert"
)

var (
	promoFault    = Fault{FaultType: FaultValidationFailed, ErrorMessage: "Invalid promo code"}
	deliveryFault = Fault{FaultType: FaultValidationFailed, ErrorMessage: deliveryUnavailable}
)

// TestPlanRetry verifies each recoverable transition and its limits.
func TestPlanRetry(t *testing.T) {
	window := domain.OrderLine{DeliveryDate: "2015-01-30", LatestDeliveryDate: "2015-02-01", PromoCode: "SAVE"}

	t.Run("Promo cleared once", func(t *testing.T) {
		next, retry := planRetry(retryState{line: window}, promoFault)
		assert.True(t, retry)
		assert.Empty(t, next.line.PromoCode)
		assert.True(t, next.promoCleared)
		assert.Equal(t, window.DeliveryDate, next.line.DeliveryDate)

		_, retry = planRetry(next, promoFault)
		assert.False(t, retry)
	})

	t.Run("Promo without code", func(t *testing.T) {
		line := window
		line.PromoCode = ""
		_, retry := planRetry(retryState{line: line}, promoFault)
		assert.False(t, retry)
	})

	t.Run("Date shifts across month end", func(t *testing.T) {
		next, retry := planRetry(retryState{line: window}, deliveryFault)
		assert.True(t, retry)
		assert.Equal(t, "2015-01-31", next.line.DeliveryDate)
		assert.Equal(t, "SAVE", next.line.PromoCode)

		next, retry = planRetry(next, deliveryFault)
		assert.True(t, retry)
		assert.Equal(t, "2015-02-01", next.line.DeliveryDate)
		assert.Equal(t, 2, next.dateShifts)

		_, retry = planRetry(next, deliveryFault)
		assert.False(t, retry)
	})

	t.Run("No window", func(t *testing.T) {
		line := window
		line.LatestDeliveryDate = ""
		_, retry := planRetry(retryState{line: line}, deliveryFault)
		assert.False(t, retry)
	})

	t.Run("Other validation faults", func(t *testing.T) {
		_, retry := planRetry(retryState{line: window}, Fault{FaultType: FaultValidationFailed, ErrorMessage: "Payment declined"})
		assert.False(t, retry)
	})

	t.Run("Promo message on other fault type", func(t *testing.T) {
		_, retry := planRetry(retryState{line: window}, Fault{FaultType: FaultNone, ErrorMessage: "Promo Code"})
		assert.False(t, retry)
	})
}

// TestAttemptBudget verifies the budget covers every transition planRetry allows.
func TestAttemptBudget(t *testing.T) {
	tests := []struct {
		name     string
		line     domain.OrderLine
		expected int
	}{
		{"Plain", domain.OrderLine{DeliveryDate: "2015-01-01"}, 1},
		{"Promo", domain.OrderLine{DeliveryDate: "2015-01-01", PromoCode: "X"}, 2},
		{"Window", domain.OrderLine{DeliveryDate: "2015-01-01", LatestDeliveryDate: "2015-01-05"}, 5},
		{"Both", domain.OrderLine{DeliveryDate: "2015-01-01", LatestDeliveryDate: "2015-01-05", PromoCode: "X"}, 6},
		{"Same day", domain.OrderLine{DeliveryDate: "2015-01-01", LatestDeliveryDate: "2015-01-01"}, 1},
		{"Unparsable", domain.OrderLine{DeliveryDate: "soon", LatestDeliveryDate: "2015-01-05"}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, attemptBudget(tt.line))
		})
	}
}

// TestAttemptBudget_MatchesPlan walks planRetry to exhaustion and checks the
// number of attempts never exceeds the budget.
func TestAttemptBudget_MatchesPlan(t *testing.T) {
	line := domain.OrderLine{DeliveryDate: "2015-01-01", LatestDeliveryDate: "2015-01-10", PromoCode: "X"}
	faults := []Fault{promoFault, deliveryFault}

	state := retryState{line: line}
	attempts := 1
	for {
		next, retry := planRetry(state, faults[0])
		if !retry {
			next, retry = planRetry(state, faults[1])
		}
		if !retry {
			break
		}
		state = next
		attempts++
	}

	assert.Equal(t, attemptBudget(line), attempts)
	assert.Equal(t, "2015-01-10", state.line.DeliveryDate)
}
