package adapter

import (
	"context"
	"time"

	"provide-client/internal/features/commerce/domain"

	"go.uber.org/zap"
)

// retryState is the order line being attempted and what has already been
// changed to recover from faults.
type retryState struct {
	line         domain.OrderLine
	promoCleared bool
	dateShifts   int
}

// planRetry decides whether fault can be recovered from by changing the
// order line. A rejected promo code is dropped once. An unfulfillable
// delivery date moves forward one day at a time while it is still before
// the latest delivery date.
func planRetry(state retryState, fault Fault) (retryState, bool) {
	if fault.promoCodeRejected() && state.line.PromoCode != "" && !state.promoCleared {
		state.line.PromoCode = ""
		state.promoCleared = true
		return state, true
	}

	if fault.deliveryUnavailable() && state.line.LatestDeliveryDate != "" {
		delivery, err := parseDate(state.line.DeliveryDate)
		if err != nil {
			return state, false
		}
		latest, err := parseDate(state.line.LatestDeliveryDate)
		if err != nil || !delivery.Before(latest) {
			return state, false
		}

		state.line.DeliveryDate = delivery.AddDate(0, 0, 1).Format(domain.DateLayout)
		state.dateShifts++
		return state, true
	}

	return state, false
}

// attemptBudget is the most attempts planRetry can ever ask for on line:
// the first one, one without the promo code and one per day in the window.
func attemptBudget(line domain.OrderLine) int {
	budget := 1
	if line.PromoCode != "" {
		budget++
	}

	if line.LatestDeliveryDate == "" {
		return budget
	}
	delivery, errDelivery := parseDate(line.DeliveryDate)
	latest, errLatest := parseDate(line.LatestDeliveryDate)
	if errDelivery != nil || errLatest != nil || !delivery.Before(latest) {
		return budget
	}

	return budget + int(latest.Sub(delivery)/(24*time.Hour))
}

// runWithRetry sends the call built by build until it succeeds, the fault
// is not recoverable or the budget is spent. It returns the successful
// exchange together with the order line that produced it.
func (a *ProvideAdapter) runWithRetry(ctx context.Context, line domain.OrderLine, build func(domain.OrderLine) (call, error)) (*exchange, domain.OrderLine, error) {
	state := retryState{line: line}
	budget := attemptBudget(line)

	for attempt := 1; ; attempt++ {
		c, err := build(state.line)
		if err != nil {
			return nil, state.line, err
		}

		ex, err := a.roundTrip(ctx, c)
		if err != nil {
			return nil, state.line, err
		}
		if !ex.response.Failed() {
			return ex, state.line, nil
		}

		fault := ParseFault(ex.response.Body)
		next, ok := planRetry(state, fault)
		if !ok || attempt >= budget {
			return nil, state.line, a.fail(ex, fault)
		}

		a.logger.Debug("retrying provider call",
			zap.String("op", c.op),
			zap.Int("attempt", attempt+1),
			zap.String("message", fault.ErrorMessage),
			zap.String("delivery_date", next.line.DeliveryDate),
			zap.Bool("promo_cleared", next.promoCleared),
		)
		state = next
	}
}
