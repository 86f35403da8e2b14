package adapter

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"provide-client/internal/features/commerce/domain"
	"provide-client/internal/features/commerce/normalize"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// toCents converts a provider amount in dollars, dropping fractions of a cent.
func toCents(d decimal.Decimal) domain.Cents {
	return domain.Cents(d.Mul(hundred).IntPart())
}

// GetOrderDetails prices line for recipient without placing the order.
// A rejected promo code is dropped and an unfulfillable delivery date is
// moved forward up to line.LatestDeliveryDate; the returned totals report
// the promo code and date that were actually priced.
func (a *ProvideAdapter) GetOrderDetails(ctx context.Context, customerID, email string, line domain.OrderLine, recipient domain.Recipient, token string) (*domain.OrderTotals, error) {
	if err := line.Validate(); err != nil {
		return nil, err
	}

	customer, err := a.customerBlock(ctx, customerID, email, token)
	if err != nil {
		return nil, err
	}

	const op = "getOrderDetails"
	ex, used, err := a.runWithRetry(ctx, line, func(l domain.OrderLine) (call, error) {
		order, err := a.orderFor(op, customer, l, recipient)
		if err != nil {
			return call{}, err
		}
		return put(op, pathOrderTotals, orderRequest{Order: order}, token), nil
	})
	if err != nil {
		return nil, err
	}

	var resp orderTotalsResponse
	if err := a.decode(ex, &resp); err != nil {
		return nil, err
	}

	totals := &domain.OrderTotals{
		PromoCode:    used.PromoCode,
		DeliveryDate: used.DeliveryDate,
	}

	// one product per order
	delivery := resp.Order.Deliveries[0]
	totals.ItemAmount = toCents(*delivery.LineItems[0].Details.Price)

	for _, surcharge := range delivery.SurchargeDetails {
		totals.ShippingAmount += toCents(*surcharge.Amount)
	}

	totals.TaxAmount = toCents(*resp.Order.Details.Tax)

	// promo discounts are negative surcharges on the order
	for _, surcharge := range resp.Order.SurchargeDetails {
		totals.DiscountAmount += toCents(surcharge.Amount.Neg())
	}

	// gift certificates are payments and are not part of GrandTotal
	var payments domain.Cents
	for _, payment := range resp.Order.Payments {
		amount := toCents(*payment.Details.Amount)
		totals.DiscountAmount += amount
		payments += amount
	}

	totals.TotalAmount = toCents(*resp.Order.Details.GrandTotal) - payments

	return totals, nil
}

// CreateOrder places line for recipient, paid with line.PaymentToken.
// It recovers from the same faults as GetOrderDetails.
func (a *ProvideAdapter) CreateOrder(ctx context.Context, customerID, email string, line domain.OrderLine, recipient domain.Recipient, token string) (*domain.OrderConfirmation, error) {
	if err := line.Validate(); err != nil {
		return nil, err
	}

	customer, err := a.customerBlock(ctx, customerID, email, token)
	if err != nil {
		return nil, err
	}

	const op = "createOrder"
	ex, used, err := a.runWithRetry(ctx, line, func(l domain.OrderLine) (call, error) {
		order, err := a.orderFor(op, customer, l, recipient)
		if err != nil {
			return call{}, err
		}

		poNumber := l.PONumber
		order.PONumber = &poNumber
		order.Payments = []wirePayment{{
			PaymentMethod: wireTokenizedPayment{Type: tokenizedPaymentType, Token: l.PaymentToken},
		}}
		return post(op, pathCreateOrder, orderRequest{Order: order}, token), nil
	})
	if err != nil {
		return nil, err
	}

	var resp createOrderResponse
	if err := a.decode(ex, &resp); err != nil {
		return nil, err
	}

	return &domain.OrderConfirmation{
		OrderID:      resp.OrderID.String(),
		PromoCode:    used.PromoCode,
		DeliveryDate: used.DeliveryDate,
	}, nil
}

// orderFor builds the order body shared by pricing and placing an order.
func (a *ProvideAdapter) orderFor(op string, customer wireCustomer, line domain.OrderLine, recipient domain.Recipient) (wireOrder, error) {
	deliveryDate, err := DateStringToJSONDate(line.DeliveryDate)
	if err != nil {
		return wireOrder{}, domain.NewError(domain.KindParse, op, domain.MessageDefault, err)
	}

	r := recipient.Customer
	order := wireOrder{
		Customer: customer,
		Deliveries: []wireDelivery{{
			DeliveryDate: deliveryDate,
			GiftMessage: wireGiftMessage{
				Message: normalize.FixGiftMessage(line.GiftMessage, a.giftMessage),
			},
			LineItems: []wireLineItem{{ProductID: line.ProductID}},
			Recipient: wireRecipient{
				FirstName:    normalize.FixName(r.FirstName),
				LastName:     normalize.FixName(r.LastName),
				CompanyName:  normalize.FixCompanyName(r.Company),
				Address1:     r.Street1,
				Address2:     r.Street2,
				City:         r.City,
				State:        r.State,
				Zip:          normalize.FixZipCode(r.PostalCode),
				CountryCode:  r.CountryCode,
				LocationType: string(recipient.LocationType),
				Email:        "",
				Phone:        normalize.FixPhone(r.Phone),
			},
		}},
	}

	if line.PromoCode != "" {
		order.PromoCodes = []wirePromoCode{{Code: line.PromoCode}}
	}

	return order, nil
}

// GetOrders returns one page of a customer's order history for this brand.
// Deliveries without products and orders without deliveries are skipped.
func (a *ProvideAdapter) GetOrders(ctx context.Context, customerID string, page, pageSize int, token string) ([]domain.OrderSummary, error) {
	params := url.Values{
		"customerId":          {customerID},
		"pageNumber":          {strconv.Itoa(page)},
		"pageSize":            {strconv.Itoa(pageSize)},
		"filterOrdersByBrand": {filterOrdersByBrandFlag},
	}

	ex, err := a.roundTrip(ctx, get("getOrders", pathGetOrders, params, token))
	if err != nil {
		return nil, err
	}
	if ex.response.Failed() {
		return nil, a.fail(ex, ParseFault(ex.response.Body))
	}

	var resp ordersResponse
	if err := a.decode(ex, &resp); err != nil {
		return nil, err
	}

	orders := make([]domain.OrderSummary, 0, len(resp.OrderHistoryList))
	for _, history := range resp.OrderHistoryList {
		orderDate, err := JSONDateToDateString(*history.Details.OrderDate)
		if err != nil {
			return nil, a.invalidDate(ex, err)
		}

		summary := domain.OrderSummary{
			OrderID:   history.OrderID.String(),
			OrderDate: orderDate,
		}

		for _, delivery := range history.Deliveries {
			if len(delivery.LineItems) == 0 {
				continue
			}

			deliveryDate, err := JSONDateToDateString(delivery.DeliveryDate)
			if err != nil {
				return nil, a.invalidDate(ex, err)
			}

			recipient := domain.OrderRecipient{
				FirstName:    delivery.Recipient.FirstName,
				LastName:     delivery.Recipient.LastName,
				Company:      delivery.Recipient.CompanyName,
				GiftMessage:  strings.TrimSpace(delivery.GiftMessage.Message + "\n" + delivery.GiftMessage.Signature),
				DeliveryDate: deliveryDate,
				Items:        make([]domain.OrderItem, 0, len(delivery.LineItems)),
			}
			for _, item := range delivery.LineItems {
				recipient.Items = append(recipient.Items, domain.OrderItem{
					ProductID: item.ProductID.String(),
					Quantity:  item.Quantity,
					Name:      item.Details.Name,
					ImageURL:  item.Details.ImageURL,
				})
			}
			summary.Recipients = append(summary.Recipients, recipient)
		}

		if len(summary.Recipients) == 0 {
			continue
		}
		orders = append(orders, summary)
	}

	return orders, nil
}
