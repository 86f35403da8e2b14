package domain

import "time"

// DateLayout is the calendar date format used throughout the domain.
const DateLayout = "2006-01-02"

// Cents is an amount of money in the smallest currency unit.
type Cents int64

// OrderLine is a single product delivered to a single recipient.
type OrderLine struct {
	// DeliveryDate is the requested delivery date (YYYY-MM-DD).
	DeliveryDate string `json:"delivery_date"`
	// LatestDeliveryDate is the last date the order may slip to when the
	// product is unavailable on DeliveryDate. Empty disables date shifting.
	LatestDeliveryDate string `json:"latest_delivery_date,omitempty"`
	// GiftMessage is printed on the card that ships with the product.
	GiftMessage string `json:"gift_message"`
	// ProductID identifies the product in the provider catalog.
	ProductID string `json:"product_id"`
	// PromoCode is an optional promotional code.
	PromoCode string `json:"promo_code,omitempty"`
	// PaymentToken is the saved payment method token used to place an order.
	PaymentToken string `json:"payment_token,omitempty"`
	// PONumber is an optional purchase order reference.
	PONumber string `json:"po_number,omitempty"`
}

// Validate checks the delivery window.
func (l OrderLine) Validate() error {
	if l.LatestDeliveryDate == "" || l.DeliveryDate == "" {
		return nil
	}

	delivery, err := time.Parse(DateLayout, l.DeliveryDate)
	if err != nil {
		return nil
	}
	latest, err := time.Parse(DateLayout, l.LatestDeliveryDate)
	if err != nil {
		return &ValidationError{Rule: RuleDeliveryWindow, Message: "Please choose a valid latest delivery date."}
	}

	if latest.Before(delivery) {
		return &ValidationError{Rule: RuleDeliveryWindow, Message: "The latest delivery date cannot be before the delivery date."}
	}
	return nil
}

// OrderTotals is the priced quote for an OrderLine.
type OrderTotals struct {
	// ItemAmount is the product price.
	ItemAmount Cents `json:"item_amount"`
	// ShippingAmount is the sum of delivery surcharges.
	ShippingAmount Cents `json:"shipping_amount"`
	// TaxAmount is the tax on the order.
	TaxAmount Cents `json:"tax_amount"`
	// DiscountAmount is the sum of discounts and payments already applied.
	DiscountAmount Cents `json:"discount_amount"`
	// TotalAmount is what remains to be charged.
	TotalAmount Cents `json:"total_amount"`
	// PromoCode is the promo code actually applied, "" if it was dropped.
	PromoCode string `json:"promo_code"`
	// DeliveryDate is the delivery date actually quoted.
	DeliveryDate string `json:"delivery_date"`
}

// OrderConfirmation is returned when an order is placed.
type OrderConfirmation struct {
	// OrderID is the provider's order identifier.
	OrderID string `json:"order_id"`
	// PromoCode is the promo code actually applied.
	PromoCode string `json:"promo_code"`
	// DeliveryDate is the delivery date the order was placed for.
	DeliveryDate string `json:"delivery_date"`
}

// OrderSummary is one entry of a customer's order history.
type OrderSummary struct {
	// OrderID is the provider's order identifier.
	OrderID string `json:"order_id"`
	// OrderDate is the date the order was placed (YYYY-MM-DD).
	OrderDate string `json:"order_date"`
	// Recipients lists every delivery of the order.
	Recipients []OrderRecipient `json:"recipients"`
}

// OrderRecipient is one delivery within an order.
type OrderRecipient struct {
	FirstName    string      `json:"firstname"`
	LastName     string      `json:"lastname"`
	Company      string      `json:"company"`
	GiftMessage  string      `json:"gift_message"`
	DeliveryDate string      `json:"delivery_date"`
	Items        []OrderItem `json:"items"`
}

// OrderItem is a product within a delivery.
type OrderItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Name      string `json:"name"`
	ImageURL  string `json:"image_url"`
}
