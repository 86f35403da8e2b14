package adapter

import (
	"bytes"
	"encoding/json"

	"github.com/shopspring/decimal"
)

const (
	newCreditCardType       = "NewCreditCard:http://api.providecommerce.com/API/Payment/v1/"
	tokenizedPaymentType    = "TokenizedPaymentMethod:http://api.providecommerce.com/API/Payment/v1/"
	defaultCountryCode      = "US"
	filterOrdersByBrandFlag = "true"
)

// flexString decodes any JSON scalar into its text form. null decodes to
// "", objects and arrays keep their raw JSON text.
type flexString string

// UnmarshalJSON implements json.Unmarshaler.
func (s *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*s = ""
	case len(b) > 0 && b[0] == '"':
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*s = flexString(str)
	default:
		*s = flexString(b)
	}
	return nil
}

func (s *flexString) String() string {
	if s == nil {
		return ""
	}
	return string(*s)
}

// record is a loosely typed JSON object whose keys are checked explicitly.
type record map[string]flexString

func (r record) get(key string) string {
	return string(r[key])
}

// ---- requests ----

// wireCustomerDetails is the billing block of a customer.
type wireCustomerDetails struct {
	FirstName   string `json:"FirstName"`
	LastName    string `json:"LastName"`
	CompanyName string `json:"CompanyName"`
	Address1    string `json:"Address1"`
	Address2    string `json:"Address2"`
	City        string `json:"City"`
	State       string `json:"State"`
	Zip         string `json:"Zip"`
	CountryCode string `json:"CountryCode"`
	Phone1      string `json:"Phone1"`
}

// wireCustomer identifies the paying customer on an order.
type wireCustomer struct {
	CustomerID string              `json:"CustomerId"`
	Email      string              `json:"Email"`
	Details    wireCustomerDetails `json:"Details"`
}

type createCustomerRequest struct {
	Email                   string `json:"Email"`
	Password                string `json:"Password"`
	SendUpgradeAccountEmail bool   `json:"SendUpgradeAccountEmail"`
}

type updateCustomerRequest struct {
	CustomerID string              `json:"CustomerId"`
	Details    wireCustomerDetails `json:"Details"`
}

type forgotPasswordRequest struct {
	Email string `json:"Email"`
}

type createPaymentMethodRequest struct {
	PaymentMethod wireNewCreditCard `json:"PaymentMethod"`
}

// wireNewCreditCard is a card to tokenize. Field order follows the
// provider's examples.
type wireNewCreditCard struct {
	Type            string `json:"__type"`
	CustomerID      string `json:"CustomerId"`
	CardNumber      string `json:"CardNumber"`
	ExpirationMonth string `json:"ExpirationMonth"`
	ExpirationYear  string `json:"ExpirationYear"`
	SecurityCode    string `json:"SecurityCode"`
	FirstName       string `json:"FirstName"`
	LastName        string `json:"LastName"`
	Address1        string `json:"Address1"`
	Address2        string `json:"Address2"`
	City            string `json:"City"`
	State           string `json:"State"`
	Zip             string `json:"Zip"`
	CountryCode     string `json:"CountryCode"`
	Phone           string `json:"Phone"`
}

type orderRequest struct {
	Order wireOrder `json:"Order"`
}

// wireOrder is shared by the totals and create order calls. PONumber and
// Payments are sent only when creating.
type wireOrder struct {
	Customer   wireCustomer    `json:"Customer"`
	Deliveries []wireDelivery  `json:"Deliveries"`
	PONumber   *string         `json:"PONumber,omitempty"`
	Payments   []wirePayment   `json:"Payments,omitempty"`
	PromoCodes []wirePromoCode `json:"PromoCodes,omitempty"`
}

type wireDelivery struct {
	DeliveryDate string          `json:"DeliveryDate"`
	GiftMessage  wireGiftMessage `json:"GiftMessage"`
	LineItems    []wireLineItem  `json:"LineItems"`
	Recipient    wireRecipient   `json:"Recipient"`
}

type wireGiftMessage struct {
	Message string `json:"Message"`
}

type wireLineItem struct {
	ProductID string `json:"ProductId"`
}

type wireRecipient struct {
	FirstName    string `json:"FirstName"`
	LastName     string `json:"LastName"`
	CompanyName  string `json:"CompanyName"`
	Address1     string `json:"Address1"`
	Address2     string `json:"Address2"`
	City         string `json:"City"`
	State        string `json:"State"`
	Zip          string `json:"Zip"`
	CountryCode  string `json:"CountryCode"`
	LocationType string `json:"LocationType"`
	Email        string `json:"Email"`
	Phone        string `json:"Phone"`
}

type wirePayment struct {
	PaymentMethod wireTokenizedPayment `json:"PaymentMethod"`
}

type wireTokenizedPayment struct {
	Type  string `json:"__type"`
	Token string `json:"Token"`
}

type wirePromoCode struct {
	Code string `json:"Code"`
}

// ---- responses ----
//
// The validate tags describe the minimum shape each response must have.
// Pointers distinguish a missing or null key from a zero value.

type customerExistsResponse struct {
	CustomerExists *bool `json:"CustomerExists" validate:"required"`
}

type wireAuthenticationContext struct {
	AuthenticationToken *flexString `json:"AuthenticationToken" validate:"required"`
}

type createCustomerResponse struct {
	CustomerID            *flexString                `json:"CustomerId" validate:"required"`
	AuthenticationContext *wireAuthenticationContext `json:"AuthenticationContext" validate:"required"`
}

type loginResponse struct {
	AuthenticationContext *wireAuthenticationContext `json:"AuthenticationContext" validate:"required"`
}

type customerResponse struct {
	Customer *wireCustomerEnvelope `json:"Customer" validate:"required"`
}

// wireCustomerEnvelope keeps Details raw: guest accounts send null, which
// survives decoding as the literal bytes "null".
type wireCustomerEnvelope struct {
	CustomerID *flexString      `json:"CustomerId" validate:"required"`
	Details    json.RawMessage `json:"Details" validate:"required"`
}

type recipientsResponse struct {
	Recipients []record `json:"Recipients" validate:"required"`
}

type paymentMethodsResponse struct {
	PaymentMethods []record `json:"PaymentMethods" validate:"required"`
}

type createPaymentMethodResponse struct {
	PaymentMethod *wireCreatedPaymentMethod `json:"PaymentMethod" validate:"required"`
}

type wireCreatedPaymentMethod struct {
	Token *flexString `json:"Token" validate:"required"`
}

type availabilityResponse struct {
	ProductAvailabilities []wireAvailability `json:"ProductAvailabilities" validate:"required"`
}

type wireAvailability struct {
	Date *string `json:"Date"`
}

type orderTotalsResponse struct {
	Order *wireOrderTotals `json:"Order" validate:"required"`
}

type wireOrderTotals struct {
	Deliveries       []wireDeliveryTotals `json:"Deliveries" validate:"required,min=1,dive"`
	Details          *wireOrderAmounts    `json:"Details" validate:"required"`
	SurchargeDetails []wireAmount         `json:"SurchargeDetails" validate:"required,dive"`
	Payments         []wireOrderPayment   `json:"Payments" validate:"required,dive"`
}

type wireDeliveryTotals struct {
	LineItems        []wireLineItemTotals `json:"LineItems" validate:"required,min=1,dive"`
	SurchargeDetails []wireAmount         `json:"SurchargeDetails" validate:"required,dive"`
}

type wireLineItemTotals struct {
	Details *wireLineItemPrice `json:"Details" validate:"required"`
}

type wireLineItemPrice struct {
	Price *decimal.Decimal `json:"Price" validate:"required"`
}

type wireOrderAmounts struct {
	Tax        *decimal.Decimal `json:"Tax" validate:"required"`
	GrandTotal *decimal.Decimal `json:"GrandTotal" validate:"required"`
}

type wireAmount struct {
	Amount *decimal.Decimal `json:"Amount" validate:"required"`
}

type wireOrderPayment struct {
	Details *wireAmount `json:"Details" validate:"required"`
}

type createOrderResponse struct {
	OrderID *flexString `json:"OrderId" validate:"required"`
}

type ordersResponse struct {
	OrderHistoryList []wireOrderHistory `json:"OrderHistoryList" validate:"required,dive"`
}

type wireOrderHistory struct {
	OrderID    *flexString             `json:"OrderId" validate:"required"`
	Details    *wireOrderHistoryDetail `json:"Details" validate:"required"`
	Deliveries []wireHistoryDelivery   `json:"Deliveries" validate:"required"`
}

type wireOrderHistoryDetail struct {
	OrderDate *string `json:"OrderDate" validate:"required"`
}

type wireHistoryDelivery struct {
	DeliveryDate string             `json:"DeliveryDate"`
	GiftMessage  wireHistoryMessage `json:"GiftMessage"`
	LineItems    []wireHistoryItem  `json:"LineItems"`
	Recipient    wireHistoryName    `json:"Recipient"`
}

type wireHistoryMessage struct {
	Message   string `json:"Message"`
	Signature string `json:"Signature"`
}

type wireHistoryItem struct {
	ProductID flexString        `json:"ProductId"`
	Quantity  int               `json:"Quantity"`
	Details   wireHistoryDetail `json:"Details"`
}

type wireHistoryDetail struct {
	Name     string `json:"Name"`
	ImageURL string `json:"ImageUrl"`
}

type wireHistoryName struct {
	FirstName   string `json:"FirstName"`
	LastName    string `json:"LastName"`
	CompanyName string `json:"CompanyName"`
}
