package handler

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"provide-client/internal/core/logger"
	"provide-client/internal/features/commerce/domain"
	"provide-client/internal/features/commerce/service"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AuthenticationHeader carries the customer's session token.
const AuthenticationHeader = "X-Authentication-Token"

// CommerceHandler handles HTTP requests for the commerce gateway.
type CommerceHandler struct {
	// service is the CheckoutService instance.
	service  *service.CheckoutService
	validate *validator.Validate
}

// NewCommerceHandler creates a new instance of CommerceHandler.
func NewCommerceHandler(s *service.CheckoutService) *CommerceHandler {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &CommerceHandler{
		service:  s,
		validate: validate,
	}
}

// ErrorResponse represents the structure of an error response.
type ErrorResponse struct {
	// Message is safe to show to an end user.
	Message string `json:"message"`
	// Kind classifies the failure. Empty for malformed requests.
	Kind domain.Kind `json:"kind,omitempty"`
	// RayID is the unique request identifier for debugging.
	RayID string `json:"ray_id"`
}

// ExistsResponse is returned by CustomerExists.
type ExistsResponse struct {
	Exists bool `json:"exists"`
}

// AvailabilityResponse is returned by GetAvailability.
type AvailabilityResponse struct {
	ProductID string   `json:"product_id"`
	Dates     []string `json:"dates"`
}

// OrderBody is the request body for quoting or placing an order.
type OrderBody struct {
	CustomerID         string           `json:"customer_id" validate:"required"`
	Email              string           `json:"email" validate:"omitempty,email"`
	ProductID          string           `json:"product_id" validate:"required"`
	DeliveryDate       string           `json:"delivery_date" validate:"required,datetime=2006-01-02"`
	LatestDeliveryDate string           `json:"latest_delivery_date" validate:"omitempty,datetime=2006-01-02"`
	GiftMessage        string           `json:"gift_message"`
	PromoCode          string           `json:"promo_code"`
	PaymentToken       string           `json:"payment_token"`
	PONumber           string           `json:"po_number"`
	Recipient          domain.Recipient `json:"recipient"`
}

func (b OrderBody) request(token string) service.OrderRequest {
	return service.OrderRequest{
		CustomerID: b.CustomerID,
		Email:      b.Email,
		Line: domain.OrderLine{
			DeliveryDate:       b.DeliveryDate,
			LatestDeliveryDate: b.LatestDeliveryDate,
			GiftMessage:        b.GiftMessage,
			ProductID:          b.ProductID,
			PromoCode:          b.PromoCode,
			PaymentToken:       b.PaymentToken,
			PONumber:           b.PONumber,
		},
		Recipient: b.Recipient,
		Token:     token,
	}
}

// CustomerExists handles GET /customers/exists.
// @Summary Check whether a customer exists
// @Description Reports whether an account is registered for the email address.
// @Tags Customers
// @Produce json
// @Param email query string true "Customer Email"
// @Success 200 {object} ExistsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /customers/exists [get]
func (h *CommerceHandler) CustomerExists(c *fiber.Ctx) error {
	email := c.Query("email")
	if err := h.validate.Var(email, "required,email"); err != nil {
		return badRequest(c, "A valid email is required")
	}

	exists, err := h.service.CustomerExists(c.Context(), email)
	if err != nil {
		return h.fail(c, "Failed to look up customer", err)
	}

	return c.Status(http.StatusOK).JSON(ExistsResponse{Exists: exists})
}

// ValidateRecipient handles POST /customers/validate.
// @Summary Validate an address
// @Description Checks an address against the provider's acceptance rules without calling it.
// @Tags Customers
// @Accept json
// @Produce json
// @Param customer body domain.Customer true "Address"
// @Success 204
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /customers/validate [post]
func (h *CommerceHandler) ValidateRecipient(c *fiber.Ctx) error {
	var customer domain.Customer
	if err := c.BodyParser(&customer); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if err := h.service.ValidateRecipient(customer); err != nil {
		return h.fail(c, "Address rejected", err)
	}

	return c.SendStatus(http.StatusNoContent)
}

// GetAvailability handles GET /products/:id/availability.
// @Summary List delivery dates
// @Description Lists the dates a product can be delivered, optionally for one ZIP code.
// @Tags Products
// @Produce json
// @Param id path string true "Product ID"
// @Param zip query string false "Recipient ZIP Code"
// @Success 200 {object} AvailabilityResponse
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /products/{id}/availability [get]
func (h *CommerceHandler) GetAvailability(c *fiber.Ctx) error {
	productID := c.Params("id")
	if productID == "" {
		return badRequest(c, "Product ID is required")
	}

	dates, err := h.service.Availability(c.Context(), productID, c.Query("zip"))
	if err != nil {
		return h.fail(c, "Failed to get availability", err)
	}

	return c.Status(http.StatusOK).JSON(AvailabilityResponse{ProductID: productID, Dates: dates})
}

// QuoteOrder handles POST /orders/quote.
// @Summary Price an order
// @Description Prices an order without placing it. Invalid promo codes are dropped and unavailable dates are shifted up to the latest delivery date.
// @Tags Orders
// @Accept json
// @Produce json
// @Param X-Authentication-Token header string false "Session token"
// @Param order body OrderBody true "Order"
// @Success 200 {object} domain.OrderTotals
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /orders/quote [post]
func (h *CommerceHandler) QuoteOrder(c *fiber.Ctx) error {
	body, problem := h.orderBody(c)
	if problem != "" {
		return badRequest(c, problem)
	}

	totals, err := h.service.QuoteOrder(c.Context(), body.request(c.Get(AuthenticationHeader)))
	if err != nil {
		return h.fail(c, "Failed to quote order", err, zap.String("product_id", body.ProductID))
	}

	return c.Status(http.StatusOK).JSON(totals)
}

// PlaceOrder handles POST /orders.
// @Summary Place an order
// @Description Places an order paid with a saved payment method token.
// @Tags Orders
// @Accept json
// @Produce json
// @Param X-Authentication-Token header string false "Session token"
// @Param order body OrderBody true "Order"
// @Success 201 {object} domain.OrderConfirmation
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /orders [post]
func (h *CommerceHandler) PlaceOrder(c *fiber.Ctx) error {
	body, problem := h.orderBody(c)
	if problem != "" {
		return badRequest(c, problem)
	}

	confirmation, err := h.service.PlaceOrder(c.Context(), body.request(c.Get(AuthenticationHeader)))
	if err != nil {
		return h.fail(c, "Failed to place order", err, zap.String("product_id", body.ProductID))
	}

	logger.Get().Info("Order placed",
		zap.String("order_id", confirmation.OrderID),
		zap.String("ray_id", rayID(c)),
	)
	return c.Status(http.StatusCreated).JSON(confirmation)
}

// GetOrders handles GET /customers/:id/orders.
// @Summary List order history
// @Description Returns one page of a customer's order history.
// @Tags Orders
// @Produce json
// @Param id path string true "Customer ID"
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(10)
// @Param X-Authentication-Token header string true "Session token"
// @Success 200 {array} domain.OrderSummary
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /customers/{id}/orders [get]
func (h *CommerceHandler) GetOrders(c *fiber.Ctx) error {
	customerID := c.Params("id")
	token := c.Get(AuthenticationHeader)
	if token == "" {
		return c.Status(http.StatusUnauthorized).JSON(ErrorResponse{
			Message: "Authentication token is required",
			RayID:   rayID(c),
		})
	}

	orders, err := h.service.Orders(c.Context(), customerID, c.QueryInt("page", 1), c.QueryInt("page_size", 10), token)
	if err != nil {
		return h.fail(c, "Failed to get orders", err, zap.String("customer_id", customerID))
	}

	return c.Status(http.StatusOK).JSON(orders)
}

// orderBody parses and checks the request body. A non-empty problem is
// the message to reject the request with.
func (h *CommerceHandler) orderBody(c *fiber.Ctx) (body OrderBody, problem string) {
	if err := c.BodyParser(&body); err != nil {
		return body, "Invalid request body"
	}

	if err := h.validate.Struct(body); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return body, fmt.Sprintf("Invalid field %s", fieldErrs[0].Field())
		}
		return body, "Invalid request body"
	}
	return body, ""
}

// fail logs err and writes it with the status its kind maps to.
func (h *CommerceHandler) fail(c *fiber.Ctx, msg string, err error, fields ...zap.Field) error {
	kind := domain.KindOf(err)
	status := statusFor(kind)
	id := rayID(c)

	fields = append(fields,
		zap.String("ray_id", id),
		zap.String("kind", string(kind)),
		zap.Error(err),
	)
	if status >= http.StatusInternalServerError {
		logger.Get().Error(msg, fields...)
	} else {
		logger.Get().Info(msg, fields...)
	}

	return c.Status(status).JSON(ErrorResponse{
		Message: domain.UserMessage(err),
		Kind:    kind,
		RayID:   id,
	})
}

func statusFor(kind domain.Kind) int {
	switch kind {
	case domain.KindValidation:
		return http.StatusUnprocessableEntity
	case domain.KindReauthenticate:
		return http.StatusUnauthorized
	case domain.KindDeliveryUnavailable,
		domain.KindStateUnsupported,
		domain.KindPromoCodeInvalid,
		domain.KindPaymentFailure,
		domain.KindIncompleteBillingAddress,
		domain.KindPOBoxRejected,
		domain.KindMissingPhoneNumber,
		domain.KindProviderValidation:
		return http.StatusBadRequest
	case domain.KindTransport, domain.KindParse, domain.KindUnexpectedResponse, domain.KindProvider:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
		Message: msg,
		RayID:   rayID(c),
	})
}

func rayID(c *fiber.Ctx) string {
	id, ok := c.Locals("requestid").(string)
	if !ok {
		return "unknown"
	}
	return id
}
