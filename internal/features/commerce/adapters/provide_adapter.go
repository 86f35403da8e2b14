package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"provide-client/internal/core/config"
	"provide-client/internal/core/httpclient"
	"provide-client/internal/core/logger"
	"provide-client/internal/features/commerce/domain"
	"provide-client/internal/features/commerce/normalize"
	"provide-client/internal/features/commerce/ports"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Provider endpoints, relative to the base URL.
const (
	pathCustomerExists      = "/API/Customer/v1/JSON/DoesCustomerExistByEmail"
	pathCreateCustomer      = "/API/Customer/v1/JSON/CreateCustomer"
	pathLogin               = "/API/Customer/v1/JSON/GetAuthenticationToken"
	pathGetCustomer         = "/API/Customer/v1/JSON/GetCustomer"
	pathGetCustomerByEmail  = "/API/Customer/v1/JSON/GetCustomerByEmail"
	pathUpdateCustomer      = "/API/Customer/v1/JSON/UpdateCustomer"
	pathCustomerRecipients  = "/API/Customer/v1/JSON/GetCustomerRecipients"
	pathForgotPassword      = "/API/Customer/v1/JSON/SendForgottenPasswordEmail"
	pathCreatePaymentMethod = "/API/Payment/v1/JSON/CreatePaymentMethod"
	pathGetPaymentMethods   = "/API/Payment/v1/JSON/GetPaymentMethods"
	pathProductAvailability = "/API/Product/v1/JSON/GetProductAvailability"
	pathOrderTotals         = "/API/Order/v1/JSON/UpdateOrderTotals"
	pathCreateOrder         = "/API/Order/v1/JSON/CreateOrder"
	pathGetOrders           = "/API/Order/v1/JSON/GetOrders"
)

const redacted = "REDACTED"

// redactedOps carry passwords or card numbers in their request bodies.
var redactedOps = map[string]bool{
	"createCustomer":      true,
	"createPaymentMethod": true,
	"login":               true,
}

var errInvalidJSON = errors.New("response body is not valid JSON")

// ProvideAdapter implements ports.CommerceProvider against the Provide API.
// It keeps no per-call state and is safe for concurrent use when its
// transport is.
type ProvideAdapter struct {
	// transport sends requests to the provider.
	transport ports.Transport
	// applicationToken is sent with every request.
	applicationToken string
	// giftMessage formats gift messages for this brand's cards.
	giftMessage normalize.GiftMessageOptions
	// faultLevel is the log level for provider faults.
	faultLevel zapcore.Level
	// logger receives fault and unexpected response details.
	logger *zap.Logger
	// now is the clock used to drop expired cards.
	now func() time.Time
}

var _ ports.CommerceProvider = (*ProvideAdapter)(nil)

// NewProvideAdapter creates a ProvideAdapter that sends requests through transport.
func NewProvideAdapter(cfg config.ProvideConfig, transport ports.Transport) *ProvideAdapter {
	return &ProvideAdapter{
		transport:        transport,
		applicationToken: cfg.ApplicationToken,
		giftMessage: normalize.GiftMessageOptions{
			LineLength:      cfg.GiftMessageLineLength,
			VirtualNewlines: cfg.GiftMessageVirtualNewlines,
		},
		faultLevel: logger.ParseLevel(cfg.FaultLogLevel, zapcore.DebugLevel),
		logger:     logger.Named("provide"),
		now:        time.Now,
	}
}

// NewProvideClient creates a ProvideAdapter with an HTTP transport built from cfg.
func NewProvideClient(cfg config.ProvideConfig) (*ProvideAdapter, error) {
	client := httpclient.NewClient(httpclient.Options{
		Timeout:            cfg.Timeout(),
		InsecureSkipVerify: !cfg.VerifySSL,
		Proxy:              cfg.Proxy,
	})

	transport, err := httpclient.NewTransport(cfg.BaseURL, client)
	if err != nil {
		return nil, fmt.Errorf("failed to create provide transport: %w", err)
	}

	return NewProvideAdapter(cfg, transport), nil
}

// call describes one provider request.
type call struct {
	// op labels the call in logs and errors.
	op string
	// method is the HTTP method.
	method string
	// path is the endpoint.
	path string
	// params are extra query string parameters.
	params url.Values
	// body is marshalled to JSON when non-nil.
	body any
	// session is the customer's authentication token, if any.
	session string
}

// exchange is a round trip that produced a response.
type exchange struct {
	call     call
	request  httpclient.Request
	response *httpclient.Response
}

// roundTrip sends c. It fails only when no response was obtained.
func (a *ProvideAdapter) roundTrip(ctx context.Context, c call) (*exchange, error) {
	query := url.Values{}
	for k, v := range c.params {
		query[k] = v
	}
	query.Set("applicationToken", a.applicationToken)
	if c.session != "" {
		query.Set("authenticationToken", c.session)
	}

	req := httpclient.Request{Method: c.method, Path: c.path, Query: query}
	if c.body != nil {
		body, err := json.Marshal(c.body)
		if err != nil {
			return nil, domain.NewError(domain.KindParse, c.op, domain.MessageDefault, fmt.Errorf("failed to encode request: %w", err))
		}
		req.Body = body
	}

	ex := &exchange{call: c, request: req}

	resp, err := a.transport.Do(ctx, req)
	if err != nil {
		a.logFault(ex, FaultTransport, err.Error())
		return nil, domain.NewError(domain.KindTransport, c.op, domain.MessageDefault, err)
	}
	ex.response = resp

	return ex, nil
}

// do sends c and decodes a successful response into out. out may be nil
// when only a valid JSON body is required.
func (a *ProvideAdapter) do(ctx context.Context, c call, out any) error {
	ex, err := a.roundTrip(ctx, c)
	if err != nil {
		return err
	}

	if ex.response.Failed() {
		return a.fail(ex, ParseFault(ex.response.Body))
	}

	return a.decode(ex, out)
}

// fail logs the fault and returns the error callers see.
func (a *ProvideAdapter) fail(ex *exchange, fault Fault) error {
	a.logFault(ex, fault.FaultType, fault.ErrorMessage, zap.String("property_name", fault.PropertyName))
	return Classify(ex.call.op, fault)
}

// decode parses a successful response body and checks its shape.
func (a *ProvideAdapter) decode(ex *exchange, out any) error {
	body := bytes.TrimSpace(ex.response.Body)
	if !json.Valid(body) || bytes.Equal(body, []byte("null")) {
		a.logFault(ex, FaultBadResponse, badResponseMessage)
		return domain.NewError(domain.KindParse, ex.call.op, domain.MessageDefault, errInvalidJSON)
	}

	if out == nil {
		return nil
	}

	if err := json.Unmarshal(body, out); err != nil {
		return a.unexpected(ex, err)
	}
	if err := checkShape(out); err != nil {
		return a.unexpected(ex, err)
	}
	return nil
}

// unexpected logs a response that parsed but lacked what was needed.
func (a *ProvideAdapter) unexpected(ex *exchange, cause error) error {
	a.logFault(ex, FaultUnexpectedResponse, unexpectedResponseMessage, zap.Error(cause))
	return domain.NewError(domain.KindUnexpectedResponse, ex.call.op, domain.MessageDefault, cause)
}

// invalidDate logs a wire date that could not be decoded.
func (a *ProvideAdapter) invalidDate(ex *exchange, cause error) error {
	a.logFault(ex, FaultUnexpectedResponse, "The JSON response contained an invalid date", zap.Error(cause))
	return domain.NewError(domain.KindParse, ex.call.op, domain.MessageDefault, cause)
}

// logFault hands the full exchange to the logger. Sensitive request bodies
// and the query string are never logged.
func (a *ProvideAdapter) logFault(ex *exchange, faultType, message string, extra ...zap.Field) {
	requestBody := string(ex.request.Body)
	if redactedOps[ex.call.op] {
		requestBody = redacted
	}

	fields := []zap.Field{
		zap.String("op", ex.call.op),
		zap.String("fault_type", faultType),
		zap.String("message", message),
		zap.Dict("request",
			zap.String("method", ex.request.Method),
			zap.String("path", ex.request.Path),
			zap.String("body", requestBody),
		),
	}
	if ex.response != nil {
		fields = append(fields, zap.Dict("response",
			zap.Int("status_code", ex.response.StatusCode),
			zap.ByteString("body", ex.response.Body),
		))
	}
	fields = append(fields, extra...)

	a.logger.Log(a.faultLevel, "provide: "+ex.call.op, fields...)
}

// get and friends keep the operation files short.
func get(op, path string, params url.Values, session string) call {
	return call{op: op, method: http.MethodGet, path: path, params: params, session: session}
}

func post(op, path string, body any, session string) call {
	return call{op: op, method: http.MethodPost, path: path, body: body, session: session}
}

func put(op, path string, body any, session string) call {
	return call{op: op, method: http.MethodPut, path: path, body: body, session: session}
}
