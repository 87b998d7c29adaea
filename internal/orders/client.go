package orders

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"
)

// Reason classifies why an order submission failed.
type Reason string

const (
	ReasonServerRejected     Reason = "SERVER_REJECTED"
	ReasonNetworkUnavailable Reason = "NETWORK_UNAVAILABLE"
	ReasonTimeout            Reason = "TIMEOUT"
)

// Error is a classified submission failure. Every failure mode of the
// order endpoint (bad status, malformed body, transport error, timeout)
// maps onto exactly one Reason.
type Error struct {
	Reason  Reason
	Status  int // HTTP status when the server answered, 0 otherwise
	Message string
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("order submission failed (%s, http %d): %s", e.Reason, e.Status, e.Message)
	}
	return fmt.Sprintf("order submission failed (%s): %s", e.Reason, e.Message)
}

// OrderItem is one line of the order-creation request.
type OrderItem struct {
	ItemID          string `json:"item_id"`
	Note            string `json:"note"`
	MeetingLocation string `json:"meeting_location"`
	ScheduledAt     string `json:"scheduled_at,omitempty"` // YYYY-MM-DD, empty when unset
}

// CreateOrderRequest is the payload sent to the order-creation endpoint.
type CreateOrderRequest struct {
	IdempotencyKey string      `json:"idempotency_key"`
	Items          []OrderItem `json:"items"`
	PaymentMethod  string      `json:"payment_method"`
	TotalAmount    string      `json:"total_amount"`
	Currency       string      `json:"currency"`
}

// Ack is the server's acknowledgment of a created order.
type Ack struct {
	OrderID string
}

// Client creates orders against the external order endpoint.
type Client interface {
	CreateOrder(ctx context.Context, req CreateOrderRequest) (Ack, error)
}

type orderBodyDTO struct {
	OrderID string `json:"order_id"`
}

type orderEnvelopeDTO struct {
	Code    int          `json:"code"`
	Message string       `json:"message,omitempty"`
	Body    orderBodyDTO `json:"body"`
}

// HTTPClient is the production Client. Calls go through a circuit breaker;
// an open breaker is reported as a network failure without touching the wire.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker[Ack]
}

// NewHTTPClient creates an order client for the given base URL.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	c := &HTTPClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
	c.breaker = gobreaker.NewCircuitBreaker[Ack](gobreaker.Settings{
		Name:    "order-submission",
		Timeout: 30 * time.Second,
	})
	return c
}

func (c *HTTPClient) CreateOrder(ctx context.Context, req CreateOrderRequest) (Ack, error) {
	ack, err := c.breaker.Execute(func() (Ack, error) {
		return c.doCreate(ctx, req)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return Ack{}, &Error{Reason: ReasonNetworkUnavailable, Message: err.Error()}
		}
		return Ack{}, err
	}
	return ack, nil
}

func (c *HTTPClient) doCreate(ctx context.Context, req CreateOrderRequest) (Ack, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return Ack{}, fmt.Errorf("marshal order request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/orders", bytes.NewReader(payload))
	if err != nil {
		return Ack{}, fmt.Errorf("build order request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return Ack{}, classifyTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Ack{}, &Error{
			Reason:  ReasonServerRejected,
			Status:  resp.StatusCode,
			Message: fmt.Sprintf("unexpected status %s", resp.Status),
		}
	}

	var envelope orderEnvelopeDTO
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return Ack{}, &Error{Reason: ReasonServerRejected, Status: resp.StatusCode, Message: "malformed response body"}
	}
	if envelope.Body.OrderID == "" {
		return Ack{}, &Error{Reason: ReasonServerRejected, Status: resp.StatusCode, Message: "response missing order id"}
	}

	return Ack{OrderID: envelope.Body.OrderID}, nil
}

func classifyTransportError(err error) *Error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &Error{Reason: ReasonTimeout, Message: err.Error()}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &Error{Reason: ReasonTimeout, Message: err.Error()}
	}
	return &Error{Reason: ReasonNetworkUnavailable, Message: err.Error()}
}
