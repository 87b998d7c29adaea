package checkout

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/hung-0621/Book-Trade-APP/internal/orders"
)

const scheduledAtLayout = "2006-01-02"

// Submitter drives a session through its submission lifecycle against the
// order-creation endpoint. Local guards run first and never touch the
// network; remote failures are folded into the session's failure state.
type Submitter struct {
	client  orders.Client
	timeout time.Duration
}

// NewSubmitter creates a submitter calling the given order client with a
// per-attempt timeout.
func NewSubmitter(client orders.Client, timeout time.Duration) *Submitter {
	return &Submitter{
		client:  client,
		timeout: timeout,
	}
}

// Result is the boundary output of one submission attempt: the acknowledged
// order id on success, or the failure reason.
type Result struct {
	OrderID string
	Failure *FailureReason
}

// Succeeded reports whether the order was created.
func (r Result) Succeeded() bool {
	return r.Failure == nil
}

// Submit validates the session, sends the order and resolves the outcome.
// Local validation problems come back as errors, before any network
// interaction. Remote failures are not errors: they are folded into the
// session's state and reported as the Result's failure reason, and the
// session returns to Idle ready for a retry.
func (s *Submitter) Submit(ctx context.Context, session *Session) (Result, error) {
	total, err := session.Total()
	if err != nil {
		return Result{}, err
	}

	if err := session.beginSubmission(); err != nil {
		return Result{}, err
	}

	items, payment := session.snapshot()
	request := orders.CreateOrderRequest{
		IdempotencyKey: uuid.NewString(),
		Items:          mapLineItems(items),
		PaymentMethod:  string(payment),
		TotalAmount:    total.Amount.String(),
		Currency:       total.Currency.String(),
	}

	orderCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	ack, err := s.client.CreateOrder(orderCtx, request)
	if err != nil {
		reason := classifyFailure(err)
		session.fail(reason)
		log.Printf("order submission failed with reason %v: %v", reason, err)
		return Result{Failure: &reason}, nil
	}

	session.succeed(ack.OrderID)
	return Result{OrderID: ack.OrderID}, nil
}

func mapLineItems(items []LineItem) []orders.OrderItem {
	result := make([]orders.OrderItem, len(items))
	for i, li := range items {
		result[i] = orders.OrderItem{
			ItemID:          li.ID(),
			Note:            li.Note,
			MeetingLocation: li.MeetingLocation,
		}
		if li.ScheduledAt != nil {
			result[i].ScheduledAt = li.ScheduledAt.Format(scheduledAtLayout)
		}
	}
	return result
}

func classifyFailure(err error) FailureReason {
	var orderErr *orders.Error
	if errors.As(err, &orderErr) {
		switch orderErr.Reason {
		case orders.ReasonTimeout:
			return ReasonTimeout
		case orders.ReasonNetworkUnavailable:
			return ReasonNetworkUnavailable
		default:
			return ReasonServerRejected
		}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ReasonTimeout
	}
	return ReasonNetworkUnavailable
}
