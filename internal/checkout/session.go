package checkout

import (
	"sync"
	"time"

	"github.com/hung-0621/Book-Trade-APP/internal/catalog"
	"github.com/hung-0621/Book-Trade-APP/internal/money"
)

// Lookup resolves a selected id against the fetched catalog snapshot.
type Lookup func(id string) (catalog.Item, bool)

// Resolve maps the ids picked on the cart screen to line items, preserving
// selection order. Ids with no catalog entry are dropped: the cart screen is
// assumed in sync with the catalog, but an item can disappear between
// selection and checkout, and stale ids must not break the flow. Duplicate
// ids merge into the first occurrence.
func Resolve(selectedIDs []string, lookup Lookup) []*LineItem {
	items := make([]*LineItem, 0, len(selectedIDs))
	seen := make(map[string]bool, len(selectedIDs))

	for _, id := range selectedIDs {
		if seen[id] {
			continue
		}
		item, ok := lookup(id)
		if !ok {
			continue
		}
		seen[id] = true
		items = append(items, &LineItem{Item: item})
	}
	return items
}

// Session is one checkout attempt: the resolved line items, the chosen
// payment method and the submission status. A session belongs to a single
// user flow; the only concurrent access is the submission completing.
type Session struct {
	mu          sync.Mutex
	items       []*LineItem
	index       map[string]*LineItem
	payment     PaymentMethod
	status      Status
	lastFailure *FailureReason
	orderID     string
	discarded   bool
}

// NewSession resolves the selected ids and builds an idle session around
// them. A session where every id failed to resolve is still constructed;
// Empty reports that state so the screen can render its empty placeholder
// instead of a checkout form.
func NewSession(selectedIDs []string, lookup Lookup) *Session {
	items := Resolve(selectedIDs, lookup)
	index := make(map[string]*LineItem, len(items))
	for _, li := range items {
		index[li.ID()] = li
	}
	return &Session{
		items:   items,
		index:   index,
		payment: PaymentCash,
		status:  StatusIdle,
	}
}

// Empty reports the nothing-to-check-out condition.
func (s *Session) Empty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items) == 0
}

// Len returns the number of line items.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Items returns a copy of the line items in selection order.
func (s *Session) Items() []LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyItems()
}

func (s *Session) copyItems() []LineItem {
	result := make([]LineItem, len(s.items))
	for i, li := range s.items {
		result[i] = *li
		if li.ScheduledAt != nil {
			at := *li.ScheduledAt
			result[i].ScheduledAt = &at
		}
	}
	return result
}

// Item returns a copy of the line item with the given id.
func (s *Session) Item(id string) (LineItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	li, ok := s.index[id]
	if !ok {
		return LineItem{}, false
	}
	copied := *li
	if li.ScheduledAt != nil {
		at := *li.ScheduledAt
		copied.ScheduledAt = &at
	}
	return copied, true
}

// SetNote updates the free-text note of a line item.
func (s *Session) SetNote(id, text string) error {
	return s.edit(id, func(li *LineItem) {
		li.Note = text
	})
}

// SetMeetingLocation updates the agreed meeting place of a line item.
func (s *Session) SetMeetingLocation(id, text string) error {
	return s.edit(id, func(li *LineItem) {
		li.MeetingLocation = text
	})
}

// SetScheduledAt sets the agreed hand-over date of a line item. The value is
// normalized to a calendar date before storing.
func (s *Session) SetScheduledAt(id string, date time.Time) error {
	normalized := NormalizeDate(date)
	return s.edit(id, func(li *LineItem) {
		li.ScheduledAt = &normalized
	})
}

func (s *Session) edit(id string, apply func(*LineItem)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.editGuard(); err != nil {
		return err
	}
	li, ok := s.index[id]
	if !ok {
		return ErrItemNotFound
	}
	apply(li)
	return nil
}

// SetPaymentMethod switches the selected payment method.
func (s *Session) SetPaymentMethod(m PaymentMethod) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.editGuard(); err != nil {
		return err
	}
	if !m.Valid() {
		return ErrInvalidPayment
	}
	s.payment = m
	return nil
}

// editGuard rejects mutations once the session data may already be on the
// wire (Submitting) or the order exists (Success).
func (s *Session) editGuard() error {
	switch {
	case s.discarded:
		return ErrSessionDiscarded
	case s.status == StatusSubmitting:
		return ErrSessionLocked
	case s.status == StatusSuccess:
		return ErrSessionFinalized
	}
	return nil
}

// PaymentMethod returns the currently selected payment method.
func (s *Session) PaymentMethod() PaymentMethod {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.payment
}

// Status returns the submission status.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// LastFailure returns the reason of the most recent failed submission, or
// nil if none failed yet. The reason survives the automatic return to Idle
// so the screen can explain the retry prompt.
func (s *Session) LastFailure() *FailureReason {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastFailure == nil {
		return nil
	}
	reason := *s.lastFailure
	return &reason
}

// OrderID returns the acknowledged order id once the session succeeded.
func (s *Session) OrderID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.orderID
}

// Total recomputes the flat sum of the present line items' prices. It is a
// pure fold over current contents, never a cached counter, so it stays
// correct across any add or remove. An empty session totals zero.
func (s *Session) Total() (money.Money, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := money.Zero(money.TWD)
	if len(s.items) > 0 {
		total = money.Zero(s.items[0].Item.Price.Currency)
	}
	for _, li := range s.items {
		sum, err := total.Add(li.Item.Price)
		if err != nil {
			return money.Money{}, err
		}
		total = sum
	}
	return total, nil
}

// Discard detaches the session from its flow, e.g. when the user navigates
// away. Any submission result arriving afterwards is dropped; a discarded
// session is never resurrected.
func (s *Session) Discard() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.discarded = true
}

// beginSubmission performs the local guards and enters Submitting. At most
// one submission may be in flight; a second trigger while Submitting fails
// with ErrAlreadySubmitting instead of issuing a duplicate network call.
func (s *Session) beginSubmission() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case s.discarded:
		return ErrSessionDiscarded
	case s.status == StatusSubmitting:
		return ErrAlreadySubmitting
	case s.status == StatusSuccess:
		return ErrSessionFinalized
	case len(s.items) == 0:
		return ErrEmptyCart
	}
	s.status = StatusSubmitting
	return nil
}

// snapshot copies the data a submission sends, under the same lock that
// guards edits, so the request body matches exactly what the session holds.
func (s *Session) snapshot() ([]LineItem, PaymentMethod) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyItems(), s.payment
}

// succeed finalizes the session with the acknowledged order id. Results for
// a discarded session are dropped.
func (s *Session) succeed(orderID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.discarded || !CanTransitionTo(s.status, StatusSuccess) {
		return
	}
	s.status = StatusSuccess
	s.orderID = orderID
	s.lastFailure = nil
}

// fail records the failure reason and returns the session to Idle. Nothing
// else changes: line items and payment selection survive for resubmission.
func (s *Session) fail(reason FailureReason) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.discarded || !CanTransitionTo(s.status, StatusFailed) {
		return
	}
	// Failed is passed through, not rested in: the machine returns to Idle
	// right away so the same data can be resubmitted without re-entry.
	s.lastFailure = &reason
	s.status = StatusIdle
}
