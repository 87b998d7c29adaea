package checkout

import (
	"time"

	"github.com/hung-0621/Book-Trade-APP/internal/catalog"
)

// PaymentMethod is the buyer's chosen way to pay. The set is closed; no
// payment-instrument details are collected here.
type PaymentMethod string

const (
	PaymentCash       PaymentMethod = "cash"
	PaymentCreditCard PaymentMethod = "creditCard"
)

// Valid reports whether m is a member of the closed set.
func (m PaymentMethod) Valid() bool {
	return m == PaymentCash || m == PaymentCreditCard
}

// LineItem is one selected catalog item plus the buyer's fulfillment details
// for it. The catalog reference is read-only; only the fulfillment fields
// are mutable, and only through the owning session.
type LineItem struct {
	Item            catalog.Item
	Note            string
	MeetingLocation string
	ScheduledAt     *time.Time // normalized calendar date, nil until picked
}

// ID returns the wrapped catalog item's id, which identifies the line item
// within its session.
func (li *LineItem) ID() string {
	return li.Item.ID
}

// NormalizeDate reduces a point in time to its calendar date, stored as
// midnight UTC. Locale formatting is a presentation concern and happens on
// top of the stored value, never instead of it.
func NormalizeDate(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
