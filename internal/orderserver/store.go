package orderserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	bolt "github.com/boltdb/bolt"
)

var (
	ordersBucket      = []byte("orders")
	idempotencyBucket = []byte("idempotency")
)

// ErrOrderNotFound is returned when a requested order does not exist.
var ErrOrderNotFound = errors.New("order not found")

// StoredItem is one line of a persisted order.
type StoredItem struct {
	ItemID          string `json:"item_id"`
	Note            string `json:"note"`
	MeetingLocation string `json:"meeting_location"`
	ScheduledAt     string `json:"scheduled_at,omitempty"`
}

// Order is a persisted order record.
type Order struct {
	ID            string       `json:"id"`
	Items         []StoredItem `json:"items"`
	PaymentMethod string       `json:"payment_method"`
	TotalAmount   string       `json:"total_amount"`
	Currency      string       `json:"currency"`
	CreatedAt     time.Time    `json:"created_at"`
}

// Store persists orders and idempotency records in a BoltDB file. The
// embedded store keeps the server runnable without any external database.
type Store struct {
	db *bolt.DB
}

// OpenStore opens (or creates) the database at path and ensures the buckets
// exist.
func OpenStore(path string) (*Store, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open order db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(ordersBucket); err != nil {
			return err
		}
		_, err := tx.CreateBucketIfNotExists(idempotencyBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create buckets: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the database file lock.
func (s *Store) Close() error {
	return s.db.Close()
}

// CreateOrder persists the order under the given idempotency key. If the key
// was seen before, the previously stored order id is returned unchanged and
// no write happens, so a client can retry a failed POST without creating a
// duplicate order.
//
// Returns (orderID, true) when the key replayed an existing order.
func (s *Store) CreateOrder(idempotencyKey string, order Order) (string, bool, error) {
	var orderID string
	replayed := false

	err := s.db.Update(func(tx *bolt.Tx) error {
		idem := tx.Bucket(idempotencyBucket)
		if existing := idem.Get([]byte(idempotencyKey)); existing != nil {
			orderID = string(existing)
			replayed = true
			return nil
		}

		order.CreatedAt = time.Now().UTC()
		data, err := json.Marshal(order)
		if err != nil {
			return err
		}
		if err := tx.Bucket(ordersBucket).Put([]byte(order.ID), data); err != nil {
			return err
		}
		if err := idem.Put([]byte(idempotencyKey), []byte(order.ID)); err != nil {
			return err
		}
		orderID = order.ID
		return nil
	})
	if err != nil {
		return "", false, err
	}

	return orderID, replayed, nil
}

// GetOrder retrieves a persisted order by id.
func (s *Store) GetOrder(id string) (Order, error) {
	var order Order

	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(ordersBucket).Get([]byte(id))
		if v == nil {
			return ErrOrderNotFound
		}
		return json.Unmarshal(v, &order)
	})
	if err != nil {
		return Order{}, err
	}

	return order, nil
}

// CountOrders returns the number of persisted orders.
func (s *Store) CountOrders() (int, error) {
	count := 0
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(ordersBucket).ForEach(func(_, _ []byte) error {
			count++
			return nil
		})
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}
