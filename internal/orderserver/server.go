package orderserver

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/hung-0621/Book-Trade-APP/internal/catalog"
)

// Server implements the storefront backend the mobile client talks to: the
// product feed and the order-creation endpoint, wrapped in the API envelope
// the app expects.
type Server struct {
	store   *Store
	feed    []catalog.Item
	metrics *Metrics
}

// New creates a server over the given order store, serving the provided
// catalog items as its product feed.
func New(store *Store, feed []catalog.Item) *Server {
	return &Server{
		store:   store,
		feed:    feed,
		metrics: NewMetrics(),
	}
}

// Router builds the HTTP routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Get("/api/products", s.handleProducts)
	r.Post("/api/orders", s.handleCreateOrder)
	r.Get("/api/orders/{id}", s.handleGetOrder)
	r.Handle("/metrics", s.metrics.Handler())

	return r
}

type envelope struct {
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	Body    interface{} `json:"body,omitempty"`
}

type productDTO struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Author   string `json:"author"`
	Price    int64  `json:"price"`
	Currency string `json:"currency"`
	PhotoURI string `json:"photo_uri,omitempty"`
}

// GET /api/products
func (s *Server) handleProducts(w http.ResponseWriter, _ *http.Request) {
	// Empty slice rather than nil so the encoder emits [] instead of null.
	products := make([]productDTO, 0, len(s.feed))
	for _, item := range s.feed {
		products = append(products, productDTO{
			ID:       item.ID,
			Name:     item.Name,
			Author:   item.Author,
			Price:    item.Price.Amount.IntPart(),
			Currency: item.Price.Currency.String(),
			PhotoURI: item.PhotoURI,
		})
	}
	respondJSON(w, http.StatusOK, envelope{Code: http.StatusOK, Body: products})
}

type createOrderDTO struct {
	IdempotencyKey string       `json:"idempotency_key"`
	Items          []StoredItem `json:"items"`
	PaymentMethod  string       `json:"payment_method"`
	TotalAmount    string       `json:"total_amount"`
	Currency       string       `json:"currency"`
}

type orderCreatedDTO struct {
	OrderID string `json:"order_id"`
}

// POST /api/orders
func (s *Server) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.reject(w, "invalid_body", "invalid JSON body")
		return
	}

	switch {
	case req.IdempotencyKey == "":
		s.reject(w, "missing_idempotency_key", "idempotency_key is required")
		return
	case len(req.Items) == 0:
		s.reject(w, "empty_order", "order has no items")
		return
	case req.PaymentMethod != "cash" && req.PaymentMethod != "creditCard":
		s.reject(w, "unknown_payment_method", "payment_method must be cash or creditCard")
		return
	case req.TotalAmount == "" || req.Currency == "":
		s.reject(w, "missing_total", "total_amount and currency are required")
		return
	}

	order := Order{
		ID:            uuid.NewString(),
		Items:         req.Items,
		PaymentMethod: req.PaymentMethod,
		TotalAmount:   req.TotalAmount,
		Currency:      req.Currency,
	}

	orderID, replayed, err := s.store.CreateOrder(req.IdempotencyKey, order)
	if err != nil {
		log.Printf("create order failed: %v", err)
		respondJSON(w, http.StatusInternalServerError, envelope{
			Code:    http.StatusInternalServerError,
			Message: "failed to store order",
		})
		return
	}

	if replayed {
		s.metrics.OrdersReplayed.Inc()
	} else {
		s.metrics.OrdersCreated.Inc()
	}

	respondJSON(w, http.StatusCreated, envelope{
		Code: http.StatusCreated,
		Body: orderCreatedDTO{OrderID: orderID},
	})
}

// GET /api/orders/{id}
func (s *Server) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	order, err := s.store.GetOrder(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusNotFound, envelope{
			Code:    http.StatusNotFound,
			Message: "order not found",
		})
		return
	}
	respondJSON(w, http.StatusOK, envelope{Code: http.StatusOK, Body: order})
}

func (s *Server) reject(w http.ResponseWriter, reason, message string) {
	s.metrics.OrdersRejected.WithLabelValues(reason).Inc()
	respondJSON(w, http.StatusBadRequest, envelope{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}
