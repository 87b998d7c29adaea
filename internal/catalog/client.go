package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/sync/singleflight"
	"golang.org/x/text/currency"

	"github.com/hung-0621/Book-Trade-APP/internal/money"
)

type feedItemDTO struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Author   string `json:"author"`
	Price    int64  `json:"price"`
	Currency string `json:"currency,omitempty"`
	PhotoURI string `json:"photo_uri,omitempty"`
}

type feedEnvelopeDTO struct {
	Code    int           `json:"code"`
	Message string        `json:"message,omitempty"`
	Body    []feedItemDTO `json:"body"`
}

// Client fetches the product feed from the storefront backend.
type Client struct {
	baseURL string
	http    *http.Client
	sfg     singleflight.Group // Coalesces concurrent feed fetches
}

// NewClient creates a catalog client for the given backend base URL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// FetchSnapshot retrieves the current product feed and returns it as an
// immutable snapshot. Concurrent calls share a single request.
func (c *Client) FetchSnapshot(ctx context.Context) (*Snapshot, error) {
	v, err, _ := c.sfg.Do("feed", func() (interface{}, error) {
		return c.fetch(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.(*Snapshot), nil
}

func (c *Client) fetch(ctx context.Context) (*Snapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/products", nil)
	if err != nil {
		return nil, fmt.Errorf("build feed request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch feed: %w", err)
	}
	defer resp.Body.Close()

	var envelope feedEnvelopeDTO
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("decode feed: %w", err)
	}
	if envelope.Code != http.StatusOK {
		return nil, fmt.Errorf("feed returned code %d: %s", envelope.Code, envelope.Message)
	}

	items, err := mapFeedItems(envelope.Body)
	if err != nil {
		return nil, err
	}
	return NewSnapshot(items), nil
}

func mapFeedItems(dtos []feedItemDTO) ([]Item, error) {
	items := make([]Item, 0, len(dtos))
	for _, dto := range dtos {
		item, err := mapFeedItem(dto)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func mapFeedItem(dto feedItemDTO) (Item, error) {
	if dto.ID == "" {
		return Item{}, fmt.Errorf("feed item %q has no id", dto.Name)
	}
	if dto.Price < 0 {
		return Item{}, fmt.Errorf("feed item %s has negative price %d", dto.ID, dto.Price)
	}

	unit := money.TWD
	if dto.Currency != "" {
		parsed, err := currency.ParseISO(dto.Currency)
		if err != nil {
			return Item{}, fmt.Errorf("feed item %s currency[%s] is not valid: %w", dto.ID, dto.Currency, err)
		}
		unit = parsed
	}

	return Item{
		ID:       dto.ID,
		Name:     dto.Name,
		Author:   dto.Author,
		Price:    money.New(dto.Price, unit),
		PhotoURI: dto.PhotoURI,
	}, nil
}
