package orderserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/hung-0621/Book-Trade-APP/internal/catalog"
	"github.com/hung-0621/Book-Trade-APP/internal/checkout"
	"github.com/hung-0621/Book-Trade-APP/internal/money"
	"github.com/hung-0621/Book-Trade-APP/internal/orders"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction("net/http.(*persistConn).readLoop"),
		goleak.IgnoreTopFunction("net/http.(*persistConn).writeLoop"),
	)
}

func testFeed() []catalog.Item {
	return []catalog.Item{
		{ID: "b1", Name: "算法圖解", Author: "Aditya Bhargava", Price: money.New(250, money.TWD)},
		{ID: "b2", Name: "Clean Code", Author: "Robert C. Martin", Price: money.New(380, money.TWD)},
	}
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	store, err := OpenStore(filepath.Join(t.TempDir(), "orders.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	ts := httptest.NewServer(New(store, testFeed()).Router())
	t.Cleanup(ts.Close)
	return ts
}

func postOrder(t *testing.T, url string, body map[string]interface{}) (int, map[string]json.RawMessage) {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	resp, err := http.Post(url+"/api/orders", "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	defer resp.Body.Close()

	var envelope map[string]json.RawMessage
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	return resp.StatusCode, envelope
}

func validOrderBody() map[string]interface{} {
	return map[string]interface{}{
		"idempotency_key": "key-abc",
		"items": []map[string]string{
			{"item_id": "b1", "note": "", "meeting_location": "公館"},
		},
		"payment_method": "cash",
		"total_amount":   "250",
		"currency":       "TWD",
	}
}

func TestProductFeed(t *testing.T) {
	ts := newTestServer(t)

	// The real catalog client consumes the feed end to end.
	client := catalog.NewClient(ts.URL, time.Second)
	snapshot, err := client.FetchSnapshot(t.Context())
	require.NoError(t, err)

	require.Equal(t, 2, snapshot.Len())
	item, ok := snapshot.Lookup("b2")
	require.True(t, ok)
	assert.Equal(t, "Clean Code", item.Name)
	assert.True(t, item.Price.Equal(money.New(380, money.TWD)))
}

func TestCreateOrderEndpoint(t *testing.T) {
	ts := newTestServer(t)

	status, envelope := postOrder(t, ts.URL, validOrderBody())
	assert.Equal(t, http.StatusCreated, status)

	var body struct {
		OrderID string `json:"order_id"`
	}
	require.NoError(t, json.Unmarshal(envelope["body"], &body))
	assert.NotEmpty(t, body.OrderID)

	// The stored order is retrievable.
	resp, err := http.Get(ts.URL + "/api/orders/" + body.OrderID)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCreateOrderEndpoint_IdempotentReplay(t *testing.T) {
	ts := newTestServer(t)

	extractID := func(envelope map[string]json.RawMessage) string {
		var body struct {
			OrderID string `json:"order_id"`
		}
		require.NoError(t, json.Unmarshal(envelope["body"], &body))
		return body.OrderID
	}

	_, first := postOrder(t, ts.URL, validOrderBody())
	_, second := postOrder(t, ts.URL, validOrderBody())
	assert.Equal(t, extractID(first), extractID(second))
}

func TestCreateOrderEndpoint_Validation(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name   string
		mutate func(map[string]interface{})
	}{
		{
			name:   "missing idempotency key",
			mutate: func(b map[string]interface{}) { delete(b, "idempotency_key") },
		},
		{
			name:   "empty items",
			mutate: func(b map[string]interface{}) { b["items"] = []map[string]string{} },
		},
		{
			name:   "unknown payment method",
			mutate: func(b map[string]interface{}) { b["payment_method"] = "barter" },
		},
		{
			name:   "missing total",
			mutate: func(b map[string]interface{}) { b["total_amount"] = "" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := validOrderBody()
			tt.mutate(body)
			status, _ := postOrder(t, ts.URL, body)
			assert.Equal(t, http.StatusBadRequest, status)
		})
	}
}

func TestCheckoutFlowAgainstServer(t *testing.T) {
	// Full client-side flow against the real server: fetch feed, resolve,
	// fill in details, submit.
	ts := newTestServer(t)

	snapshot, err := catalog.NewClient(ts.URL, time.Second).FetchSnapshot(t.Context())
	require.NoError(t, err)

	session := checkout.NewSession([]string{"b1", "b2"}, snapshot.Lookup)
	require.NoError(t, session.SetMeetingLocation("b1", "台北車站 M4 出口"))
	require.NoError(t, session.SetScheduledAt("b1", time.Now().AddDate(0, 0, 2)))

	submitter := checkout.NewSubmitter(orders.NewHTTPClient(ts.URL, time.Second), time.Second)
	res, err := submitter.Submit(t.Context(), session)
	require.NoError(t, err)
	require.True(t, res.Succeeded())
	assert.NotEmpty(t, res.OrderID)
	assert.Equal(t, checkout.StatusSuccess, session.Status())
	assert.Equal(t, res.OrderID, session.OrderID())
}

func TestGetOrder_NotFoundEndpoint(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/orders/does-not-exist")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
