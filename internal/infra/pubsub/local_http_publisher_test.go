package pubsub

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"market/internal/domain/constants"
	"market/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEvent() *service.OrderEvent {
	return &service.OrderEvent{
		RequestID:   "req-123",
		EventType:   constants.EventOrderCreated,
		OrderID:     "order-456",
		BuyerID:     "buyer-789",
		SellerIDs:   []string{"seller-1"},
		Status:      "pending",
		FinalAmount: 3250,
		OccurredAt:  time.Now().UTC(),
	}
}

func TestLocalHTTPPublisher_PublishOrderEvent(t *testing.T) {
	var received PubSubPushMessage
	var gotRequestID string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRequestID = r.Header.Get("X-Request-Id")
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	publisher := NewLocalHTTPPublisher(server.URL, slog.New(slog.NewTextHandler(io.Discard, nil)))
	event := newTestEvent()

	err := publisher.PublishOrderEvent(context.Background(), event)
	require.NoError(t, err)

	assert.Equal(t, "req-123", gotRequestID)
	assert.Equal(t, "order-456", received.Message.MessageID)
	assert.Equal(t, "projects/local/subscriptions/order-events-sub", received.Subscription)
	assert.Equal(t, constants.EventOrderCreated, received.Message.Attributes["event_type"])
	assert.Equal(t, "order-456", received.Message.Attributes["order_id"])
	assert.Equal(t, "req-123", received.Message.Attributes["request_id"])

	data, err := base64.StdEncoding.DecodeString(received.Message.Data)
	require.NoError(t, err)

	var decoded service.OrderEvent
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, event.OrderID, decoded.OrderID)
	assert.Equal(t, event.FinalAmount, decoded.FinalAmount)
	assert.Equal(t, event.SellerIDs, decoded.SellerIDs)
}

func TestLocalHTTPPublisher_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	publisher := NewLocalHTTPPublisher(server.URL, slog.New(slog.NewTextHandler(io.Discard, nil)))

	err := publisher.PublishOrderEvent(context.Background(), newTestEvent())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "non-success status")
}

func TestLocalHTTPPublisher_UnreachableEndpoint(t *testing.T) {
	publisher := NewLocalHTTPPublisher("http://127.0.0.1:1", slog.New(slog.NewTextHandler(io.Discard, nil)))

	err := publisher.PublishOrderEvent(context.Background(), newTestEvent())
	assert.Error(t, err)
}
