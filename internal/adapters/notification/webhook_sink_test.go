package notification

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/commerce_lifecycle_app/internal/apperrors"
)

func TestWebhookSink_Send(t *testing.T) {
	var got webhookPayload
	var gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get(apiKeyHeader)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	sink := NewWebhookSink(srv.URL, "secret", time.Second)
	err := sink.Send(context.Background(), "+15550001", "Order ORD-1 shipped")

	require.NoError(t, err)
	assert.Equal(t, "secret", gotKey)
	assert.Equal(t, "+15550001", got.Phone)
	assert.Equal(t, "Order ORD-1 shipped", got.Text)
}

func TestWebhookSink_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	err := NewWebhookSink(srv.URL, "", time.Second).Send(context.Background(), "+15550001", "hi")
	assert.ErrorIs(t, err, apperrors.ErrNotification)
}

func TestWebhookSink_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	err := NewWebhookSink(url, "", 200*time.Millisecond).Send(context.Background(), "+15550001", "hi")
	assert.ErrorIs(t, err, apperrors.ErrNotification)
}

func TestWebhookSink_EmptyDestination(t *testing.T) {
	err := NewWebhookSink("http://127.0.0.1:1", "", time.Second).Send(context.Background(), "", "hi")
	assert.ErrorIs(t, err, apperrors.ErrNotification)
}

func TestLogSink_NeverFails(t *testing.T) {
	assert.NoError(t, NewLogSink().Send(context.Background(), "+1", "text"))
}
