package notify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(serverURL string) *WhatsAppClient {
	c := NewWhatsApp("12345", "test-token", "+100200300")
	c.baseURL = serverURL
	c.backoff = time.Millisecond
	return c
}

func TestWhatsAppClient_Notify_Success(t *testing.T) {
	var gotAuth string
	var gotBody textMessage

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	err := client.Notify(context.Background(), "hello admin")

	assert.NoError(t, err)
	assert.Equal(t, "Bearer test-token", gotAuth)
	assert.Equal(t, "whatsapp", gotBody.MessagingProduct)
	assert.Equal(t, "+100200300", gotBody.To)
	assert.Equal(t, "text", gotBody.Type)
	assert.Equal(t, "hello admin", gotBody.Text.Body)
}

func TestWhatsAppClient_Notify_RetriesThenFails(t *testing.T) {
	var attempts int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	err := client.Notify(context.Background(), "hello")

	assert.True(t, errors.Is(err, ErrNotificationFailed))
	assert.Equal(t, int32(3), atomic.LoadInt32(&attempts), "one initial attempt plus two retries")
}

func TestWhatsAppClient_Notify_RecoversOnRetry(t *testing.T) {
	var attempts int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&attempts, 1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	err := client.Notify(context.Background(), "hello")

	assert.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&attempts))
}

func TestWhatsAppClient_Notify_UnreachableHost(t *testing.T) {
	client := newTestClient("http://127.0.0.1:1")
	err := client.Notify(context.Background(), "hello")

	assert.True(t, errors.Is(err, ErrNotificationFailed))
}

func TestWhatsAppClient_Notify_CancelledContextStopsRetries(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	client.backoff = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	err := client.Notify(ctx, "hello")

	assert.True(t, errors.Is(err, ErrNotificationFailed))
	assert.Less(t, time.Since(start), 5*time.Second)
}
