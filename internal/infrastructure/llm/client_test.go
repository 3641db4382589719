package llm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func testConfig(baseURL string) Config {
	return Config{
		APIKey:     "test-key",
		BaseURL:    baseURL,
		RetryDelay: time.Millisecond,
	}
}

func TestNewClient_Defaults(t *testing.T) {
	client := NewClient(Config{APIKey: "test-key"})

	assert.NotNil(t, client)
	assert.Equal(t, DefaultModel, client.model)
	assert.Equal(t, DefaultMaxAttempts, client.maxAttempts)
	assert.Equal(t, DefaultRetryDelay, client.retryDelay)
	assert.NotNil(t, client.rateLimiter)
}

func TestAsk_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": "cmpl-1",
			"object": "chat.completion",
			"choices": [{"index": 0, "message": {"role": "assistant", "content": "[1, 2]"}}]
		}`))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	got := client.Ask(context.Background(), "elige productos")

	assert.Equal(t, "[1, 2]", got)
}

func TestAsk_RetriesAPIErrorsThenDegrades(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": {"message": "server overloaded", "type": "server_error"}}`))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	got := client.Ask(context.Background(), "elige productos")

	assert.Equal(t, "[]", got)
	assert.Equal(t, DefaultMaxAttempts, attempts)
}

func TestAsk_RetriesPlainBody500ThenDegrades(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`Internal Server Error`))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	got := client.Ask(context.Background(), "elige productos")

	assert.Equal(t, "[]", got)
	assert.Equal(t, DefaultMaxAttempts, attempts)
}

func TestAsk_RetriesGatewayHTMLBody(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.Header().Set("Content-Type", "text/html")
		if attempts < 2 {
			w.WriteHeader(http.StatusBadGateway)
			w.Write([]byte(`<html><body>502 Bad Gateway</body></html>`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": "cmpl-3",
			"object": "chat.completion",
			"choices": [{"index": 0, "message": {"role": "assistant", "content": "listo"}}]
		}`))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	got := client.Ask(context.Background(), "elige productos")

	assert.Equal(t, "listo", got)
	assert.Equal(t, 2, attempts)
}

func TestAsk_RecoversWithinRetryBudget(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.Header().Set("Content-Type", "application/json")
		if attempts < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"error": {"message": "try again", "type": "server_error"}}`))
			return
		}
		w.Write([]byte(`{
			"id": "cmpl-2",
			"object": "chat.completion",
			"choices": [{"index": 0, "message": {"role": "assistant", "content": "listo"}}]
		}`))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	got := client.Ask(context.Background(), "elige productos")

	assert.Equal(t, "listo", got)
	assert.Equal(t, 3, attempts)
}

func TestAsk_TransportFailureDegradesImmediately(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	client := NewClient(testConfig(server.URL))
	got := client.Ask(context.Background(), "elige productos")

	assert.Equal(t, "[]", got)
}

func TestAsk_CancelledContextDegrades(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewClient(testConfig("http://localhost:0"))
	got := client.Ask(ctx, "elige productos")

	assert.Equal(t, "[]", got)
}
