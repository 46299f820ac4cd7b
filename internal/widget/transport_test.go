package widget

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/iafluence/chatwidget/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPTransportEndpoint(t *testing.T) {
	assert.Equal(t, "https://a.example/api/chat", NewHTTPTransport("https://a.example/", nil).Endpoint())
	assert.Equal(t, "https://a.example/base/api/chat", NewHTTPTransport("https://a.example/base", nil).Endpoint())
}

func TestHTTPTransportChat(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.Header.Get("Content-Type") != "application/json" {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		var req domain.ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"response": "echo: " + req.Message})
	}))
	defer srv.Close()

	got, err := NewHTTPTransport(srv.URL, srv.Client()).Chat(context.Background(), domain.ChatRequest{
		ClientID:            "c",
		SessionID:           "s",
		Message:             "ping",
		ConversationHistory: []domain.Message{},
	})
	require.NoError(t, err)
	assert.Equal(t, "echo: ping", got)
}

func TestHTTPTransportEmptyResponseIsValid(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"response":""}`))
	}))
	defer srv.Close()

	got, err := NewHTTPTransport(srv.URL, nil).Chat(context.Background(), domain.ChatRequest{})
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestHTTPTransportStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewHTTPTransport(srv.URL, nil).Chat(context.Background(), domain.ChatRequest{})
	var statusErr *domain.StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusServiceUnavailable, statusErr.StatusCode)
}
