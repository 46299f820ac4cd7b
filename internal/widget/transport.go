package widget

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/iafluence/chatwidget/internal/domain"
)

// ChatPath is appended to the configured server URL for every turn.
const ChatPath = "/api/chat"

// Transport carries one turn to the assistant and returns its reply text.
type Transport interface {
	Chat(ctx context.Context, req domain.ChatRequest) (string, error)
}

// HTTPTransport posts turns as JSON to {server_url}/api/chat.
type HTTPTransport struct {
	endpoint string
	client   *http.Client
}

// NewHTTPTransport creates a transport for serverURL. A nil client means
// http.DefaultClient, which enforces no timeout.
func NewHTTPTransport(serverURL string, client *http.Client) *HTTPTransport {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPTransport{
		endpoint: strings.TrimRight(serverURL, "/") + ChatPath,
		client:   client,
	}
}

// Endpoint returns the URL turns are posted to.
func (t *HTTPTransport) Endpoint() string {
	return t.endpoint
}

// Chat implements Transport.
func (t *HTTPTransport) Chat(ctx context.Context, req domain.ChatRequest) (string, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to encode chat request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build chat request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("failed to reach assistant: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &domain.StatusError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	var chatResp domain.ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
	}
	if chatResp.Response == nil {
		return "", fmt.Errorf("%w: missing response field", domain.ErrMalformedResponse)
	}

	return *chatResp.Response, nil
}
