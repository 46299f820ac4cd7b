package domain

import (
	"encoding/json"
	"time"
)

// Client is a site embedding the widget, with its persisted widget options.
type Client struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	ServerURL string       `json:"server_url"`
	Options   WidgetConfig `json:"options"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// CreateClientRequest is the request to register a client.
// Options is a partial WidgetConfig; omitted fields keep the configured defaults.
type CreateClientRequest struct {
	Name      string          `json:"name" binding:"required"`
	ServerURL string          `json:"server_url,omitempty"`
	Options   json.RawMessage `json:"options,omitempty"`
}

// UpdateClientRequest is the request to update a client.
// Options is a partial WidgetConfig merged over the stored options.
type UpdateClientRequest struct {
	Name      string          `json:"name,omitempty"`
	ServerURL string          `json:"server_url,omitempty"`
	Options   json.RawMessage `json:"options,omitempty"`
}
