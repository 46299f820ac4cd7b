package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/iafluence/chatwidget/internal/domain"
	"github.com/iafluence/chatwidget/internal/surface/memdom"
)

// baseConfig returns the configuration the widget starts from: the host
// server's answer when --host-url is set, the built-in defaults otherwise.
// --server-url and --client-id win over both.
func baseConfig(ctx context.Context) (domain.WidgetConfig, error) {
	base := domain.DefaultWidgetConfig()
	if flagHostURL != "" {
		if flagClientID == "" {
			return base, fmt.Errorf("--client-id is required with --host-url")
		}
		fetched, err := fetchConfig(ctx, flagHostURL, flagClientID)
		if err != nil {
			return base, err
		}
		base = fetched
	}
	if flagServerURL != "" {
		base.ServerURL = flagServerURL
	}
	if flagClientID != "" {
		base.ClientID = flagClientID
	}
	if base.ServerURL == "" {
		return base, fmt.Errorf("--server-url is required")
	}
	return base, nil
}

func fetchConfig(ctx context.Context, hostURL, clientID string) (domain.WidgetConfig, error) {
	cfg := domain.DefaultWidgetConfig()
	endpoint := strings.TrimRight(hostURL, "/") + "/api/widgets/config/" + url.PathEscape(clientID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return cfg, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return cfg, fmt.Errorf("failed to fetch widget config: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return cfg, fmt.Errorf("widget host returned %s for client %s", resp.Status, clientID)
	}
	if err := json.NewDecoder(resp.Body).Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("failed to decode widget config: %w", err)
	}
	return cfg, nil
}

// newPage builds a page whose mount element carries attrs.
func newPage(attrs map[string]string) *memdom.Document {
	doc := memdom.New()
	mount := doc.NewElement("div")
	mount.SetID(domain.DefaultMountID)
	for name, value := range attrs {
		mount.SetAttr(name, value)
	}
	doc.Body().AppendChild(mount)
	return doc
}
