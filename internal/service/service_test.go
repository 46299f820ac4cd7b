package service

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/iafluence/chatwidget/internal/config"
	"github.com/iafluence/chatwidget/internal/domain"
	"github.com/iafluence/chatwidget/internal/repository"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig() *config.Config {
	cfg := &config.Config{Widget: domain.DefaultWidgetConfig()}
	cfg.Server.BaseURL = "https://widgets.example/"
	cfg.Assistant.ServerURL = "https://assistant.example"
	return cfg
}

func newTestServices(t *testing.T) (*AdminService, *WidgetService) {
	t.Helper()
	db, err := repository.NewDB(filepath.Join(t.TempDir(), "chatwidget.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := repository.NewClientRepository(db)
	cfg := testConfig()
	return NewAdminService(cfg, repo), NewWidgetService(cfg, repo, zap.NewNop())
}

func createClient(t *testing.T, admin *AdminService, req *domain.CreateClientRequest) *domain.Client {
	t.Helper()
	client, err := admin.CreateClient(context.Background(), req)
	require.NoError(t, err)
	return client
}

func rawOptions(t *testing.T, v any) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return raw
}
