package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/iafluence/chatwidget/internal/config"
	"github.com/iafluence/chatwidget/internal/domain"
	"github.com/iafluence/chatwidget/internal/repository"
	"github.com/iafluence/chatwidget/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testAPIKey = "secret"

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	db, err := repository.NewDB(filepath.Join(dir, "chatwidget.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	assets := filepath.Join(dir, "assets")
	require.NoError(t, os.MkdirAll(assets, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(assets, "chatwidget.wasm"), []byte("\x00asm"), 0644))

	cfg := &config.Config{Widget: domain.DefaultWidgetConfig()}
	cfg.Server.BaseURL = "http://localhost:8080"
	cfg.Assistant.ServerURL = "https://assistant.example"

	repo := repository.NewClientRepository(db)
	return SetupRouter(
		service.NewAdminService(cfg, repo),
		service.NewWidgetService(cfg, repo, zap.NewNop()),
		RouterConfig{APIKey: testAPIKey, AllowOrigins: []string{"https://shop.example"}, AssetsDir: assets},
	)
}

func do(r http.Handler, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createTestClient(t *testing.T, r http.Handler) domain.Client {
	t.Helper()
	w := do(r, http.MethodPost, "/api/admin/clients",
		`{"name":"Bakery","options":{"position":"top-left","primary_color":"#111111","secondary_color":"#eeeeee","chatbot_name":"Baker Bot","welcome_message":"Welcome!","show_branding":false,"auto_open":false,"delay_auto_open":0}}`,
		map[string]string{"X-API-Key": testAPIKey})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var client domain.Client
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &client))
	return client
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t)
	w := do(r, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestAdminRequiresAPIKey(t *testing.T) {
	r := newTestRouter(t)

	w := do(r, http.MethodGet, "/api/admin/clients", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(r, http.MethodGet, "/api/admin/clients", "", map[string]string{"Authorization": "Bearer " + testAPIKey})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminClientLifecycle(t *testing.T) {
	r := newTestRouter(t)
	auth := map[string]string{"X-API-Key": testAPIKey}
	client := createTestClient(t, r)

	w := do(r, http.MethodGet, "/api/admin/clients/"+client.ID, "", auth)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodPut, "/api/admin/clients/"+client.ID, `{"options":{"position":"nowhere"}}`, auth)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodPut, "/api/admin/clients/"+client.ID, `{"name":"Bakery & Co"}`, auth)
	require.Equal(t, http.StatusOK, w.Code)
	var updated domain.Client
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, "Bakery & Co", updated.Name)
	assert.Equal(t, domain.PositionTopLeft, updated.Options.Position)

	w = do(r, http.MethodGet, "/api/admin/stats", "", auth)
	assert.JSONEq(t, `{"total_clients":1}`, w.Body.String())

	w = do(r, http.MethodDelete, "/api/admin/clients/"+client.ID, "", auth)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodDelete, "/api/admin/clients/"+client.ID, "", auth)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(r, http.MethodGet, "/api/admin/clients/"+client.ID, "", auth)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(r, http.MethodPost, "/api/admin/clients", `{}`, auth)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWidgetConfigEndpoint(t *testing.T) {
	r := newTestRouter(t)
	client := createTestClient(t, r)

	w := do(r, http.MethodGet, "/api/widgets/config/"+client.ID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var cfg domain.WidgetConfig
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cfg))
	assert.Equal(t, client.ID, cfg.ClientID)
	assert.Equal(t, "https://assistant.example", cfg.ServerURL)
	assert.Equal(t, domain.PositionTopLeft, cfg.Position)
	assert.Equal(t, "Baker Bot", cfg.ChatbotName)
	assert.False(t, cfg.ShowBranding)

	w = do(r, http.MethodGet, "/api/widgets/config/unknown", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestEmbedAndPreview(t *testing.T) {
	r := newTestRouter(t)
	client := createTestClient(t, r)

	w := do(r, http.MethodGet, "/api/widgets/embed/"+client.ID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), `data-chatbot-name="Baker Bot"`)

	w = do(r, http.MethodGet, "/preview?client_id="+client.ID+"&open=true", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Welcome!")
	assert.Contains(t, body, `style="display: flex;"`)
	assert.NotContains(t, body, "chatwidget-branding")

	w = do(r, http.MethodGet, "/preview", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodGet, "/preview?client_id=unknown", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStaticAssets(t *testing.T) {
	r := newTestRouter(t)

	w := do(r, http.MethodGet, service.ScriptPath, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/javascript", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "chatwidget.wasm")

	w = do(r, http.MethodGet, service.StylesheetPath, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), ".chatwidget-window")

	w = do(r, http.MethodGet, "/widgets/wasm/chatwidget.wasm", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCORS(t *testing.T) {
	r := newTestRouter(t)

	w := do(r, http.MethodOptions, "/api/widgets/config/x", "", map[string]string{"Origin": "https://shop.example"})
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://shop.example", w.Header().Get("Access-Control-Allow-Origin"))

	w = do(r, http.MethodGet, "/health", "", map[string]string{"Origin": "https://other.example"})
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestAdminPartialOptionsKeepDefaults(t *testing.T) {
	r := newTestRouter(t)
	auth := map[string]string{"X-API-Key": testAPIKey}

	w := do(r, http.MethodPost, "/api/admin/clients", `{"name":"Bakery","options":{"position":"bottom-left"}}`, auth)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var client domain.Client
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &client))

	want := domain.DefaultWidgetConfig()
	want.Position = domain.PositionBottomLeft
	assert.Equal(t, want, client.Options)

	w = do(r, http.MethodPut, "/api/admin/clients/"+client.ID, `{"options":{"chatbot_name":"Bob"}}`, auth)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = do(r, http.MethodGet, "/api/widgets/config/"+client.ID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var cfg domain.WidgetConfig
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cfg))

	want.ChatbotName = "Bob"
	want.ClientID = client.ID
	want.ServerURL = "https://assistant.example"
	assert.Equal(t, want, cfg)
}
