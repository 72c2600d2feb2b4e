package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"

	"ai-trade-pro/internal/domain"
	"ai-trade-pro/internal/provider"
	"ai-trade-pro/internal/service"
)

type handlerPromptsStub struct{}

func (handlerPromptsStub) Build(_ context.Context, req domain.AnalysisRequest) (string, []domain.ConversationMessage) {
	return "persona", req.Messages
}

type handlerModelStub struct {
	completion string
	err        error
}

func (s *handlerModelStub) Complete(_ context.Context, apiKey, model, system string, messages []domain.ConversationMessage) (string, error) {
	return s.completion, s.err
}

type handlerLogsStub struct {
	entries   []domain.AnalysisLogEntry
	stats     domain.JournalStats
	gotUserID string
	gotLimit  int
}

func (s *handlerLogsStub) InsertLog(_ context.Context, entry domain.AnalysisLogEntry) (domain.AnalysisLogEntry, error) {
	return entry, nil
}

func (s *handlerLogsStub) ListByUser(_ context.Context, userID string, limit int) ([]domain.AnalysisLogEntry, error) {
	s.gotUserID = userID
	s.gotLimit = limit
	return s.entries, nil
}

func (s *handlerLogsStub) Stats(_ context.Context) (domain.JournalStats, error) {
	return s.stats, nil
}

type handlerNewsStub struct {
	gotTopic   string
	gotSources []string
	text       string
}

func (s *handlerNewsStub) FetchNews(_ context.Context, topic string, sources []string) string {
	s.gotTopic = topic
	s.gotSources = sources
	return s.text
}

type handlerCatalogStub struct {
	models []provider.ModelInfo
	err    error
}

func (s *handlerCatalogStub) ListModels(_ context.Context) ([]provider.ModelInfo, error) {
	return s.models, s.err
}

type handlerCredsStub struct {
	stored map[string]string
}

func (s *handlerCredsStub) Put(_ context.Context, userID, apiKey string) error {
	s.stored[userID] = apiKey
	return nil
}

func (s *handlerCredsStub) Get(_ context.Context, userID string) (string, error) {
	return s.stored[userID], nil
}

func (s *handlerCredsStub) Delete(_ context.Context, userID string) error {
	delete(s.stored, userID)
	return nil
}

type testEnv struct {
	handler *Handler
	router  *gin.Engine
	model   *handlerModelStub
	logs    *handlerLogsStub
	news    *handlerNewsStub
	catalog *handlerCatalogStub
	creds   *handlerCredsStub
}

func newTestEnv(t *testing.T, adminToken string) *testEnv {
	t.Helper()
	tracer := trace.NewNoopTracerProvider().Tracer("handler-test")
	env := &testEnv{
		model:   &handlerModelStub{completion: "**SIGNAL**: BUY\n**PAIR**: XAUUSD"},
		logs:    &handlerLogsStub{},
		news:    &handlerNewsStub{text: "- [investing.com] headline"},
		catalog: &handlerCatalogStub{},
		creds:   &handlerCredsStub{stored: map[string]string{}},
	}
	svc := service.NewAnalysisService(tracer, handlerPromptsStub{}, env.model, env.logs, env.creds, nil, nil, "google/gemini-2.0-flash-exp:free")
	env.handler = New(tracer, svc, env.news, env.catalog, env.creds, adminToken)

	gin.SetMode(gin.TestMode)
	env.router = gin.New()
	env.handler.RegisterRoutes(env.router)
	return env
}

func doJSON(router *gin.Engine, method, path, body string, header map[string]string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header.Set(k, v)
	}
	router.ServeHTTP(w, req)
	return w
}

func TestAnalyzeEndpointSuccess(t *testing.T) {
	env := newTestEnv(t, "")

	body := `{"user_id":"u-1","api_key":"sk-or-test","messages":[{"role":"user","content":"analyze XAUUSD"}]}`
	w := doJSON(env.router, http.MethodPost, "/api/analyze", body, nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp service.AnalysisResult
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if !resp.Valid || resp.Parsed.Signal != "BUY" || resp.Parsed.Pair != "XAUUSD" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	if resp.ModelUsed != "google/gemini-2.0-flash-exp:free" {
		t.Fatalf("expected default model, got %q", resp.ModelUsed)
	}
}

func TestAnalyzeEndpointMissingKey(t *testing.T) {
	env := newTestEnv(t, "")

	body := `{"user_id":"u-1","messages":[{"role":"user","content":"analyze"}]}`
	w := doJSON(env.router, http.MethodPost, "/api/analyze", body, nil)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "API key is required") {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestAnalyzeEndpointUsesStoredCredential(t *testing.T) {
	env := newTestEnv(t, "")
	env.creds.stored["u-1"] = "sk-or-stored"

	body := `{"user_id":"u-1","messages":[{"role":"user","content":"analyze"}]}`
	w := doJSON(env.router, http.MethodPost, "/api/analyze", body, nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 with stored credential, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAnalyzeEndpointUpstreamError(t *testing.T) {
	env := newTestEnv(t, "")
	env.model.err = &domain.UpstreamError{Message: "invalid model"}

	body := `{"user_id":"u-1","api_key":"sk-or-test","messages":[{"role":"user","content":"analyze"}]}`
	w := doJSON(env.router, http.MethodPost, "/api/analyze", body, nil)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if w.Body.String() != `{"error":"invalid model"}` {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestAnalyzeEndpointMalformedBody(t *testing.T) {
	env := newTestEnv(t, "")

	w := doJSON(env.router, http.MethodPost, "/api/analyze", `{"messages": 42}`, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestJournalEndpoint(t *testing.T) {
	env := newTestEnv(t, "")
	env.logs.entries = []domain.AnalysisLogEntry{{ID: 1, UserID: "u-1", PairName: "XAUUSD"}}

	w := doJSON(env.router, http.MethodGet, "/api/journal?user_id=u-1&limit=5", "", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if env.logs.gotUserID != "u-1" || env.logs.gotLimit != 5 {
		t.Fatalf("unexpected delegation: %q %d", env.logs.gotUserID, env.logs.gotLimit)
	}
	var resp struct {
		Entries []domain.AnalysisLogEntry `json:"entries"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if len(resp.Entries) != 1 || resp.Entries[0].PairName != "XAUUSD" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestJournalEndpointRequiresUserID(t *testing.T) {
	env := newTestEnv(t, "")

	w := doJSON(env.router, http.MethodGet, "/api/journal", "", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestJournalEndpointRejectsBadLimit(t *testing.T) {
	env := newTestEnv(t, "")

	for _, q := range []string{"limit=0", "limit=101", "limit=abc"} {
		w := doJSON(env.router, http.MethodGet, "/api/journal?user_id=u-1&"+q, "", nil)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", q, w.Code)
		}
	}
}

func TestAdminStatsAuth(t *testing.T) {
	env := newTestEnv(t, "hunter2")
	env.logs.stats = domain.JournalStats{TotalAnalyses: 9}

	w := doJSON(env.router, http.MethodGet, "/api/admin/stats", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without header, got %d", w.Code)
	}

	w = doJSON(env.router, http.MethodGet, "/api/admin/stats", "", map[string]string{"Authorization": "Bearer wrong"})
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 with bad token, got %d", w.Code)
	}

	w = doJSON(env.router, http.MethodGet, "/api/admin/stats", "", map[string]string{"Authorization": "Bearer hunter2"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var stats domain.JournalStats
	if err := json.Unmarshal(w.Body.Bytes(), &stats); err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if stats.TotalAnalyses != 9 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestAdminStatsUnconfigured(t *testing.T) {
	env := newTestEnv(t, "")

	w := doJSON(env.router, http.MethodGet, "/api/admin/stats", "", map[string]string{"Authorization": "Bearer anything"})
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 when no admin token configured, got %d", w.Code)
	}
}

func TestNewsEndpoint(t *testing.T) {
	env := newTestEnv(t, "")

	w := doJSON(env.router, http.MethodGet, "/api/news?topic=XAUUSD&sources=investing.com,%20forexfactory.com", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if env.news.gotTopic != "XAUUSD" {
		t.Fatalf("unexpected topic: %q", env.news.gotTopic)
	}
	if len(env.news.gotSources) != 2 || env.news.gotSources[1] != "forexfactory.com" {
		t.Fatalf("unexpected sources: %v", env.news.gotSources)
	}
}

func TestNewsEndpointDefaultTopic(t *testing.T) {
	env := newTestEnv(t, "")

	w := doJSON(env.router, http.MethodGet, "/api/news", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if env.news.gotTopic != defaultNewsTopic {
		t.Fatalf("expected default topic, got %q", env.news.gotTopic)
	}
	if env.news.gotSources != nil {
		t.Fatalf("expected no sources, got %v", env.news.gotSources)
	}
}

func TestModelsEndpoint(t *testing.T) {
	env := newTestEnv(t, "")
	env.catalog.models = []provider.ModelInfo{{ID: "openai/gpt-4o", Name: "GPT-4o"}}

	w := doJSON(env.router, http.MethodGet, "/api/models", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp struct {
		Models []provider.ModelInfo `json:"models"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if len(resp.Models) != 1 || resp.Models[0].ID != "openai/gpt-4o" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestModelsEndpointUpstreamFailure(t *testing.T) {
	env := newTestEnv(t, "")
	env.catalog.err = &domain.UpstreamError{Message: "model catalog returned status 502"}

	w := doJSON(env.router, http.MethodGet, "/api/models", "", nil)
	if w.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", w.Code)
	}
}

func TestCredentialLifecycle(t *testing.T) {
	env := newTestEnv(t, "")

	w := doJSON(env.router, http.MethodPut, "/api/settings/credential", `{"user_id":"u-1","api_key":"sk-or-abc"}`, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}

	w = doJSON(env.router, http.MethodGet, "/api/settings/credential?user_id=u-1", "", nil)
	if w.Code != http.StatusOK || w.Body.String() != `{"configured":true}` {
		t.Fatalf("unexpected response: %d %s", w.Code, w.Body.String())
	}
	if strings.Contains(w.Body.String(), "sk-or-abc") {
		t.Fatal("stored key must never be echoed")
	}

	w = doJSON(env.router, http.MethodDelete, "/api/settings/credential?user_id=u-1", "", nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}

	w = doJSON(env.router, http.MethodGet, "/api/settings/credential?user_id=u-1", "", nil)
	if w.Body.String() != `{"configured":false}` {
		t.Fatalf("unexpected response after delete: %s", w.Body.String())
	}
}

func TestCredentialValidation(t *testing.T) {
	env := newTestEnv(t, "")

	w := doJSON(env.router, http.MethodPut, "/api/settings/credential", `{"user_id":"","api_key":""}`, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}

	w = doJSON(env.router, http.MethodGet, "/api/settings/credential", "", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without user_id, got %d", w.Code)
	}
}

func TestHealthEndpoint(t *testing.T) {
	env := newTestEnv(t, "")

	w := doJSON(env.router, http.MethodGet, "/health", "", nil)
	if w.Code != http.StatusOK || w.Body.String() != `{"status":"ok"}` {
		t.Fatalf("unexpected response: %d %s", w.Code, w.Body.String())
	}
}
