package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/kindred-ai/kindred/internal/llm"
	"github.com/kindred-ai/kindred/internal/persona"
	"github.com/kindred-ai/kindred/internal/store"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	t.Setenv("ADMIN_TOKEN", "test-admin-token")

	s, err := store.NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	t.Cleanup(s.Close)

	client := llm.NewMockClient()
	client.ChatResponse = "mock model reply"

	return NewApp(s, client, persona.DefaultConfig(), persona.DefaultWisdom(), zap.NewNop())
}

func doJSON(t *testing.T, app *App, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

func TestHealthAndMetrics(t *testing.T) {
	app := newTestApp(t)

	rec := doJSON(t, app, http.MethodGet, "/health", nil, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("health: expected 200, got %d", rec.Code)
	}

	rec = doJSON(t, app, http.MethodGet, "/metrics", nil, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("metrics: expected 200, got %d", rec.Code)
	}

	var metrics map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &metrics); err != nil {
		t.Fatalf("decode metrics: %v", err)
	}
	if _, ok := metrics["request_count"]; !ok {
		t.Fatal("expected request_count in metrics")
	}
}

func TestChatFlow(t *testing.T) {
	app := newTestApp(t)

	// Bootstrap session.
	rec := doJSON(t, app, http.MethodGet, "/v1/chat/session?session_id=s1", nil, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("session: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var session struct {
		IsNew bool `json:"is_new"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &session); err != nil {
		t.Fatalf("decode session: %v", err)
	}
	if !session.IsNew {
		t.Fatal("expected new session")
	}

	// One turn.
	rec = doJSON(t, app, http.MethodPost, "/v1/chat", map[string]string{
		"session_id": "s1",
		"message":    "I want to learn and grow",
	}, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("chat: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var turn struct {
		Message struct {
			Type    string `json:"type"`
			Content string `json:"content"`
		} `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &turn); err != nil {
		t.Fatalf("decode turn: %v", err)
	}
	if turn.Message.Type != "ai" {
		t.Fatalf("expected ai message, got %q", turn.Message.Type)
	}
	if turn.Message.Content != "mock model reply" {
		t.Fatalf("expected mock reply, got %q", turn.Message.Content)
	}

	// Missing body fields.
	rec = doJSON(t, app, http.MethodPost, "/v1/chat", map[string]string{"session_id": "s1"}, "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty message, got %d", rec.Code)
	}

	// Clear history.
	rec = doJSON(t, app, http.MethodDelete, "/v1/chat/session?session_id=s1", nil, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("clear: expected 200, got %d", rec.Code)
	}
}

func TestAdminAuth(t *testing.T) {
	app := newTestApp(t)

	rec := doJSON(t, app, http.MethodGet, "/v1/admin/profiles", nil, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}

	rec = doJSON(t, app, http.MethodGet, "/v1/admin/profiles", nil, "wrong-token")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with wrong token, got %d", rec.Code)
	}

	rec = doJSON(t, app, http.MethodGet, "/v1/admin/profiles", nil, "test-admin-token")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with valid token, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestAdminFlow(t *testing.T) {
	app := newTestApp(t)
	token := "test-admin-token"

	// Create a session with one turn.
	rec := doJSON(t, app, http.MethodPost, "/v1/chat", map[string]string{
		"session_id": "s1",
		"message":    "I feel like understanding people helps me grow and learn",
	}, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("chat: expected 200, got %d", rec.Code)
	}

	rec = doJSON(t, app, http.MethodGet, "/v1/admin/profiles/s1", nil, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("get profile: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, app, http.MethodPost, "/v1/admin/profiles/s1/evaluate", nil, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("evaluate: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, app, http.MethodGet, "/v1/admin/analytics", nil, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("analytics: expected 200, got %d", rec.Code)
	}

	rec = doJSON(t, app, http.MethodPost, "/v1/admin/profiles/s1/block", map[string]string{"reason": "test"}, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("block: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var blocked struct {
		Evaluation struct {
			Recommendation string `json:"recommendation"`
		} `json:"evaluation"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &blocked); err != nil {
		t.Fatalf("decode block response: %v", err)
	}
	if blocked.Evaluation.Recommendation != "blocked" {
		t.Fatalf("expected blocked recommendation, got %q", blocked.Evaluation.Recommendation)
	}

	rec = doJSON(t, app, http.MethodGet, "/v1/admin/profiles/missing", nil, token)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for missing profile, got %d", rec.Code)
	}
}
