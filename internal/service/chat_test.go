package service

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"go.uber.org/zap"

	"github.com/kindred-ai/kindred/internal/domain"
	"github.com/kindred-ai/kindred/internal/llm"
	"github.com/kindred-ai/kindred/internal/persona"
	"github.com/kindred-ai/kindred/internal/responder"
	"github.com/kindred-ai/kindred/internal/store"
)

// mockProfileStore is an in-memory ProfileStore keyed by session ID.
type mockProfileStore struct {
	profiles map[string]*domain.UserProfile

	createErr error
	updateErr error
}

func newMockProfileStore() *mockProfileStore {
	return &mockProfileStore{profiles: map[string]*domain.UserProfile{}}
}

func (m *mockProfileStore) Create(ctx context.Context, p *domain.UserProfile) error {
	if m.createErr != nil {
		return m.createErr
	}
	if _, exists := m.profiles[p.SessionID]; exists {
		return store.ErrConflict
	}
	cp := *p
	m.profiles[p.SessionID] = &cp
	return nil
}

func (m *mockProfileStore) GetBySessionID(ctx context.Context, sessionID string) (*domain.UserProfile, error) {
	p, ok := m.profiles[sessionID]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *mockProfileStore) List(ctx context.Context) ([]domain.UserProfile, error) {
	var out []domain.UserProfile
	for _, p := range m.profiles {
		out = append(out, *p)
	}
	return out, nil
}

func (m *mockProfileStore) AppendMessage(ctx context.Context, sessionID string, msg domain.ChatMessage) error {
	p, ok := m.profiles[sessionID]
	if !ok {
		return store.ErrNotFound
	}
	p.ConversationHistory = append(p.ConversationHistory, msg)
	return nil
}

func (m *mockProfileStore) UpdateEvaluation(ctx context.Context, sessionID string, eval domain.Evaluation, factors map[string]float64) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	p, ok := m.profiles[sessionID]
	if !ok {
		return store.ErrNotFound
	}
	p.Evaluation = eval
	if len(factors) > 0 {
		p.Factors = factors
	}
	return nil
}

func (m *mockProfileStore) ClearHistory(ctx context.Context, sessionID string) error {
	p, ok := m.profiles[sessionID]
	if !ok {
		return store.ErrNotFound
	}
	p.ConversationHistory = []domain.ChatMessage{}
	return nil
}

func (m *mockProfileStore) FindSimilar(ctx context.Context, sessionID string, limit int) ([]domain.ProfileWithScore, error) {
	if _, ok := m.profiles[sessionID]; !ok {
		return nil, store.ErrNotFound
	}
	return nil, nil
}

func (m *mockProfileStore) Close() {}

func setupChatTest(client domain.ChatClient) (*ChatService, *mockProfileStore) {
	ps := newMockProfileStore()
	cfg := persona.DefaultConfig()
	wisdom := persona.DefaultWisdom()
	sim := responder.New(cfg, wisdom, rand.New(rand.NewSource(1)))
	svc := NewChatService(ps, client, sim, cfg, wisdom, zap.NewNop())
	return svc, ps
}

func TestSession_CreatesOnFirstContact(t *testing.T) {
	svc, ps := setupChatTest(nil)
	ctx := context.Background()

	result, err := svc.Session(ctx, "s1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !result.IsNew {
		t.Fatal("expected new profile on first contact")
	}
	if result.Profile.Evaluation.CompatibilityScore != 50 {
		t.Fatalf("expected neutral starting score, got %d", result.Profile.Evaluation.CompatibilityScore)
	}
	if result.Profile.Evaluation.Recommendation != domain.RecommendationNeutral {
		t.Fatalf("expected neutral recommendation, got %s", result.Profile.Evaluation.Recommendation)
	}
	if _, ok := ps.profiles["s1"]; !ok {
		t.Fatal("profile not persisted")
	}

	again, err := svc.Session(ctx, "s1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if again.IsNew {
		t.Fatal("expected existing profile on second contact")
	}
}

func TestSession_MissingSessionID(t *testing.T) {
	svc, _ := setupChatTest(nil)

	if _, err := svc.Session(context.Background(), ""); err != ErrSessionIDMissing {
		t.Fatalf("expected ErrSessionIDMissing, got %v", err)
	}
}

func TestHandleTurn_PersistsBothMessages(t *testing.T) {
	svc, ps := setupChatTest(nil)
	ctx := context.Background()

	result, err := svc.HandleTurn(ctx, "s1", "I want to learn and grow")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.Message.Type != domain.MessageTypeAI {
		t.Fatalf("expected AI message, got %s", result.Message.Type)
	}
	if result.Message.Metadata == nil {
		t.Fatal("expected analysis metadata on AI message")
	}
	if result.Message.Metadata.CompatibilityScore != result.Analysis.CompatibilityScore {
		t.Fatal("metadata score does not match analysis")
	}

	p := ps.profiles["s1"]
	if len(p.ConversationHistory) != 2 {
		t.Fatalf("expected user + AI message persisted, got %d", len(p.ConversationHistory))
	}
	if p.ConversationHistory[0].Type != domain.MessageTypeUser {
		t.Fatal("expected user message first")
	}
	if p.Evaluation.CompatibilityScore != result.Analysis.CompatibilityScore {
		t.Fatal("evaluation score not updated from analysis")
	}
}

func TestHandleTurn_UsesLLMWhenAvailable(t *testing.T) {
	client := llm.NewMockClient()
	client.ChatResponse = "model reply"
	svc, _ := setupChatTest(client)

	result, err := svc.HandleTurn(context.Background(), "s1", "hello")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.Message.Content != "model reply" {
		t.Fatalf("expected model reply, got %q", result.Message.Content)
	}
	if len(client.ChatCalls) != 1 {
		t.Fatalf("expected one chat call, got %d", len(client.ChatCalls))
	}
	if client.ChatCalls[0].System == "" {
		t.Fatal("expected a system prompt")
	}
}

func TestHandleTurn_FallsBackOnLLMError(t *testing.T) {
	client := llm.NewMockClient()
	client.ChatError = errors.New("backend down")
	svc, ps := setupChatTest(client)

	result, err := svc.HandleTurn(context.Background(), "s1", "I want to grow and learn")
	if err != nil {
		t.Fatalf("expected fallback, got error %v", err)
	}
	if result.Message.Content == "" {
		t.Fatal("expected simulator response on LLM failure")
	}
	if len(ps.profiles["s1"].ConversationHistory) != 2 {
		t.Fatal("expected turn persisted despite LLM failure")
	}
}

func TestHandleTurn_Validation(t *testing.T) {
	svc, _ := setupChatTest(nil)
	ctx := context.Background()

	if _, err := svc.HandleTurn(ctx, "", "hi"); err != ErrSessionIDMissing {
		t.Fatalf("expected ErrSessionIDMissing, got %v", err)
	}
	if _, err := svc.HandleTurn(ctx, "s1", ""); err != ErrMessageEmpty {
		t.Fatalf("expected ErrMessageEmpty, got %v", err)
	}
}

func TestHandleTurn_FlagFolding(t *testing.T) {
	svc, ps := setupChatTest(nil)
	ctx := context.Background()

	// "hate" triggers the negative language red flag; "genuine" the
	// authenticity green flag.
	if _, err := svc.HandleTurn(ctx, "s1", "I hate fake people but I try to stay genuine"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	eval := ps.profiles["s1"].Evaluation
	if !containsString(eval.Flags.Red, "negative language") {
		t.Fatalf("expected red flag, got %v", eval.Flags.Red)
	}
	if !containsString(eval.Flags.Green, "authenticity") {
		t.Fatalf("expected green flag, got %v", eval.Flags.Green)
	}

	// Same flags again must not duplicate.
	if _, err := svc.HandleTurn(ctx, "s1", "I hate fake people but I try to stay genuine"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	eval = ps.profiles["s1"].Evaluation
	if countString(eval.Flags.Red, "negative language") != 1 {
		t.Fatalf("red flag duplicated: %v", eval.Flags.Red)
	}
}

func TestHandleTurn_BlockedRecommendationSticks(t *testing.T) {
	svc, ps := setupChatTest(nil)
	ctx := context.Background()

	if _, err := svc.Session(ctx, "s1"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	ps.profiles["s1"].Evaluation.Recommendation = domain.RecommendationBlocked

	if _, err := svc.HandleTurn(ctx, "s1", "growth and learning make me genuinely curious to understand and wonder"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if got := ps.profiles["s1"].Evaluation.Recommendation; got != domain.RecommendationBlocked {
		t.Fatalf("blocked recommendation overwritten with %s", got)
	}
}

func TestClearHistory(t *testing.T) {
	svc, ps := setupChatTest(nil)
	ctx := context.Background()

	if _, err := svc.HandleTurn(ctx, "s1", "hello"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := svc.ClearHistory(ctx, "s1"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(ps.profiles["s1"].ConversationHistory) != 0 {
		t.Fatal("history not cleared")
	}

	if err := svc.ClearHistory(ctx, "missing"); err != ErrProfileNotFound {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
}

func containsString(s []string, v string) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}

func countString(s []string, v string) int {
	n := 0
	for _, x := range s {
		if x == v {
			n++
		}
	}
	return n
}
