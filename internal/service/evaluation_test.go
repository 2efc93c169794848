package service

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/kindred-ai/kindred/internal/domain"
	"github.com/kindred-ai/kindred/internal/eval"
	"github.com/kindred-ai/kindred/internal/persona"
)

func setupEvalTest() (*EvaluationService, *mockProfileStore) {
	ps := newMockProfileStore()
	engine := eval.NewEngine(persona.DefaultConfig())
	return NewEvaluationService(ps, engine, zap.NewNop()), ps
}

func seedProfile(ps *mockProfileStore, sessionID string, contents ...string) *domain.UserProfile {
	p := domain.NewUserProfile(sessionID)
	for _, c := range contents {
		p.ConversationHistory = append(p.ConversationHistory, domain.ChatMessage{
			Type:    domain.MessageTypeUser,
			Content: c,
		})
	}
	ps.profiles[sessionID] = p
	return p
}

func TestReevaluate(t *testing.T) {
	svc, ps := setupEvalTest()
	ctx := context.Background()

	seedProfile(ps, "s1",
		"I've been reflecting on how I handle conflict and what I can learn from it.",
		"I feel like understanding other perspectives helps me grow as a person.")

	result, err := svc.Reevaluate(ctx, "s1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.Score < 0 || result.Score > 100 {
		t.Fatalf("score out of range: %d", result.Score)
	}

	p := ps.profiles["s1"]
	if p.Evaluation.CompatibilityScore != result.Score {
		t.Fatal("evaluation score not persisted")
	}
	if len(p.Factors) == 0 {
		t.Fatal("factors not persisted")
	}
	if p.Evaluation.Recommendation != domain.RecommendationForScore(result.Score) {
		t.Fatalf("recommendation %s does not match score %d", p.Evaluation.Recommendation, result.Score)
	}
	if len(p.Evaluation.Notes) == 0 {
		t.Fatal("expected reasoning appended to notes")
	}
}

func TestReevaluate_NotFound(t *testing.T) {
	svc, _ := setupEvalTest()

	if _, err := svc.Reevaluate(context.Background(), "missing"); err != ErrProfileNotFound {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
}

func TestReevaluate_PreservesBlocked(t *testing.T) {
	svc, ps := setupEvalTest()
	ctx := context.Background()

	p := seedProfile(ps, "s1", "I love learning, growth, and genuine connection with people I respect.")
	p.Evaluation.Recommendation = domain.RecommendationBlocked

	if _, err := svc.Reevaluate(ctx, "s1"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got := ps.profiles["s1"].Evaluation.Recommendation; got != domain.RecommendationBlocked {
		t.Fatalf("blocked recommendation overwritten with %s", got)
	}
}

func TestBlock(t *testing.T) {
	svc, ps := setupEvalTest()
	ctx := context.Background()

	seedProfile(ps, "s1", "hello")

	profile, err := svc.Block(ctx, "s1", "manual review")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if profile.Evaluation.Recommendation != domain.RecommendationBlocked {
		t.Fatalf("expected blocked, got %s", profile.Evaluation.Recommendation)
	}

	stored := ps.profiles["s1"].Evaluation
	if stored.Recommendation != domain.RecommendationBlocked {
		t.Fatal("block not persisted")
	}
	if !containsString(stored.Notes, "Blocked: manual review") {
		t.Fatalf("expected block note, got %v", stored.Notes)
	}

	if _, err := svc.Block(ctx, "missing", ""); err != ErrProfileNotFound {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
}

func TestAnalytics(t *testing.T) {
	ps := newMockProfileStore()
	svc := NewAdminService(ps)
	ctx := context.Background()

	p1 := seedProfile(ps, "s1", "one", "two")
	p1.Evaluation.Recommendation = domain.RecommendationCompatible
	p1.Evaluation.Flags.Green = []string{"growth mindset"}

	p2 := seedProfile(ps, "s2", "one", "two", "three", "four")
	p2.Evaluation.Recommendation = domain.RecommendationIncompatible
	p2.Evaluation.Flags.Red = []string{"negative language"}
	p2.Evaluation.Flags.Green = []string{"growth mindset"}

	data, err := svc.Analytics(ctx)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if data.TotalInteractions != 2 {
		t.Fatalf("expected 2 profiles, got %d", data.TotalInteractions)
	}
	if data.CompatibilityDistribution["compatible"] != 1 || data.CompatibilityDistribution["incompatible"] != 1 {
		t.Fatalf("unexpected distribution: %v", data.CompatibilityDistribution)
	}
	if data.CommonGreenFlags["growth mindset"] != 2 {
		t.Fatalf("expected green flag counted twice, got %v", data.CommonGreenFlags)
	}
	if data.CommonRedFlags["negative language"] != 1 {
		t.Fatalf("expected red flag counted once, got %v", data.CommonRedFlags)
	}
	if data.AverageConversationLength != 3 {
		t.Fatalf("expected average length 3, got %f", data.AverageConversationLength)
	}
}
