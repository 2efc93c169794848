package responder

import (
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/kindred-ai/kindred/internal/domain"
	"github.com/kindred-ai/kindred/internal/persona"
)

func userMsg(content string) domain.ChatMessage {
	return domain.ChatMessage{
		ID:        uuid.New(),
		Type:      domain.MessageTypeUser,
		Content:   content,
		Timestamp: time.Now(),
	}
}

func newTestResponder(seed int64) *Responder {
	return New(persona.DefaultConfig(), persona.DefaultWisdom(), rand.New(rand.NewSource(seed)))
}

func TestRespond_BranchPriority(t *testing.T) {
	r := newTestResponder(1)

	cases := []struct {
		content string
		want    string
	}{
		// "relationship" plus "struggle" outranks the general relationship
		// branch and the growth branch.
		{"I'm struggling with my relationship and growth", "relationships can be challenging territory"},
		{"I want to grow and learn new things", "thinking about growth"},
		{"Tell me about love and partnership", "rich territory for growth and connection"},
		{"My job and career are on my mind", "Work and career"},
		{"I practice meditation to stay present", "Mindfulness"},
		{"Life has been difficult lately", "navigating difficult times"},
		{"What gives life meaning and purpose?", "Purpose and meaning"},
		{"The weather is nice", "your perspective"},
	}

	for _, tc := range cases {
		got := r.Respond([]domain.ChatMessage{userMsg(tc.content)})
		if !strings.Contains(got, tc.want) {
			t.Errorf("content %q: expected response containing %q, got %q", tc.content, tc.want, got)
		}
	}
}

func TestRespond_GreetingUsesSeededSource(t *testing.T) {
	messages := []domain.ChatMessage{userMsg("hi")}

	first := newTestResponder(42).Respond(messages)
	second := newTestResponder(42).Respond(messages)
	if first != second {
		t.Fatalf("same seed should give same greeting:\n%q\n%q", first, second)
	}

	found := false
	for _, tmpl := range greetingTemplates {
		if first == tmpl {
			found = true
		}
	}
	if !found {
		t.Fatalf("greeting not from template set: %q", first)
	}
}

func TestRespond_NoUserMessages(t *testing.T) {
	r := newTestResponder(1)

	got := r.Respond(nil)
	if got == "" {
		t.Fatal("expected a default response with no user messages")
	}
	if !strings.Contains(got, "your perspective") {
		t.Fatalf("expected default branch, got %q", got)
	}
}

func TestRespond_EmptyWisdomDoesNotPanic(t *testing.T) {
	wisdom := &domain.Wisdom{}
	r := New(persona.DefaultConfig(), wisdom, rand.New(rand.NewSource(1)))

	for _, content := range []string{
		"my relationship is a struggle",
		"I want to grow",
		"thinking about my partner",
		"hello",
		"anything else",
	} {
		if got := r.Respond([]domain.ChatMessage{userMsg(content)}); got == "" {
			t.Errorf("content %q: empty response", content)
		}
	}
}
