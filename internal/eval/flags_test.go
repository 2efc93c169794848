package eval

import (
	"reflect"
	"testing"

	"github.com/kindred-ai/kindred/internal/domain"
	"github.com/kindred-ai/kindred/internal/persona"
)

func TestDetectFlags_GreenAndRed(t *testing.T) {
	engine := newTestEngine()

	flags := engine.DetectFlags([]domain.ChatMessage{
		userMsg("I have a growth mindset and endless curiosity, but honestly I blame everyone else"),
	})

	wantGreen := map[string]bool{"growth mindset": true, "genuine curiosity": true}
	for _, g := range flags.Green {
		delete(wantGreen, g)
	}
	if len(wantGreen) != 0 {
		t.Fatalf("missing green flags %v in %v", wantGreen, flags.Green)
	}

	foundBlames := false
	for _, r := range flags.Red {
		if r == "blames everyone" {
			foundBlames = true
		}
	}
	if !foundBlames {
		t.Fatalf("expected 'blames everyone' red flag, got %v", flags.Red)
	}
}

func TestDetectFlags_CleanConversation(t *testing.T) {
	engine := newTestEngine()

	flags := engine.DetectFlags([]domain.ChatMessage{
		userMsg("Hello, nice weather today"),
	})

	if len(flags.Red) != 0 {
		t.Fatalf("expected no red flags, got %v", flags.Red)
	}
	if len(flags.Green) != 0 {
		t.Fatalf("expected no green flags, got %v", flags.Green)
	}
}

// Token-level matching means any word of a multi-word flag phrase fires the
// whole flag. "thinking" alone fires "rigid thinking". This is established
// behavior; if this test fails the matching semantics changed.
func TestDetectFlags_TokenLevelMatching(t *testing.T) {
	engine := newTestEngine()

	flags := engine.DetectFlags([]domain.ChatMessage{
		userMsg("I was thinking about my weekend plans"),
	})

	found := false
	for _, r := range flags.Red {
		if r == "rigid thinking" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected token-level match on 'thinking' to fire 'rigid thinking', got %v", flags.Red)
	}
}

func TestDetectFlags_ConfigOrderPreserved(t *testing.T) {
	cfg := persona.DefaultConfig()
	cfg.Filters.GreenFlags = []string{"alpha", "beta", "gamma"}
	cfg.Filters.RedFlags = []string{}
	engine := NewEngine(cfg)

	flags := engine.DetectFlags([]domain.ChatMessage{
		userMsg("gamma then beta then alpha"),
	})

	if !reflect.DeepEqual(flags.Green, []string{"alpha", "beta", "gamma"}) {
		t.Fatalf("expected configuration order, got %v", flags.Green)
	}
}

func TestDetectFlags_NoDuplicatesAcrossMessages(t *testing.T) {
	engine := newTestEngine()

	flags := engine.DetectFlags([]domain.ChatMessage{
		userMsg("growth mindset is everything"),
		userMsg("growth mindset again, truly"),
	})

	count := 0
	for _, g := range flags.Green {
		if g == "growth mindset" {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected 'growth mindset' once, got %d occurrences in %v", count, flags.Green)
	}
}
