package eval

import (
	"testing"

	"github.com/kindred-ai/kindred/internal/domain"
)

func TestGenerateReasoning_AllClauses(t *testing.T) {
	factors := map[string]float64{
		domain.FactorDepth:          80,
		domain.FactorValueAlignment: 30,
		domain.FactorCommunication:  55,
	}
	flags := domain.FlagSet{
		Green: []string{"growth mindset", "genuine curiosity", "emotional openness"},
		Red:   []string{"rigid thinking"},
	}

	got := generateReasoning(factors, flags, 62)
	want := "Overall compatibility score: 62/100. " +
		"Strong areas: depth of responses. " +
		"Areas for concern: value alignment. " +
		"Positive indicators: growth mindset, genuine curiosity. " +
		"Warning signs: rigid thinking."

	if got != want {
		t.Fatalf("reasoning mismatch:\ngot:  %q\nwant: %q", got, want)
	}
}

func TestGenerateReasoning_ScoreOnly(t *testing.T) {
	got := generateReasoning(
		map[string]float64{domain.FactorCommunication: 50},
		domain.FlagSet{Red: []string{}, Green: []string{}},
		50,
	)

	if got != "Overall compatibility score: 50/100." {
		t.Fatalf("unexpected reasoning: %q", got)
	}
}

func TestGenerateReasoning_FlagsCappedAtTwo(t *testing.T) {
	got := generateReasoning(
		map[string]float64{},
		domain.FlagSet{Green: []string{"a", "b", "c", "d"}},
		70,
	)

	want := "Overall compatibility score: 70/100. Positive indicators: a, b."
	if got != want {
		t.Fatalf("reasoning mismatch:\ngot:  %q\nwant: %q", got, want)
	}
}

func TestGenerateReasoning_FactorOrderStable(t *testing.T) {
	factors := map[string]float64{
		domain.FactorCuriosity:   90,
		domain.FactorDepth:       85,
		domain.FactorEmotionalIQ: 75,
	}

	want := "Overall compatibility score: 81/100. " +
		"Strong areas: depth of responses, emotional intelligence, intellectual curiosity."
	for i := 0; i < 10; i++ {
		if got := generateReasoning(factors, domain.FlagSet{}, 81); got != want {
			t.Fatalf("iteration %d:\ngot:  %q\nwant: %q", i, got, want)
		}
	}
}
