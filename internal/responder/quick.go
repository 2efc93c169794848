package responder

import (
	"strings"

	"github.com/kindred-ai/kindred/internal/domain"
)

// The quick analyzer is a deliberately simplified scorer, separate from the
// full eight-factor engine in internal/eval. Scores persisted from fallback
// turns come from here, not from the full factor model; the full engine backs
// the explicit re-evaluate operation. Both are kept on purpose.

var quickPositiveWords = []string{
	"love", "great", "wonderful", "amazing", "excited", "happy", "grateful", "joy", "peace",
}

var quickNegativeWords = []string{
	"hate", "terrible", "awful", "sad", "angry", "frustrated", "difficult", "struggle", "pain",
}

// Red-flag names the quick analyzer can emit; everything else it emits is a
// green flag. Used when folding analysis flags into the profile evaluation.
var quickRedFlagNames = map[string]bool{
	"negative language": true,
	"rigid thinking":    true,
}

// IsRedFlag reports whether a quick-analyzer flag name is a red flag.
func IsRedFlag(name string) bool {
	return quickRedFlagNames[name]
}

// Analyze produces the per-turn analysis from the last user message.
func (r *Responder) Analyze(messages []domain.ChatMessage) domain.AnalysisResult {
	last := domain.LastUserMessage(messages)
	if last == nil {
		return domain.AnalysisResult{Sentiment: 0, Flags: []string{}, CompatibilityScore: 50}
	}

	content := strings.ToLower(last.Content)
	return domain.AnalysisResult{
		Sentiment:          sentimentFromContent(content),
		Flags:              flagsFromContent(content),
		CompatibilityScore: compatibilityFromContent(content),
		Reasoning:          "Persona simulator: conversation pattern analysis.",
		Factors:            factorsFromContent(content),
	}
}

// sentimentFromContent returns the positive/negative word-count difference
// ratio in [-1,1]; zero when neither list matches.
func sentimentFromContent(content string) float64 {
	positive := countContains(content, quickPositiveWords)
	negative := countContains(content, quickNegativeWords)

	if positive == 0 && negative == 0 {
		return 0
	}
	return float64(positive-negative) / float64(positive+negative)
}

func flagsFromContent(content string) []string {
	flags := []string{}

	if strings.Contains(content, "growth") || strings.Contains(content, "learn") {
		flags = append(flags, "growth mindset")
	}
	if strings.Contains(content, "authentic") || strings.Contains(content, "genuine") {
		flags = append(flags, "authenticity")
	}
	if strings.Contains(content, "empathy") || strings.Contains(content, "understand") {
		flags = append(flags, "emotional intelligence")
	}
	if strings.Contains(content, "curious") || strings.Contains(content, "wonder") {
		flags = append(flags, "intellectual curiosity")
	}

	if strings.Contains(content, "hate") || strings.Contains(content, "terrible") {
		flags = append(flags, "negative language")
	}
	if strings.Contains(content, "always") || strings.Contains(content, "never") {
		flags = append(flags, "rigid thinking")
	}

	return flags
}

func compatibilityFromContent(content string) int {
	score := 50

	if strings.Contains(content, "growth") || strings.Contains(content, "learn") {
		score += 15
	}
	if strings.Contains(content, "authentic") || strings.Contains(content, "genuine") {
		score += 15
	}
	if strings.Contains(content, "empathy") || strings.Contains(content, "understand") {
		score += 10
	}
	if strings.Contains(content, "curious") || strings.Contains(content, "wonder") {
		score += 10
	}
	if len(content) > 50 {
		score += 5
	}

	if strings.Contains(content, "hate") || strings.Contains(content, "terrible") {
		score -= 20
	}
	if len(content) < 10 {
		score -= 10
	}

	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func factorsFromContent(content string) map[string]float64 {
	factors := map[string]float64{}

	factors[domain.FactorValueAlignment] = pickScore(strings.Contains(content, "value") || strings.Contains(content, "purpose"), 80, 60)
	factors[domain.FactorEmotionalIQ] = pickScore(strings.Contains(content, "empathy") || strings.Contains(content, "feel"), 85, 65)
	factors[domain.FactorAuthenticity] = pickScore(strings.Contains(content, "authentic") || strings.Contains(content, "genuine"), 90, 70)
	factors[domain.FactorCommunication] = pickScore(len(content) > 50, 80, 60)
	factors[domain.FactorGrowth] = pickScore(strings.Contains(content, "growth") || strings.Contains(content, "learn"), 90, 60)
	factors[domain.FactorDepth] = pickScore(len(content) > 100, 85, 65)
	factors[domain.FactorRespectfulness] = pickScore(strings.Contains(content, "respect") || !strings.Contains(content, "hate"), 90, 70)
	factors[domain.FactorCuriosity] = pickScore(strings.Contains(content, "curious") || strings.Contains(content, "wonder"), 85, 65)

	return factors
}

func pickScore(cond bool, yes, no float64) float64 {
	if cond {
		return yes
	}
	return no
}

func countContains(content string, words []string) int {
	n := 0
	for _, w := range words {
		if strings.Contains(content, w) {
			n++
		}
	}
	return n
}
