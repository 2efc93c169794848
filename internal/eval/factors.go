package eval

import (
	"regexp"
	"strings"

	"github.com/kindred-ai/kindred/internal/domain"
)

// Every evaluator is a pure function of the user messages and returns a score
// in [0,100]. Determinism over identical inputs is a tested property.

func joinContent(messages []domain.ChatMessage) string {
	parts := make([]string, len(messages))
	for i, m := range messages {
		parts[i] = m.Content
	}
	return strings.Join(parts, " ")
}

func joinContentLower(messages []domain.ChatMessage) string {
	parts := make([]string, len(messages))
	for i, m := range messages {
		parts[i] = strings.ToLower(m.Content)
	}
	return strings.Join(parts, " ")
}

func averageLength(messages []domain.ChatMessage) float64 {
	if len(messages) == 0 {
		return 0
	}
	total := 0
	for _, m := range messages {
		total += len(m.Content)
	}
	return float64(total) / float64(len(messages))
}

func countMatches(content string, keywords []string) int {
	n := 0
	for _, kw := range keywords {
		if strings.Contains(content, kw) {
			n++
		}
	}
	return n
}

func containsAny(content string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(content, kw) {
			return true
		}
	}
	return false
}

func clampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// evaluateDepth buckets average message length as a proxy for thoughtfulness.
func evaluateDepth(messages []domain.ChatMessage) float64 {
	avg := averageLength(messages)
	switch {
	case avg < 20:
		return 20
	case avg < 50:
		return 40
	case avg < 100:
		return 60
	case avg < 200:
		return 80
	default:
		return 100
	}
}

func evaluateEmotionalIntelligence(messages []domain.ChatMessage) float64 {
	content := joinContentLower(messages)
	matches := countMatches(content, emotionalKeywords)
	score := float64(matches) * 15
	if score > 100 {
		score = 100
	}
	return score
}

func evaluateValueAlignment(messages []domain.ChatMessage, values []string) float64 {
	content := joinContentLower(messages)

	var alignment float64
	for _, value := range values {
		v := strings.ToLower(value)
		if strings.Contains(content, v) || containsAny(content, valueSynonyms[v]) {
			alignment += 100 / float64(len(values))
		}
	}

	conceptScore := float64(countMatches(content, valueKeywords)) * 10
	if conceptScore > 50 {
		conceptScore = 50
	}

	total := alignment + conceptScore
	if total > 100 {
		total = 100
	}
	return total
}

var grammarIssuePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\bi\b`),      // lowercase standalone "i"
	regexp.MustCompile(`[a-z]\.[a-z]`), // missing space after period
	regexp.MustCompile(`\s{2,}`),     // multiple spaces
}

func hasGrammarIssues(content string) bool {
	for _, p := range grammarIssuePatterns {
		if p.MatchString(content) {
			return true
		}
	}
	return false
}

func evaluateCommunicationStyle(messages []domain.ChatMessage) float64 {
	score := 50.0
	content := joinContent(messages)
	lower := strings.ToLower(content)

	if strings.Contains(content, "?") {
		score += 15 // shows engagement
	}
	if containsAny(lower, positiveWords) {
		score += 15
	}
	if containsAny(lower, structureWords) {
		score += 10
	}
	if containsAny(lower, listeningPhrases) {
		score += 10
	}

	if containsAny(lower, negativeWords) {
		score -= 20
	}
	if averageLength(messages) < 15 {
		score -= 15
	}
	if hasGrammarIssues(content) {
		score -= 10
	}

	return clampScore(score)
}

func evaluateGrowthOrientation(messages []domain.ChatMessage) float64 {
	content := joinContentLower(messages)
	score := float64(countMatches(content, growthKeywords)) * 12
	if score > 100 {
		score = 100
	}
	return score
}

// hasConsistentVoice reports whether every message length is within 50% of
// the mean. A single message is trivially consistent.
func hasConsistentVoice(messages []domain.ChatMessage) bool {
	if len(messages) < 2 {
		return true
	}
	avg := averageLength(messages)
	for _, m := range messages {
		diff := float64(len(m.Content)) - avg
		if diff < 0 {
			diff = -diff
		}
		if diff >= avg*0.5 {
			return false
		}
	}
	return true
}

func evaluateAuthenticity(messages []domain.ChatMessage) float64 {
	score := 50.0
	lower := strings.ToLower(joinContent(messages))

	if containsAny(lower, personalPhrases) {
		score += 20
	}
	if containsAny(lower, examplePhrases) {
		score += 20
	}
	if hasConsistentVoice(messages) {
		score += 10
	}
	if containsAny(lower, scriptedPhrases) {
		score -= 30
	}

	return clampScore(score)
}

func evaluateRespectfulness(messages []domain.ChatMessage) float64 {
	score := 100.0
	content := joinContentLower(messages)

	for _, pattern := range disrespectfulPatterns {
		if strings.Contains(content, pattern) {
			score -= 25
		}
	}

	score += float64(countMatches(content, politeWords)) * 5

	return clampScore(score)
}

func evaluateIntellectualCuriosity(messages []domain.ChatMessage) float64 {
	content := joinContent(messages)

	score := float64(strings.Count(content, "?")) * 10
	score += float64(countMatches(strings.ToLower(content), curiosityWords)) * 8

	if score > 100 {
		score = 100
	}
	return score
}
