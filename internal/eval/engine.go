// Package eval implements the heuristic compatibility evaluation engine:
// eight keyword-based factor evaluators, red/green flag detection, weighted
// aggregation, and a deterministic reasoning generator. The engine is a pure
// function of its inputs; identical text always yields identical results.
package eval

import (
	"math"

	"github.com/kindred-ai/kindred/internal/domain"
)

// NeutralScore is returned when there is nothing to evaluate.
const NeutralScore = 50

// Result is the outcome of one evaluation pass.
type Result struct {
	Score     int                `json:"score"`
	Flags     domain.FlagSet     `json:"flags"`
	Factors   map[string]float64 `json:"factors"`
	Reasoning string             `json:"reasoning"`
}

// Engine evaluates conversations against an immutable persona configuration.
type Engine struct {
	cfg *domain.PersonaConfig
}

func NewEngine(cfg *domain.PersonaConfig) *Engine {
	return &Engine{cfg: cfg}
}

// Evaluate runs flag detection, factor evaluation, aggregation, and reasoning
// in one pass over the conversation. AI messages are excluded from scoring.
// When prior is non-nil, the prior conversation length and score fold into
// the conversation_depth and consistency factors before aggregation.
func (e *Engine) Evaluate(messages []domain.ChatMessage, prior *domain.UserProfile) Result {
	userMessages := domain.UserMessages(messages)
	if len(userMessages) == 0 {
		return Result{
			Score:     NeutralScore,
			Flags:     domain.FlagSet{Red: []string{}, Green: []string{}},
			Factors:   map[string]float64{},
			Reasoning: "No user messages to evaluate",
		}
	}

	factors := e.evaluateFactors(userMessages)
	flags := e.DetectFlags(userMessages)

	if prior != nil {
		// A long prior history signals sustained engagement. Clamped at the
		// point of mutation so repeated evaluations cannot drift above 100.
		if len(prior.ConversationHistory) > 10 {
			factors[domain.FactorConversationDepth] = math.Min(100, factors[domain.FactorConversationDepth]+10)
		}

		previous := float64(prior.Evaluation.CompatibilityScore)
		switch {
		case previous > 70:
			factors[domain.FactorConsistency] = 85
		case previous < 30:
			factors[domain.FactorConsistency] = 25
		default:
			factors[domain.FactorConsistency] = previous
		}
	}

	score := e.calculateWeightedScore(factors)
	reasoning := generateReasoning(factors, flags, score)

	return Result{Score: score, Flags: flags, Factors: factors, Reasoning: reasoning}
}

func (e *Engine) evaluateFactors(userMessages []domain.ChatMessage) map[string]float64 {
	return map[string]float64{
		domain.FactorDepth:          evaluateDepth(userMessages),
		domain.FactorEmotionalIQ:    evaluateEmotionalIntelligence(userMessages),
		domain.FactorValueAlignment: evaluateValueAlignment(userMessages, e.cfg.Values),
		domain.FactorCommunication:  evaluateCommunicationStyle(userMessages),
		domain.FactorGrowth:         evaluateGrowthOrientation(userMessages),
		domain.FactorAuthenticity:   evaluateAuthenticity(userMessages),
		domain.FactorRespectfulness: evaluateRespectfulness(userMessages),
		domain.FactorCuriosity:      evaluateIntellectualCuriosity(userMessages),
	}
}

// calculateWeightedScore combines factor scores using the configured weights.
// Only factors present in both maps count; the result is normalized by the
// weight actually used. With no overlap the neutral default applies.
func (e *Engine) calculateWeightedScore(factors map[string]float64) int {
	var totalScore, totalWeight float64
	for name, weight := range e.cfg.ScoringWeights {
		value, ok := factors[name]
		if !ok {
			continue
		}
		totalScore += value * weight
		totalWeight += weight
	}

	if totalWeight <= 0 {
		return NeutralScore
	}
	return int(math.Round(totalScore / totalWeight))
}
