package eval

import (
	"fmt"
	"strings"

	"github.com/kindred-ai/kindred/internal/domain"
)

// generateReasoning renders the human-readable explanation. Clause order is
// fixed and covered by golden tests: score, strong areas, concerns, first two
// green flags, first two red flags.
func generateReasoning(factors map[string]float64, flags domain.FlagSet, score int) string {
	var strong, weak []string
	for _, name := range factorOrder {
		value, ok := factors[name]
		if !ok {
			continue
		}
		if value >= 70 {
			strong = append(strong, strings.ReplaceAll(name, "_", " "))
		}
		if value <= 40 {
			weak = append(weak, strings.ReplaceAll(name, "_", " "))
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Overall compatibility score: %d/100. ", score)

	if len(strong) > 0 {
		fmt.Fprintf(&b, "Strong areas: %s. ", strings.Join(strong, ", "))
	}
	if len(weak) > 0 {
		fmt.Fprintf(&b, "Areas for concern: %s. ", strings.Join(weak, ", "))
	}
	if len(flags.Green) > 0 {
		fmt.Fprintf(&b, "Positive indicators: %s. ", strings.Join(firstN(flags.Green, 2), ", "))
	}
	if len(flags.Red) > 0 {
		fmt.Fprintf(&b, "Warning signs: %s. ", strings.Join(firstN(flags.Red, 2), ", "))
	}

	return strings.TrimSpace(b.String())
}

// factorOrder fixes the iteration order over the factor map so reasoning
// output is deterministic.
var factorOrder = []string{
	domain.FactorDepth,
	domain.FactorEmotionalIQ,
	domain.FactorValueAlignment,
	domain.FactorCommunication,
	domain.FactorGrowth,
	domain.FactorAuthenticity,
	domain.FactorRespectfulness,
	domain.FactorCuriosity,
	domain.FactorConversationDepth,
	domain.FactorConsistency,
}

func firstN(s []string, n int) []string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
