package domain

// Factor names used across the evaluation engine, the quick analyzer, and
// the stored factor vector.
const (
	FactorDepth             = "depth_of_responses"
	FactorEmotionalIQ       = "emotional_intelligence"
	FactorValueAlignment    = "value_alignment"
	FactorCommunication     = "communication_style"
	FactorGrowth            = "growth_orientation"
	FactorAuthenticity      = "authenticity"
	FactorRespectfulness    = "respectfulness"
	FactorCuriosity         = "intellectual_curiosity"
	FactorConversationDepth = "conversation_depth"
	FactorConsistency       = "consistency"
)

// FactorVectorOrder fixes the dimension order of the stored factor vector.
// Only the eight core factors are vectorized; the prior-profile adjustment
// factors are excluded so vectors stay comparable across profiles.
var FactorVectorOrder = [8]string{
	FactorDepth,
	FactorEmotionalIQ,
	FactorValueAlignment,
	FactorCommunication,
	FactorGrowth,
	FactorAuthenticity,
	FactorRespectfulness,
	FactorCuriosity,
}

// FactorVector projects a factor map onto the fixed 8-dimension vector.
// Missing factors become zero.
func FactorVector(factors map[string]float64) []float32 {
	vec := make([]float32, len(FactorVectorOrder))
	for i, name := range FactorVectorOrder {
		vec[i] = float32(factors[name])
	}
	return vec
}
