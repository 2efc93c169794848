package domain

import (
	"time"

	"github.com/google/uuid"
)

// MessageType identifies who authored a chat message.
type MessageType string

const (
	MessageTypeUser MessageType = "user"
	MessageTypeAI   MessageType = "ai"
)

// MessageMetadata carries the per-turn analysis attached to an AI message.
type MessageMetadata struct {
	Sentiment          float64  `json:"sentiment"`
	FlagsDetected      []string `json:"flags_detected,omitempty"`
	CompatibilityScore int      `json:"compatibility_score"`
}

// ChatMessage is a single turn in a conversation. Messages are immutable once
// created and append-only within a profile's history; insertion order is
// load-bearing (the last user message drives response generation).
type ChatMessage struct {
	ID        uuid.UUID        `json:"id"`
	Type      MessageType      `json:"type"`
	Content   string           `json:"content"`
	Timestamp time.Time        `json:"timestamp"`
	Metadata  *MessageMetadata `json:"metadata,omitempty"`
}

// Recommendation summarizes a compatibility score into a bucket.
type Recommendation string

const (
	RecommendationHighlyCompatible Recommendation = "highly_compatible"
	RecommendationCompatible       Recommendation = "compatible"
	RecommendationNeutral          Recommendation = "neutral"
	RecommendationIncompatible     Recommendation = "incompatible"
	// RecommendationBlocked is only ever set by a manual admin action,
	// never derived from a score.
	RecommendationBlocked Recommendation = "blocked"
)

// RecommendationForScore maps a compatibility score onto its recommendation
// bucket. Thresholds are exact boundaries: 80, 60, 40.
func RecommendationForScore(score int) Recommendation {
	switch {
	case score >= 80:
		return RecommendationHighlyCompatible
	case score >= 60:
		return RecommendationCompatible
	case score >= 40:
		return RecommendationNeutral
	default:
		return RecommendationIncompatible
	}
}

// FlagSet holds detected behavioral flags, accumulated across turns.
type FlagSet struct {
	Red   []string `json:"red"`
	Green []string `json:"green"`
}

// Evaluation is the persisted compatibility state of a profile.
type Evaluation struct {
	CompatibilityScore int            `json:"compatibility_score"`
	Flags              FlagSet        `json:"flags"`
	Notes              []string       `json:"notes"`
	Recommendation     Recommendation `json:"recommendation"`
}

// UserProfile is one visitor's session: conversation history plus the rolling
// evaluation. One profile per session ID, created lazily on first contact.
type UserProfile struct {
	ID                  uuid.UUID          `json:"id"`
	SessionID           string             `json:"session_id"`
	ConversationHistory []ChatMessage      `json:"conversation_history"`
	Evaluation          Evaluation         `json:"evaluation"`
	Factors             map[string]float64 `json:"factors,omitempty"`
	CreatedAt           time.Time          `json:"created_at"`
	LastInteraction     time.Time          `json:"last_interaction"`
}

// NewUserProfile returns a fresh profile with the neutral starting evaluation.
func NewUserProfile(sessionID string) *UserProfile {
	now := time.Now().UTC()
	return &UserProfile{
		ID:                  uuid.New(),
		SessionID:           sessionID,
		ConversationHistory: []ChatMessage{},
		Evaluation: Evaluation{
			CompatibilityScore: 50,
			Flags:              FlagSet{Red: []string{}, Green: []string{}},
			Notes:              []string{},
			Recommendation:     RecommendationNeutral,
		},
		CreatedAt:       now,
		LastInteraction: now,
	}
}

// UserMessages returns only the user-authored messages, in order.
func UserMessages(messages []ChatMessage) []ChatMessage {
	var out []ChatMessage
	for _, m := range messages {
		if m.Type == MessageTypeUser {
			out = append(out, m)
		}
	}
	return out
}

// LastUserMessage returns the most recent user message, or nil.
func LastUserMessage(messages []ChatMessage) *ChatMessage {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Type == MessageTypeUser {
			return &messages[i]
		}
	}
	return nil
}

// AnalysisResult is the per-turn analysis produced alongside a generated
// response. It is folded into the profile's Evaluation by the caller and is
// never persisted as its own entity.
type AnalysisResult struct {
	Sentiment          float64            `json:"sentiment"`
	Flags              []string           `json:"flags"`
	CompatibilityScore int                `json:"compatibility_score"`
	Reasoning          string             `json:"reasoning,omitempty"`
	Factors            map[string]float64 `json:"factors,omitempty"`
}

// AnalyticsData aggregates evaluation results across all profiles for the
// admin surface.
type AnalyticsData struct {
	TotalInteractions         int            `json:"total_interactions"`
	CompatibilityDistribution map[string]int `json:"compatibility_distribution"`
	CommonRedFlags            map[string]int `json:"common_red_flags"`
	CommonGreenFlags          map[string]int `json:"common_green_flags"`
	AverageConversationLength float64        `json:"average_conversation_length"`
}
