package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kindred-ai/kindred/internal/domain"
	"github.com/kindred-ai/kindred/internal/responder"
	"github.com/kindred-ai/kindred/internal/store"
)

var (
	ErrProfileNotFound  = errors.New("profile not found")
	ErrSessionIDMissing = errors.New("session_id is required")
	ErrMessageEmpty     = errors.New("message is required")
)

// TurnResult is the outcome of one chat turn: the AI reply plus the per-turn
// analysis that was folded into the profile's evaluation.
type TurnResult struct {
	Message  domain.ChatMessage    `json:"message"`
	Analysis domain.AnalysisResult `json:"analysis"`
}

// SessionResult is the profile handed back on session bootstrap.
type SessionResult struct {
	Profile *domain.UserProfile `json:"profile"`
	IsNew   bool                `json:"is_new"`
}

// ChatService orchestrates a conversation turn: profile lookup, response
// generation with fallback, and evaluation update. The LLM client may be nil,
// in which case every turn is handled by the persona simulator.
type ChatService struct {
	profileStore domain.ProfileStore
	llmClient    domain.ChatClient
	responder    *responder.Responder
	cfg          *domain.PersonaConfig
	wisdom       *domain.Wisdom
	logger       *zap.Logger
}

func NewChatService(ps domain.ProfileStore, lc domain.ChatClient, r *responder.Responder, cfg *domain.PersonaConfig, wisdom *domain.Wisdom, logger *zap.Logger) *ChatService {
	return &ChatService{
		profileStore: ps,
		llmClient:    lc,
		responder:    r,
		cfg:          cfg,
		wisdom:       wisdom,
		logger:       logger,
	}
}

// Session returns the profile for a session, creating it on first contact.
func (s *ChatService) Session(ctx context.Context, sessionID string) (*SessionResult, error) {
	if sessionID == "" {
		return nil, ErrSessionIDMissing
	}

	profile, err := s.profileStore.GetBySessionID(ctx, sessionID)
	if err == nil {
		return &SessionResult{Profile: profile, IsNew: false}, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	profile = domain.NewUserProfile(sessionID)
	if err := s.profileStore.Create(ctx, profile); err != nil {
		// Lost the race with a concurrent first request; the other
		// profile wins.
		if errors.Is(err, store.ErrConflict) {
			existing, getErr := s.profileStore.GetBySessionID(ctx, sessionID)
			if getErr != nil {
				return nil, getErr
			}
			return &SessionResult{Profile: existing, IsNew: false}, nil
		}
		return nil, err
	}
	return &SessionResult{Profile: profile, IsNew: true}, nil
}

// HandleTurn processes one user message: persists it, generates the AI reply,
// persists the reply with its analysis metadata, and folds the analysis into
// the profile's evaluation.
func (s *ChatService) HandleTurn(ctx context.Context, sessionID, content string) (*TurnResult, error) {
	if sessionID == "" {
		return nil, ErrSessionIDMissing
	}
	if content == "" {
		return nil, ErrMessageEmpty
	}

	session, err := s.Session(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	profile := session.Profile

	userMessage := domain.ChatMessage{
		ID:        uuid.New(),
		Type:      domain.MessageTypeUser,
		Content:   content,
		Timestamp: time.Now().UTC(),
	}
	if err := s.profileStore.AppendMessage(ctx, sessionID, userMessage); err != nil {
		return nil, err
	}

	history := append(profile.ConversationHistory, userMessage)
	analysis := s.responder.Analyze(history)
	response := s.generateResponse(ctx, profile, history)

	aiMessage := domain.ChatMessage{
		ID:        uuid.New(),
		Type:      domain.MessageTypeAI,
		Content:   response,
		Timestamp: time.Now().UTC(),
		Metadata: &domain.MessageMetadata{
			Sentiment:          analysis.Sentiment,
			FlagsDetected:      analysis.Flags,
			CompatibilityScore: analysis.CompatibilityScore,
		},
	}
	if err := s.profileStore.AppendMessage(ctx, sessionID, aiMessage); err != nil {
		return nil, err
	}

	eval := foldAnalysis(profile.Evaluation, analysis)
	if err := s.profileStore.UpdateEvaluation(ctx, sessionID, eval, analysis.Factors); err != nil {
		return nil, err
	}

	return &TurnResult{Message: aiMessage, Analysis: analysis}, nil
}

// ClearHistory removes a session's conversation but keeps the profile and its
// evaluation state.
func (s *ChatService) ClearHistory(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return ErrSessionIDMissing
	}
	err := s.profileStore.ClearHistory(ctx, sessionID)
	if errors.Is(err, store.ErrNotFound) {
		return ErrProfileNotFound
	}
	return err
}

// generateResponse prefers the model backend and degrades to the persona
// simulator on any generation failure.
func (s *ChatService) generateResponse(ctx context.Context, profile *domain.UserProfile, history []domain.ChatMessage) string {
	if s.llmClient == nil {
		return s.responder.Respond(history)
	}

	system := BuildSystemPrompt(s.cfg, s.wisdom, profile)
	reply, err := s.llmClient.Chat(ctx, system, toWireMessages(history))
	if err != nil {
		s.logger.Warn("LLM generation failed, using persona simulator", zap.Error(err))
		return s.responder.Respond(history)
	}
	return reply
}

func toWireMessages(history []domain.ChatMessage) []domain.Message {
	out := make([]domain.Message, 0, len(history))
	for _, m := range history {
		role := "user"
		if m.Type == domain.MessageTypeAI {
			role = "assistant"
		}
		out = append(out, domain.Message{Role: role, Content: m.Content})
	}
	return out
}

// foldAnalysis merges a per-turn analysis into the rolling evaluation. Flags
// accumulate without duplicates; the recommendation follows the new score
// unless an admin has blocked the session.
func foldAnalysis(current domain.Evaluation, analysis domain.AnalysisResult) domain.Evaluation {
	eval := current
	eval.CompatibilityScore = analysis.CompatibilityScore

	for _, flag := range analysis.Flags {
		if responder.IsRedFlag(flag) {
			eval.Flags.Red = appendUnique(eval.Flags.Red, flag)
		} else {
			eval.Flags.Green = appendUnique(eval.Flags.Green, flag)
		}
	}

	if analysis.Reasoning != "" {
		eval.Notes = append(eval.Notes, analysis.Reasoning)
	}

	if eval.Recommendation != domain.RecommendationBlocked {
		eval.Recommendation = domain.RecommendationForScore(eval.CompatibilityScore)
	}
	return eval
}

func appendUnique(s []string, v string) []string {
	for _, existing := range s {
		if existing == v {
			return s
		}
	}
	return append(s, v)
}
