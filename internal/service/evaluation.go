package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/kindred-ai/kindred/internal/domain"
	"github.com/kindred-ai/kindred/internal/eval"
	"github.com/kindred-ai/kindred/internal/store"
)

var ErrNoEvaluation = errors.New("profile has no full evaluation yet")

// EvaluationService runs the full eight-factor engine over a profile's
// conversation and maintains the admin-side evaluation state.
type EvaluationService struct {
	profileStore domain.ProfileStore
	engine       *eval.Engine
	logger       *zap.Logger
}

func NewEvaluationService(ps domain.ProfileStore, engine *eval.Engine, logger *zap.Logger) *EvaluationService {
	return &EvaluationService{profileStore: ps, engine: engine, logger: logger}
}

// Reevaluate runs the full engine over the stored conversation and persists
// the result, replacing the rolling per-turn score. A blocked recommendation
// is never overwritten.
func (s *EvaluationService) Reevaluate(ctx context.Context, sessionID string) (*eval.Result, error) {
	if sessionID == "" {
		return nil, ErrSessionIDMissing
	}

	profile, err := s.profileStore.GetBySessionID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	result := s.engine.Evaluate(profile.ConversationHistory, profile)

	evaluation := domain.Evaluation{
		CompatibilityScore: result.Score,
		Flags:              result.Flags,
		Notes:              append(profile.Evaluation.Notes, result.Reasoning),
		Recommendation:     domain.RecommendationForScore(result.Score),
	}
	if profile.Evaluation.Recommendation == domain.RecommendationBlocked {
		evaluation.Recommendation = domain.RecommendationBlocked
	}

	if err := s.profileStore.UpdateEvaluation(ctx, sessionID, evaluation, result.Factors); err != nil {
		return nil, err
	}

	s.logger.Info("profile re-evaluated",
		zap.String("session_id", sessionID),
		zap.Int("score", result.Score),
		zap.String("recommendation", string(evaluation.Recommendation)))
	return &result, nil
}

// Block marks a session as blocked. Blocking is a manual admin action and is
// sticky: later score updates do not clear it.
func (s *EvaluationService) Block(ctx context.Context, sessionID, reason string) (*domain.UserProfile, error) {
	if sessionID == "" {
		return nil, ErrSessionIDMissing
	}

	profile, err := s.profileStore.GetBySessionID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	evaluation := profile.Evaluation
	evaluation.Recommendation = domain.RecommendationBlocked
	if reason != "" {
		evaluation.Notes = append(evaluation.Notes, "Blocked: "+reason)
	}

	if err := s.profileStore.UpdateEvaluation(ctx, sessionID, evaluation, nil); err != nil {
		return nil, err
	}

	profile.Evaluation = evaluation
	s.logger.Info("profile blocked", zap.String("session_id", sessionID))
	return profile, nil
}

// FindSimilar returns the profiles whose factor vectors are closest to the
// given session's.
func (s *EvaluationService) FindSimilar(ctx context.Context, sessionID string, limit int) ([]domain.ProfileWithScore, error) {
	if sessionID == "" {
		return nil, ErrSessionIDMissing
	}

	results, err := s.profileStore.FindSimilar(ctx, sessionID, limit)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			return nil, ErrProfileNotFound
		case errors.Is(err, store.ErrNoEvaluation):
			return nil, ErrNoEvaluation
		}
		return nil, err
	}
	return results, nil
}
