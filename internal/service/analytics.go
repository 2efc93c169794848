package service

import (
	"context"
	"errors"

	"github.com/kindred-ai/kindred/internal/domain"
	"github.com/kindred-ai/kindred/internal/store"
)

// AdminService serves the operator surface: profile listing and aggregate
// analytics across all sessions.
type AdminService struct {
	profileStore domain.ProfileStore
}

func NewAdminService(ps domain.ProfileStore) *AdminService {
	return &AdminService{profileStore: ps}
}

func (s *AdminService) ListProfiles(ctx context.Context) ([]domain.UserProfile, error) {
	return s.profileStore.List(ctx)
}

func (s *AdminService) GetProfile(ctx context.Context, sessionID string) (*domain.UserProfile, error) {
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
	return profile, nil
}

// Analytics aggregates evaluation results across all profiles: recommendation
// distribution, flag frequency, and average conversation length.
func (s *AdminService) Analytics(ctx context.Context) (*domain.AnalyticsData, error) {
	profiles, err := s.profileStore.List(ctx)
	if err != nil {
		return nil, err
	}

	data := &domain.AnalyticsData{
		TotalInteractions:         len(profiles),
		CompatibilityDistribution: map[string]int{},
		CommonRedFlags:            map[string]int{},
		CommonGreenFlags:          map[string]int{},
	}

	var totalMessages int
	for _, p := range profiles {
		data.CompatibilityDistribution[string(p.Evaluation.Recommendation)]++
		for _, flag := range p.Evaluation.Flags.Red {
			data.CommonRedFlags[flag]++
		}
		for _, flag := range p.Evaluation.Flags.Green {
			data.CommonGreenFlags[flag]++
		}
		totalMessages += len(p.ConversationHistory)
	}

	if len(profiles) > 0 {
		data.AverageConversationLength = float64(totalMessages) / float64(len(profiles))
	}
	return data, nil
}
