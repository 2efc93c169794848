// Seed script for creating demo session profiles.
// Run with: go run ./scripts/seed.go
package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/kindred-ai/kindred/internal/domain"
	"github.com/kindred-ai/kindred/internal/eval"
	"github.com/kindred-ai/kindred/internal/persona"
	"github.com/kindred-ai/kindred/internal/responder"
	"github.com/kindred-ai/kindred/internal/store"
)

var demoConversations = map[string][]string{
	"demo-growth": {
		"I've been thinking a lot about personal growth lately. I want to learn from my mistakes instead of repeating them.",
		"For example, I used to get defensive during conflict, but I've learned to pause and try to understand the other perspective.",
		"What do you think makes someone genuinely open to change?",
	},
	"demo-neutral": {
		"Hi there",
		"Not much going on today, just the usual.",
		"The weather has been fine I suppose.",
	},
	"demo-hostile": {
		"whatever, this is boring",
		"I hate these kinds of questions, they're stupid",
		"people never change so why bother",
	},
}

func main() {
	envFile := os.Getenv("KINDRED_ENV")
	if envFile == "" {
		envFile = ".env"
	}
	_ = godotenv.Load(envFile)
	_ = godotenv.Load(envFile + ".secret")

	dbPath := os.Getenv("SQLITE_PATH")
	if dbPath == "" {
		dbPath = "data/kindred.db"
	}

	s, err := store.NewSQLiteStore(dbPath)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	defer s.Close()

	ctx := context.Background()
	cfg := persona.DefaultConfig()
	wisdom := persona.DefaultWisdom()
	engine := eval.NewEngine(cfg)
	sim := responder.New(cfg, wisdom, rand.New(rand.NewSource(time.Now().UnixNano())))

	for sessionID, lines := range demoConversations {
		profile := domain.NewUserProfile(sessionID)
		if err := s.Create(ctx, profile); err != nil {
			log.Printf("skip %s: %v", sessionID, err)
			continue
		}

		var history []domain.ChatMessage
		for _, line := range lines {
			userMsg := domain.ChatMessage{
				ID:        uuid.New(),
				Type:      domain.MessageTypeUser,
				Content:   line,
				Timestamp: time.Now().UTC(),
			}
			if err := s.AppendMessage(ctx, sessionID, userMsg); err != nil {
				log.Fatalf("append user message: %v", err)
			}
			history = append(history, userMsg)

			analysis := sim.Analyze(history)
			aiMsg := domain.ChatMessage{
				ID:        uuid.New(),
				Type:      domain.MessageTypeAI,
				Content:   sim.Respond(history),
				Timestamp: time.Now().UTC(),
				Metadata: &domain.MessageMetadata{
					Sentiment:          analysis.Sentiment,
					FlagsDetected:      analysis.Flags,
					CompatibilityScore: analysis.CompatibilityScore,
				},
			}
			if err := s.AppendMessage(ctx, sessionID, aiMsg); err != nil {
				log.Fatalf("append ai message: %v", err)
			}
			history = append(history, aiMsg)
		}

		result := engine.Evaluate(history, profile)
		evaluation := domain.Evaluation{
			CompatibilityScore: result.Score,
			Flags:              result.Flags,
			Notes:              []string{result.Reasoning},
			Recommendation:     domain.RecommendationForScore(result.Score),
		}
		if err := s.UpdateEvaluation(ctx, sessionID, evaluation, result.Factors); err != nil {
			log.Fatalf("update evaluation: %v", err)
		}

		fmt.Printf("seeded %s: score=%d recommendation=%s\n", sessionID, result.Score, evaluation.Recommendation)
	}
}
