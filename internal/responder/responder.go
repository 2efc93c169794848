// Package responder implements the persona simulator that stands in for a
// real model backend: template-driven responses keyed by keyword matches in
// the user's last message, plus a lightweight per-turn analysis.
package responder

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/kindred-ai/kindred/internal/domain"
)

// Responder generates canned persona responses. The random source is
// injected so tests can pin exact outputs with a fixed seed.
type Responder struct {
	cfg    *domain.PersonaConfig
	wisdom *domain.Wisdom
	rng    *rand.Rand
}

func New(cfg *domain.PersonaConfig, wisdom *domain.Wisdom, rng *rand.Rand) *Responder {
	return &Responder{cfg: cfg, wisdom: wisdom, rng: rng}
}

var greetingTemplates = []string{
	"Hello! I'm here to explore meaningful connections and share insights about life and relationships. What's been on your mind lately?",
	"Hi there! I'm curious about what brings you here today. What aspects of life are you thinking about?",
	"Hello! I appreciate you taking the time to connect. What's something you've been reflecting on recently?",
}

// Respond picks a response for the last user message. The branches form a
// strict priority chain: the first matching branch wins, so more specific
// topics (relationship struggles) are checked before general ones.
func (r *Responder) Respond(messages []domain.ChatMessage) string {
	content := ""
	if last := domain.LastUserMessage(messages); last != nil {
		content = strings.ToLower(last.Content)
	}

	has := func(keywords ...string) bool {
		for _, kw := range keywords {
			if strings.Contains(content, kw) {
				return true
			}
		}
		return false
	}

	switch {
	case has("relationship") && has("struggle", "difficult", "problem"):
		insight := r.pick(r.wisdom.RelationshipInsights)
		return fmt.Sprintf("I hear that relationships can be challenging territory. %s What aspects of relationships feel most difficult for you right now?", insight)

	case has("growth", "learn", "develop"):
		description := r.wisdom.CorePhilosophy.GrowthMindset
		if lessons := r.wisdom.LessonsForContext("personal_development"); len(lessons) > 0 {
			description = lessons[r.rng.Intn(len(lessons))].Description
		}
		return fmt.Sprintf("That's wonderful that you're thinking about growth! %s What's your experience been with this aspect of personal development?", description)

	case has("relationship", "partner", "love"):
		insight := r.pick(r.wisdom.RelationshipInsights)
		return fmt.Sprintf("Relationships are such rich territory for growth and connection. %s What draws you to thinking about relationships right now?", insight)

	case has("work", "career", "job"):
		return "Work and career can be such meaningful parts of our lives. What aspects of your work energize you most?"

	case has("mindful", "present", "meditation"):
		return "Mindfulness is such a powerful practice for deepening our experience of life. What draws you to mindfulness?"

	case has("difficult", "challenge", "struggle"):
		return fmt.Sprintf("I appreciate you sharing about challenges. %s What's been most helpful for you in navigating difficult times?", r.wisdom.ThoughtsOnExperience.Pain)

	case has("purpose", "meaning", "value"):
		return "Purpose and meaning are such fundamental aspects of a fulfilling life. What gives your life the most meaning right now?"

	case has("hello", "hi", "hey"):
		return greetingTemplates[r.rng.Intn(len(greetingTemplates))]

	default:
		return fmt.Sprintf("That's really interesting! %s I'd love to understand more about your perspective on this. What's your experience been like with this aspect of life?", r.wisdom.CorePhilosophy.LifePurpose)
	}
}

func (r *Responder) pick(options []string) string {
	if len(options) == 0 {
		return r.wisdom.CorePhilosophy.Relationships
	}
	return options[r.rng.Intn(len(options))]
}
