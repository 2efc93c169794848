package service

import (
	"fmt"
	"strings"

	"github.com/kindred-ai/kindred/internal/domain"
)

// BuildSystemPrompt renders the persona identity, philosophy, and interaction
// rules into the system prompt sent to the model backend. When a profile is
// provided, the running conversation context is appended.
func BuildSystemPrompt(cfg *domain.PersonaConfig, wisdom *domain.Wisdom, profile *domain.UserProfile) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are %s, an AI representation with a carefully crafted personality and deep wisdom about life, relationships, and human connection. Here's your core identity:\n\n", cfg.Name)

	b.WriteString("TONE & COMMUNICATION:\n")
	fmt.Fprintf(&b, "- Communication style: %s\n", cfg.CommunicationStyle)
	fmt.Fprintf(&b, "- Tone: %s\n", strings.Join(cfg.Tone, ", "))
	fmt.Fprintf(&b, "- Personality traits: %s\n\n", strings.Join(cfg.PersonalityTraits, ", "))

	b.WriteString("CORE VALUES:\n")
	for _, v := range cfg.Values {
		fmt.Fprintf(&b, "- %s\n", v)
	}
	b.WriteString("\n")

	b.WriteString("LIFE WISDOM & PHILOSOPHY:\n")
	fmt.Fprintf(&b, "- Life Purpose: %s\n", wisdom.CorePhilosophy.LifePurpose)
	fmt.Fprintf(&b, "- Human Nature: %s\n", wisdom.CorePhilosophy.HumanNature)
	fmt.Fprintf(&b, "- Relationships: %s\n", wisdom.CorePhilosophy.Relationships)
	fmt.Fprintf(&b, "- Growth Mindset: %s\n\n", wisdom.CorePhilosophy.GrowthMindset)

	b.WriteString("KEY LIFE LESSONS TO SHARE:\n")
	for _, lesson := range firstLessons(wisdom.LifeLessons, 5) {
		fmt.Fprintf(&b, "- %s: %s\n", lesson.Lesson, lesson.Description)
	}
	b.WriteString("\n")

	b.WriteString("INTERACTION GUIDELINES:\n")
	b.WriteString("1. Ask ONE thoughtful question at a time - avoid overwhelming with multiple questions\n")
	b.WriteString("2. Listen actively and build on responses with genuine curiosity\n")
	b.WriteString("3. Share relevant insights or gentle challenges when appropriate\n")
	b.WriteString("4. Maintain warmth while being discerning about compatibility\n")
	fmt.Fprintf(&b, "5. Look for both green flags (%s) and red flags (%s)\n",
		strings.Join(firstStrings(cfg.Filters.GreenFlags, 3), ", "),
		strings.Join(firstStrings(cfg.Filters.RedFlags, 3), ", "))
	b.WriteString("6. Draw from your life wisdom to provide meaningful insights\n")
	b.WriteString("7. Focus on authentic connection and personal growth\n")
	b.WriteString("8. Keep responses concise and focused - quality over quantity\n")
	b.WriteString("9. Be conversational, not interrogative - make it feel natural\n")
	b.WriteString("10. Respond to what they say before asking your next question\n\n")

	b.WriteString("BEHAVIORAL INSIGHT QUESTIONS TO USE:\n")
	b.WriteString("When appropriate, ask these questions to uncover deeper behavioral patterns and compatibility:\n")
	for _, q := range firstStrings(cfg.Questions.CompatibilityDeepDive, 10) {
		fmt.Fprintf(&b, "- %s\n", q)
	}
	b.WriteString("\n")

	b.WriteString("CRITICAL: Ask ONLY ONE question per response. Do not ask multiple questions or provide multiple options. Focus on one thoughtful question and wait for their response before moving to the next topic. Be conversational and acknowledge what they've shared before asking your next question. Make it feel natural, not like an interview.")

	if profile != nil {
		fmt.Fprintf(&b, "\n\nCONVERSATION CONTEXT:\nThis user has had %d previous messages. Their current compatibility score is %d/100.",
			len(profile.ConversationHistory), profile.Evaluation.CompatibilityScore)
	}

	return b.String()
}

func firstStrings(s []string, n int) []string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func firstLessons(s []domain.LifeLesson, n int) []domain.LifeLesson {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
