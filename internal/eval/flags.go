package eval

import (
	"strings"

	"github.com/kindred-ai/kindred/internal/domain"
)

// DetectFlags scans the lowercased user message text against the configured
// red and green flag phrase lists and returns the configured flag strings
// that fired, in configuration order.
//
// Matching is deliberately token-level: a multi-word flag fires when any
// whitespace-split token of the phrase appears as a substring of the content.
// This is looser than whole-phrase matching but is the established behavior;
// changing it must be a deliberate, visible decision (it is pinned by test).
func (e *Engine) DetectFlags(messages []domain.ChatMessage) domain.FlagSet {
	content := joinContentLower(messages)

	flags := domain.FlagSet{Red: []string{}, Green: []string{}}
	for _, flag := range e.cfg.Filters.RedFlags {
		if flagMatches(content, flag) {
			flags.Red = append(flags.Red, flag)
		}
	}
	for _, flag := range e.cfg.Filters.GreenFlags {
		if flagMatches(content, flag) {
			flags.Green = append(flags.Green, flag)
		}
	}
	return flags
}

func flagMatches(content, flag string) bool {
	for _, token := range strings.Fields(strings.ToLower(flag)) {
		if strings.Contains(content, token) {
			return true
		}
	}
	return false
}
