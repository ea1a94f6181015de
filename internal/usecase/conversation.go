package usecase

import (
	"sort"
	"strings"

	"genki-chat/internal/domain"
)

const (
	firstMessageSentinel = "New conversation"
	previewTurns         = 4
	previewSnippetRunes  = 30
	previewMaxRunes      = 150
	previewSeparator     = " | "
)

// summarizeConversations reconstructs per-session summaries from a flat
// turn log. Input order is irrelevant; turns without a session id are
// dropped. Output is ordered by last activity, newest first.
func summarizeConversations(turns []domain.Turn) []domain.ConversationSummary {
	groups := make(map[string][]domain.Turn)
	var order []string
	for _, turn := range turns {
		if turn.SessionID == "" {
			continue
		}
		if _, seen := groups[turn.SessionID]; !seen {
			order = append(order, turn.SessionID)
		}
		groups[turn.SessionID] = append(groups[turn.SessionID], turn)
	}

	summaries := make([]domain.ConversationSummary, 0, len(groups))
	for _, sessionID := range order {
		summaries = append(summaries, summarizeSession(sessionID, groups[sessionID]))
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].UpdatedAt > summaries[j].UpdatedAt
	})
	return summaries
}

func summarizeSession(sessionID string, turns []domain.Turn) domain.ConversationSummary {
	sort.SliceStable(turns, func(i, j int) bool {
		return turns[i].Timestamp < turns[j].Timestamp
	})

	summary := domain.ConversationSummary{
		SessionID:    sessionID,
		FirstMessage: firstMessageSentinel,
		MessageCount: len(turns),
		CreatedAt:    turns[0].Timestamp,
		UpdatedAt:    turns[len(turns)-1].Timestamp,
		Preview:      buildPreview(turns),
	}

	for _, turn := range turns {
		switch turn.Role {
		case domain.RoleUser:
			summary.UserMessageCount++
		case domain.RoleAssistant:
			summary.AssistantMessageCount++
		}
	}
	for _, turn := range turns {
		if turn.Role == domain.RoleUser && turn.Content != "" {
			summary.FirstMessage = turn.Content
			break
		}
	}
	return summary
}

// buildPreview renders the most recent turns, oldest of them first, as
// role-tagged snippets. turns must already be sorted ascending.
func buildPreview(turns []domain.Turn) string {
	recent := turns
	if len(recent) > previewTurns {
		recent = recent[len(recent)-previewTurns:]
	}

	var parts []string
	for _, turn := range recent {
		if turn.Content == "" {
			continue
		}
		switch turn.Role {
		case domain.RoleUser:
			parts = append(parts, "👤: "+truncateRunes(turn.Content, previewSnippetRunes))
		case domain.RoleAssistant:
			parts = append(parts, "🤖: "+truncateRunes(turn.Content, previewSnippetRunes))
		}
	}

	preview := strings.Join(parts, previewSeparator)
	if runes := []rune(preview); len(runes) > previewMaxRunes {
		preview = string(runes[:previewMaxRunes-3]) + "..."
	}
	return preview
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
