package usecase

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"genki-chat/internal/domain"
)

func turnAt(sessionID string, role domain.Role, ts, content string) domain.Turn {
	return domain.Turn{
		UserID:    "u1",
		Timestamp: ts,
		SessionID: sessionID,
		Role:      role,
		Content:   content,
	}
}

func TestSummarizeConversations_EmptyInput(t *testing.T) {
	require.Empty(t, summarizeConversations(nil))
	require.Empty(t, summarizeConversations([]domain.Turn{}))
}

func TestSummarizeConversations_GroupsBySession(t *testing.T) {
	turns := []domain.Turn{
		turnAt("s1", domain.RoleUser, "2026-03-01T10:00:01.000000Z", "first in s1"),
		turnAt("s2", domain.RoleUser, "2026-03-01T11:00:01.000000Z", "first in s2"),
		turnAt("s1", domain.RoleAssistant, "2026-03-01T10:00:02.000000Z", "reply in s1"),
	}

	summaries := summarizeConversations(turns)
	require.Len(t, summaries, 2)

	bySession := map[string]domain.ConversationSummary{}
	for _, s := range summaries {
		bySession[s.SessionID] = s
	}
	require.Equal(t, 2, bySession["s1"].MessageCount)
	require.Equal(t, 1, bySession["s1"].UserMessageCount)
	require.Equal(t, 1, bySession["s1"].AssistantMessageCount)
	require.Equal(t, 1, bySession["s2"].MessageCount)
}

func TestSummarizeConversations_NewestUpdatedFirst(t *testing.T) {
	turns := []domain.Turn{
		turnAt("old", domain.RoleUser, "2026-03-01T09:00:00.000000Z", "a"),
		turnAt("new", domain.RoleUser, "2026-03-01T12:00:00.000000Z", "b"),
		turnAt("mid", domain.RoleUser, "2026-03-01T10:00:00.000000Z", "c"),
	}
	summaries := summarizeConversations(turns)
	require.Equal(t, []string{"new", "mid", "old"},
		[]string{summaries[0].SessionID, summaries[1].SessionID, summaries[2].SessionID})
}

func TestSummarizeConversations_FirstMessageAndTimestamps(t *testing.T) {
	// deliberately out of order
	turns := []domain.Turn{
		turnAt("s1", domain.RoleAssistant, "2026-03-01T10:00:04.000000Z", "later reply"),
		turnAt("s1", domain.RoleUser, "2026-03-01T10:00:03.000000Z", "second question"),
		turnAt("s1", domain.RoleUser, "2026-03-01T10:00:01.000000Z", "opening question"),
		turnAt("s1", domain.RoleAssistant, "2026-03-01T10:00:02.000000Z", "opening reply"),
	}
	summaries := summarizeConversations(turns)
	require.Len(t, summaries, 1)
	s := summaries[0]
	require.Equal(t, "opening question", s.FirstMessage)
	require.Equal(t, "2026-03-01T10:00:01.000000Z", s.CreatedAt)
	require.Equal(t, "2026-03-01T10:00:04.000000Z", s.UpdatedAt)
}

func TestSummarizeConversations_NoUserTurnSentinel(t *testing.T) {
	turns := []domain.Turn{
		turnAt("s1", domain.RoleAssistant, "2026-03-01T10:00:01.000000Z", "unsolicited greeting"),
	}
	summaries := summarizeConversations(turns)
	require.Equal(t, "New conversation", summaries[0].FirstMessage)
}

func TestSummarizeConversations_DropsTurnsWithoutSession(t *testing.T) {
	turns := []domain.Turn{
		turnAt("", domain.RoleUser, "2026-03-01T10:00:01.000000Z", "orphan"),
		turnAt("s1", domain.RoleUser, "2026-03-01T10:00:02.000000Z", "kept"),
	}
	summaries := summarizeConversations(turns)
	require.Len(t, summaries, 1)
	require.Equal(t, 1, summaries[0].MessageCount)
}

func TestPreview_UsesFourMostRecentInChronologicalOrder(t *testing.T) {
	turns := []domain.Turn{
		turnAt("s1", domain.RoleUser, "2026-03-01T10:00:01.000000Z", "T1"),
		turnAt("s1", domain.RoleAssistant, "2026-03-01T10:00:02.000000Z", "T2"),
		turnAt("s1", domain.RoleUser, "2026-03-01T10:00:03.000000Z", "T3"),
		turnAt("s1", domain.RoleAssistant, "2026-03-01T10:00:04.000000Z", "T4"),
		turnAt("s1", domain.RoleUser, "2026-03-01T10:00:05.000000Z", "T5"),
	}
	summaries := summarizeConversations(turns)
	preview := summaries[0].Preview

	require.NotContains(t, preview, "T1")
	require.Equal(t, "🤖: T2 | 👤: T3 | 🤖: T4 | 👤: T5", preview)
}

func TestPreview_TruncatesSnippetsToThirtyRunes(t *testing.T) {
	long := strings.Repeat("x", 40)
	turns := []domain.Turn{
		turnAt("s1", domain.RoleUser, "2026-03-01T10:00:01.000000Z", long),
	}
	summaries := summarizeConversations(turns)
	require.Equal(t, "👤: "+strings.Repeat("x", 30), summaries[0].Preview)
}

func TestPreview_RuneSafeTruncation(t *testing.T) {
	long := strings.Repeat("あ", 40)
	turns := []domain.Turn{
		turnAt("s1", domain.RoleUser, "2026-03-01T10:00:01.000000Z", long),
	}
	summaries := summarizeConversations(turns)
	require.Equal(t, "👤: "+strings.Repeat("あ", 30), summaries[0].Preview)
}

func TestPreview_CapsTotalLengthWithEllipsis(t *testing.T) {
	var turns []domain.Turn
	for i := 0; i < 4; i++ {
		turns = append(turns, turnAt("s1", domain.RoleUser,
			fmt.Sprintf("2026-03-01T10:00:0%d.000000Z", i+1), strings.Repeat("y", 40)))
	}
	summaries := summarizeConversations(turns)
	preview := []rune(summaries[0].Preview)
	require.Len(t, preview, 150)
	require.Equal(t, "...", string(preview[147:]))
}

func TestPreview_SkipsEmptyContent(t *testing.T) {
	turns := []domain.Turn{
		turnAt("s1", domain.RoleUser, "2026-03-01T10:00:01.000000Z", ""),
		turnAt("s1", domain.RoleAssistant, "2026-03-01T10:00:02.000000Z", "reply"),
	}
	summaries := summarizeConversations(turns)
	require.Equal(t, "🤖: reply", summaries[0].Preview)
}

func TestSummarizeConversations_SameTimestampTurnsAllCounted(t *testing.T) {
	// concurrent writes can land on the same sort key; grouping and
	// counts must still be exact even if relative order is arbitrary
	ts := "2026-03-01T10:00:01.000000Z"
	turns := []domain.Turn{
		turnAt("s1", domain.RoleUser, ts, "a"),
		turnAt("s1", domain.RoleAssistant, ts, "b"),
	}
	summaries := summarizeConversations(turns)
	require.Equal(t, 2, summaries[0].MessageCount)
	require.Equal(t, ts, summaries[0].CreatedAt)
	require.Equal(t, ts, summaries[0].UpdatedAt)
}
