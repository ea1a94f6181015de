package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"genki-chat/internal/domain"
)

// HistoryBrowser is the turn-log surface the history service consumes.
type HistoryBrowser interface {
	ListByUser(ctx context.Context, userID string) ([]domain.Turn, error)
	ListBySession(ctx context.Context, userID, sessionID string) ([]domain.Turn, error)
	DeleteSession(ctx context.Context, userID, sessionID string) (domain.DeleteResult, error)
	DeleteAllForUser(ctx context.Context, userID string) (domain.DeleteResult, error)
}

// HistoryService serves conversation listing, session reads and purges.
type HistoryService struct {
	store HistoryBrowser
}

func NewHistoryService(store HistoryBrowser) (*HistoryService, error) {
	if store == nil {
		return nil, errors.New("usecase: history store must not be nil")
	}
	return &HistoryService{store: store}, nil
}

// ListConversations returns per-session summaries of the user's whole
// history, newest activity first.
func (s *HistoryService) ListConversations(ctx context.Context, userID string) ([]domain.ConversationSummary, error) {
	turns, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, newError(ErrorInternal, "history_query_error", err)
	}
	return summarizeConversations(turns), nil
}

// SessionMessages returns one session's turns in chronological order.
func (s *HistoryService) SessionMessages(ctx context.Context, userID, sessionID string) ([]domain.Turn, error) {
	if sessionID == "" {
		return nil, newError(ErrorInvalidInput, "empty_session_id", nil)
	}
	turns, err := s.store.ListBySession(ctx, userID, sessionID)
	if err != nil {
		return nil, newError(ErrorInternal, "history_query_error", err)
	}
	return turns, nil
}

// DeleteSession purges one session. A session with no turns deletes
// successfully; a partially failed purge is an error carrying the
// counts of what did and did not go.
func (s *HistoryService) DeleteSession(ctx context.Context, userID, sessionID string) (domain.DeleteResult, error) {
	if sessionID == "" {
		return domain.DeleteResult{}, newError(ErrorInvalidInput, "empty_session_id", nil)
	}
	res, err := s.store.DeleteSession(ctx, userID, sessionID)
	if err != nil {
		return res, newError(ErrorInternal, "history_delete_error", err)
	}
	if res.Failed > 0 {
		slog.Error("session purge incomplete", "userId", userID, "sessionId", sessionID, "deleted", res.Deleted, "failed", res.Failed)
		return res, newError(ErrorInternal, "history_delete_incomplete", fmt.Errorf("%d of %d deletes failed", res.Failed, res.Deleted+res.Failed))
	}
	return res, nil
}

// DeleteAllHistory purges the user's entire turn log with the same
// semantics as DeleteSession.
func (s *HistoryService) DeleteAllHistory(ctx context.Context, userID string) (domain.DeleteResult, error) {
	res, err := s.store.DeleteAllForUser(ctx, userID)
	if err != nil {
		return res, newError(ErrorInternal, "history_delete_error", err)
	}
	if res.Failed > 0 {
		slog.Error("history purge incomplete", "userId", userID, "deleted", res.Deleted, "failed", res.Failed)
		return res, newError(ErrorInternal, "history_delete_incomplete", fmt.Errorf("%d of %d deletes failed", res.Failed, res.Deleted+res.Failed))
	}
	return res, nil
}
