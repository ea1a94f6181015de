package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/aws/aws-lambda-go/events"

	"genki-chat/internal/auth"
	"genki-chat/internal/domain"
)

type historyUseCase interface {
	ListConversations(ctx context.Context, userID string) ([]domain.ConversationSummary, error)
	SessionMessages(ctx context.Context, userID, sessionID string) ([]domain.Turn, error)
	DeleteSession(ctx context.Context, userID, sessionID string) (domain.DeleteResult, error)
	DeleteAllHistory(ctx context.Context, userID string) (domain.DeleteResult, error)
}

// HistoryHandler serves conversation listing, session reads and purges.
type HistoryHandler struct {
	uc historyUseCase
}

func NewHistoryHandler(uc historyUseCase) (*HistoryHandler, error) {
	if uc == nil {
		return nil, errors.New("handler: history usecase must not be nil")
	}
	return &HistoryHandler{uc: uc}, nil
}

type conversationsResponse struct {
	Conversations []domain.ConversationSummary `json:"conversations"`
	TotalCount    int                          `json:"totalCount"`
}

type sessionMessagesResponse struct {
	SessionID    string        `json:"sessionId"`
	Messages     []domain.Turn `json:"messages"`
	MessageCount int           `json:"messageCount"`
}

type deleteResponse struct {
	Message      string `json:"message"`
	DeletedCount int    `json:"deletedCount"`
}

func (h *HistoryHandler) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	corrID := correlationID(req.Headers)

	if req.HTTPMethod == http.MethodOptions {
		return respondOptions(corrID), nil
	}

	identity, err := auth.FromHeaders(req.Headers)
	if err != nil {
		return respondError(unauthenticated(err), corrID), nil
	}

	sessionID := sessionIDFrom(req)

	switch req.HTTPMethod {
	case http.MethodGet:
		if sessionID != "" {
			return h.getSession(ctx, identity.UserID, sessionID, corrID), nil
		}
		return h.listConversations(ctx, identity.UserID, corrID), nil
	case http.MethodDelete:
		if sessionID != "" {
			return h.deleteSession(ctx, identity.UserID, sessionID, corrID), nil
		}
		return h.deleteAll(ctx, identity.UserID, corrID), nil
	default:
		return respondMethodNotAllowed(req.HTTPMethod, corrID), nil
	}
}

// sessionIDFrom accepts the session id as a path parameter
// (/history/{sessionId}) or a query parameter (?sessionId=) since both
// route shapes exist in deployments.
func sessionIDFrom(req events.APIGatewayProxyRequest) string {
	if id := req.PathParameters["sessionId"]; id != "" {
		return id
	}
	return req.QueryStringParameters["sessionId"]
}

func (h *HistoryHandler) listConversations(ctx context.Context, userID, corrID string) events.APIGatewayProxyResponse {
	summaries, err := h.uc.ListConversations(ctx, userID)
	if err != nil {
		return respondError(err, corrID)
	}
	return respond(http.StatusOK, corrID, conversationsResponse{
		Conversations: summaries,
		TotalCount:    len(summaries),
	})
}

func (h *HistoryHandler) getSession(ctx context.Context, userID, sessionID, corrID string) events.APIGatewayProxyResponse {
	turns, err := h.uc.SessionMessages(ctx, userID, sessionID)
	if err != nil {
		return respondError(err, corrID)
	}
	return respond(http.StatusOK, corrID, sessionMessagesResponse{
		SessionID:    sessionID,
		Messages:     turns,
		MessageCount: len(turns),
	})
}

func (h *HistoryHandler) deleteSession(ctx context.Context, userID, sessionID, corrID string) events.APIGatewayProxyResponse {
	res, err := h.uc.DeleteSession(ctx, userID, sessionID)
	if err != nil {
		return respondError(err, corrID)
	}
	return respond(http.StatusOK, corrID, deleteResponse{
		Message:      "session deleted",
		DeletedCount: res.Deleted,
	})
}

func (h *HistoryHandler) deleteAll(ctx context.Context, userID, corrID string) events.APIGatewayProxyResponse {
	res, err := h.uc.DeleteAllHistory(ctx, userID)
	if err != nil {
		return respondError(err, corrID)
	}
	return respond(http.StatusOK, corrID, deleteResponse{
		Message:      "all history deleted",
		DeletedCount: res.Deleted,
	})
}
