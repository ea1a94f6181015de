package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aws/aws-lambda-go/events"

	"genki-chat/internal/auth"
	"genki-chat/internal/usecase"
)

type chatUseCase interface {
	Chat(ctx context.Context, in usecase.ChatInput) (usecase.ChatOutput, error)
}

// ChatHandler serves the chat-turn endpoint.
type ChatHandler struct {
	uc chatUseCase
}

func NewChatHandler(uc chatUseCase) (*ChatHandler, error) {
	if uc == nil {
		return nil, errors.New("handler: chat usecase must not be nil")
	}
	return &ChatHandler{uc: uc}, nil
}

type chatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"sessionId"`
}

type chatResponse struct {
	Response  string `json:"response"`
	SessionID string `json:"sessionId"`
	Timestamp string `json:"timestamp"`
}

func (h *ChatHandler) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	corrID := correlationID(req.Headers)

	if req.HTTPMethod == http.MethodOptions {
		return respondOptions(corrID), nil
	}

	identity, err := auth.FromHeaders(req.Headers)
	if err != nil {
		return respondError(unauthenticated(err), corrID), nil
	}

	var body chatRequest
	if err := json.Unmarshal([]byte(req.Body), &body); err != nil {
		return respondError(&usecase.Error{Code: usecase.ErrorInvalidInput, Reason: "invalid_body", Err: err}, corrID), nil
	}

	out, err := h.uc.Chat(ctx, usecase.ChatInput{
		UserID:    identity.UserID,
		Message:   body.Message,
		SessionID: body.SessionID,
	})
	if err != nil {
		return respondError(err, corrID), nil
	}

	return respond(http.StatusOK, corrID, chatResponse{
		Response:  out.Reply,
		SessionID: out.SessionID,
		Timestamp: out.Timestamp,
	}), nil
}
