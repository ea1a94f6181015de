package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aws/aws-lambda-go/events"

	"genki-chat/internal/auth"
	"genki-chat/internal/domain"
	"genki-chat/internal/usecase"
)

type profileUseCase interface {
	GetProfile(ctx context.Context, userID string) (domain.UserProfile, error)
	SaveProfile(ctx context.Context, userID string, in usecase.ProfileInput) (domain.UserProfile, error)
}

// ProfileHandler serves profile reads and writes.
type ProfileHandler struct {
	uc profileUseCase
}

func NewProfileHandler(uc profileUseCase) (*ProfileHandler, error) {
	if uc == nil {
		return nil, errors.New("handler: profile usecase must not be nil")
	}
	return &ProfileHandler{uc: uc}, nil
}

type profileRequest struct {
	Name           string `json:"userName"`
	AgeBracket     string `json:"age"`
	Occupation     string `json:"occupation"`
	Gender         string `json:"gender"`
	ResponseLength string `json:"responseLength"`
}

type profileSavedResponse struct {
	Message string             `json:"message"`
	Profile domain.UserProfile `json:"profile"`
}

func (h *ProfileHandler) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	corrID := correlationID(req.Headers)

	if req.HTTPMethod == http.MethodOptions {
		return respondOptions(corrID), nil
	}

	identity, err := auth.FromHeaders(req.Headers)
	if err != nil {
		return respondError(unauthenticated(err), corrID), nil
	}

	switch req.HTTPMethod {
	case http.MethodGet:
		return h.getProfile(ctx, identity.UserID, corrID), nil
	case http.MethodPost:
		return h.saveProfile(ctx, identity.UserID, req.Body, corrID), nil
	default:
		return respondMethodNotAllowed(req.HTTPMethod, corrID), nil
	}
}

func (h *ProfileHandler) getProfile(ctx context.Context, userID, corrID string) events.APIGatewayProxyResponse {
	profile, err := h.uc.GetProfile(ctx, userID)
	if err != nil {
		return respondError(err, corrID)
	}
	return respond(http.StatusOK, corrID, profile)
}

func (h *ProfileHandler) saveProfile(ctx context.Context, userID, body, corrID string) events.APIGatewayProxyResponse {
	var in profileRequest
	if err := json.Unmarshal([]byte(body), &in); err != nil {
		return respondError(&usecase.Error{Code: usecase.ErrorInvalidInput, Reason: "invalid_body", Err: err}, corrID)
	}

	profile, err := h.uc.SaveProfile(ctx, userID, usecase.ProfileInput{
		Name:           in.Name,
		AgeBracket:     in.AgeBracket,
		Occupation:     in.Occupation,
		Gender:         in.Gender,
		ResponseLength: in.ResponseLength,
	})
	if err != nil {
		return respondError(err, corrID)
	}
	return respond(http.StatusOK, corrID, profileSavedResponse{
		Message: "profile saved",
		Profile: profile,
	})
}
