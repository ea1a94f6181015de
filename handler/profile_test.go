package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"genki-chat/internal/domain"
	"genki-chat/internal/usecase"
)

type stubProfileUseCase struct {
	profile domain.UserProfile
	err     error

	gotUser string
	savedIn usecase.ProfileInput
}

func (s *stubProfileUseCase) GetProfile(_ context.Context, userID string) (domain.UserProfile, error) {
	s.gotUser = userID
	return s.profile, s.err
}

func (s *stubProfileUseCase) SaveProfile(_ context.Context, userID string, in usecase.ProfileInput) (domain.UserProfile, error) {
	s.gotUser = userID
	s.savedIn = in
	return s.profile, s.err
}

func TestNewProfileHandler_ValidatesDependency(t *testing.T) {
	_, err := NewProfileHandler(nil)
	require.Error(t, err)
}

func TestProfileHandle_Get(t *testing.T) {
	uc := &stubProfileUseCase{profile: domain.UserProfile{
		UserID:         "user-1",
		Name:           "Kenji",
		AgeBracket:     "30s",
		ResponseLength: domain.ResponseMedium,
	}}
	h, err := NewProfileHandler(uc)
	require.NoError(t, err)

	resp, err := h.Handle(context.Background(), makeEvent(t, http.MethodGet, ""))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "user-1", uc.gotUser)

	out := parseBody[domain.UserProfile](t, resp.Body)
	require.Equal(t, "Kenji", out.Name)
	require.Equal(t, "30s", out.AgeBracket)
	require.Equal(t, domain.ResponseMedium, out.ResponseLength)
}

func TestProfileHandle_Save(t *testing.T) {
	uc := &stubProfileUseCase{profile: domain.UserProfile{UserID: "user-1", Name: "Kenji"}}
	h, err := NewProfileHandler(uc)
	require.NoError(t, err)

	body := `{"userName":"Kenji","age":"30s","occupation":"engineer","gender":"male","responseLength":"long"}`
	resp, err := h.Handle(context.Background(), makeEvent(t, http.MethodPost, body))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, usecase.ProfileInput{
		Name:           "Kenji",
		AgeBracket:     "30s",
		Occupation:     "engineer",
		Gender:         "male",
		ResponseLength: "long",
	}, uc.savedIn)

	out := parseBody[profileSavedResponse](t, resp.Body)
	require.Equal(t, "Kenji", out.Profile.Name)
	require.NotEmpty(t, out.Message)
}

func TestProfileHandle_InvalidBody(t *testing.T) {
	h, err := NewProfileHandler(&stubProfileUseCase{})
	require.NoError(t, err)

	resp, err := h.Handle(context.Background(), makeEvent(t, http.MethodPost, `not-json`))
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	out := parseBody[errorResponse](t, resp.Body)
	require.Equal(t, string(usecase.ErrorInvalidInput), out.Error)
}

func TestProfileHandle_ValidationErrorMapsTo400(t *testing.T) {
	uc := &stubProfileUseCase{err: &usecase.Error{Code: usecase.ErrorInvalidInput, Reason: "invalid_profile_field"}}
	h, err := NewProfileHandler(uc)
	require.NoError(t, err)

	resp, err := h.Handle(context.Background(), makeEvent(t, http.MethodPost, `{"age":"child"}`))
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestProfileHandle_MethodNotAllowed(t *testing.T) {
	h, err := NewProfileHandler(&stubProfileUseCase{})
	require.NoError(t, err)

	resp, err := h.Handle(context.Background(), makeEvent(t, http.MethodDelete, ""))
	require.NoError(t, err)
	require.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestProfileHandle_MissingAuth(t *testing.T) {
	h, err := NewProfileHandler(&stubProfileUseCase{})
	require.NoError(t, err)

	event := makeEvent(t, http.MethodGet, "")
	delete(event.Headers, "Authorization")
	resp, err := h.Handle(context.Background(), event)
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
