package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"

	"genki-chat/internal/domain"
)

// ProfileStore is the persistence surface the profile service consumes.
type ProfileStore interface {
	Get(ctx context.Context, userID string) (domain.UserProfile, bool, error)
	Put(ctx context.Context, p domain.UserProfile) error
}

// ProfileInput carries the writable profile fields. Validation bounds
// the free-text fields and pins the enums; responseLength is the one
// field that is coerced rather than rejected.
type ProfileInput struct {
	Name           string `validate:"max=50"`
	AgeBracket     string `validate:"omitempty,oneof=10s 20s 30s 40s 50s 60s+"`
	Occupation     string `validate:"max=50"`
	Gender         string `validate:"omitempty,oneof=male female other prefer_not_to_say"`
	ResponseLength string
}

// ProfileService validates and persists user profiles.
type ProfileService struct {
	store    ProfileStore
	validate *validator.Validate
}

func NewProfileService(store ProfileStore) (*ProfileService, error) {
	if store == nil {
		return nil, errors.New("usecase: profile store must not be nil")
	}
	return &ProfileService{store: store, validate: validator.New()}, nil
}

// GetProfile returns the stored profile, or empty defaults when none
// exists. Absence is not an error.
func (s *ProfileService) GetProfile(ctx context.Context, userID string) (domain.UserProfile, error) {
	profile, found, err := s.store.Get(ctx, userID)
	if err != nil {
		return domain.UserProfile{}, newError(ErrorInternal, "profile_read_error", err)
	}
	if !found {
		return domain.UserProfile{
			UserID:         userID,
			ResponseLength: domain.ResponseMedium,
		}, nil
	}
	return profile, nil
}

// SaveProfile validates in, coerces the response-length preference, and
// overwrites the stored record. The original creation time survives
// the overwrite.
func (s *ProfileService) SaveProfile(ctx context.Context, userID string, in ProfileInput) (domain.UserProfile, error) {
	if err := s.validate.Struct(in); err != nil {
		return domain.UserProfile{}, newError(ErrorInvalidInput, "invalid_profile_field", err)
	}

	existing, found, err := s.store.Get(ctx, userID)
	if err != nil {
		return domain.UserProfile{}, newError(ErrorInternal, "profile_read_error", err)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	profile := domain.UserProfile{
		UserID:         userID,
		Name:           in.Name,
		AgeBracket:     in.AgeBracket,
		Occupation:     in.Occupation,
		Gender:         in.Gender,
		ResponseLength: domain.NormalizeResponseLength(in.ResponseLength),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if found && existing.CreatedAt != "" {
		profile.CreatedAt = existing.CreatedAt
	}

	if err := s.store.Put(ctx, profile); err != nil {
		return domain.UserProfile{}, newError(ErrorInternal, "profile_write_error", err)
	}
	return profile, nil
}
