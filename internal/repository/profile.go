package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"genki-chat/internal/domain"
)

// ProfileStore persists user profiles in a DynamoDB table keyed by
// userId. Saves overwrite the whole record.
type ProfileStore struct {
	api       dynamodbAPI
	tableName string
}

// NewProfileStore creates a ProfileStore over the given table.
func NewProfileStore(api dynamodbAPI, tableName string) (*ProfileStore, error) {
	if api == nil {
		return nil, errors.New("repository: api must not be nil")
	}
	if strings.TrimSpace(tableName) == "" {
		return nil, errors.New("repository: table name must not be empty")
	}
	return &ProfileStore{api: api, tableName: tableName}, nil
}

// Get returns the stored profile and whether one exists. A missing
// profile is not an error.
func (s *ProfileStore) Get(ctx context.Context, userID string) (domain.UserProfile, bool, error) {
	out, err := s.api.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.tableName),
		Key: map[string]types.AttributeValue{
			"userId": &types.AttributeValueMemberS{Value: userID},
		},
	})
	if err != nil {
		return domain.UserProfile{}, false, fmt.Errorf("repository: Get profile: %w", err)
	}
	if out == nil || len(out.Item) == 0 {
		return domain.UserProfile{}, false, nil
	}
	return itemToProfile(out.Item), true, nil
}

// Put overwrites the user's profile.
func (s *ProfileStore) Put(ctx context.Context, p domain.UserProfile) error {
	if p.UserID == "" {
		return errors.New("repository: Put profile: user id is required")
	}

	_, err := s.api.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item: map[string]types.AttributeValue{
			"userId":         &types.AttributeValueMemberS{Value: p.UserID},
			"userName":       &types.AttributeValueMemberS{Value: p.Name},
			"age":            &types.AttributeValueMemberS{Value: p.AgeBracket},
			"occupation":     &types.AttributeValueMemberS{Value: p.Occupation},
			"gender":         &types.AttributeValueMemberS{Value: p.Gender},
			"responseLength": &types.AttributeValueMemberS{Value: string(p.ResponseLength)},
			"createdAt":      &types.AttributeValueMemberS{Value: p.CreatedAt},
			"updatedAt":      &types.AttributeValueMemberS{Value: p.UpdatedAt},
		},
	})
	if err != nil {
		return fmt.Errorf("repository: Put profile: %w", err)
	}
	return nil
}

func itemToProfile(item map[string]types.AttributeValue) domain.UserProfile {
	return domain.UserProfile{
		UserID:         optStrAttr(item, "userId"),
		Name:           optStrAttr(item, "userName"),
		AgeBracket:     optStrAttr(item, "age"),
		Occupation:     optStrAttr(item, "occupation"),
		Gender:         optStrAttr(item, "gender"),
		ResponseLength: domain.NormalizeResponseLength(optStrAttr(item, "responseLength")),
		CreatedAt:      optStrAttr(item, "createdAt"),
		UpdatedAt:      optStrAttr(item, "updatedAt"),
	}
}
