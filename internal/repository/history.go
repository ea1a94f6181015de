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

// HistoryStore is an append-only turn log over a DynamoDB table keyed by
// (userId, timestamp). Turns are never updated; purges delete them one
// item at a time.
type HistoryStore struct {
	api       dynamodbAPI
	tableName string
}

// NewHistoryStore creates a HistoryStore over the given table.
func NewHistoryStore(api dynamodbAPI, tableName string) (*HistoryStore, error) {
	if api == nil {
		return nil, errors.New("repository: api must not be nil")
	}
	if strings.TrimSpace(tableName) == "" {
		return nil, errors.New("repository: table name must not be empty")
	}
	return &HistoryStore{api: api, tableName: tableName}, nil
}

// NewTurn constructs a Turn stamped with the current UTC time. The
// message id is a uniqueness aid, never an address.
func NewTurn(userID, sessionID string, role domain.Role, content string) domain.Turn {
	ts := nowUTC().Format(timestampLayout)
	return domain.Turn{
		UserID:    userID,
		Timestamp: ts,
		SessionID: sessionID,
		Role:      role,
		Content:   content,
		MessageID: fmt.Sprintf("%s_%s_%s", sessionID, ts, role),
	}
}

// Append persists a freshly stamped turn.
func (s *HistoryStore) Append(ctx context.Context, userID, sessionID string, role domain.Role, content string) error {
	if userID == "" || sessionID == "" {
		return errors.New("repository: Append: userID and sessionID are required")
	}

	_, err := s.api.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item:      turnItem(NewTurn(userID, sessionID, role, content)),
	})
	if err != nil {
		return fmt.Errorf("repository: Append: %w", err)
	}
	return nil
}

// ListByUser returns every turn for a user, newest first.
func (s *HistoryStore) ListByUser(ctx context.Context, userID string) ([]domain.Turn, error) {
	out, err := s.api.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.tableName),
		KeyConditionExpression: aws.String("userId = :uid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":uid": &types.AttributeValueMemberS{Value: userID},
		},
		ScanIndexForward: aws.Bool(false),
	})
	if err != nil {
		return nil, fmt.Errorf("repository: ListByUser query: %w", err)
	}
	return itemsToTurns(out.Items)
}

// ListBySession returns the turns of one session, oldest first. The
// session id is a non-key attribute, so this is a filtered partition
// query rather than a key-range read.
func (s *HistoryStore) ListBySession(ctx context.Context, userID, sessionID string) ([]domain.Turn, error) {
	out, err := s.api.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.tableName),
		KeyConditionExpression: aws.String("userId = :uid"),
		FilterExpression:       aws.String("sessionId = :sid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":uid": &types.AttributeValueMemberS{Value: userID},
			":sid": &types.AttributeValueMemberS{Value: sessionID},
		},
		ScanIndexForward: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("repository: ListBySession query: %w", err)
	}
	return itemsToTurns(out.Items)
}

// DeleteSession removes every turn of one session. Deleting a session
// with no turns is a successful no-op. Individual delete failures are
// counted and the remaining deletes still attempted.
func (s *HistoryStore) DeleteSession(ctx context.Context, userID, sessionID string) (domain.DeleteResult, error) {
	turns, err := s.ListBySession(ctx, userID, sessionID)
	if err != nil {
		return domain.DeleteResult{}, fmt.Errorf("repository: DeleteSession: %w", err)
	}
	return s.deleteTurns(ctx, userID, turns), nil
}

// DeleteAllForUser removes the user's entire history with the same
// best-effort semantics as DeleteSession.
func (s *HistoryStore) DeleteAllForUser(ctx context.Context, userID string) (domain.DeleteResult, error) {
	turns, err := s.ListByUser(ctx, userID)
	if err != nil {
		return domain.DeleteResult{}, fmt.Errorf("repository: DeleteAllForUser: %w", err)
	}
	return s.deleteTurns(ctx, userID, turns), nil
}

func (s *HistoryStore) deleteTurns(ctx context.Context, userID string, turns []domain.Turn) domain.DeleteResult {
	var res domain.DeleteResult
	for _, turn := range turns {
		_, err := s.api.DeleteItem(ctx, &dynamodb.DeleteItemInput{
			TableName: aws.String(s.tableName),
			Key: map[string]types.AttributeValue{
				"userId":    &types.AttributeValueMemberS{Value: userID},
				"timestamp": &types.AttributeValueMemberS{Value: turn.Timestamp},
			},
		})
		if err != nil {
			res.Failed++
			continue
		}
		res.Deleted++
	}
	return res
}

func turnItem(t domain.Turn) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"userId":    &types.AttributeValueMemberS{Value: t.UserID},
		"timestamp": &types.AttributeValueMemberS{Value: t.Timestamp},
		"sessionId": &types.AttributeValueMemberS{Value: t.SessionID},
		"role":      &types.AttributeValueMemberS{Value: string(t.Role)},
		"content":   &types.AttributeValueMemberS{Value: t.Content},
		"messageId": &types.AttributeValueMemberS{Value: t.MessageID},
	}
}

func itemsToTurns(items []map[string]types.AttributeValue) ([]domain.Turn, error) {
	turns := make([]domain.Turn, 0, len(items))
	for _, item := range items {
		turn, err := itemToTurn(item)
		if err != nil {
			return nil, fmt.Errorf("repository: decode turn: %w", err)
		}
		turns = append(turns, turn)
	}
	return turns, nil
}

func itemToTurn(item map[string]types.AttributeValue) (domain.Turn, error) {
	userID, err := strAttr(item, "userId")
	if err != nil {
		return domain.Turn{}, err
	}
	ts, err := strAttr(item, "timestamp")
	if err != nil {
		return domain.Turn{}, err
	}
	role, err := strAttr(item, "role")
	if err != nil {
		return domain.Turn{}, err
	}
	content, err := strAttr(item, "content")
	if err != nil {
		return domain.Turn{}, err
	}

	return domain.Turn{
		UserID:    userID,
		Timestamp: ts,
		SessionID: optStrAttr(item, "sessionId"),
		Role:      domain.Role(role),
		Content:   content,
		MessageID: optStrAttr(item, "messageId"),
	}, nil
}
