package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// dynamodbAPI is the minimal DynamoDB interface required by the stores.
// Defined here for testability; *dynamodb.Client satisfies it.
type dynamodbAPI interface {
	GetItem(ctx context.Context, in *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, in *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DeleteItem(ctx context.Context, in *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Query(ctx context.Context, in *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

// timestampLayout is fixed-width so lexicographic order of the range key
// equals chronological order. A variable-width fraction would sort whole
// seconds after their own subsecond siblings.
const timestampLayout = "2006-01-02T15:04:05.000000Z"

// nowUTC is a seam for tests that need deterministic timestamps.
var nowUTC = func() time.Time {
	return time.Now().UTC()
}

func strAttr(item map[string]types.AttributeValue, key string) (string, error) {
	v, ok := item[key]
	if !ok {
		return "", fmt.Errorf("repository: missing attribute %q", key)
	}
	s, ok := v.(*types.AttributeValueMemberS)
	if !ok {
		return "", fmt.Errorf("repository: attribute %q is not a string", key)
	}
	return s.Value, nil
}

func optStrAttr(item map[string]types.AttributeValue, key string) string {
	s, _ := strAttr(item, key)
	return s
}
