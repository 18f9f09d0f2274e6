package storage

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DynamoDBAPI is the subset of the DynamoDB client used by DynamoDBStore
type DynamoDBAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
}

const (
	attrKey       = "pk"
	attrValue     = "value"
	attrExpiresAt = "expires_at"
)

// DynamoDBStore keeps one item per key: pk (S), value (B) and, when a ttl is
// configured, expires_at (N, epoch seconds) for the table's TTL attribute.
type DynamoDBStore struct {
	client DynamoDBAPI
	table  string
	ttl    time.Duration
	now    func() time.Time
}

// NewDynamoDBStore creates a DynamoDB-backed store
func NewDynamoDBStore(client DynamoDBAPI, table string, ttl time.Duration) *DynamoDBStore {
	return &DynamoDBStore{
		client: client,
		table:  table,
		ttl:    ttl,
		now:    time.Now,
	}
}

func (s *DynamoDBStore) itemKey(key string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		attrKey: &types.AttributeValueMemberS{Value: key},
	}
}

// Get reads a value with a strongly consistent read. Items past their expiry
// are reported missing even before DynamoDB reaps them.
func (s *DynamoDBStore) Get(ctx context.Context, key string) ([]byte, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(s.table),
		Key:            s.itemKey(key),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("dynamodb get %s: %w", key, err)
	}
	if out == nil || len(out.Item) == 0 {
		return nil, ErrNotFound
	}

	if exp, ok := out.Item[attrExpiresAt].(*types.AttributeValueMemberN); ok {
		secs, err := strconv.ParseInt(exp.Value, 10, 64)
		if err == nil && secs <= s.now().Unix() {
			return nil, ErrNotFound
		}
	}

	v, ok := out.Item[attrValue].(*types.AttributeValueMemberB)
	if !ok {
		return nil, ErrNotFound
	}
	return v.Value, nil
}

// Set writes a value
func (s *DynamoDBStore) Set(ctx context.Context, key string, value []byte) error {
	item := s.itemKey(key)
	item[attrValue] = &types.AttributeValueMemberB{Value: value}
	if s.ttl > 0 {
		item[attrExpiresAt] = &types.AttributeValueMemberN{
			Value: strconv.FormatInt(s.now().Add(s.ttl).Unix(), 10),
		}
	}

	if _, err := s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      item,
	}); err != nil {
		return fmt.Errorf("dynamodb put %s: %w", key, err)
	}
	return nil
}

// Delete removes a key
func (s *DynamoDBStore) Delete(ctx context.Context, key string) error {
	if _, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.table),
		Key:       s.itemKey(key),
	}); err != nil {
		return fmt.Errorf("dynamodb delete %s: %w", key, err)
	}
	return nil
}
