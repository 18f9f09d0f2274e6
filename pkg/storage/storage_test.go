package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return mr, client
}

func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	_, err := s.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Set(ctx, "cart-state", []byte(`{"items":[]}`)))
	got, err := s.Get(ctx, "cart-state")
	require.NoError(t, err)
	assert.Equal(t, `{"items":[]}`, string(got))

	require.NoError(t, s.Set(ctx, "cart-state", []byte(`{}`)))
	got, err = s.Get(ctx, "cart-state")
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(got))

	require.NoError(t, s.Delete(ctx, "cart-state"))
	_, err = s.Get(ctx, "cart-state")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Delete(ctx, "never-set"))
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestMemoryStore_CopiesValues(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	buf := []byte("abc")
	require.NoError(t, s.Set(ctx, "k", buf))
	buf[0] = 'x'

	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
}

func TestNamespace_IsolatesSessions(t *testing.T) {
	base := NewMemoryStore()
	ctx := context.Background()
	a := Namespace(base, "session-a")
	b := Namespace(base, "session-b")

	require.NoError(t, a.Set(ctx, "search-history", []byte("a")))
	_, err := b.Get(ctx, "search-history")
	assert.ErrorIs(t, err, ErrNotFound)

	raw, err := base.Get(ctx, "session-a:search-history")
	require.NoError(t, err)
	assert.Equal(t, "a", string(raw))
}

func TestRedisStore(t *testing.T) {
	_, client := setupTestRedis(t)
	exerciseStore(t, NewRedisStore(client, "test", 0))
}

func TestRedisStore_PrefixAndTTL(t *testing.T) {
	mr, client := setupTestRedis(t)
	s := NewRedisStore(client, "", time.Minute)

	require.NoError(t, s.Set(context.Background(), "k", []byte("v")))
	assert.True(t, mr.Exists("storefront:k"))
	assert.Equal(t, time.Minute, mr.TTL("storefront:k"))

	mr.FastForward(2 * time.Minute)
	_, err := s.Get(context.Background(), "k")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStore_Unavailable(t *testing.T) {
	mr, client := setupTestRedis(t)
	s := NewRedisStore(client, "test", 0)
	mr.Close()

	_, err := s.Get(context.Background(), "k")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotFound))
}

type mockDynamoDB struct {
	mock.Mock
}

func (m *mockDynamoDB) GetItem(ctx context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*dynamodb.GetItemOutput)
	return out, args.Error(1)
}

func (m *mockDynamoDB) PutItem(ctx context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*dynamodb.PutItemOutput)
	return out, args.Error(1)
}

func (m *mockDynamoDB) DeleteItem(ctx context.Context, in *dynamodb.DeleteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*dynamodb.DeleteItemOutput)
	return out, args.Error(1)
}

func TestDynamoDBStore_SetWritesValueAndExpiry(t *testing.T) {
	client := new(mockDynamoDB)
	s := NewDynamoDBStore(client, "sessions", time.Hour)
	s.now = func() time.Time { return time.Unix(1000, 0) }

	client.
		On("PutItem", mock.Anything, mock.MatchedBy(func(in *dynamodb.PutItemInput) bool {
			if in.TableName == nil || *in.TableName != "sessions" {
				return false
			}
			pk, ok := in.Item["pk"].(*types.AttributeValueMemberS)
			if !ok || pk.Value != "sess:cart-state" {
				return false
			}
			v, ok := in.Item["value"].(*types.AttributeValueMemberB)
			if !ok || string(v.Value) != "payload" {
				return false
			}
			exp, ok := in.Item["expires_at"].(*types.AttributeValueMemberN)
			return ok && exp.Value == "4600"
		})).
		Return(&dynamodb.PutItemOutput{}, nil).
		Once()

	require.NoError(t, s.Set(context.Background(), "sess:cart-state", []byte("payload")))
	client.AssertExpectations(t)
}

func TestDynamoDBStore_Get(t *testing.T) {
	client := new(mockDynamoDB)
	s := NewDynamoDBStore(client, "sessions", 0)
	s.now = func() time.Time { return time.Unix(2000, 0) }

	client.
		On("GetItem", mock.Anything, mock.MatchedBy(func(in *dynamodb.GetItemInput) bool {
			pk, ok := in.Key["pk"].(*types.AttributeValueMemberS)
			return ok && pk.Value == "live" && in.ConsistentRead != nil && *in.ConsistentRead
		})).
		Return(&dynamodb.GetItemOutput{Item: map[string]types.AttributeValue{
			"pk":         &types.AttributeValueMemberS{Value: "live"},
			"value":      &types.AttributeValueMemberB{Value: []byte("v")},
			"expires_at": &types.AttributeValueMemberN{Value: "3000"},
		}}, nil)

	client.
		On("GetItem", mock.Anything, mock.MatchedBy(func(in *dynamodb.GetItemInput) bool {
			pk, ok := in.Key["pk"].(*types.AttributeValueMemberS)
			return ok && pk.Value == "expired"
		})).
		Return(&dynamodb.GetItemOutput{Item: map[string]types.AttributeValue{
			"pk":         &types.AttributeValueMemberS{Value: "expired"},
			"value":      &types.AttributeValueMemberB{Value: []byte("old")},
			"expires_at": &types.AttributeValueMemberN{Value: "1500"},
		}}, nil)

	client.
		On("GetItem", mock.Anything, mock.MatchedBy(func(in *dynamodb.GetItemInput) bool {
			pk, ok := in.Key["pk"].(*types.AttributeValueMemberS)
			return ok && pk.Value == "absent"
		})).
		Return(&dynamodb.GetItemOutput{}, nil)

	got, err := s.Get(context.Background(), "live")
	require.NoError(t, err)
	assert.Equal(t, "v", string(got))

	_, err = s.Get(context.Background(), "expired")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.Get(context.Background(), "absent")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDynamoDBStore_PropagatesErrors(t *testing.T) {
	client := new(mockDynamoDB)
	s := NewDynamoDBStore(client, "sessions", 0)

	client.On("DeleteItem", mock.Anything, mock.Anything).
		Return(nil, errors.New("throttled"))

	err := s.Delete(context.Background(), "k")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "throttled")
}

func TestOpen_Memory(t *testing.T) {
	s, closeFn, err := Open(context.Background(), Config{Backend: BackendMemory})
	require.NoError(t, err)
	require.NotNil(t, closeFn)
	assert.IsType(t, &MemoryStore{}, s)
	assert.NoError(t, closeFn())
}

func TestOpen_Redis(t *testing.T) {
	mr, _ := setupTestRedis(t)

	s, closeFn, err := Open(context.Background(), Config{Backend: BackendRedis, RedisAddr: mr.Addr()})
	require.NoError(t, err)
	defer closeFn()
	exerciseStore(t, s)
}

func TestOpen_Unknown(t *testing.T) {
	_, _, err := Open(context.Background(), Config{Backend: "etcd"})
	assert.Error(t, err)
}
