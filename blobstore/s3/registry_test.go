package s3

import (
	"context"
	"fmt"
	"sort"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/hupe1980/clustergo/blobstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDDB implements DDBClient against an in-memory version table.
type fakeDDB struct {
	// items[model_name] maps version -> artifact_key
	items map[string]map[uint64]string
	// failNextPut simulates a lost conditional write race.
	failNextPut bool
}

func newFakeDDB() *fakeDDB {
	return &fakeDDB{items: make(map[string]map[uint64]string)}
}

func (f *fakeDDB) PutItem(_ context.Context, params *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	if f.failNextPut {
		f.failNextPut = false
		return nil, &types.ConditionalCheckFailedException{}
	}

	name := params.Item["model_name"].(*types.AttributeValueMemberS).Value
	key := params.Item["artifact_key"].(*types.AttributeValueMemberS).Value
	var version uint64
	fmt.Sscanf(params.Item["version"].(*types.AttributeValueMemberN).Value, "%d", &version)

	if f.items[name] == nil {
		f.items[name] = make(map[uint64]string)
	}
	if _, exists := f.items[name][version]; exists {
		return nil, &types.ConditionalCheckFailedException{}
	}
	f.items[name][version] = key
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDDB) Query(_ context.Context, params *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	name := params.ExpressionAttributeValues[":name"].(*types.AttributeValueMemberS).Value

	versions := make([]uint64, 0, len(f.items[name]))
	for v := range f.items[name] {
		versions = append(versions, v)
	}
	if len(versions) == 0 {
		return &dynamodb.QueryOutput{}, nil
	}
	sort.Slice(versions, func(i, j int) bool { return versions[i] > versions[j] })

	latest := versions[0]
	return &dynamodb.QueryOutput{
		Items: []map[string]types.AttributeValue{
			{
				"model_name":   &types.AttributeValueMemberS{Value: name},
				"version":      &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", latest)},
				"artifact_key": &types.AttributeValueMemberS{Value: f.items[name][latest]},
			},
		},
	}, nil
}

func TestModelRegistryPublishLatest(t *testing.T) {
	ctx := context.Background()
	registry := NewModelRegistry(blobstore.NewMemoryStore(), newFakeDDB(), "clustergo-models")

	v, err := registry.Publish(ctx, "iris", []byte("artifact-v1"))
	require.NoError(t, err)
	assert.Equal(t, uint64(1), v)

	v, err = registry.Publish(ctx, "iris", []byte("artifact-v2"))
	require.NoError(t, err)
	assert.Equal(t, uint64(2), v)

	data, version, err := registry.Latest(ctx, "iris")
	require.NoError(t, err)
	assert.Equal(t, uint64(2), version)
	assert.Equal(t, []byte("artifact-v2"), data)
}

func TestModelRegistryUnpublished(t *testing.T) {
	ctx := context.Background()
	registry := NewModelRegistry(blobstore.NewMemoryStore(), newFakeDDB(), "clustergo-models")

	_, _, err := registry.Latest(ctx, "nope")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}

func TestModelRegistryConcurrentPublish(t *testing.T) {
	ctx := context.Background()
	ddb := newFakeDDB()
	registry := NewModelRegistry(blobstore.NewMemoryStore(), ddb, "clustergo-models")

	ddb.failNextPut = true
	_, err := registry.Publish(ctx, "iris", []byte("artifact"))
	assert.ErrorIs(t, err, ErrConcurrentPublish)
}

func TestModelRegistryIsolatesModels(t *testing.T) {
	ctx := context.Background()
	registry := NewModelRegistry(blobstore.NewMemoryStore(), newFakeDDB(), "clustergo-models")

	_, err := registry.Publish(ctx, "iris", []byte("iris-data"))
	require.NoError(t, err)
	_, err = registry.Publish(ctx, "wine", []byte("wine-data"))
	require.NoError(t, err)

	data, version, err := registry.Latest(ctx, "wine")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), version)
	assert.Equal(t, []byte("wine-data"), data)
}

func TestStripPrefix(t *testing.T) {
	assert.Equal(t, "a.model", stripPrefix("models/a.model", "models"))
	assert.Equal(t, "a.model", stripPrefix("a.model", ""))
	assert.Equal(t, "sub/a.model", stripPrefix("models/sub/a.model", "models"))
}
