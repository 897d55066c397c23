package s3

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/hupe1980/clustergo/blobstore"
)

// ModelRegistry tracks published model versions in DynamoDB while the
// artifacts themselves live in any blobstore (typically S3). DynamoDB
// supplies the atomic compare-and-swap that plain object storage lacks,
// so multiple publishers can coordinate without clobbering each other.
//
// Table schema:
//   - Partition key: model_name (string)
//   - Sort key: version (number) - monotonically increasing
//
// Create the table with:
//
//	aws dynamodb create-table \
//	  --table-name clustergo-models \
//	  --attribute-definitions AttributeName=model_name,AttributeType=S AttributeName=version,AttributeType=N \
//	  --key-schema AttributeName=model_name,KeyType=HASH AttributeName=version,KeyType=RANGE \
//	  --billing-mode PAY_PER_REQUEST
type ModelRegistry struct {
	artifacts blobstore.BlobStore
	ddbClient DDBClient
	tableName string
}

// DDBClient is the interface for DynamoDB operations.
type DDBClient interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

// ErrConcurrentPublish is returned when another publisher claimed the
// same version first.
var ErrConcurrentPublish = errors.New("concurrent publish detected")

// NewModelRegistry creates a registry over the given artifact store and
// DynamoDB table.
func NewModelRegistry(artifacts blobstore.BlobStore, ddbClient DDBClient, tableName string) *ModelRegistry {
	return &ModelRegistry{
		artifacts: artifacts,
		ddbClient: ddbClient,
		tableName: tableName,
	}
}

// Publish stores the artifact bytes under a versioned key and atomically
// records the new version in DynamoDB. Returns the version assigned.
func (r *ModelRegistry) Publish(ctx context.Context, modelName string, artifact []byte) (uint64, error) {
	current, _, err := r.latestVersion(ctx, modelName)
	if err != nil {
		return 0, err
	}
	next := current + 1
	key := versionedKey(modelName, next)

	if err := r.artifacts.Put(ctx, key, artifact); err != nil {
		return 0, fmt.Errorf("store artifact: %w", err)
	}

	// Conditional put: only succeed if this version doesn't exist yet.
	_, err = r.ddbClient.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item: map[string]types.AttributeValue{
			"model_name":   &types.AttributeValueMemberS{Value: modelName},
			"version":      &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", next)},
			"artifact_key": &types.AttributeValueMemberS{Value: key},
		},
		ConditionExpression: aws.String("attribute_not_exists(version)"),
	})
	if err != nil {
		var condErr *types.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			return 0, ErrConcurrentPublish
		}
		return 0, fmt.Errorf("commit version to DynamoDB: %w", err)
	}

	return next, nil
}

// Latest fetches the most recently published artifact for the model.
// Returns blobstore.ErrNotFound when nothing has been published.
func (r *ModelRegistry) Latest(ctx context.Context, modelName string) ([]byte, uint64, error) {
	version, key, err := r.latestVersion(ctx, modelName)
	if err != nil {
		return nil, 0, err
	}
	if version == 0 {
		return nil, 0, blobstore.ErrNotFound
	}

	b, err := r.artifacts.Open(ctx, key)
	if err != nil {
		return nil, 0, err
	}
	defer func() { _ = b.Close() }()

	data, err := blobstore.ReadAll(ctx, b)
	if err != nil {
		return nil, 0, err
	}
	return data, version, nil
}

// latestVersion queries DynamoDB for the highest committed version.
// A zero version means the model was never published.
func (r *ModelRegistry) latestVersion(ctx context.Context, modelName string) (uint64, string, error) {
	resp, err := r.ddbClient.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		KeyConditionExpression: aws.String("model_name = :name"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":name": &types.AttributeValueMemberS{Value: modelName},
		},
		ScanIndexForward: aws.Bool(false), // descending, newest first
		Limit:            aws.Int32(1),
	})
	if err != nil {
		return 0, "", fmt.Errorf("query DynamoDB: %w", err)
	}

	if len(resp.Items) == 0 {
		return 0, "", nil
	}

	item := resp.Items[0]
	versionAttr, ok := item["version"].(*types.AttributeValueMemberN)
	if !ok {
		return 0, "", errors.New("invalid version attribute in DynamoDB")
	}
	keyAttr, ok := item["artifact_key"].(*types.AttributeValueMemberS)
	if !ok {
		return 0, "", errors.New("invalid artifact_key attribute in DynamoDB")
	}

	var version uint64
	if _, err := fmt.Sscanf(versionAttr.Value, "%d", &version); err != nil {
		return 0, "", fmt.Errorf("parse version: %w", err)
	}

	return version, keyAttr.Value, nil
}

func versionedKey(modelName string, version uint64) string {
	return fmt.Sprintf("%s/v%06d.model", modelName, version)
}
