package s3

import (
	"bytes"
	"context"
	"io"
	"path"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/hupe1980/clustergo/blobstore"
)

// DDBStore implements blobstore.BlobStore on a single DynamoDB table.
// Model artifacts are small (a K x 2 centroid table plus labels), far
// below DynamoDB's 400 KB item limit, so each artifact is one item.
//
// Table schema:
//   - Partition key: artifact_name (string)
//   - Attribute: artifact_data (binary)
//
// Create the table with:
//
//	aws dynamodb create-table \
//	  --table-name clustergo-artifacts \
//	  --attribute-definitions AttributeName=artifact_name,AttributeType=S \
//	  --key-schema AttributeName=artifact_name,KeyType=HASH \
//	  --billing-mode PAY_PER_REQUEST
type DDBStore struct {
	client    DDBItemClient
	tableName string
	prefix    string
}

// DDBItemClient is the interface for the DynamoDB item operations the
// store needs.
type DDBItemClient interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

// NewDDBStore creates a DynamoDB-backed blob store on the given table.
// rootPrefix is prepended to all artifact names (e.g. "models/").
func NewDDBStore(client DDBItemClient, tableName, rootPrefix string) *DDBStore {
	return &DDBStore{
		client:    client,
		tableName: tableName,
		prefix:    rootPrefix,
	}
}

func (s *DDBStore) key(name string) string {
	return path.Join(s.prefix, name)
}

// Open opens a blob for reading.
func (s *DDBStore) Open(ctx context.Context, name string) (blobstore.Blob, error) {
	resp, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.tableName),
		Key: map[string]types.AttributeValue{
			"artifact_name": &types.AttributeValueMemberS{Value: s.key(name)},
		},
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Item) == 0 {
		return nil, blobstore.ErrNotFound
	}

	dataAttr, ok := resp.Item["artifact_data"].(*types.AttributeValueMemberB)
	if !ok {
		return nil, blobstore.ErrNotFound
	}
	return &ddbBlob{data: dataAttr.Value}, nil
}

// Create creates a new writable blob. The item is written in one
// PutItem call on Close.
func (s *DDBStore) Create(ctx context.Context, name string) (blobstore.WritableBlob, error) {
	return &ddbWritableBlob{ctx: ctx, store: s, name: name}, nil
}

// Put writes a blob as one item.
func (s *DDBStore) Put(ctx context.Context, name string, data []byte) error {
	_, err := s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item: map[string]types.AttributeValue{
			"artifact_name": &types.AttributeValueMemberS{Value: s.key(name)},
			"artifact_data": &types.AttributeValueMemberB{Value: data},
		},
	})
	return err
}

// Delete removes a blob. Deleting a missing blob is not an error.
func (s *DDBStore) Delete(ctx context.Context, name string) error {
	_, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.tableName),
		Key: map[string]types.AttributeValue{
			"artifact_name": &types.AttributeValueMemberS{Value: s.key(name)},
		},
	})
	return err
}

// List returns all blob names with the given prefix, sorted. The table
// has no sort key, so this is a filtered scan; artifact tables are
// small enough for that to stay cheap.
func (s *DDBStore) List(ctx context.Context, prefix string) ([]string, error) {
	fullPrefix := s.key(prefix)

	input := &dynamodb.ScanInput{
		TableName:                aws.String(s.tableName),
		ProjectionExpression:     aws.String("#n"),
		ExpressionAttributeNames: map[string]string{"#n": "artifact_name"},
	}
	if fullPrefix != "" {
		input.FilterExpression = aws.String("begins_with(#n, :p)")
		input.ExpressionAttributeValues = map[string]types.AttributeValue{
			":p": &types.AttributeValueMemberS{Value: fullPrefix},
		}
	}

	var names []string
	for {
		resp, err := s.client.Scan(ctx, input)
		if err != nil {
			return nil, err
		}
		for _, item := range resp.Items {
			nameAttr, ok := item["artifact_name"].(*types.AttributeValueMemberS)
			if !ok {
				continue
			}
			name := strings.TrimPrefix(nameAttr.Value, s.prefix)
			name = strings.TrimPrefix(name, "/")
			if name != "" {
				names = append(names, name)
			}
		}
		if resp.LastEvaluatedKey == nil {
			break
		}
		input.ExclusiveStartKey = resp.LastEvaluatedKey
	}

	sort.Strings(names)
	return names, nil
}

type ddbBlob struct {
	data []byte
}

func (b *ddbBlob) ReadAt(ctx context.Context, p []byte, off int64) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if off >= int64(len(b.data)) {
		return 0, io.EOF
	}
	n := copy(p, b.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

func (b *ddbBlob) Size() int64 {
	return int64(len(b.data))
}

func (b *ddbBlob) Close() error {
	return nil
}

type ddbWritableBlob struct {
	ctx   context.Context
	store *DDBStore
	name  string
	buf   bytes.Buffer
}

func (w *ddbWritableBlob) Write(p []byte) (int, error) {
	return w.buf.Write(p)
}

func (w *ddbWritableBlob) Close() error {
	return w.store.Put(w.ctx, w.name, w.buf.Bytes())
}

func (w *ddbWritableBlob) Sync() error {
	return nil
}
