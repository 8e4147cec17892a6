package s3

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DDBLedger records clustering runs: the report body goes to S3 and a
// versioned pointer to it goes to DynamoDB.
//
// DynamoDB conditional writes give every run a unique, monotonically
// increasing version even with concurrent writers.
//
// Table schema:
//   - Partition key: base_uri (string) - the S3 bucket/prefix of the runs
//   - Sort key: version (number) - monotonically increasing version
//
// Create table with:
//
//	aws dynamodb create-table \
//	  --table-name kmeanspp-runs \
//	  --attribute-definitions AttributeName=base_uri,AttributeType=S AttributeName=version,AttributeType=N \
//	  --key-schema AttributeName=base_uri,KeyType=HASH AttributeName=version,KeyType=RANGE \
//	  --billing-mode PAY_PER_REQUEST
type DDBLedger struct {
	s3Store    *Store
	ddbClient  DDBClient
	tableName  string
	baseURI    string
	maxRetries int
}

// DDBClient is the interface for DynamoDB operations.
type DDBClient interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

// ErrConcurrentModification is returned when a version could not be claimed
// after all retries.
var ErrConcurrentModification = errors.New("concurrent modification detected")

// defaultCommitRetries bounds the claim loop under contention.
const defaultCommitRetries = 5

// Entry is one committed run.
type Entry struct {
	Version    uint64
	ReportPath string
	Attributes map[string]string
}

// NewDDBLedger creates a new S3+DynamoDB run ledger.
// The baseURI should be "s3://bucket/prefix" format used as partition key.
func NewDDBLedger(s3Store *Store, ddbClient DDBClient, tableName, baseURI string) *DDBLedger {
	return &DDBLedger{
		s3Store:    s3Store,
		ddbClient:  ddbClient,
		tableName:  tableName,
		baseURI:    baseURI,
		maxRetries: defaultCommitRetries,
	}
}

// Commit uploads report under name and records it as the next version.
// attrs are stored alongside the pointer as string attributes.
func (l *DDBLedger) Commit(ctx context.Context, name string, report []byte, attrs map[string]string) (uint64, error) {
	if err := l.s3Store.Put(ctx, name, report); err != nil {
		return 0, fmt.Errorf("failed to upload report: %w", err)
	}
	reportPath := l.s3Store.key(name)

	for attempt := 0; attempt < l.maxRetries; attempt++ {
		latest, err := l.Latest(ctx)
		if err != nil {
			return 0, err
		}

		version := latest.Version + 1
		err = l.claim(ctx, version, reportPath, attrs)
		if err == nil {
			return version, nil
		}
		if !errors.Is(err, ErrConcurrentModification) {
			return 0, err
		}
	}

	return 0, ErrConcurrentModification
}

// Latest returns the most recent entry, or a zero Entry if none exists.
func (l *DDBLedger) Latest(ctx context.Context) (Entry, error) {
	resp, err := l.ddbClient.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(l.tableName),
		KeyConditionExpression: aws.String("base_uri = :uri"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":uri": &types.AttributeValueMemberS{Value: l.baseURI},
		},
		ScanIndexForward: aws.Bool(false), // Descending order
		Limit:            aws.Int32(1),
	})
	if err != nil {
		return Entry{}, fmt.Errorf("failed to query DynamoDB: %w", err)
	}

	if len(resp.Items) == 0 {
		return Entry{}, nil
	}

	return decodeEntry(resp.Items[0])
}

func (l *DDBLedger) claim(ctx context.Context, version uint64, reportPath string, attrs map[string]string) error {
	item := map[string]types.AttributeValue{
		"base_uri":    &types.AttributeValueMemberS{Value: l.baseURI},
		"version":     &types.AttributeValueMemberN{Value: strconv.FormatUint(version, 10)},
		"report_path": &types.AttributeValueMemberS{Value: reportPath},
	}
	if len(attrs) > 0 {
		m := make(map[string]types.AttributeValue, len(attrs))
		for k, v := range attrs {
			m[k] = &types.AttributeValueMemberS{Value: v}
		}
		item["attributes"] = &types.AttributeValueMemberM{Value: m}
	}

	_, err := l.ddbClient.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(l.tableName),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(version)"),
	})
	if err != nil {
		var condErr *types.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			return ErrConcurrentModification
		}
		return fmt.Errorf("failed to commit version to DynamoDB: %w", err)
	}
	return nil
}

func decodeEntry(item map[string]types.AttributeValue) (Entry, error) {
	versionAttr, ok := item["version"].(*types.AttributeValueMemberN)
	if !ok {
		return Entry{}, errors.New("invalid version attribute in DynamoDB")
	}
	pathAttr, ok := item["report_path"].(*types.AttributeValueMemberS)
	if !ok {
		return Entry{}, errors.New("invalid report_path attribute in DynamoDB")
	}

	version, err := strconv.ParseUint(versionAttr.Value, 10, 64)
	if err != nil {
		return Entry{}, fmt.Errorf("failed to parse version: %w", err)
	}

	e := Entry{Version: version, ReportPath: pathAttr.Value}
	if m, ok := item["attributes"].(*types.AttributeValueMemberM); ok {
		e.Attributes = make(map[string]string, len(m.Value))
		for k, v := range m.Value {
			if s, ok := v.(*types.AttributeValueMemberS); ok {
				e.Attributes[k] = s.Value
			}
		}
	}
	return e, nil
}
