package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"hello-guru/internal/domain"
)

const (
	partitionKey   = "id"
	attributesName = "attributes"
	tableWaitLimit = 2 * time.Minute
)

// dynamodbAPI is the minimal DynamoDB interface required by Client.
// Defined here for testability.
type dynamodbAPI interface {
	GetItem(ctx context.Context, in *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, in *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DeleteItem(ctx context.Context, in *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	DescribeTable(ctx context.Context, in *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
	CreateTable(ctx context.Context, in *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error)
}

// Client wraps a DynamoDB table holding one attribute record per user.
type Client struct {
	api       dynamodbAPI
	tableName string
}

// New creates a new repository Client.
func New(api dynamodbAPI, tableName string) (*Client, error) {
	if api == nil {
		return nil, errors.New("repository: api must not be nil")
	}
	if strings.TrimSpace(tableName) == "" {
		return nil, errors.New("repository: table name must not be empty")
	}
	return &Client{api: api, tableName: tableName}, nil
}

func userKey(userID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		partitionKey: &types.AttributeValueMemberS{Value: userID},
	}
}

// EnsureTable creates the attribute table when it does not exist and waits
// for it to become active.
func (c *Client) EnsureTable(ctx context.Context) error {
	_, err := c.api.DescribeTable(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(c.tableName)})
	if err == nil {
		return nil
	}
	var notFound *types.ResourceNotFoundException
	if !errors.As(err, &notFound) {
		return fmt.Errorf("repository: EnsureTable describe: %w", err)
	}

	_, err = c.api.CreateTable(ctx, &dynamodb.CreateTableInput{
		TableName: aws.String(c.tableName),
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String(partitionKey), AttributeType: types.ScalarAttributeTypeS},
		},
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String(partitionKey), KeyType: types.KeyTypeHash},
		},
		BillingMode: types.BillingModePayPerRequest,
	})
	if err != nil {
		var inUse *types.ResourceInUseException
		if !errors.As(err, &inUse) {
			return fmt.Errorf("repository: EnsureTable create: %w", err)
		}
	}

	waiter := dynamodb.NewTableExistsWaiter(c.api)
	if err := waiter.Wait(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(c.tableName)}, tableWaitLimit); err != nil {
		return fmt.Errorf("repository: EnsureTable wait: %w", err)
	}
	return nil
}

// Load returns the persisted attributes for a user. A missing record yields an
// empty bag.
func (c *Client) Load(ctx context.Context, userID string) (domain.Attributes, error) {
	if userID == "" {
		return nil, errors.New("repository: Load: user id is required")
	}
	out, err := c.api.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(c.tableName),
		Key:            userKey(userID),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("repository: Load get item: %w", err)
	}
	if out == nil || len(out.Item) == 0 {
		return domain.Attributes{}, nil
	}

	raw, ok := out.Item[attributesName]
	if !ok {
		return domain.Attributes{}, nil
	}
	m, ok := raw.(*types.AttributeValueMemberM)
	if !ok {
		return nil, fmt.Errorf("repository: Load: attribute %q is not a map", attributesName)
	}
	attrs, err := itemToAttributes(m.Value)
	if err != nil {
		return nil, fmt.Errorf("repository: Load decode: %w", err)
	}
	return attrs, nil
}

// Save overwrites the user's record with attrs.
func (c *Client) Save(ctx context.Context, userID string, attrs domain.Attributes) error {
	if userID == "" {
		return errors.New("repository: Save: user id is required")
	}
	encoded, err := attributesItem(attrs)
	if err != nil {
		return fmt.Errorf("repository: Save encode: %w", err)
	}
	_, err = c.api.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(c.tableName),
		Item: map[string]types.AttributeValue{
			partitionKey:   &types.AttributeValueMemberS{Value: userID},
			attributesName: &types.AttributeValueMemberM{Value: encoded},
		},
	})
	if err != nil {
		return fmt.Errorf("repository: Save: %w", err)
	}
	return nil
}

// Delete removes the user's record. Deleting a missing record is not an error.
func (c *Client) Delete(ctx context.Context, userID string) error {
	if userID == "" {
		return errors.New("repository: Delete: user id is required")
	}
	_, err := c.api.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(c.tableName),
		Key:       userKey(userID),
	})
	if err != nil {
		return fmt.Errorf("repository: Delete: %w", err)
	}
	return nil
}

func attributesItem(attrs domain.Attributes) (map[string]types.AttributeValue, error) {
	item := make(map[string]types.AttributeValue, len(attrs))
	for k, v := range attrs {
		av, err := toAttributeValue(v)
		if err != nil {
			return nil, fmt.Errorf("attribute %q: %w", k, err)
		}
		item[k] = av
	}
	return item, nil
}

func toAttributeValue(v any) (types.AttributeValue, error) {
	switch t := v.(type) {
	case nil:
		return &types.AttributeValueMemberNULL{Value: true}, nil
	case string:
		return &types.AttributeValueMemberS{Value: t}, nil
	case bool:
		return &types.AttributeValueMemberBOOL{Value: t}, nil
	case int:
		return &types.AttributeValueMemberN{Value: strconv.Itoa(t)}, nil
	case int64:
		return &types.AttributeValueMemberN{Value: strconv.FormatInt(t, 10)}, nil
	case float64:
		return &types.AttributeValueMemberN{Value: strconv.FormatFloat(t, 'f', -1, 64)}, nil
	default:
		return nil, fmt.Errorf("unsupported value type %T", v)
	}
}

func itemToAttributes(item map[string]types.AttributeValue) (domain.Attributes, error) {
	attrs := make(domain.Attributes, len(item))
	for k, av := range item {
		switch t := av.(type) {
		case *types.AttributeValueMemberNULL:
			attrs[k] = nil
		case *types.AttributeValueMemberS:
			attrs[k] = t.Value
		case *types.AttributeValueMemberBOOL:
			attrs[k] = t.Value
		case *types.AttributeValueMemberN:
			n, err := numberAttr(t.Value)
			if err != nil {
				return nil, fmt.Errorf("parse attribute %q: %w", k, err)
			}
			attrs[k] = n
		default:
			return nil, fmt.Errorf("attribute %q has unsupported type %T", k, av)
		}
	}
	return attrs, nil
}

func numberAttr(s string) (any, error) {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return f, nil
}
