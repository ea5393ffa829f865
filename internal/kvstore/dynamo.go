package kvstore

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// DynamoAPI is the subset of *dynamodb.Client used by Dynamo.
type DynamoAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DescribeTable(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
}

// Dynamo is a DynamoDB implementation of Store.
type Dynamo struct {
	db        DynamoAPI
	pingTable string
}

// NewDynamo wraps a DynamoDB client. pingTable is described on Ping.
func NewDynamo(db DynamoAPI, pingTable string) *Dynamo {
	return &Dynamo{db: db, pingTable: pingTable}
}

var _ Store = (*Dynamo)(nil)

// GetItem performs a strongly consistent point read.
func (d *Dynamo) GetItem(ctx context.Context, table string, key Item) (Item, error) {
	out, err := d.db.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(table),
		Key:            key,
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("dynamodb get %s: %w", table, err)
	}
	if len(out.Item) == 0 {
		return nil, ErrItemNotFound
	}
	return out.Item, nil
}

// PutItem writes item unconditionally; an existing item with the same key is replaced.
func (d *Dynamo) PutItem(ctx context.Context, table string, item Item) error {
	_, err := d.db.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(table),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("dynamodb put %s: %w", table, err)
	}
	return nil
}

func (d *Dynamo) Ping(ctx context.Context) error {
	_, err := d.db.DescribeTable(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(d.pingTable)})
	if err != nil {
		return fmt.Errorf("dynamodb describe %s: %w", d.pingTable, err)
	}
	return nil
}
