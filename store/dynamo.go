package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/jacentio/roster/internal/match"
)

// Dynamo is a Store backed by a DynamoDB table. All records live under a
// single constant partition key and sort by a numeric insertion sequence,
// so queries return them in insertion order. Updates use optimistic
// locking on the record version.
//
// The table must have a string partition key "pk" and a numeric sort key
// "seq". The insertion sequence comes from an atomic counter item kept in
// a sibling partition.
type Dynamo struct {
	client *dynamodb.Client
	config Config
}

// NewDynamo creates a DynamoDB-backed store.
func NewDynamo(client *dynamodb.Client, config Config) *Dynamo {
	config.validate()
	return &Dynamo{
		client: client,
		config: config,
	}
}

// Create implements Store.
func (d *Dynamo) Create(ctx context.Context, name string, age int, scores []float64) (*Record, error) {
	r, err := NewRecord(name, age, scores)
	if err != nil {
		return nil, err
	}

	seq, err := d.nextSequence(ctx)
	if err != nil {
		return nil, fmt.Errorf("next sequence: %w", err)
	}

	item, err := d.marshalRecord(r, seq)
	if err != nil {
		return nil, fmt.Errorf("marshal record: %w", err)
	}

	_, err = d.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(d.config.Table),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(pk)"),
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

// Find implements Store.
func (d *Dynamo) Find(ctx context.Context, name string) (*Record, error) {
	r, _, err := d.firstMatch(ctx, name)
	return r, err
}

// Update implements Store.
func (d *Dynamo) Update(ctx context.Context, name string, age int, scores []float64) (*Record, error) {
	current, seq, err := d.firstMatch(ctx, name)
	if err != nil {
		return nil, err
	}
	if err := validateFields(age, scores); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	scoresAttr, err := attributevalue.Marshal(append([]float64(nil), scores...))
	if err != nil {
		return nil, fmt.Errorf("marshal scores: %w", err)
	}

	_, err = d.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(d.config.Table),
		Key:                 d.key(seq),
		UpdateExpression:    aws.String("SET #age = :age, #scores = :scores, #updated_at = :updated_at, #version = #version + :one"),
		ConditionExpression: aws.String("#version = :expected_version"),
		ExpressionAttributeNames: map[string]string{
			"#age":        "age",
			"#scores":     "scores",
			"#updated_at": "updated_at",
			"#version":    "version",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":age":              &types.AttributeValueMemberN{Value: strconv.Itoa(age)},
			":scores":           scoresAttr,
			":updated_at":       &types.AttributeValueMemberS{Value: now.Format(time.RFC3339Nano)},
			":one":              &types.AttributeValueMemberN{Value: "1"},
			":expected_version": &types.AttributeValueMemberN{Value: strconv.FormatInt(current.Version, 10)},
		},
	})
	if err != nil {
		var condErr *types.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			return nil, ErrConcurrentModification
		}
		return nil, err
	}

	current.Age = age
	current.Scores = append([]float64(nil), scores...)
	current.UpdatedAt = now
	current.Version++
	return current, nil
}

// Delete implements Store.
func (d *Dynamo) Delete(ctx context.Context, name string) error {
	_, seq, err := d.firstMatch(ctx, name)
	if err != nil {
		return err
	}

	_, err = d.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(d.config.Table),
		Key:       d.key(seq),
	})
	return err
}

// List implements Store.
func (d *Dynamo) List(ctx context.Context) ([]*Record, error) {
	records := []*Record{}

	paginator := dynamodb.NewQueryPaginator(d.client, d.queryInput())
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, item := range page.Items {
			var r Record
			if err := attributevalue.UnmarshalMap(item, &r); err != nil {
				return nil, fmt.Errorf("unmarshal record: %w", err)
			}
			records = append(records, &r)
		}
	}

	return records, nil
}

// Count implements Store.
func (d *Dynamo) Count(ctx context.Context) (int, error) {
	input := d.queryInput()
	input.Select = types.SelectCount

	count := 0
	paginator := dynamodb.NewQueryPaginator(d.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return -1, err
		}
		count += int(page.Count)
	}

	return count, nil
}

// firstMatch queries the partition in ascending sequence order and returns
// the first record whose normalized name matches, together with its
// sequence number.
func (d *Dynamo) firstMatch(ctx context.Context, name string) (*Record, uint64, error) {
	input := d.queryInput()
	input.FilterExpression = aws.String("name_key = :name_key")
	input.ExpressionAttributeValues[":name_key"] = &types.AttributeValueMemberS{
		Value: match.Key(name),
	}

	paginator := dynamodb.NewQueryPaginator(d.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, 0, err
		}
		if len(page.Items) == 0 {
			continue
		}

		item := page.Items[0]
		var r Record
		if err := attributevalue.UnmarshalMap(item, &r); err != nil {
			return nil, 0, fmt.Errorf("unmarshal record: %w", err)
		}
		seq, err := itemSequence(item)
		if err != nil {
			return nil, 0, err
		}
		return &r, seq, nil
	}

	return nil, 0, ErrNotFound
}

// nextSequence atomically increments the insertion counter and returns the
// new value.
func (d *Dynamo) nextSequence(ctx context.Context) (uint64, error) {
	out, err := d.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:        aws.String(d.config.Table),
		Key:              d.counterKey(),
		UpdateExpression: aws.String("ADD seq_value :one"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":one": &types.AttributeValueMemberN{Value: "1"},
		},
		ReturnValues: types.ReturnValueUpdatedNew,
	})
	if err != nil {
		return 0, err
	}

	attr, ok := out.Attributes["seq_value"].(*types.AttributeValueMemberN)
	if !ok {
		return 0, fmt.Errorf("counter item has no numeric seq_value")
	}
	return strconv.ParseUint(attr.Value, 10, 64)
}

func (d *Dynamo) queryInput() *dynamodb.QueryInput {
	return &dynamodb.QueryInput{
		TableName:              aws.String(d.config.Table),
		KeyConditionExpression: aws.String("pk = :pk"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: d.config.Partition},
		},
		ScanIndexForward: aws.Bool(true),
	}
}

// marshalRecord converts a record to a DynamoDB item with key and index
// attributes attached.
func (d *Dynamo) marshalRecord(r *Record, seq uint64) (map[string]types.AttributeValue, error) {
	item, err := attributevalue.MarshalMap(r)
	if err != nil {
		return nil, err
	}
	item["pk"] = &types.AttributeValueMemberS{Value: d.config.Partition}
	item["seq"] = &types.AttributeValueMemberN{Value: strconv.FormatUint(seq, 10)}
	item["name_key"] = &types.AttributeValueMemberS{Value: match.Key(r.Name)}
	return item, nil
}

func (d *Dynamo) key(seq uint64) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"pk":  &types.AttributeValueMemberS{Value: d.config.Partition},
		"seq": &types.AttributeValueMemberN{Value: strconv.FormatUint(seq, 10)},
	}
}

// counterKey is the key of the atomic insertion counter, kept out of the
// records partition so queries never see it.
func (d *Dynamo) counterKey() map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"pk":  &types.AttributeValueMemberS{Value: d.config.Partition + "#counter"},
		"seq": &types.AttributeValueMemberN{Value: "0"},
	}
}

// itemSequence extracts the numeric sort key from a raw item.
func itemSequence(item map[string]types.AttributeValue) (uint64, error) {
	attr, ok := item["seq"].(*types.AttributeValueMemberN)
	if !ok {
		return 0, fmt.Errorf("item has no numeric seq attribute")
	}
	return strconv.ParseUint(attr.Value, 10, 64)
}
