package dynamo

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// fakeTable understands the handful of expressions the repositories send.
type fakeTable struct {
	mu    sync.Mutex
	items map[string]map[string]types.AttributeValue
	fail  error
}

func newFakeTable() *fakeTable {
	return &fakeTable{items: make(map[string]map[string]types.AttributeValue)}
}

func itemID(key map[string]types.AttributeValue) string {
	return getStr(key, attrPK) + "|" + getStr(key, attrSK)
}

func copyItem(in map[string]types.AttributeValue) map[string]types.AttributeValue {
	out := make(map[string]types.AttributeValue, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func (f *fakeTable) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return nil, f.fail
	}
	item, ok := f.items[itemID(in.Key)]
	if !ok {
		return &dynamodb.GetItemOutput{}, nil
	}
	return &dynamodb.GetItemOutput{Item: copyItem(item)}, nil
}

// putAllowed evaluates the put conditions the repositories use:
// attribute_not_exists(pk), optionally OR outcome IN (...).
func (f *fakeTable) putAllowed(item map[string]types.AttributeValue, condition string, values map[string]types.AttributeValue) bool {
	if !strings.HasPrefix(condition, "attribute_not_exists(pk)") {
		return true
	}
	existing, exists := f.items[itemID(item)]
	if !exists {
		return true
	}
	_, list, found := strings.Cut(condition, "outcome IN (")
	if !found {
		return false
	}
	for _, placeholder := range strings.Split(strings.TrimSuffix(list, ")"), ",") {
		if getStr(existing, "outcome") == getStr(values, strings.TrimSpace(placeholder)) {
			return true
		}
	}
	return false
}

func (f *fakeTable) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return nil, f.fail
	}
	if !f.putAllowed(in.Item, aws.ToString(in.ConditionExpression), in.ExpressionAttributeValues) {
		return nil, &types.ConditionalCheckFailedException{Message: aws.String("condition failed")}
	}
	f.items[itemID(in.Item)] = copyItem(in.Item)
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeTable) TransactWriteItems(_ context.Context, in *dynamodb.TransactWriteItemsInput, _ ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return nil, f.fail
	}
	reasons := make([]types.CancellationReason, len(in.TransactItems))
	canceled := false
	for i, ti := range in.TransactItems {
		if ti.Put == nil {
			return nil, errors.New("only puts are supported")
		}
		reasons[i] = types.CancellationReason{Code: aws.String("None")}
		if !f.putAllowed(ti.Put.Item, aws.ToString(ti.Put.ConditionExpression), ti.Put.ExpressionAttributeValues) {
			reasons[i].Code = aws.String("ConditionalCheckFailed")
			canceled = true
		}
	}
	if canceled {
		return nil, &types.TransactionCanceledException{
			Message:             aws.String("transaction cancelled"),
			CancellationReasons: reasons,
		}
	}
	for _, ti := range in.TransactItems {
		f.items[itemID(ti.Put.Item)] = copyItem(ti.Put.Item)
	}
	return &dynamodb.TransactWriteItemsOutput{}, nil
}

func (f *fakeTable) UpdateItem(_ context.Context, in *dynamodb.UpdateItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return nil, f.fail
	}
	item, ok := f.items[itemID(in.Key)]
	if !ok {
		return nil, &types.ConditionalCheckFailedException{Message: aws.String("missing")}
	}
	if strings.Contains(aws.ToString(in.ConditionExpression), "paymentStatus = :pending") &&
		getStr(item, "paymentStatus") != getStr(in.ExpressionAttributeValues, ":pending") {
		return nil, &types.ConditionalCheckFailedException{Message: aws.String("not pending")}
	}

	assignments := strings.TrimPrefix(aws.ToString(in.UpdateExpression), "SET ")
	for _, part := range strings.Split(assignments, ",") {
		name, placeholder, found := strings.Cut(strings.TrimSpace(part), " = ")
		if !found {
			return nil, errors.New("unsupported update expression")
		}
		item[name] = in.ExpressionAttributeValues[placeholder]
	}
	return &dynamodb.UpdateItemOutput{}, nil
}

func (f *fakeTable) Query(_ context.Context, in *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return nil, f.fail
	}
	pk := getStr(in.ExpressionAttributeValues, ":pk")
	skPrefix := getStr(in.ExpressionAttributeValues, ":sk")
	var out []map[string]types.AttributeValue
	for _, item := range f.items {
		if getStr(item, attrPK) == pk && strings.HasPrefix(getStr(item, attrSK), skPrefix) {
			out = append(out, copyItem(item))
		}
	}
	return &dynamodb.QueryOutput{Items: out, Count: int32(len(out))}, nil
}

func (f *fakeTable) DescribeTable(_ context.Context, in *dynamodb.DescribeTableInput, _ ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error) {
	if f.fail != nil {
		return nil, f.fail
	}
	return &dynamodb.DescribeTableOutput{Table: &types.TableDescription{TableName: in.TableName}}, nil
}
