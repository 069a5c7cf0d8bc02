package dynamo

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/jameshoangcyber/nexuskit-webapp/internal/domain"
)

// WebhookEventRepo keeps the delivery log. Expiry is left to the table's
// TTL on the ttl attribute.
type WebhookEventRepo struct {
	api   API
	table string
}

func NewWebhookEventRepo(api API, table string) domain.WebhookEventRepository {
	return &WebhookEventRepo{api: api, table: table}
}

func eventKey(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		attrPK: strAttr(eventPrefix + id),
		attrSK: strAttr(eventSK),
	}
}

func eventLinkKey(intentID, eventID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		attrPK: strAttr(intentPrefix + intentID),
		attrSK: strAttr(eventPrefix + eventID),
	}
}

func (r *WebhookEventRepo) FindByEventID(ctx context.Context, eventID string) (*domain.WebhookEvent, error) {
	out, err := r.api.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.table),
		Key:            eventKey(eventID),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("get webhook event %s: %w", eventID, err)
	}
	if len(out.Item) == 0 {
		return nil, nil
	}
	return unmarshalEvent(out.Item), nil
}

// FindByPaymentIntentID follows the intent's event links and loads each
// event with a consistent read. Events are returned oldest first.
func (r *WebhookEventRepo) FindByPaymentIntentID(ctx context.Context, paymentIntentID string) ([]*domain.WebhookEvent, error) {
	out, err := r.api.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.table),
		KeyConditionExpression: aws.String("pk = :pk AND begins_with(sk, :sk)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": strAttr(intentPrefix + paymentIntentID),
			":sk": strAttr(eventPrefix),
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("query events by intent %s: %w", paymentIntentID, err)
	}

	events := make([]*domain.WebhookEvent, 0, len(out.Items))
	for _, link := range out.Items {
		event, err := r.FindByEventID(ctx, getStr(link, "eventId"))
		if err != nil {
			return nil, err
		}
		if event != nil {
			events = append(events, event)
		}
	}
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].ReceivedAt.Before(events[j].ReceivedAt)
	})
	return events, nil
}

// Save inserts the event, or overwrites it only when the new outcome
// replaces the stored one. A failed condition leaves the stored record in
// place and is not an error.
func (r *WebhookEventRepo) Save(ctx context.Context, event *domain.WebhookEvent) error {
	item := eventKey(event.EventID)
	item["eventId"] = strAttr(event.EventID)
	item["eventType"] = strAttr(event.EventType)
	item["paymentIntentId"] = strAttr(event.PaymentIntentID)
	item["payload"] = strAttr(string(event.Payload))
	item["outcome"] = strAttr(string(event.Outcome))
	item["receivedAt"] = strAttr(event.ReceivedAt.UTC().Format(time.RFC3339Nano))
	item[attrTTL] = numAttr(event.ExpiresAt.Unix())
	if event.ProcessedAt != nil {
		item["processedAt"] = strAttr(event.ProcessedAt.UTC().Format(time.RFC3339Nano))
	}

	condition := "attribute_not_exists(pk)"
	var values map[string]types.AttributeValue
	if replaces := event.Outcome.Replaces(); len(replaces) > 0 {
		values = make(map[string]types.AttributeValue, len(replaces))
		placeholders := make([]string, len(replaces))
		for i, o := range replaces {
			placeholders[i] = fmt.Sprintf(":o%d", i)
			values[placeholders[i]] = strAttr(string(o))
		}
		condition += " OR outcome IN (" + strings.Join(placeholders, ", ") + ")"
	}

	_, err := r.api.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                 aws.String(r.table),
		Item:                      item,
		ConditionExpression:       aws.String(condition),
		ExpressionAttributeValues: values,
	})
	if err != nil && !isConditionFailed(err) {
		return fmt.Errorf("put webhook event %s: %w", event.EventID, err)
	}

	if event.PaymentIntentID == "" {
		return nil
	}
	link := eventLinkKey(event.PaymentIntentID, event.EventID)
	link["eventId"] = strAttr(event.EventID)
	link[attrTTL] = numAttr(event.ExpiresAt.Unix())
	_, err = r.api.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.table),
		Item:      link,
	})
	if err != nil {
		return fmt.Errorf("link webhook event %s: %w", event.EventID, err)
	}
	return nil
}

func unmarshalEvent(item map[string]types.AttributeValue) *domain.WebhookEvent {
	event := &domain.WebhookEvent{
		EventID:         getStr(item, "eventId"),
		EventType:       getStr(item, "eventType"),
		PaymentIntentID: getStr(item, "paymentIntentId"),
		Payload:         []byte(getStr(item, "payload")),
		Outcome:         domain.WebhookOutcome(getStr(item, "outcome")),
		ReceivedAt:      parseTime(getStr(item, "receivedAt")),
		ExpiresAt:       time.Unix(getNum(item, attrTTL), 0).UTC(),
	}
	if processed := getStr(item, "processedAt"); processed != "" {
		t := parseTime(processed)
		event.ProcessedAt = &t
	}
	return event
}

// DeleteExpired is a no-op; DynamoDB removes items once ttl has passed.
func (r *WebhookEventRepo) DeleteExpired(context.Context) (int64, error) {
	return 0, nil
}

// TransactionManager runs fn directly. Each order write is one conditional
// request, so there is nothing to group.
type TransactionManager struct{}

func NewTransactionManager() domain.TransactionManager {
	return TransactionManager{}
}

func (TransactionManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
