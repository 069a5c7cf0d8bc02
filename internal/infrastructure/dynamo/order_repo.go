package dynamo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/jameshoangcyber/nexuskit-webapp/internal/domain"
)

type OrderRepo struct {
	api   API
	table string
	now   func() time.Time
}

func NewOrderRepo(api API, table string) domain.OrderRepository {
	return &OrderRepo{api: api, table: table, now: time.Now}
}

func orderKey(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		attrPK: strAttr(orderPrefix + id),
		attrSK: strAttr(orderSK),
	}
}

func (r *OrderRepo) Create(ctx context.Context, order *domain.Order) error {
	now := r.now().UTC()
	if order.CreatedAt.IsZero() {
		order.CreatedAt = now
	}
	order.UpdatedAt = now

	item, err := marshalOrder(order)
	if err != nil {
		return err
	}

	if order.StripePaymentIntentID == nil {
		_, err = r.api.PutItem(ctx, &dynamodb.PutItemInput{
			TableName:           aws.String(r.table),
			Item:                item,
			ConditionExpression: aws.String("attribute_not_exists(pk)"),
		})
		if isConditionFailed(err) {
			return domain.ErrDuplicateOrder
		}
		if err != nil {
			return fmt.Errorf("put order %s: %w", order.ID, err)
		}
		return nil
	}

	// The order and its intent pointer are written together; either key
	// already existing means the order or the intent was taken.
	pointer := intentOrderKey(*order.StripePaymentIntentID)
	pointer["orderId"] = strAttr(order.ID)
	_, err = r.api.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{Put: &types.Put{
				TableName:           aws.String(r.table),
				Item:                item,
				ConditionExpression: aws.String("attribute_not_exists(pk)"),
			}},
			{Put: &types.Put{
				TableName:           aws.String(r.table),
				Item:                pointer,
				ConditionExpression: aws.String("attribute_not_exists(pk)"),
			}},
		},
	})
	if isTransactConditionFailed(err) {
		return domain.ErrDuplicateOrder
	}
	if err != nil {
		return fmt.Errorf("put order %s: %w", order.ID, err)
	}
	return nil
}

func intentOrderKey(intentID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		attrPK: strAttr(intentPrefix + intentID),
		attrSK: strAttr(orderSK),
	}
}

func (r *OrderRepo) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	out, err := r.api.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.table),
		Key:            orderKey(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("get order %s: %w", id, err)
	}
	if len(out.Item) == 0 {
		return nil, nil
	}
	return unmarshalOrder(out.Item)
}

func (r *OrderRepo) FindByPaymentIntentID(ctx context.Context, intentID string) (*domain.Order, error) {
	out, err := r.api.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.table),
		Key:            intentOrderKey(intentID),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("get order by intent %s: %w", intentID, err)
	}
	orderID := getStr(out.Item, "orderId")
	if orderID == "" {
		return nil, nil
	}
	return r.FindByID(ctx, orderID)
}

// UpdatePaymentStatus moves a pending order to status. The condition makes
// redelivered events no-ops; it reports whether the item changed.
func (r *OrderRepo) UpdatePaymentStatus(ctx context.Context, id string, status domain.PaymentStatus, at time.Time) (bool, error) {
	update := "SET paymentStatus = :status, updatedAt = :now"
	values := map[string]types.AttributeValue{
		":status":  strAttr(string(status)),
		":now":     strAttr(at.UTC().Format(time.RFC3339Nano)),
		":pending": strAttr(string(domain.PaymentStatusPending)),
	}
	if status == domain.PaymentStatusPaid {
		update += ", paidAt = :now"
	}

	_, err := r.api.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.table),
		Key:                       orderKey(id),
		UpdateExpression:          aws.String(update),
		ConditionExpression:       aws.String("attribute_exists(pk) AND paymentStatus = :pending"),
		ExpressionAttributeValues: values,
	})
	if isConditionFailed(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("update order %s: %w", id, err)
	}
	return true, nil
}

func (r *OrderRepo) Ping(ctx context.Context) error {
	_, err := r.api.DescribeTable(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(r.table)})
	return err
}

func marshalOrder(o *domain.Order) (map[string]types.AttributeValue, error) {
	items, err := json.Marshal(o.Items)
	if err != nil {
		return nil, fmt.Errorf("encode order items: %w", err)
	}

	item := orderKey(o.ID)
	item["id"] = strAttr(o.ID)
	item["userId"] = strAttr(o.UserID)
	item["items"] = strAttr(string(items))
	item["total"] = numAttr(o.Total)
	item["orderStatus"] = strAttr(string(o.Status))
	item["paymentMethod"] = strAttr(string(o.PaymentMethod))
	item["paymentStatus"] = strAttr(string(o.PaymentStatus))
	item["shippingName"] = strAttr(o.ShippingInfo.Name)
	item["shippingPhone"] = strAttr(o.ShippingInfo.Phone)
	item["shippingEmail"] = strAttr(o.ShippingInfo.Email)
	item["shippingAddress"] = strAttr(o.ShippingInfo.Address)
	item["notes"] = strAttr(o.Notes)
	item["createdAt"] = strAttr(o.CreatedAt.UTC().Format(time.RFC3339Nano))
	item["updatedAt"] = strAttr(o.UpdatedAt.UTC().Format(time.RFC3339Nano))
	if o.StripePaymentIntentID != nil {
		item["stripePaymentIntentId"] = strAttr(*o.StripePaymentIntentID)
	}
	if o.PaidAt != nil {
		item["paidAt"] = strAttr(o.PaidAt.UTC().Format(time.RFC3339Nano))
	}
	return item, nil
}

func unmarshalOrder(item map[string]types.AttributeValue) (*domain.Order, error) {
	o := &domain.Order{
		ID:            getStr(item, "id"),
		UserID:        getStr(item, "userId"),
		Total:         getNum(item, "total"),
		Status:        domain.OrderStatus(getStr(item, "orderStatus")),
		PaymentMethod: domain.PaymentMethod(getStr(item, "paymentMethod")),
		PaymentStatus: domain.PaymentStatus(getStr(item, "paymentStatus")),
		ShippingInfo: domain.ShippingInfo{
			Name:    getStr(item, "shippingName"),
			Phone:   getStr(item, "shippingPhone"),
			Email:   getStr(item, "shippingEmail"),
			Address: getStr(item, "shippingAddress"),
		},
		Notes: getStr(item, "notes"),
	}
	if raw := getStr(item, "items"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &o.Items); err != nil {
			return nil, fmt.Errorf("decode order items: %w", err)
		}
	}
	if piID := getStr(item, "stripePaymentIntentId"); piID != "" {
		o.StripePaymentIntentID = &piID
	}
	o.CreatedAt = parseTime(getStr(item, "createdAt"))
	o.UpdatedAt = parseTime(getStr(item, "updatedAt"))
	if paid := getStr(item, "paidAt"); paid != "" {
		t := parseTime(paid)
		o.PaidAt = &t
	}
	return o, nil
}

func parseTime(v string) time.Time {
	t, _ := time.Parse(time.RFC3339Nano, v)
	return t
}
