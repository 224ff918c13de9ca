package repository

import (
	"context"
	"time"

	"siampay/internal/domain/entities"
	"siampay/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultChargesTableName = "charges"
	chargesReferenceIDIndex = "reference_id-index"
)

type chargeItem struct {
	ID               string                 `dynamodbav:"id"`
	ProviderChargeID string                 `dynamodbav:"provider_charge_id"`
	Method           string                 `dynamodbav:"method"`
	Amount           int64                  `dynamodbav:"amount"`
	Currency         string                 `dynamodbav:"currency"`
	Description      string                 `dynamodbav:"description,omitempty"`
	ReferenceID      string                 `dynamodbav:"reference_id"`
	CustomerID       string                 `dynamodbav:"customer_id"`
	Flow             string                 `dynamodbav:"flow,omitempty"`
	ReturnURL        string                 `dynamodbav:"return_url,omitempty"`
	Status           string                 `dynamodbav:"status"`
	Paid             bool                   `dynamodbav:"paid"`
	CreatedAt        string                 `dynamodbav:"created_at"`
	UpdatedAt        string                 `dynamodbav:"updated_at"`
	ProviderPayload  map[string]interface{} `dynamodbav:"provider_payload,omitempty"`
	ProviderRaw      string                 `dynamodbav:"provider_payload_raw,omitempty"`
}

// ChargeDynamoRepository persists Charge entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: reference_id-index (PK: reference_id)

type ChargeDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IChargeRepository = (*ChargeDynamoRepository)(nil)

func NewChargeDynamoRepository(ddb *dynamodb.Client) *ChargeDynamoRepository {
	return &ChargeDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("CHARGES_TABLE", defaultChargesTableName),
	}
}

func (r *ChargeDynamoRepository) Create(ctx context.Context, c entities.Charge) (entities.Charge, error) {
	it := toChargeItem(c)
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return entities.Charge{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		return entities.Charge{}, err
	}
	return c, nil
}

func (r *ChargeDynamoRepository) GetByID(ctx context.Context, id string) (entities.Charge, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Charge{}, err
	}
	if len(out.Item) == 0 {
		return entities.Charge{}, nil
	}

	var it chargeItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Charge{}, err
	}
	return fromChargeItem(it), nil
}

func (r *ChargeDynamoRepository) ListByReferenceID(ctx context.Context, referenceID string) ([]entities.Charge, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(chargesReferenceIDIndex),
		KeyConditionExpression: aws.String("reference_id = :rid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":rid": &types.AttributeValueMemberS{Value: referenceID},
		},
	})
	if err != nil {
		return nil, err
	}

	items := make([]entities.Charge, 0, len(out.Items))
	for _, raw := range out.Items {
		var it chargeItem
		if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
			return nil, err
		}
		items = append(items, fromChargeItem(it))
	}
	return items, nil
}

func toChargeItem(c entities.Charge) chargeItem {
	return chargeItem{
		ID:               c.ID,
		ProviderChargeID: c.ProviderChargeID,
		Method:           string(c.Method),
		Amount:           c.Amount,
		Currency:         c.Currency,
		Description:      c.Description,
		ReferenceID:      c.ReferenceID,
		CustomerID:       c.CustomerID,
		Flow:             c.Flow,
		ReturnURL:        c.ReturnURL,
		Status:           string(c.Status),
		Paid:             c.Paid,
		CreatedAt:        c.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:        c.UpdatedAt.UTC().Format(time.RFC3339Nano),
		ProviderPayload:  c.ProviderPayload,
		ProviderRaw:      string(c.ProviderPayloadRaw),
	}
}

func fromChargeItem(it chargeItem) entities.Charge {
	createdAt, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
	updatedAt, _ := time.Parse(time.RFC3339Nano, it.UpdatedAt)
	return entities.Charge{
		ID:                 it.ID,
		ProviderChargeID:   it.ProviderChargeID,
		Method:             entities.PaymentMethod(it.Method),
		Amount:             it.Amount,
		Currency:           it.Currency,
		Description:        it.Description,
		ReferenceID:        it.ReferenceID,
		CustomerID:         it.CustomerID,
		Flow:               it.Flow,
		ReturnURL:          it.ReturnURL,
		Status:             entities.ChargeStatus(it.Status),
		Paid:               it.Paid,
		CreatedAt:          createdAt,
		UpdatedAt:          updatedAt,
		ProviderPayload:    it.ProviderPayload,
		ProviderPayloadRaw: []byte(it.ProviderRaw),
	}
}
