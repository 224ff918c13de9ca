package interfaces

import (
	"context"
	"siampay/internal/domain/entities"
)

// IChargeRepository abstracts DynamoDB persistence for Charge.

type IChargeRepository interface {
	Create(ctx context.Context, c entities.Charge) (entities.Charge, error)
	GetByID(ctx context.Context, id string) (entities.Charge, error)
	ListByReferenceID(ctx context.Context, referenceID string) ([]entities.Charge, error)
}
