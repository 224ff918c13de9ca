package interfaces

import (
	"context"
	"encoding/json"

	"siampay/internal/domain/entities"
)

// GatewayCharge is a provider-agnostic view of a created charge: the provider
// id/status pair plus the raw response body persisted for traceability.
type GatewayCharge struct {
	ProviderChargeID string
	ProviderStatus   string
	Paid             bool
	ProviderResponse json.RawMessage
}

// IChargeGateway abstracts external payment providers (GuPay, Mercado Pago).
//
// The charge-service uses it to create a charge for a payment method and
// persist the provider response payload for traceability.
type IChargeGateway interface {
	CreateCharge(ctx context.Context, method entities.PaymentMethod, order entities.ChargeOrder) (GatewayCharge, error)
}
