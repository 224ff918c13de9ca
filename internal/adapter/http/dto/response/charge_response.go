package response

import (
	"time"

	"siampay/internal/domain/entities"
)

type ChargeResponse struct {
	ChargeID         string    `json:"charge_id"`
	ProviderChargeID string    `json:"provider_charge_id"`
	Method           string    `json:"method"`
	Amount           int64     `json:"amount"`
	Currency         string    `json:"currency"`
	Description      string    `json:"description,omitempty"`
	ReferenceID      string    `json:"reference_id"`
	CustomerID       string    `json:"customer_id"`
	Flow             string    `json:"flow,omitempty"`
	ReturnURL        string    `json:"return_url,omitempty"`
	Status           string    `json:"status"`
	Paid             bool      `json:"paid"`
	CreatedAt        time.Time `json:"created_at"`

	ProviderPayloadRaw string                 `json:"provider_payload_raw,omitempty"`
	ProviderPayload    map[string]interface{} `json:"provider_payload,omitempty"`
}

func FromCharge(c entities.Charge) ChargeResponse {
	return ChargeResponse{
		ChargeID:           c.ID,
		ProviderChargeID:   c.ProviderChargeID,
		Method:             string(c.Method),
		Amount:             c.Amount,
		Currency:           c.Currency,
		Description:        c.Description,
		ReferenceID:        c.ReferenceID,
		CustomerID:         c.CustomerID,
		Flow:               c.Flow,
		ReturnURL:          c.ReturnURL,
		Status:             string(c.Status),
		Paid:               c.Paid,
		CreatedAt:          c.CreatedAt,
		ProviderPayloadRaw: string(c.ProviderPayloadRaw),
		ProviderPayload:    c.ProviderPayload,
	}
}
