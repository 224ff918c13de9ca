package entities

import (
	"encoding/json"
	"time"
)

// PaymentMethod is the wire-level discriminator identifying how the end user
// pays. Internet-banking methods use the bank code directly.
type PaymentMethod string

const (
	MethodTrueMoneyWallet   PaymentMethod = "truemoneywallet"
	MethodTrueMoneyCashcard PaymentMethod = "truemoneycashcard"
	MethodPromptPay         PaymentMethod = "promptpay"
	MethodBankSCB           PaymentMethod = "scb"
	MethodBankKTB           PaymentMethod = "ktb"
	MethodBankKBank         PaymentMethod = "kbank"
	MethodBankBBL           PaymentMethod = "bbl"
)

// PaymentMethods lists every method the service accepts.
var PaymentMethods = []PaymentMethod{
	MethodTrueMoneyWallet,
	MethodTrueMoneyCashcard,
	MethodPromptPay,
	MethodBankSCB,
	MethodBankKTB,
	MethodBankKBank,
	MethodBankBBL,
}

func (m PaymentMethod) Valid() bool {
	for _, known := range PaymentMethods {
		if m == known {
			return true
		}
	}
	return false
}

// InternetBanking reports whether the method is a bank-redirect flow.
func (m PaymentMethod) InternetBanking() bool {
	switch m {
	case MethodBankSCB, MethodBankKTB, MethodBankKBank, MethodBankBBL:
		return true
	}
	return false
}

// ChargeStatus represents the charge outcome as seen by this service.
type ChargeStatus string

const (
	ChargeStatusPending ChargeStatus = "pending"
	ChargeStatusPaid    ChargeStatus = "paid"
	ChargeStatusFailed  ChargeStatus = "failed"
)

// ChargeOrder carries the caller-supplied charge fields handed to a payment
// gateway. Amounts are in the currency's smallest unit (satang for THB).
type ChargeOrder struct {
	Amount      int64
	Currency    string
	Description string
	ReferenceID string
	CustomerID  string
	Flow        string
	ReturnURL   string
}

// Charge is the charge record persisted by the service.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (reference_id-index): reference_id
//
// Provider payload:
//   - ProviderPayloadRaw keeps the provider response body (JSON) for
//     traceability/audit.
//   - ProviderPayload is an optional parsed representation, useful for
//     querying/debugging.
type Charge struct {
	ID               string        `json:"id"`
	ProviderChargeID string        `json:"provider_charge_id"`
	Method           PaymentMethod `json:"method"`
	Amount           int64         `json:"amount"`
	Currency         string        `json:"currency"`
	Description      string        `json:"description,omitempty"`
	ReferenceID      string        `json:"reference_id"`
	CustomerID       string        `json:"customer_id"`
	Flow             string        `json:"flow,omitempty"`
	ReturnURL        string        `json:"return_url,omitempty"`
	Status           ChargeStatus  `json:"status"`
	Paid             bool          `json:"paid"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`

	ProviderPayloadRaw json.RawMessage        `json:"provider_payload_raw,omitempty"`
	ProviderPayload    map[string]interface{} `json:"provider_payload,omitempty"`
}
