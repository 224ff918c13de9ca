package gupay

import (
	"context"
	"encoding/json"
)

// Wire discriminators for the non-bank payment methods.
const (
	TypeTrueMoneyWallet   = "truemoneywallet"
	TypeTrueMoneyCashcard = "truemoneycashcard"
	TypePromptPay         = "promptpay"
)

// Bank identifies an internet-banking provider. The bank code is used
// verbatim as the charge's wire discriminator.
type Bank string

const (
	BankSCB   Bank = "scb"
	BankKTB   Bank = "ktb"
	BankKBank Bank = "kbank"
	BankBBL   Bank = "bbl"
)

// Flow is the provider-defined enumeration of how the end user completes the
// payment.
type Flow string

const FlowRedirect Flow = "redirect"

// ChargeRequest carries the caller-supplied fields shared by every payment
// method.
//
// Amount is in the currency's smallest unit (satang for THB) and Currency is
// a 3-letter code. ReferenceID and CustomerID are opaque strings the
// provider uses for idempotent correlation; the client performs no local
// validation of any field.
type ChargeRequest struct {
	Amount      int64  `json:"amount"`
	Currency    string `json:"currency"`
	Description string `json:"description,omitempty"`
	ReferenceID string `json:"referenceId,omitempty"`
	CustomerID  string `json:"customerId,omitempty"`
	Flow        Flow   `json:"flow,omitempty"`
	ReturnURL   string `json:"returnUrl,omitempty"`
}

// CashcardChargeRequest is the cashcard variant of ChargeRequest. PIN is
// reserved by the provider and currently ignored.
type CashcardChargeRequest struct {
	ChargeRequest
	PIN string `json:"pin,omitempty"`
}

// chargePayload is the wire form of a charge: the caller's request fields
// plus the method discriminator and the configured service id. Built by an
// explicit constructor so the field set stays statically checked.
type chargePayload struct {
	Type        string `json:"type"`
	ServiceID   string `json:"serviceId"`
	Amount      int64  `json:"amount"`
	Currency    string `json:"currency"`
	Description string `json:"description,omitempty"`
	ReferenceID string `json:"referenceId,omitempty"`
	CustomerID  string `json:"customerId,omitempty"`
	Flow        Flow   `json:"flow,omitempty"`
	ReturnURL   string `json:"returnUrl,omitempty"`
	PIN         string `json:"pin,omitempty"`
}

func newChargePayload(chargeType, serviceID string, req ChargeRequest) chargePayload {
	return chargePayload{
		Type:        chargeType,
		ServiceID:   serviceID,
		Amount:      req.Amount,
		Currency:    req.Currency,
		Description: req.Description,
		ReferenceID: req.ReferenceID,
		CustomerID:  req.CustomerID,
		Flow:        req.Flow,
		ReturnURL:   req.ReturnURL,
	}
}

// Charge is the provider's description of a created charge, returned
// field-for-field as received. Method-specific fields are empty when the
// provider omits them.
type Charge struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Status      string `json:"status"`
	Amount      int64  `json:"amount"`
	Currency    string `json:"currency"`
	Paid        bool   `json:"paid"`
	Description string `json:"description,omitempty"`
	ReferenceID string `json:"referenceId,omitempty"`
	CustomerID  string `json:"customerId,omitempty"`
	Flow        Flow   `json:"flow,omitempty"`
	ReturnURL   string `json:"returnUrl,omitempty"`

	MobileNumber    string `json:"mobileNumber,omitempty"`
	SerialNumber    string `json:"serialNumber,omitempty"`
	PIN             string `json:"pin,omitempty"`
	TransactionID   string `json:"transactionId,omitempty"`
	ReferenceNumber string `json:"referenceNumber,omitempty"`

	CreatedAt string `json:"createdAt,omitempty"`
	PaidAt    string `json:"paidAt,omitempty"`

	// Raw is the undecoded response body, kept for callers that persist
	// provider payloads.
	Raw json.RawMessage `json:"-"`
}

// CreateTrueMoneyWalletCharge creates a TrueMoney Wallet charge.
func (c *Client) CreateTrueMoneyWalletCharge(ctx context.Context, req ChargeRequest) (*Charge, error) {
	return c.createCharge(ctx, newChargePayload(TypeTrueMoneyWallet, c.serviceID, req))
}

// CreateTrueMoneyCashcardCharge creates a TrueMoney Cashcard charge.
func (c *Client) CreateTrueMoneyCashcardCharge(ctx context.Context, req CashcardChargeRequest) (*Charge, error) {
	payload := newChargePayload(TypeTrueMoneyCashcard, c.serviceID, req.ChargeRequest)
	payload.PIN = req.PIN
	return c.createCharge(ctx, payload)
}

// CreateInternetBankingCharge creates a bank-redirect charge. The bank code
// becomes the wire discriminator directly.
func (c *Client) CreateInternetBankingCharge(ctx context.Context, bank Bank, req ChargeRequest) (*Charge, error) {
	return c.createCharge(ctx, newChargePayload(string(bank), c.serviceID, req))
}

// CreatePromptPayCharge creates a PromptPay QR charge.
func (c *Client) CreatePromptPayCharge(ctx context.Context, req ChargeRequest) (*Charge, error) {
	return c.createCharge(ctx, newChargePayload(TypePromptPay, c.serviceID, req))
}
