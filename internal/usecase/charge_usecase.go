package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"time"

	"siampay/internal/domain/entities"
	"siampay/internal/usecase/interfaces"
	"siampay/pkg/gupay"

	"github.com/google/uuid"
)

var (
	ErrChargeNotFound            = errors.New("charge not found")
	ErrInvalidChargeID           = errors.New("invalid charge id")
	ErrInvalidPaymentMethod      = errors.New("invalid payment method")
	ErrInvalidChargeAmount       = errors.New("invalid charge amount")
	ErrInvalidChargeCurrency     = errors.New("invalid charge currency")
	ErrInvalidChargeReferenceID  = errors.New("invalid reference_id")
	ErrInvalidChargeCustomerID   = errors.New("invalid customer_id")
	ErrChargeGatewayDeclined     = errors.New("charge declined by payment gateway")
	ErrChargeGatewayBadRequest   = errors.New("charge gateway bad request")
	ErrChargeGatewayUnauthorized = errors.New("charge gateway unauthorized")
	ErrChargeGatewayUnavailable  = errors.New("charge gateway unavailable")
)

// CreateChargeCommand is the validated input for charge creation. Amount is
// in the currency's smallest unit.
type CreateChargeCommand struct {
	Method      entities.PaymentMethod
	Amount      int64
	Currency    string
	Description string
	ReferenceID string
	CustomerID  string
	Flow        string
	ReturnURL   string
}

// IChargeUseCase encapsulates the "create charge at the provider and persist
// the record" behavior plus the read paths used by the HTTP adapter.

type IChargeUseCase interface {
	CreateCharge(ctx context.Context, cmd CreateChargeCommand) (entities.Charge, error)
	GetByID(ctx context.Context, id string) (entities.Charge, error)
	ListByReferenceID(ctx context.Context, referenceID string) ([]entities.Charge, error)
}

type ChargeUseCase struct {
	repo    interfaces.IChargeRepository
	gateway interfaces.IChargeGateway
}

var _ IChargeUseCase = (*ChargeUseCase)(nil)

func NewChargeUseCase(repo interfaces.IChargeRepository, gateway interfaces.IChargeGateway) *ChargeUseCase {
	return &ChargeUseCase{repo: repo, gateway: gateway}
}

// CreateCharge validates cmd, submits the charge through the gateway and
// persists the resulting record. The GuPay client itself is pass-through;
// amount/currency/correlation validation lives here at the service edge.
func (u *ChargeUseCase) CreateCharge(ctx context.Context, cmd CreateChargeCommand) (entities.Charge, error) {
	log.Printf("[charge][usecase] create start method=%s reference_id=%s amount=%d", cmd.Method, cmd.ReferenceID, cmd.Amount)

	if !cmd.Method.Valid() {
		log.Printf("[charge][usecase] invalid method %q", cmd.Method)
		return entities.Charge{}, ErrInvalidPaymentMethod
	}
	if cmd.Amount <= 0 {
		log.Printf("[charge][usecase] invalid amount %d", cmd.Amount)
		return entities.Charge{}, ErrInvalidChargeAmount
	}
	currency := strings.ToUpper(strings.TrimSpace(cmd.Currency))
	if !validCurrencyCode(currency) {
		log.Printf("[charge][usecase] invalid currency %q", cmd.Currency)
		return entities.Charge{}, ErrInvalidChargeCurrency
	}
	referenceID := strings.TrimSpace(cmd.ReferenceID)
	if referenceID == "" {
		log.Printf("[charge][usecase] invalid reference_id (empty)")
		return entities.Charge{}, ErrInvalidChargeReferenceID
	}
	customerID := strings.TrimSpace(cmd.CustomerID)
	if customerID == "" {
		log.Printf("[charge][usecase] invalid customer_id (empty) reference_id=%s", referenceID)
		return entities.Charge{}, ErrInvalidChargeCustomerID
	}
	if u.gateway == nil {
		log.Printf("[charge][usecase] gateway not configured reference_id=%s", referenceID)
		return entities.Charge{}, errors.New("charge gateway not configured")
	}
	if u.repo == nil {
		log.Printf("[charge][usecase] charge repository not configured reference_id=%s", referenceID)
		return entities.Charge{}, errors.New("charge repository not configured")
	}

	order := entities.ChargeOrder{
		Amount:      cmd.Amount,
		Currency:    currency,
		Description: cmd.Description,
		ReferenceID: referenceID,
		CustomerID:  customerID,
		Flow:        cmd.Flow,
		ReturnURL:   cmd.ReturnURL,
	}

	log.Printf("[charge][usecase] calling charge gateway method=%s reference_id=%s", cmd.Method, referenceID)
	result, err := u.gateway.CreateCharge(ctx, cmd.Method, order)
	if err != nil {
		log.Printf("[charge][usecase] charge gateway failed method=%s reference_id=%s err=%v", cmd.Method, referenceID, err)
		return entities.Charge{}, mapGatewayError(err)
	}
	log.Printf("[charge][usecase] charge gateway success reference_id=%s provider_charge_id=%s provider_status=%s", referenceID, result.ProviderChargeID, result.ProviderStatus)

	var parsed map[string]interface{}
	if err := json.Unmarshal(result.ProviderResponse, &parsed); err != nil {
		log.Printf("[charge][usecase] provider response unmarshal failed reference_id=%s err=%v", referenceID, err)
	}

	now := time.Now().UTC()
	c := entities.Charge{
		ID:                 uuid.NewString(),
		ProviderChargeID:   result.ProviderChargeID,
		Method:             cmd.Method,
		Amount:             cmd.Amount,
		Currency:           currency,
		Description:        cmd.Description,
		ReferenceID:        referenceID,
		CustomerID:         customerID,
		Flow:               cmd.Flow,
		ReturnURL:          cmd.ReturnURL,
		Status:             chargeStatusFromProvider(result),
		Paid:               result.Paid,
		CreatedAt:          now,
		UpdatedAt:          now,
		ProviderPayloadRaw: result.ProviderResponse,
		ProviderPayload:    parsed,
	}

	created, err := u.repo.Create(ctx, c)
	if err != nil {
		log.Printf("[charge][usecase] charge repository create failed reference_id=%s charge_id=%s err=%v", referenceID, c.ID, err)
		return entities.Charge{}, err
	}
	log.Printf("[charge][usecase] create success reference_id=%s charge_id=%s status=%s", referenceID, created.ID, created.Status)
	return created, nil
}

func (u *ChargeUseCase) GetByID(ctx context.Context, id string) (entities.Charge, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Charge{}, ErrInvalidChargeID
	}

	c, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Charge{}, err
	}
	if c.ID == "" {
		return entities.Charge{}, ErrChargeNotFound
	}
	return c, nil
}

func (u *ChargeUseCase) ListByReferenceID(ctx context.Context, referenceID string) ([]entities.Charge, error) {
	referenceID = strings.TrimSpace(referenceID)
	if referenceID == "" {
		return nil, ErrInvalidChargeReferenceID
	}
	return u.repo.ListByReferenceID(ctx, referenceID)
}

func validCurrencyCode(code string) bool {
	if len(code) != 3 {
		return false
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

func chargeStatusFromProvider(result interfaces.GatewayCharge) entities.ChargeStatus {
	if result.Paid {
		return entities.ChargeStatusPaid
	}
	switch strings.ToLower(result.ProviderStatus) {
	case "failed", "rejected", "expired":
		return entities.ChargeStatusFailed
	}
	return entities.ChargeStatusPending
}

// mapGatewayError translates typed GuPay errors into use-case sentinels so
// the HTTP adapter can answer with the right status.
func mapGatewayError(err error) error {
	var provErr *gupay.Error
	if errors.As(err, &provErr) {
		switch {
		case provErr.Type == "authentication_error" || provErr.Code == "authentication_failure":
			return ErrChargeGatewayUnauthorized
		case provErr.Type == "invalid_request_error" || provErr.Code == "invalid_request":
			return ErrChargeGatewayBadRequest
		case provErr.Code == "insufficient_fund" || provErr.Type == "payment_error":
			return ErrChargeGatewayDeclined
		}
		return ErrChargeGatewayDeclined
	}
	if errors.Is(err, gupay.ErrUnexpected) {
		return ErrChargeGatewayUnavailable
	}
	return err
}
