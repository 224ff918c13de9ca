package request

import (
	"errors"
	"strings"

	"siampay/internal/domain/entities"
	"siampay/internal/usecase"
)

var (
	ErrUnknownPaymentMethod = errors.New("unknown payment method")
	ErrInvalidCurrencyCode  = errors.New("invalid currency code")
)

// ChargeCreateRequest is the payload for the charge-creation route. Amount is
// in the currency's smallest unit (satang for THB).
type ChargeCreateRequest struct {
	Method      string `json:"method" binding:"required"`
	Amount      int64  `json:"amount" binding:"required"`
	Currency    string `json:"currency" binding:"required"`
	Description string `json:"description"`
	ReferenceID string `json:"reference_id" binding:"required"`
	CustomerID  string `json:"customer_id" binding:"required"`
	Flow        string `json:"flow"`
	ReturnURL   string `json:"return_url"`
}

// ResolveMethod maps the declared method onto the known wire discriminators.
func (r ChargeCreateRequest) ResolveMethod() (entities.PaymentMethod, error) {
	m := entities.PaymentMethod(strings.ToLower(strings.TrimSpace(r.Method)))
	if !m.Valid() {
		return "", ErrUnknownPaymentMethod
	}
	return m, nil
}

// ResolveCurrency normalizes the currency to an upper-case 3-letter code.
func (r ChargeCreateRequest) ResolveCurrency() (string, error) {
	code := strings.ToUpper(strings.TrimSpace(r.Currency))
	if len(code) != 3 {
		return "", ErrInvalidCurrencyCode
	}
	for _, c := range code {
		if c < 'A' || c > 'Z' {
			return "", ErrInvalidCurrencyCode
		}
	}
	return code, nil
}

// ToCommand translates the request into the use-case command.
func (r ChargeCreateRequest) ToCommand() (usecase.CreateChargeCommand, error) {
	method, err := r.ResolveMethod()
	if err != nil {
		return usecase.CreateChargeCommand{}, err
	}
	currency, err := r.ResolveCurrency()
	if err != nil {
		return usecase.CreateChargeCommand{}, err
	}
	return usecase.CreateChargeCommand{
		Method:      method,
		Amount:      r.Amount,
		Currency:    currency,
		Description: strings.TrimSpace(r.Description),
		ReferenceID: strings.TrimSpace(r.ReferenceID),
		CustomerID:  strings.TrimSpace(r.CustomerID),
		Flow:        strings.TrimSpace(r.Flow),
		ReturnURL:   strings.TrimSpace(r.ReturnURL),
	}, nil
}
