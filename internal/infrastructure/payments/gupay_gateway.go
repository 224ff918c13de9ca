package payments

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"siampay/internal/domain/entities"
	"siampay/internal/usecase/interfaces"
	"siampay/pkg/gupay"
)

var ErrMissingGuPayAPIKey = errors.New("missing GUPAY_API_KEY")
var ErrMissingGuPayServiceID = errors.New("missing GUPAY_SERVICE_ID")
var ErrGuPayGatewayNotConfigured = errors.New("gupay gateway not configured")
var ErrUnsupportedPaymentMethod = errors.New("payment method not supported by gateway")

// GuPayGateway adapts the typed GuPay client to the service's charge gateway
// interface. In mock mode no outbound call is made and every charge is
// answered as paid.
type GuPayGateway struct {
	client   *gupay.Client
	mockMode bool
}

var _ interfaces.IChargeGateway = (*GuPayGateway)(nil)

func NewGuPayGateway(apiKey, serviceID, baseURL string) (*GuPayGateway, error) {
	if isPaymentGatewayMockEnabled() {
		log.Printf("[charge][gateway] mock mode enabled")
		return &GuPayGateway{mockMode: true}, nil
	}

	if apiKey == "" {
		log.Printf("[charge][gateway] missing GUPAY_API_KEY")
		return nil, ErrMissingGuPayAPIKey
	}
	if serviceID == "" {
		log.Printf("[charge][gateway] missing GUPAY_SERVICE_ID")
		return nil, ErrMissingGuPayServiceID
	}

	client := gupay.NewClient(gupay.Config{
		APIKey:     apiKey,
		ServiceID:  serviceID,
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	})
	log.Printf("[charge][gateway] GuPay client initialized")

	return &GuPayGateway{client: client}, nil
}

func (g *GuPayGateway) CreateCharge(ctx context.Context, method entities.PaymentMethod, order entities.ChargeOrder) (interfaces.GatewayCharge, error) {
	if g != nil && g.mockMode {
		return g.mockCharge(method, order)
	}

	if g == nil || g.client == nil {
		log.Printf("[charge][gateway] gateway not configured")
		return interfaces.GatewayCharge{}, ErrGuPayGatewayNotConfigured
	}
	log.Printf("[charge][gateway] create start method=%s reference_id=%s amount=%d", method, order.ReferenceID, order.Amount)

	req := gupay.ChargeRequest{
		Amount:      order.Amount,
		Currency:    order.Currency,
		Description: order.Description,
		ReferenceID: order.ReferenceID,
		CustomerID:  order.CustomerID,
		Flow:        gupay.Flow(order.Flow),
		ReturnURL:   order.ReturnURL,
	}

	var charge *gupay.Charge
	var err error
	switch method {
	case entities.MethodTrueMoneyWallet:
		charge, err = g.client.CreateTrueMoneyWalletCharge(ctx, req)
	case entities.MethodTrueMoneyCashcard:
		charge, err = g.client.CreateTrueMoneyCashcardCharge(ctx, gupay.CashcardChargeRequest{ChargeRequest: req})
	case entities.MethodPromptPay:
		charge, err = g.client.CreatePromptPayCharge(ctx, req)
	default:
		if !method.InternetBanking() {
			log.Printf("[charge][gateway] unsupported method %q", method)
			return interfaces.GatewayCharge{}, ErrUnsupportedPaymentMethod
		}
		charge, err = g.client.CreateInternetBankingCharge(ctx, gupay.Bank(method), req)
	}
	if err != nil {
		log.Printf("[charge][gateway] create failed method=%s reference_id=%s err=%v", method, order.ReferenceID, err)
		return interfaces.GatewayCharge{}, err
	}
	log.Printf("[charge][gateway] create success provider_charge_id=%s provider_status=%s", charge.ID, charge.Status)

	return interfaces.GatewayCharge{
		ProviderChargeID: charge.ID,
		ProviderStatus:   charge.Status,
		Paid:             charge.Paid,
		ProviderResponse: charge.Raw,
	}, nil
}

func (g *GuPayGateway) mockCharge(method entities.PaymentMethod, order entities.ChargeOrder) (interfaces.GatewayCharge, error) {
	log.Printf("[charge][gateway] mock create start method=%s reference_id=%s", method, order.ReferenceID)

	id := "mock-" + strconv.FormatInt(time.Now().UTC().UnixNano(), 10)
	now := time.Now().UTC().Format(time.RFC3339Nano)
	resp := map[string]any{
		"id":          id,
		"type":        string(method),
		"status":      "successful",
		"amount":      order.Amount,
		"currency":    order.Currency,
		"paid":        true,
		"referenceId": order.ReferenceID,
		"customerId":  order.CustomerID,
		"createdAt":   now,
		"paidAt":      now,
	}

	b, err := json.Marshal(resp)
	if err != nil {
		log.Printf("[charge][gateway] mock response marshal failed err=%v", err)
		return interfaces.GatewayCharge{}, err
	}

	log.Printf("[charge][gateway] mock create success provider_charge_id=%s provider_status=successful", id)
	return interfaces.GatewayCharge{
		ProviderChargeID: id,
		ProviderStatus:   "successful",
		Paid:             true,
		ProviderResponse: b,
	}, nil
}

func isPaymentGatewayMockEnabled() bool {
	for _, key := range []string{"PAYMENT_GATEWAY_MOCK", "GUPAY_MOCK"} {
		v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
		switch v {
		case "1", "true", "yes", "on", "mock":
			return true
		}
	}
	return false
}
