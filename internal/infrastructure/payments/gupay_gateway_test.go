package payments

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"siampay/internal/domain/entities"
	"siampay/pkg/gupay"
)

func sampleOrder() entities.ChargeOrder {
	return entities.ChargeOrder{
		Amount:      10050,
		Currency:    "THB",
		Description: "order #42",
		ReferenceID: "ref-42",
		CustomerID:  "cust-7",
		Flow:        "redirect",
		ReturnURL:   "https://merchant.example/return",
	}
}

func TestGuPayGateway_MockMode(t *testing.T) {
	t.Setenv("PAYMENT_GATEWAY_MOCK", "1")

	g, err := NewGuPayGateway("", "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result, err := g.CreateCharge(context.Background(), entities.MethodPromptPay, sampleOrder())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Paid || result.ProviderStatus != "successful" {
		t.Fatalf("expected paid mock charge, got %+v", result)
	}
	if !strings.HasPrefix(result.ProviderChargeID, "mock-") {
		t.Fatalf("unexpected provider charge id: %s", result.ProviderChargeID)
	}

	var resp map[string]any
	if err := json.Unmarshal(result.ProviderResponse, &resp); err != nil {
		t.Fatalf("mock response is not valid json: %v", err)
	}
	if resp["type"] != "promptpay" || resp["referenceId"] != "ref-42" {
		t.Fatalf("unexpected mock response: %v", resp)
	}
}

func TestNewGuPayGateway_MissingCredentials(t *testing.T) {
	t.Setenv("PAYMENT_GATEWAY_MOCK", "")
	t.Setenv("GUPAY_MOCK", "")

	if _, err := NewGuPayGateway("", "svc-1", ""); !errors.Is(err, ErrMissingGuPayAPIKey) {
		t.Fatalf("expected ErrMissingGuPayAPIKey, got %v", err)
	}
	if _, err := NewGuPayGateway("sk_test", "", ""); !errors.Is(err, ErrMissingGuPayServiceID) {
		t.Fatalf("expected ErrMissingGuPayServiceID, got %v", err)
	}
}

func TestGuPayGateway_CreateCharge_Dispatch(t *testing.T) {
	t.Setenv("PAYMENT_GATEWAY_MOCK", "")
	t.Setenv("GUPAY_MOCK", "")

	cases := []struct {
		method entities.PaymentMethod
		wanted string
	}{
		{entities.MethodTrueMoneyWallet, "truemoneywallet"},
		{entities.MethodTrueMoneyCashcard, "truemoneycashcard"},
		{entities.MethodPromptPay, "promptpay"},
		{entities.MethodBankSCB, "scb"},
		{entities.MethodBankKTB, "ktb"},
		{entities.MethodBankKBank, "kbank"},
		{entities.MethodBankBBL, "bbl"},
	}

	for _, tc := range cases {
		t.Run(string(tc.method), func(t *testing.T) {
			var gotType string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				var payload map[string]any
				_ = json.NewDecoder(r.Body).Decode(&payload)
				gotType, _ = payload["type"].(string)

				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`{"id":"chrg_001","status":"successful","paid":true}`))
			}))
			defer srv.Close()

			g, err := NewGuPayGateway("sk_test", "svc-1", srv.URL)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			result, err := g.CreateCharge(context.Background(), tc.method, sampleOrder())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if gotType != tc.wanted {
				t.Fatalf("expected discriminator %q, got %q", tc.wanted, gotType)
			}
			if result.ProviderChargeID != "chrg_001" || !result.Paid {
				t.Fatalf("unexpected result: %+v", result)
			}
			if len(result.ProviderResponse) == 0 {
				t.Fatalf("expected provider response to be retained")
			}
		})
	}
}

func TestGuPayGateway_CreateCharge_ProviderError(t *testing.T) {
	t.Setenv("PAYMENT_GATEWAY_MOCK", "")
	t.Setenv("GUPAY_MOCK", "")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusPaymentRequired)
		_, _ = w.Write([]byte(`{"error":{"code":"insufficient_fund","message":"balance is not enough","type":"api_error"}}`))
	}))
	defer srv.Close()

	g, err := NewGuPayGateway("sk_test", "svc-1", srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = g.CreateCharge(context.Background(), entities.MethodTrueMoneyWallet, sampleOrder())
	var provErr *gupay.Error
	if !errors.As(err, &provErr) || provErr.Code != "insufficient_fund" {
		t.Fatalf("expected provider error, got %v", err)
	}
}

func TestMercadoPagoGateway_ConfigurationErrors(t *testing.T) {
	g := &MercadoPagoGateway{}

	_, err := g.CreateCharge(context.Background(), entities.MethodTrueMoneyWallet, sampleOrder())
	if !errors.Is(err, ErrMercadoPagoGatewayNotConfigured) {
		t.Fatalf("expected not configured error for zero-value gateway, got %v", err)
	}

	if _, err := NewMercadoPagoGateway(""); !errors.Is(err, ErrMissingMercadoPagoAccessToken) {
		t.Fatalf("expected ErrMissingMercadoPagoAccessToken, got %v", err)
	}
}
