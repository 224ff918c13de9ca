package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"siampay/internal/adapter/http/handlers/mocks"
	"siampay/internal/domain/entities"
	"siampay/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func validChargeBody() string {
	return `{
		"method": "truemoneywallet",
		"amount": 10050,
		"currency": "THB",
		"reference_id": "ref-42",
		"customer_id": "cust-7",
		"flow": "redirect"
	}`
}

func TestChargeHandler_CreateCharge(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("invalid json payload", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIChargeUseCase(ctrl)
		h := NewChargeHandler(uc)

		r := gin.New()
		r.POST("/v1/charges", h.CreateCharge)

		req := httptest.NewRequest(http.MethodPost, "/v1/charges", bytes.NewBufferString("{"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("unknown method", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIChargeUseCase(ctrl)
		h := NewChargeHandler(uc)

		r := gin.New()
		r.POST("/v1/charges", h.CreateCharge)

		body := `{"method":"visa","amount":100,"currency":"THB","reference_id":"r","customer_id":"c"}`
		req := httptest.NewRequest(http.MethodPost, "/v1/charges", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("declined charge maps to 402", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIChargeUseCase(ctrl)
		h := NewChargeHandler(uc)

		r := gin.New()
		r.POST("/v1/charges", h.CreateCharge)

		uc.EXPECT().CreateCharge(gomock.Any(), gomock.Any()).Return(entities.Charge{}, usecase.ErrChargeGatewayDeclined)

		req := httptest.NewRequest(http.MethodPost, "/v1/charges", bytes.NewBufferString(validChargeBody()))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusPaymentRequired {
			t.Fatalf("expected 402, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIChargeUseCase(ctrl)
		h := NewChargeHandler(uc)

		r := gin.New()
		r.POST("/v1/charges", h.CreateCharge)

		now := time.Now().UTC()
		uc.EXPECT().
			CreateCharge(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, cmd usecase.CreateChargeCommand) (entities.Charge, error) {
				if cmd.Method != entities.MethodTrueMoneyWallet || cmd.Amount != 10050 {
					t.Fatalf("unexpected command: %+v", cmd)
				}
				return entities.Charge{
					ID:               "chg-1",
					ProviderChargeID: "chrg_001",
					Method:           cmd.Method,
					Amount:           cmd.Amount,
					Currency:         cmd.Currency,
					ReferenceID:      cmd.ReferenceID,
					CustomerID:       cmd.CustomerID,
					Status:           entities.ChargeStatusPending,
					CreatedAt:        now,
				}, nil
			})

		req := httptest.NewRequest(http.MethodPost, "/v1/charges", bytes.NewBufferString(validChargeBody()))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
		}
		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body["charge_id"] != "chg-1" || body["provider_charge_id"] != "chrg_001" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})
}

func TestChargeHandler_GetChargeByID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIChargeUseCase(ctrl)
		h := NewChargeHandler(uc)

		r := gin.New()
		r.GET("/v1/charges/:charge_id", h.GetChargeByID)

		uc.EXPECT().GetByID(gomock.Any(), "missing").Return(entities.Charge{}, usecase.ErrChargeNotFound)

		req := httptest.NewRequest(http.MethodGet, "/v1/charges/missing", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIChargeUseCase(ctrl)
		h := NewChargeHandler(uc)

		r := gin.New()
		r.GET("/v1/charges/:charge_id", h.GetChargeByID)

		uc.EXPECT().GetByID(gomock.Any(), "chg-1").Return(entities.Charge{ID: "chg-1", Status: entities.ChargeStatusPaid}, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/charges/chg-1", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})
}

func TestChargeHandler_GetLatestChargeByReferenceID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("list error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIChargeUseCase(ctrl)
		h := NewChargeHandler(uc)

		r := gin.New()
		r.GET("/v1/references/:reference_id/charge", h.GetLatestChargeByReferenceID)

		uc.EXPECT().ListByReferenceID(gomock.Any(), "ref-42").Return(nil, usecase.ErrInvalidChargeReferenceID)

		req := httptest.NewRequest(http.MethodGet, "/v1/references/ref-42/charge", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIChargeUseCase(ctrl)
		h := NewChargeHandler(uc)

		r := gin.New()
		r.GET("/v1/references/:reference_id/charge", h.GetLatestChargeByReferenceID)

		uc.EXPECT().ListByReferenceID(gomock.Any(), "ref-42").Return([]entities.Charge{}, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/references/ref-42/charge", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("success returns latest", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIChargeUseCase(ctrl)
		h := NewChargeHandler(uc)

		r := gin.New()
		r.GET("/v1/references/:reference_id/charge", h.GetLatestChargeByReferenceID)

		old := entities.Charge{ID: "old", ReferenceID: "ref-42", CreatedAt: time.Now().Add(-time.Hour)}
		latest := entities.Charge{ID: "latest", ReferenceID: "ref-42", CreatedAt: time.Now()}
		uc.EXPECT().ListByReferenceID(gomock.Any(), "ref-42").Return([]entities.Charge{old, latest}, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/references/ref-42/charge", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body["charge_id"] != "latest" {
			t.Fatalf("expected latest charge, got body: %s", w.Body.String())
		}
	})
}

func TestMapChargeError(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{usecase.ErrInvalidPaymentMethod, http.StatusBadRequest},
		{usecase.ErrInvalidChargeAmount, http.StatusBadRequest},
		{usecase.ErrInvalidChargeCurrency, http.StatusBadRequest},
		{usecase.ErrInvalidChargeReferenceID, http.StatusBadRequest},
		{usecase.ErrInvalidChargeCustomerID, http.StatusBadRequest},
		{usecase.ErrInvalidChargeID, http.StatusBadRequest},
		{usecase.ErrChargeGatewayBadRequest, http.StatusBadRequest},
		{usecase.ErrChargeGatewayDeclined, http.StatusPaymentRequired},
		{usecase.ErrChargeGatewayUnauthorized, http.StatusUnauthorized},
		{usecase.ErrChargeGatewayUnavailable, http.StatusBadGateway},
		{usecase.ErrChargeNotFound, http.StatusNotFound},
		{errors.New("other"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		got := mapChargeError(tc.err)
		if got.HTTPStatus != tc.code {
			t.Fatalf("for err %v expected %d got %d", tc.err, tc.code, got.HTTPStatus)
		}
	}
}
