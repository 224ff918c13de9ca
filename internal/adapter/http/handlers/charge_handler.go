package handlers

import (
	"errors"
	"log"
	"net/http"

	request "siampay/internal/adapter/http/dto/request"
	response "siampay/internal/adapter/http/dto/response"
	"siampay/internal/usecase"
	"siampay/pkg"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidChargePayload = pkg.NewDomainErrorSimple("INVALID_CHARGE_INPUT", "Invalid charge payload", http.StatusBadRequest)
)

// ChargeHandler handles HTTP requests for charges.

type ChargeHandler struct {
	usecase usecase.IChargeUseCase
}

func NewChargeHandler(uc usecase.IChargeUseCase) *ChargeHandler {
	return &ChargeHandler{usecase: uc}
}

// CreateCharge creates a charge at the configured payment provider and
// persists the resulting record.
func (h *ChargeHandler) CreateCharge(c *gin.Context) {
	var payload request.ChargeCreateRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		log.Printf("[charge][handler] invalid payload err=%v", err)
		c.JSON(errInvalidChargePayload.HTTPStatus, errInvalidChargePayload.ToHTTPError())
		return
	}

	cmd, err := payload.ToCommand()
	if err != nil {
		log.Printf("[charge][handler] invalid charge input err=%v", err)
		c.JSON(errInvalidChargePayload.HTTPStatus, errInvalidChargePayload.ToHTTPError())
		return
	}
	log.Printf("[charge][handler] create start method=%s reference_id=%s", cmd.Method, cmd.ReferenceID)

	created, err := h.usecase.CreateCharge(c.Request.Context(), cmd)
	if err != nil {
		log.Printf("[charge][handler] create failed reference_id=%s err=%v", cmd.ReferenceID, err)
		appErr := mapChargeError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[charge][handler] create success reference_id=%s charge_id=%s status=%s", cmd.ReferenceID, created.ID, created.Status)

	c.JSON(http.StatusCreated, response.FromCharge(created))
}

// GetChargeByID returns a single charge by its internal id.
func (h *ChargeHandler) GetChargeByID(c *gin.Context) {
	chargeID := c.Param("charge_id")
	log.Printf("[charge][handler] get start charge_id=%s", chargeID)

	charge, err := h.usecase.GetByID(c.Request.Context(), chargeID)
	if err != nil {
		log.Printf("[charge][handler] get failed charge_id=%s err=%v", chargeID, err)
		appErr := mapChargeError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromCharge(charge))
}

// GetLatestChargeByReferenceID returns the most recent charge created for a
// merchant reference id.
func (h *ChargeHandler) GetLatestChargeByReferenceID(c *gin.Context) {
	referenceID := c.Param("reference_id")
	log.Printf("[charge][handler] get-by-reference start reference_id=%s", referenceID)

	charges, err := h.usecase.ListByReferenceID(c.Request.Context(), referenceID)
	if err != nil {
		log.Printf("[charge][handler] get-by-reference failed reference_id=%s err=%v", referenceID, err)
		appErr := mapChargeError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	if len(charges) == 0 {
		log.Printf("[charge][handler] get-by-reference not-found reference_id=%s", referenceID)
		appErr := pkg.NewDomainErrorSimple("CHARGE_NOT_FOUND", "Charge not found", http.StatusNotFound)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	latest := charges[0]
	for _, ch := range charges[1:] {
		if ch.CreatedAt.After(latest.CreatedAt) {
			latest = ch
		}
	}
	log.Printf("[charge][handler] get-by-reference success reference_id=%s charge_id=%s status=%s", referenceID, latest.ID, latest.Status)

	c.JSON(http.StatusOK, response.FromCharge(latest))
}

func mapChargeError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidPaymentMethod),
		errors.Is(err, usecase.ErrInvalidChargeAmount),
		errors.Is(err, usecase.ErrInvalidChargeCurrency),
		errors.Is(err, usecase.ErrInvalidChargeReferenceID),
		errors.Is(err, usecase.ErrInvalidChargeCustomerID),
		errors.Is(err, usecase.ErrInvalidChargeID),
		errors.Is(err, usecase.ErrChargeGatewayBadRequest):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrChargeGatewayDeclined):
		return pkg.NewDomainErrorSimple("CHARGE_DECLINED", "Charge declined by payment provider", http.StatusPaymentRequired)
	case errors.Is(err, usecase.ErrChargeGatewayUnauthorized):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_UNAUTHORIZED", "Payment provider unauthorized", http.StatusUnauthorized)
	case errors.Is(err, usecase.ErrChargeGatewayUnavailable):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_UNAVAILABLE", "Payment provider unavailable", http.StatusBadGateway)
	case errors.Is(err, usecase.ErrChargeNotFound):
		return pkg.NewDomainErrorSimple("CHARGE_NOT_FOUND", "Charge not found", http.StatusNotFound)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
