package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"siampay/internal/domain/entities"
	"siampay/internal/usecase/interfaces"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
)

var ErrMissingMercadoPagoAccessToken = errors.New("missing MERCADOPAGO_ACCESS_TOKEN")
var ErrMercadoPagoGatewayNotConfigured = errors.New("mercado pago gateway not configured")

// MercadoPagoGateway is the alternate charge gateway for deployments outside
// the Thai payment methods. Only the QR flow maps onto Mercado Pago (pix);
// wallet/cashcard/bank-redirect methods are refused.
type MercadoPagoGateway struct {
	client payment.Client
}

var _ interfaces.IChargeGateway = (*MercadoPagoGateway)(nil)

func NewMercadoPagoGateway(accessToken string) (*MercadoPagoGateway, error) {
	if accessToken == "" {
		log.Printf("[charge][gateway] missing MERCADOPAGO_ACCESS_TOKEN")
		return nil, ErrMissingMercadoPagoAccessToken
	}

	cfg, err := config.New(accessToken)
	if err != nil {
		log.Printf("[charge][gateway] failed creating sdk config err=%v", err)
		return nil, err
	}
	log.Printf("[charge][gateway] Mercado Pago client initialized")

	return &MercadoPagoGateway{client: payment.NewClient(cfg)}, nil
}

func (g *MercadoPagoGateway) CreateCharge(ctx context.Context, method entities.PaymentMethod, order entities.ChargeOrder) (interfaces.GatewayCharge, error) {
	if g == nil || g.client == nil {
		log.Printf("[charge][gateway] gateway not configured")
		return interfaces.GatewayCharge{}, ErrMercadoPagoGatewayNotConfigured
	}
	if method != entities.MethodPromptPay {
		log.Printf("[charge][gateway] method %q not supported by mercado pago", method)
		return interfaces.GatewayCharge{}, ErrUnsupportedPaymentMethod
	}
	log.Printf("[charge][gateway] mp create start reference_id=%s amount=%d", order.ReferenceID, order.Amount)

	req := payment.Request{
		TransactionAmount: float64(order.Amount) / 100,
		Description:       order.Description,
		ExternalReference: order.ReferenceID,
		PaymentMethodID:   "pix",
	}
	if email := strings.TrimSpace(os.Getenv("MERCADOPAGO_PAYER_EMAIL")); email != "" {
		req.Payer = &payment.PayerRequest{Email: email}
	}

	resp, err := g.client.Create(ctx, req)
	if err != nil {
		log.Printf("[charge][gateway] mp create failed reference_id=%s err=%v", order.ReferenceID, err)
		return interfaces.GatewayCharge{}, err
	}

	b, err := json.Marshal(resp)
	if err != nil {
		log.Printf("[charge][gateway] mp response marshal failed err=%v", err)
		return interfaces.GatewayCharge{}, err
	}
	log.Printf("[charge][gateway] mp create success provider_charge_id=%d provider_status=%s", resp.ID, resp.Status)

	return interfaces.GatewayCharge{
		ProviderChargeID: fmt.Sprintf("%d", resp.ID),
		ProviderStatus:   resp.Status,
		Paid:             resp.Status == "approved",
		ProviderResponse: b,
	}, nil
}
