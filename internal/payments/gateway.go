package payments

import (
	"context"
	"fmt"
	"math"

	razorpay "github.com/razorpay/razorpay-go"
	"go.uber.org/zap"

	config "github.com/jimitchavdadev/ecommerce-platform/configs"
)

// Intent is a gateway-side pre-authorization keyed to an amount and a receipt
// id (our internal order id). The client completes the actual payment against
// it out-of-band.
type Intent struct {
	GatewayOrderID string `json:"gateway_order_id"`
	Amount         int64  `json:"amount"`
	Currency       string `json:"currency"`
}

type Gateway interface {
	CreateIntent(ctx context.Context, amount float64, receiptID string) (*Intent, error)
}

type RazorpayGateway struct {
	client *razorpay.Client
	log    *zap.SugaredLogger
}

func NewRazorpayGateway(cfg config.RazorpayConfig, log *zap.SugaredLogger) *RazorpayGateway {
	client := razorpay.NewClient(cfg.KeyID, cfg.KeySecret)
	client.SetTimeout(int16(cfg.Timeout.Seconds()))
	return &RazorpayGateway{client: client, log: log}
}

// CreateIntent opens a payment order at the gateway. A transport failure or
// timeout here leaves the internal order PENDING; nothing has been charged
// yet, so there is no state to unwind.
func (g *RazorpayGateway) CreateIntent(ctx context.Context, amount float64, receiptID string) (*Intent, error) {
	data := map[string]interface{}{
		"amount":   MinorUnits(amount),
		"currency": "INR",
		"receipt":  receiptID,
	}

	body, err := g.client.Order.Create(data, nil)
	if err != nil {
		g.log.Errorw("gateway order creation failed", "receipt", receiptID, "err", err)
		return nil, fmt.Errorf("create payment intent: %w", err)
	}

	id, _ := body["id"].(string)
	currency, _ := body["currency"].(string)
	intent := &Intent{GatewayOrderID: id, Currency: currency}
	if amt, ok := body["amount"].(float64); ok {
		intent.Amount = int64(amt)
	}
	return intent, nil
}

// MinorUnits scales a decimal amount into the gateway's smallest currency
// unit. The explicit round keeps 19.99*100 from landing on 1998.
func MinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
