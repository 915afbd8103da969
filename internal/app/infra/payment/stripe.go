package payment

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"github.com/stripe/stripe-go/v76/webhook"

	"kcstudio/storefront/internal/app/domains/entity/etpayment"
)

// 写入 intent metadata 的集成标识
const integrationTag = "keychain_studio"

// StripeGateway Stripe 支付网关
type StripeGateway struct {
	api           *client.API
	webhookSecret string
}

// NewStripeGateway 创建网关客户端
func NewStripeGateway(secretKey, webhookSecret string) *StripeGateway {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeGateway{api: api, webhookSecret: webhookSecret}
}

// CreateIntent 创建 PaymentIntent，启用自动支付方式
func (g *StripeGateway) CreateIntent(ctx context.Context, p etpayment.IntentParams) (*etpayment.Intent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(p.AmountCents),
		Currency: stripe.String(p.Currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	if p.CustomerEmail != "" {
		params.ReceiptEmail = stripe.String(p.CustomerEmail)
	}
	params.AddMetadata("orderId", p.OrderID)
	params.AddMetadata("integration", integrationTag)

	pi, err := g.api.PaymentIntents.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe create payment intent failed: %w", err)
	}
	return toIntent(pi), nil
}

// GetIntent 查询 PaymentIntent
func (g *StripeGateway) GetIntent(ctx context.Context, id string) (*etpayment.Intent, error) {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx

	pi, err := g.api.PaymentIntents.Get(id, params)
	if err != nil {
		return nil, fmt.Errorf("stripe get payment intent failed: %w", err)
	}
	return toIntent(pi), nil
}

// Refund 退款，AmountCents 为 0 时全额退款
func (g *StripeGateway) Refund(ctx context.Context, p etpayment.RefundParams) (*etpayment.Refund, error) {
	params := &stripe.RefundParams{
		PaymentIntent: stripe.String(p.PaymentIntentID),
		Reason:        stripe.String(p.Reason),
	}
	params.Context = ctx
	if p.AmountCents > 0 {
		params.Amount = stripe.Int64(p.AmountCents)
	}

	r, err := g.api.Refunds.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe refund failed: %w", err)
	}
	return &etpayment.Refund{
		ID:          r.ID,
		Status:      string(r.Status),
		AmountCents: r.Amount,
	}, nil
}

// ParseWebhook 校验签名并解析事件，payment_intent.* 事件解析出 intent 与订单ID
func (g *StripeGateway) ParseWebhook(payload []byte, signature string) (*etpayment.Event, error) {
	event, err := webhook.ConstructEventWithOptions(payload, signature, g.webhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		return nil, err
	}

	out := &etpayment.Event{
		ID:   event.ID,
		Type: string(event.Type),
		Raw:  json.RawMessage(payload),
	}
	if event.Data != nil && len(event.Data.Raw) > 0 {
		var pi stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &pi); err == nil && pi.Object == "payment_intent" {
			out.IntentID = pi.ID
			out.OrderID = pi.Metadata["orderId"]
		}
	}
	return out, nil
}

func toIntent(pi *stripe.PaymentIntent) *etpayment.Intent {
	in := &etpayment.Intent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		AmountCents:  pi.Amount,
		Currency:     string(pi.Currency),
		Status:       string(pi.Status),
		Created:      pi.Created,
		ReceiptEmail: pi.ReceiptEmail,
		Metadata:     pi.Metadata,
	}
	if pi.PaymentMethod != nil {
		in.PaymentMethod = pi.PaymentMethod.ID
	}
	return in
}
