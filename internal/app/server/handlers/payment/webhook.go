package payment

import (
	"io"

	"github.com/gin-gonic/gin"

	"kcstudio/storefront/internal/app/domains/apimodel/response"
	"kcstudio/storefront/internal/app/pkg/errorx"
	"kcstudio/storefront/internal/app/pkg/ginx"
)

// Webhook 网关事件回调，需原始 body 验签
// POST /api/payments/webhook
func (h *PaymentHandler) Webhook(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		ginx.Fail(c, errorx.BadRequest("read webhook body failed"))
		return
	}

	if err := h.paymentService.HandleWebhook(c.Request.Context(), payload, c.GetHeader("Stripe-Signature")); err != nil {
		ginx.Fail(c, err)
		return
	}
	ginx.Success(c, &response.WebhookAck{Received: true})
}
