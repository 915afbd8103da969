package payment

import (
	"github.com/gin-gonic/gin"

	"kcstudio/storefront/internal/app/domains/apimodel/request"
	"kcstudio/storefront/internal/app/domains/apimodel/response"
	"kcstudio/storefront/internal/app/pkg/ginx"
	"kcstudio/storefront/internal/app/pkg/money"
)

// Get 支付详情
// GET /api/payments/payment/:paymentIntentId
func (h *PaymentHandler) Get(c *gin.Context) {
	intent, err := h.paymentService.GetPayment(c.Request.Context(), c.Param("paymentIntentId"))
	if err != nil {
		ginx.Fail(c, err)
		return
	}
	ginx.Success(c, response.FromIntent(intent))
}

// Refund 退款，amount 省略为全额
// POST /api/payments/refund
func (h *PaymentHandler) Refund(c *gin.Context) {
	var req request.RefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ginx.BadRequestWithValidation(c, err)
		return
	}

	refund, err := h.paymentService.Refund(c.Request.Context(), req.PaymentIntentID, req.Amount, req.Reason)
	if err != nil {
		ginx.Fail(c, err)
		return
	}
	ginx.Success(c, &response.RefundResponse{
		RefundID: refund.ID,
		Status:   refund.Status,
		Amount:   money.FromCents(refund.AmountCents),
	})
}
