package payment

import (
	"github.com/gin-gonic/gin"

	"kcstudio/storefront/internal/app/domains/apimodel/request"
	"kcstudio/storefront/internal/app/domains/apimodel/response"
	"kcstudio/storefront/internal/app/pkg/errorx"
	"kcstudio/storefront/internal/app/pkg/ginx"
)

// CreateIntent godoc
// @Summary      创建支付意图
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        request body request.CreatePaymentIntentRequest true "金额与订单"
// @Success      200 {object} ginx.Response{data=response.PaymentIntentResponse}
// @Failure      400 {object} ginx.Response "金额低于 0.50"
// @Failure      503 {object} ginx.Response "支付未启用"
// @Router       /payments/create-payment-intent [post]
func (h *PaymentHandler) CreateIntent(c *gin.Context) {
	var req request.CreatePaymentIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ginx.BadRequestWithValidation(c, err)
		return
	}

	intent, err := h.paymentService.CreateIntent(c.Request.Context(), req.Amount, string(req.OrderID), req.CustomerEmail)
	if err != nil {
		ginx.Fail(c, err)
		return
	}
	ginx.Success(c, &response.PaymentIntentResponse{
		ClientSecret:    intent.ClientSecret,
		PaymentIntentID: intent.ID,
	})
}

// Confirm godoc
// @Summary      确认支付
// @Description  查询网关状态，succeeded 时订单置为 paid/processing
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        request body request.ConfirmPaymentRequest true "支付意图与订单"
// @Success      200 {object} ginx.Response{data=response.ConfirmPaymentResponse}
// @Failure      400 {object} ginx.Response "支付未完成"
// @Failure      404 {object} ginx.Response "订单不存在"
// @Router       /payments/confirm-payment [post]
func (h *PaymentHandler) Confirm(c *gin.Context) {
	var req request.ConfirmPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ginx.BadRequestWithValidation(c, err)
		return
	}
	orderID, ok := req.OrderID.Int64()
	if !ok {
		ginx.Fail(c, errorx.BadRequest("invalid orderId", errorx.ErrorDetail{Path: "orderId", Info: "must be a positive integer"}))
		return
	}

	order, err := h.paymentService.ConfirmPayment(c.Request.Context(), req.PaymentIntentID, orderID)
	if err != nil {
		ginx.Fail(c, err)
		return
	}
	ginx.Success(c, &response.ConfirmPaymentResponse{
		PaymentStatus: string(order.PaymentStatus),
		OrderStatus:   string(order.OrderStatus),
	})
}
