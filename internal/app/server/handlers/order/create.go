package order

import (
	"github.com/gin-gonic/gin"

	"kcstudio/storefront/internal/app/domains/apimodel/request"
	"kcstudio/storefront/internal/app/domains/apimodel/response"
	"kcstudio/storefront/internal/app/pkg/ginx"
)

// Create godoc
// @Summary      创建订单
// @Description  单事务内完成客户 upsert、订单与明细写入，图片先传图床，失败落本地
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        request body request.CreateOrderRequest true "订单信息"
// @Success      201 {object} ginx.Response{data=response.CreateOrderResponse} "创建成功"
// @Failure      400 {object} ginx.Response "参数错误"
// @Failure      500 {object} ginx.Response "服务器错误"
// @Router       /orders [post]
func (h *OrderHandler) Create(c *gin.Context) {
	var req request.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ginx.BadRequestWithValidation(c, err)
		return
	}

	order, err := h.orderService.CreateOrder(
		c.Request.Context(),
		req.ToCustomerEntity(),
		req.ToItemsEntity(),
		req.TotalAmount,
		req.PaymentMethod,
	)
	if err != nil {
		ginx.Fail(c, err)
		return
	}

	ginx.Created(c, &response.CreateOrderResponse{
		OrderNumber: order.OrderNumber,
		OrderID:     order.ID,
	})
}
