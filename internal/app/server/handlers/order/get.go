package order

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"kcstudio/storefront/internal/app/domains/apimodel/response"
	"kcstudio/storefront/internal/app/pkg/ginx"
)

// Get godoc
// @Summary      获取订单详情
// @Description  按订单号查询订单、客户联系方式和明细
// @Description
// @Description  wait>0 且支付仍为 pending 时，最多等待 wait 秒的支付结果（上限 30）
// @Tags         orders
// @Produce      json
// @Param        orderNumber path string true "订单号"
// @Param        wait query int false "等待支付结果的秒数"
// @Success      200 {object} ginx.Response{data=response.OrderResponse} "查询成功"
// @Failure      404 {object} ginx.Response "订单不存在"
// @Failure      500 {object} ginx.Response "服务器错误"
// @Router       /orders/{orderNumber} [get]
func (h *OrderHandler) Get(c *gin.Context) {
	orderNumber := c.Param("orderNumber")
	if orderNumber == "" {
		ginx.BadRequest(c, "orderNumber required")
		return
	}

	var wait time.Duration
	if w, err := strconv.Atoi(c.Query("wait")); err == nil && w > 0 {
		wait = time.Duration(w) * time.Second
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), orderNumber, wait)
	if err != nil {
		ginx.Fail(c, err)
		return
	}

	ginx.Success(c, response.FromOrderEntity(order))
}
