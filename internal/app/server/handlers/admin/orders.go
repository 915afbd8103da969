package admin

import (
	"github.com/gin-gonic/gin"

	"kcstudio/storefront/internal/app/domains/apimodel/request"
	"kcstudio/storefront/internal/app/domains/apimodel/response"
	"kcstudio/storefront/internal/app/pkg/ginx"
	"kcstudio/storefront/internal/app/server/middlewares"
)

// Stats 仪表盘统计
// GET /api/admin/stats
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.adminService.Stats(c.Request.Context())
	if err != nil {
		ginx.Fail(c, err)
		return
	}
	ginx.Success(c, response.FromStats(stats))
}

// ListOrders 订单列表
// GET /api/admin/orders?status=&page=&limit=
func (h *AdminHandler) ListOrders(c *gin.Context) {
	var q request.ListOrdersQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		ginx.BadRequestWithValidation(c, err)
		return
	}

	rows, pagination, err := h.adminService.ListOrders(c.Request.Context(), q.Status, q.Page, q.Limit)
	if err != nil {
		ginx.Fail(c, err)
		return
	}
	ginx.Success(c, response.FromOrderSummaries(rows, pagination))
}

// UpdateStatus 更新订单状态和备注
// PUT /api/admin/orders/:orderId/status
func (h *AdminHandler) UpdateStatus(c *gin.Context) {
	orderID, err := orderIDParam(c)
	if err != nil {
		ginx.Fail(c, err)
		return
	}

	var req request.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ginx.BadRequestWithValidation(c, err)
		return
	}

	if claims, ok := middlewares.AdminClaims(c); ok {
		h.logger.InfoContext(c.Request.Context(), "admin updating order status",
			"admin_id", claims.AdminID,
			"order_id", orderID,
			"status", req.Status,
		)
	}

	order, err := h.adminService.UpdateOrderStatus(c.Request.Context(), orderID, req.Status, req.Notes)
	if err != nil {
		ginx.Fail(c, err)
		return
	}
	ginx.Success(c, response.FromOrderEntity(order))
}

// MarkPaid 手工标记已支付
// POST /api/admin/orders/:orderId/mark-paid
func (h *AdminHandler) MarkPaid(c *gin.Context) {
	orderID, err := orderIDParam(c)
	if err != nil {
		ginx.Fail(c, err)
		return
	}

	var req request.MarkPaidRequest
	// body 可省略
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			ginx.BadRequestWithValidation(c, err)
			return
		}
	}

	order, err := h.adminService.MarkPaid(c.Request.Context(), orderID, req.PaymentID)
	if err != nil {
		ginx.Fail(c, err)
		return
	}
	ginx.Success(c, response.FromOrderEntity(order))
}
