package admin

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"kcstudio/storefront/internal/app/domains/services/svadmin"
	"kcstudio/storefront/internal/app/pkg/errorx"
	"kcstudio/storefront/internal/app/pkg/logger"
)

// AdminHandler 后台 HTTP 处理器
type AdminHandler struct {
	adminService *svadmin.AdminService
	logger       logger.Logger
}

// NewAdminHandler 创建后台处理器实例
func NewAdminHandler(adminService *svadmin.AdminService, log logger.Logger) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
		logger:       log,
	}
}

// orderIDParam 解析路径中的订单ID，非法ID视为不存在
func orderIDParam(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("orderId"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errorx.ErrOrderNotFound
	}
	return id, nil
}
