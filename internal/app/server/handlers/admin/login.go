package admin

import (
	"github.com/gin-gonic/gin"

	"kcstudio/storefront/internal/app/domains/apimodel/request"
	"kcstudio/storefront/internal/app/domains/apimodel/response"
	"kcstudio/storefront/internal/app/pkg/ginx"
)

// Login godoc
// @Summary      管理员登录
// @Description  校验账号密码，签发 8 小时有效的 Bearer 令牌
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        request body request.LoginRequest true "账号密码"
// @Success      200 {object} ginx.Response{data=response.LoginResponse} "登录成功"
// @Failure      400 {object} ginx.Response "参数错误"
// @Failure      401 {object} ginx.Response "账号或密码错误"
// @Router       /admin/login [post]
func (h *AdminHandler) Login(c *gin.Context) {
	var req request.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ginx.BadRequestWithValidation(c, err)
		return
	}

	res, err := h.adminService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		ginx.Fail(c, err)
		return
	}

	ginx.Success(c, &response.LoginResponse{
		Token:     res.Token,
		ExpiresAt: res.ExpiresAt,
		Admin:     response.FromAdminEntity(res.Admin),
	})
}
