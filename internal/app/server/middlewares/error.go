package middlewares

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"kcstudio/storefront/internal/app/pkg/errorx"
	"kcstudio/storefront/internal/app/pkg/ginx"
	"kcstudio/storefront/internal/app/pkg/logger"
)

// DevDetails 非生产环境允许错误响应携带 dev_details
func DevDetails(enabled bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if enabled {
			ginx.EnableDevDetails(c)
		}
		c.Next()
	}
}

// ErrorHandler 统一错误处理中间件
// 捕获 panic，并渲染 handler 通过 c.Error 挂上但尚未写出的错误
func ErrorHandler(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.ErrorContext(c.Request.Context(), "panic recovered",
					"panic", fmt.Sprint(r),
					"path", c.Request.URL.Path,
				)
				if !c.Writer.Written() {
					ginx.Fail(c, errorx.Internal("internal server error", fmt.Errorf("panic: %v", r)))
				}
				c.Abort()
			}
		}()

		c.Next()

		if len(c.Errors) > 0 && !c.Writer.Written() {
			ginx.Fail(c, c.Errors.Last().Err)
		}
	}
}
