package routers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kcstudio/storefront/internal/app/pkg/ginx"
	"kcstudio/storefront/internal/app/pkg/logger"
	"kcstudio/storefront/internal/app/server/handlers/admin"
	"kcstudio/storefront/internal/app/server/handlers/order"
	"kcstudio/storefront/internal/app/server/handlers/payment"
	"kcstudio/storefront/internal/app/server/handlers/product"
	"kcstudio/storefront/internal/app/server/middlewares"
)

// Options 路由层配置
type Options struct {
	ServiceName  string
	CORSOrigins  []string
	MaxBodyBytes int64
	DevDetails   bool
	UploadsDir   string
}

// Handlers 全部 HTTP 处理器
type Handlers struct {
	Order   *order.OrderHandler
	Product *product.ProductHandler
	Admin   *admin.AdminHandler
	Payment *payment.PaymentHandler
}

// SetupRoutes 配置所有路由，使用 Route Group 分类
func SetupRoutes(opts Options, h Handlers, verifier middlewares.TokenVerifier, log logger.Logger) *gin.Engine {
	ginx.UseJSONFieldNames()

	r := gin.New()

	r.Use(middlewares.Logger(log))
	r.Use(middlewares.ErrorHandler(log))
	r.Use(middlewares.CORS(opts.CORSOrigins))
	r.Use(middlewares.DevDetails(opts.DevDetails))
	r.Use(middlewares.BodyLimit(opts.MaxBodyBytes))

	health := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": opts.ServiceName,
			"message": "Service is running",
		})
	}
	r.GET("/health", health)
	r.GET("/api/health", health)
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": opts.ServiceName,
			"endpoints": []string{
				"/api/orders",
				"/api/products",
				"/api/payments",
				"/api/admin",
			},
		})
	})

	if opts.UploadsDir != "" {
		r.Static("/uploads", opts.UploadsDir)
	}

	api := r.Group("/api")
	{
		orders := api.Group("/orders")
		{
			orders.POST("", h.Order.Create)
			orders.GET("/:orderNumber", h.Order.Get)
		}

		products := api.Group("/products")
		{
			products.GET("", h.Product.List)
			products.GET("/:id", h.Product.Get)
		}

		payments := api.Group("/payments")
		{
			payments.POST("/create-payment-intent", h.Payment.CreateIntent)
			payments.POST("/confirm-payment", h.Payment.Confirm)
			payments.POST("/webhook", h.Payment.Webhook)

			protected := payments.Group("", middlewares.AdminAuth(verifier))
			protected.GET("/payment/:paymentIntentId", h.Payment.Get)
			protected.POST("/refund", h.Payment.Refund)
		}

		adminGroup := api.Group("/admin")
		{
			adminGroup.POST("/login", h.Admin.Login)
			// WebSocket 令牌走 query，在处理器内校验
			adminGroup.GET("/feed", h.Admin.Feed)

			protected := adminGroup.Group("", middlewares.AdminAuth(verifier))
			protected.GET("/stats", h.Admin.Stats)
			protected.GET("/orders", h.Admin.ListOrders)
			protected.GET("/orders/export", h.Admin.ExportOrders)
			protected.PUT("/orders/:orderId/status", h.Admin.UpdateStatus)
			protected.POST("/orders/:orderId/mark-paid", h.Admin.MarkPaid)
		}
	}

	return r
}
