package product

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"kcstudio/storefront/internal/app/domains/apimodel/response"
	"kcstudio/storefront/internal/app/domains/services/svproduct"
	"kcstudio/storefront/internal/app/pkg/errorx"
	"kcstudio/storefront/internal/app/pkg/ginx"
)

// ProductHandler 图库 HTTP 处理器
type ProductHandler struct {
	productService *svproduct.ProductService
}

// NewProductHandler 创建图库处理器实例
func NewProductHandler(productService *svproduct.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// List 图库列表
// GET /api/products
func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.productService.ListGallery(c.Request.Context())
	if err != nil {
		ginx.Fail(c, err)
		return
	}
	ginx.Success(c, response.FromProductEntities(products))
}

// Get 单个作品
// GET /api/products/:id
func (h *ProductHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		// 非法 ID 与不存在同样处理
		ginx.Fail(c, errorx.ErrProductNotFound)
		return
	}

	product, err := h.productService.GetProduct(c.Request.Context(), id)
	if err != nil {
		ginx.Fail(c, err)
		return
	}
	ginx.Success(c, response.FromProductEntity(product))
}
