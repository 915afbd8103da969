package admin

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"

	"kcstudio/storefront/internal/app/pkg/errorx"
	"kcstudio/storefront/internal/app/pkg/ginx"
)

var exportHeaders = []string{
	"ID", "Pedido", "Cliente", "WhatsApp", "Dirección", "Ciudad",
	"Artículos", "Total", "Pago", "Estado", "Fecha",
}

// ExportOrders 导出订单为 xlsx
// GET /api/admin/orders/export?status=
func (h *AdminHandler) ExportOrders(c *gin.Context) {
	rows, err := h.adminService.ExportOrders(c.Request.Context(), c.Query("status"))
	if err != nil {
		ginx.Fail(c, err)
		return
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Orders")
	if err != nil {
		ginx.Fail(c, errorx.Internal("failed to create sheet", err))
		return
	}

	header := sheet.AddRow()
	for _, title := range exportHeaders {
		header.AddCell().SetValue(title)
	}
	for _, r := range rows {
		row := sheet.AddRow()
		row.AddCell().SetValue(r.ID)
		row.AddCell().SetValue(r.OrderNumber)
		row.AddCell().SetValue(r.CustomerName)
		row.AddCell().SetValue(r.Whatsapp)
		row.AddCell().SetValue(r.Address)
		row.AddCell().SetValue(r.City)
		row.AddCell().SetValue(r.ItemsCount)
		row.AddCell().SetValue(r.TotalAmount)
		row.AddCell().SetValue(string(r.PaymentStatus))
		row.AddCell().SetValue(string(r.OrderStatus))
		row.AddCell().SetValue(r.CreatedAt.Format("2006-01-02 15:04:05"))
	}

	filename := fmt.Sprintf("orders-%s.xlsx", time.Now().Format("20060102-150405"))
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := file.Write(c.Writer); err != nil {
		h.logger.ErrorContext(c.Request.Context(), "write xlsx export failed", "error", err)
	}
}
