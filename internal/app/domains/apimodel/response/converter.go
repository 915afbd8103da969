package response

import (
	"kcstudio/storefront/internal/app/domains/entity/etadmin"
	"kcstudio/storefront/internal/app/domains/entity/etorder"
	"kcstudio/storefront/internal/app/domains/entity/etpayment"
	"kcstudio/storefront/internal/app/domains/entity/etprimitive"
	"kcstudio/storefront/internal/app/domains/entity/etproduct"
	"kcstudio/storefront/internal/app/pkg/money"
)

// FromOrderEntity 从领域对象转换为响应 DTO
func FromOrderEntity(order *etorder.Order) *OrderResponse {
	resp := &OrderResponse{
		ID:            order.ID,
		OrderNumber:   order.OrderNumber,
		TotalAmount:   order.TotalAmount,
		PaymentMethod: order.PaymentMethod,
		PaymentID:     order.PaymentID,
		PaymentStatus: string(order.PaymentStatus),
		OrderStatus:   string(order.OrderStatus),
		Notes:         order.Notes,
		CreatedAt:     order.CreatedAt,
		UpdatedAt:     order.UpdatedAt,
		Items:         make([]*OrderItemResponse, 0, len(order.Items)),
	}

	if c := order.Customer; c != nil {
		resp.CustomerName = c.Name
		resp.Email = c.Email
		resp.Whatsapp = c.Whatsapp
		resp.Address = c.Address
		resp.City = c.City
		resp.PostalCode = c.PostalCode
	}

	for _, item := range order.Items {
		resp.Items = append(resp.Items, &OrderItemResponse{
			ID:              item.ID,
			ProductImage:    item.ProductImage,
			Shape:           item.Shape,
			BackgroundColor: item.BackgroundColor,
			Quantity:        item.Quantity,
			UnitPrice:       item.UnitPrice,
			Subtotal:        item.Subtotal,
		})
	}

	return resp
}

// FromOrderSummaries 订单列表 + 分页
func FromOrderSummaries(rows []*etorder.Summary, p etprimitive.Pagination) *OrderListResponse {
	orders := make([]*OrderSummaryResponse, 0, len(rows))
	for _, r := range rows {
		orders = append(orders, &OrderSummaryResponse{
			ID:            r.ID,
			OrderNumber:   r.OrderNumber,
			Total:         r.TotalAmount,
			PaymentStatus: string(r.PaymentStatus),
			Status:        string(r.OrderStatus),
			CreatedAt:     r.CreatedAt,
			CustomerName:  r.CustomerName,
			Whatsapp:      r.Whatsapp,
			Address:       r.Address,
			City:          r.City,
			ItemsCount:    r.ItemsCount,
		})
	}
	return &OrderListResponse{
		Orders: orders,
		Pagination: PaginationResponse{
			Page:       p.Page,
			Limit:      p.Limit,
			Total:      p.Total,
			TotalPages: p.TotalPages(),
		},
	}
}

// FromStats 统计转换
func FromStats(s *etorder.Stats) *StatsResponse {
	return &StatsResponse{
		TotalOrders:      s.TotalOrders,
		TotalCustomers:   s.TotalCustomers,
		TotalProducts:    s.TotalProducts,
		TotalRevenue:     money.Round2(s.TotalRevenue),
		PendingOrders:    s.PendingOrders,
		ProcessingOrders: s.ProcessingOrders,
		DeliveredOrders:  s.DeliveredOrders,
		TodayOrders:      s.TodayOrders,
	}
}

// FromAdminEntity 管理员转换
func FromAdminEntity(a *etadmin.Admin) AdminResponse {
	return AdminResponse{
		ID:       a.ID,
		Username: a.Username,
		Email:    a.Email,
		FullName: a.FullName,
	}
}

// FromProductEntities 图库列表转换
func FromProductEntities(products []*etproduct.Product) *ProductListResponse {
	list := make([]*ProductResponse, 0, len(products))
	for _, p := range products {
		list = append(list, FromProductEntity(p))
	}
	return &ProductListResponse{Products: list, Count: len(list)}
}

// FromProductEntity 单个作品转换
func FromProductEntity(p *etproduct.Product) *ProductResponse {
	return &ProductResponse{
		ID:        p.ID,
		ImageURL:  p.ImageURL,
		Shape:     p.Shape,
		BasePrice: p.BasePrice,
		CreatedAt: p.CreatedAt,
	}
}

// FromIntent 支付详情转换，金额还原为元
func FromIntent(in *etpayment.Intent) *PaymentDetailResponse {
	return &PaymentDetailResponse{
		ID:           in.ID,
		Amount:       money.FromCents(in.AmountCents),
		Currency:     in.Currency,
		Status:       in.Status,
		Created:      in.Created,
		ReceiptEmail: in.ReceiptEmail,
	}
}
