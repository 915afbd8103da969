package request

import (
	"kcstudio/storefront/internal/app/domains/entity/etorder"
	"kcstudio/storefront/internal/app/domains/entity/etproduct"
)

// ToCustomerEntity 将 Request DTO 转换为领域对象
func (r *CreateOrderRequest) ToCustomerEntity() *etorder.Customer {
	if r.Customer == nil {
		return nil
	}
	return &etorder.Customer{
		Whatsapp:   r.Customer.Whatsapp,
		Name:       r.Customer.Name,
		Email:      r.Customer.Email,
		Address:    r.Customer.Address,
		City:       r.Customer.City,
		PostalCode: r.Customer.PostalCode,
	}
}

// ToItemsEntity 转换购物车明细，形状未带价格时取目录单价
func (r *CreateOrderRequest) ToItemsEntity() []*etorder.Item {
	items := make([]*etorder.Item, 0, len(r.Items))
	for _, dto := range r.Items {
		if dto == nil {
			continue
		}
		item := &etorder.Item{
			BackgroundColor: dto.Color,
			Quantity:        dto.Quantity,
			Subtotal:        dto.Total,
			ImageSource:     dto.Image,
		}
		if dto.Shape != nil {
			item.Shape = dto.Shape.ID
			item.UnitPrice = dto.Shape.Price
			if item.UnitPrice == 0 {
				if p, ok := etproduct.ShapePrice(dto.Shape.ID); ok {
					item.UnitPrice = p
				}
			}
		}
		items = append(items, item)
	}
	return items
}
