package etproduct

import "time"

// Product 图库作品，来自历史订单的远程图片
type Product struct {
	ID        int64
	ImageURL  string
	Shape     string
	BasePrice float64
	IsActive  bool
	CreatedAt time.Time
}

// Shape 可选钥匙扣形状
type Shape struct {
	ID    string
	Name  string
	Price float64
}

// Shapes 形状目录及默认单价
var Shapes = []Shape{
	{ID: "round", Name: "Redondo", Price: 2.50},
	{ID: "square", Name: "Cuadrado", Price: 2.00},
	{ID: "custom", Name: "Personalizado", Price: 3.00},
}

// ShapePrice 形状默认单价，未知形状返回 false
func ShapePrice(id string) (float64, bool) {
	for _, s := range Shapes {
		if s.ID == id {
			return s.Price, true
		}
	}
	return 0, false
}
