package response

import "time"

// ProductResponse 图库作品
type ProductResponse struct {
	ID        int64     `json:"id"`
	ImageURL  string    `json:"image_url"`
	Shape     string    `json:"shape"`
	BasePrice float64   `json:"base_price"`
	CreatedAt time.Time `json:"created_at"`
}

// ProductListResponse 图库列表
type ProductListResponse struct {
	Products []*ProductResponse `json:"products"`
	Count    int                `json:"count"`
}
