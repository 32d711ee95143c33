package model

import "time"

// CartItem là một dòng trong giỏ hàng của người dùng
type CartItem struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	ProductID int       `json:"product_id"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Thông tin sản phẩm kèm theo khi đọc giỏ
	ProductName  string  `json:"product_name"`
	ProductImage string  `json:"product_image"`
	Price        float64 `json:"price"`
	Stock        int     `json:"stock"`
}

// Subtotal là thành tiền của dòng giỏ theo giá hiện tại
func (i *CartItem) Subtotal() float64 {
	return i.Price * float64(i.Quantity)
}

// Cart là toàn bộ giỏ hàng trả về cho client sau mỗi thao tác
type Cart struct {
	Items []*CartItem `json:"items"`
	Total float64     `json:"total"`
}

// NewCart tính tổng tiền từ các dòng giỏ
func NewCart(items []*CartItem) *Cart {
	cart := &Cart{Items: items}
	if cart.Items == nil {
		cart.Items = []*CartItem{}
	}
	for _, item := range items {
		cart.Total += item.Subtotal()
	}
	return cart
}
