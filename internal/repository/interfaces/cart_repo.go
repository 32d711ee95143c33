package interfaces

import "github.com/huawsvantoan/webbanbanhngot-sub000/internal/model"

// CartRepository định nghĩa các thao tác trên giỏ hàng.
// ListByUser luôn trả kèm tên, ảnh, giá và tồn kho hiện tại của sản phẩm.
type CartRepository interface {
	ListByUser(userID int) ([]*model.CartItem, error)
	FindLine(userID, productID int) (*model.CartItem, error)
	Insert(item *model.CartItem) error
	UpdateQuantity(userID, productID, quantity int) error
	Remove(userID, productID int) error
	Clear(userID int) error
}
