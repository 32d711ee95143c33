package service

import (
	"github.com/huawsvantoan/webbanbanhngot-sub000/internal/errors"
	"github.com/huawsvantoan/webbanbanhngot-sub000/internal/model"
	"github.com/huawsvantoan/webbanbanhngot-sub000/internal/repository/interfaces"
)

// CartServiceInterface để handler và test mock được tầng service
type CartServiceInterface interface {
	GetCart(userID int) (*model.Cart, error)
	AddItem(userID, productID, quantity int) (*model.Cart, error)
	UpdateQuantity(userID, productID, quantity int) (*model.Cart, error)
	RemoveItem(userID, productID int) (*model.Cart, error)
	ClearCart(userID int) error
}

// CartService quản lý giỏ hàng, mọi thao tác ghi đều kiểm tra tồn kho trước
type CartService struct {
	cartRepo    interfaces.CartRepository
	productRepo interfaces.ProductRepository
}

var _ CartServiceInterface = (*CartService)(nil)

func NewCartService(cartRepo interfaces.CartRepository, productRepo interfaces.ProductRepository) *CartService {
	return &CartService{cartRepo: cartRepo, productRepo: productRepo}
}

// GetCart trả giỏ hàng kèm thông tin sản phẩm và tổng tiền hiện tại
func (s *CartService) GetCart(userID int) (*model.Cart, error) {
	items, err := s.cartRepo.ListByUser(userID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "Lấy giỏ hàng thất bại", err)
	}
	return model.NewCart(items), nil
}

// AddItem thêm sản phẩm vào giỏ; nếu đã có thì cộng dồn số lượng.
// Tổng số lượng sau khi cộng không được vượt tồn kho.
func (s *CartService) AddItem(userID, productID, quantity int) (*model.Cart, error) {
	if quantity <= 0 {
		return nil, errors.New(errors.ErrValidation, "Số lượng phải lớn hơn 0")
	}

	product, err := s.productRepo.FindByID(productID, false)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "Tra cứu sản phẩm thất bại", err)
	}
	if product == nil {
		return nil, errors.New(errors.ErrProductNotFound, "Sản phẩm không tồn tại hoặc đã ngừng bán")
	}

	line, err := s.cartRepo.FindLine(userID, productID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "Tra cứu giỏ hàng thất bại", err)
	}

	newQuantity := quantity
	if line != nil {
		newQuantity += line.Quantity
	}
	if newQuantity > product.Stock {
		return nil, errors.New(errors.ErrOutOfStock, "Số lượng vượt quá tồn kho hiện có")
	}

	if line != nil {
		err = s.cartRepo.UpdateQuantity(userID, productID, newQuantity)
	} else {
		err = s.cartRepo.Insert(&model.CartItem{UserID: userID, ProductID: productID, Quantity: quantity})
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "Cập nhật giỏ hàng thất bại", err)
	}

	return s.GetCart(userID)
}

// UpdateQuantity đặt lại số lượng một dòng; muốn xóa dòng thì dùng RemoveItem
func (s *CartService) UpdateQuantity(userID, productID, quantity int) (*model.Cart, error) {
	if quantity < 1 {
		return nil, errors.New(errors.ErrValidation, "Số lượng phải lớn hơn 0")
	}

	line, err := s.cartRepo.FindLine(userID, productID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "Tra cứu giỏ hàng thất bại", err)
	}
	if line == nil {
		return nil, errors.New(errors.ErrResourceNotFound, "Sản phẩm chưa có trong giỏ")
	}

	product, err := s.productRepo.FindByID(productID, false)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "Tra cứu sản phẩm thất bại", err)
	}
	if product == nil {
		return nil, errors.New(errors.ErrProductNotFound, "Sản phẩm không tồn tại hoặc đã ngừng bán")
	}
	if quantity > product.Stock {
		return nil, errors.New(errors.ErrOutOfStock, "Số lượng vượt quá tồn kho hiện có")
	}

	if err := s.cartRepo.UpdateQuantity(userID, productID, quantity); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "Cập nhật giỏ hàng thất bại", err)
	}
	return s.GetCart(userID)
}

func (s *CartService) RemoveItem(userID, productID int) (*model.Cart, error) {
	if err := s.cartRepo.Remove(userID, productID); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "Xóa sản phẩm khỏi giỏ thất bại", err)
	}
	return s.GetCart(userID)
}

func (s *CartService) ClearCart(userID int) error {
	if err := s.cartRepo.Clear(userID); err != nil {
		return errors.Wrap(errors.ErrDatabase, "Xóa giỏ hàng thất bại", err)
	}
	return nil
}
