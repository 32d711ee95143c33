package cart

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/huawsvantoan/webbanbanhngot-sub000/internal/errors"
	"github.com/huawsvantoan/webbanbanhngot-sub000/internal/service"
)

// CartHandler xử lý các request giỏ hàng; mọi route đều yêu cầu đăng nhập
type CartHandler struct {
	cartService service.CartServiceInterface
}

// NewCartHandler tạo một CartHandler mới
func NewCartHandler(cartService service.CartServiceInterface) *CartHandler {
	return &CartHandler{cartService}
}

// GetCart trả giỏ hàng hiện tại kèm tổng tiền
func (h *CartHandler) GetCart(c *gin.Context) {
	userID := c.GetInt("user_id")

	cart, err := h.cartService.GetCart(userID)
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, cart, "")
}

// AddItem thêm sản phẩm vào giỏ, trả lại toàn bộ giỏ sau khi thêm
func (h *CartHandler) AddItem(c *gin.Context) {
	userID := c.GetInt("user_id")

	var req struct {
		ProductID int `json:"product_id" binding:"required"`
		Quantity  int `json:"quantity" binding:"required,gt=0"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "Dữ liệu không hợp lệ", err))
		return
	}

	cart, err := h.cartService.AddItem(userID, req.ProductID, req.Quantity)
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, cart, "Đã thêm vào giỏ hàng")
}

// UpdateItem đặt lại số lượng một dòng giỏ
func (h *CartHandler) UpdateItem(c *gin.Context) {
	userID := c.GetInt("user_id")

	productID, err := strconv.Atoi(c.Param("product_id"))
	if err != nil {
		errors.HandleError(c, errors.New(errors.ErrBadRequest, "ID sản phẩm không hợp lệ"))
		return
	}

	var req struct {
		Quantity int `json:"quantity" binding:"required,gt=0"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "Dữ liệu không hợp lệ", err))
		return
	}

	cart, err := h.cartService.UpdateQuantity(userID, productID, req.Quantity)
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, cart, "Đã cập nhật giỏ hàng")
}

// RemoveItem xóa một sản phẩm khỏi giỏ
func (h *CartHandler) RemoveItem(c *gin.Context) {
	userID := c.GetInt("user_id")

	productID, err := strconv.Atoi(c.Param("product_id"))
	if err != nil {
		errors.HandleError(c, errors.New(errors.ErrBadRequest, "ID sản phẩm không hợp lệ"))
		return
	}

	cart, err := h.cartService.RemoveItem(userID, productID)
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, cart, "Đã xóa khỏi giỏ hàng")
}

// ClearCart xóa toàn bộ giỏ
func (h *CartHandler) ClearCart(c *gin.Context) {
	userID := c.GetInt("user_id")

	if err := h.cartService.ClearCart(userID); err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, nil, "Đã xóa giỏ hàng")
}
