package order

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/huawsvantoan/webbanbanhngot-sub000/internal/errors"
	"github.com/huawsvantoan/webbanbanhngot-sub000/internal/model"
	"github.com/huawsvantoan/webbanbanhngot-sub000/internal/service"
)

// OrderHandler xử lý chốt đơn và tra cứu đơn hàng
type OrderHandler struct {
	orderService service.OrderServiceInterface
}

// NewOrderHandler tạo một OrderHandler mới
func NewOrderHandler(orderService service.OrderServiceInterface) *OrderHandler {
	return &OrderHandler{orderService}
}

// Checkout chốt đơn từ giỏ hàng hiện tại. Với thanh toán VNPay,
// response kèm sẵn link thanh toán để client chuyển hướng.
func (h *OrderHandler) Checkout(c *gin.Context) {
	userID := c.GetInt("user_id")

	var input service.CheckoutInput
	if err := c.ShouldBindJSON(&input); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "Thông tin giao hàng không hợp lệ", err))
		return
	}

	order, err := h.orderService.Checkout(userID, input)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	resp := gin.H{"order": order}
	if order.PaymentMethod == model.PaymentVNPay {
		payURL, err := h.orderService.BuildPaymentURL(order.ID, userID, c.ClientIP())
		if err != nil {
			errors.HandleError(c, err)
			return
		}
		resp["payment_url"] = payURL
	}
	errors.HandleCreated(c, resp, "Đặt hàng thành công")
}

// ListMyOrders trả lịch sử đơn hàng của người dùng hiện tại
func (h *OrderHandler) ListMyOrders(c *gin.Context) {
	userID := c.GetInt("user_id")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	orders, total, err := h.orderService.ListMyOrders(userID, page, pageSize)
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, gin.H{"orders": orders, "total": total}, "")
}

// GetOrder trả chi tiết một đơn của chính người dùng
func (h *OrderHandler) GetOrder(c *gin.Context) {
	userID := c.GetInt("user_id")

	orderID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errors.HandleError(c, errors.New(errors.ErrBadRequest, "ID đơn hàng không hợp lệ"))
		return
	}

	order, err := h.orderService.GetOrder(orderID, userID, c.GetBool("is_admin"))
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, order, "")
}

// CancelOrder cho người mua hủy đơn còn ở pending hoặc processing
func (h *OrderHandler) CancelOrder(c *gin.Context) {
	userID := c.GetInt("user_id")

	orderID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errors.HandleError(c, errors.New(errors.ErrBadRequest, "ID đơn hàng không hợp lệ"))
		return
	}

	var req struct {
		Reason string `json:"reason" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "Vui lòng nêu lý do hủy đơn", err))
		return
	}

	order, err := h.orderService.CancelOrder(orderID, userID, req.Reason)
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, order, "Đã hủy đơn hàng")
}
