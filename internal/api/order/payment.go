package order

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/huawsvantoan/webbanbanhngot-sub000/internal/errors"
	"github.com/huawsvantoan/webbanbanhngot-sub000/internal/service"
	"github.com/huawsvantoan/webbanbanhngot-sub000/internal/util"
	"go.uber.org/zap"
)

// PaymentHandler xử lý tạo link và nhận callback thanh toán VNPay
type PaymentHandler struct {
	orderService service.OrderServiceInterface
}

// NewPaymentHandler tạo một PaymentHandler mới
func NewPaymentHandler(orderService service.OrderServiceInterface) *PaymentHandler {
	return &PaymentHandler{orderService}
}

// CreatePayment tạo lại link thanh toán cho đơn VNPay chưa trả tiền,
// dùng khi người mua rời trang thanh toán rồi quay lại
func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	userID := c.GetInt("user_id")

	orderID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errors.HandleError(c, errors.New(errors.ErrBadRequest, "ID đơn hàng không hợp lệ"))
		return
	}

	payURL, err := h.orderService.BuildPaymentURL(orderID, userID, c.ClientIP())
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, gin.H{"payment_url": payURL}, "")
}

// VNPayReturn nhận callback từ VNPay sau khi người mua thanh toán.
// Chữ ký sai bị từ chối; kết quả hợp lệ được ghi vào đơn.
func (h *PaymentHandler) VNPayReturn(c *gin.Context) {
	order, err := h.orderService.HandleVNPayReturn(c.Request.URL.Query())
	if err != nil {
		if order == nil {
			util.Logger.Warn("Callback VNPay không hợp lệ", zap.Error(err))
		}
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, order, "Thanh toán thành công")
}
