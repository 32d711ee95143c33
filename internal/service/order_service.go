package service

import (
	stderrors "errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/huawsvantoan/webbanbanhngot-sub000/internal/errors"
	"github.com/huawsvantoan/webbanbanhngot-sub000/internal/model"
	"github.com/huawsvantoan/webbanbanhngot-sub000/internal/payment/vnpay"
	"github.com/huawsvantoan/webbanbanhngot-sub000/internal/repository/interfaces"
	"github.com/huawsvantoan/webbanbanhngot-sub000/internal/repository/mysql"
	"github.com/huawsvantoan/webbanbanhngot-sub000/internal/util"
	"github.com/huawsvantoan/webbanbanhngot-sub000/internal/ws"
	"go.uber.org/zap"
)

// CheckoutInput là thông tin giao hàng người mua nhập khi chốt đơn
type CheckoutInput struct {
	RecipientName   string `json:"recipient_name" binding:"required"`
	ShippingAddress string `json:"shipping_address" binding:"required"`
	Phone           string `json:"phone" binding:"required,vn_phone"`
	Note            string `json:"note"`
	PaymentMethod   string `json:"payment_method" binding:"required,oneof=cod vnpay"`
}

// OrderServiceInterface để handler và test mock được tầng service
type OrderServiceInterface interface {
	Checkout(userID int, input CheckoutInput) (*model.Order, error)
	GetOrder(orderID, requesterID int, isAdmin bool) (*model.Order, error)
	ListMyOrders(userID, page, pageSize int) ([]*model.Order, int, error)
	ListOrders(filters model.OrderFilters) ([]*model.Order, int, error)
	UpdateStatus(orderID int, status, note string) (*model.Order, error)
	CancelOrder(orderID, userID int, reason string) (*model.Order, error)
	BuildPaymentURL(orderID, userID int, clientIP string) (string, error)
	HandleVNPayReturn(query url.Values) (*model.Order, error)
}

// OrderService xử lý chốt đơn, vòng đời trạng thái và thanh toán VNPay
type OrderService struct {
	orderRepo    interfaces.OrderRepository
	cartRepo     interfaces.CartRepository
	userRepo     interfaces.UserRepository
	emailService *EmailService
	vnpayClient  *vnpay.Client
	hub          *ws.Hub
}

var _ OrderServiceInterface = (*OrderService)(nil)

func NewOrderService(
	orderRepo interfaces.OrderRepository,
	cartRepo interfaces.CartRepository,
	userRepo interfaces.UserRepository,
	emailService *EmailService,
	vnpayClient *vnpay.Client,
	hub *ws.Hub,
) *OrderService {
	return &OrderService{
		orderRepo:    orderRepo,
		cartRepo:     cartRepo,
		userRepo:     userRepo,
		emailService: emailService,
		vnpayClient:  vnpayClient,
		hub:          hub,
	}
}

// newOrderCode sinh mã đơn dạng DH-<năm>-<8 ký tự>, duy nhất theo uuid
func newOrderCode() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("DH-%d-%s", time.Now().Year(), suffix)
}

// Checkout chốt đơn từ giỏ hàng hiện tại. Giá và tên sản phẩm được chụp
// tại thời điểm này; trừ kho, ghi đơn và xóa giỏ diễn ra trong một giao
// dịch ở tầng repository nên hai người mua tranh nhau tồn kho cuối cùng
// chỉ một người thành công.
func (s *OrderService) Checkout(userID int, input CheckoutInput) (*model.Order, error) {
	items, err := s.cartRepo.ListByUser(userID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "Lấy giỏ hàng thất bại", err)
	}
	if len(items) == 0 {
		return nil, errors.New(errors.ErrCartEmpty, "Giỏ hàng đang trống")
	}

	order := &model.Order{
		OrderCode:       newOrderCode(),
		UserID:          userID,
		RecipientName:   input.RecipientName,
		ShippingAddress: input.ShippingAddress,
		Phone:           input.Phone,
		Note:            input.Note,
		PaymentMethod:   input.PaymentMethod,
		PaymentStatus:   model.PaymentUnpaid,
		Status:          model.OrderPending,
	}
	for _, item := range items {
		order.Items = append(order.Items, &model.OrderItem{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       item.Price,
		})
		order.TotalAmount += item.Price * float64(item.Quantity)
	}

	if err := s.orderRepo.CreateFromCart(order); err != nil {
		if stderrors.Is(err, mysql.ErrInsufficientStock) {
			return nil, errors.Wrap(errors.ErrOutOfStock, "Một số sản phẩm trong giỏ đã hết hàng", err)
		}
		return nil, errors.Wrap(errors.ErrDatabase, "Chốt đơn thất bại", err)
	}

	util.Logger.Info("Chốt đơn thành công",
		zap.Int("order_id", order.ID),
		zap.String("order_code", order.OrderCode),
		zap.Float64("total", order.TotalAmount))

	if s.hub != nil {
		s.hub.Broadcast("order_created", order)
	}
	if s.emailService != nil {
		if user, err := s.userRepo.FindByID(userID); err == nil && user != nil {
			s.emailService.SendOrderConfirmation(user.Email, order)
		}
	}
	return order, nil
}

// GetOrder trả đơn hàng; người mua chỉ xem được đơn của chính mình
func (s *OrderService) GetOrder(orderID, requesterID int, isAdmin bool) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "Tra cứu đơn hàng thất bại", err)
	}
	if order == nil {
		return nil, errors.New(errors.ErrOrderNotFound, "Không tìm thấy đơn hàng")
	}
	if !isAdmin && order.UserID != requesterID {
		return nil, errors.New(errors.ErrForbidden, "Bạn không có quyền xem đơn hàng này")
	}
	return order, nil
}

func (s *OrderService) ListMyOrders(userID, page, pageSize int) ([]*model.Order, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}
	orders, total, err := s.orderRepo.FindByUser(userID, page, pageSize)
	if err != nil {
		return nil, 0, errors.Wrap(errors.ErrDatabase, "Lấy danh sách đơn hàng thất bại", err)
	}
	return orders, total, nil
}

func (s *OrderService) ListOrders(filters model.OrderFilters) ([]*model.Order, int, error) {
	if filters.Status != "" && !model.IsValidOrderStatus(filters.Status) {
		return nil, 0, errors.New(errors.ErrValidation, "Trạng thái lọc không hợp lệ")
	}
	if filters.Page < 1 {
		filters.Page = 1
	}
	if filters.PageSize < 1 || filters.PageSize > 100 {
		filters.PageSize = 20
	}
	orders, total, err := s.orderRepo.FindAll(filters)
	if err != nil {
		return nil, 0, errors.Wrap(errors.ErrDatabase, "Lấy danh sách đơn hàng thất bại", err)
	}
	return orders, total, nil
}

// UpdateStatus cho admin chuyển trạng thái đơn theo bảng chuyển hợp lệ.
// Chuyển sang cancelled sẽ hoàn kho; đơn đã thanh toán chuyển sang
// chờ hoàn tiền.
func (s *OrderService) UpdateStatus(orderID int, status, note string) (*model.Order, error) {
	if !model.IsValidOrderStatus(status) {
		return nil, errors.New(errors.ErrValidation, "Trạng thái không hợp lệ")
	}

	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "Tra cứu đơn hàng thất bại", err)
	}
	if order == nil {
		return nil, errors.New(errors.ErrOrderNotFound, "Không tìm thấy đơn hàng")
	}
	if !model.CanTransitionOrder(order.Status, status) {
		return nil, errors.New(errors.ErrInvalidTransition,
			fmt.Sprintf("Không thể chuyển đơn từ %s sang %s", order.Status, status))
	}

	if status == model.OrderCancelled {
		return s.cancel(order, note)
	}

	if err := s.orderRepo.UpdateStatus(orderID, status, note); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "Cập nhật trạng thái thất bại", err)
	}
	order.Status = status

	util.Logger.Info("Chuyển trạng thái đơn",
		zap.Int("order_id", orderID), zap.String("status", status))
	if s.hub != nil {
		s.hub.Broadcast("order_status_changed", order)
	}
	return order, nil
}

// CancelOrder cho người mua tự hủy đơn của mình, bắt buộc nêu lý do
func (s *OrderService) CancelOrder(orderID, userID int, reason string) (*model.Order, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, errors.New(errors.ErrValidation, "Vui lòng nêu lý do hủy đơn")
	}

	order, err := s.GetOrder(orderID, userID, false)
	if err != nil {
		return nil, err
	}
	if !model.CanTransitionOrder(order.Status, model.OrderCancelled) {
		return nil, errors.New(errors.ErrInvalidTransition,
			"Đơn đã được giao cho đơn vị vận chuyển, không thể hủy")
	}
	return s.cancel(order, reason)
}

// cancel chốt hủy + hoàn kho trong một giao dịch ở tầng repository;
// caller đã kiểm tra bước chuyển trạng thái
func (s *OrderService) cancel(order *model.Order, reason string) (*model.Order, error) {
	markRefundPending := order.PaymentStatus == model.PaymentPaid

	if err := s.orderRepo.Cancel(order.ID, reason, markRefundPending); err != nil {
		if stderrors.Is(err, mysql.ErrOrderNotCancellable) {
			return nil, errors.New(errors.ErrInvalidTransition,
				"Đơn không còn ở trạng thái cho phép hủy")
		}
		return nil, errors.Wrap(errors.ErrDatabase, "Hủy đơn thất bại", err)
	}
	order.Status = model.OrderCancelled
	if markRefundPending {
		order.PaymentStatus = model.PaymentRefundPending
	}

	util.Logger.Info("Hủy đơn hàng",
		zap.Int("order_id", order.ID), zap.String("reason", reason))
	if s.hub != nil {
		s.hub.Broadcast("order_status_changed", order)
	}
	return order, nil
}

// BuildPaymentURL tạo link thanh toán VNPay cho đơn chưa thanh toán
func (s *OrderService) BuildPaymentURL(orderID, userID int, clientIP string) (string, error) {
	order, err := s.GetOrder(orderID, userID, false)
	if err != nil {
		return "", err
	}
	if order.PaymentMethod != model.PaymentVNPay {
		return "", errors.New(errors.ErrBadRequest, "Đơn hàng không dùng thanh toán VNPay")
	}
	if order.PaymentStatus == model.PaymentPaid {
		return "", errors.New(errors.ErrResourceConflict, "Đơn hàng đã được thanh toán")
	}

	payURL, err := s.vnpayClient.BuildPaymentURL(vnpay.PaymentRequest{
		OrderCode: order.OrderCode,
		Amount:    order.TotalAmount,
		OrderInfo: fmt.Sprintf("Thanh toan don hang %s", order.OrderCode),
		ClientIP:  clientIP,
		CreatedAt: time.Now(),
	})
	if err != nil {
		return "", errors.Wrap(errors.ErrInternal, "Tạo link thanh toán thất bại", err)
	}
	return payURL, nil
}

// HandleVNPayReturn xác minh chữ ký callback và ghi nhận kết quả thanh toán
func (s *OrderService) HandleVNPayReturn(query url.Values) (*model.Order, error) {
	result, ok := s.vnpayClient.VerifyReturn(query)
	if !ok {
		return nil, errors.New(errors.ErrInvalidSignature, "Chữ ký VNPay không hợp lệ")
	}

	order, err := s.orderRepo.FindByCode(result.OrderCode)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "Tra cứu đơn hàng thất bại", err)
	}
	if order == nil {
		return nil, errors.New(errors.ErrOrderNotFound, "Không tìm thấy đơn hàng")
	}

	paymentStatus := model.PaymentFailed
	if result.Success {
		paymentStatus = model.PaymentPaid
	}
	if err := s.orderRepo.UpdatePaymentStatus(order.ID, paymentStatus); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "Cập nhật trạng thái thanh toán thất bại", err)
	}
	order.PaymentStatus = paymentStatus

	util.Logger.Info("Kết quả thanh toán VNPay",
		zap.String("order_code", result.OrderCode),
		zap.String("response_code", result.ResponseCode),
		zap.Bool("success", result.Success))

	if !result.Success {
		return order, errors.New(errors.ErrPaymentFailed, "Thanh toán không thành công")
	}
	return order, nil
}
