package service

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/huawsvantoan/webbanbanhngot-sub000/internal/errors"
	"github.com/huawsvantoan/webbanbanhngot-sub000/internal/model"
	"github.com/huawsvantoan/webbanbanhngot-sub000/internal/repository/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newOrderServiceForTest(orderRepo *MockOrderRepository, cartRepo *MockCartRepository, userRepo *MockUserRepository) *OrderService {
	return NewOrderService(orderRepo, cartRepo, userRepo, nil, nil, nil)
}

func TestCheckoutEmptyCart(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	cartRepo := new(MockCartRepository)
	userRepo := new(MockUserRepository)
	svc := newOrderServiceForTest(orderRepo, cartRepo, userRepo)

	cartRepo.On("ListByUser", 1).Return([]*model.CartItem{}, nil)

	_, err := svc.Checkout(1, CheckoutInput{
		RecipientName:   "Nguyễn Văn An",
		ShippingAddress: "12 Lý Thường Kiệt, Hà Nội",
		Phone:           "0912345678",
		PaymentMethod:   model.PaymentCOD,
	})
	assert.Error(t, err)
	appErr, ok := err.(*errors.AppError)
	assert.True(t, ok)
	assert.Equal(t, errors.ErrCartEmpty, appErr.Code)
	orderRepo.AssertNotCalled(t, "CreateFromCart", mock.Anything)
}

func TestCheckoutSnapshotsCartAndTotal(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	cartRepo := new(MockCartRepository)
	userRepo := new(MockUserRepository)
	svc := newOrderServiceForTest(orderRepo, cartRepo, userRepo)

	cartRepo.On("ListByUser", 1).Return([]*model.CartItem{
		{ProductID: 10, ProductName: "Bánh mì hoa cúc", Quantity: 2, Price: 45000},
		{ProductID: 11, ProductName: "Bánh tiramisu", Quantity: 1, Price: 320000},
	}, nil)
	orderRepo.On("CreateFromCart", mock.AnythingOfType("*model.Order")).Return(nil)

	order, err := svc.Checkout(1, CheckoutInput{
		RecipientName:   "Nguyễn Văn An",
		ShippingAddress: "12 Lý Thường Kiệt, Hà Nội",
		Phone:           "0912345678",
		PaymentMethod:   model.PaymentCOD,
	})
	assert.NoError(t, err)
	assert.Equal(t, model.OrderPending, order.Status)
	assert.Equal(t, model.PaymentUnpaid, order.PaymentStatus)
	assert.Len(t, order.Items, 2)
	// tổng tiền bằng đúng tổng các dòng chụp giá
	assert.Equal(t, float64(2*45000+320000), order.TotalAmount)
	assert.Equal(t, "Bánh mì hoa cúc", order.Items[0].ProductName)
	assert.True(t, strings.HasPrefix(order.OrderCode, fmt.Sprintf("DH-%d-", time.Now().Year())))
	orderRepo.AssertExpectations(t)
}

func TestCheckoutInsufficientStock(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	cartRepo := new(MockCartRepository)
	userRepo := new(MockUserRepository)
	svc := newOrderServiceForTest(orderRepo, cartRepo, userRepo)

	cartRepo.On("ListByUser", 1).Return([]*model.CartItem{
		{ProductID: 10, Quantity: 3, Price: 45000},
	}, nil)
	orderRepo.On("CreateFromCart", mock.AnythingOfType("*model.Order")).
		Return(fmt.Errorf("%w: sản phẩm 10 chỉ còn 1", mysql.ErrInsufficientStock))

	_, err := svc.Checkout(1, CheckoutInput{
		RecipientName:   "Nguyễn Văn An",
		ShippingAddress: "12 Lý Thường Kiệt, Hà Nội",
		Phone:           "0912345678",
		PaymentMethod:   model.PaymentCOD,
	})
	assert.Error(t, err)
	appErr, ok := err.(*errors.AppError)
	assert.True(t, ok)
	assert.Equal(t, errors.ErrOutOfStock, appErr.Code)
}

func TestUpdateStatusValidTransition(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	cartRepo := new(MockCartRepository)
	userRepo := new(MockUserRepository)
	svc := newOrderServiceForTest(orderRepo, cartRepo, userRepo)

	orderRepo.On("FindByID", 5).Return(&model.Order{ID: 5, Status: model.OrderPending}, nil)
	orderRepo.On("UpdateStatus", 5, model.OrderProcessing, "").Return(nil)

	order, err := svc.UpdateStatus(5, model.OrderProcessing, "")
	assert.NoError(t, err)
	assert.Equal(t, model.OrderProcessing, order.Status)
	orderRepo.AssertExpectations(t)
}

func TestUpdateStatusInvalidTransition(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	cartRepo := new(MockCartRepository)
	userRepo := new(MockUserRepository)
	svc := newOrderServiceForTest(orderRepo, cartRepo, userRepo)

	// đơn đã giao không quay lại processing được
	orderRepo.On("FindByID", 5).Return(&model.Order{ID: 5, Status: model.OrderDelivered}, nil)

	_, err := svc.UpdateStatus(5, model.OrderProcessing, "")
	assert.Error(t, err)
	appErr, ok := err.(*errors.AppError)
	assert.True(t, ok)
	assert.Equal(t, errors.ErrInvalidTransition, appErr.Code)
	orderRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestCancelOrderRestocksAndRequiresReason(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	cartRepo := new(MockCartRepository)
	userRepo := new(MockUserRepository)
	svc := newOrderServiceForTest(orderRepo, cartRepo, userRepo)

	_, err := svc.CancelOrder(5, 1, "   ")
	assert.Error(t, err)

	orderRepo.On("FindByID", 5).Return(&model.Order{
		ID: 5, UserID: 1, Status: model.OrderPending, PaymentStatus: model.PaymentUnpaid,
	}, nil)
	orderRepo.On("Cancel", 5, "Đổi ý không mua nữa", false).Return(nil)

	order, err := svc.CancelOrder(5, 1, "Đổi ý không mua nữa")
	assert.NoError(t, err)
	assert.Equal(t, model.OrderCancelled, order.Status)
	// hủy + hoàn kho là một lời gọi repository duy nhất, không tách bước
	orderRepo.AssertNumberOfCalls(t, "Cancel", 1)
	orderRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	orderRepo.AssertExpectations(t)
}

func TestCancelOrderAlreadyCancelledDoesNotRestockAgain(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	cartRepo := new(MockCartRepository)
	userRepo := new(MockUserRepository)
	svc := newOrderServiceForTest(orderRepo, cartRepo, userRepo)

	orderRepo.On("FindByID", 5).Return(&model.Order{
		ID: 5, UserID: 1, Status: model.OrderPending, PaymentStatus: model.PaymentUnpaid,
	}, nil)
	// Một yêu cầu hủy khác đã thắng ở tầng CSDL: repository từ chối,
	// không có kho nào được trả thêm lần nữa
	orderRepo.On("Cancel", 5, "Đổi ý", false).Return(mysql.ErrOrderNotCancellable)

	_, err := svc.CancelOrder(5, 1, "Đổi ý")
	assert.Error(t, err)
	appErr, ok := err.(*errors.AppError)
	assert.True(t, ok)
	assert.Equal(t, errors.ErrInvalidTransition, appErr.Code)
}

func TestCancelPaidOrderMarksRefundPending(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	cartRepo := new(MockCartRepository)
	userRepo := new(MockUserRepository)
	svc := newOrderServiceForTest(orderRepo, cartRepo, userRepo)

	orderRepo.On("FindByID", 5).Return(&model.Order{
		ID: 5, UserID: 1, Status: model.OrderProcessing, PaymentStatus: model.PaymentPaid,
	}, nil)
	orderRepo.On("Cancel", 5, "Giao quá lâu", true).Return(nil)

	order, err := svc.CancelOrder(5, 1, "Giao quá lâu")
	assert.NoError(t, err)
	assert.Equal(t, model.PaymentRefundPending, order.PaymentStatus)
	orderRepo.AssertExpectations(t)
}

func TestCancelShippedOrderRejected(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	cartRepo := new(MockCartRepository)
	userRepo := new(MockUserRepository)
	svc := newOrderServiceForTest(orderRepo, cartRepo, userRepo)

	orderRepo.On("FindByID", 5).Return(&model.Order{ID: 5, UserID: 1, Status: model.OrderShipped}, nil)

	_, err := svc.CancelOrder(5, 1, "Muốn hủy")
	assert.Error(t, err)
	appErr, ok := err.(*errors.AppError)
	assert.True(t, ok)
	assert.Equal(t, errors.ErrInvalidTransition, appErr.Code)
	orderRepo.AssertNotCalled(t, "Cancel", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetOrderOwnership(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	cartRepo := new(MockCartRepository)
	userRepo := new(MockUserRepository)
	svc := newOrderServiceForTest(orderRepo, cartRepo, userRepo)

	orderRepo.On("FindByID", 5).Return(&model.Order{ID: 5, UserID: 2}, nil)

	// người khác không xem được
	_, err := svc.GetOrder(5, 1, false)
	assert.Error(t, err)
	appErr, ok := err.(*errors.AppError)
	assert.True(t, ok)
	assert.Equal(t, errors.ErrForbidden, appErr.Code)

	// admin xem được đơn của bất kỳ ai
	order, err := svc.GetOrder(5, 1, true)
	assert.NoError(t, err)
	assert.Equal(t, 5, order.ID)
}
