package interfaces

import "github.com/huawsvantoan/webbanbanhngot-sub000/internal/model"

// OrderRepository định nghĩa các thao tác trên đơn hàng.
//
// CreateFromCart chạy trong MỘT giao dịch SQL: khóa và kiểm tra lại tồn kho
// từng sản phẩm, trừ kho, ghi đơn + dòng hàng với giá chụp, rồi xóa giỏ.
// Trả lỗi nếu tồn kho không đủ tại thời điểm chốt đơn.
//
// Cancel cũng chạy trong một giao dịch: chốt trạng thái hủy (kèm lý do và
// cờ chờ hoàn tiền nếu đơn đã thanh toán) và trả tồn kho cho từng dòng hàng.
// Đơn không còn ở trạng thái cho phép hủy thì không có gì thay đổi.
type OrderRepository interface {
	CreateFromCart(order *model.Order) error
	FindByID(id int) (*model.Order, error)
	FindByCode(code string) (*model.Order, error)
	FindByUser(userID int, page, pageSize int) ([]*model.Order, int, error)
	FindAll(filters model.OrderFilters) ([]*model.Order, int, error)
	UpdateStatus(id int, status, note string) error
	UpdatePaymentStatus(id int, paymentStatus string) error
	Cancel(orderID int, reason string, markRefundPending bool) error
	CountByStatus() (map[string]int, error)
	Revenue() (float64, error)
	Recent(limit int) ([]*model.Order, error)
}
