package model

import "time"

// Trạng thái đơn hàng
const (
	OrderPending    = "pending"
	OrderProcessing = "processing"
	OrderShipped    = "shipped"
	OrderDelivered  = "delivered"
	OrderCompleted  = "completed"
	OrderCancelled  = "cancelled"
)

// Phương thức thanh toán
const (
	PaymentCOD   = "cod"
	PaymentVNPay = "vnpay"
)

// Trạng thái thanh toán
const (
	PaymentUnpaid        = "unpaid"
	PaymentPaid          = "paid"
	PaymentFailed        = "failed"
	PaymentRefundPending = "refund_pending"
)

// orderTransitions là bảng chuyển trạng thái hợp lệ.
// Hủy đơn chỉ được phép khi đơn còn ở pending hoặc processing.
var orderTransitions = map[string][]string{
	OrderPending:    {OrderProcessing, OrderCancelled},
	OrderProcessing: {OrderShipped, OrderCancelled},
	OrderShipped:    {OrderDelivered},
	OrderDelivered:  {OrderCompleted},
	OrderCompleted:  {},
	OrderCancelled:  {},
}

// IsValidOrderStatus kiểm tra giá trị trạng thái
func IsValidOrderStatus(status string) bool {
	_, ok := orderTransitions[status]
	return ok
}

// CanTransitionOrder kiểm tra một bước chuyển trạng thái theo bảng
func CanTransitionOrder(from, to string) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Order là đơn hàng; danh sách dòng hàng bất biến sau khi tạo,
// chỉ có trạng thái và ghi chú thay đổi được.
type Order struct {
	ID              int          `json:"id"`
	OrderCode       string       `json:"order_code"`
	UserID          int          `json:"user_id"`
	RecipientName   string       `json:"recipient_name"`
	ShippingAddress string       `json:"shipping_address"`
	Phone           string       `json:"phone"`
	Note            string       `json:"note"`
	PaymentMethod   string       `json:"payment_method"`
	PaymentStatus   string       `json:"payment_status"`
	Status          string       `json:"status"`
	TotalAmount     float64      `json:"total_amount"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
	Items           []*OrderItem `json:"items,omitempty"`
	User            *User        `json:"user,omitempty"`
}

// OrderItem là dòng hàng với giá chụp tại thời điểm đặt,
// không bao giờ tính lại theo giá hiện hành.
type OrderItem struct {
	ID          int     `json:"id"`
	OrderID     int     `json:"order_id"`
	ProductID   int     `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

// OrderFilters là điều kiện lọc danh sách đơn cho admin
type OrderFilters struct {
	Status   string
	Page     int
	PageSize int
}
