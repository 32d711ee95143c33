package mysql

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/huawsvantoan/webbanbanhngot-sub000/internal/model"
	"github.com/huawsvantoan/webbanbanhngot-sub000/internal/util"
	"go.uber.org/zap"
)

// ErrInsufficientStock báo tồn kho không đủ tại thời điểm chốt đơn
var (
	ErrInsufficientStock   = fmt.Errorf("tồn kho không đủ")
	ErrOrderNotCancellable = fmt.Errorf("đơn không còn ở trạng thái cho phép hủy")
)

// orderRepository cài đặt OrderRepository trên MySQL
type orderRepository struct {
	db *sql.DB
}

// NewOrderRepository tạo một orderRepository mới
func NewOrderRepository(db *sql.DB) *orderRepository {
	return &orderRepository{db}
}

// CreateFromCart chốt đơn trong một giao dịch duy nhất:
// khóa từng sản phẩm, kiểm tra lại tồn kho, trừ kho, ghi đơn
// cùng các dòng hàng với giá chụp, rồi xóa sạch giỏ của người dùng.
func (r *orderRepository) CreateFromCart(order *model.Order) error {
	tx, err := r.db.Begin()
	if err != nil {
		util.Logger.Error("Mở giao dịch thất bại", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	now := time.Now()

	for _, item := range order.Items {
		var stock int
		err := tx.QueryRow(`SELECT stock FROM products WHERE id = ? AND deleted_at IS NULL FOR UPDATE`,
			item.ProductID).Scan(&stock)
		if err != nil {
			if err == sql.ErrNoRows {
				return fmt.Errorf("%w: sản phẩm %d không còn bán", ErrInsufficientStock, item.ProductID)
			}
			return fmt.Errorf("khóa sản phẩm %d thất bại: %w", item.ProductID, err)
		}
		if stock < item.Quantity {
			util.Logger.Warn("Tồn kho không đủ khi chốt đơn",
				zap.Int("product_id", item.ProductID),
				zap.Int("stock", stock),
				zap.Int("requested", item.Quantity))
			return fmt.Errorf("%w: sản phẩm %d chỉ còn %d", ErrInsufficientStock, item.ProductID, stock)
		}

		_, err = tx.Exec(`UPDATE products SET stock = stock - ?, updated_at = ? WHERE id = ?`,
			item.Quantity, now, item.ProductID)
		if err != nil {
			return fmt.Errorf("trừ kho sản phẩm %d thất bại: %w", item.ProductID, err)
		}
	}

	result, err := tx.Exec(`
		INSERT INTO orders (order_code, user_id, recipient_name, shipping_address, phone,
		                    note, payment_method, payment_status, status, total_amount,
		                    created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		order.OrderCode, order.UserID, order.RecipientName, order.ShippingAddress,
		order.Phone, order.Note, order.PaymentMethod, order.PaymentStatus,
		order.Status, order.TotalAmount, now, now)
	if err != nil {
		util.Logger.Error("Ghi đơn hàng thất bại", zap.Error(err))
		return fmt.Errorf("ghi đơn hàng thất bại: %w", err)
	}

	orderID, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("lấy id đơn hàng thất bại: %w", err)
	}
	order.ID = int(orderID)
	order.CreatedAt = now
	order.UpdatedAt = now

	for _, item := range order.Items {
		res, err := tx.Exec(`
			INSERT INTO order_items (order_id, product_id, product_name, quantity, price)
			VALUES (?, ?, ?, ?, ?)`,
			order.ID, item.ProductID, item.ProductName, item.Quantity, item.Price)
		if err != nil {
			return fmt.Errorf("ghi dòng hàng thất bại: %w", err)
		}
		itemID, err := res.LastInsertId()
		if err != nil {
			return err
		}
		item.ID = int(itemID)
		item.OrderID = order.ID
	}

	// Giỏ được dọn trong cùng giao dịch với việc ghi đơn
	if _, err := tx.Exec(`DELETE FROM cart_items WHERE user_id = ?`, order.UserID); err != nil {
		return fmt.Errorf("dọn giỏ hàng thất bại: %w", err)
	}

	if err := tx.Commit(); err != nil {
		util.Logger.Error("Commit giao dịch chốt đơn thất bại", zap.Error(err))
		return err
	}

	util.Logger.Info("Đã chốt đơn hàng",
		zap.Int("order_id", order.ID),
		zap.String("order_code", order.OrderCode),
		zap.Float64("total", order.TotalAmount))
	return nil
}

const orderColumns = `id, order_code, user_id, recipient_name, shipping_address, phone,
       note, payment_method, payment_status, status, total_amount, created_at, updated_at`

func scanOrder(row interface{ Scan(...interface{}) error }) (*model.Order, error) {
	var o model.Order
	err := row.Scan(
		&o.ID, &o.OrderCode, &o.UserID, &o.RecipientName, &o.ShippingAddress,
		&o.Phone, &o.Note, &o.PaymentMethod, &o.PaymentStatus, &o.Status,
		&o.TotalAmount, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *orderRepository) loadItems(order *model.Order) error {
	rows, err := r.db.Query(`
		SELECT id, order_id, product_id, product_name, quantity, price
		FROM order_items WHERE order_id = ?`, order.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var item model.OrderItem
		err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID,
			&item.ProductName, &item.Quantity, &item.Price)
		if err != nil {
			return err
		}
		order.Items = append(order.Items, &item)
	}
	return rows.Err()
}

// FindByID đọc đơn kèm dòng hàng, trả nil nếu không có
func (r *orderRepository) FindByID(id int) (*model.Order, error) {
	o, err := scanOrder(r.db.QueryRow(`SELECT `+orderColumns+` FROM orders WHERE id = ?`, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	if err := r.loadItems(o); err != nil {
		return nil, err
	}
	return o, nil
}

// FindByCode đọc đơn theo mã hiển thị (dùng cho callback VNPay)
func (r *orderRepository) FindByCode(code string) (*model.Order, error) {
	o, err := scanOrder(r.db.QueryRow(`SELECT `+orderColumns+` FROM orders WHERE order_code = ?`, code))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	if err := r.loadItems(o); err != nil {
		return nil, err
	}
	return o, nil
}

// FindByUser trả đơn của một người dùng, mới nhất trước
func (r *orderRepository) FindByUser(userID int, page, pageSize int) ([]*model.Order, int, error) {
	var total int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM orders WHERE user_id = ?`, userID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(`SELECT `+orderColumns+` FROM orders WHERE user_id = ?
		ORDER BY created_at DESC LIMIT ? OFFSET ?`,
		userID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var orders []*model.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, 0, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	for _, o := range orders {
		if err := r.loadItems(o); err != nil {
			return nil, 0, err
		}
	}
	return orders, total, nil
}

// FindAll cho admin, lọc theo trạng thái
func (r *orderRepository) FindAll(filters model.OrderFilters) ([]*model.Order, int, error) {
	where := ``
	args := []interface{}{}
	if filters.Status != "" {
		where = ` WHERE o.status = ?`
		args = append(args, filters.Status)
	}

	var total int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM orders o`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	page := filters.Page
	if page < 1 {
		page = 1
	}
	pageSize := filters.PageSize
	if pageSize < 1 {
		pageSize = 10
	}
	args = append(args, pageSize, (page-1)*pageSize)

	query := `
		SELECT o.id, o.order_code, o.user_id, o.recipient_name, o.shipping_address, o.phone,
		       o.note, o.payment_method, o.payment_status, o.status, o.total_amount,
		       o.created_at, o.updated_at, u.username, u.email
		FROM orders o
		JOIN users u ON u.id = o.user_id` + where + `
		ORDER BY o.created_at DESC LIMIT ? OFFSET ?`

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var orders []*model.Order
	for rows.Next() {
		var o model.Order
		var u model.User
		err := rows.Scan(
			&o.ID, &o.OrderCode, &o.UserID, &o.RecipientName, &o.ShippingAddress,
			&o.Phone, &o.Note, &o.PaymentMethod, &o.PaymentStatus, &o.Status,
			&o.TotalAmount, &o.CreatedAt, &o.UpdatedAt, &u.Username, &u.Email,
		)
		if err != nil {
			return nil, 0, err
		}
		u.ID = o.UserID
		o.User = &u
		orders = append(orders, &o)
	}
	return orders, total, rows.Err()
}

// UpdateStatus đổi trạng thái; note chỉ ghi đè khi khác rỗng
func (r *orderRepository) UpdateStatus(id int, status, note string) error {
	var err error
	if note != "" {
		_, err = r.db.Exec(`UPDATE orders SET status = ?, note = ?, updated_at = ? WHERE id = ?`,
			status, note, time.Now(), id)
	} else {
		_, err = r.db.Exec(`UPDATE orders SET status = ?, updated_at = ? WHERE id = ?`,
			status, time.Now(), id)
	}
	if err == nil {
		util.Logger.Info("Đã đổi trạng thái đơn", zap.Int("order_id", id), zap.String("status", status))
	}
	return err
}

func (r *orderRepository) UpdatePaymentStatus(id int, paymentStatus string) error {
	_, err := r.db.Exec(`UPDATE orders SET payment_status = ?, updated_at = ? WHERE id = ?`,
		paymentStatus, time.Now(), id)
	return err
}

// Cancel hủy đơn trong MỘT giao dịch: chốt trạng thái hủy trước (có khóa dòng
// đơn và kiểm tra trạng thái hiện tại), rồi trả tồn kho cho từng dòng hàng.
// Nhờ đó hủy lặp lại không bao giờ trả kho hai lần cho cùng một đơn.
func (r *orderRepository) Cancel(orderID int, reason string, markRefundPending bool) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now()

	result, err := tx.Exec(`
		UPDATE orders SET status = ?, note = ?, updated_at = ?
		WHERE id = ? AND status IN (?, ?)`,
		model.OrderCancelled, reason, now, orderID,
		model.OrderPending, model.OrderProcessing)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrOrderNotCancellable
	}

	if markRefundPending {
		_, err = tx.Exec(`UPDATE orders SET payment_status = ?, updated_at = ? WHERE id = ?`,
			model.PaymentRefundPending, now, orderID)
		if err != nil {
			return err
		}
	}

	rows, err := tx.Query(`SELECT product_id, quantity FROM order_items WHERE order_id = ?`, orderID)
	if err != nil {
		return err
	}

	type line struct{ productID, quantity int }
	var lines []line
	for rows.Next() {
		var l line
		if err := rows.Scan(&l.productID, &l.quantity); err != nil {
			rows.Close()
			return err
		}
		lines = append(lines, l)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	for _, l := range lines {
		_, err := tx.Exec(`UPDATE products SET stock = stock + ?, updated_at = ? WHERE id = ?`,
			l.quantity, now, l.productID)
		if err != nil {
			return fmt.Errorf("trả kho sản phẩm %d thất bại: %w", l.productID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	util.Logger.Info("Đã hủy đơn và trả tồn kho", zap.Int("order_id", orderID))
	return nil
}

// CountByStatus đếm đơn theo từng trạng thái
func (r *orderRepository) CountByStatus() (map[string]int, error) {
	rows, err := r.db.Query(`SELECT status, COUNT(*) FROM orders GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

// Revenue tính doanh thu trên các đơn đã giao thành công
func (r *orderRepository) Revenue() (float64, error) {
	var revenue sql.NullFloat64
	err := r.db.QueryRow(`
		SELECT SUM(total_amount) FROM orders
		WHERE status IN ('delivered', 'completed')`).Scan(&revenue)
	if err != nil {
		return 0, err
	}
	return revenue.Float64, nil
}

// Recent trả các đơn mới nhất cho dashboard
func (r *orderRepository) Recent(limit int) ([]*model.Order, error) {
	rows, err := r.db.Query(`SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*model.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}
