package mysql

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/huawsvantoan/webbanbanhngot-sub000/internal/model"
	"github.com/huawsvantoan/webbanbanhngot-sub000/internal/util"
	"go.uber.org/zap"
)

// cartRepository cài đặt CartRepository trên MySQL
type cartRepository struct {
	db *sql.DB
}

// NewCartRepository tạo một cartRepository mới
func NewCartRepository(db *sql.DB) *cartRepository {
	return &cartRepository{db}
}

// ListByUser đọc giỏ kèm thông tin sản phẩm hiện tại.
// Sản phẩm đã xóa mềm vẫn hiện trong giỏ để người dùng tự bỏ ra.
func (r *cartRepository) ListByUser(userID int) ([]*model.CartItem, error) {
	query := `
		SELECT ci.id, ci.user_id, ci.product_id, ci.quantity, ci.created_at, ci.updated_at,
		       p.name, p.image_url, p.price, p.stock
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.user_id = ?
		ORDER BY ci.created_at`
	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("truy vấn giỏ hàng thất bại: %w", err)
	}
	defer rows.Close()

	var items []*model.CartItem
	for rows.Next() {
		var item model.CartItem
		err := rows.Scan(
			&item.ID, &item.UserID, &item.ProductID, &item.Quantity,
			&item.CreatedAt, &item.UpdatedAt,
			&item.ProductName, &item.ProductImage, &item.Price, &item.Stock,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, &item)
	}
	return items, rows.Err()
}

// FindLine tìm dòng giỏ của một sản phẩm, trả nil nếu chưa có
func (r *cartRepository) FindLine(userID, productID int) (*model.CartItem, error) {
	var item model.CartItem
	err := r.db.QueryRow(`
		SELECT id, user_id, product_id, quantity, created_at, updated_at
		FROM cart_items WHERE user_id = ? AND product_id = ?`,
		userID, productID).Scan(
		&item.ID, &item.UserID, &item.ProductID, &item.Quantity,
		&item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *cartRepository) Insert(item *model.CartItem) error {
	result, err := r.db.Exec(`
		INSERT INTO cart_items (user_id, product_id, quantity) VALUES (?, ?, ?)`,
		item.UserID, item.ProductID, item.Quantity)
	if err != nil {
		util.Logger.Error("Thêm vào giỏ thất bại", zap.Error(err),
			zap.Int("user_id", item.UserID), zap.Int("product_id", item.ProductID))
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	item.ID = int(id)
	return nil
}

func (r *cartRepository) UpdateQuantity(userID, productID, quantity int) error {
	_, err := r.db.Exec(`
		UPDATE cart_items SET quantity = ?, updated_at = ?
		WHERE user_id = ? AND product_id = ?`,
		quantity, time.Now(), userID, productID)
	return err
}

func (r *cartRepository) Remove(userID, productID int) error {
	_, err := r.db.Exec(`DELETE FROM cart_items WHERE user_id = ? AND product_id = ?`,
		userID, productID)
	return err
}

func (r *cartRepository) Clear(userID int) error {
	_, err := r.db.Exec(`DELETE FROM cart_items WHERE user_id = ?`, userID)
	return err
}
