package mysql

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/huawsvantoan/webbanbanhngot-sub000/internal/model"
	"github.com/huawsvantoan/webbanbanhngot-sub000/internal/util"
	"go.uber.org/zap"
)

// productRepository cài đặt ProductRepository trên MySQL
type productRepository struct {
	db *sql.DB
}

// NewProductRepository tạo một productRepository mới
func NewProductRepository(db *sql.DB) *productRepository {
	return &productRepository{db}
}

func scanProduct(row interface{ Scan(...interface{}) error }) (*model.Product, error) {
	var p model.Product
	var catID sql.NullInt64
	var catName sql.NullString
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock,
		&catID, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt, &p.DeletedAt,
		&catName,
	)
	if err != nil {
		return nil, err
	}
	if catID.Valid {
		id := int(catID.Int64)
		p.CategoryID = &id
		if catName.Valid {
			p.Category = &model.Category{ID: id, Name: catName.String}
		}
	}
	return &p, nil
}

const productSelect = `
	SELECT p.id, p.name, p.description, p.price, p.stock,
	       p.category_id, p.image_url, p.created_at, p.updated_at, p.deleted_at,
	       c.name
	FROM products p
	LEFT JOIN categories c ON c.id = p.category_id`

// Create thêm sản phẩm mới
func (r *productRepository) Create(product *model.Product) error {
	query := `INSERT INTO products (name, description, price, stock, category_id, image_url)
              VALUES (?, ?, ?, ?, ?, ?)`
	result, err := r.db.Exec(query,
		product.Name, product.Description, product.Price, product.Stock,
		product.CategoryID, product.ImageURL)
	if err != nil {
		util.Logger.Error("Tạo sản phẩm thất bại", zap.Error(err), zap.String("name", product.Name))
		return fmt.Errorf("tạo sản phẩm thất bại: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	product.ID = int(id)
	return nil
}

// FindByID tìm sản phẩm theo id; mặc định ẩn sản phẩm đã xóa mềm
func (r *productRepository) FindByID(id int, includeDeleted bool) (*model.Product, error) {
	query := productSelect + ` WHERE p.id = ?`
	if !includeDeleted {
		query += ` AND p.deleted_at IS NULL`
	}
	p, err := scanProduct(r.db.QueryRow(query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return p, nil
}

// FindAll lọc theo từ khóa và danh mục, phân trang
func (r *productRepository) FindAll(filters model.ProductFilters) ([]*model.Product, int, error) {
	where := ` WHERE 1=1`
	args := []interface{}{}
	countArgs := []interface{}{}

	if !filters.IncludeDeleted {
		where += ` AND p.deleted_at IS NULL`
	}
	if filters.Keyword != "" {
		where += ` AND p.name LIKE ?`
		kw := "%" + filters.Keyword + "%"
		args = append(args, kw)
		countArgs = append(countArgs, kw)
	}
	if filters.CategoryID > 0 {
		where += ` AND p.category_id = ?`
		args = append(args, filters.CategoryID)
		countArgs = append(countArgs, filters.CategoryID)
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM products p` + where
	if err := r.db.QueryRow(countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	page := filters.Page
	if page < 1 {
		page = 1
	}
	pageSize := filters.PageSize
	if pageSize < 1 {
		pageSize = 12
	}
	args = append(args, pageSize, (page-1)*pageSize)

	rows, err := r.db.Query(productSelect+where+` ORDER BY p.created_at DESC LIMIT ? OFFSET ?`, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("truy vấn sản phẩm thất bại: %w", err)
	}
	defer rows.Close()

	var products []*model.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, err
		}
		products = append(products, p)
	}
	return products, total, rows.Err()
}

// Update cập nhật thông tin sản phẩm
func (r *productRepository) Update(product *model.Product) error {
	_, err := r.db.Exec(`
		UPDATE products
		SET name = ?, description = ?, price = ?, stock = ?,
		    category_id = ?, image_url = ?, updated_at = ?
		WHERE id = ?`,
		product.Name, product.Description, product.Price, product.Stock,
		product.CategoryID, product.ImageURL, time.Now(), product.ID)
	return err
}

// UpdateStock cộng delta vào tồn kho; từ chối nếu kết quả âm
func (r *productRepository) UpdateStock(id, delta int) error {
	result, err := r.db.Exec(`
		UPDATE products SET stock = stock + ?, updated_at = ?
		WHERE id = ? AND stock + ? >= 0`,
		delta, time.Now(), id, delta)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("không thể cập nhật tồn kho cho sản phẩm %d", id)
	}
	return nil
}

// SoftDelete ẩn sản phẩm khỏi danh sách công khai
func (r *productRepository) SoftDelete(id int) error {
	_, err := r.db.Exec(`UPDATE products SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL`,
		time.Now(), id)
	return err
}

// Purge xóa vĩnh viễn sản phẩm
func (r *productRepository) Purge(id int) error {
	util.Logger.Warn("Xóa vĩnh viễn sản phẩm", zap.Int("product_id", id))
	_, err := r.db.Exec(`DELETE FROM products WHERE id = ?`, id)
	return err
}

// TopSelling trả các sản phẩm bán chạy nhất theo tổng số lượng đã giao
func (r *productRepository) TopSelling(limit int) ([]*model.Product, []int, error) {
	query := `
		SELECT p.id, p.name, p.description, p.price, p.stock,
		       p.category_id, p.image_url, p.created_at, p.updated_at, p.deleted_at,
		       c.name, SUM(oi.quantity) AS sold
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		JOIN products p ON p.id = oi.product_id
		LEFT JOIN categories c ON c.id = p.category_id
		WHERE o.status IN ('delivered', 'completed')
		GROUP BY p.id
		ORDER BY sold DESC
		LIMIT ?`
	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var products []*model.Product
	var quantities []int
	for rows.Next() {
		var p model.Product
		var catID sql.NullInt64
		var catName sql.NullString
		var sold int
		err := rows.Scan(
			&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock,
			&catID, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt, &p.DeletedAt,
			&catName, &sold,
		)
		if err != nil {
			return nil, nil, err
		}
		if catID.Valid {
			id := int(catID.Int64)
			p.CategoryID = &id
		}
		products = append(products, &p)
		quantities = append(quantities, sold)
	}
	return products, quantities, rows.Err()
}
