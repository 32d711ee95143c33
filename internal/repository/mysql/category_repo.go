package mysql

import (
	"database/sql"
	"time"

	"github.com/huawsvantoan/webbanbanhngot-sub000/internal/model"
	"github.com/huawsvantoan/webbanbanhngot-sub000/internal/util"
	"go.uber.org/zap"
)

// categoryRepository cài đặt CategoryRepository trên MySQL
type categoryRepository struct {
	db *sql.DB
}

// NewCategoryRepository tạo một categoryRepository mới
func NewCategoryRepository(db *sql.DB) *categoryRepository {
	return &categoryRepository{db}
}

func (r *categoryRepository) Create(category *model.Category) error {
	result, err := r.db.Exec(`INSERT INTO categories (name, description) VALUES (?, ?)`,
		category.Name, category.Description)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	category.ID = int(id)
	return nil
}

func (r *categoryRepository) FindByID(id int, includeDeleted bool) (*model.Category, error) {
	query := `SELECT id, name, description, created_at, updated_at, deleted_at
	          FROM categories WHERE id = ?`
	if !includeDeleted {
		query += ` AND deleted_at IS NULL`
	}
	var c model.Category
	err := r.db.QueryRow(query, id).Scan(
		&c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt, &c.DeletedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *categoryRepository) FindAll(includeDeleted bool) ([]*model.Category, error) {
	query := `SELECT id, name, description, created_at, updated_at, deleted_at FROM categories`
	if !includeDeleted {
		query += ` WHERE deleted_at IS NULL`
	}
	query += ` ORDER BY name`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*model.Category
	for rows.Next() {
		var c model.Category
		err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt, &c.DeletedAt)
		if err != nil {
			return nil, err
		}
		categories = append(categories, &c)
	}
	return categories, rows.Err()
}

func (r *categoryRepository) Update(category *model.Category) error {
	_, err := r.db.Exec(`UPDATE categories SET name = ?, description = ?, updated_at = ? WHERE id = ?`,
		category.Name, category.Description, time.Now(), category.ID)
	return err
}

func (r *categoryRepository) SoftDelete(id int) error {
	_, err := r.db.Exec(`UPDATE categories SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL`,
		time.Now(), id)
	return err
}

func (r *categoryRepository) Purge(id int) error {
	util.Logger.Warn("Xóa vĩnh viễn danh mục", zap.Int("category_id", id))
	_, err := r.db.Exec(`DELETE FROM categories WHERE id = ?`, id)
	return err
}
