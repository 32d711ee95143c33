package mysql

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/huawsvantoan/webbanbanhngot-sub000/internal/model"
	"github.com/huawsvantoan/webbanbanhngot-sub000/internal/util"
	"go.uber.org/zap"
)

// userRepository cài đặt UserRepository trên MySQL
type userRepository struct {
	db *sql.DB
}

// NewUserRepository tạo một userRepository mới
func NewUserRepository(db *sql.DB) *userRepository {
	return &userRepository{db}
}

const userColumns = `id, username, email, password_hash, full_name, address, phone,
       avatar_url, role, is_verified, created_at, updated_at, deleted_at`

func scanUser(row interface{ Scan(...interface{}) error }) (*model.User, error) {
	var user model.User
	err := row.Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash,
		&user.FullName, &user.Address, &user.Phone, &user.AvatarURL,
		&user.Role, &user.IsVerified, &user.CreatedAt, &user.UpdatedAt,
		&user.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Create tạo người dùng mới với vai trò mặc định user
func (r *userRepository) Create(user *model.User) error {
	query := `INSERT INTO users (username, email, password_hash, full_name, address, phone, avatar_url, role, is_verified)
              VALUES (?, ?, ?, ?, ?, ?, ?, 'user', ?)`
	result, err := r.db.Exec(query,
		user.Username, user.Email, user.PasswordHash,
		user.FullName, user.Address, user.Phone, user.AvatarURL, user.IsVerified)
	if err != nil {
		util.Logger.Error("Tạo người dùng thất bại", zap.Error(err), zap.String("email", user.Email))
		return fmt.Errorf("tạo người dùng thất bại: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("lấy id người dùng mới thất bại: %w", err)
	}
	user.ID = int(id)
	user.Role = model.RoleUser
	util.Logger.Info("Đã tạo người dùng", zap.Int("user_id", user.ID))
	return nil
}

// FindByID tìm người dùng theo id, trả nil nếu không có
func (r *userRepository) FindByID(id int) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`
	user, err := scanUser(r.db.QueryRow(query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

// FindByEmail tìm người dùng theo email
func (r *userRepository) FindByEmail(email string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = ?`
	user, err := scanUser(r.db.QueryRow(query, email))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

// FindByUsername tìm người dùng theo username
func (r *userRepository) FindByUsername(username string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = ?`
	user, err := scanUser(r.db.QueryRow(query, username))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

// Update cập nhật hồ sơ người dùng
func (r *userRepository) Update(user *model.User) error {
	_, err := r.db.Exec(`
		UPDATE users
		SET username = ?, email = ?, full_name = ?, address = ?, phone = ?,
		    avatar_url = ?, role = ?, is_verified = ?, updated_at = ?
		WHERE id = ?`,
		user.Username, user.Email, user.FullName, user.Address, user.Phone,
		user.AvatarURL, user.Role, user.IsVerified, time.Now(), user.ID)
	return err
}

// UpdatePassword chỉ cập nhật hash mật khẩu
func (r *userRepository) UpdatePassword(id int, passwordHash string) error {
	_, err := r.db.Exec(`UPDATE users SET password_hash = ?, updated_at = ? WHERE id = ?`,
		passwordHash, time.Now(), id)
	return err
}

// SoftDelete đánh dấu người dùng đã xóa
func (r *userRepository) SoftDelete(id int) error {
	_, err := r.db.Exec(`UPDATE users SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL`,
		time.Now(), id)
	return err
}

// Purge xóa vĩnh viễn người dùng
func (r *userRepository) Purge(id int) error {
	util.Logger.Warn("Xóa vĩnh viễn người dùng", zap.Int("user_id", id))
	_, err := r.db.Exec(`DELETE FROM users WHERE id = ?`, id)
	return err
}

// Count đếm người dùng chưa xóa
func (r *userRepository) Count() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM users WHERE deleted_at IS NULL`).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// FindAll trả danh sách người dùng phân trang; mặc định ẩn tài khoản đã xóa
func (r *userRepository) FindAll(page, pageSize int, includeDeleted bool) ([]*model.User, int, error) {
	where := `WHERE deleted_at IS NULL`
	if includeDeleted {
		where = ``
	}

	var total int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM users ` + where).Scan(&total); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	query := `SELECT ` + userColumns + ` FROM users ` + where + ` ORDER BY created_at DESC LIMIT ? OFFSET ?`
	rows, err := r.db.Query(query, pageSize, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("truy vấn danh sách người dùng thất bại: %w", err)
	}
	defer rows.Close()

	var users []*model.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, user)
	}
	return users, total, rows.Err()
}
