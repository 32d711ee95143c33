package mysql

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/huawsvantoan/webbanbanhngot-sub000/internal/model"
	"github.com/huawsvantoan/webbanbanhngot-sub000/internal/util"
	"go.uber.org/zap"
)

// reviewRepository cài đặt ReviewRepository trên MySQL
type reviewRepository struct {
	db *sql.DB
}

// NewReviewRepository tạo một reviewRepository mới
func NewReviewRepository(db *sql.DB) *reviewRepository {
	return &reviewRepository{db}
}

const reviewSelect = `
	SELECT r.id, r.user_id, r.product_id, r.rating, r.content, r.parent_id,
	       r.created_at, r.updated_at, u.username, u.avatar_url
	FROM reviews r
	JOIN users u ON u.id = r.user_id`

func scanReview(row interface{ Scan(...interface{}) error }) (*model.Review, error) {
	var rv model.Review
	var rating sql.NullInt64
	var parentID sql.NullInt64
	err := row.Scan(
		&rv.ID, &rv.UserID, &rv.ProductID, &rating, &rv.Content, &parentID,
		&rv.CreatedAt, &rv.UpdatedAt, &rv.Username, &rv.AvatarURL,
	)
	if err != nil {
		return nil, err
	}
	if rating.Valid {
		v := int(rating.Int64)
		rv.Rating = &v
	}
	if parentID.Valid {
		v := int(parentID.Int64)
		rv.ParentID = &v
	}
	return &rv, nil
}

func (r *reviewRepository) Create(review *model.Review) error {
	result, err := r.db.Exec(`
		INSERT INTO reviews (user_id, product_id, rating, content, parent_id)
		VALUES (?, ?, ?, ?, ?)`,
		review.UserID, review.ProductID, review.Rating, review.Content, review.ParentID)
	if err != nil {
		util.Logger.Error("Tạo đánh giá thất bại", zap.Error(err),
			zap.Int("product_id", review.ProductID))
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	review.ID = int(id)
	return nil
}

func (r *reviewRepository) FindByID(id int) (*model.Review, error) {
	rv, err := scanReview(r.db.QueryRow(reviewSelect+` WHERE r.id = ?`, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return rv, nil
}

// ListByProduct trả các đánh giá gốc, mới nhất trước
func (r *reviewRepository) ListByProduct(productID, page, pageSize int) ([]*model.Review, int, error) {
	var total int
	err := r.db.QueryRow(
		`SELECT COUNT(*) FROM reviews WHERE product_id = ? AND parent_id IS NULL`,
		productID).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(reviewSelect+`
		WHERE r.product_id = ? AND r.parent_id IS NULL
		ORDER BY r.created_at DESC LIMIT ? OFFSET ?`,
		productID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var reviews []*model.Review
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, 0, err
		}
		reviews = append(reviews, rv)
	}
	return reviews, total, rows.Err()
}

// ListReplies trả toàn bộ trả lời cho một tập đánh giá gốc, cũ nhất trước
func (r *reviewRepository) ListReplies(parentIDs []int) ([]*model.Review, error) {
	if len(parentIDs) == 0 {
		return nil, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(parentIDs)), ",")
	args := make([]interface{}, len(parentIDs))
	for i, id := range parentIDs {
		args[i] = id
	}

	rows, err := r.db.Query(reviewSelect+`
		WHERE r.parent_id IN (`+placeholders+`)
		ORDER BY r.created_at`, args...)
	if err != nil {
		return nil, fmt.Errorf("truy vấn trả lời thất bại: %w", err)
	}
	defer rows.Close()

	var replies []*model.Review
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		replies = append(replies, rv)
	}
	return replies, rows.Err()
}

func (r *reviewRepository) Update(review *model.Review) error {
	_, err := r.db.Exec(`UPDATE reviews SET rating = ?, content = ?, updated_at = ? WHERE id = ?`,
		review.Rating, review.Content, time.Now(), review.ID)
	return err
}

// Delete xóa đánh giá và toàn bộ trả lời của nó
func (r *reviewRepository) Delete(id int) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM reviews WHERE parent_id = ?`, id); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM reviews WHERE id = ?`, id); err != nil {
		return err
	}
	return tx.Commit()
}

// Summary tính điểm trung bình trên các rating gốc khác NULL
func (r *reviewRepository) Summary(productID int) (*model.ReviewSummary, error) {
	var avg sql.NullFloat64
	var count int
	err := r.db.QueryRow(`
		SELECT AVG(rating), COUNT(rating) FROM reviews
		WHERE product_id = ? AND parent_id IS NULL AND rating IS NOT NULL`,
		productID).Scan(&avg, &count)
	if err != nil {
		return nil, err
	}
	return &model.ReviewSummary{
		AverageRating: avg.Float64,
		RatingCount:   count,
	}, nil
}
