package model

import "time"

// Review là đánh giá sản phẩm. Mục gốc có Rating 1-5;
// trả lời (ParentID khác nil) luôn có Rating nil.
// Cây chỉ sâu đúng 2 tầng: đánh giá gốc + các trả lời phẳng.
type Review struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	ProductID int       `json:"product_id"`
	Rating    *int      `json:"rating,omitempty"`
	Content   string    `json:"content"`
	ParentID  *int      `json:"parent_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Username  string    `json:"username,omitempty"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	Replies   []*Review `json:"replies,omitempty"`
}

// ReviewSummary là điểm trung bình và số lượt đánh giá,
// tính phía server trên các rating gốc khác nil.
type ReviewSummary struct {
	AverageRating float64 `json:"average_rating"`
	RatingCount   int     `json:"rating_count"`
}
