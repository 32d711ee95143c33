package model

import "time"

// Trạng thái bài viết
const (
	BlogDraft     = "draft"
	BlogPublished = "published"
	BlogArchived  = "archived"
)

// BlogPost là bài viết blog của cửa hàng. Status và DeletedAt
// quyết định hiển thị độc lập với nhau: bài công khai phải published và chưa xóa.
type BlogPost struct {
	ID        int        `json:"id"`
	AuthorID  int        `json:"author_id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	CoverURL  string     `json:"cover_url"`
	Status    string     `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
	Author    *User      `json:"author,omitempty"`
}

// IsValidBlogStatus kiểm tra giá trị trạng thái bài viết
func IsValidBlogStatus(status string) bool {
	switch status {
	case BlogDraft, BlogPublished, BlogArchived:
		return true
	}
	return false
}
