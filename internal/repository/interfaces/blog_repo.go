package interfaces

import "github.com/huawsvantoan/webbanbanhngot-sub000/internal/model"

// BlogRepository định nghĩa các thao tác trên bài viết blog
type BlogRepository interface {
	Create(post *model.BlogPost) error
	FindByID(id int, includeDeleted bool) (*model.BlogPost, error)
	// ListPublished trả bài published chưa xóa cho trang công khai
	ListPublished(page, pageSize int) ([]*model.BlogPost, int, error)
	// ListAll cho admin, tùy chọn kèm bài đã xóa mềm
	ListAll(page, pageSize int, includeDeleted bool) ([]*model.BlogPost, int, error)
	Update(post *model.BlogPost) error
	SoftDelete(id int) error
	Purge(id int) error
}
