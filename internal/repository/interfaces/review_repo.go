package interfaces

import "github.com/huawsvantoan/webbanbanhngot-sub000/internal/model"

// ReviewRepository định nghĩa các thao tác trên đánh giá sản phẩm
type ReviewRepository interface {
	Create(review *model.Review) error
	FindByID(id int) (*model.Review, error)
	// ListByProduct trả các đánh giá gốc của sản phẩm (phân trang)
	ListByProduct(productID, page, pageSize int) ([]*model.Review, int, error)
	// ListReplies trả toàn bộ trả lời của một tập đánh giá gốc
	ListReplies(parentIDs []int) ([]*model.Review, error)
	Update(review *model.Review) error
	// Delete xóa đánh giá cùng các trả lời của nó
	Delete(id int) error
	Summary(productID int) (*model.ReviewSummary, error)
}
