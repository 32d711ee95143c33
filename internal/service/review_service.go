package service

import (
	"strings"

	"github.com/huawsvantoan/webbanbanhngot-sub000/internal/errors"
	"github.com/huawsvantoan/webbanbanhngot-sub000/internal/model"
	"github.com/huawsvantoan/webbanbanhngot-sub000/internal/repository/interfaces"
)

// ReviewServiceInterface để handler và test mock được tầng service
type ReviewServiceInterface interface {
	CreateReview(userID, productID int, rating *int, content string) (*model.Review, error)
	ReplyReview(userID, parentID int, content string) (*model.Review, error)
	ListByProduct(productID, page, pageSize int) ([]*model.Review, int, error)
	GetSummary(productID int) (*model.ReviewSummary, error)
	UpdateReview(reviewID, userID int, isAdmin bool, rating *int, content string) (*model.Review, error)
	DeleteReview(reviewID, userID int, isAdmin bool) error
}

// ReviewService quản lý đánh giá sản phẩm và trả lời hai tầng
type ReviewService struct {
	reviewRepo  interfaces.ReviewRepository
	productRepo interfaces.ProductRepository
}

var _ ReviewServiceInterface = (*ReviewService)(nil)

func NewReviewService(reviewRepo interfaces.ReviewRepository, productRepo interfaces.ProductRepository) *ReviewService {
	return &ReviewService{reviewRepo: reviewRepo, productRepo: productRepo}
}

// CreateReview tạo đánh giá gốc; điểm sao tùy chọn, nếu có phải từ 1 đến 5
func (s *ReviewService) CreateReview(userID, productID int, rating *int, content string) (*model.Review, error) {
	if strings.TrimSpace(content) == "" {
		return nil, errors.New(errors.ErrValidation, "Nội dung đánh giá không được trống")
	}
	if rating != nil && (*rating < 1 || *rating > 5) {
		return nil, errors.New(errors.ErrValidation, "Điểm đánh giá phải từ 1 đến 5 sao")
	}

	product, err := s.productRepo.FindByID(productID, false)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "Tra cứu sản phẩm thất bại", err)
	}
	if product == nil {
		return nil, errors.New(errors.ErrProductNotFound, "Không tìm thấy sản phẩm")
	}

	review := &model.Review{
		UserID:    userID,
		ProductID: productID,
		Rating:    rating,
		Content:   content,
	}
	if err := s.reviewRepo.Create(review); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "Tạo đánh giá thất bại", err)
	}
	return s.findOrFallback(review)
}

// ReplyReview tạo trả lời cho một đánh giá gốc. Chỉ hai tầng:
// không trả lời lồng vào một trả lời khác.
func (s *ReviewService) ReplyReview(userID, parentID int, content string) (*model.Review, error) {
	if strings.TrimSpace(content) == "" {
		return nil, errors.New(errors.ErrValidation, "Nội dung trả lời không được trống")
	}

	parent, err := s.reviewRepo.FindByID(parentID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "Tra cứu đánh giá thất bại", err)
	}
	if parent == nil {
		return nil, errors.New(errors.ErrResourceNotFound, "Không tìm thấy đánh giá cần trả lời")
	}
	if parent.ParentID != nil {
		return nil, errors.New(errors.ErrValidation, "Chỉ trả lời được đánh giá gốc")
	}

	reply := &model.Review{
		UserID:    userID,
		ProductID: parent.ProductID,
		ParentID:  &parentID,
		Content:   content,
	}
	if err := s.reviewRepo.Create(reply); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "Tạo trả lời thất bại", err)
	}
	return s.findOrFallback(reply)
}

// ListByProduct trả đánh giá gốc phân trang, mỗi đánh giá kèm danh sách trả lời
func (s *ReviewService) ListByProduct(productID, page, pageSize int) ([]*model.Review, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 50 {
		pageSize = 10
	}

	reviews, total, err := s.reviewRepo.ListByProduct(productID, page, pageSize)
	if err != nil {
		return nil, 0, errors.Wrap(errors.ErrDatabase, "Lấy danh sách đánh giá thất bại", err)
	}
	if len(reviews) == 0 {
		return reviews, total, nil
	}

	parentIDs := make([]int, 0, len(reviews))
	byID := make(map[int]*model.Review, len(reviews))
	for _, review := range reviews {
		review.Replies = []*model.Review{}
		parentIDs = append(parentIDs, review.ID)
		byID[review.ID] = review
	}

	replies, err := s.reviewRepo.ListReplies(parentIDs)
	if err != nil {
		return nil, 0, errors.Wrap(errors.ErrDatabase, "Lấy danh sách trả lời thất bại", err)
	}
	for _, reply := range replies {
		if reply.ParentID == nil {
			continue
		}
		if parent, ok := byID[*reply.ParentID]; ok {
			parent.Replies = append(parent.Replies, reply)
		}
	}
	return reviews, total, nil
}

// GetSummary trả điểm trung bình và số lượt chấm sao của sản phẩm
func (s *ReviewService) GetSummary(productID int) (*model.ReviewSummary, error) {
	summary, err := s.reviewRepo.Summary(productID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "Tính điểm đánh giá thất bại", err)
	}
	return summary, nil
}

// UpdateReview cho chủ đánh giá hoặc admin sửa nội dung và điểm
func (s *ReviewService) UpdateReview(reviewID, userID int, isAdmin bool, rating *int, content string) (*model.Review, error) {
	if strings.TrimSpace(content) == "" {
		return nil, errors.New(errors.ErrValidation, "Nội dung đánh giá không được trống")
	}
	if rating != nil && (*rating < 1 || *rating > 5) {
		return nil, errors.New(errors.ErrValidation, "Điểm đánh giá phải từ 1 đến 5 sao")
	}

	review, err := s.reviewRepo.FindByID(reviewID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "Tra cứu đánh giá thất bại", err)
	}
	if review == nil {
		return nil, errors.New(errors.ErrResourceNotFound, "Không tìm thấy đánh giá")
	}
	if review.UserID != userID && !isAdmin {
		return nil, errors.New(errors.ErrForbidden, "Bạn chỉ sửa được đánh giá của chính mình")
	}
	if review.ParentID != nil && rating != nil {
		return nil, errors.New(errors.ErrValidation, "Trả lời không có điểm sao")
	}

	review.Content = content
	if review.ParentID == nil {
		review.Rating = rating
	}
	if err := s.reviewRepo.Update(review); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "Cập nhật đánh giá thất bại", err)
	}
	return s.findOrFallback(review)
}

// DeleteReview cho chủ đánh giá hoặc admin xóa; xóa đánh giá gốc
// kéo theo toàn bộ trả lời của nó
func (s *ReviewService) DeleteReview(reviewID, userID int, isAdmin bool) error {
	review, err := s.reviewRepo.FindByID(reviewID)
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, "Tra cứu đánh giá thất bại", err)
	}
	if review == nil {
		return errors.New(errors.ErrResourceNotFound, "Không tìm thấy đánh giá")
	}
	if !isAdmin && review.UserID != userID {
		return errors.New(errors.ErrForbidden, "Bạn chỉ xóa được đánh giá của chính mình")
	}
	if err := s.reviewRepo.Delete(reviewID); err != nil {
		return errors.Wrap(errors.ErrDatabase, "Xóa đánh giá thất bại", err)
	}
	return nil
}

// findOrFallback đọc lại bản ghi để có tên và ảnh người viết;
// nếu đọc lại lỗi thì trả bản ghi vừa ghi
func (s *ReviewService) findOrFallback(review *model.Review) (*model.Review, error) {
	fresh, err := s.reviewRepo.FindByID(review.ID)
	if err != nil || fresh == nil {
		return review, nil
	}
	return fresh, nil
}
