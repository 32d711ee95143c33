package service

import (
	"testing"

	"github.com/huawsvantoan/webbanbanhngot-sub000/internal/errors"
	"github.com/huawsvantoan/webbanbanhngot-sub000/internal/model"
	"github.com/huawsvantoan/webbanbanhngot-sub000/internal/repository/interfaces"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func intPtr(v int) *int { return &v }

func TestCreateReviewValidatesRating(t *testing.T) {
	reviewRepo := new(MockReviewRepository)
	productRepo := new(MockProductRepository)
	svc := NewReviewService(reviewRepo, productRepo)

	_, err := svc.CreateReview(1, 10, intPtr(6), "Ngon lắm")
	assert.Error(t, err)
	appErr, ok := err.(*errors.AppError)
	assert.True(t, ok)
	assert.Equal(t, errors.ErrValidation, appErr.Code)

	_, err = svc.CreateReview(1, 10, intPtr(0), "Ngon lắm")
	assert.Error(t, err)
	reviewRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestCreateReviewWithoutRating(t *testing.T) {
	reviewRepo := new(MockReviewRepository)
	productRepo := new(MockProductRepository)
	svc := NewReviewService(reviewRepo, productRepo)

	productRepo.On("FindByID", 10, false).Return(&model.Product{ID: 10}, nil)
	reviewRepo.On("Create", mock.AnythingOfType("*model.Review")).Run(func(args mock.Arguments) {
		args.Get(0).(*model.Review).ID = 1
	}).Return(nil)
	reviewRepo.On("FindByID", 1).Return(&model.Review{ID: 1, UserID: 1, ProductID: 10, Content: "Bánh giao nhanh"}, nil)

	review, err := svc.CreateReview(1, 10, nil, "Bánh giao nhanh")
	assert.NoError(t, err)
	assert.Nil(t, review.Rating)
	reviewRepo.AssertExpectations(t)
}

func TestReplyToReplyRejected(t *testing.T) {
	reviewRepo := new(MockReviewRepository)
	productRepo := new(MockProductRepository)
	svc := NewReviewService(reviewRepo, productRepo)

	// mục 2 đã là trả lời của mục 1
	reviewRepo.On("FindByID", 2).Return(&model.Review{ID: 2, ParentID: intPtr(1)}, nil)

	_, err := svc.ReplyReview(1, 2, "Trả lời lồng")
	assert.Error(t, err)
	appErr, ok := err.(*errors.AppError)
	assert.True(t, ok)
	assert.Equal(t, errors.ErrValidation, appErr.Code)
	reviewRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestReplyInheritsProduct(t *testing.T) {
	reviewRepo := new(MockReviewRepository)
	productRepo := new(MockProductRepository)
	svc := NewReviewService(reviewRepo, productRepo)

	reviewRepo.On("FindByID", 1).Return(&model.Review{ID: 1, ProductID: 10}, nil)
	reviewRepo.On("Create", mock.MatchedBy(func(r *model.Review) bool {
		return r.ProductID == 10 && r.ParentID != nil && *r.ParentID == 1 && r.Rating == nil
	})).Run(func(args mock.Arguments) {
		args.Get(0).(*model.Review).ID = 2
	}).Return(nil)
	reviewRepo.On("FindByID", 2).Return(&model.Review{ID: 2, ProductID: 10, ParentID: intPtr(1)}, nil)

	reply, err := svc.ReplyReview(3, 1, "Cảm ơn bạn đã ủng hộ")
	assert.NoError(t, err)
	assert.Equal(t, 10, reply.ProductID)
	reviewRepo.AssertExpectations(t)
}

func TestListByProductAttachesReplies(t *testing.T) {
	reviewRepo := new(MockReviewRepository)
	productRepo := new(MockProductRepository)
	svc := NewReviewService(reviewRepo, productRepo)

	reviewRepo.On("ListByProduct", 10, 1, 10).Return([]*model.Review{
		{ID: 1, ProductID: 10, Rating: intPtr(5)},
		{ID: 2, ProductID: 10, Rating: intPtr(3)},
	}, 2, nil)
	reviewRepo.On("ListReplies", []int{1, 2}).Return([]*model.Review{
		{ID: 3, ParentID: intPtr(1)},
		{ID: 4, ParentID: intPtr(1)},
	}, nil)

	reviews, total, err := svc.ListByProduct(10, 1, 10)
	assert.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, reviews[0].Replies, 2)
	assert.Empty(t, reviews[1].Replies)
}

func TestUpdateReviewOnlyOwner(t *testing.T) {
	reviewRepo := new(MockReviewRepository)
	productRepo := new(MockProductRepository)
	svc := NewReviewService(reviewRepo, productRepo)

	reviewRepo.On("FindByID", 1).Return(&model.Review{ID: 1, UserID: 2, Content: "cũ"}, nil)

	_, err := svc.UpdateReview(1, 999, false, intPtr(4), "sửa của người khác")
	assert.Error(t, err)
	appErr, ok := err.(*errors.AppError)
	assert.True(t, ok)
	assert.Equal(t, errors.ErrForbidden, appErr.Code)
	reviewRepo.AssertNotCalled(t, "Update", mock.Anything)
}

func TestUpdateReviewAdminOverride(t *testing.T) {
	reviewRepo := new(MockReviewRepository)
	productRepo := new(MockProductRepository)
	svc := NewReviewService(reviewRepo, productRepo)

	reviewRepo.On("FindByID", 1).Return(&model.Review{ID: 1, UserID: 2, Content: "nội dung xấu"}, nil)
	reviewRepo.On("Update", mock.MatchedBy(func(r *model.Review) bool {
		return r.ID == 1 && r.Content == "đã kiểm duyệt"
	})).Return(nil)

	// admin sửa được đánh giá của người khác, giống như xóa
	review, err := svc.UpdateReview(1, 999, true, nil, "đã kiểm duyệt")
	assert.NoError(t, err)
	assert.Equal(t, "đã kiểm duyệt", review.Content)
	reviewRepo.AssertExpectations(t)
}

func TestDeleteReviewAdminOverride(t *testing.T) {
	reviewRepo := new(MockReviewRepository)
	productRepo := new(MockProductRepository)
	svc := NewReviewService(reviewRepo, productRepo)

	reviewRepo.On("FindByID", 1).Return(&model.Review{ID: 1, UserID: 2}, nil)

	// không phải chủ, không phải admin
	err := svc.DeleteReview(1, 999, false)
	assert.Error(t, err)

	// admin xóa được
	reviewRepo.On("Delete", 1).Return(nil)
	err = svc.DeleteReview(1, 999, true)
	assert.NoError(t, err)
	reviewRepo.AssertExpectations(t)
}

// memoryReviewStore là kho đánh giá trong bộ nhớ, tính Summary giống
// tầng MySQL: trung bình các rating khác nil của đánh giá gốc.
type memoryReviewStore struct {
	nextID  int
	reviews map[int]*model.Review
}

func newMemoryReviewStore() *memoryReviewStore {
	return &memoryReviewStore{nextID: 1, reviews: make(map[int]*model.Review)}
}

func (s *memoryReviewStore) Create(review *model.Review) error {
	review.ID = s.nextID
	s.nextID++
	cp := *review
	s.reviews[cp.ID] = &cp
	return nil
}

func (s *memoryReviewStore) FindByID(id int) (*model.Review, error) {
	r, ok := s.reviews[id]
	if !ok {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}

func (s *memoryReviewStore) ListByProduct(productID, page, pageSize int) ([]*model.Review, int, error) {
	var roots []*model.Review
	for _, r := range s.reviews {
		if r.ProductID == productID && r.ParentID == nil {
			cp := *r
			roots = append(roots, &cp)
		}
	}
	return roots, len(roots), nil
}

func (s *memoryReviewStore) ListReplies(parentIDs []int) ([]*model.Review, error) {
	var replies []*model.Review
	for _, r := range s.reviews {
		if r.ParentID == nil {
			continue
		}
		for _, id := range parentIDs {
			if *r.ParentID == id {
				cp := *r
				replies = append(replies, &cp)
			}
		}
	}
	return replies, nil
}

func (s *memoryReviewStore) Update(review *model.Review) error {
	cp := *review
	s.reviews[cp.ID] = &cp
	return nil
}

func (s *memoryReviewStore) Delete(id int) error {
	delete(s.reviews, id)
	for rid, r := range s.reviews {
		if r.ParentID != nil && *r.ParentID == id {
			delete(s.reviews, rid)
		}
	}
	return nil
}

func (s *memoryReviewStore) Summary(productID int) (*model.ReviewSummary, error) {
	var sum, count int
	for _, r := range s.reviews {
		if r.ProductID == productID && r.ParentID == nil && r.Rating != nil {
			sum += *r.Rating
			count++
		}
	}
	summary := &model.ReviewSummary{RatingCount: count}
	if count > 0 {
		summary.AverageRating = float64(sum) / float64(count)
	}
	return summary, nil
}

var _ interfaces.ReviewRepository = (*memoryReviewStore)(nil)

func TestAverageRatingRecomputedAfterAddEditDelete(t *testing.T) {
	store := newMemoryReviewStore()
	productRepo := new(MockProductRepository)
	svc := NewReviewService(store, productRepo)

	productRepo.On("FindByID", 10, false).Return(&model.Product{ID: 10, Name: "Bánh kem dâu"}, nil)

	r1, err := svc.CreateReview(1, 10, intPtr(5), "Tuyệt vời")
	assert.NoError(t, err)
	r2, err := svc.CreateReview(2, 10, intPtr(3), "Tạm được")
	assert.NoError(t, err)
	// đánh giá không chấm sao và trả lời không được tính vào điểm
	_, err = svc.CreateReview(3, 10, nil, "Chưa ăn, hỏi giá thôi")
	assert.NoError(t, err)
	_, err = svc.ReplyReview(4, r1.ID, "Cảm ơn bạn")
	assert.NoError(t, err)

	summary, err := svc.GetSummary(10)
	assert.NoError(t, err)
	assert.Equal(t, 2, summary.RatingCount)
	assert.InDelta(t, 4.0, summary.AverageRating, 0.001)

	// sửa điểm: (5 + 1) / 2
	_, err = svc.UpdateReview(r2.ID, 2, false, intPtr(1), "Ăn xong thất vọng")
	assert.NoError(t, err)
	summary, err = svc.GetSummary(10)
	assert.NoError(t, err)
	assert.InDelta(t, 3.0, summary.AverageRating, 0.001)

	// xóa đánh giá 5 sao: còn mỗi 1 sao
	assert.NoError(t, svc.DeleteReview(r1.ID, 1, false))
	summary, err = svc.GetSummary(10)
	assert.NoError(t, err)
	assert.Equal(t, 1, summary.RatingCount)
	assert.InDelta(t, 1.0, summary.AverageRating, 0.001)
}
