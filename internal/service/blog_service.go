package service

import (
	"strings"

	"github.com/huawsvantoan/webbanbanhngot-sub000/internal/errors"
	"github.com/huawsvantoan/webbanbanhngot-sub000/internal/model"
	"github.com/huawsvantoan/webbanbanhngot-sub000/internal/repository/interfaces"
)

// BlogServiceInterface để handler và test mock được tầng service
type BlogServiceInterface interface {
	CreatePost(post *model.BlogPost) error
	GetPost(id int, isAdmin bool) (*model.BlogPost, error)
	ListPublished(page, pageSize int) ([]*model.BlogPost, int, error)
	ListAll(page, pageSize int, includeDeleted bool) ([]*model.BlogPost, int, error)
	UpdatePost(post *model.BlogPost) error
	DeletePost(id int) error
	PurgePost(id int) error
}

// BlogService quản lý bài viết của cửa hàng
type BlogService struct {
	blogRepo interfaces.BlogRepository
}

var _ BlogServiceInterface = (*BlogService)(nil)

func NewBlogService(blogRepo interfaces.BlogRepository) *BlogService {
	return &BlogService{blogRepo: blogRepo}
}

func (s *BlogService) CreatePost(post *model.BlogPost) error {
	if strings.TrimSpace(post.Title) == "" {
		return errors.New(errors.ErrValidation, "Tiêu đề bài viết không được trống")
	}
	if post.Status == "" {
		post.Status = model.BlogDraft
	}
	if !model.IsValidBlogStatus(post.Status) {
		return errors.New(errors.ErrValidation, "Trạng thái bài viết không hợp lệ")
	}
	if err := s.blogRepo.Create(post); err != nil {
		return errors.Wrap(errors.ErrDatabase, "Tạo bài viết thất bại", err)
	}
	return nil
}

// GetPost trả bài viết; khách chỉ đọc được bài published chưa xóa
func (s *BlogService) GetPost(id int, isAdmin bool) (*model.BlogPost, error) {
	post, err := s.blogRepo.FindByID(id, isAdmin)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "Tra cứu bài viết thất bại", err)
	}
	if post == nil {
		return nil, errors.New(errors.ErrResourceNotFound, "Không tìm thấy bài viết")
	}
	if !isAdmin && (post.Status != model.BlogPublished || post.DeletedAt != nil) {
		return nil, errors.New(errors.ErrResourceNotFound, "Không tìm thấy bài viết")
	}
	return post, nil
}

func (s *BlogService) ListPublished(page, pageSize int) ([]*model.BlogPost, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 50 {
		pageSize = 10
	}
	posts, total, err := s.blogRepo.ListPublished(page, pageSize)
	if err != nil {
		return nil, 0, errors.Wrap(errors.ErrDatabase, "Lấy danh sách bài viết thất bại", err)
	}
	return posts, total, nil
}

func (s *BlogService) ListAll(page, pageSize int, includeDeleted bool) ([]*model.BlogPost, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 50 {
		pageSize = 20
	}
	posts, total, err := s.blogRepo.ListAll(page, pageSize, includeDeleted)
	if err != nil {
		return nil, 0, errors.Wrap(errors.ErrDatabase, "Lấy danh sách bài viết thất bại", err)
	}
	return posts, total, nil
}

func (s *BlogService) UpdatePost(post *model.BlogPost) error {
	if strings.TrimSpace(post.Title) == "" {
		return errors.New(errors.ErrValidation, "Tiêu đề bài viết không được trống")
	}
	if !model.IsValidBlogStatus(post.Status) {
		return errors.New(errors.ErrValidation, "Trạng thái bài viết không hợp lệ")
	}

	existing, err := s.blogRepo.FindByID(post.ID, true)
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, "Tra cứu bài viết thất bại", err)
	}
	if existing == nil {
		return errors.New(errors.ErrResourceNotFound, "Không tìm thấy bài viết")
	}
	if post.CoverURL == "" {
		post.CoverURL = existing.CoverURL
	}

	if err := s.blogRepo.Update(post); err != nil {
		return errors.Wrap(errors.ErrDatabase, "Cập nhật bài viết thất bại", err)
	}
	return nil
}

func (s *BlogService) DeletePost(id int) error {
	if _, err := s.GetPost(id, true); err != nil {
		return err
	}
	if err := s.blogRepo.SoftDelete(id); err != nil {
		return errors.Wrap(errors.ErrDatabase, "Xóa bài viết thất bại", err)
	}
	return nil
}

// PurgePost xóa hẳn bài đã xóa mềm khỏi cơ sở dữ liệu
func (s *BlogService) PurgePost(id int) error {
	post, err := s.blogRepo.FindByID(id, true)
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, "Tra cứu bài viết thất bại", err)
	}
	if post == nil {
		return errors.New(errors.ErrResourceNotFound, "Không tìm thấy bài viết")
	}
	if post.DeletedAt == nil {
		return errors.New(errors.ErrResourceConflict, "Chỉ xóa vĩnh viễn được bài đã xóa mềm")
	}
	if err := s.blogRepo.Purge(id); err != nil {
		return errors.Wrap(errors.ErrDatabase, "Xóa vĩnh viễn bài viết thất bại", err)
	}
	return nil
}
