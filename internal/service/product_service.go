package service

import (
	"github.com/huawsvantoan/webbanbanhngot-sub000/internal/errors"
	"github.com/huawsvantoan/webbanbanhngot-sub000/internal/model"
	"github.com/huawsvantoan/webbanbanhngot-sub000/internal/repository/interfaces"
	"github.com/huawsvantoan/webbanbanhngot-sub000/internal/util"
	"go.uber.org/zap"
)

// ProductServiceInterface để handler và test mock được tầng service
type ProductServiceInterface interface {
	CreateProduct(product *model.Product) error
	GetProduct(id int, includeDeleted bool) (*model.Product, error)
	ListProducts(filters model.ProductFilters) ([]*model.Product, int, error)
	UpdateProduct(product *model.Product) error
	DeleteProduct(id int) error
	PurgeProduct(id int) error
	CreateCategory(category *model.Category) error
	GetCategory(id int) (*model.Category, error)
	ListCategories(includeDeleted bool) ([]*model.Category, error)
	UpdateCategory(category *model.Category) error
	DeleteCategory(id int) error
}

// ProductService quản lý danh mục và sản phẩm của tiệm
type ProductService struct {
	productRepo  interfaces.ProductRepository
	categoryRepo interfaces.CategoryRepository
}

var _ ProductServiceInterface = (*ProductService)(nil)

func NewProductService(productRepo interfaces.ProductRepository, categoryRepo interfaces.CategoryRepository) *ProductService {
	return &ProductService{productRepo: productRepo, categoryRepo: categoryRepo}
}

func (s *ProductService) CreateProduct(product *model.Product) error {
	if product.Price < 0 {
		return errors.New(errors.ErrValidation, "Giá sản phẩm không được âm")
	}
	if product.Stock < 0 {
		return errors.New(errors.ErrValidation, "Tồn kho không được âm")
	}
	if product.CategoryID != nil {
		category, err := s.categoryRepo.FindByID(*product.CategoryID, false)
		if err != nil {
			return errors.Wrap(errors.ErrDatabase, "Kiểm tra danh mục thất bại", err)
		}
		if category == nil {
			return errors.New(errors.ErrResourceNotFound, "Danh mục không tồn tại")
		}
	}

	if err := s.productRepo.Create(product); err != nil {
		return errors.Wrap(errors.ErrDatabase, "Tạo sản phẩm thất bại", err)
	}
	util.Logger.Info("Tạo sản phẩm", zap.Int("product_id", product.ID), zap.String("name", product.Name))
	return nil
}

func (s *ProductService) GetProduct(id int, includeDeleted bool) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id, includeDeleted)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "Tra cứu sản phẩm thất bại", err)
	}
	if product == nil {
		return nil, errors.New(errors.ErrProductNotFound, "Không tìm thấy sản phẩm")
	}
	return product, nil
}

func (s *ProductService) ListProducts(filters model.ProductFilters) ([]*model.Product, int, error) {
	if filters.Page < 1 {
		filters.Page = 1
	}
	if filters.PageSize < 1 || filters.PageSize > 100 {
		filters.PageSize = 12
	}

	products, total, err := s.productRepo.FindAll(filters)
	if err != nil {
		return nil, 0, errors.Wrap(errors.ErrDatabase, "Lấy danh sách sản phẩm thất bại", err)
	}
	return products, total, nil
}

func (s *ProductService) UpdateProduct(product *model.Product) error {
	if product.Price < 0 {
		return errors.New(errors.ErrValidation, "Giá sản phẩm không được âm")
	}
	if product.Stock < 0 {
		return errors.New(errors.ErrValidation, "Tồn kho không được âm")
	}

	existing, err := s.GetProduct(product.ID, false)
	if err != nil {
		return err
	}
	if product.ImageURL == "" {
		product.ImageURL = existing.ImageURL
	}

	if err := s.productRepo.Update(product); err != nil {
		return errors.Wrap(errors.ErrDatabase, "Cập nhật sản phẩm thất bại", err)
	}
	return nil
}

// DeleteProduct xóa mềm: sản phẩm biến mất khỏi cửa hàng nhưng
// các đơn hàng và đánh giá cũ vẫn tham chiếu được
func (s *ProductService) DeleteProduct(id int) error {
	if _, err := s.GetProduct(id, false); err != nil {
		return err
	}
	if err := s.productRepo.SoftDelete(id); err != nil {
		return errors.Wrap(errors.ErrDatabase, "Xóa sản phẩm thất bại", err)
	}
	util.Logger.Info("Xóa mềm sản phẩm", zap.Int("product_id", id))
	return nil
}

// PurgeProduct xóa hẳn khỏi cơ sở dữ liệu, chỉ dùng cho sản phẩm đã xóa mềm
func (s *ProductService) PurgeProduct(id int) error {
	product, err := s.productRepo.FindByID(id, true)
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, "Tra cứu sản phẩm thất bại", err)
	}
	if product == nil {
		return errors.New(errors.ErrProductNotFound, "Không tìm thấy sản phẩm")
	}
	if product.DeletedAt == nil {
		return errors.New(errors.ErrResourceConflict, "Chỉ xóa vĩnh viễn được sản phẩm đã xóa mềm")
	}
	if err := s.productRepo.Purge(id); err != nil {
		return errors.Wrap(errors.ErrDatabase, "Xóa vĩnh viễn sản phẩm thất bại", err)
	}
	return nil
}

func (s *ProductService) CreateCategory(category *model.Category) error {
	if category.Name == "" {
		return errors.New(errors.ErrValidation, "Tên danh mục không được trống")
	}
	if err := s.categoryRepo.Create(category); err != nil {
		return errors.Wrap(errors.ErrDatabase, "Tạo danh mục thất bại", err)
	}
	return nil
}

func (s *ProductService) GetCategory(id int) (*model.Category, error) {
	category, err := s.categoryRepo.FindByID(id, false)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "Tra cứu danh mục thất bại", err)
	}
	if category == nil {
		return nil, errors.New(errors.ErrResourceNotFound, "Không tìm thấy danh mục")
	}
	return category, nil
}

func (s *ProductService) ListCategories(includeDeleted bool) ([]*model.Category, error) {
	categories, err := s.categoryRepo.FindAll(includeDeleted)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "Lấy danh sách danh mục thất bại", err)
	}
	return categories, nil
}

func (s *ProductService) UpdateCategory(category *model.Category) error {
	if _, err := s.GetCategory(category.ID); err != nil {
		return err
	}
	if err := s.categoryRepo.Update(category); err != nil {
		return errors.Wrap(errors.ErrDatabase, "Cập nhật danh mục thất bại", err)
	}
	return nil
}

// DeleteCategory xóa mềm danh mục, sản phẩm trong danh mục vẫn bán bình thường
func (s *ProductService) DeleteCategory(id int) error {
	if _, err := s.GetCategory(id); err != nil {
		return err
	}
	if err := s.categoryRepo.SoftDelete(id); err != nil {
		return errors.Wrap(errors.ErrDatabase, "Xóa danh mục thất bại", err)
	}
	return nil
}
