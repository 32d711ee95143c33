package interfaces

import "github.com/huawsvantoan/webbanbanhngot-sub000/internal/model"

// ProductRepository định nghĩa các thao tác trên bảng products
type ProductRepository interface {
	Create(product *model.Product) error
	FindByID(id int, includeDeleted bool) (*model.Product, error)
	FindAll(filters model.ProductFilters) ([]*model.Product, int, error)
	Update(product *model.Product) error
	UpdateStock(id, delta int) error
	SoftDelete(id int) error
	Purge(id int) error
	TopSelling(limit int) ([]*model.Product, []int, error)
}

// CategoryRepository định nghĩa các thao tác trên bảng categories
type CategoryRepository interface {
	Create(category *model.Category) error
	FindByID(id int, includeDeleted bool) (*model.Category, error)
	FindAll(includeDeleted bool) ([]*model.Category, error)
	Update(category *model.Category) error
	SoftDelete(id int) error
	Purge(id int) error
}
