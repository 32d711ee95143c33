package interfaces

import "github.com/huawsvantoan/webbanbanhngot-sub000/internal/model"

// BannerRepository định nghĩa các thao tác trên banner trang chủ
type BannerRepository interface {
	Create(banner *model.Banner) error
	FindByID(id int) (*model.Banner, error)
	// ListActive trả banner đang bật, sắp theo position
	ListActive() ([]*model.Banner, error)
	ListAll() ([]*model.Banner, error)
	Update(banner *model.Banner) error
	Delete(id int) error
}
