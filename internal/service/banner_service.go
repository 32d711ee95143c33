package service

import (
	"github.com/huawsvantoan/webbanbanhngot-sub000/internal/errors"
	"github.com/huawsvantoan/webbanbanhngot-sub000/internal/model"
	"github.com/huawsvantoan/webbanbanhngot-sub000/internal/repository/interfaces"
)

// BannerServiceInterface để handler và test mock được tầng service
type BannerServiceInterface interface {
	CreateBanner(banner *model.Banner) error
	GetBanner(id int) (*model.Banner, error)
	ListActiveBanners() ([]*model.Banner, error)
	ListAllBanners() ([]*model.Banner, error)
	UpdateBanner(banner *model.Banner) error
	DeleteBanner(id int) error
}

// BannerService quản lý banner trang chủ
type BannerService struct {
	bannerRepo interfaces.BannerRepository
}

var _ BannerServiceInterface = (*BannerService)(nil)

func NewBannerService(bannerRepo interfaces.BannerRepository) *BannerService {
	return &BannerService{bannerRepo: bannerRepo}
}

func (s *BannerService) CreateBanner(banner *model.Banner) error {
	if banner.ImageURL == "" {
		return errors.New(errors.ErrValidation, "Banner phải có ảnh")
	}
	if err := s.bannerRepo.Create(banner); err != nil {
		return errors.Wrap(errors.ErrDatabase, "Tạo banner thất bại", err)
	}
	return nil
}

func (s *BannerService) GetBanner(id int) (*model.Banner, error) {
	banner, err := s.bannerRepo.FindByID(id)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "Tra cứu banner thất bại", err)
	}
	if banner == nil {
		return nil, errors.New(errors.ErrResourceNotFound, "Không tìm thấy banner")
	}
	return banner, nil
}

// ListActiveBanners cho trang chủ, chỉ trả banner đang bật
func (s *BannerService) ListActiveBanners() ([]*model.Banner, error) {
	banners, err := s.bannerRepo.ListActive()
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "Lấy danh sách banner thất bại", err)
	}
	return banners, nil
}

func (s *BannerService) ListAllBanners() ([]*model.Banner, error) {
	banners, err := s.bannerRepo.ListAll()
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "Lấy danh sách banner thất bại", err)
	}
	return banners, nil
}

func (s *BannerService) UpdateBanner(banner *model.Banner) error {
	if _, err := s.GetBanner(banner.ID); err != nil {
		return err
	}
	if err := s.bannerRepo.Update(banner); err != nil {
		return errors.Wrap(errors.ErrDatabase, "Cập nhật banner thất bại", err)
	}
	return nil
}

func (s *BannerService) DeleteBanner(id int) error {
	if _, err := s.GetBanner(id); err != nil {
		return err
	}
	if err := s.bannerRepo.Delete(id); err != nil {
		return errors.Wrap(errors.ErrDatabase, "Xóa banner thất bại", err)
	}
	return nil
}
