package admin

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/huawsvantoan/webbanbanhngot-sub000/internal/errors"
	"github.com/huawsvantoan/webbanbanhngot-sub000/internal/model"
	"github.com/huawsvantoan/webbanbanhngot-sub000/internal/service"
	"github.com/huawsvantoan/webbanbanhngot-sub000/internal/storage"
	"github.com/huawsvantoan/webbanbanhngot-sub000/internal/util"
)

// BannerHandler quản lý banner trang chủ
type BannerHandler struct {
	bannerService service.BannerServiceInterface
	uploader      storage.Uploader
}

// NewBannerHandler tạo một BannerHandler mới
func NewBannerHandler(bannerService service.BannerServiceInterface, uploader storage.Uploader) *BannerHandler {
	return &BannerHandler{bannerService, uploader}
}

// ListActiveBanners cho trang chủ, không cần đăng nhập
func (h *BannerHandler) ListActiveBanners(c *gin.Context) {
	banners, err := h.bannerService.ListActiveBanners()
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, banners, "")
}

// ListAllBanners cho trang quản trị, gồm cả banner đang tắt
func (h *BannerHandler) ListAllBanners(c *gin.Context) {
	banners, err := h.bannerService.ListAllBanners()
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, banners, "")
}

type bannerForm struct {
	Title    string `form:"title"`
	Position int    `form:"position"`
	IsActive bool   `form:"is_active"`
}

// CreateBanner tạo banner mới, ảnh bắt buộc
func (h *BannerHandler) CreateBanner(c *gin.Context) {
	var form bannerForm
	if err := c.ShouldBind(&form); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "Dữ liệu không hợp lệ", err))
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		errors.HandleError(c, errors.New(errors.ErrBadRequest, "Banner phải có ảnh"))
		return
	}
	if !util.IsImageFilename(file.Filename) {
		errors.HandleError(c, errors.New(errors.ErrValidation, "File phải là ảnh (jpg, png, gif, webp)"))
		return
	}

	path := fmt.Sprintf("banners/%s", util.GenerateUniqueFilename(file.Filename))
	imageURL, err := h.uploader.UploadFile(file, path)
	if err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrInternal, "Lưu ảnh thất bại", err))
		return
	}

	banner := &model.Banner{
		Title:    form.Title,
		ImageURL: imageURL,
		Position: form.Position,
		IsActive: form.IsActive,
	}
	if err := h.bannerService.CreateBanner(banner); err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleCreated(c, banner, "Tạo banner thành công")
}

// UpdateBanner sửa banner; không gửi ảnh mới thì giữ ảnh cũ
func (h *BannerHandler) UpdateBanner(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errors.HandleError(c, errors.New(errors.ErrBadRequest, "ID banner không hợp lệ"))
		return
	}

	banner, err := h.bannerService.GetBanner(id)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	var form bannerForm
	if err := c.ShouldBind(&form); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "Dữ liệu không hợp lệ", err))
		return
	}
	banner.Title = form.Title
	banner.Position = form.Position
	banner.IsActive = form.IsActive

	if file, err := c.FormFile("image"); err == nil {
		if !util.IsImageFilename(file.Filename) {
			errors.HandleError(c, errors.New(errors.ErrValidation, "File phải là ảnh (jpg, png, gif, webp)"))
			return
		}
		path := fmt.Sprintf("banners/%s", util.GenerateUniqueFilename(file.Filename))
		imageURL, err := h.uploader.UploadFile(file, path)
		if err != nil {
			errors.HandleError(c, errors.Wrap(errors.ErrInternal, "Lưu ảnh thất bại", err))
			return
		}
		banner.ImageURL = imageURL
	}

	if err := h.bannerService.UpdateBanner(banner); err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, banner, "Cập nhật banner thành công")
}

// DeleteBanner xóa hẳn banner
func (h *BannerHandler) DeleteBanner(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errors.HandleError(c, errors.New(errors.ErrBadRequest, "ID banner không hợp lệ"))
		return
	}

	if err := h.bannerService.DeleteBanner(id); err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, nil, "Đã xóa banner")
}
