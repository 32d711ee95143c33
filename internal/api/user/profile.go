package user

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/huawsvantoan/webbanbanhngot-sub000/internal/errors"
	"github.com/huawsvantoan/webbanbanhngot-sub000/internal/service"
	"github.com/huawsvantoan/webbanbanhngot-sub000/internal/storage"
	"github.com/huawsvantoan/webbanbanhngot-sub000/internal/util"
	"go.uber.org/zap"
)

// ProfileHandler xử lý hồ sơ cá nhân của người dùng đã đăng nhập
type ProfileHandler struct {
	userService service.UserServiceInterface
	uploader    storage.Uploader
}

// NewProfileHandler tạo một ProfileHandler mới
func NewProfileHandler(userService service.UserServiceInterface, uploader storage.Uploader) *ProfileHandler {
	return &ProfileHandler{userService, uploader}
}

// GetProfile trả hồ sơ của người dùng hiện tại
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID := c.GetInt("user_id")

	user, err := h.userService.GetUserByID(userID)
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, user, "")
}

// UpdateProfile cập nhật tên, địa chỉ và số điện thoại giao hàng mặc định
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID := c.GetInt("user_id")

	var req struct {
		FullName string `json:"full_name" binding:"required"`
		Address  string `json:"address"`
		Phone    string `json:"phone" binding:"omitempty,vn_phone"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "Dữ liệu không hợp lệ", err))
		return
	}

	user, err := h.userService.UpdateProfile(userID, req.FullName, req.Address, req.Phone)
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, user, "Cập nhật hồ sơ thành công")
}

// ChangePassword đổi mật khẩu, yêu cầu mật khẩu hiện tại
func (h *ProfileHandler) ChangePassword(c *gin.Context) {
	userID := c.GetInt("user_id")

	var req struct {
		OldPassword string `json:"old_password" binding:"required"`
		NewPassword string `json:"new_password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "Dữ liệu không hợp lệ", err))
		return
	}

	if err := h.userService.ChangePassword(userID, req.OldPassword, req.NewPassword); err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, nil, "Đổi mật khẩu thành công")
}

// UploadAvatar nhận file ảnh đại diện và lưu qua tầng storage
func (h *ProfileHandler) UploadAvatar(c *gin.Context) {
	userID := c.GetInt("user_id")

	file, err := c.FormFile("avatar")
	if err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrBadRequest, "Thiếu file ảnh đại diện", err))
		return
	}
	if !util.IsImageFilename(file.Filename) {
		errors.HandleError(c, errors.New(errors.ErrValidation, "File phải là ảnh (jpg, png, gif, webp)"))
		return
	}

	path := fmt.Sprintf("avatars/%d/%s", userID, util.GenerateUniqueFilename(file.Filename))
	avatarURL, err := h.uploader.UploadFile(file, path)
	if err != nil {
		util.Logger.Error("Lưu ảnh đại diện thất bại", zap.Error(err), zap.Int("user_id", userID))
		errors.HandleError(c, errors.Wrap(errors.ErrInternal, "Lưu ảnh thất bại", err))
		return
	}

	if err := h.userService.UpdateAvatar(userID, avatarURL); err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, gin.H{"avatar_url": avatarURL}, "Cập nhật ảnh đại diện thành công")
}

// DeleteAccount xóa mềm tài khoản của chính người dùng
func (h *ProfileHandler) DeleteAccount(c *gin.Context) {
	userID := c.GetInt("user_id")

	if err := h.userService.DeleteAccount(userID); err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, nil, "Tài khoản đã được xóa")
}
