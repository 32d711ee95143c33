package user

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/huawsvantoan/webbanbanhngot-sub000/internal/errors"
	"github.com/huawsvantoan/webbanbanhngot-sub000/internal/service"
	"github.com/huawsvantoan/webbanbanhngot-sub000/internal/util"
	"go.uber.org/zap"
)

// AuthHandler xử lý các request đăng ký, đăng nhập, xác minh email
type AuthHandler struct {
	userService service.UserServiceInterface
}

// NewAuthHandler tạo một AuthHandler mới
func NewAuthHandler(userService service.UserServiceInterface) *AuthHandler {
	return &AuthHandler{userService}
}

// Register xử lý đăng ký tài khoản
func (h *AuthHandler) Register(c *gin.Context) {
	var registerData struct {
		Username string `json:"username" binding:"required,min=3,max=50"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&registerData); err != nil {
		util.Logger.Warn("Đăng ký thất bại, dữ liệu không hợp lệ", zap.Error(err))
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "Dữ liệu không hợp lệ", err))
		return
	}

	user, err := h.userService.Register(registerData.Username, registerData.Email, registerData.Password)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	errors.HandleCreated(c, gin.H{"user_id": user.ID}, "Đăng ký thành công, vui lòng kiểm tra email để xác minh")
}

// Login xử lý đăng nhập bằng username hoặc email
func (h *AuthHandler) Login(c *gin.Context) {
	var loginData struct {
		Account  string `json:"account" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&loginData); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "Dữ liệu không hợp lệ", err))
		return
	}

	token, user, err := h.userService.Login(loginData.Account, loginData.Password)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, gin.H{
		"token": token,
		"user":  user,
	}, "Đăng nhập thành công")
}

// AdminLogin đăng nhập trang quản trị, từ chối tài khoản thường
func (h *AuthHandler) AdminLogin(c *gin.Context) {
	var loginData struct {
		Account  string `json:"account" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&loginData); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "Dữ liệu không hợp lệ", err))
		return
	}

	token, user, err := h.userService.AdminLogin(loginData.Account, loginData.Password)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, gin.H{
		"token": token,
		"user":  user,
	}, "Đăng nhập quản trị thành công")
}

// RefreshToken cấp token mới từ token trong header Authorization
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	token := strings.TrimPrefix(authHeader, "Bearer ")
	if token == "" {
		errors.HandleError(c, errors.New(errors.ErrUnauthorized, "Thiếu token"))
		return
	}

	newToken, err := h.userService.RefreshToken(token)
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, gin.H{"token": newToken}, "Đã cấp token mới")
}

// Logout đưa token hiện tại vào danh sách đen
func (h *AuthHandler) Logout(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	token := strings.TrimPrefix(authHeader, "Bearer ")
	if token != "" {
		h.userService.Logout(token)
	}
	errors.HandleSuccess(c, nil, "Đăng xuất thành công")
}

// VerifyEmail xác minh email từ token gửi trong mail
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		errors.HandleError(c, errors.New(errors.ErrBadRequest, "Thiếu token xác minh"))
		return
	}

	if err := h.userService.VerifyEmail(token); err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, nil, "Xác minh email thành công")
}

// ForgotPassword gửi mail đặt lại mật khẩu
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "Dữ liệu không hợp lệ", err))
		return
	}

	if err := h.userService.RequestPasswordReset(req.Email); err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, nil, "Nếu email tồn tại, hướng dẫn đặt lại mật khẩu đã được gửi")
}

// ResetPassword đặt mật khẩu mới từ token trong mail
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req struct {
		Token       string `json:"token" binding:"required"`
		NewPassword string `json:"new_password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "Dữ liệu không hợp lệ", err))
		return
	}

	if err := h.userService.ResetPassword(req.Token, req.NewPassword); err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, nil, "Đặt lại mật khẩu thành công")
}
