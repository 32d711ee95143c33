package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/huawsvantoan/webbanbanhngot-sub000/internal/errors"
	"github.com/huawsvantoan/webbanbanhngot-sub000/internal/model"
	"github.com/huawsvantoan/webbanbanhngot-sub000/internal/service"
	"github.com/huawsvantoan/webbanbanhngot-sub000/internal/util"
	"go.uber.org/zap"
)

// AdminMiddleware chỉ cho phép tài khoản admin đi tiếp.
// Phải đứng sau AuthMiddleware.
func AdminMiddleware(userService *service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("user_id")
		if !exists {
			errors.HandleError(c, errors.New(errors.ErrUnauthorized, "Vui lòng đăng nhập"))
			c.Abort()
			return
		}

		user, err := userService.GetUserByID(userID.(int))
		if err != nil || user == nil || user.Role != model.RoleAdmin {
			util.Logger.Warn("Truy cập trang quản trị bị từ chối",
				zap.Int("user_id", userID.(int)))
			errors.HandleError(c, errors.New(errors.ErrForbidden, "Cần quyền quản trị viên"))
			c.Abort()
			return
		}

		c.Set("is_admin", true)
		c.Next()
	}
}
