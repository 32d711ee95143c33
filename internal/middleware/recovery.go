package middleware

import (
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/huawsvantoan/webbanbanhngot-sub000/internal/errors"
	"go.uber.org/zap"
)

// RecoveryMiddleware bắt panic và trả lỗi 500 thống nhất
func RecoveryMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				stack := string(debug.Stack())
				zap.L().Error("Panic trong xử lý request",
					zap.Any("error", r),
					zap.String("path", c.Request.URL.Path),
					zap.String("stack", stack))

				errors.HandleError(c, errors.New(errors.ErrInternal, "Lỗi hệ thống"))
				c.Abort()
			}
		}()
		c.Next()
	}
}
