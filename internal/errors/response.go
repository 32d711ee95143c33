package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse là cấu trúc phản hồi lỗi
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Error   string    `json:"error,omitempty"`
}

// SuccessResponse là cấu trúc phản hồi thành công
type SuccessResponse struct {
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// Ánh xạ mã lỗi sang HTTP status
var errorStatusMap = map[ErrorCode]int{
	ErrInternal: http.StatusInternalServerError,
	ErrDatabase: http.StatusInternalServerError,
	ErrTimeout:  http.StatusRequestTimeout,

	ErrUnauthorized:       http.StatusUnauthorized,
	ErrForbidden:          http.StatusForbidden,
	ErrInvalidToken:       http.StatusUnauthorized,
	ErrTokenExpired:       http.StatusUnauthorized,
	ErrInvalidCredentials: http.StatusUnauthorized,

	ErrBadRequest:       http.StatusBadRequest,
	ErrValidation:       http.StatusBadRequest,
	ErrResourceNotFound: http.StatusNotFound,
	ErrResourceExists:   http.StatusConflict,
	ErrResourceConflict: http.StatusConflict,

	ErrUserNotFound:      http.StatusNotFound,
	ErrUserExists:        http.StatusConflict,
	ErrWeakPassword:      http.StatusBadRequest,
	ErrProductNotFound:   http.StatusNotFound,
	ErrOutOfStock:        http.StatusBadRequest,
	ErrCartEmpty:         http.StatusBadRequest,
	ErrOrderNotFound:     http.StatusNotFound,
	ErrInvalidTransition: http.StatusBadRequest,
	ErrPaymentFailed:     http.StatusBadGateway,
	ErrInvalidSignature:  http.StatusBadRequest,
}

// HandleError trả phản hồi lỗi thống nhất
func HandleError(c *gin.Context, err error) {
	if appErr, ok := err.(*AppError); ok {
		status := errorStatusMap[appErr.Code]
		if status == 0 {
			status = http.StatusInternalServerError
		}

		resp := ErrorResponse{
			Code:    appErr.Code,
			Message: appErr.Message,
		}

		if appErr.Err != nil {
			resp.Error = appErr.Err.Error()
		}

		_ = c.Error(appErr)
		c.JSON(status, resp)
		return
	}

	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Code:    ErrInternal,
		Message: "Đã xảy ra lỗi, vui lòng thử lại sau",
		Error:   err.Error(),
	})
}

// HandleSuccess trả phản hồi thành công thống nhất
func HandleSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, SuccessResponse{
		Code:    http.StatusOK,
		Message: message,
		Data:    data,
	})
}

// HandleCreated dùng cho các thao tác tạo mới
func HandleCreated(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusCreated, SuccessResponse{
		Code:    http.StatusCreated,
		Message: message,
		Data:    data,
	})
}
