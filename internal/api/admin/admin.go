package admin

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/huawsvantoan/webbanbanhngot-sub000/internal/errors"
	"github.com/huawsvantoan/webbanbanhngot-sub000/internal/model"
	"github.com/huawsvantoan/webbanbanhngot-sub000/internal/service"
)

// AdminHandler gom các request quản trị: người dùng, đơn hàng, thống kê
type AdminHandler struct {
	userService  service.UserServiceInterface
	orderService service.OrderServiceInterface
	statsService service.StatsServiceInterface
}

// NewAdminHandler tạo một AdminHandler mới
func NewAdminHandler(
	userService service.UserServiceInterface,
	orderService service.OrderServiceInterface,
	statsService service.StatsServiceInterface,
) *AdminHandler {
	return &AdminHandler{userService, orderService, statsService}
}

// GetDashboard trả số liệu tổng quan cho trang quản trị
func (h *AdminHandler) GetDashboard(c *gin.Context) {
	dashboard, err := h.statsService.GetDashboard()
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, dashboard, "")
}

// ListUsers trả danh sách người dùng phân trang
func (h *AdminHandler) ListUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	includeDeleted := c.Query("include_deleted") == "true"

	users, total, err := h.userService.GetUsers(page, pageSize, includeDeleted)
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, gin.H{"users": users, "total": total}, "")
}

// UpdateUserRole đổi vai trò một người dùng
func (h *AdminHandler) UpdateUserRole(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errors.HandleError(c, errors.New(errors.ErrBadRequest, "ID người dùng không hợp lệ"))
		return
	}

	var req struct {
		Role string `json:"role" binding:"required,oneof=user admin"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "Dữ liệu không hợp lệ", err))
		return
	}

	if err := h.userService.UpdateUserRole(id, req.Role); err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, nil, "Đã cập nhật vai trò")
}

// DeleteUser xóa mềm một tài khoản
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errors.HandleError(c, errors.New(errors.ErrBadRequest, "ID người dùng không hợp lệ"))
		return
	}

	if err := h.userService.DeleteAccount(id); err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, nil, "Đã xóa tài khoản")
}

// PurgeUser xóa vĩnh viễn tài khoản đã xóa mềm
func (h *AdminHandler) PurgeUser(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errors.HandleError(c, errors.New(errors.ErrBadRequest, "ID người dùng không hợp lệ"))
		return
	}

	if err := h.userService.PurgeUser(id); err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, nil, "Đã xóa vĩnh viễn tài khoản")
}

// ListOrders trả danh sách đơn hàng có lọc theo trạng thái
func (h *AdminHandler) ListOrders(c *gin.Context) {
	filters := model.OrderFilters{Status: c.Query("status")}
	filters.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	filters.PageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "20"))

	orders, total, err := h.orderService.ListOrders(filters)
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, gin.H{"orders": orders, "total": total}, "")
}

// GetOrder trả chi tiết một đơn bất kỳ
func (h *AdminHandler) GetOrder(c *gin.Context) {
	orderID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errors.HandleError(c, errors.New(errors.ErrBadRequest, "ID đơn hàng không hợp lệ"))
		return
	}

	order, err := h.orderService.GetOrder(orderID, 0, true)
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, order, "")
}

// UpdateOrderStatus chuyển trạng thái đơn theo quy trình xử lý
func (h *AdminHandler) UpdateOrderStatus(c *gin.Context) {
	orderID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errors.HandleError(c, errors.New(errors.ErrBadRequest, "ID đơn hàng không hợp lệ"))
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
		Note   string `json:"note"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "Dữ liệu không hợp lệ", err))
		return
	}

	order, err := h.orderService.UpdateStatus(orderID, req.Status, req.Note)
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, order, "Đã cập nhật trạng thái đơn")
}
