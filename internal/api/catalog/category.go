package catalog

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/huawsvantoan/webbanbanhngot-sub000/internal/errors"
	"github.com/huawsvantoan/webbanbanhngot-sub000/internal/model"
	"github.com/huawsvantoan/webbanbanhngot-sub000/internal/service"
)

// CategoryHandler xử lý các request về danh mục sản phẩm
type CategoryHandler struct {
	productService service.ProductServiceInterface
}

// NewCategoryHandler tạo một CategoryHandler mới
func NewCategoryHandler(productService service.ProductServiceInterface) *CategoryHandler {
	return &CategoryHandler{productService}
}

// ListCategories trả danh sách danh mục cho menu cửa hàng
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	includeDeleted := c.Query("include_deleted") == "true" && c.GetBool("is_admin")

	categories, err := h.productService.ListCategories(includeDeleted)
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, categories, "")
}

// GetCategory trả một danh mục
func (h *CategoryHandler) GetCategory(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errors.HandleError(c, errors.New(errors.ErrBadRequest, "ID danh mục không hợp lệ"))
		return
	}

	category, err := h.productService.GetCategory(id)
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, category, "")
}

// CreateCategory cho admin thêm danh mục mới
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "Dữ liệu không hợp lệ", err))
		return
	}

	category := &model.Category{Name: req.Name, Description: req.Description}
	if err := h.productService.CreateCategory(category); err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleCreated(c, category, "Tạo danh mục thành công")
}

// UpdateCategory cho admin sửa danh mục
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errors.HandleError(c, errors.New(errors.ErrBadRequest, "ID danh mục không hợp lệ"))
		return
	}

	var req struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "Dữ liệu không hợp lệ", err))
		return
	}

	category := &model.Category{ID: id, Name: req.Name, Description: req.Description}
	if err := h.productService.UpdateCategory(category); err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, category, "Cập nhật danh mục thành công")
}

// DeleteCategory xóa mềm danh mục
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errors.HandleError(c, errors.New(errors.ErrBadRequest, "ID danh mục không hợp lệ"))
		return
	}

	if err := h.productService.DeleteCategory(id); err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, nil, "Đã xóa danh mục")
}
