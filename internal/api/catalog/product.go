package catalog

import (
	"fmt"
	"mime/multipart"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/huawsvantoan/webbanbanhngot-sub000/internal/errors"
	"github.com/huawsvantoan/webbanbanhngot-sub000/internal/model"
	"github.com/huawsvantoan/webbanbanhngot-sub000/internal/service"
	"github.com/huawsvantoan/webbanbanhngot-sub000/internal/storage"
	"github.com/huawsvantoan/webbanbanhngot-sub000/internal/util"
	"go.uber.org/zap"
)

// ProductHandler xử lý các request về sản phẩm
type ProductHandler struct {
	productService service.ProductServiceInterface
	uploader       storage.Uploader
}

// NewProductHandler tạo một ProductHandler mới
func NewProductHandler(productService service.ProductServiceInterface, uploader storage.Uploader) *ProductHandler {
	return &ProductHandler{productService, uploader}
}

// ListProducts trả danh sách sản phẩm có lọc theo từ khóa và danh mục.
// Chỉ admin mới xem được sản phẩm đã xóa mềm qua include_deleted=true.
func (h *ProductHandler) ListProducts(c *gin.Context) {
	filters := model.ProductFilters{
		Keyword: c.Query("keyword"),
	}
	if categoryID, err := strconv.Atoi(c.Query("category_id")); err == nil {
		filters.CategoryID = categoryID
	}
	filters.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	filters.PageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "12"))

	if c.Query("include_deleted") == "true" && c.GetBool("is_admin") {
		filters.IncludeDeleted = true
	}

	products, total, err := h.productService.ListProducts(filters)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, gin.H{
		"products":  products,
		"total":     total,
		"page":      filters.Page,
		"page_size": filters.PageSize,
	}, "")
}

// GetProduct trả chi tiết một sản phẩm
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errors.HandleError(c, errors.New(errors.ErrBadRequest, "ID sản phẩm không hợp lệ"))
		return
	}

	includeDeleted := c.Query("include_deleted") == "true" && c.GetBool("is_admin")
	product, err := h.productService.GetProduct(id, includeDeleted)
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, product, "")
}

// productForm là dữ liệu multipart khi admin tạo hoặc sửa sản phẩm
type productForm struct {
	Name        string  `form:"name" binding:"required"`
	Description string  `form:"description"`
	Price       float64 `form:"price" binding:"required,gte=0"`
	Stock       int     `form:"stock" binding:"gte=0"`
	CategoryID  *int    `form:"category_id"`
}

// CreateProduct cho admin tạo sản phẩm mới, ảnh gửi kèm multipart
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var form productForm
	if err := c.ShouldBind(&form); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "Dữ liệu không hợp lệ", err))
		return
	}

	product := &model.Product{
		Name:        form.Name,
		Description: form.Description,
		Price:       form.Price,
		Stock:       form.Stock,
		CategoryID:  form.CategoryID,
	}

	if file, err := c.FormFile("image"); err == nil {
		imageURL, err := h.uploadImage(file)
		if err != nil {
			errors.HandleError(c, err)
			return
		}
		product.ImageURL = imageURL
	}

	if err := h.productService.CreateProduct(product); err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleCreated(c, product, "Tạo sản phẩm thành công")
}

// UpdateProduct cho admin sửa sản phẩm; không gửi ảnh mới thì giữ ảnh cũ
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errors.HandleError(c, errors.New(errors.ErrBadRequest, "ID sản phẩm không hợp lệ"))
		return
	}

	var form productForm
	if err := c.ShouldBind(&form); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "Dữ liệu không hợp lệ", err))
		return
	}

	product := &model.Product{
		ID:          id,
		Name:        form.Name,
		Description: form.Description,
		Price:       form.Price,
		Stock:       form.Stock,
		CategoryID:  form.CategoryID,
	}

	if file, err := c.FormFile("image"); err == nil {
		imageURL, err := h.uploadImage(file)
		if err != nil {
			errors.HandleError(c, err)
			return
		}
		product.ImageURL = imageURL
	}

	if err := h.productService.UpdateProduct(product); err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, product, "Cập nhật sản phẩm thành công")
}

// DeleteProduct xóa mềm sản phẩm
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errors.HandleError(c, errors.New(errors.ErrBadRequest, "ID sản phẩm không hợp lệ"))
		return
	}

	if err := h.productService.DeleteProduct(id); err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, nil, "Đã xóa sản phẩm")
}

// PurgeProduct xóa vĩnh viễn sản phẩm đã xóa mềm
func (h *ProductHandler) PurgeProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errors.HandleError(c, errors.New(errors.ErrBadRequest, "ID sản phẩm không hợp lệ"))
		return
	}

	if err := h.productService.PurgeProduct(id); err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, nil, "Đã xóa vĩnh viễn sản phẩm")
}

func (h *ProductHandler) uploadImage(file *multipart.FileHeader) (string, error) {
	if !util.IsImageFilename(file.Filename) {
		return "", errors.New(errors.ErrValidation, "File phải là ảnh (jpg, png, gif, webp)")
	}
	path := fmt.Sprintf("products/%s", util.GenerateUniqueFilename(file.Filename))
	imageURL, err := h.uploader.UploadFile(file, path)
	if err != nil {
		util.Logger.Error("Lưu ảnh sản phẩm thất bại", zap.Error(err))
		return "", errors.Wrap(errors.ErrInternal, "Lưu ảnh thất bại", err)
	}
	return imageURL, nil
}
