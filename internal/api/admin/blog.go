package admin

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
)

// BlogHandler quản lý bài viết; đọc công khai, ghi chỉ admin
type BlogHandler struct {
	blogService service.BlogServiceInterface
	uploader    storage.Uploader
}

// NewBlogHandler tạo một BlogHandler mới
func NewBlogHandler(blogService service.BlogServiceInterface, uploader storage.Uploader) *BlogHandler {
	return &BlogHandler{blogService, uploader}
}

// ListPublished trả bài viết công khai cho trang blog
func (h *BlogHandler) ListPublished(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	posts, total, err := h.blogService.ListPublished(page, pageSize)
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, gin.H{"posts": posts, "total": total}, "")
}

// GetPost trả một bài viết; khách chỉ đọc được bài published
func (h *BlogHandler) GetPost(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errors.HandleError(c, errors.New(errors.ErrBadRequest, "ID bài viết không hợp lệ"))
		return
	}

	post, err := h.blogService.GetPost(id, c.GetBool("is_admin"))
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, post, "")
}

// ListAll cho trang quản trị, gồm cả bản nháp và bài đã xóa mềm
func (h *BlogHandler) ListAll(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	includeDeleted := c.Query("include_deleted") == "true"

	posts, total, err := h.blogService.ListAll(page, pageSize, includeDeleted)
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, gin.H{"posts": posts, "total": total}, "")
}

type blogForm struct {
	Title   string `form:"title" binding:"required"`
	Content string `form:"content"`
	Status  string `form:"status"`
}

// CreatePost tạo bài viết mới, ảnh bìa tùy chọn
func (h *BlogHandler) CreatePost(c *gin.Context) {
	var form blogForm
	if err := c.ShouldBind(&form); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "Dữ liệu không hợp lệ", err))
		return
	}

	post := &model.BlogPost{
		AuthorID: c.GetInt("user_id"),
		Title:    form.Title,
		Content:  form.Content,
		Status:   form.Status,
	}

	if file, err := c.FormFile("cover"); err == nil {
		coverURL, err := h.uploadCover(file)
		if err != nil {
			errors.HandleError(c, err)
			return
		}
		post.CoverURL = coverURL
	}

	if err := h.blogService.CreatePost(post); err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleCreated(c, post, "Tạo bài viết thành công")
}

// UpdatePost sửa bài viết; không gửi ảnh bìa mới thì giữ ảnh cũ
func (h *BlogHandler) UpdatePost(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errors.HandleError(c, errors.New(errors.ErrBadRequest, "ID bài viết không hợp lệ"))
		return
	}

	var form blogForm
	if err := c.ShouldBind(&form); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "Dữ liệu không hợp lệ", err))
		return
	}

	post := &model.BlogPost{
		ID:      id,
		Title:   form.Title,
		Content: form.Content,
		Status:  form.Status,
	}
	if post.Status == "" {
		post.Status = model.BlogDraft
	}

	if file, err := c.FormFile("cover"); err == nil {
		coverURL, err := h.uploadCover(file)
		if err != nil {
			errors.HandleError(c, err)
			return
		}
		post.CoverURL = coverURL
	}

	if err := h.blogService.UpdatePost(post); err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, post, "Cập nhật bài viết thành công")
}

// DeletePost xóa mềm bài viết
func (h *BlogHandler) DeletePost(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errors.HandleError(c, errors.New(errors.ErrBadRequest, "ID bài viết không hợp lệ"))
		return
	}

	if err := h.blogService.DeletePost(id); err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, nil, "Đã xóa bài viết")
}

// PurgePost xóa vĩnh viễn bài đã xóa mềm
func (h *BlogHandler) PurgePost(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errors.HandleError(c, errors.New(errors.ErrBadRequest, "ID bài viết không hợp lệ"))
		return
	}

	if err := h.blogService.PurgePost(id); err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, nil, "Đã xóa vĩnh viễn bài viết")
}

func (h *BlogHandler) uploadCover(file *multipart.FileHeader) (string, error) {
	if !util.IsImageFilename(file.Filename) {
		return "", errors.New(errors.ErrValidation, "File phải là ảnh (jpg, png, gif, webp)")
	}
	path := fmt.Sprintf("blog/%s", util.GenerateUniqueFilename(file.Filename))
	coverURL, err := h.uploader.UploadFile(file, path)
	if err != nil {
		return "", errors.Wrap(errors.ErrInternal, "Lưu ảnh thất bại", err)
	}
	return coverURL, nil
}
