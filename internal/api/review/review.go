package review

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/huawsvantoan/webbanbanhngot-sub000/internal/errors"
	"github.com/huawsvantoan/webbanbanhngot-sub000/internal/service"
)

// ReviewHandler xử lý đánh giá sản phẩm và trả lời
type ReviewHandler struct {
	reviewService service.ReviewServiceInterface
}

// NewReviewHandler tạo một ReviewHandler mới
func NewReviewHandler(reviewService service.ReviewServiceInterface) *ReviewHandler {
	return &ReviewHandler{reviewService}
}

// ListByProduct trả đánh giá của sản phẩm kèm trả lời, ai cũng xem được
func (h *ReviewHandler) ListByProduct(c *gin.Context) {
	productID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errors.HandleError(c, errors.New(errors.ErrBadRequest, "ID sản phẩm không hợp lệ"))
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	reviews, total, err := h.reviewService.ListByProduct(productID, page, pageSize)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	summary, err := h.reviewService.GetSummary(productID)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, gin.H{
		"reviews": reviews,
		"total":   total,
		"summary": summary,
	}, "")
}

// CreateReview tạo đánh giá gốc cho sản phẩm
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	userID := c.GetInt("user_id")

	productID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errors.HandleError(c, errors.New(errors.ErrBadRequest, "ID sản phẩm không hợp lệ"))
		return
	}

	var req struct {
		Rating  *int   `json:"rating" binding:"omitempty,min=1,max=5"`
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "Dữ liệu không hợp lệ", err))
		return
	}

	review, err := h.reviewService.CreateReview(userID, productID, req.Rating, req.Content)
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleCreated(c, review, "Cảm ơn bạn đã đánh giá")
}

// ReplyReview trả lời một đánh giá gốc
func (h *ReviewHandler) ReplyReview(c *gin.Context) {
	userID := c.GetInt("user_id")

	parentID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errors.HandleError(c, errors.New(errors.ErrBadRequest, "ID đánh giá không hợp lệ"))
		return
	}

	var req struct {
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "Dữ liệu không hợp lệ", err))
		return
	}

	reply, err := h.reviewService.ReplyReview(userID, parentID, req.Content)
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleCreated(c, reply, "Đã gửi trả lời")
}

// UpdateReview sửa đánh giá; admin sửa được của người khác
func (h *ReviewHandler) UpdateReview(c *gin.Context) {
	userID := c.GetInt("user_id")

	reviewID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errors.HandleError(c, errors.New(errors.ErrBadRequest, "ID đánh giá không hợp lệ"))
		return
	}

	var req struct {
		Rating  *int   `json:"rating" binding:"omitempty,min=1,max=5"`
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "Dữ liệu không hợp lệ", err))
		return
	}

	review, err := h.reviewService.UpdateReview(reviewID, userID, c.GetBool("is_admin"), req.Rating, req.Content)
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, review, "Đã cập nhật đánh giá")
}

// DeleteReview xóa đánh giá; admin xóa được của người khác
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	userID := c.GetInt("user_id")

	reviewID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errors.HandleError(c, errors.New(errors.ErrBadRequest, "ID đánh giá không hợp lệ"))
		return
	}

	if err := h.reviewService.DeleteReview(reviewID, userID, c.GetBool("is_admin")); err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, nil, "Đã xóa đánh giá")
}
