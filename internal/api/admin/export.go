package admin

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/huawsvantoan/webbanbanhngot-sub000/internal/errors"
	"github.com/huawsvantoan/webbanbanhngot-sub000/internal/model"
	"github.com/huawsvantoan/webbanbanhngot-sub000/internal/service"
	"github.com/huawsvantoan/webbanbanhngot-sub000/internal/util"
	"github.com/tealeg/xlsx"
	"go.uber.org/zap"
)

// ExportHandler xuất dữ liệu quản trị ra file Excel
type ExportHandler struct {
	productService service.ProductServiceInterface
	orderService   service.OrderServiceInterface
}

// NewExportHandler tạo một ExportHandler mới
func NewExportHandler(productService service.ProductServiceInterface, orderService service.OrderServiceInterface) *ExportHandler {
	return &ExportHandler{productService, orderService}
}

// ExportProducts xuất toàn bộ sản phẩm (kể cả đã xóa mềm) ra xlsx
func (h *ExportHandler) ExportProducts(c *gin.Context) {
	var products []*model.Product
	for page := 1; ; page++ {
		batch, total, err := h.productService.ListProducts(model.ProductFilters{
			IncludeDeleted: true,
			Page:           page,
			PageSize:       100,
		})
		if err != nil {
			errors.HandleError(c, err)
			return
		}
		products = append(products, batch...)
		if len(products) >= total || len(batch) == 0 {
			break
		}
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("San pham")
	if err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrInternal, "Tạo file Excel thất bại", err))
		return
	}

	header := sheet.AddRow()
	for _, title := range []string{"ID", "Tên", "Giá", "Tồn kho", "Danh mục", "Đã xóa"} {
		header.AddCell().Value = title
	}
	for _, p := range products {
		row := sheet.AddRow()
		row.AddCell().SetInt(p.ID)
		row.AddCell().Value = p.Name
		row.AddCell().SetFloat(p.Price)
		row.AddCell().SetInt(p.Stock)
		if p.Category != nil {
			row.AddCell().Value = p.Category.Name
		} else {
			row.AddCell().Value = ""
		}
		if p.DeletedAt != nil {
			row.AddCell().Value = "x"
		} else {
			row.AddCell().Value = ""
		}
	}

	h.writeXLSX(c, file, fmt.Sprintf("san-pham-%s.xlsx", time.Now().Format("2006-01-02")))
}

// ExportOrders xuất đơn hàng theo bộ lọc trạng thái ra xlsx
func (h *ExportHandler) ExportOrders(c *gin.Context) {
	var orders []*model.Order
	for page := 1; ; page++ {
		batch, total, err := h.orderService.ListOrders(model.OrderFilters{
			Status:   c.Query("status"),
			Page:     page,
			PageSize: 100,
		})
		if err != nil {
			errors.HandleError(c, err)
			return
		}
		orders = append(orders, batch...)
		if len(orders) >= total || len(batch) == 0 {
			break
		}
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Don hang")
	if err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrInternal, "Tạo file Excel thất bại", err))
		return
	}

	header := sheet.AddRow()
	for _, title := range []string{"Mã đơn", "Người nhận", "SĐT", "Tổng tiền", "Thanh toán", "Trạng thái", "Ngày đặt"} {
		header.AddCell().Value = title
	}
	for _, o := range orders {
		row := sheet.AddRow()
		row.AddCell().Value = o.OrderCode
		row.AddCell().Value = o.RecipientName
		row.AddCell().Value = o.Phone
		row.AddCell().SetFloat(o.TotalAmount)
		row.AddCell().Value = fmt.Sprintf("%s/%s", o.PaymentMethod, o.PaymentStatus)
		row.AddCell().Value = o.Status
		row.AddCell().Value = o.CreatedAt.Format("02/01/2006 15:04")
	}

	h.writeXLSX(c, file, fmt.Sprintf("don-hang-%s.xlsx", time.Now().Format("2006-01-02")))
}

func (h *ExportHandler) writeXLSX(c *gin.Context, file *xlsx.File, filename string) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := file.Write(c.Writer); err != nil {
		util.Logger.Error("Ghi file Excel thất bại", zap.Error(err))
	}
}
