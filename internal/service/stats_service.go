package service

import (
	"github.com/huawsvantoan/webbanbanhngot-sub000/internal/errors"
	"github.com/huawsvantoan/webbanbanhngot-sub000/internal/model"
	"github.com/huawsvantoan/webbanbanhngot-sub000/internal/repository/interfaces"
)

// TopProduct là một sản phẩm bán chạy kèm tổng số lượng đã bán
type TopProduct struct {
	Product *model.Product `json:"product"`
	SoldQty int            `json:"sold_qty"`
}

// Dashboard là số liệu tổng quan cho trang quản trị
type Dashboard struct {
	TotalUsers     int            `json:"total_users"`
	TotalProducts  int            `json:"total_products"`
	TotalOrders    int            `json:"total_orders"`
	OrdersByStatus map[string]int `json:"orders_by_status"`
	Revenue        float64        `json:"revenue"`
	RecentOrders   []*model.Order `json:"recent_orders"`
	TopProducts    []*TopProduct  `json:"top_products"`
}

// StatsServiceInterface để handler và test mock được tầng service
type StatsServiceInterface interface {
	GetDashboard() (*Dashboard, error)
}

// StatsService tổng hợp số liệu bán hàng cho admin
type StatsService struct {
	userRepo    interfaces.UserRepository
	productRepo interfaces.ProductRepository
	orderRepo   interfaces.OrderRepository
}

var _ StatsServiceInterface = (*StatsService)(nil)

func NewStatsService(
	userRepo interfaces.UserRepository,
	productRepo interfaces.ProductRepository,
	orderRepo interfaces.OrderRepository,
) *StatsService {
	return &StatsService{userRepo: userRepo, productRepo: productRepo, orderRepo: orderRepo}
}

// GetDashboard gom số liệu tổng quan. Doanh thu chỉ tính các đơn
// đã giao thành công (delivered hoặc completed).
func (s *StatsService) GetDashboard() (*Dashboard, error) {
	dashboard := &Dashboard{}

	totalUsers, err := s.userRepo.Count()
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "Đếm người dùng thất bại", err)
	}
	dashboard.TotalUsers = totalUsers

	_, totalProducts, err := s.productRepo.FindAll(model.ProductFilters{Page: 1, PageSize: 1})
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "Đếm sản phẩm thất bại", err)
	}
	dashboard.TotalProducts = totalProducts

	byStatus, err := s.orderRepo.CountByStatus()
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "Đếm đơn hàng thất bại", err)
	}
	dashboard.OrdersByStatus = byStatus
	for _, n := range byStatus {
		dashboard.TotalOrders += n
	}

	revenue, err := s.orderRepo.Revenue()
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "Tính doanh thu thất bại", err)
	}
	dashboard.Revenue = revenue

	recent, err := s.orderRepo.Recent(5)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "Lấy đơn hàng gần đây thất bại", err)
	}
	dashboard.RecentOrders = recent

	products, quantities, err := s.productRepo.TopSelling(5)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "Lấy sản phẩm bán chạy thất bại", err)
	}
	for i, p := range products {
		dashboard.TopProducts = append(dashboard.TopProducts, &TopProduct{Product: p, SoldQty: quantities[i]})
	}

	return dashboard, nil
}
