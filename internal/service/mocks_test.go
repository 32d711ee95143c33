package service

import (
	"os"
	"testing"

	"github.com/huawsvantoan/webbanbanhngot-sub000/internal/model"
	"github.com/huawsvantoan/webbanbanhngot-sub000/internal/repository/interfaces"
	"github.com/huawsvantoan/webbanbanhngot-sub000/internal/util"
	"github.com/stretchr/testify/mock"
)

func TestMain(m *testing.M) {
	util.InitLogger("error")
	os.Exit(m.Run())
}

// MockUserRepository giả lập UserRepository cho test
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *model.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(id int) (*model.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(email string) (*model.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(username string) (*model.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) Update(user *model.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdatePassword(id int, passwordHash string) error {
	args := m.Called(id, passwordHash)
	return args.Error(0)
}

func (m *MockUserRepository) SoftDelete(id int) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockUserRepository) Purge(id int) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockUserRepository) Count() (int, error) {
	args := m.Called()
	return args.Int(0), args.Error(1)
}

func (m *MockUserRepository) FindAll(page, pageSize int, includeDeleted bool) ([]*model.User, int, error) {
	args := m.Called(page, pageSize, includeDeleted)
	return args.Get(0).([]*model.User), args.Int(1), args.Error(2)
}

var _ interfaces.UserRepository = (*MockUserRepository)(nil)

// MockProductRepository giả lập ProductRepository cho test
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Create(product *model.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductRepository) FindByID(id int, includeDeleted bool) (*model.Product, error) {
	args := m.Called(id, includeDeleted)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(filters model.ProductFilters) ([]*model.Product, int, error) {
	args := m.Called(filters)
	return args.Get(0).([]*model.Product), args.Int(1), args.Error(2)
}

func (m *MockProductRepository) Update(product *model.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductRepository) UpdateStock(id, delta int) error {
	args := m.Called(id, delta)
	return args.Error(0)
}

func (m *MockProductRepository) SoftDelete(id int) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockProductRepository) Purge(id int) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockProductRepository) TopSelling(limit int) ([]*model.Product, []int, error) {
	args := m.Called(limit)
	return args.Get(0).([]*model.Product), args.Get(1).([]int), args.Error(2)
}

var _ interfaces.ProductRepository = (*MockProductRepository)(nil)

// MockCategoryRepository giả lập CategoryRepository cho test
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) Create(category *model.Category) error {
	args := m.Called(category)
	return args.Error(0)
}

func (m *MockCategoryRepository) FindByID(id int, includeDeleted bool) (*model.Category, error) {
	args := m.Called(id, includeDeleted)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindAll(includeDeleted bool) ([]*model.Category, error) {
	args := m.Called(includeDeleted)
	return args.Get(0).([]*model.Category), args.Error(1)
}

func (m *MockCategoryRepository) Update(category *model.Category) error {
	args := m.Called(category)
	return args.Error(0)
}

func (m *MockCategoryRepository) SoftDelete(id int) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockCategoryRepository) Purge(id int) error {
	args := m.Called(id)
	return args.Error(0)
}

var _ interfaces.CategoryRepository = (*MockCategoryRepository)(nil)

// MockCartRepository giả lập CartRepository cho test
type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) ListByUser(userID int) ([]*model.CartItem, error) {
	args := m.Called(userID)
	return args.Get(0).([]*model.CartItem), args.Error(1)
}

func (m *MockCartRepository) FindLine(userID, productID int) (*model.CartItem, error) {
	args := m.Called(userID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CartItem), args.Error(1)
}

func (m *MockCartRepository) Insert(item *model.CartItem) error {
	args := m.Called(item)
	return args.Error(0)
}

func (m *MockCartRepository) UpdateQuantity(userID, productID, quantity int) error {
	args := m.Called(userID, productID, quantity)
	return args.Error(0)
}

func (m *MockCartRepository) Remove(userID, productID int) error {
	args := m.Called(userID, productID)
	return args.Error(0)
}

func (m *MockCartRepository) Clear(userID int) error {
	args := m.Called(userID)
	return args.Error(0)
}

var _ interfaces.CartRepository = (*MockCartRepository)(nil)

// MockOrderRepository giả lập OrderRepository cho test
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) CreateFromCart(order *model.Order) error {
	args := m.Called(order)
	return args.Error(0)
}

func (m *MockOrderRepository) FindByID(id int) (*model.Order, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByCode(code string) (*model.Order, error) {
	args := m.Called(code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByUser(userID int, page, pageSize int) ([]*model.Order, int, error) {
	args := m.Called(userID, page, pageSize)
	return args.Get(0).([]*model.Order), args.Int(1), args.Error(2)
}

func (m *MockOrderRepository) FindAll(filters model.OrderFilters) ([]*model.Order, int, error) {
	args := m.Called(filters)
	return args.Get(0).([]*model.Order), args.Int(1), args.Error(2)
}

func (m *MockOrderRepository) UpdateStatus(id int, status, note string) error {
	args := m.Called(id, status, note)
	return args.Error(0)
}

func (m *MockOrderRepository) UpdatePaymentStatus(id int, paymentStatus string) error {
	args := m.Called(id, paymentStatus)
	return args.Error(0)
}

func (m *MockOrderRepository) Cancel(orderID int, reason string, markRefundPending bool) error {
	args := m.Called(orderID, reason, markRefundPending)
	return args.Error(0)
}

func (m *MockOrderRepository) CountByStatus() (map[string]int, error) {
	args := m.Called()
	return args.Get(0).(map[string]int), args.Error(1)
}

func (m *MockOrderRepository) Revenue() (float64, error) {
	args := m.Called()
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockOrderRepository) Recent(limit int) ([]*model.Order, error) {
	args := m.Called(limit)
	return args.Get(0).([]*model.Order), args.Error(1)
}

var _ interfaces.OrderRepository = (*MockOrderRepository)(nil)

// MockReviewRepository giả lập ReviewRepository cho test
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Create(review *model.Review) error {
	args := m.Called(review)
	return args.Error(0)
}

func (m *MockReviewRepository) FindByID(id int) (*model.Review, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Review), args.Error(1)
}

func (m *MockReviewRepository) ListByProduct(productID, page, pageSize int) ([]*model.Review, int, error) {
	args := m.Called(productID, page, pageSize)
	return args.Get(0).([]*model.Review), args.Int(1), args.Error(2)
}

func (m *MockReviewRepository) ListReplies(parentIDs []int) ([]*model.Review, error) {
	args := m.Called(parentIDs)
	return args.Get(0).([]*model.Review), args.Error(1)
}

func (m *MockReviewRepository) Update(review *model.Review) error {
	args := m.Called(review)
	return args.Error(0)
}

func (m *MockReviewRepository) Delete(id int) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockReviewRepository) Summary(productID int) (*model.ReviewSummary, error) {
	args := m.Called(productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ReviewSummary), args.Error(1)
}

var _ interfaces.ReviewRepository = (*MockReviewRepository)(nil)
