package service

import (
	"testing"

	"github.com/huawsvantoan/webbanbanhngot-sub000/internal/errors"
	"github.com/huawsvantoan/webbanbanhngot-sub000/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestAddItemNewLine(t *testing.T) {
	cartRepo := new(MockCartRepository)
	productRepo := new(MockProductRepository)
	svc := NewCartService(cartRepo, productRepo)

	productRepo.On("FindByID", 10, false).Return(&model.Product{ID: 10, Name: "Bánh kem dâu", Price: 250000, Stock: 5}, nil)
	cartRepo.On("FindLine", 1, 10).Return(nil, nil)
	cartRepo.On("Insert", mock.AnythingOfType("*model.CartItem")).Return(nil)
	cartRepo.On("ListByUser", 1).Return([]*model.CartItem{
		{ProductID: 10, Quantity: 2, Price: 250000, ProductName: "Bánh kem dâu"},
	}, nil)

	cart, err := svc.AddItem(1, 10, 2)
	assert.NoError(t, err)
	assert.Len(t, cart.Items, 1)
	assert.Equal(t, float64(500000), cart.Total)
	cartRepo.AssertExpectations(t)
}

func TestAddItemMergesQuantity(t *testing.T) {
	cartRepo := new(MockCartRepository)
	productRepo := new(MockProductRepository)
	svc := NewCartService(cartRepo, productRepo)

	productRepo.On("FindByID", 10, false).Return(&model.Product{ID: 10, Stock: 10}, nil)
	cartRepo.On("FindLine", 1, 10).Return(&model.CartItem{UserID: 1, ProductID: 10, Quantity: 3}, nil)
	// 3 dòng cũ + 2 thêm mới = 5
	cartRepo.On("UpdateQuantity", 1, 10, 5).Return(nil)
	cartRepo.On("ListByUser", 1).Return([]*model.CartItem{}, nil)

	_, err := svc.AddItem(1, 10, 2)
	assert.NoError(t, err)
	cartRepo.AssertExpectations(t)
}

func TestAddItemExceedsStock(t *testing.T) {
	cartRepo := new(MockCartRepository)
	productRepo := new(MockProductRepository)
	svc := NewCartService(cartRepo, productRepo)

	productRepo.On("FindByID", 10, false).Return(&model.Product{ID: 10, Stock: 4}, nil)
	cartRepo.On("FindLine", 1, 10).Return(&model.CartItem{UserID: 1, ProductID: 10, Quantity: 3}, nil)

	_, err := svc.AddItem(1, 10, 2)
	assert.Error(t, err)
	appErr, ok := err.(*errors.AppError)
	assert.True(t, ok)
	assert.Equal(t, errors.ErrOutOfStock, appErr.Code)
	cartRepo.AssertNotCalled(t, "UpdateQuantity", mock.Anything, mock.Anything, mock.Anything)
}

func TestAddItemDeletedProduct(t *testing.T) {
	cartRepo := new(MockCartRepository)
	productRepo := new(MockProductRepository)
	svc := NewCartService(cartRepo, productRepo)

	// sản phẩm đã xóa mềm không còn thấy được từ cửa hàng
	productRepo.On("FindByID", 99, false).Return(nil, nil)

	_, err := svc.AddItem(1, 99, 1)
	assert.Error(t, err)
	appErr, ok := err.(*errors.AppError)
	assert.True(t, ok)
	assert.Equal(t, errors.ErrProductNotFound, appErr.Code)
}

func TestUpdateQuantityRejectsZero(t *testing.T) {
	cartRepo := new(MockCartRepository)
	productRepo := new(MockProductRepository)
	svc := NewCartService(cartRepo, productRepo)

	_, err := svc.UpdateQuantity(1, 10, 0)
	assert.Error(t, err)
	_, err = svc.UpdateQuantity(1, 10, -1)
	assert.Error(t, err)

	// Số lượng 0 không được ngầm hiểu là xóa dòng
	cartRepo.AssertNotCalled(t, "Remove", mock.Anything, mock.Anything)
	cartRepo.AssertNotCalled(t, "UpdateQuantity", mock.Anything, mock.Anything, mock.Anything)
}

func TestCartTotalMatchesLines(t *testing.T) {
	cartRepo := new(MockCartRepository)
	productRepo := new(MockProductRepository)
	svc := NewCartService(cartRepo, productRepo)

	cartRepo.On("ListByUser", 1).Return([]*model.CartItem{
		{ProductID: 1, Quantity: 2, Price: 35000},
		{ProductID: 2, Quantity: 1, Price: 120000},
	}, nil)

	cart, err := svc.GetCart(1)
	assert.NoError(t, err)
	assert.Equal(t, float64(2*35000+120000), cart.Total)
}
