package model

import "time"

// Product là một loại bánh trong danh mục
type Product struct {
	ID          int        `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Price       float64    `json:"price"`
	Stock       int        `json:"stock"`
	CategoryID  *int       `json:"category_id,omitempty"`
	ImageURL    string     `json:"image_url"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`
	Category    *Category  `json:"category,omitempty"`
}

// Category là nhóm sản phẩm (bánh kem, bánh mì, bánh ngọt...)
type Category struct {
	ID          int        `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`
}

// ProductFilters là điều kiện lọc danh sách sản phẩm
type ProductFilters struct {
	Keyword        string
	CategoryID     int
	IncludeDeleted bool
	Page           int
	PageSize       int
}
