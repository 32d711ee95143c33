package interfaces

import "github.com/huawsvantoan/webbanbanhngot-sub000/internal/model"

// UserRepository định nghĩa các thao tác trên bảng users
type UserRepository interface {
	Create(user *model.User) error
	FindByID(id int) (*model.User, error)
	FindByEmail(email string) (*model.User, error)
	FindByUsername(username string) (*model.User, error)
	Update(user *model.User) error
	UpdatePassword(id int, passwordHash string) error
	SoftDelete(id int) error
	Purge(id int) error
	Count() (int, error)
	FindAll(page, pageSize int, includeDeleted bool) ([]*model.User, int, error)
}
