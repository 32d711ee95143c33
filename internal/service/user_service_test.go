package service

import (
	"testing"
	"time"

	"github.com/huawsvantoan/webbanbanhngot-sub000/config"
	"github.com/huawsvantoan/webbanbanhngot-sub000/internal/errors"
	"github.com/huawsvantoan/webbanbanhngot-sub000/internal/model"
	"github.com/huawsvantoan/webbanbanhngot-sub000/internal/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

func TestRegisterSuccess(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := NewUserService(mockRepo, nil)

	mockRepo.On("FindByEmail", "an@example.com").Return(nil, nil)
	mockRepo.On("FindByUsername", "an").Return(nil, nil)
	mockRepo.On("Create", mock.AnythingOfType("*model.User")).Return(nil)

	user, err := svc.Register("an", "an@example.com", "matkhau123")
	assert.NoError(t, err)
	assert.Equal(t, "an", user.Username)
	assert.Equal(t, model.RoleUser, user.Role)
	// mật khẩu không được lưu dạng rõ
	assert.NotEqual(t, "matkhau123", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("matkhau123")))
	mockRepo.AssertExpectations(t)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := NewUserService(mockRepo, nil)

	mockRepo.On("FindByEmail", "an@example.com").Return(&model.User{ID: 1}, nil)

	_, err := svc.Register("an", "an@example.com", "matkhau123")
	assert.Error(t, err)
	appErr, ok := err.(*errors.AppError)
	assert.True(t, ok)
	assert.Equal(t, errors.ErrUserExists, appErr.Code)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestRegisterWeakPassword(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := NewUserService(mockRepo, nil)

	_, err := svc.Register("an", "an@example.com", "123")
	assert.Error(t, err)
	appErr, ok := err.(*errors.AppError)
	assert.True(t, ok)
	assert.Equal(t, errors.ErrWeakPassword, appErr.Code)
}

func TestLoginWrongPassword(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := NewUserService(mockRepo, nil)

	hash, _ := bcrypt.GenerateFromPassword([]byte("dungroi123"), bcrypt.DefaultCost)
	mockRepo.On("FindByUsername", "an").Return(&model.User{ID: 1, Username: "an", PasswordHash: string(hash)}, nil)

	_, _, err := svc.Login("an", "sai-mat-khau")
	assert.Error(t, err)
	appErr, ok := err.(*errors.AppError)
	assert.True(t, ok)
	assert.Equal(t, errors.ErrInvalidCredentials, appErr.Code)
}

func TestLoginByEmail(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := NewUserService(mockRepo, nil)

	hash, _ := bcrypt.GenerateFromPassword([]byte("dungroi123"), bcrypt.DefaultCost)
	mockRepo.On("FindByEmail", "an@example.com").Return(
		&model.User{ID: 7, Username: "an", Email: "an@example.com", PasswordHash: string(hash)}, nil)

	token, user, err := svc.Login("an@example.com", "dungroi123")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, 7, user.ID)
	// tra cứu theo email vì account chứa ký tự @
	mockRepo.AssertNotCalled(t, "FindByUsername", mock.Anything)
}

func TestAdminLoginRejectsNonAdmin(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := NewUserService(mockRepo, nil)

	hash, _ := bcrypt.GenerateFromPassword([]byte("dungroi123"), bcrypt.DefaultCost)
	mockRepo.On("FindByUsername", "an").Return(
		&model.User{ID: 7, Username: "an", Role: model.RoleUser, PasswordHash: string(hash)}, nil)

	_, _, err := svc.AdminLogin("an", "dungroi123")
	assert.Error(t, err)
	appErr, ok := err.(*errors.AppError)
	assert.True(t, ok)
	assert.Equal(t, errors.ErrForbidden, appErr.Code)
}

func TestAdminLoginAcceptsAdmin(t *testing.T) {
	config.AppConfig.JWTSecret = "bimatthunghiem"

	mockRepo := new(MockUserRepository)
	svc := NewUserService(mockRepo, nil)

	hash, _ := bcrypt.GenerateFromPassword([]byte("dungroi123"), bcrypt.DefaultCost)
	mockRepo.On("FindByUsername", "quantri").Return(
		&model.User{ID: 1, Username: "quantri", Role: model.RoleAdmin, PasswordHash: string(hash)}, nil)

	token, user, err := svc.AdminLogin("quantri", "dungroi123")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, model.RoleAdmin, user.Role)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	config.AppConfig.JWTSecret = "bimatthunghiem"

	mockRepo := new(MockUserRepository)
	svc := NewUserService(mockRepo, nil)

	token, err := util.GenerateToken(7)
	assert.NoError(t, err)

	newToken, err := svc.RefreshToken(token)
	assert.NoError(t, err)
	userID, err := util.ValidateToken(newToken)
	assert.NoError(t, err)
	assert.Equal(t, 7, userID)
}

func TestRefreshTokenRejectsBlacklisted(t *testing.T) {
	config.AppConfig.JWTSecret = "bimatthunghiem"

	mockRepo := new(MockUserRepository)
	svc := NewUserService(mockRepo, nil)

	token, err := util.GenerateToken(7)
	assert.NoError(t, err)
	svc.Logout(token)

	_, err = svc.RefreshToken(token)
	assert.Error(t, err)
	appErr, ok := err.(*errors.AppError)
	assert.True(t, ok)
	assert.Equal(t, errors.ErrUnauthorized, appErr.Code)
}

func TestPurgeUserRequiresSoftDelete(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := NewUserService(mockRepo, nil)

	mockRepo.On("FindByID", 7).Return(&model.User{ID: 7}, nil)

	err := svc.PurgeUser(7)
	assert.Error(t, err)
	appErr, ok := err.(*errors.AppError)
	assert.True(t, ok)
	assert.Equal(t, errors.ErrResourceConflict, appErr.Code)
	mockRepo.AssertNotCalled(t, "Purge", mock.Anything)
}

func TestPurgeUserAfterSoftDelete(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := NewUserService(mockRepo, nil)

	deletedAt := time.Now()
	mockRepo.On("FindByID", 7).Return(&model.User{ID: 7, DeletedAt: &deletedAt}, nil)
	mockRepo.On("Purge", 7).Return(nil)

	err := svc.PurgeUser(7)
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestLogoutBlacklistsToken(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := NewUserService(mockRepo, nil)

	assert.False(t, svc.IsTokenBlacklisted("token-abc"))
	svc.Logout("token-abc")
	assert.True(t, svc.IsTokenBlacklisted("token-abc"))
	assert.False(t, svc.IsTokenBlacklisted("token-khac"))
}

func TestChangePasswordRequiresOldPassword(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := NewUserService(mockRepo, nil)

	hash, _ := bcrypt.GenerateFromPassword([]byte("cu-mat-khau"), bcrypt.DefaultCost)
	mockRepo.On("FindByID", 3).Return(&model.User{ID: 3, PasswordHash: string(hash)}, nil)

	err := svc.ChangePassword(3, "sai-mat-khau", "moi-mat-khau")
	assert.Error(t, err)
	mockRepo.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything)

	mockRepo.On("UpdatePassword", 3, mock.AnythingOfType("string")).Return(nil)
	err = svc.ChangePassword(3, "cu-mat-khau", "moi-mat-khau")
	assert.NoError(t, err)
}

func TestUpdateUserRoleRejectsUnknownRole(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := NewUserService(mockRepo, nil)

	err := svc.UpdateUserRole(1, "superadmin")
	assert.Error(t, err)
	appErr, ok := err.(*errors.AppError)
	assert.True(t, ok)
	assert.Equal(t, errors.ErrValidation, appErr.Code)
}
