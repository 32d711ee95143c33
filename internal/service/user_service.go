package service

import (
	"strings"
	"sync"
	"time"

	"github.com/huawsvantoan/webbanbanhngot-sub000/internal/errors"
	"github.com/huawsvantoan/webbanbanhngot-sub000/internal/model"
	"github.com/huawsvantoan/webbanbanhngot-sub000/internal/repository/interfaces"
	"github.com/huawsvantoan/webbanbanhngot-sub000/internal/util"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// UserServiceInterface để handler và test mock được tầng service
type UserServiceInterface interface {
	Register(username, email, password string) (*model.User, error)
	Login(usernameOrEmail, password string) (string, *model.User, error)
	AdminLogin(usernameOrEmail, password string) (string, *model.User, error)
	RefreshToken(token string) (string, error)
	GetUserByID(id int) (*model.User, error)
	UpdateProfile(id int, fullName, address, phone string) (*model.User, error)
	UpdateAvatar(id int, avatarURL string) error
	ChangePassword(id int, oldPassword, newPassword string) error
	VerifyEmail(token string) error
	RequestPasswordReset(email string) error
	ResetPassword(token, newPassword string) error
	Logout(token string)
	IsTokenBlacklisted(token string) bool
	IsAdmin(id int) (bool, error)
	GetUsers(page, pageSize int, includeDeleted bool) ([]*model.User, int, error)
	UpdateUserRole(id int, role string) error
	DeleteAccount(id int) error
	PurgeUser(id int) error
}

// UserService xử lý đăng ký, đăng nhập và quản lý tài khoản
type UserService struct {
	userRepo     interfaces.UserRepository
	emailService *EmailService

	// danh sách token đã đăng xuất, dọn theo hạn token
	blacklistMu sync.RWMutex
	blacklist   map[string]time.Time
}

var _ UserServiceInterface = (*UserService)(nil)

func NewUserService(userRepo interfaces.UserRepository, emailService *EmailService) *UserService {
	return &UserService{
		userRepo:     userRepo,
		emailService: emailService,
		blacklist:    make(map[string]time.Time),
	}
}

// Register tạo tài khoản mới và gửi mail xác minh
func (s *UserService) Register(username, email, password string) (*model.User, error) {
	if len(password) < 6 {
		return nil, errors.New(errors.ErrWeakPassword, "Mật khẩu phải có ít nhất 6 ký tự")
	}

	existing, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "Kiểm tra email thất bại", err)
	}
	if existing != nil {
		return nil, errors.New(errors.ErrUserExists, "Email đã được đăng ký")
	}

	existing, err = s.userRepo.FindByUsername(username)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "Kiểm tra tên đăng nhập thất bại", err)
	}
	if existing != nil {
		return nil, errors.New(errors.ErrUserExists, "Tên đăng nhập đã tồn tại")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInternal, "Băm mật khẩu thất bại", err)
	}

	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         model.RoleUser,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "Tạo tài khoản thất bại", err)
	}

	if s.emailService != nil {
		if err := s.emailService.SendVerificationEmail(email, username); err != nil {
			util.Logger.Warn("Không gửi được mail xác minh", zap.Error(err), zap.String("email", email))
		}
	}

	util.Logger.Info("Đăng ký tài khoản mới", zap.Int("user_id", user.ID), zap.String("username", username))
	return user, nil
}

// Login nhận username hoặc email, trả token JWT kèm hồ sơ
func (s *UserService) Login(usernameOrEmail, password string) (string, *model.User, error) {
	var user *model.User
	var err error
	if strings.Contains(usernameOrEmail, "@") {
		user, err = s.userRepo.FindByEmail(usernameOrEmail)
	} else {
		user, err = s.userRepo.FindByUsername(usernameOrEmail)
	}
	if err != nil {
		return "", nil, errors.Wrap(errors.ErrDatabase, "Tra cứu người dùng thất bại", err)
	}
	if user == nil {
		return "", nil, errors.New(errors.ErrInvalidCredentials, "Tài khoản hoặc mật khẩu không đúng")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, errors.New(errors.ErrInvalidCredentials, "Tài khoản hoặc mật khẩu không đúng")
	}

	token, err := util.GenerateToken(user.ID)
	if err != nil {
		return "", nil, errors.Wrap(errors.ErrInternal, "Tạo token thất bại", err)
	}

	util.Logger.Info("Đăng nhập", zap.Int("user_id", user.ID))
	return token, user, nil
}

// AdminLogin như Login nhưng chỉ chấp nhận tài khoản có quyền quản trị
func (s *UserService) AdminLogin(usernameOrEmail, password string) (string, *model.User, error) {
	token, user, err := s.Login(usernameOrEmail, password)
	if err != nil {
		return "", nil, err
	}
	if user.Role != model.RoleAdmin {
		util.Logger.Warn("Tài khoản thường đăng nhập trang quản trị", zap.Int("user_id", user.ID))
		return "", nil, errors.New(errors.ErrForbidden, "Tài khoản không có quyền quản trị")
	}
	return token, user, nil
}

// RefreshToken cấp token mới từ token còn hiệu lực và chưa bị đăng xuất
func (s *UserService) RefreshToken(token string) (string, error) {
	if s.IsTokenBlacklisted(token) {
		return "", errors.New(errors.ErrUnauthorized, "Token đã đăng xuất")
	}
	newToken, err := util.RefreshToken(token)
	if err != nil {
		return "", errors.Wrap(errors.ErrUnauthorized, "Token không hợp lệ", err)
	}
	return newToken, nil
}

func (s *UserService) GetUserByID(id int) (*model.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "Tra cứu người dùng thất bại", err)
	}
	if user == nil {
		return nil, errors.New(errors.ErrUserNotFound, "Không tìm thấy người dùng")
	}
	return user, nil
}

// UpdateProfile cập nhật thông tin giao hàng mặc định của người dùng
func (s *UserService) UpdateProfile(id int, fullName, address, phone string) (*model.User, error) {
	user, err := s.GetUserByID(id)
	if err != nil {
		return nil, err
	}

	user.FullName = fullName
	user.Address = address
	user.Phone = phone
	if err := s.userRepo.Update(user); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "Cập nhật hồ sơ thất bại", err)
	}
	return user, nil
}

func (s *UserService) UpdateAvatar(id int, avatarURL string) error {
	user, err := s.GetUserByID(id)
	if err != nil {
		return err
	}
	user.AvatarURL = avatarURL
	if err := s.userRepo.Update(user); err != nil {
		return errors.Wrap(errors.ErrDatabase, "Cập nhật ảnh đại diện thất bại", err)
	}
	return nil
}

func (s *UserService) ChangePassword(id int, oldPassword, newPassword string) error {
	if len(newPassword) < 6 {
		return errors.New(errors.ErrWeakPassword, "Mật khẩu mới phải có ít nhất 6 ký tự")
	}

	user, err := s.GetUserByID(id)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)); err != nil {
		return errors.New(errors.ErrInvalidCredentials, "Mật khẩu hiện tại không đúng")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return errors.Wrap(errors.ErrInternal, "Băm mật khẩu thất bại", err)
	}
	if err := s.userRepo.UpdatePassword(id, string(hash)); err != nil {
		return errors.Wrap(errors.ErrDatabase, "Đổi mật khẩu thất bại", err)
	}
	return nil
}

// VerifyEmail đánh dấu tài khoản đã xác minh từ token trong mail
func (s *UserService) VerifyEmail(token string) error {
	userID, err := s.emailService.VerifyEmailToken(token)
	if err != nil {
		return errors.Wrap(errors.ErrInvalidToken, "Token xác minh không hợp lệ hoặc đã hết hạn", err)
	}

	user, err := s.GetUserByID(userID)
	if err != nil {
		return err
	}
	if user.IsVerified {
		return nil
	}
	user.IsVerified = true
	if err := s.userRepo.Update(user); err != nil {
		return errors.Wrap(errors.ErrDatabase, "Cập nhật trạng thái xác minh thất bại", err)
	}
	util.Logger.Info("Xác minh email thành công", zap.Int("user_id", userID))
	return nil
}

// RequestPasswordReset luôn trả thành công để không lộ email nào đã đăng ký
func (s *UserService) RequestPasswordReset(email string) error {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, "Tra cứu email thất bại", err)
	}
	if user == nil {
		util.Logger.Info("Yêu cầu đặt lại mật khẩu cho email không tồn tại", zap.String("email", email))
		return nil
	}
	if err := s.emailService.SendPasswordResetEmail(email); err != nil {
		return errors.Wrap(errors.ErrInternal, "Gửi mail đặt lại mật khẩu thất bại", err)
	}
	return nil
}

func (s *UserService) ResetPassword(token, newPassword string) error {
	if len(newPassword) < 6 {
		return errors.New(errors.ErrWeakPassword, "Mật khẩu mới phải có ít nhất 6 ký tự")
	}

	email, err := s.emailService.VerifyPasswordResetToken(token)
	if err != nil {
		return errors.Wrap(errors.ErrInvalidToken, "Token đặt lại mật khẩu không hợp lệ hoặc đã hết hạn", err)
	}

	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, "Tra cứu người dùng thất bại", err)
	}
	if user == nil {
		return errors.New(errors.ErrUserNotFound, "Không tìm thấy người dùng")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return errors.Wrap(errors.ErrInternal, "Băm mật khẩu thất bại", err)
	}
	if err := s.userRepo.UpdatePassword(user.ID, string(hash)); err != nil {
		return errors.Wrap(errors.ErrDatabase, "Đặt lại mật khẩu thất bại", err)
	}
	return nil
}

// Logout đưa token vào danh sách đen đến khi token tự hết hạn
func (s *UserService) Logout(token string) {
	s.blacklistMu.Lock()
	defer s.blacklistMu.Unlock()

	s.blacklist[token] = time.Now().Add(24 * time.Hour)

	// dọn các token đã quá hạn
	now := time.Now()
	for t, exp := range s.blacklist {
		if now.After(exp) {
			delete(s.blacklist, t)
		}
	}
}

func (s *UserService) IsTokenBlacklisted(token string) bool {
	s.blacklistMu.RLock()
	defer s.blacklistMu.RUnlock()
	exp, ok := s.blacklist[token]
	return ok && time.Now().Before(exp)
}

func (s *UserService) IsAdmin(id int) (bool, error) {
	user, err := s.GetUserByID(id)
	if err != nil {
		return false, err
	}
	return user.Role == model.RoleAdmin, nil
}

func (s *UserService) GetUsers(page, pageSize int, includeDeleted bool) ([]*model.User, int, error) {
	users, total, err := s.userRepo.FindAll(page, pageSize, includeDeleted)
	if err != nil {
		return nil, 0, errors.Wrap(errors.ErrDatabase, "Lấy danh sách người dùng thất bại", err)
	}
	return users, total, nil
}

func (s *UserService) UpdateUserRole(id int, role string) error {
	if role != model.RoleUser && role != model.RoleAdmin {
		return errors.New(errors.ErrValidation, "Vai trò không hợp lệ")
	}

	user, err := s.GetUserByID(id)
	if err != nil {
		return err
	}
	user.Role = role
	if err := s.userRepo.Update(user); err != nil {
		return errors.Wrap(errors.ErrDatabase, "Cập nhật vai trò thất bại", err)
	}
	util.Logger.Info("Cập nhật vai trò người dùng", zap.Int("user_id", id), zap.String("role", role))
	return nil
}

// DeleteAccount xóa mềm tài khoản, dữ liệu đơn hàng cũ vẫn giữ nguyên
func (s *UserService) DeleteAccount(id int) error {
	if _, err := s.GetUserByID(id); err != nil {
		return err
	}
	if err := s.userRepo.SoftDelete(id); err != nil {
		return errors.Wrap(errors.ErrDatabase, "Xóa tài khoản thất bại", err)
	}
	return nil
}

// PurgeUser xóa vĩnh viễn, chỉ áp dụng cho tài khoản đã xóa mềm trước đó
func (s *UserService) PurgeUser(id int) error {
	user, err := s.GetUserByID(id)
	if err != nil {
		return err
	}
	if user.DeletedAt == nil {
		return errors.New(errors.ErrResourceConflict, "Phải xóa mềm tài khoản trước khi xóa vĩnh viễn")
	}
	if err := s.userRepo.Purge(id); err != nil {
		return errors.Wrap(errors.ErrDatabase, "Xóa vĩnh viễn tài khoản thất bại", err)
	}
	return nil
}
