package service

import (
	"crypto/tls"
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/huawsvantoan/webbanbanhngot-sub000/config"
	"github.com/huawsvantoan/webbanbanhngot-sub000/internal/common"
	"github.com/huawsvantoan/webbanbanhngot-sub000/internal/model"
	"github.com/huawsvantoan/webbanbanhngot-sub000/internal/repository/interfaces"
	"github.com/huawsvantoan/webbanbanhngot-sub000/internal/util"
	"go.uber.org/zap"
	"gopkg.in/mail.v2"
)

// EmailService gửi mail xác minh, đặt lại mật khẩu và xác nhận đơn hàng
type EmailService struct {
	smtpHost  string
	smtpPort  int
	username  string
	password  string
	userRepo  interfaces.UserRepository
	jwtSecret string
}

func NewEmailService(userRepo interfaces.UserRepository) *EmailService {
	return &EmailService{
		smtpHost:  config.AppConfig.SMTPHost,
		smtpPort:  config.AppConfig.SMTPPort,
		username:  config.AppConfig.SMTPUsername,
		password:  config.AppConfig.SMTPPassword,
		userRepo:  userRepo,
		jwtSecret: config.AppConfig.JWTSecret,
	}
}

// SendVerificationEmail gửi link xác minh email, hạn 24 giờ
func (s *EmailService) SendVerificationEmail(email, username string) error {
	token, err := s.generateEmailToken(email, "verify_email", 24*time.Hour)
	if err != nil {
		return fmt.Errorf("tạo token xác minh thất bại: %w", err)
	}

	link := fmt.Sprintf("%s/verify-email?token=%s", config.AppConfig.FrontendURL, token)
	subject := "Xác minh email của bạn - Tiệm Bánh Ngọt"
	body := fmt.Sprintf(
		"Chào %s,<br><br>Cảm ơn bạn đã đăng ký tài khoản tại Tiệm Bánh Ngọt."+
			"<br>Vui lòng bấm vào liên kết sau để xác minh email:<br><a href=\"%s\">%s</a>"+
			"<br><br>Liên kết sẽ hết hạn sau 24 giờ.", username, link, link)

	s.sendAsync(email, subject, body)
	return nil
}

// SendPasswordResetEmail gửi link đặt lại mật khẩu, hạn 1 giờ
func (s *EmailService) SendPasswordResetEmail(email string) error {
	token, err := s.generateEmailToken(email, "password_reset", time.Hour)
	if err != nil {
		return fmt.Errorf("tạo token đặt lại mật khẩu thất bại: %w", err)
	}

	link := fmt.Sprintf("%s/reset-password?token=%s", config.AppConfig.FrontendURL, token)
	subject := "Đặt lại mật khẩu - Tiệm Bánh Ngọt"
	body := fmt.Sprintf(
		"Chúng tôi nhận được yêu cầu đặt lại mật khẩu cho tài khoản của bạn."+
			"<br>Bấm vào liên kết sau để đặt mật khẩu mới:<br><a href=\"%s\">%s</a>"+
			"<br><br>Liên kết hết hạn sau 1 giờ. Nếu không phải bạn yêu cầu, hãy bỏ qua email này.",
		link, link)

	return s.send(email, subject, body)
}

// SendOrderConfirmation gửi xác nhận sau khi chốt đơn thành công
func (s *EmailService) SendOrderConfirmation(email string, order *model.Order) {
	subject := fmt.Sprintf("Xác nhận đơn hàng %s - Tiệm Bánh Ngọt", order.OrderCode)
	body := fmt.Sprintf(
		"Chào %s,<br><br>Tiệm Bánh Ngọt đã nhận đơn hàng <b>%s</b> của bạn."+
			"<br>Tổng tiền: %.0f₫<br>Giao tới: %s<br><br>"+
			"Chúng tôi sẽ thông báo khi đơn được xử lý. Cảm ơn bạn!",
		order.RecipientName, order.OrderCode, order.TotalAmount, order.ShippingAddress)

	s.sendAsync(email, subject, body)
}

func (s *EmailService) sendAsync(to, subject, body string) {
	go func() {
		if err := s.send(to, subject, body); err != nil {
			util.Logger.Error("Gửi mail thất bại", zap.Error(err), zap.String("to", to))
		}
	}()
}

func (s *EmailService) send(to, subject, body string) error {
	m := mail.NewMessage()
	m.SetHeader("From", s.username)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := mail.NewDialer(s.smtpHost, s.smtpPort, s.username, s.password)
	d.Timeout = 20 * time.Second
	d.SSL = true
	d.TLSConfig = &tls.Config{ServerName: s.smtpHost}

	// SMTP hay rớt kết nối tạm thời, thử lại tối đa 3 lần
	if err := common.WithRetry(func() error {
		return d.DialAndSend(m)
	}, 3); err != nil {
		return fmt.Errorf("gửi mail thất bại: %w", err)
	}

	util.Logger.Info("Đã gửi mail", zap.String("to", to), zap.String("subject", subject))
	return nil
}

func (s *EmailService) generateEmailToken(email, tokenType string, ttl time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": email,
		"type":  tokenType,
		"exp":   time.Now().Add(ttl).Unix(),
	})
	return token.SignedString([]byte(s.jwtSecret))
}

func (s *EmailService) parseEmailToken(tokenString, wantType string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return "", fmt.Errorf("token không hợp lệ: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("token không hợp lệ")
	}

	tokenType, _ := claims["type"].(string)
	if tokenType != wantType {
		return "", fmt.Errorf("loại token không đúng")
	}

	email, ok := claims["email"].(string)
	if !ok {
		return "", fmt.Errorf("token thiếu email")
	}
	return email, nil
}

// VerifyEmailToken trả về user_id từ token xác minh email
func (s *EmailService) VerifyEmailToken(tokenString string) (int, error) {
	email, err := s.parseEmailToken(tokenString, "verify_email")
	if err != nil {
		return 0, err
	}

	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return 0, fmt.Errorf("tìm người dùng thất bại: %w", err)
	}
	if user == nil {
		return 0, fmt.Errorf("không tìm thấy người dùng")
	}
	return user.ID, nil
}

// VerifyPasswordResetToken trả về email từ token đặt lại mật khẩu
func (s *EmailService) VerifyPasswordResetToken(tokenString string) (string, error) {
	return s.parseEmailToken(tokenString, "password_reset")
}
