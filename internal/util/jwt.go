package util

import (
	"errors"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/huawsvantoan/webbanbanhngot-sub000/config"
)

// GenerateToken tạo JWT cho một người dùng, hạn 24 giờ
func GenerateToken(userID int) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(time.Hour * 24).Unix(),
	})

	return token.SignedString([]byte(config.AppConfig.JWTSecret))
}

// ValidateToken kiểm tra JWT và trả về user_id
func ValidateToken(tokenString string) (int, error) {
	if tokenString == "" {
		return 0, errors.New("token rỗng")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte(config.AppConfig.JWTSecret), nil
	})

	if err != nil {
		return 0, err
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		userID, ok := claims["user_id"].(float64)
		if !ok {
			return 0, errors.New("user_id không hợp lệ")
		}
		return int(userID), nil
	}

	return 0, errors.New("token không hợp lệ")
}

// RefreshToken cấp lại token mới từ một token còn hiệu lực
func RefreshToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte(config.AppConfig.JWTSecret), nil
	})

	if err != nil {
		return "", err
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		userID := int(claims["user_id"].(float64))
		newToken, err := GenerateToken(userID)
		if err != nil {
			return "", err
		}
		return newToken, nil
	}

	return "", errors.New("token không hợp lệ")
}
