package util

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// Số điện thoại Việt Nam: 0xxxxxxxxx hoặc +84xxxxxxxxx
var vnPhonePattern = regexp.MustCompile(`^(0|\+84)\d{9,10}$`)

// ValidateVNPhone dùng cho tag binding "vn_phone"
func ValidateVNPhone(fl validator.FieldLevel) bool {
	phone, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	return vnPhonePattern.MatchString(phone)
}
