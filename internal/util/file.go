package util

import (
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// GenerateUniqueFilename sinh tên file duy nhất, giữ lại phần mở rộng gốc
func GenerateUniqueFilename(originalFilename string) string {
	ext := filepath.Ext(originalFilename)
	name := strings.TrimSuffix(filepath.Base(originalFilename), ext)
	name = strings.ReplaceAll(name, " ", "_")

	return name + "_" + uuid.NewString() + ext
}

// IsImageFilename kiểm tra phần mở rộng ảnh được phép
func IsImageFilename(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
		return true
	}
	return false
}
