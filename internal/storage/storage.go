package storage

import "mime/multipart"

// Uploader là backend lưu trữ ảnh của cửa hàng.
// UploadFile trả về URL (hoặc đường dẫn tương đối với local) của file đã lưu.
type Uploader interface {
	UploadFile(file *multipart.FileHeader, path string) (string, error)
}
