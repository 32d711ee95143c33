package config

import (
	"log"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

// Config chứa toàn bộ cấu hình của ứng dụng
type Config struct {
	ServerPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	MigrationsPath string

	JWTSecret string
	LogLevel  string

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string

	FrontendURL string
	BackendURL  string

	// Lưu trữ ảnh: local | s3 | gcs
	StorageDriver      string
	LocalStoragePath   string
	S3Region           string
	S3Bucket           string
	GCSProjectID       string
	GCSBucketName      string
	GCSCredentialsFile string

	// Cổng thanh toán VNPay
	VNPayTmnCode    string
	VNPayHashSecret string
	VNPayPayURL     string
	VNPayReturnURL  string

	Debug bool
}

// AppConfig là biến cấu hình toàn cục
var AppConfig Config

// Init đọc cấu hình từ biến môi trường
func Init() {
	// Nạp file .env nếu có
	err := godotenv.Load()
	if err != nil {
		log.Printf("Cảnh báo: không nạp được file .env: %v", err)
	}

	AppConfig = Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),

		DBHost:     getEnv("DB_HOST", ""),
		DBPort:     getEnv("DB_PORT", "3306"),
		DBUser:     getEnv("DB_USER", ""),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", ""),

		MigrationsPath: getEnv("MIGRATIONS_PATH", "./migrations"),

		JWTSecret: getEnv("JWT_SECRET", ""),
		LogLevel:  getEnv("LOG_LEVEL", "info"),

		SMTPHost:     getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:     getEnvAsInt("SMTP_PORT", 465),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),

		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:5173"),
		BackendURL:  getEnv("BACKEND_URL", "http://localhost:8080"),

		StorageDriver:      getEnv("STORAGE_DRIVER", "local"),
		LocalStoragePath:   getEnv("LOCAL_STORAGE_PATH", "./uploads"),
		S3Region:           getEnv("S3_REGION", "ap-southeast-1"),
		S3Bucket:           getEnv("S3_BUCKET", ""),
		GCSProjectID:       getEnv("GCS_PROJECT_ID", ""),
		GCSBucketName:      getEnv("GCS_BUCKET_NAME", ""),
		GCSCredentialsFile: getEnv("GCS_CREDENTIALS_FILE", ""),

		VNPayTmnCode:    getEnv("VNPAY_TMN_CODE", ""),
		VNPayHashSecret: getEnv("VNPAY_HASH_SECRET", ""),
		VNPayPayURL:     getEnv("VNPAY_PAY_URL", "https://sandbox.vnpayment.vn/paymentv2/vpcpay.html"),
		VNPayReturnURL:  getEnv("VNPAY_RETURN_URL", ""),

		Debug: getEnvAsBool("DEBUG", true),
	}

	if AppConfig.VNPayReturnURL == "" {
		AppConfig.VNPayReturnURL = AppConfig.FrontendURL + "/payment-success"
	}

	validateConfig()

	if AppConfig.Debug {
		gin.SetMode(gin.DebugMode)
		log.Println("Ứng dụng chạy ở chế độ debug")
	} else {
		gin.SetMode(gin.ReleaseMode)
		log.Println("Ứng dụng chạy ở chế độ production")
	}

	log.Printf("Đã nạp cấu hình. CSDL: %s:%s/%s", AppConfig.DBHost, AppConfig.DBPort, AppConfig.DBName)
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultVal int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultVal
}

func getEnvAsBool(key string, defaultVal bool) bool {
	valStr := getEnv(key, "")
	if val, err := strconv.ParseBool(valStr); err == nil {
		return val
	}
	return defaultVal
}

func validateConfig() {
	if AppConfig.DBHost == "" || AppConfig.DBUser == "" || AppConfig.DBName == "" {
		log.Fatal("Lỗi: cấu hình cơ sở dữ liệu chưa đầy đủ")
	}
	if AppConfig.JWTSecret == "" {
		log.Fatal("Lỗi: chưa thiết lập JWT_SECRET")
	}
	switch AppConfig.StorageDriver {
	case "local", "s3", "gcs":
	default:
		log.Fatalf("Lỗi: STORAGE_DRIVER không hợp lệ: %s", AppConfig.StorageDriver)
	}
}
