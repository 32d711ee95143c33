package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/huawsvantoan/webbanbanhngot-sub000/config"
	"github.com/huawsvantoan/webbanbanhngot-sub000/internal/api/admin"
	"github.com/huawsvantoan/webbanbanhngot-sub000/internal/api/cart"
	"github.com/huawsvantoan/webbanbanhngot-sub000/internal/api/catalog"
	"github.com/huawsvantoan/webbanbanhngot-sub000/internal/api/order"
	"github.com/huawsvantoan/webbanbanhngot-sub000/internal/api/review"
	"github.com/huawsvantoan/webbanbanhngot-sub000/internal/api/user"
	"github.com/huawsvantoan/webbanbanhngot-sub000/internal/middleware"
	"github.com/huawsvantoan/webbanbanhngot-sub000/internal/payment/vnpay"
	"github.com/huawsvantoan/webbanbanhngot-sub000/internal/repository/mysql"
	"github.com/huawsvantoan/webbanbanhngot-sub000/internal/service"
	"github.com/huawsvantoan/webbanbanhngot-sub000/internal/storage"
	"github.com/huawsvantoan/webbanbanhngot-sub000/internal/util"
	"github.com/huawsvantoan/webbanbanhngot-sub000/internal/ws"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	migrate "github.com/golang-migrate/migrate/v4"
	migratemysql "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			util.Logger.Error("Ứng dụng gặp lỗi nghiêm trọng", zap.Any("error", r))
		}
	}()

	config.Init()

	util.InitLogger(config.AppConfig.LogLevel)
	defer util.Logger.Sync()

	util.Logger.Info("Khởi động backend tiệm bánh ngọt")

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		config.AppConfig.DBUser,
		config.AppConfig.DBPassword,
		config.AppConfig.DBHost,
		config.AppConfig.DBPort,
		config.AppConfig.DBName)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		util.Logger.Fatal("Kết nối CSDL thất bại", zap.Error(err))
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		util.Logger.Fatal("Kiểm tra kết nối CSDL thất bại", zap.Error(err))
	}
	util.Logger.Info("Đã kết nối CSDL")

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	runMigrations(db)

	// Đăng ký validator tùy chỉnh
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("vn_phone", util.ValidateVNPhone)
	}

	ensureUploadsFolder()
	uploader := newUploader()

	vnpayClient := vnpay.NewClient(
		config.AppConfig.VNPayTmnCode,
		config.AppConfig.VNPayHashSecret,
		config.AppConfig.VNPayPayURL,
		config.AppConfig.VNPayReturnURL,
	)

	hub := ws.NewHub()

	// Khởi tạo repository, service và handler
	userRepo := mysql.NewUserRepository(db)
	productRepo := mysql.NewProductRepository(db)
	categoryRepo := mysql.NewCategoryRepository(db)
	cartRepo := mysql.NewCartRepository(db)
	orderRepo := mysql.NewOrderRepository(db)
	reviewRepo := mysql.NewReviewRepository(db)
	bannerRepo := mysql.NewBannerRepository(db)
	blogRepo := mysql.NewBlogRepository(db)

	emailService := service.NewEmailService(userRepo)
	userService := service.NewUserService(userRepo, emailService)
	productService := service.NewProductService(productRepo, categoryRepo)
	cartService := service.NewCartService(cartRepo, productRepo)
	orderService := service.NewOrderService(orderRepo, cartRepo, userRepo, emailService, vnpayClient, hub)
	reviewService := service.NewReviewService(reviewRepo, productRepo)
	bannerService := service.NewBannerService(bannerRepo)
	blogService := service.NewBlogService(blogRepo)
	statsService := service.NewStatsService(userRepo, productRepo, orderRepo)

	authHandler := user.NewAuthHandler(userService)
	profileHandler := user.NewProfileHandler(userService, uploader)
	productHandler := catalog.NewProductHandler(productService, uploader)
	categoryHandler := catalog.NewCategoryHandler(productService)
	cartHandler := cart.NewCartHandler(cartService)
	orderHandler := order.NewOrderHandler(orderService)
	paymentHandler := order.NewPaymentHandler(orderService)
	reviewHandler := review.NewReviewHandler(reviewService)
	adminHandler := admin.NewAdminHandler(userService, orderService, statsService)
	bannerHandler := admin.NewBannerHandler(bannerService, uploader)
	blogHandler := admin.NewBlogHandler(blogService, uploader)
	exportHandler := admin.NewExportHandler(productService, orderService)

	errorMonitor := middleware.NewErrorMonitor()

	r := gin.Default()
	r.Use(middleware.RecoveryMiddleware())
	r.Use(middleware.ErrorMonitorMiddleware(errorMonitor))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{config.AppConfig.FrontendURL}
	corsConfig.AllowCredentials = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	// CORS cho file tĩnh
	r.Use(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/uploads/") {
			c.Header("Access-Control-Allow-Origin", config.AppConfig.FrontendURL)
			c.Header("Access-Control-Allow-Methods", "GET, OPTIONS")
			if c.Request.Method == "OPTIONS" {
				c.AbortWithStatus(200)
				return
			}
		}
		c.Next()
	})
	r.Static("/uploads", config.AppConfig.LocalStoragePath)

	api := r.Group("/api")
	{
		// Tài khoản
		api.POST("/register", authHandler.Register)
		api.POST("/login", authHandler.Login)
		api.POST("/admin/login", authHandler.AdminLogin)
		api.GET("/verify-email", authHandler.VerifyEmail)
		api.POST("/forgot-password", authHandler.ForgotPassword)
		api.POST("/reset-password", authHandler.ResetPassword)

		// Cửa hàng công khai
		api.GET("/products", productHandler.ListProducts)
		api.GET("/products/:id", productHandler.GetProduct)
		api.GET("/products/:id/reviews", reviewHandler.ListByProduct)
		api.GET("/categories", categoryHandler.ListCategories)
		api.GET("/categories/:id", categoryHandler.GetCategory)
		api.GET("/banners", bannerHandler.ListActiveBanners)
		api.GET("/posts", blogHandler.ListPublished)
		api.GET("/posts/:id", blogHandler.GetPost)

		// Callback từ VNPay, xác thực bằng chữ ký chứ không bằng token
		api.GET("/payment/vnpay-return", paymentHandler.VNPayReturn)

		// Cần đăng nhập
		authorized := api.Group("/")
		authorized.Use(middleware.AuthMiddleware(userService))
		{
			authorized.POST("/logout", authHandler.Logout)
			authorized.POST("/refresh-token", authHandler.RefreshToken)
			authorized.GET("/profile", profileHandler.GetProfile)
			authorized.PUT("/profile", profileHandler.UpdateProfile)
			authorized.PUT("/profile/password", profileHandler.ChangePassword)
			authorized.POST("/profile/avatar", profileHandler.UploadAvatar)
			authorized.DELETE("/account", profileHandler.DeleteAccount)

			authorized.GET("/cart", cartHandler.GetCart)
			authorized.POST("/cart/items", cartHandler.AddItem)
			authorized.PUT("/cart/items/:product_id", cartHandler.UpdateItem)
			authorized.DELETE("/cart/items/:product_id", cartHandler.RemoveItem)
			authorized.DELETE("/cart", cartHandler.ClearCart)

			authorized.POST("/orders", orderHandler.Checkout)
			authorized.GET("/orders", orderHandler.ListMyOrders)
			authorized.GET("/orders/:id", orderHandler.GetOrder)
			authorized.POST("/orders/:id/cancel", orderHandler.CancelOrder)
			authorized.POST("/orders/:id/payment", paymentHandler.CreatePayment)

			authorized.POST("/products/:id/reviews", reviewHandler.CreateReview)
			authorized.POST("/reviews/:id/reply", reviewHandler.ReplyReview)
			authorized.PUT("/reviews/:id", reviewHandler.UpdateReview)
			authorized.DELETE("/reviews/:id", reviewHandler.DeleteReview)
		}

		// Quản trị
		adminRoutes := api.Group("/admin")
		adminRoutes.Use(middleware.AuthMiddleware(userService), middleware.AdminMiddleware(userService))
		{
			adminRoutes.GET("/dashboard", adminHandler.GetDashboard)
			adminRoutes.GET("/feed", hub.Handle)

			adminRoutes.GET("/users", adminHandler.ListUsers)
			adminRoutes.PUT("/users/:id/role", adminHandler.UpdateUserRole)
			adminRoutes.DELETE("/users/:id", adminHandler.DeleteUser)
			adminRoutes.DELETE("/users/:id/purge", adminHandler.PurgeUser)

			adminRoutes.POST("/products", productHandler.CreateProduct)
			adminRoutes.PUT("/products/:id", productHandler.UpdateProduct)
			adminRoutes.DELETE("/products/:id", productHandler.DeleteProduct)
			adminRoutes.DELETE("/products/:id/purge", productHandler.PurgeProduct)
			adminRoutes.GET("/products", productHandler.ListProducts)

			adminRoutes.POST("/categories", categoryHandler.CreateCategory)
			adminRoutes.PUT("/categories/:id", categoryHandler.UpdateCategory)
			adminRoutes.DELETE("/categories/:id", categoryHandler.DeleteCategory)

			adminRoutes.GET("/orders", adminHandler.ListOrders)
			adminRoutes.GET("/orders/:id", adminHandler.GetOrder)
			adminRoutes.PATCH("/orders/:id/status", adminHandler.UpdateOrderStatus)

			adminRoutes.PUT("/reviews/:id", reviewHandler.UpdateReview)
			adminRoutes.DELETE("/reviews/:id", reviewHandler.DeleteReview)

			adminRoutes.GET("/banners", bannerHandler.ListAllBanners)
			adminRoutes.POST("/banners", bannerHandler.CreateBanner)
			adminRoutes.PUT("/banners/:id", bannerHandler.UpdateBanner)
			adminRoutes.DELETE("/banners/:id", bannerHandler.DeleteBanner)

			adminRoutes.GET("/posts", blogHandler.ListAll)
			adminRoutes.POST("/posts", blogHandler.CreatePost)
			adminRoutes.PUT("/posts/:id", blogHandler.UpdatePost)
			adminRoutes.DELETE("/posts/:id", blogHandler.DeletePost)
			adminRoutes.DELETE("/posts/:id/purge", blogHandler.PurgePost)

			adminRoutes.GET("/export/products", exportHandler.ExportProducts)
			adminRoutes.GET("/export/orders", exportHandler.ExportOrders)
		}
	}

	srv := &http.Server{
		Addr:    ":" + config.AppConfig.ServerPort,
		Handler: r,
	}

	go func() {
		util.Logger.Info("Server đang lắng nghe", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			util.Logger.Fatal("Khởi động server thất bại", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	util.Logger.Info("Đang tắt server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		util.Logger.Fatal("Server bị buộc dừng", zap.Error(err))
	}
	util.Logger.Info("Server đã tắt an toàn")
}

// runMigrations chạy các migration còn thiếu lúc khởi động
func runMigrations(db *sql.DB) {
	driver, err := migratemysql.WithInstance(db, &migratemysql.Config{})
	if err != nil {
		util.Logger.Fatal("Khởi tạo driver migration thất bại", zap.Error(err))
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://"+config.AppConfig.MigrationsPath,
		"mysql",
		driver,
	)
	if err != nil {
		util.Logger.Fatal("Khởi tạo migration thất bại", zap.Error(err))
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		util.Logger.Fatal("Chạy migration thất bại", zap.Error(err))
	}
	util.Logger.Info("CSDL đã ở phiên bản mới nhất")
}

// newUploader chọn nơi lưu ảnh theo cấu hình
func newUploader() storage.Uploader {
	switch config.AppConfig.StorageDriver {
	case "s3":
		client, err := storage.NewS3Client(config.AppConfig.S3Region, config.AppConfig.S3Bucket)
		if err != nil {
			util.Logger.Fatal("Khởi tạo S3 thất bại", zap.Error(err))
		}
		return client
	case "gcs":
		client, err := storage.NewGCSClient(config.AppConfig.GCSBucketName, config.AppConfig.GCSCredentialsFile)
		if err != nil {
			util.Logger.Fatal("Khởi tạo GCS thất bại", zap.Error(err))
		}
		return client
	default:
		local, err := storage.NewLocalStorage(config.AppConfig.LocalStoragePath)
		if err != nil {
			util.Logger.Fatal("Khởi tạo lưu trữ local thất bại", zap.Error(err))
		}
		return local
	}
}

// ensureUploadsFolder bảo đảm thư mục uploads tồn tại
func ensureUploadsFolder() {
	uploadsPath := config.AppConfig.LocalStoragePath
	if err := os.MkdirAll(uploadsPath, 0755); err != nil {
		util.Logger.Fatal("Tạo thư mục uploads thất bại", zap.Error(err), zap.String("path", uploadsPath))
	}
}
