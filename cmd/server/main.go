package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/emra/admin-console/config"
	"github.com/emra/admin-console/internal/app/controller"
	"github.com/emra/admin-console/internal/app/repository"
	"github.com/emra/admin-console/internal/app/service"
	"github.com/emra/admin-console/internal/middleware"
	"github.com/emra/admin-console/internal/router"
	"github.com/emra/admin-console/internal/scheduler"
	"github.com/emra/admin-console/internal/session"
	"github.com/emra/admin-console/internal/storage"
	"github.com/emra/admin-console/pkg/adminapi"
	"github.com/emra/admin-console/pkg/logger"
	"github.com/emra/admin-console/pkg/redis"
	"github.com/spf13/pflag"
)

func main() {
	port := pflag.StringP("port", "p", "", "HTTP port, overrides SERVER_PORT")
	envFile := pflag.String("env-file", "", "env file to load before the environment")
	pflag.Parse()

	// Load configuration
	var envFiles []string
	if *envFile != "" {
		envFiles = append(envFiles, *envFile)
	}
	cfg, err := config.Load(envFiles...)
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}
	if *port != "" {
		cfg.Server.Port = *port
	}

	// Initialize logger
	logger.Initialize(logger.Config{
		Level:       cfg.LogLevel(),
		Format:      cfg.Log.Format,
		EnableColor: cfg.Server.Environment == "development",
	})

	logger.Info("Starting admin console", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"api":         cfg.API.BaseURL,
		"log_level":   cfg.LogLevel(),
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Session store
	var (
		store       session.Store
		memoryStore *session.MemoryStore
	)
	switch cfg.Session.Store {
	case "redis":
		client, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			logger.Fatal("Failed to initialize session store", err)
		}
		defer func() {
			if err := client.Close(); err != nil {
				logger.Error("Failed to close Redis connection", err)
			}
		}()
		store = session.NewRedisStore(client)
	default:
		memoryStore = session.NewMemoryStore()
		store = memoryStore
	}
	sessions := session.NewManager(store, cfg.Session.MaxAge)

	apiClient, err := adminapi.NewClient(adminapi.Config{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout,
	}, adminapi.WithUnauthorizedHandler(sessions.HandleUnauthorized))
	if err != nil {
		logger.Fatal("Failed to create API client", err)
	}

	// Initialize repositories
	authRepo := repository.NewAuthRepository(apiClient)
	dashboardRepo := repository.NewDashboardRepository(apiClient)
	productRepo := repository.NewProductRepository(apiClient)
	categoryRepo := repository.NewCategoryRepository(apiClient)
	bannerRepo := repository.NewBannerRepository(apiClient)
	orderRepo := repository.NewOrderRepository(apiClient)
	promoCodeRepo := repository.NewPromoCodeRepository(apiClient)
	settingsRepo := repository.NewSettingsRepository(apiClient)

	// Image storage; without a bucket images are inlined as data URLs
	var (
		uploader  service.ImageUploader
		presigner controller.Presigner
	)
	if cfg.S3.Enabled() {
		s3Storage, err := storage.NewS3Storage(ctx, cfg.S3)
		if err != nil {
			logger.Fatal("Failed to initialize S3 storage", err)
		}
		uploader = s3Storage
		presigner = s3Storage
	}

	// Initialize services
	guard := service.NewSubmitGuard()
	authService := service.NewAuthService(authRepo)
	dashboardService := service.NewDashboardService(dashboardRepo)
	productService := service.NewProductService(productRepo, guard)
	categoryService := service.NewCategoryService(categoryRepo, guard)
	bannerService := service.NewBannerService(bannerRepo, guard)
	orderService := service.NewOrderService(orderRepo)
	promoCodeService := service.NewPromoCodeService(promoCodeRepo, guard)
	settingsService := service.NewSettingsService(settingsRepo, guard)
	imageService := service.NewImageService(uploader)

	editors := service.NewBannerEditorRegistry(bannerRepo, productRepo, cfg.Session.EditorIdle)
	sessions.OnDestroy(editors.CloseSession)

	// Initialize controllers
	authController := controller.NewAuthController(authService, sessions, controller.CookieConfig{
		Name:   cfg.Session.CookieName,
		Secure: cfg.Session.SecureCookie,
	})
	dashboardController := controller.NewDashboardController(dashboardService)
	productController := controller.NewProductController(productService, categoryService)
	categoryController := controller.NewCategoryController(categoryService)
	bannerController := controller.NewBannerController(bannerService, editors)
	orderController := controller.NewOrderController(orderService)
	promoCodeController := controller.NewPromoCodeController(promoCodeService)
	settingsController := controller.NewSettingsController(settingsService)
	uploadController := controller.NewUploadController(imageService, presigner)

	sessionMiddleware := middleware.NewSessionMiddleware(sessions, cfg.Session.CookieName)

	// Setup router
	r := router.NewRouter(
		authController,
		dashboardController,
		productController,
		categoryController,
		bannerController,
		orderController,
		promoCodeController,
		settingsController,
		uploadController,
		sessionMiddleware,
		cfg,
	)
	engine := r.Setup()

	// Periodic cleanup of idle editors and, for the memory store, expired sessions
	sweepers := map[string]scheduler.Sweeper{
		"banner_editors": editors,
	}
	if memoryStore != nil {
		sweepers["sessions"] = memoryStore
	}
	sweeps := scheduler.NewSweepScheduler(cfg.Session.SweepSpec, sweepers)
	if err := sweeps.Start(); err != nil {
		logger.Fatal("Failed to start sweep scheduler", err)
	}
	defer sweeps.Stop()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: engine,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server started successfully", map[string]interface{}{
			"address": srv.Addr,
			"pid":     os.Getpid(),
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", err)
		}
	}()

	<-ctx.Done()

	logger.Info("Shutting down server gracefully...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", err)
	}
	logger.Info("Server stopped successfully")
}
