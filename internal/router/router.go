package router

import (
	"github.com/emra/admin-console/config"
	"github.com/emra/admin-console/internal/app/controller"
	"github.com/emra/admin-console/internal/middleware"
	"github.com/gin-gonic/gin"
)

type Router struct {
	authController      *controller.AuthController
	dashboardController *controller.DashboardController
	productController   *controller.ProductController
	categoryController  *controller.CategoryController
	bannerController    *controller.BannerController
	orderController     *controller.OrderController
	promoCodeController *controller.PromoCodeController
	settingsController  *controller.SettingsController
	uploadController    *controller.UploadController
	sessionMiddleware   *middleware.SessionMiddleware
	config              *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	dashboardController *controller.DashboardController,
	productController *controller.ProductController,
	categoryController *controller.CategoryController,
	bannerController *controller.BannerController,
	orderController *controller.OrderController,
	promoCodeController *controller.PromoCodeController,
	settingsController *controller.SettingsController,
	uploadController *controller.UploadController,
	sessionMiddleware *middleware.SessionMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:      authController,
		dashboardController: dashboardController,
		productController:   productController,
		categoryController:  categoryController,
		bannerController:    bannerController,
		orderController:     orderController,
		promoCodeController: promoCodeController,
		settingsController:  settingsController,
		uploadController:    uploadController,
		sessionMiddleware:   sessionMiddleware,
		config:              cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "Admin console is running",
		})
	})

	router.GET("/login", r.sessionMiddleware.RedirectIfAuthenticated(), r.authController.LoginPage)
	router.POST("/login", r.authController.Login)
	router.POST("/logout", r.authController.Logout)

	console := router.Group("")
	console.Use(r.sessionMiddleware.RequireSession())
	{
		console.GET("/", r.dashboardController.GetStats)
		console.GET("/dashboard", r.dashboardController.GetStats)
		console.GET("/me", r.authController.Me)

		products := console.Group("/products")
		{
			products.GET("", r.productController.ListProducts)
			products.GET("/:id", r.productController.GetProduct)
			products.POST("", r.productController.CreateProduct)
			products.PUT("/:id", r.productController.UpdateProduct)
			products.DELETE("/:id", r.productController.DeleteProduct)
			products.PATCH("/:id/stock", r.productController.UpdateStock)
			products.PATCH("/:id/toggle", r.productController.ToggleProduct)
		}

		categories := console.Group("/categories")
		{
			categories.GET("", r.categoryController.ListCategories)
			categories.GET("/slug", r.categoryController.SuggestSlug)
			categories.POST("", r.categoryController.CreateCategory)
			categories.PUT("/:id", r.categoryController.UpdateCategory)
			categories.PATCH("/:id/toggle", r.categoryController.ToggleCategory)
			categories.DELETE("/:id", r.categoryController.DeleteCategory)
			categories.POST("/:id/move-up", r.categoryController.MoveCategoryUp)
			categories.POST("/:id/move-down", r.categoryController.MoveCategoryDown)
		}

		banners := console.Group("/banners")
		{
			banners.GET("", r.bannerController.ListBanners)
			banners.GET("/:id", r.bannerController.GetBanner)
			banners.POST("", r.bannerController.CreateBanner)
			banners.PUT("/:id", r.bannerController.UpdateBanner)
			banners.PATCH("/:id/toggle", r.bannerController.ToggleBanner)
			banners.DELETE("/:id", r.bannerController.DeleteBanner)
			banners.POST("/:id/move-up", r.bannerController.MoveBannerUp)
			banners.POST("/:id/move-down", r.bannerController.MoveBannerDown)

			editor := banners.Group("/:id/editor")
			{
				editor.POST("", r.bannerController.OpenEditor)
				editor.GET("", r.bannerController.GetEditor)
				editor.DELETE("", r.bannerController.CloseEditor)
				editor.POST("/products", r.bannerController.AttachProduct)
				editor.DELETE("/products/:productId", r.bannerController.DetachProduct)
				editor.POST("/products/:productId/move", r.bannerController.MoveAttachedProduct)
			}
		}

		orders := console.Group("/orders")
		{
			orders.GET("", r.orderController.ListOrders)
			orders.GET("/export", r.orderController.ExportOrders)
			orders.GET("/:id", r.orderController.GetOrder)
			orders.POST("/:id/advance", r.orderController.AdvanceOrder)
			orders.POST("/:id/cancel", r.orderController.CancelOrder)
		}

		promoCodes := console.Group("/promo-codes")
		{
			promoCodes.GET("", r.promoCodeController.ListPromoCodes)
			promoCodes.POST("", r.promoCodeController.CreatePromoCode)
			promoCodes.PUT("/:id", r.promoCodeController.UpdatePromoCode)
			promoCodes.DELETE("/:id", r.promoCodeController.DeletePromoCode)
		}

		console.GET("/settings", r.settingsController.GetSettings)
		console.PUT("/settings", r.settingsController.UpdateSettings)

		uploads := console.Group("/uploads")
		{
			uploads.POST("/image", r.uploadController.UploadImage)
			uploads.POST("/image-url", r.uploadController.AddImageURL)
			uploads.POST("/presigned-url", r.uploadController.GeneratePresignedURL)
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, X-Request-ID, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
