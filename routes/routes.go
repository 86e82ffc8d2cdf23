package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"storefront/controllers"
	"storefront/middleware"
	"storefront/services"
)

type Options struct {
	Registry      *services.WorkspaceRegistry
	LocalesDir    string
	MaxUploadSize int64
	SecureCookies bool
}

func SetupRoutes(router *gin.Engine, opts Options) {
	productCtrl := &controllers.ProductController{}
	categoryCtrl := &controllers.CategoryController{}
	cartCtrl := &controllers.CartController{}
	orderCtrl := &controllers.OrderController{}
	authCtrl := &controllers.AuthController{}
	pageCtrl := &controllers.PageController{}
	manageCtrl := &controllers.ManageController{MaxUploadSize: opts.MaxUploadSize}

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	if opts.LocalesDir != "" {
		router.Static("/locales", opts.LocalesDir)
	}

	shell := router.Group("/")
	shell.Use(middleware.WorkspaceMiddleware(opts.Registry, opts.SecureCookies))
	{
		shell.GET("/", productCtrl.Home)
		shell.GET("/products", productCtrl.GetAllProducts)
		shell.GET("/products/:id", productCtrl.GetProductByID)
		shell.GET("/categories", categoryCtrl.GetAllCategories)
		shell.GET("/pages/:slug", pageCtrl.GetPage)
		shell.POST("/locale", pageCtrl.SetLocale)

		shell.GET("/cart", cartCtrl.GetCart)
		shell.DELETE("/cart", cartCtrl.ClearCart)
		shell.POST("/cart/items", cartCtrl.AddItem)
		shell.PATCH("/cart/items/:productId", cartCtrl.UpdateItem)
		shell.DELETE("/cart/items/:productId", cartCtrl.RemoveItem)
		shell.POST("/cart/checkout", middleware.RequireCustomer(), orderCtrl.Checkout)

		shell.POST("/auth/login", authCtrl.Login)
		shell.POST("/auth/signup", authCtrl.Signup)
		shell.POST("/auth/logout", authCtrl.Logout)
		shell.GET("/auth/me", authCtrl.Me)
	}

	manage := shell.Group("/manage")
	manage.Use(middleware.RequireEmployee())
	{
		manage.PATCH("/orders/:id/status", orderCtrl.UpdateOrderStatus)
		manage.POST("/products/:id/images", manageCtrl.UploadProductImage)

		manage.GET("/:entity", manageCtrl.List)
		manage.POST("/:entity", manageCtrl.Create)
		manage.PUT("/:entity/filters", manageCtrl.SetFilters)
		manage.POST("/:entity/filters/apply", manageCtrl.ApplyFilters)
		manage.POST("/:entity/sort/:column", manageCtrl.ToggleSort)
		manage.PUT("/:entity/:id", manageCtrl.Update)
		manage.DELETE("/:entity/:id", manageCtrl.Delete)
	}
}
