package router

import (
	"time"

	"rentoasis/internal/database"
	"rentoasis/internal/handlers"
	"rentoasis/internal/middleware"
	"rentoasis/internal/models"
	"rentoasis/internal/services"
	"rentoasis/pkg/response"

	"github.com/gin-gonic/gin"
)

// SetupRouter 设置路由
func SetupRouter() *gin.Engine {
	router := gin.New()

	// 中间件
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.SetupCORS())

	// 注册路由
	registerRoutes(router)
	return router
}

// 注册所有路由
func registerRoutes(router *gin.Engine) {
	db := database.GetDB()
	redisQueue := database.GetRedisQueue()

	userService := services.NewUserService(db)
	notificationService := services.NewNotificationService(db, redisQueue)
	propertyService := services.NewPropertyService(db)
	unitService := services.NewUnitService(db)
	paymentService := services.NewPaymentService(db, notificationService)
	dashboardService := services.NewDashboardService(db, paymentService)

	auth := middleware.NewAuthMiddleware(userService)

	// API路由组
	api := router.Group("/api/v1")
	{
		// 健康检查接口
		api.GET("/health", healthCheck)
		api.GET("/ping", ping)

		// JWT认证路由（无需认证）
		authHandler := handlers.NewAuthHandler(userService)
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/login", authHandler.Login)          // 用户登录
			authGroup.POST("/signup", authHandler.Signup)        // 用户注册
			authGroup.POST("/logout", authHandler.Logout)        // 用户登出
			authGroup.POST("/refresh", authHandler.RefreshToken) // 刷新Token

			// 获取当前用户信息
			authGroup.GET("/me", auth.RequireLogin(), authHandler.Me)
		}

		// 物业路由（只有房东可以管理）
		propertyHandler := handlers.NewPropertyHandler(propertyService)
		unitHandler := handlers.NewUnitHandler(unitService)
		properties := api.Group("/properties")
		{
			properties.POST("", auth.RequireLogin(), auth.RequireRole(models.RoleLandlord), propertyHandler.Create)
			properties.GET("", auth.RequireLogin(), auth.RequireRole(models.RoleLandlord), propertyHandler.GetAll)
			properties.GET("/:id", auth.RequireLogin(), propertyHandler.GetByID)
			properties.PUT("/:id", auth.RequireLogin(), auth.RequireRole(models.RoleLandlord), propertyHandler.Update)
			properties.DELETE("/:id", auth.RequireLogin(), auth.RequireRole(models.RoleLandlord), propertyHandler.Delete)

			// 物业下的单元
			properties.POST("/:id/units", auth.RequireLogin(), auth.RequireRole(models.RoleLandlord), unitHandler.Create)
			properties.GET("/:id/units", auth.RequireLogin(), unitHandler.GetByProperty)
		}

		// 单元路由
		units := api.Group("/units")
		{
			units.GET("/mine", auth.RequireLogin(), auth.RequireRole(models.RoleTenant), unitHandler.GetMine)
			units.PUT("/:id", auth.RequireLogin(), auth.RequireRole(models.RoleLandlord), unitHandler.Update)
			units.POST("/:id/assign", auth.RequireLogin(), auth.RequireRole(models.RoleLandlord), unitHandler.AssignTenant)
			units.POST("/:id/vacate", auth.RequireLogin(), auth.RequireRole(models.RoleLandlord), unitHandler.Vacate)
		}

		// 租金账单路由
		paymentHandler := handlers.NewPaymentHandler(paymentService)
		payments := api.Group("/payments")
		{
			payments.POST("", auth.RequireLogin(), auth.RequireRole(models.RoleLandlord), paymentHandler.Create)
			payments.GET("/mine", auth.RequireLogin(), auth.RequireRole(models.RoleTenant), paymentHandler.GetMine)
			payments.GET("/next", auth.RequireLogin(), auth.RequireRole(models.RoleTenant), paymentHandler.Next)
			payments.GET("/tracker", auth.RequireLogin(), paymentHandler.Tracker)
			payments.POST("/:id/pay", auth.RequireLogin(), auth.RequireRole(models.RoleTenant), paymentHandler.Pay)
		}

		// 通知路由
		notificationHandler := handlers.NewNotificationHandler(notificationService)
		notifications := api.Group("/notifications")
		{
			notifications.GET("", auth.RequireLogin(), notificationHandler.GetMine)
			notifications.GET("/unread-count", auth.RequireLogin(), notificationHandler.UnreadCount)
			notifications.POST("/:id/read", auth.RequireLogin(), notificationHandler.MarkRead)
			notifications.POST("/read-all", auth.RequireLogin(), notificationHandler.MarkAllRead)
		}

		// 仪表盘路由
		dashboardHandler := handlers.NewDashboardHandler(dashboardService)
		api.GET("/dashboard", auth.RequireLogin(), dashboardHandler.Overview)

		// WebSocket通知流（令牌走查询参数）
		wsHandler := handlers.NewWebSocketHandler(redisQueue)
		api.GET("/ws/notifications", wsHandler.Notifications)
	}
}

// healthCheck 健康检查
func healthCheck(c *gin.Context) {
	data := map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now(),
		"service":   "RentOasis",
		"version":   "1.0.0",
	}
	response.Success(c, data)
}

func ping(c *gin.Context) {
	response.SuccessWithMessage(c, "pong", nil)
}
