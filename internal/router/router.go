package router

import (
	"strings"
	"time"

	"pmp/internal/handlers"
	"pmp/internal/middleware"
	"pmp/internal/portal"
	"pmp/internal/services"
	"pmp/pkg/response"
	"pmp/pkg/textutil"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// SetupRouter 设置路由
func SetupRouter() *gin.Engine {
	registerValidations()

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

// registerValidations 注册自定义参数校验规则
// roomnumber: 房间号规范化后不能为空白
func registerValidations() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("roomnumber", func(fl validator.FieldLevel) bool {
			normalized := textutil.NormalizeRoomNumber(fl.Field().String())
			return strings.TrimSpace(normalized) != ""
		})
	}
}

// 注册所有路由
func registerRoutes(router *gin.Engine) {

	auth := middleware.NewAuthMiddleware()
	userService := services.NewUserService()

	// API路由组
	api := router.Group("/api/v1")
	{
		// 健康检查接口
		api.GET("/health", healthCheck)
		api.GET("/ping", ping)

		// 门户入口（无需认证）
		portalHandler := handlers.NewPortalHandler()
		api.GET("/portal/entry", portalHandler.Entry)

		// 认证路由
		authHandler := handlers.NewAuthHandler(userService)
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/logout", authHandler.Logout)
			authGroup.POST("/refresh", authHandler.RefreshToken)
			authGroup.GET("/me", auth.RequireLogin(), authHandler.Me)
		}

		// 导航与视图切换（任意已登录角色）
		api.GET("/portal/navigation", auth.RequireLogin(), portalHandler.Navigation)
		api.GET("/portal/navigate/:view", auth.RequireLogin(), portalHandler.Navigate)

		// 通知中心（任意已登录角色）
		notificationHandler := handlers.NewNotificationHandler(services.NewNotificationService())
		notifications := api.Group("/notifications", auth.RequireLogin())
		{
			notifications.GET("", notificationHandler.List)
			notifications.GET("/unread-count", notificationHandler.UnreadCount)
			notifications.POST("/:id/read", notificationHandler.MarkRead)
			notifications.POST("/read-all", notificationHandler.MarkAllRead)
		}

		// 通知实时推送（token走查询参数）
		wsHandler := handlers.NewWebSocketHandler()
		api.GET("/ws/notifications", wsHandler.NotificationStream)

		// 后台路由：登录 + 视图权限 + 数据范围
		staff := func(view portal.View) []gin.HandlerFunc {
			return []gin.HandlerFunc{
				auth.RequireLogin(),
				auth.RequireStaff(),
				auth.RequireView(view),
				auth.ResolveScope(),
			}
		}

		// 仪表盘
		dashboardHandler := handlers.NewDashboardHandler(services.NewDashboardService())
		api.GET("/dashboard/stats", append(staff(portal.ViewDashboard), dashboardHandler.Stats)...)
		api.GET("/finance/summary", append(staff(portal.ViewFinance), dashboardHandler.Finance)...)

		// 报表下载（仅管理员视图）
		reportHandler := handlers.NewReportHandler(services.NewReportService())
		api.GET("/reports/property", append(staff(portal.ViewReport), reportHandler.PropertyReport)...)

		// 物业管理（仅管理员视图）
		propertyHandler := handlers.NewPropertyHandler(services.NewPropertyService(), userService)
		properties := api.Group("/properties", staff(portal.ViewProperty)...)
		{
			properties.POST("", propertyHandler.Create)
			properties.GET("", propertyHandler.List)
			properties.GET("/:id", propertyHandler.Get)
			properties.PUT("/:id", propertyHandler.Update)
			properties.DELETE("/:id", propertyHandler.Delete)
			properties.POST("/:id/assign", propertyHandler.AssignManager)
			properties.POST("/:id/unassign", propertyHandler.UnassignManager)
		}

		// 房间管理
		roomHandler := handlers.NewRoomHandler(services.NewRoomService())
		rooms := api.Group("/rooms", staff(portal.ViewRoom)...)
		{
			rooms.POST("", roomHandler.Create)
			rooms.GET("", roomHandler.List)
			rooms.GET("/:id", roomHandler.Get)
			rooms.PUT("/:id", roomHandler.Update)
			rooms.DELETE("/:id", roomHandler.Delete)
		}

		// 住户管理
		residentHandler := handlers.NewResidentHandler(
			services.NewResidentService(), services.NewContractService(), userService)
		residents := api.Group("/residents", staff(portal.ViewResident)...)
		{
			residents.POST("", residentHandler.Create)
			residents.GET("", residentHandler.List)
			residents.GET("/:id", residentHandler.Get)
			residents.PUT("/:id", residentHandler.Update)
			residents.POST("/:id/deactivate", residentHandler.Deactivate)
			residents.DELETE("/:id", residentHandler.Delete)
			residents.POST("/:id/account", residentHandler.CreateAccount)
		}

		// 合同管理
		contractHandler := handlers.NewContractHandler(services.NewContractService())
		contracts := api.Group("/contracts", staff(portal.ViewContract)...)
		{
			contracts.POST("", contractHandler.Create)
			contracts.GET("", contractHandler.List)
			contracts.GET("/:id", contractHandler.Get)
			contracts.PUT("/:id/dates", contractHandler.UpdateDates)
			contracts.PUT("/:id/steps/:step_id", contractHandler.UpdateStep)
			contracts.DELETE("/:id", contractHandler.Delete)
		}

		// 维修管理
		repairHandler := handlers.NewRepairHandler(services.NewRepairService())
		repairs := api.Group("/repairs", staff(portal.ViewRepair)...)
		{
			repairs.POST("", repairHandler.Create)
			repairs.GET("", repairHandler.List)
			repairs.GET("/:id", repairHandler.Get)
			repairs.PUT("/:id/status", repairHandler.UpdateStatus)
			repairs.DELETE("/:id", repairHandler.Delete)
		}

		// 住户申请（后台侧）
		requestHandler := handlers.NewRequestHandler(services.NewRequestService())
		requests := api.Group("/requests", staff(portal.ViewResidentRequest)...)
		{
			requests.GET("", requestHandler.List)
			requests.GET("/unread-count", requestHandler.UnreadCount)
			requests.GET("/:id", requestHandler.Get)
			requests.POST("/:id/acknowledge", requestHandler.Acknowledge)
			requests.POST("/:id/resolve", requestHandler.Resolve)
		}

		// 住户门户
		myHandler := handlers.NewMyHandler(
			services.NewResidentService(), services.NewContractService(),
			services.NewRepairService(), services.NewRequestService())
		my := api.Group("/my",
			auth.RequireLogin(),
			auth.RequireView(portal.ViewResidentPortal),
			auth.RequireResident())
		{
			my.GET("/profile", myHandler.Profile)
			my.GET("/contracts", myHandler.Contracts)
			my.GET("/repairs", myHandler.Repairs)
			my.GET("/requests", myHandler.Requests)
			my.POST("/requests", myHandler.SubmitRequest)
		}
	}
}

// healthCheck 健康检查
func healthCheck(c *gin.Context) {
	response.Success(c, gin.H{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	})
}

// ping 连通性测试
func ping(c *gin.Context) {
	response.Success(c, gin.H{"message": "pong"})
}
