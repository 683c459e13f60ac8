package router

import (
	"path/filepath"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/handsome-restaurant/restaurant-app/config"
	"github.com/handsome-restaurant/restaurant-app/controllers"
	"github.com/handsome-restaurant/restaurant-app/middlewares"
	"github.com/handsome-restaurant/restaurant-app/realtime"
)

func SetupRouter(db *gorm.DB, notifier realtime.Notifier) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	// Rate limiter global (50 request per detik per IP). Harus dipasang
	// sebelum route didaftarkan; Use setelah registrasi tidak pernah masuk
	// ke chain route yang sudah ada.
	r.Use(middlewares.NewRateLimiter(50, 1).RateLimit())

	// Gambar menu yang di-upload
	r.Static("/uploads", filepath.Join("public", "uploads"))

	// Inisialisasi controller
	authCtrl := controllers.NewAuthController(db)
	userCtrl := controllers.NewUserController(db)
	menuCtrl := controllers.NewMenuController(db)
	orderCtrl := controllers.NewOrderController(db, notifier)
	tableCtrl := controllers.NewTableController(db, notifier)
	reportCtrl := controllers.NewReportController(db, config.ReportScope())

	api := r.Group("/api")

	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "message": "Restaurant API is running"})
	})

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------

	// Login dengan rate limiter ketat
	login := api.Group("/auth")
	login.Use(middlewares.NewStrictRateLimiter())
	{
		login.POST("/login", authCtrl.Login)
	}

	// Menu untuk customer
	api.GET("/menu", menuCtrl.GetMenu)
	api.GET("/menu/categories", menuCtrl.GetCategories)

	// Order: customer membuat order tanpa login; kitchen/waiter display
	// membaca dan memajukan status tanpa token (disengaja, lihat DESIGN.md)
	api.GET("/orders", orderCtrl.GetAllOrders)
	api.POST("/orders", orderCtrl.CreateOrder)
	api.PUT("/orders/:order_id/status", orderCtrl.UpdateOrderStatus)
	api.PUT("/orders/:order_id/payment", orderCtrl.UpdatePaymentStatus)

	// Meja untuk waiter/kitchen display
	api.GET("/tables", tableCtrl.GetAllTables)

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := api.Group("/")
	auth.Use(middlewares.AuthMiddleware(db))
	{
		auth.GET("/auth/me", authCtrl.Me)
		auth.GET("/orders/:order_id", orderCtrl.GetOrderByID)
		auth.PUT("/orders/:order_id", orderCtrl.AddOrderItems)
		auth.GET("/tables/:table_id", tableCtrl.GetTableByID)
	}

	// ----------------------------------------------------------------
	//                      ADMIN ROUTES
	// ----------------------------------------------------------------
	admin := api.Group("/")
	admin.Use(middlewares.AuthMiddleware(db), middlewares.AdminOnly())
	{
		// USERS
		admin.GET("/users", userCtrl.GetAllUsers)
		admin.GET("/users/:user_id", userCtrl.GetUserByID)
		admin.POST("/users", userCtrl.CreateUser)
		admin.PUT("/users/:user_id", userCtrl.UpdateUser)
		admin.DELETE("/users/:user_id", userCtrl.DeleteUser)

		// MENU
		admin.GET("/menu/:menu_id", menuCtrl.GetMenuItemByID)
		admin.POST("/menu", menuCtrl.CreateMenuItem)
		admin.PUT("/menu/:menu_id", menuCtrl.UpdateMenuItem)
		admin.DELETE("/menu/:menu_id", menuCtrl.DeleteMenuItem)

		// TABLES
		admin.POST("/tables", tableCtrl.CreateTable)
		admin.PUT("/tables/:table_id", tableCtrl.UpdateTable)
		admin.DELETE("/tables/:table_id", tableCtrl.DeleteTable)

		// REPORTS
		admin.GET("/reports/daily", reportCtrl.DailyReport)
		admin.GET("/reports/monthly", reportCtrl.MonthlyReport)
		admin.GET("/reports/top-selling", reportCtrl.TopSelling)
		admin.GET("/reports/history", reportCtrl.OrderHistory)
	}

	return r
}

// SetupRouterWithHub wires the websocket endpoint in addition to the HTTP
// surface. Deployments without a push channel call SetupRouter with the
// no-op notifier instead.
func SetupRouterWithHub(db *gorm.DB, hub *realtime.Hub) *gin.Engine {
	r := SetupRouter(db, hub)

	wsCtrl := controllers.NewWSController(hub)
	r.GET("/ws", wsCtrl.Handle)

	return r
}
