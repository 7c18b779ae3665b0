package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/gastro-os/controllers"
	"github.com/yeremiapane/gastro-os/metrics"
	"github.com/yeremiapane/gastro-os/middlewares"
	"github.com/yeremiapane/gastro-os/realtime"
	"github.com/yeremiapane/gastro-os/services"
	"github.com/yeremiapane/gastro-os/utils"
	"gorm.io/gorm"
)

// Options tunes the router. The zero value is usable.
type Options struct {
	Layouts        *services.LayoutService
	Hub            *realtime.Hub
	TokenTTL       time.Duration
	CORSOrigins    []string
	TrustedProxies []string

	RequestsPerSecond float64
	Burst             int
}

func SetupRouter(db *gorm.DB, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	if len(opts.TrustedProxies) > 0 {
		if err := r.SetTrustedProxies(opts.TrustedProxies); err != nil {
			utils.ErrorLogger.WithError(err).Error("invalid trusted proxies")
		}
	}

	salon := services.NewSalonService(db)
	if opts.Layouts == nil {
		opts.Layouts = services.NewLayoutService(salon, services.WithLayoutObserver(metrics.Observer{}))
	}
	if opts.Hub == nil {
		opts.Hub = realtime.Default()
	}
	if opts.RequestsPerSecond <= 0 {
		opts.RequestsPerSecond, opts.Burst = 50, 100
	}

	// Apply global middlewares
	r.Use(middlewares.RequestID())
	r.Use(middlewares.LoggerMiddleware())
	r.Use(metrics.Middleware())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares(opts.CORSOrigins))
	r.Use(middlewares.NewRateLimiter(opts.RequestsPerSecond, opts.Burst).RateLimit())

	userController := controllers.NewUserController(db, opts.TokenTTL)
	salonController := controllers.NewSalonController(salon, opts.Hub)
	layoutController := controllers.NewLayoutController(opts.Layouts)
	adminController := controllers.NewAdminController(salon)

	// Public routes
	r.GET("/ping", func(c *gin.Context) {
		utils.RespondJSON(c, http.StatusOK, "pong", nil)
	})
	r.GET("/metrics", metrics.Handler())

	authLimiter := middlewares.NewStrictRateLimiter()
	r.POST("/register", authLimiter.RateLimit(), userController.Register)
	r.POST("/login", authLimiter.RateLimit(), userController.Login)

	// Websocket: the browser cannot send headers on upgrade
	r.GET("/ws/salon", middlewares.WebSocketAuthMiddleware(), controllers.SalonSocketHandler(opts.Hub))

	// Every authenticated role
	auth := r.Group("/")
	auth.Use(middlewares.AuthMiddleware(), middlewares.PathAccess())
	{
		auth.GET("/profile", userController.GetProfile)
		auth.POST("/logout", userController.Logout)
	}

	// Owner and manager
	admin := auth.Group("/admin")
	{
		admin.GET("/users", userController.GetAllUsers)
		admin.POST("/users", userController.CreateStaff)
		admin.GET("/dashboard/stats", adminController.GetDashboardStats)

		salonRoutes := admin.Group("/salon")
		{
			salonRoutes.GET("/floors", salonController.ListFloors)
			salonRoutes.POST("/floors", salonController.CreateFloor)
			salonRoutes.PATCH("/floors/:floor_id", salonController.UpdateFloor)
			salonRoutes.DELETE("/floors/:floor_id", salonController.DeleteFloor)

			salonRoutes.GET("/tables", salonController.ListTables)
			salonRoutes.POST("/tables", salonController.CreateTable)
			salonRoutes.PATCH("/tables/:table_id", salonController.UpdateTable)
			salonRoutes.PATCH("/tables/:table_id/status", salonController.UpdateTableStatus)
			salonRoutes.DELETE("/tables/:table_id", salonController.DeleteTable)

			salonRoutes.GET("/labels", salonController.ListLabels)
			salonRoutes.POST("/labels", salonController.CreateLabel)
			salonRoutes.PATCH("/labels/:label_id", salonController.UpdateLabel)
			salonRoutes.DELETE("/labels/:label_id", salonController.DeleteLabel)

			layout := salonRoutes.Group("/floors/:floor_id")
			{
				layout.GET("/layout", layoutController.GetLayout)
				layout.POST("/drag/begin", layoutController.BeginDrag)
				layout.POST("/drag/move", layoutController.MoveDrag)
				layout.POST("/drag/end", layoutController.EndDrag)
				layout.POST("/drag/abandon", layoutController.AbandonDrag)
				layout.POST("/merge", layoutController.Merge)
				layout.POST("/ungroup", layoutController.Ungroup)
				layout.POST("/tables/:table_id/shape", layoutController.ChangeShape)
				layout.POST("/labels", layoutController.AddLabel)
				layout.DELETE("/labels/:label_id", layoutController.RemoveLabel)
			}
		}
	}

	// Service floor: owner, manager and waiter
	pos := auth.Group("/pos")
	{
		pos.GET("/salon/floors", salonController.ListFloors)
		pos.GET("/salon/tables", salonController.ListTables)
		pos.PATCH("/tables/:table_id/status", salonController.UpdateTableStatus)
	}

	// Kitchen: owner, manager and cook
	kitchen := auth.Group("/kitchen")
	{
		kitchen.GET("/salon/tables", salonController.ListTables)
	}

	return r
}
