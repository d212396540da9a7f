package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/order-dashboard/config"
	"github.com/yeremiapane/order-dashboard/controllers"
	"github.com/yeremiapane/order-dashboard/hub"
	"github.com/yeremiapane/order-dashboard/middlewares"
	"github.com/yeremiapane/order-dashboard/services"
)

func SetupRouter(cfg *config.Config, dashboard *services.Dashboard, auth *services.AuthService, h *hub.Hub) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares(cfg.CORSOrigin))
	r.Use(middlewares.LoggerMiddleware())

	sessionCtrl := controllers.NewSessionController(dashboard, auth)
	restaurantCtrl := controllers.NewRestaurantController(auth)
	dashboardCtrl := controllers.NewDashboardController(dashboard, h, cfg.CORSOrigin)
	orderCtrl := controllers.NewOrderController(dashboard)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	limiter := middlewares.NewRateLimiter(cfg.SigninRatePerMinute)
	public := r.Group("/")
	public.Use(limiter.RateLimit())
	{
		public.POST("/signin", sessionCtrl.SignIn)
		public.POST("/signup", sessionCtrl.SignUp)
	}

	r.GET("/restaurants", restaurantCtrl.GetRestaurants)
	r.GET("/session", sessionCtrl.GetSession)
	r.POST("/signout", sessionCtrl.SignOut)

	// ----------------------------------------------------------------
	//                      SIGNED-IN ROUTES
	// ----------------------------------------------------------------
	signedIn := r.Group("/")
	signedIn.Use(middlewares.SessionRequired(dashboard))
	{
		signedIn.GET("/dashboard", dashboardCtrl.GetDashboard)
		signedIn.PUT("/dashboard/filter", dashboardCtrl.SetFilter)

		signedIn.GET("/orders", orderCtrl.GetOrders)
		signedIn.POST("/orders/refresh", orderCtrl.Refresh)
		signedIn.PUT("/orders/:order_id/complete", middlewares.OrderActionLogger(), orderCtrl.CompleteOrder)

		signedIn.GET("/ws/dashboard", middlewares.WebSocketOnly(), dashboardCtrl.Stream)
	}

	return r
}
