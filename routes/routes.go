package routes

import (
	"net/http"
	"time"

	"shootday/handlers"
	"shootday/middleware"
	"shootday/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers login/logout.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api")
	{
		api.POST("/login", hb.LoginHandler)
		api.POST("/logout", hb.LogoutHandler)
	}
}

// RegisterGatewayRoutes registers the generic action proxy and the
// client config document.
func RegisterGatewayRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api")
	{
		api.POST("/gw", hb.ProxyHandler)
		api.GET("/config", hb.ClientConfigHandler)
	}
}

// RegisterBookingRoutes sets up the lock/submit workflow endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	booking := r.Group("/api/booking")
	{
		booking.Use(middleware.SessionAuthMiddleware())
		booking.POST("/lock", hb.LockSlotHandler)
		booking.POST("/submit", hb.SubmitBookingHandler)
		booking.DELETE("/lock/:lockID", hb.CancelLockHandler)
	}
}

// RegisterMyDayRoutes sets up the bookings-list lifecycle endpoints.
func RegisterMyDayRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	myDay := r.Group("/api/myday")
	{
		myDay.Use(middleware.SessionAuthMiddleware())
		myDay.GET("", hb.MyDayHandler)
		myDay.POST("/delete", hb.DeleteBookingHandler)
		myDay.POST("/free", hb.FreeBookingHandler)
		myDay.POST("/edit/lock", hb.EditTeamLockHandler)
		myDay.POST("/edit/submit", hb.EditTeamSubmitHandler)
	}
}

// RegisterAttendanceRoutes sets up the attendance window and writes.
func RegisterAttendanceRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	att := r.Group("/api/attendance")
	{
		att.Use(middleware.SessionAuthMiddleware())
		att.GET("", hb.AttendanceGetHandler)
		att.GET("/window", hb.AttendanceWindowHandler)
		att.POST("", hb.AttendanceSubmitHandler)
	}
}

// RegisterSlotCheckRoutes sets up the read-only availability queries.
func RegisterSlotCheckRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	slots := r.Group("/api/slots")
	{
		slots.Use(middleware.SessionAuthMiddleware())
		slots.POST("/window", hb.SlotWindowHandler)
		slots.POST("/creators", hb.SlotCreatorsHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "health": utils.GetHealthStatus()})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterAuthRoutes(r, hb)
	RegisterGatewayRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterMyDayRoutes(r, hb)
	RegisterAttendanceRoutes(r, hb)
	RegisterSlotCheckRoutes(r, hb)
	RegisterHealthRoute(r)
}
