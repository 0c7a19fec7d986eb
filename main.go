// File: shootday/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shootday/config"
	"shootday/cron"
	"shootday/handlers"
	"shootday/middleware"
	"shootday/routes"
	"shootday/services/attendance"
	"shootday/services/gateway"
	"shootday/services/myday"
	"shootday/services/slotcheck"
	"shootday/services/tasks"
	"shootday/services/workflow"
	"shootday/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	utils.InitRedis()
	utils.StartHealthMonitor([]*redis.Client{
		utils.GetCacheClient(),
		utils.GetSessionCacheClient(),
		utils.GetLockCacheClient(),
	})

	// Background worker delivering best-effort notifications.
	cron.InitNotifyWorker()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// The gateway client is the single relay to the n8n webhook and
	// the Apps Script endpoints; every service shares it.
	gatewayClient := gateway.NewClient()

	workflowService := &workflow.DefaultWorkflowService{
		Gateway: gatewayClient,
		Store:   workflow.NewRedisLockStore(),
	}
	myDayService := &myday.DefaultMyDayService{
		Gateway:  gatewayClient,
		Freed:    myday.NewRedisFreedStore(),
		MyDayURL: config.AppConfig.MyDayScriptURL,
	}
	attendanceService := &attendance.DefaultAttendanceService{
		Gateway:       gatewayClient,
		Notify:        tasks.NewAsynqNotifier(),
		AttendanceURL: config.AppConfig.AttendanceScriptURL,
		MyDayURL:      config.AppConfig.MyDayScriptURL,
	}
	slotCheckService := &slotcheck.DefaultSlotCheckService{
		Gateway: gatewayClient,
	}

	handlerBundle := &handlers.HandlerBundle{
		Gateway:    gatewayClient,
		Workflow:   workflowService,
		MyDay:      myDayService,
		Attendance: attendanceService,
		SlotCheck:  slotCheckService,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
