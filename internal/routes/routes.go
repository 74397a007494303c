package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"fiscal-ops-backend/internal/competence"
	handler "fiscal-ops-backend/internal/handlers"
	"fiscal-ops-backend/internal/middleware"
	"fiscal-ops-backend/internal/repository"
	"fiscal-ops-backend/internal/services/auth"
	"fiscal-ops-backend/internal/services/fiscalbatch"
	"fiscal-ops-backend/internal/services/fiscalfile"
	"fiscal-ops-backend/internal/services/monthly"
	"fiscal-ops-backend/internal/services/workorder"
)

// Register wires repositories, services and handlers onto the engine and
// returns the monthly job so the scheduler can drive it.
func Register(r *gin.Engine, db *gorm.DB, clock *competence.Clock, log *logrus.Logger) *monthly.Service {
	companyRepo := repository.NewCompanyRepository(db)
	fileRepo := repository.NewFiscalFileRepository(db)
	batchRepo := repository.NewFiscalBatchRepository(db)
	logRepo := repository.NewSystemLogRepository(db)
	orderRepo := repository.NewWorkOrderRepository(db)
	calendarRepo := repository.NewCalendarRepository(db)
	userRepo := repository.NewUserRepository(db)

	fileService := fiscalfile.NewService(fileRepo, clock, log)
	batchService := fiscalbatch.NewService(batchRepo, companyRepo, clock, log)
	monthlyService := monthly.NewService(clock, companyRepo, fileService, batchService, logRepo, log)
	orderService := workorder.NewService(orderRepo, companyRepo)
	authService := auth.NewService(userRepo)

	companyHandler := handler.NewCompanyHandler(companyRepo)
	fileHandler := handler.NewFiscalFileHandler(fileService)
	batchHandler := handler.NewFiscalBatchHandler(batchService)
	orderHandler := handler.NewWorkOrderHandler(orderService)
	calendarHandler := handler.NewCalendarHandler(calendarRepo, companyRepo)
	userHandler := handler.NewUserHandler(authService)
	systemHandler := handler.NewSystemHandler(logRepo, monthlyService)

	api := r.Group("/api")

	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	api.POST("/auth/login", userHandler.Login)

	authed := api.Group("")
	authed.Use(middleware.RequireAuth(authService))

	companies := authed.Group("/companies")
	{
		companies.GET("", companyHandler.List)
		companies.GET("/:id", companyHandler.Get)
		companies.POST("", companyHandler.Create)
		companies.PATCH("/:id", companyHandler.Update)
		companies.DELETE("/:id", companyHandler.Delete)
	}

	files := authed.Group("/fiscal-files")
	{
		files.GET("", fileHandler.ListAll)
		files.GET("/pending", fileHandler.ListPending)
		files.GET("/runs", fileHandler.ListRuns)
		files.GET("/runs/:companyId", fileHandler.ListRunsByCompany)
		files.PATCH("/:id", fileHandler.Update)
		files.POST("/:id/generate", fileHandler.MarkGenerated)
		files.DELETE("/:id", fileHandler.Delete)
	}

	batches := authed.Group("/fiscal-batches")
	{
		batches.GET("", batchHandler.List)
		batches.GET("/summary", batchHandler.Summary)
		batches.GET("/pending", batchHandler.Pending)
		batches.GET("/finished", batchHandler.Finished)
		batches.POST("/finalize", batchHandler.Finalize)
		batches.GET("/:id", batchHandler.Get)
		batches.POST("", batchHandler.Create)
		batches.PATCH("/:id", batchHandler.Update)
		batches.DELETE("/:id", batchHandler.Delete)
	}

	orders := authed.Group("/work-orders")
	{
		orders.GET("", orderHandler.List)
		orders.GET("/:id", orderHandler.Get)
		orders.POST("", orderHandler.Create)
		orders.PATCH("/:id", orderHandler.Update)
		orders.DELETE("/:id", orderHandler.Delete)
		orders.POST("/:id/history", orderHandler.AddHistory)
	}

	calendar := authed.Group("/calendar")
	{
		calendar.GET("", calendarHandler.List)
		calendar.GET("/:id", calendarHandler.Get)
		calendar.POST("", calendarHandler.Create)
		calendar.PATCH("/:id", calendarHandler.Update)
		calendar.DELETE("/:id", calendarHandler.Delete)
	}

	users := authed.Group("/users")
	{
		users.GET("", userHandler.List)
		users.GET("/:id", userHandler.Get)
		users.POST("", userHandler.Create)
		users.PATCH("/:id", userHandler.Update)
		users.DELETE("/:id", userHandler.Delete)
	}

	system := authed.Group("/system")
	{
		system.GET("/logs", systemHandler.ListLogs)
		system.POST("/run-monthly", systemHandler.RunMonthly)
	}

	return monthlyService
}
