package main

import (
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"fiscal-ops-backend/internal/competence"
	"fiscal-ops-backend/internal/config"
	"fiscal-ops-backend/internal/models"
	"fiscal-ops-backend/internal/routes"
	"fiscal-ops-backend/internal/scheduler"
)

func main() {
	// Load .env, fall back to system env when absent
	_ = godotenv.Load()

	log := config.NewLogger()

	db, err := config.InitDB()
	if err != nil {
		log.WithError(err).Fatal("database init failed")
	}

	if err := db.AutoMigrate(
		&models.Company{},
		&models.FiscalFile{},
		&models.FiscalFileRun{},
		&models.FiscalBatch{},
		&models.SystemLog{},
		&models.WorkOrder{},
		&models.WorkOrderHistory{},
		&models.CalendarEvent{},
		&models.User{},
	); err != nil {
		log.WithError(err).Fatal("migration failed")
	}

	r := gin.Default()
	// CORS config
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	clock := competence.NewClock()
	monthlyJob := routes.Register(r, db, clock, log)

	cronRunner, err := scheduler.Start(monthlyJob, log)
	if err != nil {
		log.WithError(err).Fatal("scheduler init failed")
	}
	defer cronRunner.Stop()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
