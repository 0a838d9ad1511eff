package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/JarkkoKarki/Web-Project-Backend/config"
	"github.com/JarkkoKarki/Web-Project-Backend/models"
	"github.com/JarkkoKarki/Web-Project-Backend/router"
	"github.com/JarkkoKarki/Web-Project-Backend/utils"
)

// defaultTableSizes seeds the dining room on an empty database.
var defaultTableSizes = []int{2, 2, 4, 4, 6, 8}

func main() {
	if err := godotenv.Load(); err != nil {
		utils.InfoLogger.Println("Warning: .env file not found")
	}

	db, err := config.InitDB()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	autoMigrate(db)
	seedTables(db)

	r := router.SetupRouter(db)

	r.SetTrustedProxies([]string{"127.0.0.1", "localhost"})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	utils.InfoLogger.Printf("Listening on port %s", port)
	if err := r.Run(":" + port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}

func autoMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Diet{},
		&models.Product{},
		&models.Order{},
		&models.OrderLine{},
		&models.DiningTable{},
		&models.Reservation{},
		&models.ContactMessage{},
	)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}
	utils.InfoLogger.Println("AutoMigrate completed.")
}

func seedTables(db *gorm.DB) {
	var count int64
	if err := db.Model(&models.DiningTable{}).Count(&count).Error; err != nil {
		utils.ErrorLogger.Printf("Error counting dining tables: %v", err)
		return
	}
	if count > 0 {
		return
	}
	for _, size := range defaultTableSizes {
		if err := db.Create(&models.DiningTable{TableSize: size}).Error; err != nil {
			utils.ErrorLogger.Printf("Error seeding dining table: %v", err)
		}
	}
	utils.InfoLogger.Printf("Seeded %d dining tables", len(defaultTableSizes))
}
