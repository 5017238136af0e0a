package main

import (
	"log"

	"github.com/fitbook/fitbook/internal/config"
	"github.com/fitbook/fitbook/internal/database"
	"github.com/fitbook/fitbook/internal/models"
	"github.com/google/uuid"
)

var starterSkills = []string{"重訓", "瑜伽", "有氧運動", "復健訓練"}

var starterPackages = []models.CreditPackage{
	{Name: "7 堂組合包方案", CreditAmount: 7, Price: 1400},
	{Name: "14 堂組合包方案", CreditAmount: 14, Price: 2520},
	{Name: "21 堂組合包方案", CreditAmount: 21, Price: 4800},
}

// Seeds the starter skill catalog and credit packages. Safe to run
// repeatedly: rows that already exist are left untouched.
func main() {
	cfg := config.Load()
	database.Connect(cfg)
	database.Migrate()

	for _, name := range starterSkills {
		var existing models.Skill
		if err := database.DB.Where("name = ?", name).First(&existing).Error; err == nil {
			log.Println("Skill already exists:", name)
			continue
		}

		skill := models.Skill{ID: uuid.New(), Name: name}
		if err := database.DB.Create(&skill).Error; err != nil {
			log.Fatal("Failed to seed skill:", err)
		}
		log.Println("Seeded skill:", name)
	}

	for _, pkg := range starterPackages {
		var existing models.CreditPackage
		if err := database.DB.Where("name = ?", pkg.Name).First(&existing).Error; err == nil {
			log.Println("Credit package already exists:", pkg.Name)
			continue
		}

		pkg.ID = uuid.New()
		if err := database.DB.Create(&pkg).Error; err != nil {
			log.Fatal("Failed to seed credit package:", err)
		}
		log.Println("Seeded credit package:", pkg.Name)
	}

	log.Println("Seeding completed")
}
