package stores

import (
	"gorm.io/gorm"

	"github.com/harvestra/krishikhel/models"
	"github.com/harvestra/krishikhel/utils"
)

// SeedCatalogs loads the reference catalogs (rewards, missions, quizzes) on
// first boot. Each table is seeded only when empty, so operator edits to
// stock or pricing survive restarts.
func SeedCatalogs(db *gorm.DB) error {
	if err := seedRewards(db); err != nil {
		return err
	}
	if err := seedMissions(db); err != nil {
		return err
	}
	return seedQuizzes(db)
}

func seedRewards(db *gorm.DB) error {
	var n int64
	if err := db.Model(&models.Reward{}).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	rewards := []models.Reward{
		{ID: "organic-seeds-tomato", Title: "Organic Tomato Seeds Pack", Description: "Premium quality organic tomato seeds suitable for all seasons", PointsCost: 500, StockQuantity: models.UnlimitedStock, Category: "seeds", EstimatedDelivery: "3-5 working days"},
		{ID: "farming-tools-basic", Title: "Basic Farming Tool Kit", Description: "Essential farming tools including spade, hoe, and weeder", PointsCost: 2000, StockQuantity: 50, Category: "tools", RequiredLevel: 5, EstimatedDelivery: "7-10 working days"},
		{ID: "organic-fertilizer", Title: "Organic Fertilizer (5kg)", Description: "NPK-rich organic fertilizer made from compost", PointsCost: 800, StockQuantity: models.UnlimitedStock, Category: "organic", EstimatedDelivery: "5-7 working days"},
		{ID: "drip-irrigation", Title: "Drip Irrigation Kit", Description: "Water-efficient irrigation system for small farms", PointsCost: 3500, StockQuantity: 20, Category: "equipment", RequiredLevel: 10, EstimatedDelivery: "10-15 working days"},
		{ID: "farming-course", Title: "Advanced Farming Course", Description: "Online course on modern sustainable farming techniques", PointsCost: 1200, StockQuantity: models.UnlimitedStock, Category: "learning", EstimatedDelivery: "Instant access"},
		{ID: "vegetable-seeds-mix", Title: "Mixed Vegetable Seeds", Description: "Variety pack of seasonal vegetable seeds", PointsCost: 750, StockQuantity: models.UnlimitedStock, Category: "seeds", EstimatedDelivery: "3-5 working days"},
		{ID: "soil-testing-kit", Title: "Soil pH Testing Kit", Description: "Test your soil pH and nutrient levels", PointsCost: 600, StockQuantity: models.UnlimitedStock, Category: "tools", EstimatedDelivery: "3-5 working days"},
		{ID: "premium-seeds-hybrid", Title: "Premium Hybrid Seeds", Description: "High-yield hybrid seeds for corn, wheat, and rice", PointsCost: 1500, StockQuantity: 100, Category: "seeds", RequiredLevel: 8, EstimatedDelivery: "5-7 working days"},
	}
	if err := db.Create(&rewards).Error; err != nil {
		return err
	}
	utils.Sugar.Infow("seeded reward catalog", "count", len(rewards))
	return nil
}

func seedMissions(db *gorm.DB) error {
	var n int64
	if err := db.Model(&models.Mission{}).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	missions := []models.Mission{
		{ID: "daily-checkin", Title: "Daily Check-in", Description: "Visit the app and check your progress daily", PointsReward: 50, Category: "learning", Difficulty: "easy", EstimatedTime: "2 minutes", Active: true},
		{ID: "complete-quiz", Title: "Complete a Learning Quiz", Description: "Take and pass any quiz with 80% or higher score", PointsReward: 150, Category: "learning", Difficulty: "medium", EstimatedTime: "10 minutes", Active: true},
		{ID: "plant-new-crop", Title: "Plant a New Crop", Description: "Start cultivation of a new crop variety in your field", PointsReward: 300, Category: "farming", Difficulty: "medium", EstimatedTime: "1 hour", Active: true},
		{ID: "community-post", Title: "Share Farming Knowledge", Description: "Create a helpful post in the community forum", PointsReward: 100, Category: "community", Difficulty: "easy", EstimatedTime: "5 minutes", Active: true},
		{ID: "harvest-documentation", Title: "Document Your Harvest", Description: "Take photos and share details of your recent harvest", PointsReward: 250, Category: "farming", Difficulty: "easy", EstimatedTime: "15 minutes", Active: true},
		{ID: "water-conservation", Title: "Water Conservation Practice", Description: "Implement and document water-saving techniques", PointsReward: 400, Category: "farming", Difficulty: "hard", EstimatedTime: "2 hours", Active: true},
		{ID: "help-neighbor", Title: "Help a Fellow Farmer", Description: "Assist another farmer in your community", PointsReward: 200, Category: "community", Difficulty: "medium", EstimatedTime: "30 minutes", Active: true},
	}
	if err := db.Create(&missions).Error; err != nil {
		return err
	}
	utils.Sugar.Infow("seeded mission catalog", "count", len(missions))
	return nil
}

func seedQuizzes(db *gorm.DB) error {
	var n int64
	if err := db.Model(&models.Quiz{}).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	quizzes := []models.Quiz{
		{ID: "quiz-soil-health", ModuleID: "1", Title: "Soil Health Basics", PassingThreshold: 70, AnswerKey: "[1,1,2,1,1]"},
		{ID: "quiz-water-management", ModuleID: "2", Title: "Water Management", PassingThreshold: 70, AnswerKey: "[2,1,1,1,1]"},
		{ID: "quiz-pest-control", ModuleID: "3", Title: "Natural Pest Control", PassingThreshold: 70, AnswerKey: "[1,1,1,1,0]"},
		{ID: "quiz-crop-rotation", ModuleID: "4", Title: "Crop Rotation", PassingThreshold: 70, AnswerKey: "[2,2,1,2,1]"},
		{ID: "quiz-composting", ModuleID: "5", Title: "Composting", PassingThreshold: 70, AnswerKey: "[1,2,1,1,1]"},
	}
	if err := db.Create(&quizzes).Error; err != nil {
		return err
	}
	utils.Sugar.Infow("seeded quiz catalog", "count", len(quizzes))
	return nil
}
