package seed

import (
	"log"
	"os"

	"resellpanel_backend/internal/model"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedAdminUser makes sure the panel has at least one admin account.
// Credentials come from ADMIN_EMAIL / ADMIN_PASSWORD, with dev defaults.
func SeedAdminUser(db *gorm.DB) {
	adminEmail := os.Getenv("ADMIN_EMAIL")
	if adminEmail == "" {
		adminEmail = "admin@resellpanel.local"
	}
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "admin123"
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Error hashing admin password: %v", err)
		return
	}

	admin := model.User{
		Email:    adminEmail,
		Password: string(hashed),
		Username: "admin",
		Name:     "Administrator",
		Role:     model.RoleAdmin,
	}

	result := db.FirstOrCreate(&admin, model.User{Email: adminEmail})
	if result.Error != nil {
		log.Printf("Error creating admin user %s: %v", adminEmail, result.Error)
		return
	}

	log.Println("Admin user seeded successfully!")
}

// SeedDemoReseller creates a sample reseller account for fresh installs so
// the admin dashboard has data to filter on. Skipped in production.
func SeedDemoReseller(db *gorm.DB) {
	if os.Getenv("APP_ENV") == "production" {
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("reseller123"), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Error hashing demo reseller password: %v", err)
		return
	}

	reseller := model.User{
		Email:    "demo@resellpanel.local",
		Password: string(hashed),
		Username: "demo-reseller",
		Name:     "Demo Reseller",
		Role:     model.RoleReseller,
	}

	result := db.FirstOrCreate(&reseller, model.User{Email: reseller.Email})
	if result.Error != nil {
		log.Printf("Error creating demo reseller: %v", result.Error)
	}
}
