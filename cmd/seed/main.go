package main

import (
	"log"
	"os"

	"gorm.io/gorm"

	"reviewhub/database"
	"reviewhub/internal/api/models"
	"reviewhub/internal/config"
	"reviewhub/pkg/logger"
)

// Seeds a bootstrap admin user and a starter catalog of categories and
// genres. Safe to run repeatedly: existing rows are left alone.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	if err := logger.Init(cfg.IsDevelopment()); err != nil {
		log.Fatalf("could not init logger: %v", err)
	}
	defer logger.Sync()

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("database migration failed: %v", err)
	}

	seedAdmin(db)
	seedCatalog(db)
}

func seedAdmin(db *gorm.DB) {
	username := os.Getenv("ADMIN_USERNAME")
	email := os.Getenv("ADMIN_EMAIL")
	if username == "" || email == "" {
		log.Println("ADMIN_USERNAME / ADMIN_EMAIL not set, skipping admin seed")
		return
	}

	var existing models.User
	if err := db.Where("username = ?", username).First(&existing).Error; err == nil {
		log.Printf("admin user already exists: %s", existing.Username)
		return
	}

	admin := models.User{
		Username: username,
		Email:    email,
		Role:     models.RoleAdmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Fatalf("failed to create admin: %v", err)
	}
	log.Printf("admin user created: %s <%s>", admin.Username, admin.Email)
}

func seedCatalog(db *gorm.DB) {
	categories := []models.Category{
		{Name: "Books", Slug: "books"},
		{Name: "Movies", Slug: "movies"},
		{Name: "Music", Slug: "music"},
	}
	for _, c := range categories {
		if err := db.Where(models.Category{Slug: c.Slug}).FirstOrCreate(&c).Error; err != nil {
			log.Fatalf("failed to seed category %q: %v", c.Slug, err)
		}
	}

	genres := []models.Genre{
		{Name: "Drama", Slug: "drama"},
		{Name: "Comedy", Slug: "comedy"},
		{Name: "Fantasy", Slug: "fantasy"},
		{Name: "Sci-Fi", Slug: "sci-fi"},
		{Name: "Detective", Slug: "detective"},
		{Name: "Rock", Slug: "rock"},
		{Name: "Classical", Slug: "classical"},
	}
	for _, g := range genres {
		if err := db.Where(models.Genre{Slug: g.Slug}).FirstOrCreate(&g).Error; err != nil {
			log.Fatalf("failed to seed genre %q: %v", g.Slug, err)
		}
	}

	log.Printf("catalog seeded: %d categories, %d genres", len(categories), len(genres))
}
