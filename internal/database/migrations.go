package database

import (
	"PressLink-Backend/internal/domain"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AutoMigrate migrates the models this service owns. The articles table
// belongs to the publishing platform and is never migrated from here.
func AutoMigrate(db *gorm.DB, log *zap.Logger) error {
	log.Info("starting database auto-migration")

	// Migration order matters because of foreign keys
	models := []interface{}{
		&domain.ShortLink{},
		&domain.Click{}, // clicks reference short links
	}

	for i, model := range models {
		modelName := fmt.Sprintf("%T", model)
		log.Info("migrating model",
			zap.String("model", modelName),
			zap.Int("step", i+1),
			zap.Int("total", len(models)))

		if err := db.AutoMigrate(model); err != nil {
			log.Error("failed to migrate model",
				zap.String("model", modelName),
				zap.Error(err))
			return fmt.Errorf("failed to migrate model %s: %w", modelName, err)
		}
	}

	log.Info("database auto-migration completed successfully", zap.Int("migrated_models", len(models)))
	return nil
}

// SeedData fills the articles table with sample published articles for
// local development. Production directories are populated by the
// publishing side, so seeding is skipped when any articles exist.
func SeedData(db *gorm.DB, log *zap.Logger) error {
	log.Info("starting database seeding")

	if !db.Migrator().HasTable(&domain.Article{}) {
		log.Info("articles table missing, creating it for local development")
		if err := db.AutoMigrate(&domain.Article{}); err != nil {
			return fmt.Errorf("failed to create articles table: %w", err)
		}
	}

	var count int64
	db.Model(&domain.Article{}).Count(&count)
	if count > 0 {
		log.Info("articles already exist, skipping seeding", zap.Int64("existing_count", count))
		return nil
	}

	now := time.Now()
	articles := []domain.Article{
		{
			ID:          "a1f40c2e",
			Slug:        "city-council-approves-transit-plan",
			Title:       "City Council Approves Ten-Year Transit Plan",
			Summary:     "The plan adds three light-rail lines and restructures bus routes across the metro area.",
			ImageURL:    "http://localhost:3000/images/articles/transit-plan.jpg",
			PublishedAt: &now,
			Status:      domain.ArticleStatusPublished,
		},
		{
			ID:          "b7e91d05",
			Slug:        "regional-startup-funding-hits-record",
			Title:       "Regional Startup Funding Hits a Record High",
			Summary:     "Venture investment in the region topped last year's total by the end of the second quarter.",
			PublishedAt: &now,
			Status:      domain.ArticleStatusPublished,
		},
		{
			ID:     "c3d82f17",
			Slug:   "stadium-renovation-draft",
			Title:  "Stadium Renovation Proposal (Draft)",
			Status: "draft",
		},
	}

	log.Info("creating sample articles", zap.Int("articles_count", len(articles)))

	if err := db.Create(&articles).Error; err != nil {
		log.Error("failed to seed articles", zap.Error(err))
		return fmt.Errorf("failed to seed articles: %w", err)
	}

	log.Info("database seeding completed successfully", zap.Int("articles_created", len(articles)))
	return nil
}
