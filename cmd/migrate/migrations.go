package main

import (
	"gorm.io/gorm"

	"github.com/portfolio-cms/backend/internal/models"
)

// registerModels returns all models that need migration.
func registerModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.PhoneNumber{},
		&models.SocialLink{},
		&models.Skill{},

		&models.Project{},
		&models.TechStack{},
		&models.Screenshot{},
		&models.Comment{},

		&models.DownloadLog{},
	}
}

// runMigrations executes all database migrations.
func runMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(registerModels()...); err != nil {
		return err
	}
	return addCustomIndexes(db)
}

func addCustomIndexes(db *gorm.DB) error {
	// Comment counts on the project list filter by project_id + created_at.
	return db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_comments_project_created
		ON comments(project_id, created_at)
	`).Error
}
